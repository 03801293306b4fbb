package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/domainwatch/internal/domain"
	"github.com/hamed0406/domainwatch/internal/store/memory"
)

// fake notifier that fails for selected chat ids
type flakyNotifier struct {
	mu      sync.Mutex
	failFor map[int64]bool
	sent    []int64
}

func (f *flakyNotifier) Send(ctx context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[chatID] {
		return errors.New("recipient unreachable")
	}
	f.sent = append(f.sent, chatID)
	return nil
}

func TestDispatcher_IsolatesPerRecipientFailure(t *testing.T) {
	ctx := context.Background()
	admins := memory.NewAdminStore()
	_ = admins.Put(ctx, domain.Admin{Phone: "+1", ChatID: 1})
	_ = admins.Put(ctx, domain.Admin{Phone: "+2", ChatID: 2})
	_ = admins.Put(ctx, domain.Admin{Phone: "+3", ChatID: 3})

	fn := &flakyNotifier{failFor: map[int64]bool{2: true}}
	d := NewDispatcher(zap.NewNop(), admins, fn, time.Second)

	rep := d.Dispatch(ctx, "🔴 DOWN: a.com is unreachable (timeout)")
	if rep.Sent != 2 || rep.Failed != 1 {
		t.Fatalf("want sent=2 failed=1, got %+v", rep)
	}
	if rep.Err == nil {
		t.Fatalf("expected aggregated error for the failed recipient")
	}
	if len(fn.sent) != 2 {
		t.Fatalf("expected delivery to continue past the failure, got %v", fn.sent)
	}
}

func TestDispatcher_NoAdminsIsANoOp(t *testing.T) {
	d := NewDispatcher(zap.NewNop(), memory.NewAdminStore(), &flakyNotifier{}, time.Second)
	rep := d.Dispatch(context.Background(), "hello")
	if rep.Sent != 0 || rep.Failed != 0 || rep.Err != nil {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

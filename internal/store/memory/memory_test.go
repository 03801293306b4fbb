package memory

import (
	"context"
	"testing"
	"time"

	"github.com/hamed0406/domainwatch/internal/domain"
)

func TestIgnoreStore_AddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewIgnoreStore()

	if err := s.Add(ctx, "a.com"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(ctx, "a.com"); err != nil {
		t.Fatalf("second Add must be a no-op, got %v", err)
	}

	hosts, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(hosts) != 1 {
		t.Fatalf("expected 1 host, got %v", hosts)
	}
}

func TestIgnoreStore_RemoveMissingReportsNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewIgnoreStore()

	found, err := s.Remove(ctx, "ghost.com")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if found {
		t.Fatalf("expected found=false for missing hostname")
	}

	_ = s.Add(ctx, "a.com")
	found, err = s.Remove(ctx, "a.com")
	if err != nil || !found {
		t.Fatalf("expected found=true, got found=%v err=%v", found, err)
	}
	if ok, _ := s.Contains(ctx, "a.com"); ok {
		t.Fatalf("hostname still present after Remove")
	}
}

func TestAdminStore_PutGetList(t *testing.T) {
	ctx := context.Background()
	s := NewAdminStore()

	a := domain.Admin{Phone: "+46700000001", ChatID: 42, VerifiedAt: time.Now().UTC()}
	if err := s.Put(ctx, a); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "+46700000001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.ChatID != 42 {
		t.Fatalf("unexpected admin: %+v", got)
	}

	// upsert rebinds the chat id, it does not duplicate
	a.ChatID = 43
	_ = s.Put(ctx, a)
	all, _ := s.List(ctx)
	if len(all) != 1 || all[0].ChatID != 43 {
		t.Fatalf("expected single rebound admin, got %+v", all)
	}

	if missing, _ := s.Get(ctx, "+000"); missing != nil {
		t.Fatalf("expected nil for unknown phone")
	}
}

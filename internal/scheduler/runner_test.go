package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/domainwatch/internal/domain"
	"github.com/hamed0406/domainwatch/internal/store/memory"
	"github.com/hamed0406/domainwatch/internal/tracker"
)

// --- fakes ---

type fakeSource struct {
	mu      sync.Mutex
	domains []string
	err     error
	calls   int
}

func (f *fakeSource) Fetch(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]string(nil), f.domains...), nil
}

type fakeChecker struct {
	mu      sync.Mutex
	outcome domain.Outcome
	checked []string
}

func (f *fakeChecker) Check(ctx context.Context, hostname string) domain.CheckResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checked = append(f.checked, hostname)
	return domain.CheckResult{
		Hostname:  hostname,
		Outcome:   f.outcome,
		Reason:    "fake",
		CheckedAt: time.Now().UTC(),
	}
}

func (f *fakeChecker) hosts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.checked...)
}

type sink struct {
	mu    sync.Mutex
	texts []string
}

func (s *sink) notify(ctx context.Context, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
}

func newTestRunner(src *fakeSource, chk *fakeChecker, ig *memory.IgnoreStore, threshold int, notes *sink) *Runner {
	return NewRunner(
		zap.NewNop(), src, ig, chk, tracker.New(threshold), notes.notify,
		time.Hour, // ticks irrelevant, tests call runOnce directly
		time.Second, 4,
	)
}

// --- tests ---

func TestRunner_EffectiveSetExcludesIgnored(t *testing.T) {
	ctx := context.Background()
	ig := memory.NewIgnoreStore()
	_ = ig.Add(ctx, "b.com")

	src := &fakeSource{domains: []string{"a.com", "b.com"}}
	chk := &fakeChecker{outcome: domain.OutcomeHealthy}
	r := newTestRunner(src, chk, ig, 3, &sink{})

	r.runOnce(ctx)

	got := chk.hosts()
	if len(got) != 1 || got[0] != "a.com" {
		t.Fatalf("expected only a.com checked, got %v", got)
	}
}

func TestRunner_SourceErrorAbortsCyclePreservingState(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{domains: []string{"a.com"}}
	chk := &fakeChecker{outcome: domain.OutcomeUnreachable}
	notes := &sink{}
	r := newTestRunner(src, chk, memory.NewIgnoreStore(), 2, notes)

	r.runOnce(ctx) // failure 1

	// the fetch breaks: cycle aborts, failure count stays at 1
	src.mu.Lock()
	src.err = errors.New("boom")
	src.mu.Unlock()
	r.runOnce(ctx)

	if len(notes.texts) != 0 {
		t.Fatalf("no notifications expected yet, got %v", notes.texts)
	}

	// fetch heals; this failure is the 2nd consecutive, crossing threshold
	src.mu.Lock()
	src.err = nil
	src.mu.Unlock()
	r.runOnce(ctx)

	if len(notes.texts) != 1 {
		t.Fatalf("expected single down alert, got %v", notes.texts)
	}
}

func TestRunner_DownThenRecoveredAlerts(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{domains: []string{"a.com"}}
	chk := &fakeChecker{outcome: domain.OutcomeUnreachable}
	notes := &sink{}
	r := newTestRunner(src, chk, memory.NewIgnoreStore(), 2, notes)

	r.runOnce(ctx)
	r.runOnce(ctx) // crosses threshold
	r.runOnce(ctx) // still down, no repeat

	chk.mu.Lock()
	chk.outcome = domain.OutcomeHealthy
	chk.mu.Unlock()
	r.runOnce(ctx)

	if len(notes.texts) != 2 {
		t.Fatalf("want down + recovered, got %v", notes.texts)
	}
}

func TestRunner_KickCoalesces(t *testing.T) {
	r := newTestRunner(&fakeSource{}, &fakeChecker{}, memory.NewIgnoreStore(), 3, &sink{})

	r.Kick()
	r.Kick()
	r.Kick()

	// capacity 1: the manual trigger queues exactly one extra run
	queued := 0
	for {
		select {
		case <-r.kick:
			queued++
			continue
		default:
		}
		break
	}
	if queued != 1 {
		t.Fatalf("want exactly one queued run, got %d", queued)
	}
}

func TestRunner_RunLoopServesKick(t *testing.T) {
	src := &fakeSource{domains: []string{"a.com"}}
	chk := &fakeChecker{outcome: domain.OutcomeHealthy}
	r := newTestRunner(src, chk, memory.NewIgnoreStore(), 3, &sink{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = r.Run(ctx)
		close(done)
	}()

	// wait for the immediate first pass
	waitFor(t, func() bool {
		src.mu.Lock()
		defer src.mu.Unlock()
		return src.calls >= 1
	})

	r.Kick()
	waitFor(t, func() bool {
		src.mu.Lock()
		defer src.mu.Unlock()
		return src.calls >= 2
	})

	cancel()
	<-done
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

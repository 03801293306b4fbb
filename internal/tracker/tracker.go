// Package tracker owns the per-domain failure state machine. It decides,
// from each check result, whether a domain crossed the down threshold or
// recovered, and therefore whether an alert is due. Exactly one DOWN alert
// and one RECOVERED alert per outage, no matter how long it lasts.
package tracker

import (
	"sort"
	"sync"

	"github.com/hamed0406/domainwatch/internal/domain"
)

type Tracker struct {
	mu        sync.Mutex
	threshold int
	records   map[string]*domain.Record
}

// New creates a tracker that declares a domain DOWN after threshold
// consecutive failing cycles. A threshold of 1 alerts on the first failure.
func New(threshold int) *Tracker {
	if threshold < 1 {
		threshold = 1
	}
	return &Tracker{
		threshold: threshold,
		records:   make(map[string]*domain.Record),
	}
}

// Apply feeds one cycle's result for a hostname into the state machine and
// returns the notification it produced, if any. Total over every
// (state, outcome) pair; it never fails.
func (t *Tracker) Apply(res domain.CheckResult) *domain.Notification {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[res.Hostname]
	if !ok {
		rec = &domain.Record{Hostname: res.Hostname, Status: domain.StatusUnknown}
		t.records[res.Hostname] = rec
	}
	rec.LastCheckedAt = res.CheckedAt
	rec.LastReason = res.Reason

	if !res.Outcome.Failed() {
		wasDown := rec.Status == domain.StatusDown
		rec.Status = domain.StatusUp
		rec.ConsecutiveFailures = 0
		if wasDown {
			return &domain.Notification{
				Kind:     domain.NotifyRecovered,
				Hostname: res.Hostname,
				Outcome:  res.Outcome,
			}
		}
		return nil
	}

	rec.ConsecutiveFailures++
	if rec.Status == domain.StatusDown {
		// already alerted for this outage; count kept for display only
		return nil
	}
	if rec.ConsecutiveFailures >= t.threshold {
		rec.Status = domain.StatusDown
		return &domain.Notification{
			Kind:     domain.NotifyDown,
			Hostname: res.Hostname,
			Outcome:  res.Outcome,
			Reason:   res.Reason,
		}
	}
	return nil
}

// Sync drops state for hostnames no longer in the monitored set, so a
// domain that leaves the fleet (or gets ignored) and later returns starts
// over at unknown with a clean failure count.
func (t *Tracker) Sync(active map[string]struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for h := range t.records {
		if _, ok := active[h]; !ok {
			delete(t.records, h)
		}
	}
}

// Forget removes a single hostname's state immediately (ignore-list adds).
func (t *Tracker) Forget(hostname string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.records, hostname)
}

// Snapshot returns a copy of all records, sorted by hostname.
func (t *Tracker) Snapshot() []domain.Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.Record, 0, len(t.records))
	for _, rec := range t.records {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hostname < out[j].Hostname })
	return out
}

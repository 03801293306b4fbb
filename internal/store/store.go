package store

import (
	"context"

	"github.com/hamed0406/domainwatch/internal/domain"
)

// Ports (interfaces) — swap in any persistence adapter.
//
// Both stores are read by the scheduler at the start of every cycle and
// written from the operator command path, so adapters must be safe for
// concurrent use and a committed write must be visible to the next cycle.

// IgnoreStore is the durable set of hostnames excluded from monitoring.
type IgnoreStore interface {
	// Add inserts a hostname; adding one already present is a no-op.
	Add(ctx context.Context, hostname string) error
	// Remove deletes a hostname and reports whether it was present.
	Remove(ctx context.Context, hostname string) (bool, error)
	Contains(ctx context.Context, hostname string) (bool, error)
	List(ctx context.Context) ([]string, error)
}

// AdminStore is the durable registry of verified operators. Only verified
// entries are ever stored; removal is an out-of-band operation, not part of
// the command surface.
type AdminStore interface {
	// Put upserts a verified admin keyed by phone number.
	Put(ctx context.Context, a domain.Admin) error
	Get(ctx context.Context, phone string) (*domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
}

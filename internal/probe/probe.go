package probe

import (
	"context"

	"github.com/hamed0406/domainwatch/internal/domain"
)

// Checker performs a single dual-layer check for a hostname.
//
// Implementations never return an error: every failure mode is folded into
// the CheckResult outcome so the caller always gets a definite verdict.
type Checker interface {
	Check(ctx context.Context, hostname string) domain.CheckResult
}

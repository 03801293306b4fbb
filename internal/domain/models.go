package domain

import "time"

// Status is the logical state of a monitored domain.
type Status string

const (
	StatusUnknown Status = "unknown" // no check has completed yet
	StatusUp      Status = "up"
	StatusDown    Status = "down"
)

// Outcome classifies one dual-layer check.
//
// Unreachable means the network path to the host is broken (DNS, TLS,
// connect error, timeout, or a >=400 status on the root request).
// Unhealthy means the host answers but the application health endpoint
// did not report ok. Both count as failures for state tracking.
type Outcome string

const (
	OutcomeHealthy     Outcome = "healthy"
	OutcomeUnhealthy   Outcome = "unhealthy"
	OutcomeUnreachable Outcome = "unreachable"
)

// Failed reports whether the outcome counts toward the failure threshold.
func (o Outcome) Failed() bool { return o != OutcomeHealthy }

// CheckResult is the unified result of one dual-layer check.
type CheckResult struct {
	Hostname   string    `json:"hostname"`
	Outcome    Outcome   `json:"outcome"`
	Reason     string    `json:"reason,omitempty"`
	StatusCode int       `json:"status_code,omitempty"` // 0 for transport errors
	LatencyMS  float64   `json:"latency_ms"`
	CheckedAt  time.Time `json:"checked_at"`
}

// Record is the per-domain state owned by the failure tracker.
type Record struct {
	Hostname            string    `json:"hostname"`
	Status              Status    `json:"status"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	LastReason          string    `json:"last_reason,omitempty"`
	LastCheckedAt       time.Time `json:"last_checked_at"`
}

// Admin is a verified operator eligible for alerts and control commands.
// Only verified entries exist; an unverified contact is never persisted.
type Admin struct {
	Phone      string    `json:"phone"`   // normalized, +-prefixed
	ChatID     int64     `json:"chat_id"` // transport recipient handle
	VerifiedAt time.Time `json:"verified_at"`
}

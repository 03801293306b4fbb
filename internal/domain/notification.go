package domain

import "fmt"

// NotificationKind distinguishes the two alert types an outage can produce.
type NotificationKind string

const (
	NotifyDown      NotificationKind = "down"
	NotifyRecovered NotificationKind = "recovered"
)

// Notification is a state-transition alert produced by the failure tracker.
type Notification struct {
	Kind     NotificationKind
	Hostname string
	Outcome  Outcome // outcome that triggered the transition
	Reason   string
}

// Text renders the operator-facing alert message. Unreachable and unhealthy
// describe different failure planes, so the down text names which one broke.
func (n Notification) Text() string {
	switch n.Kind {
	case NotifyRecovered:
		return fmt.Sprintf("🟢 RECOVERED: %s is healthy again", n.Hostname)
	default:
		if n.Outcome == OutcomeUnhealthy {
			return fmt.Sprintf("🔴 DOWN: %s responds but the application is unhealthy (%s)", n.Hostname, n.Reason)
		}
		return fmt.Sprintf("🔴 DOWN: %s is unreachable (%s)", n.Hostname, n.Reason)
	}
}

package notify

import "context"

// Notifier sends one text message to one recipient handle.
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error
}

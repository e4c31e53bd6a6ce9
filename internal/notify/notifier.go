package notify

import (
	"context"
	"fmt"
)

// Notifier delivers a formatted alert message to an external channel.
// Delivery failures are surfaced to the caller and never retried here.
type Notifier interface {
	SendAlert(ctx context.Context, message string) error
}

// NotificationError reports a failed delivery attempt.
type NotificationError struct {
	Channel string
	Err     error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("%s notification failed: %v", e.Channel, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

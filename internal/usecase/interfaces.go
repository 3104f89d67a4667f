package usecase

import (
	"context"
	"time"
)

// Notifier sends a single one-way notification. Failures are returned, not retried.
type Notifier interface {
	Notify(ctx context.Context, to, subject, body string) error
}

// NotificationSettings externalizes who hears about accepted leads.
type NotificationSettings struct {
	Recipient string
	Subject   string
}

// Timeouts bound each call to a dependency. Zero disables the bound.
type Timeouts struct {
	Store  time.Duration
	Notify time.Duration
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// Package notify sends status emails to applicants. Delivery is best
// effort: a failed send never blocks or rolls back a state transition.
package notify

import "context"

type Notifier interface {
	StatusChanged(ctx context.Context, email, fullName, status string) error
	Finalized(ctx context.Context, email, fullName, publicID string) error
}

// Noop discards every notification. Used when SMTP is not configured
// and in tests.
type Noop struct{}

func (Noop) StatusChanged(context.Context, string, string, string) error { return nil }
func (Noop) Finalized(context.Context, string, string, string) error     { return nil }

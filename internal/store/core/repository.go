package core

import "context"

// ApplicationRepository is the persistence port for verification applications.
// Implementations: memory (dev/tests), mongo, postgres.
type ApplicationRepository interface {
	Ping(ctx context.Context) error

	// Create persists a new application. ErrConflict on duplicate ID.
	Create(ctx context.Context, app *Application) error

	// Get fetches by application ID. ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Application, error)

	// FindActiveByContact returns the newest non-rejected application for a
	// mobile+email pair, ErrNotFound when none exists. Backs idempotent
	// registration.
	FindActiveByContact(ctx context.Context, mobile, email string) (*Application, error)

	// Update replaces the stored record. ErrNotFound when absent.
	Update(ctx context.Context, app *Application) error

	Close(ctx context.Context) error
}

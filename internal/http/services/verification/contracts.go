// Package verification implements the application lifecycle:
// register → attachDocument → verify → finalize.
package verification

import (
	"context"
	"errors"

	"github.com/Zee-2005/safara-sub000/internal/store/core"
)

// Sentinel errors the controllers map onto the HTTP taxonomy.
var (
	ErrMissingFields  = errors.New("verification: fullName, mobile and email are required")
	ErrInvalidContact = errors.New("verification: invalid mobile or email")
	ErrAppNotFound    = errors.New("verification: application not found")
	ErrNoDocument     = errors.New("verification: no document attached")
	ErrMediaType      = errors.New("verification: unsupported media type")
	ErrDocumentTooBig = errors.New("verification: document exceeds size limit")
	ErrEmptyDocument  = errors.New("verification: empty document")
	ErrNotDocVerified = errors.New("verification: document not verified")
	ErrStoreFailed    = errors.New("verification: storage operation failed")
)

// RegisterInput is what the register transition needs from the caller.
type RegisterInput struct {
	FullName       string
	Mobile         string
	Email          string
	MobileVerified bool
	EmailVerified  bool
}

// VerifyOutcome carries the result of one verification run. Masked is
// for display only; the raw candidate never leaves the service.
type VerifyOutcome struct {
	App        *core.Application
	ChecksumOK bool
	Repaired   bool
	Masked     string
	DOB        string
}

// FinalizeInput optionally overrides the stored contact flags before
// the finalize policy forces them true.
type FinalizeInput struct {
	MobileVerified *bool
	EmailVerified  *bool
}

// Pipeline is the boundary the controllers depend on.
type Pipeline interface {
	// Register reports created=false when an existing active
	// application was returned unchanged.
	Register(ctx context.Context, in RegisterInput) (app *core.Application, created bool, err error)
	Get(ctx context.Context, id string) (*core.Application, error)
	AttachDocument(ctx context.Context, id string, raw []byte, mediaType string) (*core.Application, error)
	Verify(ctx context.Context, id string) (*VerifyOutcome, error)
	Finalize(ctx context.Context, id string, in FinalizeInput) (*core.Application, string, error)
}

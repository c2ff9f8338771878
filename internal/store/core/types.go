package core

import "time"

// Status is the verification state-machine status of an application.
type Status string

const (
	StatusPendingVerification Status = "pending_verification"
	StatusManualReview        Status = "manual_review"
	StatusVerified            Status = "verified"
	StatusRejected            Status = "rejected"
)

// Active reports whether the status participates in the duplicate-suppression
// check at registration. Rejected applications are kept for audit but do not
// block a fresh registration.
func (s Status) Active() bool {
	return s == StatusPendingVerification || s == StatusManualReview || s == StatusVerified
}

// DocumentMeta describes the encrypted blob attached to an application.
// The ciphertext lives in the content directory; iv and tag live here.
type DocumentMeta struct {
	Path       string    `bson:"path" json:"path"`
	MediaType  string    `bson:"media_type" json:"media_type"`
	Size       int64     `bson:"size" json:"size"`
	IV         string    `bson:"iv" json:"iv"`   // base64, 12 bytes decoded
	Tag        string    `bson:"tag" json:"tag"` // base64, 16 bytes decoded
	UploadedAt time.Time `bson:"uploaded_at" json:"uploaded_at"`
}

// Application is the persisted verification record.
// Identity fields are immutable after creation; the rest is mutated only by
// the upload / verify / finalize transitions.
type Application struct {
	ID       string `bson:"_id" json:"id"`
	FullName string `bson:"full_name" json:"full_name"`
	Mobile   string `bson:"mobile" json:"mobile"`
	Email    string `bson:"email" json:"email"`

	MobileVerified   bool `bson:"mobile_verified" json:"mobile_verified"`
	EmailVerified    bool `bson:"email_verified" json:"email_verified"`
	DocumentVerified bool `bson:"document_verified" json:"document_verified"`

	Status   Status        `bson:"status" json:"status"`
	Document *DocumentMeta `bson:"document,omitempty" json:"document,omitempty"`

	// IDNumberHash is the one-way digest of the validated national ID.
	// The raw number is never persisted.
	IDNumberHash string `bson:"id_number_hash,omitempty" json:"id_number_hash,omitempty"`
	DateOfBirth  string `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`

	// PublicID is assigned exactly once, at finalization.
	PublicID string `bson:"public_id,omitempty" json:"public_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Clone returns a deep copy so stores never hand out shared mutable state.
func (a *Application) Clone() *Application {
	cp := *a
	if a.Document != nil {
		doc := *a.Document
		cp.Document = &doc
	}
	return &cp
}

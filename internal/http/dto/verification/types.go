// Package verification contains the request/response shapes of the
// identity verification API.
package verification

import "time"

// RegisterRequest opens (or re-opens) an application.
type RegisterRequest struct {
	FullName       string `json:"fullName"`
	Mobile         string `json:"mobile"`
	Email          string `json:"email"`
	MobileVerified bool   `json:"mobileVerified"`
	EmailVerified  bool   `json:"emailVerified"`
}

// AttachDocumentRequest carries the document as base64. Multipart is
// accepted on the same route; this shape covers the JSON variant.
type AttachDocumentRequest struct {
	MediaType string `json:"mediaType"`
	Content   string `json:"content"` // base64
}

// FinalizeRequest optionally overrides the stored contact flags.
type FinalizeRequest struct {
	MobileVerified *bool `json:"mobileVerified,omitempty"`
	EmailVerified  *bool `json:"emailVerified,omitempty"`
}

// DocumentInfo is the client-visible slice of stored document metadata.
// The blob path and cipher material stay server-side.
type DocumentInfo struct {
	MediaType  string    `json:"mediaType"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// ApplicationResponse is the canonical application projection. The ID
// number never appears here, only its masked form and digest.
type ApplicationResponse struct {
	ID               string        `json:"id"`
	FullName         string        `json:"fullName"`
	Mobile           string        `json:"mobile"`
	Email            string        `json:"email"`
	MobileVerified   bool          `json:"mobileVerified"`
	EmailVerified    bool          `json:"emailVerified"`
	DocumentVerified bool          `json:"documentVerified"`
	Status           string        `json:"status"`
	Document         *DocumentInfo `json:"document,omitempty"`
	DateOfBirth      string        `json:"dateOfBirth,omitempty"`
	PublicID         string        `json:"publicId,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// VerifyResponse reports a verification run.
type VerifyResponse struct {
	ApplicationID    string `json:"applicationId"`
	Status           string `json:"status"`
	ChecksumOK       bool   `json:"checksumOk"`
	Repaired         bool   `json:"repaired"`
	DocumentVerified bool   `json:"documentVerified"`
	IDNumberMasked   string `json:"idNumberMasked,omitempty"`
	DateOfBirth      string `json:"dateOfBirth,omitempty"`
}

// FinalizeResponse returns the issued tourist identity.
type FinalizeResponse struct {
	PublicID         string `json:"publicId"`
	FullName         string `json:"fullName"`
	IDNumberDigest   string `json:"idNumberDigest,omitempty"`
	DateOfBirth      string `json:"dateOfBirth,omitempty"`
	Mobile           string `json:"mobile"`
	Email            string `json:"email"`
	MobileVerified   bool   `json:"mobileVerified"`
	EmailVerified    bool   `json:"emailVerified"`
	DocumentVerified bool   `json:"documentVerified"`
	Status           string `json:"status"`
	Credential       string `json:"credential,omitempty"`
}

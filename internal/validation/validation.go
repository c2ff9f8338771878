// Package validation holds input validation shared by the HTTP layer and
// the verification services.
package validation

import (
	"regexp"
	"strings"
)

// MaxDocumentSize is the upload cap, enforced before any encryption work.
const MaxDocumentSize = 5 << 20 // 5 MB

// canonical media types accepted for identity documents.
const (
	MediaPDF  = "application/pdf"
	MediaJPEG = "image/jpeg"
	MediaPNG  = "image/png"
)

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobileRe = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

// AllowedMediaType maps a declared media type (full or shorthand) onto its
// canonical form. ok is false for anything off the allow-list.
func AllowedMediaType(mt string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(mt)) {
	case MediaPDF, "pdf":
		return MediaPDF, true
	case MediaJPEG, "image/jpg", "jpeg", "jpg":
		return MediaJPEG, true
	case MediaPNG, "png":
		return MediaPNG, true
	default:
		return "", false
	}
}

// ValidEmail checks basic email shape.
func ValidEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// ValidMobile accepts E.164-style numbers, optional leading +.
func ValidMobile(s string) bool {
	return mobileRe.MatchString(strings.TrimSpace(s))
}

// ValidFullName requires a non-empty printable name of sane length.
func ValidFullName(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) >= 2 && len(s) <= 120
}

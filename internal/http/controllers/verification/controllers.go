// Package verification contains the HTTP controllers of the
// application verification API.
package verification

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	httperrors "github.com/Zee-2005/safara-sub000/internal/http/errors"
	svc "github.com/Zee-2005/safara-sub000/internal/http/services/verification"
	"github.com/Zee-2005/safara-sub000/internal/observability/logger"
	"github.com/Zee-2005/safara-sub000/internal/security/secretbox"
	"github.com/Zee-2005/safara-sub000/internal/store/core"
)

const maxJSONBodySize = 64 * 1024 // 64KB; document uploads have their own limit

// Controllers groups the verification domain controllers.
type Controllers struct {
	Register    *RegisterController
	Application *ApplicationController
	Document    *DocumentController
	Verify      *VerifyController
	Finalize    *FinalizeController
}

func NewControllers(p svc.Pipeline) *Controllers {
	return &Controllers{
		Register:    &RegisterController{pipeline: p},
		Application: &ApplicationController{pipeline: p},
		Document:    &DocumentController{pipeline: p},
		Verify:      &VerifyController{pipeline: p},
		Finalize:    &FinalizeController{pipeline: p},
	}
}

// decodeJSON enforces the shared body limit and strict field checking.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("unexpected trailing data")
	}
	return nil
}

// decodeUploadJSON is decodeJSON without the small-body limit; the
// caller has already capped the body at the upload limit.
func decodeUploadJSON(_ http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("unexpected trailing data")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// handleError maps pipeline errors to the HTTP taxonomy. Integrity
// failures stay opaque: the client sees a plain 500 while the cause is
// logged server-side.
func handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch {
	case errors.Is(err, svc.ErrMissingFields):
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("fullName, mobile and email are required"))
	case errors.Is(err, svc.ErrInvalidContact):
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("mobile or email is not valid"))
	case errors.Is(err, svc.ErrAppNotFound):
		httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("application not found"))
	case errors.Is(err, svc.ErrMediaType):
		httperrors.WriteError(w, httperrors.ErrUnsupportedMedia)
	case errors.Is(err, svc.ErrDocumentTooBig):
		httperrors.WriteError(w, httperrors.ErrPayloadTooLarge)
	case errors.Is(err, svc.ErrEmptyDocument):
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("document content is empty"))
	case errors.Is(err, svc.ErrNoDocument):
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("no document attached"))
	case errors.Is(err, svc.ErrNotDocVerified):
		httperrors.WriteError(w, httperrors.ErrPreconditionFailed.WithDetail("document not verified"))
	case errors.Is(err, core.ErrNotFound):
		httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("stored document is missing"))
	case errors.Is(err, secretbox.ErrIntegrity):
		log.Error("document integrity failure", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	case errors.Is(err, svc.ErrStoreFailed):
		log.Error("storage failure", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable)
	default:
		log.Error("unexpected pipeline error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}

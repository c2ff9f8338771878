package verification

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	dto "github.com/Zee-2005/safara-sub000/internal/http/dto/verification"
	httperrors "github.com/Zee-2005/safara-sub000/internal/http/errors"
	svc "github.com/Zee-2005/safara-sub000/internal/http/services/verification"
	"github.com/Zee-2005/safara-sub000/internal/observability/logger"
)

// FinalizeController handles POST /v1/applications/{id}/finalize.
type FinalizeController struct {
	pipeline svc.Pipeline
}

func (c *FinalizeController) Finalize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Finalize"))

	// The body is optional; an empty one means no flag overrides.
	var req dto.FinalizeRequest
	if err := decodeJSON(w, r, &req); err != nil && err != io.EOF {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	app, token, err := c.pipeline.Finalize(ctx, chi.URLParam(r, "id"), svc.FinalizeInput{
		MobileVerified: req.MobileVerified,
		EmailVerified:  req.EmailVerified,
	})
	if err != nil {
		handleError(w, err, log)
		return
	}
	writeJSON(w, http.StatusOK, dto.FinalizeResponse{
		PublicID:         app.PublicID,
		FullName:         app.FullName,
		IDNumberDigest:   app.IDNumberHash,
		DateOfBirth:      app.DateOfBirth,
		Mobile:           app.Mobile,
		Email:            app.Email,
		MobileVerified:   app.MobileVerified,
		EmailVerified:    app.EmailVerified,
		DocumentVerified: app.DocumentVerified,
		Status:           string(app.Status),
		Credential:       token,
	})
}

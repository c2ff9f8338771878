package verification

import (
	"net/http"

	dto "github.com/Zee-2005/safara-sub000/internal/http/dto/verification"
	httperrors "github.com/Zee-2005/safara-sub000/internal/http/errors"
	svc "github.com/Zee-2005/safara-sub000/internal/http/services/verification"
	"github.com/Zee-2005/safara-sub000/internal/observability/logger"
)

// RegisterController handles POST /v1/applications.
type RegisterController struct {
	pipeline svc.Pipeline
}

func (c *RegisterController) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Register"))

	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	app, created, err := c.pipeline.Register(ctx, svc.RegisterInput{
		FullName:       req.FullName,
		Mobile:         req.Mobile,
		Email:          req.Email,
		MobileVerified: req.MobileVerified,
		EmailVerified:  req.EmailVerified,
	})
	if err != nil {
		handleError(w, err, log)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, toApplicationResponse(app))
}

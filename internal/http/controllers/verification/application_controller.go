package verification

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	dto "github.com/Zee-2005/safara-sub000/internal/http/dto/verification"
	svc "github.com/Zee-2005/safara-sub000/internal/http/services/verification"
	"github.com/Zee-2005/safara-sub000/internal/observability/logger"
	"github.com/Zee-2005/safara-sub000/internal/store/core"
)

// ApplicationController handles GET /v1/applications/{id}.
type ApplicationController struct {
	pipeline svc.Pipeline
}

func (c *ApplicationController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("GetApplication"))

	app, err := c.pipeline.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, log)
		return
	}
	writeJSON(w, http.StatusOK, toApplicationResponse(app))
}

func toApplicationResponse(app *core.Application) dto.ApplicationResponse {
	resp := dto.ApplicationResponse{
		ID:               app.ID,
		FullName:         app.FullName,
		Mobile:           app.Mobile,
		Email:            app.Email,
		MobileVerified:   app.MobileVerified,
		EmailVerified:    app.EmailVerified,
		DocumentVerified: app.DocumentVerified,
		Status:           string(app.Status),
		DateOfBirth:      app.DateOfBirth,
		PublicID:         app.PublicID,
		CreatedAt:        app.CreatedAt,
		UpdatedAt:        app.UpdatedAt,
	}
	if app.Document != nil {
		resp.Document = &dto.DocumentInfo{
			MediaType:  app.Document.MediaType,
			Size:       app.Document.Size,
			UploadedAt: app.Document.UploadedAt,
		}
	}
	return resp
}

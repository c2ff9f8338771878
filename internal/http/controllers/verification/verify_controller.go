package verification

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	dto "github.com/Zee-2005/safara-sub000/internal/http/dto/verification"
	svc "github.com/Zee-2005/safara-sub000/internal/http/services/verification"
	"github.com/Zee-2005/safara-sub000/internal/observability/logger"
)

// VerifyController handles POST /v1/applications/{id}/verify.
type VerifyController struct {
	pipeline svc.Pipeline
}

func (c *VerifyController) Verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Verify"))

	out, err := c.pipeline.Verify(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, log)
		return
	}
	writeJSON(w, http.StatusOK, dto.VerifyResponse{
		ApplicationID:    out.App.ID,
		Status:           string(out.App.Status),
		ChecksumOK:       out.ChecksumOK,
		Repaired:         out.Repaired,
		DocumentVerified: out.App.DocumentVerified,
		IDNumberMasked:   out.Masked,
		DateOfBirth:      out.DOB,
	})
}

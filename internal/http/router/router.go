// Package router assembles the HTTP surface of the verification API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	healthctrl "github.com/Zee-2005/safara-sub000/internal/http/controllers/health"
	verifctrl "github.com/Zee-2005/safara-sub000/internal/http/controllers/verification"
	mw "github.com/Zee-2005/safara-sub000/internal/http/middlewares"
	"github.com/Zee-2005/safara-sub000/internal/metrics"
	"github.com/Zee-2005/safara-sub000/internal/rate"
	"github.com/Zee-2005/safara-sub000/internal/store/core"
)

// Deps carries everything the router wires together. The limiters are
// optional; nil disables rate limiting on the corresponding routes.
type Deps struct {
	Controllers   *verifctrl.Controllers
	Repo          core.ApplicationRepository
	UploadLimiter rate.Limiter
	VerifyLimiter rate.Limiter
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()
	c := d.Controllers

	r.Get("/healthz", (&healthctrl.Controller{Repo: d.Repo}).Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1/applications", func(r chi.Router) {
		r.Post("/", c.Register.Register)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", c.Application.Get)
			r.With(limit(d.UploadLimiter)).Post("/document", c.Document.Attach)
			r.With(limit(d.VerifyLimiter)).Post("/verify", c.Verify.Verify)
			r.Post("/finalize", c.Finalize.Finalize)
		})
	})

	return mw.Chain(r, mw.WithRequestID, mw.WithLogging, mw.WithRecover)
}

func limit(l rate.Limiter) mw.Middleware {
	if l == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw.WithRateLimit(l)
}

package middlewares

import (
	"fmt"
	"net/http"

	apperrors "github.com/Zee-2005/safara-sub000/internal/http/errors"
	"github.com/Zee-2005/safara-sub000/internal/observability/logger"
)

// WithRecover turns handler panics into a 500 envelope instead of
// tearing down the connection.
func WithRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.From(r.Context()).Error("handler panic",
					logger.Err(fmt.Errorf("%v", rec)),
				)
				apperrors.WriteError(w, apperrors.ErrInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

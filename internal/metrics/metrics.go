// Package metrics exposes Prometheus collectors for the verification
// pipeline. Register is safe to call more than once.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	VerificationOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "safara_verification_outcomes_total",
			Help: "Verification runs by outcome (verified, manual_review, error).",
		},
		[]string{"outcome"},
	)

	DocumentUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "safara_document_uploads_total",
			Help: "Document attach attempts by result (accepted, rejected).",
		},
		[]string{"result"},
	)

	TextExtractionSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "safara_text_extraction_seconds",
			Help:    "Wall time of the text extraction stage, OCR included.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	OCRRepairs = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "safara_ocr_repairs_total",
			Help: "ID candidates that only validated after glyph repair.",
		},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "safara_http_requests_total",
			Help: "HTTP requests by method, route and status class.",
		},
		[]string{"method", "route", "status"},
	)
)

func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		VerificationOutcomes,
		DocumentUploads,
		TextExtractionSeconds,
		OCRRepairs,
		HTTPRequests,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// Handler serves the default registry in the standard exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

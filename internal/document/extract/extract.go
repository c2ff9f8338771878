// Package extract turns decrypted document bytes into best-effort plaintext.
//
// Strategy is chosen by declared media type: PDFs go through text-layer
// extraction first and fall back to OCR when the layer is too thin (scanned
// PDFs); images always go through OCR. The OCR engine is injected so tests
// and OCR-less deployments can substitute a fake.
package extract

import (
	"context"
	"strings"

	"github.com/Zee-2005/safara-sub000/internal/observability/logger"
	"go.uber.org/zap"
)

// minPDFTextLen is the threshold under which a PDF text layer is considered
// empty and the document treated as scanned. Empirical: real text-native IDs
// carry well over 20 characters.
const minPDFTextLen = 20

// Engine is the external OCR capability.
type Engine interface {
	// ExtractText OCRs raw document bytes. mediaType is the declared type
	// of the upload ("application/pdf", "image/png", "image/jpeg").
	ExtractText(ctx context.Context, data []byte, mediaType string) (string, error)
}

// Adapter selects an extraction strategy per media type.
type Adapter struct {
	engine Engine // nil = no OCR available
}

// New builds an Adapter. engine may be nil, in which case extraction degrades
// to whatever the text layer yields.
func New(engine Engine) *Adapter {
	return &Adapter{engine: engine}
}

// Text extracts plaintext from data. It never fails: OCR hiccups and broken
// text layers degrade to whatever was gathered, possibly the empty string.
// Downstream validation rejects insufficient data anyway.
func (a *Adapter) Text(ctx context.Context, data []byte, mediaType string) string {
	log := logger.From(ctx).With(logger.Component("extract"), logger.MediaType(mediaType))

	if !isPDF(mediaType) {
		return a.ocr(ctx, data, mediaType, log)
	}

	text, err := pdfText(data)
	if err != nil {
		log.Debug("pdf text layer unreadable", logger.Err(err))
		text = ""
	}
	if len(strings.TrimSpace(text)) >= minPDFTextLen {
		return text
	}

	// Thin or missing text layer: treat as a scanned PDF and concatenate
	// whatever OCR can add to the little we already have.
	log.Debug("pdf text layer below threshold, running ocr", logger.Count(len(text)))
	if ocrText := a.ocr(ctx, data, mediaType, log); ocrText != "" {
		if text == "" {
			return ocrText
		}
		return text + "\n" + ocrText
	}
	return text
}

// ocr runs the engine, swallowing failures. Degraded extraction is policy:
// a dead OCR engine must not fail the whole verification pipeline.
func (a *Adapter) ocr(ctx context.Context, data []byte, mediaType string, log *zap.Logger) string {
	if a.engine == nil {
		log.Debug("no ocr engine configured")
		return ""
	}
	text, err := a.engine.ExtractText(ctx, data, mediaType)
	if err != nil {
		log.Warn("ocr failed, continuing without it", logger.Err(err))
		return ""
	}
	return text
}

func isPDF(mediaType string) bool {
	return strings.Contains(strings.ToLower(mediaType), "pdf")
}

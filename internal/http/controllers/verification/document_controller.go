package verification

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	dto "github.com/Zee-2005/safara-sub000/internal/http/dto/verification"
	httperrors "github.com/Zee-2005/safara-sub000/internal/http/errors"
	svc "github.com/Zee-2005/safara-sub000/internal/http/services/verification"
	"github.com/Zee-2005/safara-sub000/internal/observability/logger"
	"github.com/Zee-2005/safara-sub000/internal/validation"
)

// Encoding overhead on top of the raw document limit: base64 expands
// 4/3, multipart adds headers.
const maxUploadBodySize = validation.MaxDocumentSize*4/3 + 64*1024

// DocumentController handles POST /v1/applications/{id}/document.
// Both multipart/form-data (field "document") and a JSON body with
// base64 content are accepted.
type DocumentController struct {
	pipeline svc.Pipeline
}

func (c *DocumentController) Attach(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AttachDocument"))
	id := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBodySize)
	defer r.Body.Close()

	var (
		raw       []byte
		mediaType string
		err       error
	)
	switch {
	case strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"):
		raw, mediaType, err = readMultipart(r)
	default:
		raw, mediaType, err = readJSONUpload(w, r)
	}
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			httperrors.WriteError(w, httperrors.ErrPayloadTooLarge)
			return
		}
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("could not read document upload"))
		return
	}

	app, err := c.pipeline.AttachDocument(ctx, id, raw, mediaType)
	if err != nil {
		handleError(w, err, log)
		return
	}
	writeJSON(w, http.StatusOK, toApplicationResponse(app))
}

func readMultipart(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(validation.MaxDocumentSize); err != nil {
		return nil, "", err
	}
	file, header, err := r.FormFile("document")
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	mediaType := r.FormValue("mediaType")
	if mediaType == "" {
		mediaType = header.Header.Get("Content-Type")
	}
	return raw, mediaType, nil
}

func readJSONUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	var req dto.AttachDocumentRequest
	if err := decodeUploadJSON(w, r, &req); err != nil {
		return nil, "", err
	}
	raw, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		return nil, "", err
	}
	return raw, req.MediaType, nil
}

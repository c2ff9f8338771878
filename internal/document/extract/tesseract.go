package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// TesseractCLI is the default OCR engine: it shells out to the tesseract
// binary. Keeping the engine out-of-process avoids a cgo dependency and
// matches the deployment model where OCR capacity is provisioned separately.
type TesseractCLI struct {
	// Binary is the tesseract executable, default "tesseract".
	Binary string
	// Lang is the recognition language, default "eng".
	Lang string
}

// NewTesseractCLI returns an engine with defaults filled in.
func NewTesseractCLI() *TesseractCLI {
	return &TesseractCLI{Binary: "tesseract", Lang: "eng"}
}

// ExtractText writes data to a temp file and runs tesseract over it.
func (t *TesseractCLI) ExtractText(ctx context.Context, data []byte, mediaType string) (string, error) {
	bin := t.Binary
	if bin == "" {
		bin = "tesseract"
	}
	lang := t.Lang
	if lang == "" {
		lang = "eng"
	}

	f, err := os.CreateTemp("", "safara-ocr-*"+extFor(mediaType))
	if err != nil {
		return "", fmt.Errorf("ocr temp file: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("ocr temp write: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("ocr temp close: %w", err)
	}

	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, f.Name(), "stdout", "-l", lang)
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out.String(), nil
}

func extFor(mediaType string) string {
	switch {
	case strings.Contains(mediaType, "png"):
		return ".png"
	case strings.Contains(mediaType, "jpeg"), strings.Contains(mediaType, "jpg"):
		return ".jpg"
	case strings.Contains(mediaType, "pdf"):
		return ".pdf"
	default:
		return ""
	}
}

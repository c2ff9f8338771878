package extract

import (
	"context"
	"errors"
	"testing"
)

type fakeEngine struct {
	text  string
	err   error
	calls int
	last  string
}

func (f *fakeEngine) ExtractText(_ context.Context, _ []byte, mediaType string) (string, error) {
	f.calls++
	f.last = mediaType
	return f.text, f.err
}

func TestText_ImageAlwaysUsesOCR(t *testing.T) {
	eng := &fakeEngine{text: "Aadhaar 2341 2341 2349"}
	a := New(eng)

	got := a.Text(context.Background(), []byte{0x89, 'P', 'N', 'G'}, "image/png")
	if got != eng.text {
		t.Fatalf("Text = %q", got)
	}
	if eng.calls != 1 || eng.last != "image/png" {
		t.Fatalf("engine calls=%d last=%q", eng.calls, eng.last)
	}
}

func TestText_OCRFailureDegradesToEmpty(t *testing.T) {
	eng := &fakeEngine{err: errors.New("engine unavailable")}
	a := New(eng)

	if got := a.Text(context.Background(), []byte("img"), "image/jpeg"); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestText_NilEngine(t *testing.T) {
	a := New(nil)
	if got := a.Text(context.Background(), []byte("img"), "image/jpeg"); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestText_ScannedPDFFallsBackToOCR(t *testing.T) {
	// Not a real PDF: the text layer fails, which is exactly the scanned /
	// malformed case, so OCR output should be returned.
	eng := &fakeEngine{text: "scanned content 2341 2341 2349"}
	a := New(eng)

	got := a.Text(context.Background(), []byte("%PDF-garbage"), "application/pdf")
	if got != eng.text {
		t.Fatalf("Text = %q", got)
	}
	if eng.calls != 1 {
		t.Fatalf("engine calls = %d", eng.calls)
	}
}

func TestText_ScannedPDFWithDeadOCR(t *testing.T) {
	eng := &fakeEngine{err: errors.New("no ocr")}
	a := New(eng)

	if got := a.Text(context.Background(), []byte("%PDF-garbage"), "application/pdf"); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

package verification

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Zee-2005/safara-sub000/internal/credential"
	"github.com/Zee-2005/safara-sub000/internal/document/aadhaar"
	"github.com/Zee-2005/safara-sub000/internal/document/blobstore"
	"github.com/Zee-2005/safara-sub000/internal/document/extract"
	"github.com/Zee-2005/safara-sub000/internal/security/secretbox"
	"github.com/Zee-2005/safara-sub000/internal/store/core"
	"github.com/Zee-2005/safara-sub000/internal/store/memory"
	"github.com/Zee-2005/safara-sub000/internal/validation"
)

type fakeEngine struct {
	text string
	err  error
}

func (f *fakeEngine) ExtractText(_ context.Context, _ []byte, _ string) (string, error) {
	return f.text, f.err
}

type env struct {
	svc    *Service
	repo   core.ApplicationRepository
	blobs  *blobstore.Store
	engine *fakeEngine
	dir    string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	box, err := secretbox.New(key)
	require.NoError(t, err)

	dir := t.TempDir()
	blobs, err := blobstore.New(dir, box)
	require.NoError(t, err)

	engine := &fakeEngine{}
	repo := memory.New()
	iss := credential.NewIssuer([]byte("0123456789abcdef0123456789abcdef"), "safara-test", time.Hour)
	svc := NewService(repo, blobs, extract.New(engine), nil, iss)
	return &env{svc: svc, repo: repo, blobs: blobs, engine: engine, dir: dir}
}

// validAadhaar builds a checksum-valid 12-digit number.
func validAadhaar(t *testing.T) string {
	t.Helper()
	payload := "23412341234"
	d, ok := aadhaar.CheckDigit(payload)
	require.True(t, ok)
	return payload + string(d)
}

func register(t *testing.T, e *env) *core.Application {
	t.Helper()
	app, created, err := e.svc.Register(context.Background(), RegisterInput{
		FullName: "Jane Doe",
		Mobile:   "+919876543210",
		Email:    "jane@example.com",
	})
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, core.StatusPendingVerification, app.Status)
	return app
}

func TestRegisterIdempotent(t *testing.T) {
	e := newEnv(t)
	first := register(t, e)

	second, created, err := e.svc.Register(context.Background(), RegisterInput{
		FullName: "Jane Doe",
		Mobile:   "+919876543210",
		Email:    "JANE@example.com", // email comparison is lowercased
	})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, second.ID)
}

func TestRegisterValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, _, err := e.svc.Register(ctx, RegisterInput{FullName: "", Mobile: "+919876543210", Email: "a@b.co"})
	require.ErrorIs(t, err, ErrMissingFields)

	_, _, err = e.svc.Register(ctx, RegisterInput{FullName: "Jane", Mobile: "12ab", Email: "a@b.co"})
	require.ErrorIs(t, err, ErrInvalidContact)

	_, _, err = e.svc.Register(ctx, RegisterInput{FullName: "Jane", Mobile: "+919876543210", Email: "not-an-email"})
	require.ErrorIs(t, err, ErrInvalidContact)
}

func TestAttachRejectsBeforeStorage(t *testing.T) {
	e := newEnv(t)
	app := register(t, e)
	ctx := context.Background()

	_, err := e.svc.AttachDocument(ctx, app.ID, []byte("x"), "text/plain")
	require.ErrorIs(t, err, ErrMediaType)

	big := bytes.Repeat([]byte("a"), int(validation.MaxDocumentSize)+1)
	_, err = e.svc.AttachDocument(ctx, app.ID, big, validation.MediaPDF)
	require.ErrorIs(t, err, ErrDocumentTooBig)

	_, err = e.svc.AttachDocument(ctx, app.ID, nil, validation.MediaPDF)
	require.ErrorIs(t, err, ErrEmptyDocument)

	// No blob may exist after any rejection.
	entries, err := os.ReadDir(e.dir)
	require.NoError(t, err)
	require.Empty(t, entries)

	_, err = e.svc.AttachDocument(ctx, "missing-app", []byte("x"), validation.MediaPDF)
	require.ErrorIs(t, err, ErrAppNotFound)
}

func TestAttachStoresEncryptedAndReplaces(t *testing.T) {
	e := newEnv(t)
	app := register(t, e)
	ctx := context.Background()

	doc := []byte("first document body")
	got, err := e.svc.AttachDocument(ctx, app.ID, doc, "jpg")
	require.NoError(t, err)
	require.NotNil(t, got.Document)
	require.Equal(t, validation.MediaJPEG, got.Document.MediaType)
	require.Equal(t, core.StatusPendingVerification, got.Status, "attach never changes status")

	onDisk, err := os.ReadFile(filepath.Join(e.dir, filepath.Base(got.Document.Path)))
	require.NoError(t, err)
	require.NotContains(t, string(onDisk), "first document body")

	// A replacement upload removes the prior blob.
	first := got.Document.Path
	got, err = e.svc.AttachDocument(ctx, app.ID, []byte("second"), "png")
	require.NoError(t, err)
	require.NotEqual(t, first, got.Document.Path)
	_, err = os.Stat(filepath.Join(e.dir, filepath.Base(first)))
	require.True(t, os.IsNotExist(err))
}

func TestVerifyWithoutDocument(t *testing.T) {
	e := newEnv(t)
	app := register(t, e)
	_, err := e.svc.Verify(context.Background(), app.ID)
	require.ErrorIs(t, err, ErrNoDocument)
}

func TestVerifyValidNumber(t *testing.T) {
	e := newEnv(t)
	app := register(t, e)
	ctx := context.Background()

	number := validAadhaar(t)
	e.engine.text = fmt.Sprintf("Government of India\nDOB: 12/04/1990\n%s %s %s",
		number[:4], number[4:8], number[8:])

	_, err := e.svc.AttachDocument(ctx, app.ID, []byte("scan"), "png")
	require.NoError(t, err)

	out, err := e.svc.Verify(ctx, app.ID)
	require.NoError(t, err)
	require.True(t, out.ChecksumOK)
	require.Equal(t, core.StatusVerified, out.App.Status)
	require.True(t, out.App.DocumentVerified)
	require.Equal(t, "1990-04-12", out.App.DateOfBirth)
	require.Equal(t, aadhaar.Digest(number), out.App.IDNumberHash)
	require.Equal(t, aadhaar.Mask(number), out.Masked)

	// Idempotent: a second run reproduces the same outcome.
	again, err := e.svc.Verify(ctx, app.ID)
	require.NoError(t, err)
	require.Equal(t, out.App.Status, again.App.Status)
	require.Equal(t, out.App.IDNumberHash, again.App.IDNumberHash)
}

func TestVerifyBadChecksumRoutesToManualReview(t *testing.T) {
	e := newEnv(t)
	app := register(t, e)
	ctx := context.Background()

	number := validAadhaar(t)
	// Flip one digit; Verhoeff detects every single-digit substitution
	// and no confusable glyph exists for repair to fix it.
	bad := []byte(number)
	if bad[0] == '9' {
		bad[0] = '3'
	} else {
		bad[0]++
	}
	e.engine.text = "ID " + string(bad)

	_, err := e.svc.AttachDocument(ctx, app.ID, []byte("scan"), "png")
	require.NoError(t, err)

	out, err := e.svc.Verify(ctx, app.ID)
	require.NoError(t, err)
	require.False(t, out.ChecksumOK)
	require.Equal(t, core.StatusManualReview, out.App.Status)
	require.False(t, out.App.DocumentVerified)
	require.Empty(t, out.App.IDNumberHash)
}

func TestVerifyAbortsOnMissingBlob(t *testing.T) {
	e := newEnv(t)
	app := register(t, e)
	ctx := context.Background()

	_, err := e.svc.AttachDocument(ctx, app.ID, []byte("scan"), "png")
	require.NoError(t, err)

	stored, err := e.repo.Get(ctx, app.ID)
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(e.dir, filepath.Base(stored.Document.Path))))

	_, err = e.svc.Verify(ctx, app.ID)
	require.ErrorIs(t, err, core.ErrNotFound)

	// The record keeps its prior state.
	after, err := e.repo.Get(ctx, app.ID)
	require.NoError(t, err)
	require.Equal(t, core.StatusPendingVerification, after.Status)
	require.False(t, after.DocumentVerified)
}

func TestVerifyAbortsOnTamperedBlob(t *testing.T) {
	e := newEnv(t)
	app := register(t, e)
	ctx := context.Background()

	_, err := e.svc.AttachDocument(ctx, app.ID, []byte("scan bytes here"), "png")
	require.NoError(t, err)

	stored, err := e.repo.Get(ctx, app.ID)
	require.NoError(t, err)
	path := filepath.Join(e.dir, filepath.Base(stored.Document.Path))
	ct, err := os.ReadFile(path)
	require.NoError(t, err)
	ct[0] ^= 0xFF
	require.NoError(t, os.WriteFile(path, ct, 0o600))

	_, err = e.svc.Verify(ctx, app.ID)
	require.ErrorIs(t, err, secretbox.ErrIntegrity)

	after, err := e.repo.Get(ctx, app.ID)
	require.NoError(t, err)
	require.Equal(t, core.StatusPendingVerification, after.Status)
}

func TestFinalizeGateAndIdempotence(t *testing.T) {
	e := newEnv(t)
	app := register(t, e)
	ctx := context.Background()

	_, _, err := e.svc.Finalize(ctx, app.ID, FinalizeInput{})
	require.ErrorIs(t, err, ErrNotDocVerified)

	number := validAadhaar(t)
	e.engine.text = "ID " + number
	_, err = e.svc.AttachDocument(ctx, app.ID, []byte("scan"), "png")
	require.NoError(t, err)
	_, err = e.svc.Verify(ctx, app.ID)
	require.NoError(t, err)

	final, token, err := e.svc.Finalize(ctx, app.ID, FinalizeInput{})
	require.NoError(t, err)
	require.NotEmpty(t, final.PublicID)
	require.True(t, final.MobileVerified, "finalize forces contact flags")
	require.True(t, final.EmailVerified)
	require.Equal(t, core.StatusVerified, final.Status)
	require.NotEmpty(t, token)

	again, _, err := e.svc.Finalize(ctx, app.ID, FinalizeInput{})
	require.NoError(t, err)
	require.Equal(t, final.PublicID, again.PublicID)
}

func TestFinalizeAfterManualReviewFails(t *testing.T) {
	e := newEnv(t)
	app := register(t, e)
	ctx := context.Background()

	e.engine.text = "no usable number in this text"
	_, err := e.svc.AttachDocument(ctx, app.ID, []byte("scan"), "png")
	require.NoError(t, err)

	out, err := e.svc.Verify(ctx, app.ID)
	require.NoError(t, err)
	require.Equal(t, core.StatusManualReview, out.App.Status)

	_, _, err = e.svc.Finalize(ctx, app.ID, FinalizeInput{})
	require.ErrorIs(t, err, ErrNotDocVerified)
}

func TestVerifyRepairsSingleConfusedGlyph(t *testing.T) {
	e := newEnv(t)
	app := register(t, e)
	ctx := context.Background()

	number := validAadhaar(t)
	// Swap a digit for its confusable glyph the way a noisy scan would.
	glyphs := map[byte]byte{'0': 'O', '1': 'l', '2': 'Z', '5': 'S', '8': 'B'}
	confused := []byte(number)
	swapped := false
	for i, c := range confused {
		if g, ok := glyphs[c]; ok {
			confused[i] = g
			swapped = true
			break
		}
	}
	if !swapped {
		t.Skip("generated number has no confusable digit")
	}
	e.engine.text = fmt.Sprintf("%s %s %s", confused[:4], confused[4:8], confused[8:])

	_, err := e.svc.AttachDocument(ctx, app.ID, []byte("scan"), "png")
	require.NoError(t, err)

	out, err := e.svc.Verify(ctx, app.ID)
	require.NoError(t, err)
	require.True(t, out.ChecksumOK)
	require.True(t, out.Repaired)
	require.Equal(t, aadhaar.Digest(number), out.App.IDNumberHash)
}

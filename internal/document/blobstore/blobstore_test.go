package blobstore

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Zee-2005/safara-sub000/internal/security/secretbox"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	key := make([]byte, secretbox.KeySize)
	for i := range key {
		key[i] = byte(i * 7)
	}
	box, err := secretbox.New(key)
	if err != nil {
		t.Fatalf("secretbox.New: %v", err)
	}
	s, err := New(filepath.Join(t.TempDir(), "content"), box)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	raw := []byte("%PDF-1.4 fake document body")
	meta, err := s.Save(ctx, "app-123", raw, "application/pdf")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if meta.Size != int64(len(raw)) || meta.MediaType != "application/pdf" {
		t.Fatalf("bad meta: %+v", meta)
	}
	if meta.IV == "" || meta.Tag == "" {
		t.Fatal("meta missing iv/tag")
	}

	// Ciphertext on disk must differ from the plaintext.
	onDisk, err := os.ReadFile(filepath.Join(s.Dir(), meta.Path))
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if bytes.Contains(onDisk, []byte("fake document")) {
		t.Fatal("plaintext leaked to disk")
	}

	got, err := s.Load(ctx, meta)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatal("roundtrip mismatch")
	}
}

func TestSave_UniqueNames(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seen := map[string]bool{}
	for i := 0; i < 16; i++ {
		meta, err := s.Save(ctx, "owner", []byte("x"), "image/png")
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if seen[meta.Path] {
			t.Fatalf("blob name collision: %s", meta.Path)
		}
		seen[meta.Path] = true
	}
}

func TestLoad_MissingBlob(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	meta, _ := s.Save(ctx, "owner", []byte("data"), "image/png")
	if err := os.Remove(filepath.Join(s.Dir(), meta.Path)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(ctx, meta); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestLoad_TamperedBlob(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	meta, _ := s.Save(ctx, "owner", []byte("sensitive document bytes"), "image/jpeg")

	path := filepath.Join(s.Dir(), meta.Path)
	b, _ := os.ReadFile(path)
	b[0] ^= 0x01
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Load(ctx, meta); !errors.Is(err, secretbox.ErrIntegrity) {
		t.Fatalf("want ErrIntegrity, got %v", err)
	}
}

func TestLoad_CorruptDescriptor(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	meta, _ := s.Save(ctx, "owner", []byte("data"), "image/png")
	meta.IV = "not base64 !!!"
	if _, err := s.Load(ctx, meta); !errors.Is(err, secretbox.ErrIntegrity) {
		t.Fatalf("want ErrIntegrity, got %v", err)
	}
}

func TestNew_CreatesDirIdempotently(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	box, _ := secretbox.New(make([]byte, secretbox.KeySize))
	if _, err := New(dir, box); err != nil {
		t.Fatalf("first New: %v", err)
	}
	if _, err := New(dir, box); err != nil {
		t.Fatalf("second New: %v", err)
	}
	if _, err := New("", box); err == nil {
		t.Fatal("empty dir accepted")
	}
}

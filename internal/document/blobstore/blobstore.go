// Package blobstore persists encrypted documents in a content directory.
//
// One ciphertext file per uploaded document. The iv and tag produced by the
// cipher are recorded on the owning application, not next to the file, so a
// stray file by itself is undecipherable noise.
package blobstore

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Zee-2005/safara-sub000/internal/observability/logger"
	"github.com/Zee-2005/safara-sub000/internal/security/secretbox"
	"github.com/Zee-2005/safara-sub000/internal/store/core"
	"github.com/Zee-2005/safara-sub000/internal/util/atomicwrite"
	"github.com/google/uuid"
)

// ErrNotFound means the descriptor references a blob that is no longer on
// disk. It wraps core.ErrNotFound so callers mapping repository lookups to
// not-found responses catch it with the same errors.Is check.
var ErrNotFound = fmt.Errorf("blobstore: blob not found: %w", core.ErrNotFound)

// Store writes and reads encrypted blobs under a single content directory.
type Store struct {
	dir string
	box *secretbox.Box
}

// New prepares the content directory (idempotent) and returns the store.
func New(dir string, box *secretbox.Box) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("blobstore: content directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("blobstore: mkdir %s: %w", dir, err)
	}
	return &Store{dir: dir, box: box}, nil
}

// Save encrypts raw and writes the ciphertext under a generated name.
// The name derives from the owner id plus timestamp plus random suffix and is
// never taken from user input.
func (s *Store) Save(ctx context.Context, ownerID string, raw []byte, mediaType string) (core.DocumentMeta, error) {
	ciphertext, iv, tag, err := s.box.Encrypt(raw)
	if err != nil {
		return core.DocumentMeta{}, fmt.Errorf("blobstore: encrypt: %w", err)
	}

	name := blobName(ownerID)
	path := filepath.Join(s.dir, name)
	if err := atomicwrite.AtomicWriteFile(path, ciphertext, 0o600); err != nil {
		return core.DocumentMeta{}, fmt.Errorf("blobstore: write: %w", err)
	}

	logger.From(ctx).Debug("blob stored",
		logger.Component("blobstore"),
		logger.BlobName(name),
		logger.Int("size", len(raw)),
	)

	return core.DocumentMeta{
		Path:       name,
		MediaType:  mediaType,
		Size:       int64(len(raw)),
		IV:         base64.StdEncoding.EncodeToString(iv),
		Tag:        base64.StdEncoding.EncodeToString(tag),
		UploadedAt: time.Now().UTC(),
	}, nil
}

// Load reads and decrypts the blob behind meta.
// ErrNotFound when the file is gone; secretbox.ErrIntegrity when the
// ciphertext or recorded iv/tag do not authenticate.
func (s *Store) Load(ctx context.Context, meta core.DocumentMeta) ([]byte, error) {
	// Descriptors only ever hold generated names, but never follow one out
	// of the content directory.
	name := filepath.Base(meta.Path)
	ciphertext, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("blobstore: read: %w", err)
	}

	iv, err := base64.StdEncoding.DecodeString(meta.IV)
	if err != nil {
		return nil, secretbox.ErrIntegrity
	}
	tag, err := base64.StdEncoding.DecodeString(meta.Tag)
	if err != nil {
		return nil, secretbox.ErrIntegrity
	}
	return s.box.Decrypt(ciphertext, iv, tag)
}

// Remove deletes the blob file; missing files are fine.
func (s *Store) Remove(meta core.DocumentMeta) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(meta.Path)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("blobstore: remove: %w", err)
	}
	return nil
}

// Dir returns the content directory path.
func (s *Store) Dir() string { return s.dir }

func blobName(ownerID string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s.enc", ownerID, time.Now().UnixNano(), suffix)
}

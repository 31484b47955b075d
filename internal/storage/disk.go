// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage persists listing photos on the local filesystem. Each
// listing owns one directory under the upload root; the file count in that
// directory is the sole source of truth for the per-listing photo ceiling.
package storage

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"imovia/internal/ident"
	"imovia/internal/models"
)

const (
	// listingsDir is the subdirectory of the upload root that holds one
	// directory per listing.
	listingsDir = "listings"

	// PublicPrefix is the URL prefix under which the upload root is served.
	PublicPrefix = "/uploads"

	// randomSuffixLen is the number of base36 characters appended to
	// generated filenames to avoid same-millisecond collisions.
	randomSuffixLen = 6
)

// allowedPhotoTypes defines MIME types accepted for upload.
var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/avif": true,
}

// Store manages photo files under a configured upload root. Limits are
// injected so tests can point at an isolated temporary directory.
type Store struct {
	root         string
	maxPhotos    int
	maxFileBytes int64
	maxBatch     int
}

// UploadFile is one incoming file of an upload batch.
type UploadFile struct {
	OriginalName string
	ContentType  string
	Data         []byte
}

// New creates a photo store rooted at root. The root directory is created
// if it does not exist.
func New(root string, maxPhotos int, maxFileBytes int64, maxBatch int) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	return &Store{
		root:         root,
		maxPhotos:    maxPhotos,
		maxFileBytes: maxFileBytes,
		maxBatch:     maxBatch,
	}, nil
}

// MaxPhotos returns the configured per-listing photo ceiling.
func (s *Store) MaxPhotos() int { return s.maxPhotos }

// MaxFileBytes returns the configured per-file size limit.
func (s *Store) MaxFileBytes() int64 { return s.maxFileBytes }

// MaxBatch returns the maximum number of files accepted per request.
func (s *Store) MaxBatch() int { return s.maxBatch }

// listingDir maps a sanitized identifier to its directory on disk.
func (s *Store) listingDir(id string) string {
	return filepath.Join(s.root, listingsDir, id)
}

// photoURL builds the public URL for a stored file.
func photoURL(id, filename string) string {
	return path.Join(PublicPrefix, listingsDir, id, filename)
}

// countFiles counts the entries in a listing's directory. A missing
// directory counts as zero entries, not an error.
func (s *Store) countFiles(id string) (int, error) {
	entries, err := os.ReadDir(s.listingDir(id))
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read listing dir: %w", err)
	}
	return len(entries), nil
}

// CheckCapacity reports how many photos a listing currently holds and
// whether another upload may proceed. This is advisory only: it does not
// reserve capacity, so SaveBatch re-checks after writing.
func (s *Store) CheckCapacity(listingID string) (int, error) {
	id := ident.Sanitize(listingID)
	if id == "" {
		return 0, ErrInvalidIdentifier
	}
	count, err := s.countFiles(id)
	if err != nil {
		return 0, err
	}
	if count >= s.maxPhotos {
		return count, &CapacityError{Current: count, Limit: s.maxPhotos}
	}
	return count, nil
}

// SaveBatch validates and persists an upload batch for one listing.
// The batch is all-or-nothing: any validation failure rejects every file,
// and a post-write overflow (two concurrent uploads racing past the
// advisory capacity check) rolls back this batch's own writes. Returned
// photos are in submission order.
func (s *Store) SaveBatch(listingID string, files []UploadFile) ([]models.Photo, error) {
	id := ident.Sanitize(listingID)
	if id == "" {
		return nil, ErrInvalidIdentifier
	}

	if _, err := s.CheckCapacity(listingID); err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if len(files) > s.maxBatch {
		return nil, fmt.Errorf("%w: got %d, limit %d", ErrTooManyFiles, len(files), s.maxBatch)
	}
	for _, f := range files {
		if !allowedPhotoTypes[f.ContentType] {
			return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedMediaType, f.ContentType, f.OriginalName)
		}
		if int64(len(f.Data)) > s.maxFileBytes {
			return nil, fmt.Errorf("%w: %s is %d bytes", ErrPayloadTooLarge, f.OriginalName, len(f.Data))
		}
	}

	dir := s.listingDir(id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create listing dir: %w", err)
	}

	var written []string
	photos := make([]models.Photo, 0, len(files))
	for _, f := range files {
		name := generateFilename(f.OriginalName)
		if err := writeExclusive(filepath.Join(dir, name), f.Data); err != nil {
			s.removeFiles(dir, written)
			return nil, fmt.Errorf("write photo: %w", err)
		}
		written = append(written, name)
		photos = append(photos, models.Photo{
			Filename:     name,
			OriginalName: f.OriginalName,
			Size:         int64(len(f.Data)),
			URL:          photoURL(id, name),
		})
	}

	// Re-read the directory to close the race between the advisory check
	// and the writes above. On overflow this batch removes only its own
	// files; the concurrent winner's files are left untouched.
	count, err := s.countFiles(id)
	if err != nil {
		s.removeFiles(dir, written)
		return nil, err
	}
	if count > s.maxPhotos {
		s.removeFiles(dir, written)
		return nil, &CapacityError{Current: count, Limit: s.maxPhotos}
	}

	return photos, nil
}

// List enumerates a listing's photos. A listing with no directory yet
// yields an empty list, never an error.
func (s *Store) List(listingID string) ([]models.Photo, error) {
	id := ident.Sanitize(listingID)
	if id == "" {
		return nil, ErrInvalidIdentifier
	}

	entries, err := os.ReadDir(s.listingDir(id))
	if os.IsNotExist(err) {
		return []models.Photo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read listing dir: %w", err)
	}

	photos := make([]models.Photo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		photos = append(photos, models.Photo{
			Filename: entry.Name(),
			URL:      photoURL(id, entry.Name()),
		})
	}
	return photos, nil
}

// ListPhotos adapts List to the context-taking photo source interface the
// enrichment service consumes. Local directory reads need no cancellation.
func (s *Store) ListPhotos(_ context.Context, listingID string) ([]models.Photo, error) {
	return s.List(listingID)
}

// removeFiles deletes the named files from dir. Failures are logged and
// swallowed: the outcome of the batch is already decided by the caller.
func (s *Store) removeFiles(dir string, names []string) {
	for _, name := range names {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			slog.Warn("rollback delete failed", "file", name, "error", err)
		}
	}
}

// writeExclusive writes data to a file that must not already exist.
func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// generateFilename builds a collision-resistant name from the current
// time plus a random base36 suffix, keeping the original extension.
// Files without an extension default to .jpg.
func generateFilename(originalName string) string {
	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), randomBase36(randomSuffixLen), ext)
}

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// randomBase36 returns n random base36 characters.
func randomBase36(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms; fall back to
		// the timestamp alone rather than panicking mid-upload.
		return ""
	}
	for i := range b {
		b[i] = base36Alphabet[int(b[i])%len(base36Alphabet)]
	}
	return string(b)
}

// Package store keeps replay reports on disk, addressed by script content.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/uifirst/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// DefaultDir is where reports are kept, relative to the working directory.
	DefaultDir = ".uifirst/reports"

	dirPerm  = 0o750
	filePerm = 0o644
)

var _ ports.ReportStore = (*Store)(nil)

// Store implements ports.ReportStore using a file-per-run strategy.
type Store struct {
	root string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{root: filepath.Clean(dir)}
}

// Digest returns the address of a script's bytes.
func Digest(script []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(script))
}

// Get retrieves the run stored under digest.
func (s *Store) Get(digest string) (*domain.Run, error) {
	filename, err := s.filename(digest)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // Path is constructed from the store root and a validated digest
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "digest", digest)
	}

	var run domain.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "digest", digest)
	}
	return &run, nil
}

// Put stores the run under its digest.
func (s *Store) Put(run domain.Run) error {
	filename, err := s.filename(run.Digest)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	if err := os.MkdirAll(filepath.Dir(filename), dirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	// Write through a temporary file so readers never see a partial report.
	tmp := filename + ".tmp"
	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "digest", run.Digest)
	}
	if err := os.Rename(tmp, filename); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "digest", run.Digest)
	}
	return nil
}

// filename shards reports by the first two digest characters.
func (s *Store) filename(digest string) (string, error) {
	if len(digest) != 16 {
		return "", zerr.With(domain.ErrStoreInvalidDigest, "digest", digest)
	}
	for _, c := range digest {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", zerr.With(domain.ErrStoreInvalidDigest, "digest", digest)
		}
	}
	return filepath.Join(s.root, digest[:2], digest+".json"), nil
}

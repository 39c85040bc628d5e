// Package filestore persists the credential as a single JSON file,
// the client-side equivalent of a browser's local storage slot.
package filestore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/earthen/shopctl/credentials"
)

var _ credentials.Store = (*FileStore)(nil)

const slotFileMode = 0o600

// FileStore stores the credential at a fixed path on disk.
type FileStore struct {
	path string
}

// New creates a FileStore rooted at path. Parent directories are created
// lazily on the first Save.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the conventional slot location under the user's
// config directory, falling back to the working directory when the
// config dir cannot be resolved.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".shopctl-credentials.json"
	}
	return filepath.Join(dir, "shopctl", "credentials.json")
}

// Save writes the credential as JSON, overwriting any prior value.
func (s *FileStore) Save(credential *credentials.Credential) error {
	data, err := json.Marshal(credential)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, slotFileMode)
}

// Load returns the stored credential, or nil when the slot is missing or
// holds an unparseable value. A corrupt slot is treated as absent and
// removed, so a bad value never lingers on disk past the first read.
func (s *FileStore) Load() (*credentials.Credential, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		// Unreadable slots degrade to "no session" rather than failing.
		if !errors.Is(err, fs.ErrNotExist) {
			log.Debug().Err(err).Str("path", s.path).Msg("credential slot unreadable, treating as absent")
		}
		return nil, nil
	}

	var cred credentials.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		log.Debug().Err(err).Str("path", s.path).Msg("credential slot unparseable, clearing")
		_ = s.Clear()
		return nil, nil
	}
	if cred.Empty() {
		_ = s.Clear()
		return nil, nil
	}
	return &cred, nil
}

// Clear removes the slot file. Removing an absent slot is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

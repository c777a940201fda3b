// Package store persists the users table and the active account in a single
// file. Writes truncate the file in place and nothing is locked, so two
// concurrent invocations race and the last writer wins.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/aegooby/goat/internal/models"
)

// DefaultFileName is created in the home directory when no path is configured.
const DefaultFileName = ".goat.toml"

// FileStore is the credential store bound to one file.
type FileStore struct {
	path   string
	format Format
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:   path,
		format: FormatForPath(path),
	}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Format() Format {
	return s.format
}

// ResolvePath expands a configured store path. An empty path selects
// ~/.goat.toml.
func ResolvePath(configured string) (string, error) {
	configured = strings.TrimSpace(configured)

	if len(configured) > 0 && !strings.HasPrefix(configured, "~") {
		return configured, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrHomeDirectoryUnavailable, err)
	}
	if len(home) == 0 {
		return "", models.ErrHomeDirectoryUnavailable
	}

	switch {
	case len(configured) == 0:
		return filepath.Join(home, DefaultFileName), nil
	case configured == "~":
		return home, nil
	case strings.HasPrefix(configured, "~/"):
		return filepath.Join(home, configured[2:]), nil
	default:
		return configured, nil
	}
}

// Ensure creates the file with an empty users table if it does not exist.
func (s *FileStore) Ensure() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", models.ErrConfigRead, err)
	}

	logrus.WithFields(logrus.Fields{
		"path": s.path,
	}).Debugln("Creating credential store")

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("%w: %w", models.ErrConfigWrite, err)
	}

	return s.Save(models.NewCredentialStore())
}

func (s *FileStore) Load() (*models.CredentialStore, error) {

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrConfigRead, err)
	}

	doc, err := decode(s.format, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrConfigRead, s.path, err)
	}

	if doc.HasDanglingActive() {
		active, _ := doc.Active()
		logrus.WithFields(logrus.Fields{
			"path":   s.path,
			"active": active,
		}).Warnln("Active account has no stored token")
	}

	return doc, nil
}

// Save rewrites the whole file. It is not atomic: a crash mid-write can leave
// a truncated file behind.
func (s *FileStore) Save(doc *models.CredentialStore) error {

	data, err := encode(s.format, doc)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrConfigWrite, err)
	}

	// Only allow read/write access to the owner
	file, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrConfigWrite, err)
	}
	defer file.Close()

	if err := file.Truncate(0); err != nil {
		return fmt.Errorf("%w: %w", models.ErrConfigWrite, err)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %w", models.ErrConfigWrite, err)
	}

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("%w: %w", models.ErrConfigWrite, err)
	}

	logrus.WithFields(logrus.Fields{
		"path":  s.path,
		"users": len(doc.Users),
	}).Debugln("Saved credential store")

	return nil
}

// UpsertAccount inserts or overwrites an account and saves.
func (s *FileStore) UpsertAccount(name string, token string, email string) error {
	return s.update(func(doc *models.CredentialStore) error {
		if err := doc.Upsert(name, token, email); err != nil {
			return fmt.Errorf("%w: name and token are required", err)
		}
		return nil
	})
}

// RemoveAccount deletes an account and saves; unknown names are not an error.
func (s *FileStore) RemoveAccount(name string) error {
	return s.update(func(doc *models.CredentialStore) error {
		doc.Remove(name)
		return nil
	})
}

// SetActive records the active account, or clears it when name is nil.
func (s *FileStore) SetActive(name *string) error {
	return s.update(func(doc *models.CredentialStore) error {
		doc.SetActive(name)
		return nil
	})
}

func (s *FileStore) update(mutate func(*models.CredentialStore) error) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	if err := mutate(doc); err != nil {
		return err
	}
	return s.Save(doc)
}

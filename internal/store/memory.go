package store

import (
	"fmt"

	"github.com/aegooby/goat/internal/models"
)

// MemoryStore keeps the encoded document in memory. Every Load decodes a fresh
// copy so callers cannot alias each other's state.
type MemoryStore struct {
	data  []byte
	Saves int
}

func NewMemoryStore(doc *models.CredentialStore) (*MemoryStore, error) {
	m := &MemoryStore{}
	if doc == nil {
		doc = models.NewCredentialStore()
	}
	data, err := encode(FormatTOML, doc)
	if err != nil {
		return nil, err
	}
	m.data = data
	return m, nil
}

func (m *MemoryStore) Load() (*models.CredentialStore, error) {
	doc, err := decode(FormatTOML, m.data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrConfigRead, err)
	}
	return doc, nil
}

func (m *MemoryStore) Save(doc *models.CredentialStore) error {
	data, err := encode(FormatTOML, doc)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrConfigWrite, err)
	}
	m.data = data
	m.Saves++
	return nil
}

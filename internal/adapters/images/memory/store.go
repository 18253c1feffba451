package memory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"animal-adoption/internal/ports/images"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("image not found")

// Store guarda los bytes en memoria y arma URLs bajo baseURL. Para dev y tests.
type Store struct {
	mu      sync.RWMutex
	baseURL string
	blobs   map[string][]byte
}

var _ images.Store = (*Store)(nil)

func NewStore(baseURL string) *Store {
	return &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		blobs:   make(map[string][]byte),
	}
}

func (s *Store) Upload(ctx context.Context, u images.Upload) (images.Stored, error) {
	if u.Body == nil {
		return images.Stored{}, errors.New("empty upload")
	}
	b, err := io.ReadAll(u.Body)
	if err != nil {
		return images.Stored{}, fmt.Errorf("read upload: %w", err)
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.blobs[id] = b
	s.mu.Unlock()

	return images.Stored{
		URL:      s.baseURL + "/" + id + path.Ext(u.Filename),
		PublicID: id,
	}, nil
}

func (s *Store) Delete(ctx context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blobs[publicID]; !ok {
		return ErrNotFound
	}
	delete(s.blobs, publicID)
	return nil
}

// Len devuelve cuántas imágenes siguen guardadas.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

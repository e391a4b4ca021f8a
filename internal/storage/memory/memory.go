package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/arabianblog/backend/internal/storage"
)

// Store is an in-memory blob backend used by tests and STORAGE_DRIVER=memory
// development runs.
type Store struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// PutErr and DeleteErr let tests inject backend failures
	PutErr    error
	DeleteErr error
}

func New() *Store {
	return &Store{objects: make(map[string][]byte)}
}

func (s *Store) Put(ctx context.Context, data []byte, mimeType, namespace string) (storage.Locator, error) {
	if s.PutErr != nil {
		return storage.Locator{}, s.PutErr
	}
	if len(data) == 0 {
		return storage.Locator{}, fmt.Errorf("%w: empty file", storage.ErrInvalidPayload)
	}
	resource, ok := storage.ResourceForMIME(mimeType)
	if !ok {
		return storage.Locator{}, fmt.Errorf("%w: unsupported content type %s", storage.ErrInvalidPayload, mimeType)
	}

	key := fmt.Sprintf("%s/%s%s", namespace, uuid.New().String(), storage.ExtensionForMIME(mimeType))

	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = buf

	return storage.Locator{
		Kind:      storage.KindMemory,
		Resource:  resource,
		PublicURL: "memory://" + key,
		DeleteKey: key,
	}, nil
}

func (s *Store) Delete(ctx context.Context, loc storage.Locator) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	if loc.IsZero() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, loc.DeleteKey)
	return nil
}

func (s *Store) Exists(ctx context.Context, loc storage.Locator) (bool, error) {
	if loc.IsZero() {
		return false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[loc.DeleteKey]
	return ok, nil
}

// Len reports how many blobs are currently stored
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore persists blobs on the local filesystem under a configured
// upload directory. Files are served by the API under /api/files/.
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore creates a local-disk store rooted at root. Namespaces
// are created lazily on write; creating the root here fails fast on
// misconfigured paths.
func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Put writes data to a fresh namespaced file and returns its locator
func (s *LocalStore) Put(ctx context.Context, data []byte, mimeType, namespace string) (Locator, error) {
	if len(data) == 0 {
		return Locator{}, fmt.Errorf("%w: empty file", ErrInvalidPayload)
	}
	resource, ok := ResourceForMIME(mimeType)
	if !ok {
		return Locator{}, fmt.Errorf("%w: unsupported content type %s", ErrInvalidPayload, mimeType)
	}

	key := fmt.Sprintf("%s/%s%s", namespace, uuid.New().String(), ExtensionForMIME(mimeType))
	absPath := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return Locator{}, err
	}

	// write to a temp file first so a partial write never becomes visible
	tmp := absPath + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return Locator{}, err
	}
	if err := os.Rename(tmp, absPath); err != nil {
		_ = os.Remove(tmp)
		return Locator{}, err
	}

	return Locator{
		Kind:      KindLocal,
		Resource:  resource,
		PublicURL: fmt.Sprintf("%s/api/files/%s", s.baseURL, key),
		DeleteKey: absPath,
	}, nil
}

// Delete removes the file at the locator. A missing file means the
// blob is already clean and is not an error.
func (s *LocalStore) Delete(ctx context.Context, loc Locator) error {
	if loc.IsZero() {
		return nil
	}
	if err := os.Remove(loc.DeleteKey); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists reports whether the blob at the locator is present on disk
func (s *LocalStore) Exists(ctx context.Context, loc Locator) (bool, error) {
	if loc.IsZero() {
		return false, nil
	}
	if _, err := os.Stat(loc.DeleteKey); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

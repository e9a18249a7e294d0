package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	appshipping "github.com/erp/shipping/internal/application/shipping"
)

// MemoryObjectStorage keeps objects in process memory. It backs tests
// and local development runs that have no S3-compatible backend.
type MemoryObjectStorage struct {
	mu      sync.RWMutex
	objects map[string]memoryObject

	// BaseURL is the base URL used for generated download URLs
	BaseURL string
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryObjectStorage creates an empty in-memory object store
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		objects: make(map[string]memoryObject),
		BaseURL: "https://storage.example.com",
	}
}

// Ensure MemoryObjectStorage implements ObjectStorageService
var _ appshipping.ObjectStorageService = (*MemoryObjectStorage)(nil)

// PutObject stores the object bytes under the given key
func (s *MemoryObjectStorage) PutObject(_ context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.objects[storageKey] = memoryObject{data: buf, contentType: contentType}
	s.mu.Unlock()
	return nil
}

// GenerateDownloadURL returns a synthetic download URL for the object
func (s *MemoryObjectStorage) GenerateDownloadURL(
	_ context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)
	return url, expiresAt, nil
}

// DeleteObject removes the object if present
func (s *MemoryObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	delete(s.objects, storageKey)
	s.mu.Unlock()
	return nil
}

// ObjectExists reports whether the key is stored
func (s *MemoryObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.RLock()
	_, ok := s.objects[storageKey]
	s.mu.RUnlock()
	return ok, nil
}

// GetObject returns the stored bytes and content type for inspection in tests
func (s *MemoryObjectStorage) GetObject(storageKey string) ([]byte, string, bool) {
	s.mu.RLock()
	obj, ok := s.objects[storageKey]
	s.mu.RUnlock()
	if !ok {
		return nil, "", false
	}
	return obj.data, obj.contentType, true
}

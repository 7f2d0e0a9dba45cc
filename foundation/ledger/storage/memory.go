package storage

import "sync"

// Memory represents the storage implementation for keeping blobs in
// memory. This implements the Storer interface and is used by tests
// and by ledgers that don't need their state to survive the process.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemory constructs a Memory store for use.
func NewMemory() *Memory {
	return &Memory{
		blobs: make(map[string][]byte),
	}
}

// Save stores a copy of the blob under the specified key.
func (m *Memory) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	blob := make([]byte, len(data))
	copy(blob, data)
	m.blobs[key] = blob

	return nil
}

// Load returns a copy of the blob stored under the specified key.
func (m *Memory) Load(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blob, exists := m.blobs[key]
	if !exists {
		return nil, ErrNotExist
	}

	data := make([]byte, len(blob))
	copy(data, blob)

	return data, nil
}

// Delete removes the blob stored under the specified key.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.blobs[key]; !exists {
		return ErrNotExist
	}

	delete(m.blobs, key)

	return nil
}

// Close in this implementation has nothing to do since everything
// is in memory.
func (m *Memory) Close() error {
	return nil
}

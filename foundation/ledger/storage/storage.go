// Package storage provides the key-value blob stores the ledger
// persists its snapshots to.
package storage

import (
	"errors"
	"fmt"
)

// ErrNotExist is returned from Load and Delete when no blob is stored
// under the specified key.
var ErrNotExist = errors.New("key does not exist")

// Storer interface represents the behavior required to be implemented
// by any package providing support for storing and loading ledger
// snapshots.
type Storer interface {
	Save(key string, data []byte) error
	Load(key string) ([]byte, error)
	Delete(key string) error
	Close() error
}

// The set of supported store implementations.
const (
	TypeMemory = "memory"
	TypeDisk   = "disk"
	TypeBolt   = "bolt"
)

// New constructs the Storer identified by storeType. The path is the
// directory for the disk store or the database file for the bolt store
// and is ignored by the memory store.
func New(storeType string, path string) (Storer, error) {
	switch storeType {
	case TypeMemory:
		return NewMemory(), nil

	case TypeDisk:
		return NewDisk(path)

	case TypeBolt:
		return NewBolt(path)
	}

	return nil, fmt.Errorf("unknown store type %q", storeType)
}

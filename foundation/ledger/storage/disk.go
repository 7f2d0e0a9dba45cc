package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Disk represents the storage implementation for reading and storing
// blobs in their own separate files on disk. This implements the
// Storer interface.
type Disk struct {
	root string
}

// NewDisk constructs a Disk store rooted at the specified directory.
func NewDisk(root string) (*Disk, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}

	return &Disk{root: root}, nil
}

// Save writes the blob to a file named after the key.
func (d *Disk) Save(key string, data []byte) error {
	f, err := os.OpenFile(d.getPath(key), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return err
	}

	return nil
}

// Load reads the blob stored under the specified key.
func (d *Disk) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(d.getPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExist
	}

	return data, err
}

// Delete removes the blob stored under the specified key.
func (d *Disk) Delete(key string) error {
	err := os.Remove(d.getPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotExist
	}

	return err
}

// Close in this implementation has nothing to do since each blob is
// written to its own file and immediately closed.
func (d *Disk) Close() error {
	return nil
}

// getPath forms the path to the file for the specified key.
func (d *Disk) getPath(key string) string {
	return filepath.Join(d.root, key+".json")
}

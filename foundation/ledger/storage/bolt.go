package storage

import (
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

// snapshotBucket is the single bucket all ledger snapshots live in.
var snapshotBucket = []byte("snapshots")

// Bolt represents the storage implementation for keeping blobs in a
// bolt database file. This implements the Storer interface and is the
// store the node service runs with.
type Bolt struct {
	db *bbolt.DB
}

// NewBolt opens or creates a bolt database at the specified path.
func NewBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(snapshotBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{db: db}, nil
}

// Save stores the blob under the specified key.
func (b *Bolt) Save(key string, data []byte) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotBucket).Put([]byte(key), data)
	})
}

// Load returns the blob stored under the specified key. The value is
// copied out since bolt's memory is only valid inside the transaction.
func (b *Bolt) Load(key string) ([]byte, error) {
	var data []byte

	err := b.db.View(func(tx *bbolt.Tx) error {
		value := tx.Bucket(snapshotBucket).Get([]byte(key))
		if value == nil {
			return ErrNotExist
		}

		data = make([]byte, len(value))
		copy(data, value)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

// Delete removes the blob stored under the specified key.
func (b *Bolt) Delete(key string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(snapshotBucket)
		if bucket.Get([]byte(key)) == nil {
			return ErrNotExist
		}

		return bucket.Delete([]byte(key))
	})
}

// Close makes sure the database file is properly closed.
func (b *Bolt) Close() error {
	return b.db.Close()
}

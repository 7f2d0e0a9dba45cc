package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/ardanlabs/ledger/foundation/ledger/storage"
	"github.com/stretchr/testify/require"
)

func TestStorers(t *testing.T) {
	stores := map[string]func(t *testing.T) storage.Storer{
		storage.TypeMemory: func(t *testing.T) storage.Storer {
			return storage.NewMemory()
		},
		storage.TypeDisk: func(t *testing.T) storage.Storer {
			strg, err := storage.NewDisk(t.TempDir())
			require.NoError(t, err)
			return strg
		},
		storage.TypeBolt: func(t *testing.T) storage.Storer {
			strg, err := storage.NewBolt(filepath.Join(t.TempDir(), "ledger.db"))
			require.NoError(t, err)
			return strg
		},
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			strg := newStore(t)
			defer func() {
				require.NoError(t, strg.Close())
			}()

			_, err := strg.Load("ledger")
			require.ErrorIs(t, err, storage.ErrNotExist)

			require.NoError(t, strg.Save("ledger", []byte(`{"chain":[]}`)))

			data, err := strg.Load("ledger")
			require.NoError(t, err)
			require.Equal(t, []byte(`{"chain":[]}`), data)

			require.NoError(t, strg.Save("ledger", []byte(`{"chain":null}`)))

			data, err = strg.Load("ledger")
			require.NoError(t, err)
			require.Equal(t, []byte(`{"chain":null}`), data, "save must overwrite")

			require.NoError(t, strg.Delete("ledger"))

			_, err = strg.Load("ledger")
			require.ErrorIs(t, err, storage.ErrNotExist)

			require.ErrorIs(t, strg.Delete("ledger"), storage.ErrNotExist)
		})
	}
}

func TestNewUnknownType(t *testing.T) {
	_, err := storage.New("redis", "")
	require.Error(t, err)
}

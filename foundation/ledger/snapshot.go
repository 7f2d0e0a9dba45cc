package ledger

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/ardanlabs/ledger/foundation/ledger/storage"
)

// snapshot represents what is written to the key-value store. Stored
// nonce and hash values are restored verbatim rather than recomputed;
// this trust-on-load is deliberate, a corrupted store restores a chain
// whose damage is only caught by Validate.
type snapshot struct {
	Chain   []Block `json:"chain"`
	Pending []Tx    `json:"pending"`
}

// persist writes the current chain and pending queue to the store. A
// failed save is logged and dropped; the in-memory state remains
// authoritative and the next successful save will catch up.
//
// Must be called with the ledger mutex held.
func (l *Ledger) persist() {
	data, err := json.Marshal(snapshot{Chain: l.chain, Pending: l.pending})
	if err != nil {
		l.evHandler("ledger: persist: WARNING: encode snapshot: %s", err)
		return
	}

	if err := l.storer.Save(l.storageKey, data); err != nil {
		l.evHandler("ledger: persist: WARNING: save snapshot: %s", err)
	}
}

// restore loads the snapshot from the store and reconstructs the chain
// and pending queue. Any failure degrades to a fresh genesis block.
func (l *Ledger) restore() {
	l.evHandler("ledger: restore: started")
	defer l.evHandler("ledger: restore: completed")

	if snap, ok := l.loadSnapshot(); ok {
		l.chain = snap.Chain
		l.pending = snap.Pending
		l.evHandler("ledger: restore: blocks[%d] pending[%d]", len(snap.Chain), len(snap.Pending))
		return
	}

	l.evHandler("ledger: restore: synthesizing genesis block")
	l.chain = []Block{newGenesisBlock(time.Now().UTC().UnixMilli())}
	l.pending = nil
}

// loadSnapshot reads and decodes the persisted snapshot, reporting
// whether a usable chain was found.
func (l *Ledger) loadSnapshot() (snapshot, bool) {
	data, err := l.storer.Load(l.storageKey)
	switch {
	case errors.Is(err, storage.ErrNotExist):
		l.evHandler("ledger: restore: no snapshot found")
		return snapshot{}, false

	case err != nil:
		l.evHandler("ledger: restore: WARNING: load snapshot: %s", err)
		return snapshot{}, false
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		l.evHandler("ledger: restore: WARNING: corrupt snapshot: %s", err)
		return snapshot{}, false
	}

	if len(snap.Chain) == 0 {
		l.evHandler("ledger: restore: WARNING: snapshot has no chain")
		return snapshot{}, false
	}

	return snap, true
}

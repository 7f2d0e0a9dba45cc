package ledger

import (
	"context"
	"encoding/json"

	"github.com/ardanlabs/ledger/foundation/ledger/digest"
)

// Block represents a group of transactions sealed into the chain. The
// nonce and hash fields are written incrementally during mining; once a
// block is appended to the chain it is treated as immutable.
type Block struct {
	Timestamp int64  `json:"timestamp"` // Time the block was mined in epoch milliseconds.
	Trans     []Tx   `json:"transactions"`
	PrevHash  string `json:"prev_hash"` // Hash of the previous block in the chain.
	Nonce     uint64 `json:"nonce"`     // Value identified to solve the hash solution.
	Hash      string `json:"hash"`
}

// newGenesisBlock constructs the sentinel first block of a chain. The
// genesis block carries zero hashes and is exempt from proof-of-work.
func newGenesisBlock(timestamp int64) Block {
	return Block{
		Timestamp: timestamp,
		PrevHash:  digest.ZeroHash,
		Hash:      digest.ZeroHash,
	}
}

// Fingerprint returns the canonical bytes fed to the hasher. The field
// order and the transaction order are preserved exactly, so any change
// to the previous hash, timestamp, transaction list, or nonce changes
// the fingerprint.
func (b Block) Fingerprint() []byte {
	fingerprint := struct {
		PrevHash  string `json:"prev_hash"`
		Timestamp int64  `json:"timestamp"`
		Trans     []Tx   `json:"transactions"`
		Nonce     uint64 `json:"nonce"`
	}{
		PrevHash:  b.PrevHash,
		Timestamp: b.Timestamp,
		Trans:     b.Trans,
		Nonce:     b.Nonce,
	}

	// Validated transactions carry only finite amounts so this
	// marshaling cannot fail.
	data, _ := json.Marshal(fingerprint)

	return data
}

// performPOW does the work of mining to find a valid hash for the
// block. The search starts at nonce zero and increments until a hash
// with the required number of leading zero hex digits is found. Pointer
// semantics are being used since a nonce is being discovered.
func (b *Block) performPOW(ctx context.Context, difficulty uint, ev EventHandler) error {
	ev("ledger: performPOW: MINING: started")
	defer ev("ledger: performPOW: MINING: completed")

	for _, tx := range b.Trans {
		ev("ledger: performPOW: MINING: tx[%s]", tx)
	}

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("ledger: performPOW: MINING: attempts[%d]", attempts)
		}

		// Was mining cancelled by the caller.
		if ctx.Err() != nil {
			ev("ledger: performPOW: MINING: CANCELLED")
			return ctx.Err()
		}

		// Hash the block and check if we have solved the puzzle.
		hash := digest.Hash(b.Fingerprint())
		if !isHashSolved(difficulty, hash) {
			b.Nonce++
			continue
		}

		b.Hash = hash

		ev("ledger: performPOW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", b.PrevHash, hash)
		ev("ledger: performPOW: MINING: attempts[%d]", attempts)

		return nil
	}
}

// isHashSolved checks the hash to make sure it complies with the POW
// rules. We need to match a difficulty number of 0's.
func isHashSolved(difficulty uint, hash string) bool {
	const match = "000000"

	if len(hash) != 64 || difficulty > uint(len(match)) {
		return false
	}

	return hash[:difficulty] == match[:difficulty]
}

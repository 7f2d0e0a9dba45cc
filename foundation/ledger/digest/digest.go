// Package digest provides the hashing support for sealing and
// verifying blocks in the ledger.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
)

// ZeroHash is the sentinel hash carried by the genesis block.
const ZeroHash = "0"

// Hash returns the hex encoded sha256 digest for the specified data.
// The output is always 64 hex digits and is stable across process
// restarts so chain verification is reproducible.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"os"
	"time"
)

// Genesis represents the genesis file. It carries the ledger settings
// that must be agreed on before any block is mined. The storage key is
// configuration so multiple ledgers can share one store in a process.
type Genesis struct {
	Date         time.Time `json:"date"`
	Name         string    `json:"name"`          // A human readable name for this ledger instance.
	Difficulty   uint      `json:"difficulty"`    // How difficult it needs to be to solve the work problem.
	MiningReward float64   `json:"mining_reward"` // Reward for mining a block.
	StorageKey   string    `json:"storage_key"`   // Key the ledger snapshot is persisted under.
}

// Load opens and consumes the genesis file at the specified path.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Package ledger is the core API for the append-only, tamper-evident
// transaction ledger and implements all the business rules and processing.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ardanlabs/ledger/foundation/ledger/digest"
	"github.com/ardanlabs/ledger/foundation/ledger/storage"
)

// The bounds the proof-of-work difficulty must stay within. The
// difficulty is the number of leading zero hex digits a sealed block's
// hash must carry.
const (
	MinDifficulty = 1
	MaxDifficulty = 6
)

var (
	// ErrInvalidDifficulty is returned when a difficulty setting falls
	// outside the supported bounds.
	ErrInvalidDifficulty = fmt.Errorf("difficulty must be between %d and %d", MinDifficulty, MaxDifficulty)

	// ErrChainChanged is returned from Mine when the chain tip moved
	// while the proof-of-work search was running. The candidate block
	// is discarded.
	ErrChainChanged = errors.New("chain changed during mining")
)

// EventHandler defines a function that is called when events occur in
// the processing of the ledger.
type EventHandler func(v string, args ...any)

// =============================================================================

// Config represents the configuration required to construct a ledger.
type Config struct {
	Storer       storage.Storer
	StorageKey   string
	Difficulty   uint
	MiningReward float64
	EvHandler    EventHandler
}

// Ledger manages the chain of sealed blocks and the pending transaction
// queue. All mutating operations are serialized through the ledger's
// mutex; the proof-of-work search itself runs outside the lock so reads
// stay available while mining.
type Ledger struct {
	storer     storage.Storer
	storageKey string
	reward     float64
	evHandler  EventHandler

	mu         sync.RWMutex
	chain      []Block
	pending    []Tx
	difficulty uint

	// mineMu allows only one proof-of-work search at a time.
	mineMu sync.Mutex
}

// New constructs a ledger, restoring existing state from the configured
// store. When no snapshot exists, or restoration fails, a fresh genesis
// block is synthesized.
func New(cfg Config) (*Ledger, error) {
	if cfg.Storer == nil {
		return nil, errors.New("storer is required")
	}

	if cfg.StorageKey == "" {
		return nil, errors.New("storage key is required")
	}

	if cfg.Difficulty < MinDifficulty || cfg.Difficulty > MaxDifficulty {
		return nil, ErrInvalidDifficulty
	}

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	l := Ledger{
		storer:     cfg.Storer,
		storageKey: cfg.StorageKey,
		reward:     cfg.MiningReward,
		evHandler:  ev,
		difficulty: cfg.Difficulty,
	}

	l.restore()

	return &l, nil
}

// =============================================================================

// SubmitTransaction validates the specified transaction and appends it
// to the pending queue in FIFO order. There is no balance sufficiency
// check and the from address is not authenticated. On failure the
// pending queue is left unchanged and ErrInvalidTransaction is returned.
func (l *Ledger) SubmitTransaction(tx Tx) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending = append(l.pending, tx)
	l.evHandler("ledger: submit: accepted: tx[%s]: pending[%d]", tx, len(l.pending))

	l.persist()

	return nil
}

// Mine snapshots the pending queue into a candidate block linked to the
// current chain tip and performs the proof-of-work search. On success
// the sealed block is appended to the chain and the pending queue is
// replaced with a single reward transaction for the miner. The search
// checks the context once per nonce attempt so it can be cancelled.
func (l *Ledger) Mine(ctx context.Context, minerAddress string) (Block, error) {
	if minerAddress == "" {
		return Block{}, errors.New("missing miner address")
	}

	l.mineMu.Lock()
	defer l.mineMu.Unlock()

	l.evHandler("ledger: mine: MINING: snapshot pending queue")

	// Snapshot under read lock. The chain is not mutated until the
	// search completes, so reads stay safe while mining runs.
	l.mu.RLock()
	difficulty := l.difficulty
	tip := l.chain[len(l.chain)-1]
	trans := make([]Tx, len(l.pending))
	copy(trans, l.pending)
	l.mu.RUnlock()

	nb := Block{
		Timestamp: time.Now().UTC().UnixMilli(),
		Trans:     trans,
		PrevHash:  tip.Hash,
	}

	if err := nb.performPOW(ctx, difficulty, l.evHandler); err != nil {
		return Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return Block{}, ctx.Err()
	}

	l.evHandler("ledger: mine: MINING: update local state")

	l.mu.Lock()
	defer l.mu.Unlock()

	// A reset could have replaced the chain while the search ran.
	if latest := l.chain[len(l.chain)-1]; latest.Hash != nb.PrevHash {
		return Block{}, ErrChainChanged
	}

	l.chain = append(l.chain, nb)
	l.pending = []Tx{{From: RewardAccount, To: minerAddress, Amount: l.reward}}

	l.persist()

	return nb, nil
}

// Validate checks every block after genesis for a matching recomputed
// hash, correct linkage to its predecessor, and the required number of
// leading zero hex digits. Blocks are checked against the ledger's
// current difficulty setting, not the difficulty in place when they
// were mined: lowering the difficulty keeps old blocks valid, raising
// it can retroactively invalidate them. This is a pure read; integrity
// breaks are a reportable result, not a fault.
func (l *Ledger) Validate(ctx context.Context) bool {
	l.mu.RLock()
	difficulty := l.difficulty
	chain := make([]Block, len(l.chain))
	copy(chain, l.chain)
	l.mu.RUnlock()

	for i := 1; i < len(chain); i++ {
		if ctx.Err() != nil {
			l.evHandler("ledger: validate: CANCELLED: blk[%d]", i)
			return false
		}

		block := chain[i]

		if hash := digest.Hash(block.Fingerprint()); block.Hash != hash {
			l.evHandler("ledger: validate: FAILED: blk[%d]: hash does not match fingerprint: got %s, exp %s", i, block.Hash, hash)
			return false
		}

		if block.PrevHash != chain[i-1].Hash {
			l.evHandler("ledger: validate: FAILED: blk[%d]: prev hash does not match parent block", i)
			return false
		}

		if !isHashSolved(difficulty, block.Hash) {
			l.evHandler("ledger: validate: FAILED: blk[%d]: hash does not meet difficulty[%d]", i, difficulty)
			return false
		}
	}

	return true
}

// Reset clears the persisted state and reinitializes the ledger to a
// fresh genesis block with an empty pending queue.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.evHandler("ledger: reset: clearing chain and pending queue")

	if err := l.storer.Delete(l.storageKey); err != nil && !errors.Is(err, storage.ErrNotExist) {
		l.evHandler("ledger: reset: WARNING: %s", err)
	}

	l.chain = []Block{newGenesisBlock(time.Now().UTC().UnixMilli())}
	l.pending = nil

	l.persist()
}

// =============================================================================

// Chain returns a copy of the chain of sealed blocks. Index 0 is the
// genesis block.
func (l *Ledger) Chain() []Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	chain := make([]Block, len(l.chain))
	copy(chain, l.chain)

	return chain
}

// Pending returns a copy of the pending transaction queue in FIFO order.
func (l *Ledger) Pending() []Tx {
	l.mu.RLock()
	defer l.mu.RUnlock()

	pending := make([]Tx, len(l.pending))
	copy(pending, l.pending)

	return pending
}

// LatestBlock returns the block at the chain tip.
func (l *Ledger) LatestBlock() Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.chain[len(l.chain)-1]
}

// Difficulty returns the current proof-of-work difficulty.
func (l *Ledger) Difficulty() uint {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.difficulty
}

// SetDifficulty updates the proof-of-work difficulty for subsequent
// mining and validation runs.
func (l *Ledger) SetDifficulty(difficulty uint) error {
	if difficulty < MinDifficulty || difficulty > MaxDifficulty {
		return ErrInvalidDifficulty
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.evHandler("ledger: setdifficulty: %d -> %d", l.difficulty, difficulty)
	l.difficulty = difficulty

	return nil
}

// MiningReward returns the amount credited to a miner for sealing a block.
func (l *Ledger) MiningReward() float64 {
	return l.reward
}

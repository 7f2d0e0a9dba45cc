package ledger

import (
	"errors"
	"fmt"
	"math"
)

// RewardAccount is the address reward transactions are drawn against
// when a miner seals a new block.
const RewardAccount = "network"

// ErrInvalidTransaction is returned from SubmitTransaction when a
// transaction fails validation. The pending queue is left unchanged.
var ErrInvalidTransaction = errors.New("invalid transaction")

// Tx represents a transfer of value between two addresses. Transactions
// are immutable once created and live in either the pending queue or a
// sealed block's transaction list.
type Tx struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// NewTx constructs a valid transaction for submission.
func NewTx(from string, to string, amount float64) (Tx, error) {
	tx := Tx{
		From:   from,
		To:     to,
		Amount: amount,
	}

	if err := tx.Validate(); err != nil {
		return Tx{}, err
	}

	return tx, nil
}

// Validate checks the transaction is well formed. There is no balance
// sufficiency check and the amount's sign is unconstrained, so a
// transaction is free to drive an address balance negative.
func (tx Tx) Validate() error {
	if tx.From == "" {
		return fmt.Errorf("%w: missing from address", ErrInvalidTransaction)
	}

	if tx.To == "" {
		return fmt.Errorf("%w: missing to address", ErrInvalidTransaction)
	}

	if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		return fmt.Errorf("%w: amount is not a finite number", ErrInvalidTransaction)
	}

	return nil
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s:%s:%v", tx.From, tx.To, tx.Amount)
}

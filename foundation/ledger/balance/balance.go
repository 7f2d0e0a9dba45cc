// Package balance computes address balances from the chain and the
// pending transaction queue. The functions are pure; the ledger owns
// its chain and queue and callers pass in copies.
package balance

import "github.com/ardanlabs/ledger/foundation/ledger"

// Of returns the net balance for the specified address by walking every
// transaction in every block in chain order and then the pending queue
// in FIFO order. The amount is subtracted on a from match and added on
// a to match; the checks are independent, so a transaction from an
// address to itself nets to zero. Unknown addresses yield zero.
func Of(address string, chain []ledger.Block, pending []ledger.Tx) float64 {
	var balance float64

	apply := func(tx ledger.Tx) {
		if tx.From == address {
			balance -= tx.Amount
		}
		if tx.To == address {
			balance += tx.Amount
		}
	}

	for _, block := range chain {
		for _, tx := range block.Trans {
			apply(tx)
		}
	}

	for _, tx := range pending {
		apply(tx)
	}

	return balance
}

// Sheet returns the net balance for every address that appears in a
// from or to field across the chain and the pending queue.
func Sheet(chain []ledger.Block, pending []ledger.Tx) map[string]float64 {
	sheet := make(map[string]float64)

	apply := func(tx ledger.Tx) {
		sheet[tx.From] -= tx.Amount
		sheet[tx.To] += tx.Amount
	}

	for _, block := range chain {
		for _, tx := range block.Trans {
			apply(tx)
		}
	}

	for _, tx := range pending {
		apply(tx)
	}

	return sheet
}

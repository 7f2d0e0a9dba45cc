package public

import "github.com/ardanlabs/ledger/foundation/ledger"

// submitTx represents a transaction submission from a client.
type submitTx struct {
	From   string  `json:"from" validate:"required"`
	To     string  `json:"to" validate:"required"`
	Amount float64 `json:"amount"`
}

// mineRequest represents a request to mine the pending transactions.
// The miner address falls back to the node's configured address.
type mineRequest struct {
	Miner string `json:"miner"`
}

// tx represents a transaction for display.
type tx struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// block represents a sealed block for display.
type block struct {
	Timestamp int64  `json:"timestamp"`
	Trans     []tx   `json:"transactions"`
	PrevHash  string `json:"prev_hash"`
	Nonce     uint64 `json:"nonce"`
	Hash      string `json:"hash"`
}

// balanceRecord represents the net balance for a single address.
type balanceRecord struct {
	Address string  `json:"address"`
	Balance float64 `json:"balance"`
}

func toAppTx(coreTx ledger.Tx) tx {
	return tx{
		From:   coreTx.From,
		To:     coreTx.To,
		Amount: coreTx.Amount,
	}
}

func toAppTxs(coreTxs []ledger.Tx) []tx {
	txs := make([]tx, len(coreTxs))
	for i, coreTx := range coreTxs {
		txs[i] = toAppTx(coreTx)
	}
	return txs
}

func toAppBlock(coreBlock ledger.Block) block {
	return block{
		Timestamp: coreBlock.Timestamp,
		Trans:     toAppTxs(coreBlock.Trans),
		PrevHash:  coreBlock.PrevHash,
		Nonce:     coreBlock.Nonce,
		Hash:      coreBlock.Hash,
	}
}

func toAppBlocks(coreBlocks []ledger.Block) []block {
	blocks := make([]block, len(coreBlocks))
	for i, coreBlock := range coreBlocks {
		blocks[i] = toAppBlock(coreBlock)
	}
	return blocks
}

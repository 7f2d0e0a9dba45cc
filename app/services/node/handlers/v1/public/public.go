// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/ardanlabs/ledger/business/sys/validate"
	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/ledger"
	"github.com/ardanlabs/ledger/foundation/ledger/balance"
	"github.com/ardanlabs/ledger/foundation/ledger/worker"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log          *zap.SugaredLogger
	Ledger       *ledger.Ledger
	Worker       *worker.Worker
	WS           websocket.Upgrader
	Evts         *events.Events
	MinerAddress string
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitTransaction adds a new transaction to the pending queue.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var newTx submitTx
	if err := web.Decode(r, &newTx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(newTx); err != nil {
		return err
	}

	h.Log.Infow("add tran", "traceid", v.TraceID, "from", newTx.From, "to", newTx.To, "amount", newTx.Amount)

	coreTx, err := ledger.NewTx(newTx.From, newTx.To, newTx.Amount)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := h.Ledger.SubmitTransaction(coreTx); err != nil {
		if errors.Is(err, ledger.ErrInvalidTransaction) {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return err
	}

	resp := struct {
		Status  string `json:"status"`
		Pending int    `json:"pending"`
	}{
		Status:  "transaction added to pending queue",
		Pending: len(h.Ledger.Pending()),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mine performs a synchronous mining run over the pending queue. The
// proof-of-work search is bound to the request context, so a client
// disconnect cancels the search.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var mr mineRequest
	if r.ContentLength > 0 {
		if err := web.Decode(r, &mr); err != nil {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
	}

	miner := mr.Miner
	if miner == "" {
		miner = h.MinerAddress
	}

	blk, err := h.Ledger.Mine(ctx, miner)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrChainChanged):
			return errs.NewTrusted(err, http.StatusConflict)
		case ctx.Err() != nil:
			return err
		default:
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
	}

	return web.Respond(ctx, w, toAppBlock(blk), http.StatusOK)
}

// SignalMining signals a background mining operation and returns
// immediately.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	h.Worker.SignalStartMining()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining signaled",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Blocks returns the chain of sealed blocks.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := struct {
		Difficulty uint    `json:"difficulty"`
		Blocks     []block `json:"blocks"`
	}{
		Difficulty: h.Ledger.Difficulty(),
		Blocks:     toAppBlocks(h.Ledger.Chain()),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Pending returns the pending transaction queue.
func (h Handlers) Pending(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, toAppTxs(h.Ledger.Pending()), http.StatusOK)
}

// Validate re-verifies the hash linkage and proof-of-work of the whole
// chain and reports the result.
func (h Handlers) Validate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := struct {
		Valid  bool `json:"valid"`
		Blocks int  `json:"blocks"`
	}{
		Valid:  h.Ledger.Validate(ctx),
		Blocks: len(h.Ledger.Chain()),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Balances returns the net balance for every known address, or for the
// single address specified on the route.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address := web.Param(r, "address")

	chain := h.Ledger.Chain()
	pending := h.Ledger.Pending()

	var records []balanceRecord
	if address != "" {
		records = []balanceRecord{{Address: address, Balance: balance.Of(address, chain, pending)}}
	} else {
		sheet := balance.Sheet(chain, pending)
		for addr, bal := range sheet {
			records = append(records, balanceRecord{Address: addr, Balance: bal})
		}
		sort.Slice(records, func(i, j int) bool { return records[i].Address < records[j].Address })
	}

	resp := struct {
		LatestBlock string          `json:"latest_block"`
		Uncommitted int             `json:"uncommitted"`
		Balances    []balanceRecord `json:"balances"`
	}{
		LatestBlock: h.Ledger.LatestBlock().Hash,
		Uncommitted: len(pending),
		Balances:    records,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SetDifficulty updates the proof-of-work difficulty used for
// subsequent mining and validation runs.
func (h Handlers) SetDifficulty(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	level, err := strconv.ParseUint(web.Param(r, "level"), 10, 32)
	if err != nil {
		return errs.NewTrusted(ledger.ErrInvalidDifficulty, http.StatusBadRequest)
	}

	if err := h.Ledger.SetDifficulty(uint(level)); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Difficulty uint `json:"difficulty"`
	}{
		Difficulty: h.Ledger.Difficulty(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Reset clears the persisted state and reinitializes the ledger to a
// fresh genesis block. Any in-flight mining run is cancelled first so
// it can't seal a block against the discarded chain.
func (h Handlers) Reset(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.Log.Infow("reset ledger", "traceid", v.TraceID)

	done := h.Worker.SignalCancelMining()
	defer done()

	h.Ledger.Reset()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "ledger reset to genesis",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

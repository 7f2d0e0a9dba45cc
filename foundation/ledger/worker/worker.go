// Package worker implements the background mining workflow for the
// ledger. Mining can be signaled and cancelled without blocking the
// caller.
package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/ardanlabs/ledger/foundation/ledger"
)

// Worker manages the mining goroutine. A mining run is requested with
// SignalStartMining and interrupted with SignalCancelMining, which
// hands back a done function the caller invokes once its own state
// changes are complete.
type Worker struct {
	ledger       *ledger.Ledger
	minerAddress string
	evHandler    ledger.EventHandler
	wg           sync.WaitGroup
	shut         chan struct{}
	startMining  chan bool
	cancelMining chan chan struct{}
}

// Run creates a worker and starts the mining goroutine.
func Run(lgr *ledger.Ledger, minerAddress string, evHandler ledger.EventHandler) *Worker {
	w := Worker{
		ledger:       lgr,
		minerAddress: minerAddress,
		evHandler:    evHandler,
		shut:         make(chan struct{}),
		startMining:  make(chan bool, 1),
		cancelMining: make(chan chan struct{}, 1),
	}

	// We don't want to return until we know the G is up and running.
	hasStarted := make(chan bool)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		hasStarted <- true
		w.miningOperations()
	}()

	<-hasStarted

	return &w
}

// Shutdown terminates the goroutine performing work.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.evHandler("worker: shutdown: signal cancel mining")
	done := w.SignalCancelMining()
	done()

	w.evHandler("worker: shutdown: terminate goroutine")
	close(w.shut)
	w.wg.Wait()
}

// SignalStartMining starts a mining operation. If there is already a
// signal pending in the channel, just return since a mining operation
// will start.
func (w *Worker) SignalStartMining() {
	select {
	case w.startMining <- true:
	default:
	}
	w.evHandler("worker: SignalStartMining: mining signaled")
}

// SignalCancelMining signals the G executing the runMiningOperation
// function to stop immediately. That G will not return from the
// function until done is called. This allows the caller to complete
// any state changes before a new mining operation takes place.
func (w *Worker) SignalCancelMining() (done func()) {
	wait := make(chan struct{})

	select {
	case w.cancelMining <- wait:
	default:
	}
	w.evHandler("worker: SignalCancelMining: cancel mining signaled")

	return func() { close(wait) }
}

// =============================================================================

// miningOperations handles mining requests.
func (w *Worker) miningOperations() {
	w.evHandler("worker: miningOperations: G started")
	defer w.evHandler("worker: miningOperations: G completed")

	for {
		select {
		case <-w.startMining:
			if !w.isShutdown() {
				w.runMiningOperation()
			}
		case <-w.shut:
			w.evHandler("worker: miningOperations: received shut signal")
			return
		}
	}
}

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}

// runMiningOperation performs a single mining run against the ledger.
func (w *Worker) runMiningOperation() {
	w.evHandler("worker: runMiningOperation: MINING: started")
	defer w.evHandler("worker: runMiningOperation: MINING: completed")

	// If mining is cancelled, this G can't terminate until it is told
	// it can.
	var wait chan struct{}
	defer func() {
		if wait != nil {
			w.evHandler("worker: runMiningOperation: MINING: termination signal: waiting")
			<-wait
			w.evHandler("worker: runMiningOperation: MINING: termination signal: received")
		}
	}()

	// Drain the cancel mining channel before starting.
	select {
	case <-w.cancelMining:
		w.evHandler("worker: runMiningOperation: MINING: drained cancel channel")
	default:
	}

	// Create a context so mining can be cancelled.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Can't return from this function until these G's are complete.
	var wg sync.WaitGroup
	wg.Add(2)

	// This G exists to cancel the mining operation.
	go func() {
		defer func() {
			cancel()
			wg.Done()
		}()

		select {
		case wait = <-w.cancelMining:
			w.evHandler("worker: runMiningOperation: MINING: cancel mining requested")
		case <-ctx.Done():
		}
	}()

	// This G is performing the mining.
	go func() {
		defer func() {
			cancel()
			wg.Done()
		}()

		block, err := w.ledger.Mine(ctx, w.minerAddress)
		if err != nil {
			switch {
			case ctx.Err() != nil:
				w.evHandler("worker: runMiningOperation: MINING: CANCELLED: by request")
			case errors.Is(err, ledger.ErrChainChanged):
				w.evHandler("worker: runMiningOperation: MINING: WARNING: chain changed, block discarded")
			default:
				w.evHandler("worker: runMiningOperation: MINING: ERROR: %s", err)
			}
			return
		}

		w.evHandler("worker: runMiningOperation: MINING: sealed block[%s] nonce[%d]", block.Hash, block.Nonce)
	}()

	// Wait for both G's to terminate.
	wg.Wait()
}

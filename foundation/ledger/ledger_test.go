package ledger_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/ardanlabs/ledger/foundation/ledger"
	"github.com/ardanlabs/ledger/foundation/ledger/storage"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// newTestLedger constructs a ledger against a memory store for use in
// tests.
func newTestLedger(t *testing.T, strg storage.Storer, difficulty uint) *ledger.Ledger {
	t.Helper()

	lgr, err := ledger.New(ledger.Config{
		Storer:       strg,
		StorageKey:   "test",
		Difficulty:   difficulty,
		MiningReward: 100,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a ledger: %v", failed, err)
	}

	return lgr
}

func Test_SubmitTransaction(t *testing.T) {
	t.Log("Given the need to validate transaction submission.")
	{
		t.Logf("\tTest 0:\tWhen submitting valid transactions.")
		{
			lgr := newTestLedger(t, storage.NewMemory(), 1)

			txs := []ledger.Tx{
				{From: "a", To: "b", Amount: 10},
				{From: "b", To: "a", Amount: 4},
				{From: "a", To: "c", Amount: -3},
			}

			for _, tx := range txs {
				if err := lgr.SubmitTransaction(tx); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to submit transaction %s: %v", failed, tx, err)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould be able to submit all transactions.", success)

			pending := lgr.Pending()
			if len(pending) != len(txs) {
				t.Fatalf("\t%s\tTest 0:\tShould have %d pending transactions, got %d.", failed, len(txs), len(pending))
			}
			t.Logf("\t%s\tTest 0:\tShould have %d pending transactions.", success, len(txs))

			if !reflect.DeepEqual(pending, txs) {
				t.Errorf("\t%s\tTest 0:\tShould preserve FIFO submission order.", failed)
			} else {
				t.Logf("\t%s\tTest 0:\tShould preserve FIFO submission order.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen submitting malformed transactions.")
		{
			lgr := newTestLedger(t, storage.NewMemory(), 1)

			txs := []ledger.Tx{
				{From: "", To: "b", Amount: 10},
				{From: "a", To: "", Amount: 10},
				{From: "a", To: "b", Amount: math.NaN()},
				{From: "a", To: "b", Amount: math.Inf(1)},
			}

			for _, tx := range txs {
				err := lgr.SubmitTransaction(tx)
				if !errors.Is(err, ledger.ErrInvalidTransaction) {
					t.Fatalf("\t%s\tTest 1:\tShould reject transaction %s with ErrInvalidTransaction: %v", failed, tx, err)
				}
			}
			t.Logf("\t%s\tTest 1:\tShould reject every malformed transaction.", success)

			if len(lgr.Pending()) != 0 {
				t.Errorf("\t%s\tTest 1:\tShould leave the pending queue unchanged.", failed)
			} else {
				t.Logf("\t%s\tTest 1:\tShould leave the pending queue unchanged.", success)
			}
		}
	}
}

func Test_Mining(t *testing.T) {
	t.Log("Given the need to seal pending transactions into a mined block.")
	{
		t.Logf("\tTest 0:\tWhen mining an empty ledger with difficulty 1.")
		{
			lgr := newTestLedger(t, storage.NewMemory(), 1)

			blk, err := lgr.Mine(context.Background(), "alice")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to mine a block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to mine a block.", success)

			if chain := lgr.Chain(); len(chain) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould have a chain of length 2, got %d.", failed, len(chain))
			}
			t.Logf("\t%s\tTest 0:\tShould have a chain of length 2.", success)

			if !strings.HasPrefix(blk.Hash, "0") {
				t.Errorf("\t%s\tTest 0:\tShould have a hash starting with %q, got %q.", failed, "0", blk.Hash)
			} else {
				t.Logf("\t%s\tTest 0:\tShould have a hash starting with %q.", success, "0")
			}

			if blk.PrevHash != "0" {
				t.Errorf("\t%s\tTest 0:\tShould link to the genesis hash, got %q.", failed, blk.PrevHash)
			} else {
				t.Logf("\t%s\tTest 0:\tShould link to the genesis hash.", success)
			}

			reward := []ledger.Tx{{From: ledger.RewardAccount, To: "alice", Amount: 100}}
			if !reflect.DeepEqual(lgr.Pending(), reward) {
				t.Errorf("\t%s\tTest 0:\tShould have exactly one reward transaction pending.", failed)
			} else {
				t.Logf("\t%s\tTest 0:\tShould have exactly one reward transaction pending.", success)
			}

			if !lgr.Validate(context.Background()) {
				t.Errorf("\t%s\tTest 0:\tShould report a valid chain after mining.", failed)
			} else {
				t.Logf("\t%s\tTest 0:\tShould report a valid chain after mining.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen mining submitted transactions.")
		{
			lgr := newTestLedger(t, storage.NewMemory(), 1)

			txs := []ledger.Tx{
				{From: "a", To: "b", Amount: 10},
				{From: "b", To: "a", Amount: 4},
			}
			for _, tx := range txs {
				if err := lgr.SubmitTransaction(tx); err != nil {
					t.Fatalf("\t%s\tTest 1:\tShould be able to submit transaction: %v", failed, err)
				}
			}

			blk, err := lgr.Mine(context.Background(), "miner1")
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to mine a block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to mine a block.", success)

			if !reflect.DeepEqual(blk.Trans, txs) {
				t.Errorf("\t%s\tTest 1:\tShould seal the pending transactions in FIFO order.", failed)
			} else {
				t.Logf("\t%s\tTest 1:\tShould seal the pending transactions in FIFO order.", success)
			}

			tip := lgr.LatestBlock()
			if tip.Hash != blk.Hash {
				t.Errorf("\t%s\tTest 1:\tShould have the mined block at the chain tip.", failed)
			} else {
				t.Logf("\t%s\tTest 1:\tShould have the mined block at the chain tip.", success)
			}
		}

		t.Logf("\tTest 2:\tWhen mining is cancelled.")
		{
			lgr := newTestLedger(t, storage.NewMemory(), 6)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			if _, err := lgr.Mine(ctx, "alice"); !errors.Is(err, context.Canceled) {
				t.Fatalf("\t%s\tTest 2:\tShould return the context error, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould return the context error.", success)

			if len(lgr.Chain()) != 1 {
				t.Errorf("\t%s\tTest 2:\tShould not append a block on cancellation.", failed)
			} else {
				t.Logf("\t%s\tTest 2:\tShould not append a block on cancellation.", success)
			}
		}
	}
}

func Test_Validation(t *testing.T) {
	t.Log("Given the need to detect tampering with sealed blocks.")
	{
		t.Logf("\tTest 0:\tWhen a stored transaction amount is mutated.")
		{
			strg := storage.NewMemory()
			lgr := newTestLedger(t, strg, 1)

			if err := lgr.SubmitTransaction(ledger.Tx{From: "a", To: "b", Amount: 10}); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit transaction: %v", failed, err)
			}
			if _, err := lgr.Mine(context.Background(), "alice"); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to mine a block: %v", failed, err)
			}

			// Corrupt the snapshot behind the ledger's back. The next
			// ledger restores the stored hashes verbatim, so only
			// validation can catch the damage.
			data, err := strg.Load("test")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to load the snapshot: %v", failed, err)
			}

			corrupt := bytes.Replace(data, []byte(`"amount":10}`), []byte(`"amount":9999}`), 1)
			if bytes.Equal(corrupt, data) {
				t.Fatalf("\t%s\tTest 0:\tShould be able to corrupt the snapshot.", failed)
			}
			if err := strg.Save("test", corrupt); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to save the corrupt snapshot: %v", failed, err)
			}

			lgr2 := newTestLedger(t, strg, 1)
			if len(lgr2.Chain()) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould restore the corrupt chain on trust.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould restore the corrupt chain on trust.", success)

			if lgr2.Validate(context.Background()) {
				t.Errorf("\t%s\tTest 0:\tShould report the tampered chain as invalid.", failed)
			} else {
				t.Logf("\t%s\tTest 0:\tShould report the tampered chain as invalid.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen the difficulty is raised after mining.")
		{
			lgr := newTestLedger(t, storage.NewMemory(), 1)

			if _, err := lgr.Mine(context.Background(), "alice"); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to mine a block: %v", failed, err)
			}

			if err := lgr.SetDifficulty(6); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to raise the difficulty: %v", failed, err)
			}

			if lgr.Validate(context.Background()) {
				t.Errorf("\t%s\tTest 1:\tShould retroactively fail blocks mined under a lower difficulty.", failed)
			} else {
				t.Logf("\t%s\tTest 1:\tShould retroactively fail blocks mined under a lower difficulty.", success)
			}
		}

		t.Logf("\tTest 2:\tWhen setting the difficulty out of bounds.")
		{
			lgr := newTestLedger(t, storage.NewMemory(), 1)

			for _, level := range []uint{0, 7} {
				if err := lgr.SetDifficulty(level); !errors.Is(err, ledger.ErrInvalidDifficulty) {
					t.Fatalf("\t%s\tTest 2:\tShould reject difficulty %d: %v", failed, level, err)
				}
			}
			t.Logf("\t%s\tTest 2:\tShould reject out of bounds difficulty settings.", success)
		}
	}
}

func Test_Persistence(t *testing.T) {
	t.Log("Given the need to persist and restore the ledger state.")
	{
		t.Logf("\tTest 0:\tWhen restoring from a saved snapshot.")
		{
			strg := storage.NewMemory()
			lgr := newTestLedger(t, strg, 1)

			if err := lgr.SubmitTransaction(ledger.Tx{From: "a", To: "b", Amount: 10}); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit transaction: %v", failed, err)
			}
			if _, err := lgr.Mine(context.Background(), "alice"); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to mine a block: %v", failed, err)
			}
			if err := lgr.SubmitTransaction(ledger.Tx{From: "b", To: "c", Amount: 2}); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit transaction: %v", failed, err)
			}

			lgr2 := newTestLedger(t, strg, 1)

			if !reflect.DeepEqual(lgr2.Chain(), lgr.Chain()) {
				t.Errorf("\t%s\tTest 0:\tShould restore an identical chain.", failed)
			} else {
				t.Logf("\t%s\tTest 0:\tShould restore an identical chain.", success)
			}

			if !reflect.DeepEqual(lgr2.Pending(), lgr.Pending()) {
				t.Errorf("\t%s\tTest 0:\tShould restore an identical pending queue.", failed)
			} else {
				t.Logf("\t%s\tTest 0:\tShould restore an identical pending queue.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen no snapshot exists.")
		{
			lgr := newTestLedger(t, storage.NewMemory(), 1)

			chain := lgr.Chain()
			if len(chain) != 1 {
				t.Fatalf("\t%s\tTest 1:\tShould synthesize a single genesis block, got %d.", failed, len(chain))
			}
			t.Logf("\t%s\tTest 1:\tShould synthesize a single genesis block.", success)

			if chain[0].Hash != "0" || chain[0].PrevHash != "0" {
				t.Errorf("\t%s\tTest 1:\tShould carry the genesis sentinel hashes.", failed)
			} else {
				t.Logf("\t%s\tTest 1:\tShould carry the genesis sentinel hashes.", success)
			}
		}

		t.Logf("\tTest 2:\tWhen the ledger is reset.")
		{
			strg := storage.NewMemory()
			lgr := newTestLedger(t, strg, 1)

			if _, err := lgr.Mine(context.Background(), "alice"); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to mine a block: %v", failed, err)
			}

			lgr.Reset()

			if len(lgr.Chain()) != 1 || len(lgr.Pending()) != 0 {
				t.Errorf("\t%s\tTest 2:\tShould reset to a fresh genesis chain.", failed)
			} else {
				t.Logf("\t%s\tTest 2:\tShould reset to a fresh genesis chain.", success)
			}

			lgr2 := newTestLedger(t, strg, 1)
			if len(lgr2.Chain()) != 1 {
				t.Errorf("\t%s\tTest 2:\tShould persist the fresh genesis chain.", failed)
			} else {
				t.Logf("\t%s\tTest 2:\tShould persist the fresh genesis chain.", success)
			}
		}
	}
}

package balance_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/ledger"
	"github.com/ardanlabs/ledger/foundation/ledger/balance"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Of(t *testing.T) {
	t.Log("Given the need to derive balances from the transaction history.")
	{
		t.Logf("\tTest 0:\tWhen transactions flow in both directions.")
		{
			chain := []ledger.Block{
				{
					Trans: []ledger.Tx{
						{From: "a", To: "b", Amount: 10},
					},
				},
			}
			pending := []ledger.Tx{
				{From: "b", To: "a", Amount: 4},
			}

			if got := balance.Of("a", chain, pending); got != -6 {
				t.Errorf("\t%s\tTest 0:\tShould have a balance of -6 for %q, got %v.", failed, "a", got)
			} else {
				t.Logf("\t%s\tTest 0:\tShould have a balance of -6 for %q.", success, "a")
			}

			if got := balance.Of("b", chain, pending); got != 6 {
				t.Errorf("\t%s\tTest 0:\tShould have a balance of 6 for %q, got %v.", failed, "b", got)
			} else {
				t.Logf("\t%s\tTest 0:\tShould have a balance of 6 for %q.", success, "b")
			}
		}

		t.Logf("\tTest 1:\tWhen an address sends to itself.")
		{
			chain := []ledger.Block{
				{
					Trans: []ledger.Tx{
						{From: "a", To: "a", Amount: 25},
					},
				},
			}

			if got := balance.Of("a", chain, nil); got != 0 {
				t.Errorf("\t%s\tTest 1:\tShould net to zero, got %v.", failed, got)
			} else {
				t.Logf("\t%s\tTest 1:\tShould net to zero.", success)
			}
		}

		t.Logf("\tTest 2:\tWhen the address appears nowhere.")
		{
			chain := []ledger.Block{
				{
					Trans: []ledger.Tx{
						{From: "a", To: "b", Amount: 10},
					},
				},
			}

			if got := balance.Of("zed", chain, nil); got != 0 {
				t.Errorf("\t%s\tTest 2:\tShould have a zero balance, got %v.", failed, got)
			} else {
				t.Logf("\t%s\tTest 2:\tShould have a zero balance.", success)
			}
		}
	}
}

func Test_Sheet(t *testing.T) {
	t.Log("Given the need to derive the balance sheet for every address.")
	{
		t.Logf("\tTest 0:\tWhen rewards and transfers are mixed.")
		{
			chain := []ledger.Block{
				{
					Trans: []ledger.Tx{
						{From: ledger.RewardAccount, To: "miner1", Amount: 100},
						{From: "a", To: "b", Amount: 10},
					},
				},
			}
			pending := []ledger.Tx{
				{From: "miner1", To: "a", Amount: 30},
			}

			sheet := balance.Sheet(chain, pending)

			want := map[string]float64{
				ledger.RewardAccount: -100,
				"miner1":             70,
				"a":                  20,
				"b":                  10,
			}

			for addr, amount := range want {
				if sheet[addr] != amount {
					t.Errorf("\t%s\tTest 0:\tShould have a balance of %v for %q, got %v.", failed, amount, addr, sheet[addr])
				} else {
					t.Logf("\t%s\tTest 0:\tShould have a balance of %v for %q.", success, amount, addr)
				}
			}

			var sum float64
			for _, amount := range sheet {
				sum += amount
			}
			if sum != 0 {
				t.Errorf("\t%s\tTest 0:\tShould conserve value across the sheet, got %v.", failed, sum)
			} else {
				t.Logf("\t%s\tTest 0:\tShould conserve value across the sheet.", success)
			}
		}
	}
}

package cmd

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

type balance struct {
	Address string  `json:"address"`
	Balance float64 `json:"balance"`
}

type balances struct {
	LatestBlock string    `json:"latest_block"`
	Uncommitted int       `json:"uncommitted"`
	Balances    []balance `json:"balances"`
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Print the balance for an address, or for every known address.",
	Args:  cobra.MaximumNArgs(1),
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func balanceRun(cmd *cobra.Command, args []string) {
	endpoint := "/v1/balances/list"
	if len(args) == 1 {
		endpoint += "/" + args[0]
	}

	var bals balances
	if err := send(http.MethodGet, endpoint, nil, &bals); err != nil {
		log.Fatal(err)
	}

	if err := print(bals); err != nil {
		log.Fatal(err)
	}
}

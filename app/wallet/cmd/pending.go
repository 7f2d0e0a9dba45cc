package cmd

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Print the pending transaction queue.",
	Run:   pendingRun,
}

func init() {
	rootCmd.AddCommand(pendingCmd)
}

func pendingRun(cmd *cobra.Command, args []string) {
	var txs []struct {
		From   string  `json:"from"`
		To     string  `json:"to"`
		Amount float64 `json:"amount"`
	}

	if err := send(http.MethodGet, "/v1/ledger/pending", nil, &txs); err != nil {
		log.Fatal(err)
	}

	if err := print(txs); err != nil {
		log.Fatal(err)
	}
}

package cmd

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the persisted state and start a fresh chain.",
	Run:   resetRun,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func resetRun(cmd *cobra.Command, args []string) {
	var resp struct {
		Status string `json:"status"`
	}

	if err := send(http.MethodPost, "/v1/ledger/reset", nil, &resp); err != nil {
		log.Fatal(err)
	}

	if err := print(resp); err != nil {
		log.Fatal(err)
	}
}

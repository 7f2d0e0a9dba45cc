package cmd

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Re-verify the integrity of the whole chain.",
	Run:   validateRun,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateRun(cmd *cobra.Command, args []string) {
	var resp struct {
		Valid  bool `json:"valid"`
		Blocks int  `json:"blocks"`
	}

	if err := send(http.MethodGet, "/v1/ledger/validate", nil, &resp); err != nil {
		log.Fatal(err)
	}

	if err := print(resp); err != nil {
		log.Fatal(err)
	}
}

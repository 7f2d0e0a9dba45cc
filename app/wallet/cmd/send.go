package cmd

import (
	"log"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	txFrom   string
	txTo     string
	txAmount string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a transaction to the pending queue.",
	Run:   sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&txFrom, "from", "f", "", "Address the amount is drawn from.")
	sendCmd.Flags().StringVarP(&txTo, "to", "t", "", "Address the amount is credited to.")
	sendCmd.Flags().StringVarP(&txAmount, "amount", "a", "0", "Amount to transfer.")
}

func sendRun(cmd *cobra.Command, args []string) {
	amount, err := strconv.ParseFloat(txAmount, 64)
	if err != nil {
		log.Fatal(err)
	}

	tx := struct {
		From   string  `json:"from"`
		To     string  `json:"to"`
		Amount float64 `json:"amount"`
	}{
		From:   txFrom,
		To:     txTo,
		Amount: amount,
	}

	var resp struct {
		Status  string `json:"status"`
		Pending int    `json:"pending"`
	}

	if err := send(http.MethodPost, "/v1/tx/submit", tx, &resp); err != nil {
		log.Fatal(err)
	}

	if err := print(resp); err != nil {
		log.Fatal(err)
	}
}

package cmd

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var minerAddress string

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Seal the pending transactions into a mined block.",
	Run:   mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().StringVarP(&minerAddress, "miner", "m", "", "Address the mining reward is credited to.")
}

func mineRun(cmd *cobra.Command, args []string) {
	req := struct {
		Miner string `json:"miner"`
	}{
		Miner: minerAddress,
	}

	var blk struct {
		Timestamp int64  `json:"timestamp"`
		PrevHash  string `json:"prev_hash"`
		Nonce     uint64 `json:"nonce"`
		Hash      string `json:"hash"`
	}

	if err := send(http.MethodPost, "/v1/mining/run", req, &blk); err != nil {
		log.Fatal(err)
	}

	if err := print(blk); err != nil {
		log.Fatal(err)
	}
}

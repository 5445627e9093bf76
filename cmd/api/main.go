package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "receiving",
	Short: "Goods-receipt staging service",
	Long: `Stages goods receipts per location: operators build a draft of delivered
items, the draft survives restarts, and a commit records the receipt, stock and
prices in one transaction.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, draftsCmd, usersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

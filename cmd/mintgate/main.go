package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/epam/mintgate/cmd/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mintgate",
		Short: "MintGate NFT contract node tools",
	}
	cli.RegisterInit(rootCmd)
	cli.RegisterGate(rootCmd)
	cli.RegisterNft(rootCmd)
	cli.RegisterMarket(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

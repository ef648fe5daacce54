package main

import (
	"os"

	"github.com/inscription-c/pins/cli"
	"github.com/inscription-c/pins/signer/server"
	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"
)

var rootCmd = &cobra.Command{
	Use:   "pins",
	Short: "pins builds p2sh inscription chains, with a signing server and broadcast tools.",
}

func init() {
	rootCmd.AddCommand(cli.InscribeCmd)
	rootCmd.AddCommand(cli.PrepareCmd)
	rootCmd.AddCommand(cli.BroadcastCmd)
	rootCmd.AddCommand(server.Cmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

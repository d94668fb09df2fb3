package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "domkit",
		Short: "Inspect, encode and serve Domkit document trees",
		Long: `Domkit models server-driven UI documents as immutable trees.

This CLI works with those trees from the command line:

  • inspect markup files as parsed trees
  • encode markup to the binary document format
  • decode binary documents back to a readable tree
  • serve a directory of documents over HTTP/WebSocket`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		inspectCmd(),
		encodeCmd(),
		decodeCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

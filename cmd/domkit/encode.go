package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/domkit-dev/domkit/pkg/parse"
	"github.com/domkit-dev/domkit/pkg/protocol"
)

func encodeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "encode <file>",
		Short: "Encode a markup file to the binary document format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			tree, err := parse.Fragment(string(src))
			if err != nil {
				return err
			}
			payload := protocol.EncodeDocument(tree)

			if output == "" {
				output = strings.TrimSuffix(args[0], ".html") + ".doc"
			}
			if err := os.WriteFile(output, payload, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%d bytes, %d nodes)\n", output, len(payload), tree.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: input with .doc extension)")

	return cmd
}

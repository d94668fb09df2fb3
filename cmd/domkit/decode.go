package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/domkit-dev/domkit/pkg/protocol"
)

func decodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <file.doc>",
		Short: "Decode a binary document and print its tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			tree, err := protocol.DecodeDocument(payload)
			if err != nil {
				return err
			}
			fmt.Print(renderTree(tree))
			fmt.Println(treeStats(tree))
			return nil
		},
	}

	return cmd
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/domkit-dev/domkit/pkg/parse"
)

func inspectCmd() *cobra.Command {
	var stats bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Parse a markup file and print its tree",
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
			fmt.Print(renderTree(tree))
			if stats {
				fmt.Println(treeStats(tree))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stats, "stats", false, "Print node counts after the tree")

	return cmd
}

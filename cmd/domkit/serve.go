package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/domkit-dev/domkit/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		addr string
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve documents over HTTP and WebSocket",
		Long: `Serve parses every markup file in a directory and serves the
resulting documents: binary fetches on /documents/{name}, live
subscriptions on /live/{name}, Prometheus metrics on /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := server.NewStore()
			n, err := server.LoadDir(store, dir)
			if err != nil {
				return err
			}
			fmt.Printf("published %d documents from %s\n", n, dir)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(store, &server.Config{Address: addr})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8090", "Listen address")
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory of markup files to publish")

	return cmd
}

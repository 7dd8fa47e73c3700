package cli

import (
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/schoolconsole/internal/devserver"
	"github.com/rshade/schoolconsole/internal/logging"
)

type devServerParams struct {
	addr    string
	prefix  string
	latency time.Duration
	empty   bool
}

func newDevServerCmd() *cobra.Command {
	var params devServerParams

	cmd := &cobra.Command{
		Use:   "dev-server",
		Short: "Run an in-memory backend with sample school data",
		Long: `Serve the backend REST contract from memory for local development and demos.
Data is seeded with sample records and lost on exit. Prometheus request
metrics are exposed at /metrics.`,
		Example: `  schoolconsole dev-server
  schoolconsole dev-server --addr 127.0.0.1:9090 --latency 300ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store := devserver.NewStore(devserver.Resources()...)
			if !params.empty {
				devserver.Seed(store)
			}
			srv := devserver.New(store,
				devserver.WithLogger(*logging.FromContext(ctx)),
				devserver.WithLatency(params.latency),
				devserver.WithPrefix(params.prefix),
			)

			return srv.ListenAndServe(ctx, params.addr, func(addr net.Addr) {
				base := "http://" + addr.String() + params.prefix
				cmd.Printf("Development backend listening on %s\n", base)
				cmd.Printf("Point the console at it with --api-url %s\n", base)
			})
		},
	}

	cmd.Flags().StringVar(&params.addr, "addr", "127.0.0.1:8080", "Listen address")
	cmd.Flags().StringVar(&params.prefix, "prefix", "/api", "Path prefix of the resource routes")
	cmd.Flags().DurationVar(&params.latency, "latency", 0, "Artificial delay added to every API response")
	cmd.Flags().BoolVar(&params.empty, "empty", false, "Start without sample data")
	return cmd
}

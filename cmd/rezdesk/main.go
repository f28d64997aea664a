// Package main is the entry point for the rezdesk TUI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomvoss/rezdesk/internal/app"
)

// Version information set at build time.
var version = "0.1.0"

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "rezdesk",
		Short: "Terminal dashboard for managing booking requests",
		Long: `Rezdesk is a terminal dashboard for a hosted booking backend.
It polls the bookings table, highlights new requests as they arrive,
and lets you update booking and payment status inline, saving changes
back in a batch.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return app.Run(ctx, opts)
		},
	}

	root.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.config/rezdesk/config.toml)")
	root.Flags().StringVar(&opts.PrefsPath, "prefs", "", "preferences file path (default ~/.config/rezdesk/prefs.toml)")
	root.Flags().StringVar(&opts.Table, "table", "", "bookings table name (overrides config)")
	root.Flags().IntVar(&opts.PollEvery, "poll", 0, "refresh interval in seconds (overrides config)")

	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("rezdesk version %s\n", version)
		},
	}
}

func main() {
	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "rezdesk: %v\n", err)
		os.Exit(1)
	}
}

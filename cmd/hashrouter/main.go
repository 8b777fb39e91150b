package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var version = "dev"

type globalFlags struct {
	routes    string
	strict    bool
	sensitive bool
	verbose   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "hashrouter",
		Short: "Match addresses against a fragment route table",
		Long: `hashrouter loads an ordered route file and reports which route handles
an address and the parameters it captures.

The route file is a YAML mapping from specifier to label. Order matters:
the first matching route wins.

  "/": home
  "/users/new": new-user
  "/users/:id": user
  "/files/*": files`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.routes, "routes", "r", "routes.yaml", "Route file")
	rootCmd.PersistentFlags().BoolVar(&flags.strict, "strict", false, "Do not accept a trailing slash")
	rootCmd.PersistentFlags().BoolVar(&flags.sensitive, "sensitive", false, "Match case-sensitively")
	rootCmd.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "Log debug records to stderr")

	rootCmd.AddCommand(
		matchCmd(flags),
		watchCmd(flags),
	)

	return rootCmd
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

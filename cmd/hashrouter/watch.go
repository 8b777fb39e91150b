package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/pedia/hashrouter/location"
	"github.com/spf13/cobra"
)

func watchCmd(flags *globalFlags) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Dispatch every address read from stdin",
		Long: `Read one href per line from stdin, treat each line as a navigation and
print the result of every dispatch. The start address is dispatched first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(flags.verbose)

			defs, err := loadRoutes(flags.routes)
			if err != nil {
				return err
			}

			t, err := newTable(defs, flags, logger)
			if err != nil {
				return err
			}

			nav := location.NewEmitter(start)
			src := location.Detect(nav, location.WithLogger(logger))

			var writeErr error
			report := func(fragment string) {
				if writeErr != nil {
					return
				}
				writeErr = writeResult(cmd.OutOrStdout(), t.dispatch(nav.Href(), fragment))
			}

			stop := src.Subscribe(report)
			defer stop()

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				nav.Navigate(line)
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}

			return writeErr
		},
	}

	cmd.Flags().StringVar(&start, "start", "/", "Address dispatched before reading stdin")

	return cmd
}

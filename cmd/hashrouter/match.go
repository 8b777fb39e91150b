package main

import (
	"github.com/pedia/hashrouter/location"
	"github.com/spf13/cobra"
)

func matchCmd(flags *globalFlags) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "match [address...]",
		Short: "Dispatch addresses and print the matching route",
		Long: `Dispatch each address against the route table and print the route,
its label and the captured parameters as YAML documents.

Addresses are full hrefs by default; their fragment is extracted the way a
browser location would report it. Use --fragment to pass fragments as is.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := loadRoutes(flags.routes)
			if err != nil {
				return err
			}

			t, err := newTable(defs, flags, newLogger(flags.verbose))
			if err != nil {
				return err
			}

			for _, arg := range args {
				href, fragment := arg, arg
				if raw {
					href = ""
				} else {
					fragment = location.Fragment(arg)
				}

				if err := writeResult(cmd.OutOrStdout(), t.dispatch(href, fragment)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&raw, "fragment", "f", false, "Treat arguments as fragments instead of hrefs")

	return cmd
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newWordlistsCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:     "wordlists",
		Aliases: []string{"ls"},
		Short:   "List the available wordlists",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			cats, err := a.resolver.ListWordlists(cmd.Context())
			if err != nil {
				return err
			}
			if len(cats) == 0 {
				fmt.Fprintln(a.out, "No wordlists available.")
				return nil
			}
			for _, c := range cats {
				fmt.Fprintf(a.out, "%s [%s]\n", c.Label, c.Name)
				fmt.Fprintf(a.out, "  %s\n", strings.Join(c.Books, ", "))
			}
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProfileCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the user profile kept by the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			client, err := a.requireAPI()
			if err != nil {
				return err
			}
			p := client.FetchProfile(cmd.Context())
			fmt.Fprintf(a.out, "👤 %s\n", p.Username)
			for _, row := range p.Progress.Summaries() {
				fmt.Fprintf(a.out, "  %s/%s: %d words practised\n", row.Category, row.Filename, row.Words)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-name <name>",
		Short: "Change the username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			client, err := a.requireAPI()
			if err != nil {
				return err
			}
			p, err := client.UpdateProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✅ Username set to %s\n", p.Username)
			return nil
		},
	})
	return cmd
}

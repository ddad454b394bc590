package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/japaniel/lexiquest/pkg/config"
)

type rootOptions struct {
	configPath string
	offline    bool
}

// newRootCmd builds the command tree. Components are wired once per run in
// PersistentPreRunE and handed to subcommands through *app.
func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var (
		opts rootOptions
		a    *app
	)

	root := &cobra.Command{
		Use:   "lexiquest",
		Short: "Vocabulary quizzes backed by a wordlist service or static files",
		Long: `LexiQuest runs vocabulary quizzes in the terminal.
Wordlists come from the LexiQuest API when it is reachable and from
static wordlist files otherwise.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.offline {
				cfg.API.Disabled = true
				cfg.Dictionary.Disabled = true
			}
			a, err = newApp(cmd.Context(), cfg, in, out)
			return err
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a == nil {
				return nil
			}
			return a.Close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to the YAML config file (default $LEXIQUEST_CONFIG or ./lexiquest.yaml)")
	root.PersistentFlags().BoolVar(&opts.offline, "offline", false, "use static wordlists only and skip dictionary lookups")

	get := func() *app { return a }
	root.AddCommand(
		newQuizCmd(get),
		newWordlistsCmd(get),
		newProfileCmd(get),
		newProgressCmd(get),
		newStatusCmd(get),
		newImportCmd(get),
	)
	return root
}

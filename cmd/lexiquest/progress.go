package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/japaniel/lexiquest/pkg/progress"
	"github.com/japaniel/lexiquest/pkg/wordlist"
)

func newProgressCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show per-wordlist progress stored by the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			client, err := a.requireAPI()
			if err != nil {
				return err
			}
			rows := client.FetchProgressList(cmd.Context())
			if len(rows) == 0 {
				fmt.Fprintln(a.out, "No progress recorded.")
				return nil
			}
			for _, r := range rows {
				fmt.Fprintf(a.out, "%-10s %-12s %d words\n", r.Category, r.Filename, r.Words)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <category> <filename>",
		Short: "Delete the stored progress of one wordlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			client, err := a.requireAPI()
			if err != nil {
				return err
			}
			key := wordlist.Key{Category: args[0], Filename: args[1]}
			if err := key.Validate(); err != nil {
				return err
			}
			if err := client.DeleteProgress(cmd.Context(), key); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "🗑️ Progress for %s deleted\n", key)
			return nil
		},
	})

	var (
		category string
		clearAll bool
	)
	history := &cobra.Command{
		Use:   "history",
		Short: "Show local quiz score history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			if clearAll {
				return clearHistory(cmd, a, category)
			}

			var recs []progress.Record
			if category != "" {
				recs = a.progress.ByCategory(category)
			} else {
				recs = a.progress.History()
			}
			if len(recs) == 0 {
				fmt.Fprintln(a.out, "No quizzes finished yet.")
				return nil
			}
			for _, r := range recs {
				fmt.Fprintf(a.out, "%s  %-10s %g\n", r.RecordedAt.Local().Format(time.DateTime), r.Category, r.Score)
			}

			latest := a.progress.Latest()
			fmt.Fprintln(a.out, "Latest:")
			for _, cat := range slices.Sorted(maps.Keys(latest)) {
				if category == "" || cat == category {
					fmt.Fprintf(a.out, "  %-10s %g\n", cat, latest[cat])
				}
			}
			return nil
		},
	}
	history.Flags().StringVar(&category, "category", "", "only show one category")
	history.Flags().BoolVar(&clearAll, "clear", false, "delete the stored history of --category")
	cmd.AddCommand(history)
	return cmd
}

func clearHistory(cmd *cobra.Command, a *app, category string) error {
	if category == "" {
		return errors.New("--clear needs --category")
	}
	if a.store == nil {
		return errors.New("history is not persisted; set storage.progress_db to keep it")
	}
	n, err := a.store.DeleteCategory(cmd.Context(), category)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "🗑️ Removed %d records of %s\n", n, category)
	return nil
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/japaniel/lexiquest/pkg/static"
	"github.com/japaniel/lexiquest/pkg/wordlist"
)

func newImportCmd(get func() *app) *cobra.Command {
	var (
		sheet      string
		outDir     string
		skipHeader bool
	)
	cmd := &cobra.Command{
		Use:   "import <file.xlsx> <category> <filename>",
		Short: "Convert a spreadsheet into a static wordlist file",
		Long: `Convert a spreadsheet whose first three columns are word, translation
and part of speech into OUT/wordlists/<category>/<filename>.txt, ready to be
served as a static wordlist.`,
		Args: cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			a := get()
			key := wordlist.Key{Category: args[1], Filename: args[2]}
			if err := key.Validate(); err != nil {
				return err
			}

			res, err := wordlist.ReadSpreadsheet(args[0], wordlist.SpreadsheetOptions{Sheet: sheet, SkipHeader: skipHeader})
			if err != nil {
				return err
			}
			for _, bad := range res.Dropped {
				fmt.Fprintf(a.out, "⚠️ row %d skipped: %q\n", bad.Line, bad.Text)
			}
			if len(res.Entries) == 0 {
				return fmt.Errorf("no usable rows in %s", args[0])
			}

			dest := filepath.Join(outDir, filepath.FromSlash(static.WordlistPath(key)))
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			if err := os.WriteFile(dest, wordlist.Format(res.Entries), 0o644); err != nil {
				return fmt.Errorf("write wordlist: %w", err)
			}
			fmt.Fprintf(a.out, "✅ Wrote %d words to %s\n", len(res.Entries), dest)
			return nil
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet to read (default first sheet)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "static root directory to write into")
	cmd.Flags().BoolVar(&skipHeader, "skip-header", false, "ignore the first row")
	return cmd
}

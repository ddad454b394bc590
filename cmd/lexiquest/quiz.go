package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/japaniel/lexiquest/pkg/quiz"
	"github.com/japaniel/lexiquest/pkg/session"
	"github.com/japaniel/lexiquest/pkg/wordlist"
)

func newQuizCmd(get func() *app) *cobra.Command {
	var (
		random bool
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "quiz <category> <filename>",
		Short: "Run a quiz over a wordlist",
		Long: `Run a quiz over a wordlist. Each word is shown and the translation
is read from standard input. With --random a subset of --limit words is asked.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			key := wordlist.Key{Category: args[0], Filename: args[1]}
			q := a.newQuiz()

			var err error
			if random {
				if !cmd.Flags().Changed("limit") {
					limit = a.cfg.Quiz.DefaultLimit
				}
				err = q.LoadRandomQuiz(cmd.Context(), key, limit)
			} else {
				err = q.LoadQuiz(cmd.Context(), key)
			}
			if err != nil {
				return err
			}
			return runQuiz(cmd, a, q)
		},
	}
	cmd.Flags().BoolVarP(&random, "random", "r", false, "ask a random subset of the wordlist")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of words for --random (default from config)")
	return cmd
}

func runQuiz(cmd *cobra.Command, a *app, q *quiz.Quiz) error {
	out := a.out
	reader := bufio.NewReader(a.in)
	s := q.Session()

	snap := s.Snapshot()
	if snap.State == session.StateEmpty {
		fmt.Fprintf(out, "Wordlist %s has no words.\n", snap.Key)
		return nil
	}
	fmt.Fprintf(out, "📖 %s: %d words\n", snap.Key, len(snap.Words))

	total := len(snap.Words)
	for s.State() != session.StateCompleted {
		entry, _ := s.Current()
		idx := s.Snapshot().Index
		printQuestion(out, idx+1, total, entry)

		fmt.Fprint(out, "Translation: ")
		input, err := reader.ReadString('\n')
		answer := strings.TrimSpace(input)
		if err != nil && answer == "" {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out, "\nInput closed, finishing early.")
				break
			}
			return err
		}

		correct := strings.EqualFold(answer, entry.Translation)
		if err := s.RecordAnswer(correct); err != nil {
			return err
		}
		if correct {
			fmt.Fprintln(out, "✅ Correct!")
		} else {
			fmt.Fprintf(out, "❌ The answer is %q\n", entry.Translation)
		}
		s.Advance()
	}

	if s.Snapshot().Answered == 0 {
		return nil
	}

	res, err := q.Finish(cmd.Context())
	fmt.Fprintf(out, "\n🎉 Score: %d/%d\n", res.Correct, res.Answered)
	if res.Submitted {
		fmt.Fprintf(out, "Results submitted: %s\n", res.Ack.Message)
	}
	if err == nil {
		return nil
	}
	fmt.Fprintf(out, "⚠️ %v\n", err)

	if a.client == nil || res.Submitted {
		return nil
	}
	fmt.Fprint(out, "Retry submitting results? [y/N]: ")
	input, _ := reader.ReadString('\n')
	if !strings.EqualFold(strings.TrimSpace(input), "y") {
		return nil
	}
	ack, err := q.Submit(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Results submitted: %s\n", ack.Message)
	return nil
}

func printQuestion(out io.Writer, n, total int, e wordlist.Entry) {
	fmt.Fprintf(out, "\n[%d/%d] %s", n, total, e.Word)
	if e.PartOfSpeech != "" {
		fmt.Fprintf(out, " (%s)", e.PartOfSpeech)
	}
	fmt.Fprintln(out)
	if !e.Enriched() {
		return
	}

	if e.Phonetic != "" {
		fmt.Fprintf(out, "   %s\n", e.Phonetic)
	}
	if len(e.Meanings) > 0 {
		m := e.Meanings[0]
		fmt.Fprintf(out, "   %s: %s\n", m.PartOfSpeech, m.Definition)
		if m.Example != "" {
			fmt.Fprintf(out, "   e.g. %s\n", m.Example)
		}
	}
}

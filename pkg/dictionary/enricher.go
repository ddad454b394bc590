package dictionary

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/japaniel/lexiquest/pkg/wordlist"
)

// Enricher attaches dictionary data to wordlist entries.
type Enricher struct {
	looker Looker
	log    *slog.Logger
}

// NewEnricher creates an Enricher backed by looker.
func NewEnricher(looker Looker, logger *slog.Logger) *Enricher {
	return &Enricher{looker: looker, log: logger.With("component", "enricher")}
}

// Enrich looks up every entry concurrently and returns a new slice of the same
// length and order. A failed lookup leaves that entry as it was. The input is
// never modified. A nil Enricher returns the entries unchanged.
func (e *Enricher) Enrich(ctx context.Context, entries []wordlist.Entry) []wordlist.Entry {
	if e == nil || len(entries) == 0 {
		return entries
	}

	out := make([]wordlist.Entry, len(entries))
	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range entries {
		g.Go(func() error {
			out[i] = entry.Clone()
			rec, err := e.looker.Lookup(gctx, entry.Word)
			if err != nil {
				failed.Add(1)
				e.log.DebugContext(gctx, "dictionary lookup failed",
					slog.String("word", entry.Word),
					slog.String("error", err.Error()),
				)
				return nil
			}
			out[i] = Merge(out[i], rec)
			return nil
		})
	}
	// Lookups never return an error, so Wait only joins.
	_ = g.Wait()

	if n := failed.Load(); n > 0 {
		e.log.InfoContext(ctx, "enrichment incomplete",
			slog.Int("entries", len(entries)),
			slog.Int64("failed", n),
		)
	}
	return out
}

// Merge copies the non-empty dictionary fields of rec onto a copy of entry.
func Merge(entry wordlist.Entry, rec Record) wordlist.Entry {
	out := entry.Clone()
	if rec.Phonetic != "" {
		out.Phonetic = rec.Phonetic
	}
	if rec.Audio != "" {
		out.AudioURL = rec.Audio
	}
	if len(rec.Meanings) > 0 {
		out.Meanings = make([]wordlist.Meaning, len(rec.Meanings))
		copy(out.Meanings, rec.Meanings)
	}
	return out
}

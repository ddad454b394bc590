// Package source decides where wordlists come from for each call: the API
// service when its status check passes, the static files otherwise.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/japaniel/lexiquest/pkg/api"
	"github.com/japaniel/lexiquest/pkg/static"
	"github.com/japaniel/lexiquest/pkg/wordlist"
)

var (
	// ErrNotFound is returned when a wordlist could not be read from any source.
	ErrNotFound = errors.New("wordlist not found")
	// ErrInvalidKey is returned for empty or path-like category and filename values.
	ErrInvalidKey = errors.New("invalid wordlist key")
)

// Remote is the part of the API client the resolver needs.
type Remote interface {
	FetchWordlist(ctx context.Context, key wordlist.Key) ([]wordlist.Entry, error)
	FetchRandom(ctx context.Context, key wordlist.Key, limit int) ([]wordlist.Entry, error)
	FetchCatalog(ctx context.Context) (map[string][]string, error)
}

// Resolver loads wordlists and the catalog from the API or the static source.
type Resolver struct {
	prober      api.Prober
	remote      Remote
	static      static.Source
	catalogPath string
	log         *slog.Logger
}

// NewResolver creates a Resolver. remote may be nil when prober never reports ModeAPI.
func NewResolver(prober api.Prober, remote Remote, src static.Source, logger *slog.Logger) *Resolver {
	return &Resolver{
		prober: prober,
		remote: remote,
		static: src,
		log:    logger.With("component", "resolver"),
	}
}

// WithCatalogFile makes ListWordlists read the static catalog from a local
// YAML file instead of the static source.
func (r *Resolver) WithCatalogFile(path string) *Resolver {
	r.catalogPath = path
	return r
}

// LoadWordlist returns the entries of one wordlist. In API mode any API
// failure is logged and the static source is used instead; only a static
// failure is returned. A successful result is never nil.
func (r *Resolver) LoadWordlist(ctx context.Context, key wordlist.Key) ([]wordlist.Entry, error) {
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return r.load(ctx, r.prober.Check(ctx), key)
}

func (r *Resolver) load(ctx context.Context, mode api.Mode, key wordlist.Key) ([]wordlist.Entry, error) {
	if mode == api.ModeAPI && r.remote != nil {
		entries, err := r.remote.FetchWordlist(ctx, key)
		if err == nil {
			r.log.DebugContext(ctx, "wordlist loaded",
				slog.String("wordlist", key.String()),
				slog.String("mode", mode.String()),
				slog.Int("entries", len(entries)),
			)
			return entries, nil
		}
		r.log.WarnContext(ctx, "api wordlist failed, using static source",
			slog.String("wordlist", key.String()),
			slog.String("error", err.Error()),
		)
	}
	return r.loadStatic(ctx, key)
}

func (r *Resolver) loadStatic(ctx context.Context, key wordlist.Key) ([]wordlist.Entry, error) {
	path := static.WordlistPath(key)
	raw, err := r.static.Fetch(ctx, path)
	if err != nil {
		r.log.ErrorContext(ctx, "static wordlist unavailable",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	}

	text, err := static.DecodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", api.ErrMalformed, path, err)
	}

	res := wordlist.Parse(text)
	for _, bad := range res.Dropped {
		r.log.WarnContext(ctx, "malformed wordlist line skipped",
			slog.String("path", path),
			slog.Int("line", bad.Line),
			slog.String("text", bad.Text),
		)
	}
	r.log.DebugContext(ctx, "wordlist loaded",
		slog.String("wordlist", key.String()),
		slog.String("mode", api.ModeStatic.String()),
		slog.Int("entries", len(res.Entries)),
		slog.Int("dropped", len(res.Dropped)),
	)
	return res.Entries, nil
}

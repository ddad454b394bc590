package source

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/japaniel/lexiquest/pkg/api"
	"github.com/japaniel/lexiquest/pkg/wordlist"
)

// DefaultLimit is used when Sample is called with a non-positive limit.
const DefaultLimit = 10

// Shuffler permutes n elements through swap.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// ShuffleFunc adapts a function to Shuffler.
type ShuffleFunc func(n int, swap func(i, j int))

func (f ShuffleFunc) Shuffle(n int, swap func(i, j int)) { f(n, swap) }

// RandomShuffler is a uniform Fisher-Yates shuffle.
var RandomShuffler Shuffler = ShuffleFunc(rand.Shuffle)

// Sampler picks a random subset of a wordlist.
type Sampler struct {
	resolver *Resolver
	shuffler Shuffler
	log      *slog.Logger
}

// NewSampler creates a Sampler. A nil shuffler uses RandomShuffler.
func NewSampler(resolver *Resolver, shuffler Shuffler, logger *slog.Logger) *Sampler {
	if shuffler == nil {
		shuffler = RandomShuffler
	}
	return &Sampler{resolver: resolver, shuffler: shuffler, log: logger.With("component", "sampler")}
}

// Sample returns at most limit entries of the wordlist. In API mode the
// service picks them; a failed or empty answer falls back to shuffling the
// full wordlist locally. The random endpoint is never retried.
//
// The probe runs once per call. The local fallback loads the wordlist with
// the mode that probe returned and does not probe again, so in API mode it
// still tries the service's full wordlist before the static source.
func (s *Sampler) Sample(ctx context.Context, key wordlist.Key, limit int) ([]wordlist.Entry, error) {
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	mode := s.resolver.prober.Check(ctx)
	if mode == api.ModeAPI && s.resolver.remote != nil {
		entries, err := s.resolver.remote.FetchRandom(ctx, key, limit)
		switch {
		case err != nil:
			s.log.WarnContext(ctx, "api random wordlist failed, sampling locally",
				slog.String("wordlist", key.String()),
				slog.String("error", err.Error()),
			)
		case len(entries) == 0:
			s.log.InfoContext(ctx, "api random wordlist empty, sampling locally",
				slog.String("wordlist", key.String()),
			)
		default:
			return truncate(entries, limit), nil
		}
	}

	all, err := s.resolver.load(ctx, mode, key)
	if err != nil {
		return nil, err
	}
	pool := make([]wordlist.Entry, len(all))
	copy(pool, all)
	s.shuffler.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return truncate(pool, limit), nil
}

func truncate(entries []wordlist.Entry, limit int) []wordlist.Entry {
	if len(entries) > limit {
		return entries[:limit]
	}
	return entries
}

// Package quiz wires wordlist loading, enrichment, the session and result
// recording into the operations a front end calls.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/japaniel/lexiquest/pkg/api"
	"github.com/japaniel/lexiquest/pkg/progress"
	"github.com/japaniel/lexiquest/pkg/session"
	"github.com/japaniel/lexiquest/pkg/wordlist"
)

// ErrNothingToFinish is returned by Finish and Submit when no words are loaded.
var ErrNothingToFinish = errors.New("no quiz loaded")

// Loader resolves a full wordlist.
type Loader interface {
	LoadWordlist(ctx context.Context, key wordlist.Key) ([]wordlist.Entry, error)
}

// Sampler picks a random subset of a wordlist.
type Sampler interface {
	Sample(ctx context.Context, key wordlist.Key, limit int) ([]wordlist.Entry, error)
}

// Enricher adds dictionary data to entries. It must not fail.
type Enricher interface {
	Enrich(ctx context.Context, entries []wordlist.Entry) []wordlist.Entry
}

// Submitter sends the correctly answered words to the service.
type Submitter interface {
	SubmitQuizResults(ctx context.Context, key wordlist.Key, results []string) (api.SubmitAck, error)
}

// Deps are the collaborators of a Quiz. Enricher, Submitter and Progress may be nil.
type Deps struct {
	Loader    Loader
	Sampler   Sampler
	Enricher  Enricher
	Submitter Submitter
	Progress  *progress.Store
}

// Quiz owns one session and the operations around it.
type Quiz struct {
	deps    Deps
	session *session.Session
	log     *slog.Logger
}

// New creates a Quiz with an empty session.
func New(deps Deps, logger *slog.Logger) *Quiz {
	return &Quiz{
		deps:    deps,
		session: session.New(),
		log:     logger.With("component", "quiz"),
	}
}

// Session returns the live session.
func (q *Quiz) Session() *session.Session { return q.session }

// LoadQuiz resolves the whole wordlist, enriches it and installs it.
// On error the session is left as it was.
func (q *Quiz) LoadQuiz(ctx context.Context, key wordlist.Key) error {
	entries, err := q.deps.Loader.LoadWordlist(ctx, key)
	if err != nil {
		return fmt.Errorf("load quiz %s: %w", key, err)
	}
	q.install(ctx, key, entries)
	return nil
}

// LoadRandomQuiz samples up to limit entries, enriches them and installs them.
// On error the session is left as it was.
func (q *Quiz) LoadRandomQuiz(ctx context.Context, key wordlist.Key, limit int) error {
	entries, err := q.deps.Sampler.Sample(ctx, key, limit)
	if err != nil {
		return fmt.Errorf("load random quiz %s: %w", key, err)
	}
	q.install(ctx, key, entries)
	return nil
}

func (q *Quiz) install(ctx context.Context, key wordlist.Key, entries []wordlist.Entry) {
	if q.deps.Enricher != nil {
		entries = q.deps.Enricher.Enrich(ctx, entries)
	}
	q.session.Load(key, entries)
	q.log.InfoContext(ctx, "quiz loaded",
		slog.String("wordlist", key.String()),
		slog.Int("words", len(entries)),
	)
}

// Result is the outcome of Finish.
type Result struct {
	Key      wordlist.Key
	Correct  int
	Answered int
	Record   progress.Record
	Ack      api.SubmitAck
	// Submitted is false when no submitter is configured or submission failed.
	Submitted bool
}

// Finish records the score in the progress store and submits the correct
// words. Both steps are attempted; their errors are joined. A failed
// submission can be repeated with Submit.
func (q *Quiz) Finish(ctx context.Context) (Result, error) {
	snap := q.session.Snapshot()
	if len(snap.Words) == 0 {
		return Result{}, ErrNothingToFinish
	}
	res := Result{Key: snap.Key, Correct: snap.Correct, Answered: snap.Answered}

	var errs []error
	if q.deps.Progress != nil {
		rec, err := q.deps.Progress.Record(ctx, snap.Key.Category, float64(snap.Correct))
		res.Record = rec
		if err != nil {
			errs = append(errs, err)
		}
	}

	if q.deps.Submitter != nil {
		ack, err := q.Submit(ctx)
		if err != nil {
			errs = append(errs, err)
		} else {
			res.Ack = ack
			res.Submitted = true
		}
	}
	return res, errors.Join(errs...)
}

// Submit sends every word answered so far. It is not retried.
func (q *Quiz) Submit(ctx context.Context) (api.SubmitAck, error) {
	if q.deps.Submitter == nil {
		return api.SubmitAck{}, errors.New("submit quiz results: no submitter configured")
	}
	snap := q.session.Snapshot()
	if len(snap.Words) == 0 {
		return api.SubmitAck{}, ErrNothingToFinish
	}
	ack, err := q.deps.Submitter.SubmitQuizResults(ctx, snap.Key, q.session.AnsweredWords())
	if err != nil {
		return api.SubmitAck{}, fmt.Errorf("submit quiz results %s: %w", snap.Key, err)
	}
	return ack, nil
}

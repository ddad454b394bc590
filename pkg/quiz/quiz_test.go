package quiz

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japaniel/lexiquest/internal/apitest"
	"github.com/japaniel/lexiquest/pkg/api"
	"github.com/japaniel/lexiquest/pkg/dictionary"
	"github.com/japaniel/lexiquest/pkg/progress"
	"github.com/japaniel/lexiquest/pkg/session"
	"github.com/japaniel/lexiquest/pkg/source"
	"github.com/japaniel/lexiquest/pkg/static"
	"github.com/japaniel/lexiquest/pkg/wordlist"
)

var daily = wordlist.Key{Category: "daily", Filename: "basic"}

type stubLoader struct {
	entries []wordlist.Entry
	err     error
}

func (s stubLoader) LoadWordlist(context.Context, wordlist.Key) ([]wordlist.Entry, error) {
	return s.entries, s.err
}

func (s stubLoader) Sample(_ context.Context, _ wordlist.Key, limit int) ([]wordlist.Entry, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.entries) > limit {
		return s.entries[:limit], nil
	}
	return s.entries, nil
}

type tagEnricher struct{}

func (tagEnricher) Enrich(_ context.Context, in []wordlist.Entry) []wordlist.Entry {
	out := make([]wordlist.Entry, len(in))
	for i, e := range in {
		e.Phonetic = "/" + e.Word + "/"
		out[i] = e
	}
	return out
}

type recordingSubmitter struct {
	calls   int
	results []string
	err     error
}

func (r *recordingSubmitter) SubmitQuizResults(_ context.Context, _ wordlist.Key, results []string) (api.SubmitAck, error) {
	r.calls++
	r.results = results
	if r.err != nil {
		return api.SubmitAck{}, r.err
	}
	return api.SubmitAck{Message: "ok"}, nil
}

func entries(words ...string) []wordlist.Entry {
	out := make([]wordlist.Entry, len(words))
	for i, w := range words {
		out[i] = wordlist.Entry{Word: w, Translation: w + "-t", PartOfSpeech: "noun"}
	}
	return out
}

func TestLoadQuiz_EnrichesAndInstalls(t *testing.T) {
	l := stubLoader{entries: entries("cat", "dog")}
	q := New(Deps{Loader: l, Sampler: l, Enricher: tagEnricher{}}, apitest.Logger())

	require.NoError(t, q.LoadQuiz(context.Background(), daily))
	snap := q.Session().Snapshot()
	assert.Equal(t, session.StateLoaded, snap.State)
	assert.Equal(t, daily, snap.Key)
	require.Len(t, snap.Words, 2)
	assert.Equal(t, "/cat/", snap.Words[0].Phonetic)
}

func TestLoadRandomQuiz(t *testing.T) {
	l := stubLoader{entries: entries("a", "b", "c")}
	q := New(Deps{Loader: l, Sampler: l}, apitest.Logger())

	require.NoError(t, q.LoadRandomQuiz(context.Background(), daily, 2))
	assert.Len(t, q.Session().Snapshot().Words, 2)
}

func TestLoadFailureKeepsSession(t *testing.T) {
	good := stubLoader{entries: entries("cat")}
	q := New(Deps{Loader: good, Sampler: good}, apitest.Logger())
	require.NoError(t, q.LoadQuiz(context.Background(), daily))
	require.NoError(t, q.Session().RecordAnswer(true))

	bad := stubLoader{err: source.ErrNotFound}
	q.deps.Loader = bad
	q.deps.Sampler = bad

	assert.ErrorIs(t, q.LoadQuiz(context.Background(), daily), source.ErrNotFound)
	assert.ErrorIs(t, q.LoadRandomQuiz(context.Background(), daily, 5), source.ErrNotFound)

	snap := q.Session().Snapshot()
	assert.Equal(t, session.StateInProgress, snap.State)
	assert.Equal(t, 1, snap.Correct)
}

func TestFinish_RecordsAndSubmits(t *testing.T) {
	l := stubLoader{entries: entries("cat", "dog", "sun")}
	sub := &recordingSubmitter{}
	store := progress.NewStore()
	q := New(Deps{Loader: l, Sampler: l, Submitter: sub, Progress: store}, apitest.Logger())
	require.NoError(t, q.LoadQuiz(context.Background(), daily))

	s := q.Session()
	for _, ok := range []bool{true, false, true} {
		require.NoError(t, s.RecordAnswer(ok))
		s.Advance()
	}
	require.Equal(t, session.StateCompleted, s.State())

	res, err := q.Finish(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Correct)
	assert.Equal(t, 3, res.Answered)
	assert.True(t, res.Submitted)
	assert.Equal(t, []string{"cat", "dog", "sun"}, sub.results)
	assert.Equal(t, 2.0, store.Latest()["daily"])
	assert.Equal(t, "daily", res.Record.Category)
}

func TestFinish_SubmitFailureThenResubmit(t *testing.T) {
	l := stubLoader{entries: entries("cat")}
	sub := &recordingSubmitter{err: &api.StatusError{Method: http.MethodPost, Path: "/api/quiz/submit", StatusCode: 502}}
	store := progress.NewStore()
	q := New(Deps{Loader: l, Sampler: l, Submitter: sub, Progress: store}, apitest.Logger())
	require.NoError(t, q.LoadQuiz(context.Background(), daily))
	require.NoError(t, q.Session().RecordAnswer(true))

	res, err := q.Finish(context.Background())
	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	assert.False(t, res.Submitted)
	assert.Len(t, store.History(), 1, "progress is recorded even when submission fails")
	assert.Equal(t, 1, sub.calls)

	sub.err = nil
	ack, err := q.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", ack.Message)
	assert.Equal(t, 2, sub.calls)
	assert.Len(t, store.History(), 1)
}

func TestFinish_Empty(t *testing.T) {
	q := New(Deps{Submitter: &recordingSubmitter{}}, apitest.Logger())
	_, err := q.Finish(context.Background())
	assert.ErrorIs(t, err, ErrNothingToFinish)
	_, err = q.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNothingToFinish)

	q = New(Deps{}, apitest.Logger())
	_, err = q.Submit(context.Background())
	assert.Error(t, err)
}

type failingPersister struct{}

func (failingPersister) AppendProgress(context.Context, progress.Record) error {
	return errors.New("disk full")
}

func (failingPersister) LoadProgress(context.Context) ([]progress.Record, error) { return nil, nil }

func TestFinish_JoinsErrors(t *testing.T) {
	l := stubLoader{entries: entries("cat")}
	sub := &recordingSubmitter{err: api.ErrUnreachable}
	q := New(Deps{
		Loader:    l,
		Sampler:   l,
		Submitter: sub,
		Progress:  progress.NewStore(progress.WithPersister(failingPersister{})),
	}, apitest.Logger())
	require.NoError(t, q.LoadQuiz(context.Background(), daily))

	_, err := q.Finish(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUnreachable)
	assert.Contains(t, err.Error(), "disk full")
}

// TestEndToEnd_APIMode runs the real resolver, sampler, enricher and API
// client against one fake service.
func TestEndToEnd_APIMode(t *testing.T) {
	var submitted atomic.Int32
	srv := apitest.NewServer(t, func(r chi.Router) {
		apitest.StatusOK(r)
		r.Get("/api/wordlist/random/{category}/{filename}/{limit}", func(w http.ResponseWriter, _ *http.Request) {
			apitest.WriteRaw(w, http.StatusOK, `[{"word":"cat","translation":"貓","type":"noun"},{"word":"dog","translation":"狗","type":"noun"}]`)
		})
		r.Get("/dictionary/{word}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "word") == "dog" {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			apitest.WriteJSON(w, http.StatusOK, dictionary.Record{Word: "cat", Phonetic: "/kæt/"})
		})
		r.Post("/api/quiz/submit", func(w http.ResponseWriter, _ *http.Request) {
			submitted.Add(1)
			apitest.WriteJSON(w, http.StatusOK, api.SubmitAck{Message: "Quiz results submitted"})
		})
	})

	log := apitest.Logger()
	client := api.NewClient(srv.URL, nil, log)
	resolver := source.NewResolver(api.NewProbe(client, log), client, static.Bundled(), log)
	q := New(Deps{
		Loader:    resolver,
		Sampler:   source.NewSampler(resolver, nil, log),
		Enricher:  dictionary.NewEnricher(dictionary.NewClient(srv.URL+"/dictionary", nil), log),
		Submitter: client,
		Progress:  progress.NewStore(),
	}, log)

	require.NoError(t, q.LoadRandomQuiz(context.Background(), daily, 5))
	snap := q.Session().Snapshot()
	require.Len(t, snap.Words, 2)
	assert.Equal(t, "/kæt/", snap.Words[0].Phonetic)
	assert.Empty(t, snap.Words[1].Phonetic)

	require.NoError(t, q.Session().RecordAnswer(true))
	res, err := q.Finish(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Submitted)
	assert.Equal(t, int32(1), submitted.Load())
}

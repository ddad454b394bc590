package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/japaniel/lexiquest/pkg/api"
	"github.com/japaniel/lexiquest/pkg/config"
	"github.com/japaniel/lexiquest/pkg/db"
	"github.com/japaniel/lexiquest/pkg/dictionary"
	"github.com/japaniel/lexiquest/pkg/logging"
	"github.com/japaniel/lexiquest/pkg/progress"
	"github.com/japaniel/lexiquest/pkg/quiz"
	"github.com/japaniel/lexiquest/pkg/source"
	"github.com/japaniel/lexiquest/pkg/static"
)

var errAPIDisabled = errors.New("the API service is disabled in the configuration")

// app holds the wired components shared by all commands.
type app struct {
	cfg *config.Config
	log *slog.Logger

	client   *api.Client // nil when the API is disabled
	probe    *api.Probe  // nil when the API is disabled
	prober   api.Prober
	resolver *source.Resolver
	sampler  *source.Sampler
	enricher *dictionary.Enricher // nil when enrichment is disabled
	progress *progress.Store
	store    *db.Store // nil when history is kept in memory

	in  io.Reader
	out io.Writer
}

func newApp(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*app, error) {
	a := &app{
		cfg: cfg,
		log: logging.NewLogger(cfg.Log, os.Stderr),
		in:  in,
		out: out,
	}

	if cfg.API.Disabled {
		a.prober = api.FixedProber(api.ModeStatic)
	} else {
		a.client = api.NewClient(cfg.API.BaseURL, &http.Client{Timeout: cfg.API.Timeout}, a.log)
		a.probe = api.NewProbe(a.client, a.log)
		a.prober = a.probe
	}

	src, err := static.New(cfg.Static.Base, &http.Client{Timeout: cfg.API.Timeout}, a.log)
	if err != nil {
		return nil, err
	}

	var remote source.Remote
	if a.client != nil {
		remote = a.client
	}
	a.resolver = source.NewResolver(a.prober, remote, src, a.log)
	if cfg.Static.Catalog != "" {
		a.resolver.WithCatalogFile(cfg.Static.Catalog)
	}
	a.sampler = source.NewSampler(a.resolver, source.RandomShuffler, a.log)

	if !cfg.Dictionary.Disabled {
		lookup := dictionary.NewClient(cfg.Dictionary.BaseURL, &http.Client{Timeout: cfg.Dictionary.Timeout})
		a.enricher = dictionary.NewEnricher(lookup, a.log)
	}

	if cfg.Storage.ProgressDB == "" {
		a.progress = progress.NewStore()
		return a, nil
	}
	conn, err := db.Open(ctx, cfg.Storage.ProgressDB)
	if err != nil {
		return nil, fmt.Errorf("open progress db: %w", err)
	}
	a.store = db.NewStore(conn)
	a.progress = progress.NewStore(progress.WithPersister(a.store))
	if err := a.progress.Restore(ctx); err != nil {
		a.store.Close()
		return nil, err
	}
	return a, nil
}

// newQuiz builds a quiz over the app's components.
func (a *app) newQuiz() *quiz.Quiz {
	deps := quiz.Deps{
		Loader:   a.resolver,
		Sampler:  a.sampler,
		Progress: a.progress,
	}
	if a.enricher != nil {
		deps.Enricher = a.enricher
	}
	if a.client != nil {
		deps.Submitter = a.client
	}
	return quiz.New(deps, a.log)
}

func (a *app) requireAPI() (*api.Client, error) {
	if a.client == nil {
		return nil, errAPIDisabled
	}
	return a.client, nil
}

func (a *app) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

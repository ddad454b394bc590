package api

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japaniel/lexiquest/internal/apitest"
)

func TestProbeCheck(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   Mode
	}{
		{"ok", http.StatusOK, ModeAPI},
		{"no content", http.StatusNoContent, ModeAPI},
		{"server error", http.StatusInternalServerError, ModeStatic},
		{"unavailable", http.StatusServiceUnavailable, ModeStatic},
		{"not found", http.StatusNotFound, ModeStatic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := apitest.NewServer(t, func(r chi.Router) {
				r.Get("/api/status", func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(tt.status)
				})
			})
			p := NewProbe(NewClient(srv.URL, nil, apitest.Logger()), apitest.Logger())
			assert.Equal(t, tt.want, p.Check(context.Background()))
		})
	}
}

func TestProbeCheck_Unreachable(t *testing.T) {
	p := NewProbe(NewClient(apitest.DeadURL(t), nil, apitest.Logger()), apitest.Logger())
	assert.Equal(t, ModeStatic, p.Check(context.Background()))
}

func TestProbeCheck_Timeout(t *testing.T) {
	srv := apitest.NewServer(t, func(r chi.Router) {
		r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		})
	})
	client := NewClient(srv.URL, &http.Client{Timeout: 50 * time.Millisecond}, apitest.Logger())
	p := NewProbe(client, apitest.Logger())
	assert.Equal(t, ModeStatic, p.Check(context.Background()))
}

func TestProbe_LastAndWatchers(t *testing.T) {
	var (
		mu      sync.Mutex
		healthy = true
	)
	srv := apitest.NewServer(t, func(r chi.Router) {
		r.Get("/api/status", func(w http.ResponseWriter, _ *http.Request) {
			mu.Lock()
			defer mu.Unlock()
			if healthy {
				w.WriteHeader(http.StatusOK)
				return
			}
			w.WriteHeader(http.StatusBadGateway)
		})
	})
	p := NewProbe(NewClient(srv.URL, nil, apitest.Logger()), apitest.Logger())

	_, checked := p.Last()
	assert.False(t, checked)

	var seen []Mode
	p.Watch(func(m Mode) { seen = append(seen, m) })

	require.Equal(t, ModeAPI, p.Check(context.Background()))
	mu.Lock()
	healthy = false
	mu.Unlock()
	require.Equal(t, ModeStatic, p.Check(context.Background()))

	last, checked := p.Last()
	assert.True(t, checked)
	assert.Equal(t, ModeStatic, last)
	assert.Equal(t, []Mode{ModeAPI, ModeStatic}, seen)
}

func TestFixedProber(t *testing.T) {
	var p Prober = FixedProber(ModeAPI)
	assert.Equal(t, ModeAPI, p.Check(context.Background()))
	assert.Equal(t, "api", ModeAPI.String())
	assert.Equal(t, "static", ModeStatic.String())
}

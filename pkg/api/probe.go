package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
)

// Mode selects the data source for one top-level operation.
type Mode int

const (
	// ModeStatic reads bundled or static wordlist files.
	ModeStatic Mode = iota
	// ModeAPI reads from the remote service.
	ModeAPI
)

func (m Mode) String() string {
	if m == ModeAPI {
		return "api"
	}
	return "static"
}

// Prober decides the mode for the operation about to run.
type Prober interface {
	Check(ctx context.Context) Mode
}

// Probe checks /api/status. It keeps the last observed mode for watchers,
// but callers always use the Mode returned by Check.
type Probe struct {
	client *Client
	log    *slog.Logger

	mu       sync.Mutex
	last     Mode
	checked  bool
	watchers []func(Mode)
}

// NewProbe creates a Probe for the given client.
func NewProbe(client *Client, logger *slog.Logger) *Probe {
	return &Probe{
		client: client,
		log:    logger.With("component", "probe"),
	}
}

// Check issues one status request. Any 2xx answer selects ModeAPI; network
// errors, timeouts and other statuses select ModeStatic. It never fails.
func (p *Probe) Check(ctx context.Context) Mode {
	mode := ModeStatic
	if _, err := p.client.do(ctx, http.MethodGet, "/api/status", nil); err == nil {
		mode = ModeAPI
	} else {
		p.log.DebugContext(ctx, "status check failed", slog.String("error", err.Error()))
	}
	p.observe(ctx, mode)
	return mode
}

// Last returns the mode seen by the most recent Check and whether a check has run.
func (p *Probe) Last() (Mode, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, p.checked
}

// Watch registers fn to be called with the result of every Check.
func (p *Probe) Watch(fn func(Mode)) {
	p.mu.Lock()
	p.watchers = append(p.watchers, fn)
	p.mu.Unlock()
}

func (p *Probe) observe(ctx context.Context, mode Mode) {
	p.mu.Lock()
	changed := !p.checked || p.last != mode
	p.last = mode
	p.checked = true
	watchers := make([]func(Mode), len(p.watchers))
	copy(watchers, p.watchers)
	p.mu.Unlock()

	if changed {
		p.log.InfoContext(ctx, "data source mode changed", slog.String("mode", mode.String()))
	}
	for _, fn := range watchers {
		fn(mode)
	}
}

// FixedProber always returns the same mode. Useful when the caller already knows
// the service is down, and in tests.
type FixedProber Mode

func (f FixedProber) Check(context.Context) Mode { return Mode(f) }

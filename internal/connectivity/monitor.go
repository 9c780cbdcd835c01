// Package connectivity tracks whether the inference server is reachable.
// The result is advisory: chat requests are attempted regardless.
package connectivity

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultInterval is how often the server is probed after the startup check.
	DefaultInterval = 30 * time.Second
	// DefaultTimeout bounds a single probe.
	DefaultTimeout = 5 * time.Second
)

// Prober checks that the inference server answers.
type Prober interface {
	Ping(ctx context.Context) error
}

// Status is a snapshot of the last probe.
type Status struct {
	Connected bool      `json:"connected"`
	CheckedAt time.Time `json:"checked_at"`
	LastError string    `json:"last_error,omitempty"`
}

// Monitor probes the inference server once at startup and then periodically.
type Monitor struct {
	prober   Prober
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.RWMutex
	status Status
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval sets the probe interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithTimeout sets the per-probe timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithLogger sets the logger used for state transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMonitor creates a monitor. It reports disconnected until the first probe completes.
func NewMonitor(prober Prober, opts ...Option) *Monitor {
	m := &Monitor{
		prober:   prober,
		interval: DefaultInterval,
		timeout:  DefaultTimeout,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run checks immediately and then on every interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check probes once, records the result and reports whether the server answered.
func (m *Monitor) Check(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.prober.Ping(probeCtx)

	next := Status{Connected: err == nil, CheckedAt: m.now()}
	if err != nil {
		next.LastError = err.Error()
	}

	m.mu.Lock()
	prev := m.status
	m.status = next
	m.mu.Unlock()

	switch {
	case next.Connected && !prev.Connected:
		m.logger.InfoContext(ctx, "inference server connected")
	case !next.Connected && (prev.Connected || prev.CheckedAt.IsZero()):
		m.logger.WarnContext(ctx, "inference server unreachable", "error", err)
	}

	return next.Connected
}

// Status returns the last recorded probe result.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

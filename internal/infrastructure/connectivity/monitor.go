// Package connectivity tracks whether the backend is reachable so that
// sign-in can be refused up front instead of failing mid-request.
package connectivity

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/dentedu/web-gateway/internal/api/metrics"
)

const (
	defaultInterval = 10 * time.Second
	probeTimeout    = 3 * time.Second
)

// Monitor polls a health URL and publishes the result as an online flag.
// It starts online so that the first request is not refused before the first
// probe completes.
type Monitor struct {
	url      string
	interval time.Duration
	client   *http.Client
	online   atomic.Bool
	log      zerolog.Logger
}

// NewMonitor creates a monitor probing url every interval.
func NewMonitor(url string, interval time.Duration, log zerolog.Logger) *Monitor {
	if interval <= 0 {
		interval = defaultInterval
	}
	m := &Monitor{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: probeTimeout},
		log:      log,
	}
	m.set(true)
	return m
}

// Online reports the last observed state. It never blocks.
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// Set overrides the observed state.
func (m *Monitor) Set(online bool) {
	m.set(online)
}

// Start probes immediately and then every interval until ctx is cancelled.
func (m *Monitor) Start(ctx context.Context) {
	go func() {
		m.Probe(ctx)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Probe(ctx)
			}
		}
	}()
}

// Probe performs one reachability check. Any HTTP answer counts as online;
// only transport failures count as offline.
func (m *Monitor) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	online := false
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.url, nil)
	if err == nil {
		resp, doErr := m.client.Do(req)
		if doErr == nil {
			resp.Body.Close()
			online = true
		} else {
			err = doErr
		}
	}

	if prev := m.online.Load(); prev != online {
		if online {
			m.log.Info().Str("url", m.url).Msg("backend reachable again")
		} else {
			m.log.Warn().Err(err).Str("url", m.url).Msg("backend unreachable")
		}
	}
	m.set(online)
	return online
}

func (m *Monitor) set(online bool) {
	m.online.Store(online)
	v := 0.0
	if online {
		v = 1
	}
	metrics.BackendOnline.Set(v)
}

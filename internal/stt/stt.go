// Package stt orchestrates multiple speech-to-text backends, trying them in
// descending order of configured reliability.
package stt

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/hamgoftar/voice-gateway/internal/engine"
	"github.com/hamgoftar/voice-gateway/internal/metrics"
	"github.com/hamgoftar/voice-gateway/internal/worker"
)

// FallbackText is the canned "could not understand" transcription used when
// every engine fails or returns empty text.
const FallbackText = "متاسفانه نتوانستم صدای شما را تشخیص دهم"

// FallbackEngine is the engine name reported on the terminal fallback result.
const FallbackEngine = "fallback"

// Transcription is one backend's output for an utterance.
type Transcription struct {
	Text       string
	Confidence float64
}

// Transcriber is one concrete STT backend.
type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, audio []byte) (Transcription, error)
}

// Result is the partial voice result produced by engine selection.
type Result struct {
	Engine      string
	Text        string
	Confidence  float64
	ProcessTime float64
}

// Config tunes the multi-engine scan. Thresholds default to the canonical
// contract values when zero.
type Config struct {
	// MinAudioBytes rejects payloads too small to hold speech before any
	// engine is invoked.
	MinAudioBytes int
	// FastPathReliability and FastPathWindow define the early-exit policy:
	// when an engine scoring above the reliability bound answers within the
	// window, lower-priority engines are not invoked.
	FastPathReliability float64
	FastPathWindow      time.Duration
	// AttemptTimeout time-boxes each individual engine invocation.
	AttemptTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.MinAudioBytes <= 0 {
		c.MinAudioBytes = 100
	}
	if c.FastPathReliability <= 0 {
		c.FastPathReliability = 0.9
	}
	if c.FastPathWindow <= 0 {
		c.FastPathWindow = 2 * time.Second
	}
	if c.AttemptTimeout <= 0 {
		c.AttemptTimeout = 15 * time.Second
	}
	return c
}

// MultiEngine tries registered backends in descending reliability order and
// returns the first fast-path acceptable transcription, or the best of the
// accepted ones. It never returns an error: the terminal fallback result has
// confidence 0 and the canned text.
type MultiEngine struct {
	cfg      Config
	registry *engine.Registry
	backends map[string]Transcriber
	pool     *worker.Pool
}

// NewMultiEngine creates the orchestrator. The registry supplies the static
// reliability ordering; the pool bounds concurrent inference.
func NewMultiEngine(cfg Config, registry *engine.Registry, backends []Transcriber, pool *worker.Pool) *MultiEngine {
	byName := make(map[string]Transcriber, len(backends))
	for _, b := range backends {
		byName[b.Name()] = b
	}
	return &MultiEngine{
		cfg:      cfg.withDefaults(),
		registry: registry,
		backends: byName,
		pool:     pool,
	}
}

// Ready reports whether at least one backend is registered.
func (m *MultiEngine) Ready() bool {
	return len(m.backends) > 0
}

// Engines returns the registered backend names in attempt order.
func (m *MultiEngine) Engines() []string {
	names := make([]string, 0, len(m.backends))
	for _, sc := range m.registry.Ranked() {
		if _, ok := m.backends[sc.Name]; ok {
			names = append(names, sc.Name)
		}
	}
	return names
}

// Transcribe runs the engine scan for one utterance. Engine-specific
// failures are treated as a skip, never as a pipeline failure.
func (m *MultiEngine) Transcribe(ctx context.Context, audio []byte) Result {
	if len(audio) < m.cfg.MinAudioBytes {
		slog.Info("audio below minimum size", "bytes", len(audio), "min", m.cfg.MinAudioBytes)
		return m.fallback()
	}

	var best Result
	haveBest := false

	for _, sc := range m.registry.Ranked() {
		backend, ok := m.backends[sc.Name]
		if !ok {
			continue
		}

		start := time.Now()
		tr, err := m.attempt(ctx, backend, audio)
		elapsed := time.Since(start)

		if err != nil {
			metrics.EngineAttempts.WithLabelValues("stt", sc.Name, "error").Inc()
			slog.Warn("stt engine failed", "engine", sc.Name, "error", err)
			continue
		}
		if strings.TrimSpace(tr.Text) == "" {
			metrics.EngineAttempts.WithLabelValues("stt", sc.Name, "empty").Inc()
			continue
		}

		metrics.EngineAttempts.WithLabelValues("stt", sc.Name, "ok").Inc()
		metrics.StageDuration.WithLabelValues("stt").Observe(elapsed.Seconds())

		candidate := Result{
			Engine:      sc.Name,
			Text:        strings.TrimSpace(tr.Text),
			Confidence:  tr.Confidence,
			ProcessTime: elapsed.Seconds(),
		}

		// A trusted engine that answered quickly wins outright; don't pay
		// for lower-priority engines.
		if sc.Reliability > m.cfg.FastPathReliability && elapsed < m.cfg.FastPathWindow {
			return candidate
		}

		if !haveBest || candidate.Confidence > best.Confidence {
			best = candidate
			haveBest = true
		}
	}

	if haveBest {
		return best
	}
	return m.fallback()
}

func (m *MultiEngine) attempt(ctx context.Context, backend Transcriber, audio []byte) (Transcription, error) {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.AttemptTimeout)
	defer cancel()

	if m.pool == nil {
		return backend.Transcribe(ctx, audio)
	}

	var tr Transcription
	err := m.pool.Do(ctx, func() error {
		var err error
		tr, err = backend.Transcribe(ctx, audio)
		return err
	})
	return tr, err
}

func (m *MultiEngine) fallback() Result {
	return Result{
		Engine:      FallbackEngine,
		Text:        FallbackText,
		Confidence:  0,
		ProcessTime: 0,
	}
}

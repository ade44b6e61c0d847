// Package tts orchestrates text-to-speech backends in a fixed preference
// order, with a silent waveform as the unconditional last resort.
package tts

import (
	"context"
	"log/slog"
	"time"

	"github.com/hamgoftar/voice-gateway/internal/audio"
	"github.com/hamgoftar/voice-gateway/internal/emotion"
	"github.com/hamgoftar/voice-gateway/internal/metrics"
)

// Synthesizer is one concrete TTS backend. The voice argument selects a
// backend-specific voice or style variant.
type Synthesizer interface {
	Name() string
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// Config tunes voice selection and the silence fallback.
type Config struct {
	// Voices maps an emotion tag to a voice identifier. Unknown emotions
	// fall back to DefaultVoice.
	Voices       map[emotion.Label]string
	DefaultVoice string
	// SilenceDuration and SampleRate shape the last-resort waveform.
	SilenceDuration time.Duration
	SampleRate      int
	// AttemptTimeout time-boxes each backend invocation.
	AttemptTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.SilenceDuration <= 0 {
		c.SilenceDuration = 2 * time.Second
	}
	if c.SampleRate <= 0 {
		c.SampleRate = audio.DefaultSampleRate
	}
	if c.AttemptTimeout <= 0 {
		c.AttemptTimeout = 20 * time.Second
	}
	return c
}

// MultiEngine tries backends in the order given at construction. It always
// returns playable audio and never raises outward.
type MultiEngine struct {
	cfg   Config
	order []Synthesizer
}

// NewMultiEngine creates the orchestrator with a fixed, configuration-driven
// preference order.
func NewMultiEngine(cfg Config, order []Synthesizer) *MultiEngine {
	return &MultiEngine{cfg: cfg.withDefaults(), order: order}
}

// Engines returns the backend names in preference order.
func (m *MultiEngine) Engines() []string {
	names := make([]string, 0, len(m.order))
	for _, s := range m.order {
		names = append(names, s.Name())
	}
	return names
}

// Synthesize produces audio for text, styled by the emotion tag. On backend
// failure it falls through to the next backend; when none succeed it returns
// a fixed-duration silent WAV so the response contract is never violated.
func (m *MultiEngine) Synthesize(ctx context.Context, text string, emo emotion.Label) []byte {
	voice := m.voiceFor(emo)

	for _, backend := range m.order {
		start := time.Now()
		data, err := m.attempt(ctx, backend, text, voice)
		if err != nil {
			metrics.EngineAttempts.WithLabelValues("tts", backend.Name(), "error").Inc()
			slog.Warn("tts engine failed", "engine", backend.Name(), "error", err)
			continue
		}
		if len(data) == 0 {
			metrics.EngineAttempts.WithLabelValues("tts", backend.Name(), "empty").Inc()
			continue
		}
		metrics.EngineAttempts.WithLabelValues("tts", backend.Name(), "ok").Inc()
		metrics.StageDuration.WithLabelValues("tts").Observe(time.Since(start).Seconds())
		return data
	}

	slog.Warn("all tts engines failed, emitting silence", "text_len", len(text))
	return audio.Silence(m.cfg.SilenceDuration, m.cfg.SampleRate)
}

func (m *MultiEngine) attempt(ctx context.Context, backend Synthesizer, text, voice string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.AttemptTimeout)
	defer cancel()
	return backend.Synthesize(ctx, text, voice)
}

func (m *MultiEngine) voiceFor(emo emotion.Label) string {
	if v, ok := m.cfg.Voices[emo]; ok {
		return v
	}
	return m.cfg.DefaultVoice
}

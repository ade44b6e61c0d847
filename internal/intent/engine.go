package intent

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/hamgoftar/voice-gateway/internal/emotion"
	"github.com/hamgoftar/voice-gateway/internal/metrics"
)

// DefaultSystemPrompt instructs the generative fallback model.
const DefaultSystemPrompt = "تو یک دستیار صوتی فارسی‌زبان هستی. کوتاه، دوستانه و محاوره‌ای پاسخ بده."

// Generator is an external model used when no template applies. It must
// honor the context deadline.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userText string, history []string) (string, error)
}

// Config tunes the response cascade.
type Config struct {
	// AcceptThreshold is the minimum classification confidence for the
	// template path.
	AcceptThreshold float64
	// GenerateTimeout bounds the generative fallback call.
	GenerateTimeout time.Duration
	// MaxResponseRunes rejects degenerately long generative output.
	MaxResponseRunes int
	// SystemPrompt overrides DefaultSystemPrompt when set.
	SystemPrompt string
	// HistoryTurns is how many recent utterances feed the generative prompt.
	HistoryTurns int
}

func (c Config) withDefaults() Config {
	if c.AcceptThreshold <= 0 {
		c.AcceptThreshold = 0.6
	}
	if c.GenerateTimeout <= 0 {
		c.GenerateTimeout = 10 * time.Second
	}
	if c.MaxResponseRunes <= 0 {
		c.MaxResponseRunes = 500
	}
	if c.SystemPrompt == "" {
		c.SystemPrompt = DefaultSystemPrompt
	}
	if c.HistoryTurns <= 0 {
		c.HistoryTurns = 3
	}
	return c
}

// Engine classifies intents and generates replies. The random template
// selection is confined here and seedable via WithSelector.
type Engine struct {
	cfg Config
	gen Generator

	mu   sync.Mutex
	pick func(n int) int
}

// NewEngine creates an intent engine. gen may be nil, in which case the
// cascade goes straight from templates to the generic set.
func NewEngine(cfg Config, gen Generator) *Engine {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Engine{
		cfg:  cfg.withDefaults(),
		gen:  gen,
		pick: rng.Intn,
	}
}

// WithSelector replaces the template selector. Tests inject a deterministic
// one.
func (e *Engine) WithSelector(pick func(n int) int) *Engine {
	e.pick = pick
	return e
}

// Ready reports whether the engine can serve. The rule-based path has no
// external dependencies, so it always can.
func (e *Engine) Ready() bool { return true }

// GenerateResponse produces the reply text for a classified utterance. The
// cascade is template → generative → generic template, so the caller is
// never left without a response string.
func (e *Engine) GenerateResponse(ctx context.Context, res Result, userText string, emo emotion.Label, history []string) string {
	metrics.IntentDetected.WithLabelValues(string(res.Intent)).Inc()

	if res.Confidence > e.cfg.AcceptThreshold {
		if set, ok := templates[res.Intent]; ok {
			reply := set[e.choose(len(set))]
			return applyEmotionVariant(res.Intent, reply, emo)
		}
	}

	if reply, ok := e.generate(ctx, userText, history); ok {
		return reply
	}

	generic := templates[GeneralConversation]
	if len(generic) == 0 {
		return fallbackReply
	}
	return generic[e.choose(len(generic))]
}

// generate runs the generative fallback with a hard timeout and a
// degenerate-output guard.
func (e *Engine) generate(ctx context.Context, userText string, history []string) (string, bool) {
	if e.gen == nil || strings.TrimSpace(userText) == "" {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.GenerateTimeout)
	defer cancel()

	if n := len(history); n > e.cfg.HistoryTurns {
		history = history[n-e.cfg.HistoryTurns:]
	}

	start := time.Now()
	reply, err := e.gen.Generate(ctx, e.cfg.SystemPrompt, userText, history)
	if err != nil {
		metrics.Errors.WithLabelValues("intent", "generate").Inc()
		slog.Warn("generative fallback failed", "error", err)
		return "", false
	}
	metrics.StageDuration.WithLabelValues("generate").Observe(time.Since(start).Seconds())

	reply = strings.TrimSpace(reply)
	if reply == "" || len([]rune(reply)) > e.cfg.MaxResponseRunes {
		slog.Warn("generative fallback degenerate output", "runes", len([]rune(reply)))
		return "", false
	}
	return reply, true
}

func (e *Engine) choose(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pick(n)
}

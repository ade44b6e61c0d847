package stt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hamgoftar/voice-gateway/internal/engine"
)

type fakeEngine struct {
	name  string
	text  string
	conf  float64
	err   error
	delay time.Duration
	calls int
}

func (f *fakeEngine) Name() string { return f.name }

func (f *fakeEngine) Transcribe(ctx context.Context, audio []byte) (Transcription, error) {
	f.calls++
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return Transcription{}, f.err
	}
	return Transcription{Text: f.text, Confidence: f.conf}, nil
}

func payload() []byte { return make([]byte, 2000) }

func TestTranscribeFastPathSkipsLowerEngines(t *testing.T) {
	trusted := &fakeEngine{name: "whisper", text: "سلام", conf: 0.95}
	backup := &fakeEngine{name: "backup", text: "other", conf: 0.5}
	reg := engine.NewRegistry(map[string]float64{"whisper": 0.95, "backup": 0.6})

	m := NewMultiEngine(Config{}, reg, []Transcriber{trusted, backup}, nil)
	res := m.Transcribe(context.Background(), payload())

	if res.Engine != "whisper" || res.Text != "سلام" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if backup.calls != 0 {
		t.Fatalf("lower-priority engine invoked %d times on fast path", backup.calls)
	}
}

func TestTranscribeFallsThroughOnFailure(t *testing.T) {
	broken := &fakeEngine{name: "primary", err: errors.New("decode error")}
	working := &fakeEngine{name: "secondary", text: "ممنون از شما", conf: 0.7}
	reg := engine.NewRegistry(map[string]float64{"primary": 0.95, "secondary": 0.6})

	m := NewMultiEngine(Config{}, reg, []Transcriber{broken, working}, nil)
	res := m.Transcribe(context.Background(), payload())

	if res.Engine != "secondary" {
		t.Fatalf("expected fallthrough to secondary, got %+v", res)
	}
	if broken.calls != 1 {
		t.Fatalf("primary should be attempted once, got %d", broken.calls)
	}
}

func TestTranscribeEmptyTextTreatedAsSkip(t *testing.T) {
	silent := &fakeEngine{name: "silent", text: "   ", conf: 0.99}
	working := &fakeEngine{name: "second", text: "متن", conf: 0.6}
	reg := engine.NewRegistry(map[string]float64{"silent": 0.95, "second": 0.5})

	m := NewMultiEngine(Config{}, reg, []Transcriber{silent, working}, nil)
	if res := m.Transcribe(context.Background(), payload()); res.Engine != "second" {
		t.Fatalf("expected second engine, got %+v", res)
	}
}

func TestTranscribeAllFailYieldsTerminalFallback(t *testing.T) {
	a := &fakeEngine{name: "a", err: errors.New("timeout")}
	b := &fakeEngine{name: "b", text: ""}
	reg := engine.NewRegistry(map[string]float64{"a": 0.9, "b": 0.8})

	m := NewMultiEngine(Config{}, reg, []Transcriber{a, b}, nil)
	res := m.Transcribe(context.Background(), payload())

	if res.Engine != FallbackEngine || res.Confidence != 0 {
		t.Fatalf("expected terminal fallback, got %+v", res)
	}
	if res.Text != FallbackText {
		t.Fatalf("fallback must carry the canned text, got %q", res.Text)
	}
}

func TestTranscribeRejectsTinyPayloadBeforeEngines(t *testing.T) {
	e := &fakeEngine{name: "whisper", text: "سلام", conf: 0.9}
	reg := engine.NewRegistry(map[string]float64{"whisper": 0.9})

	m := NewMultiEngine(Config{MinAudioBytes: 100}, reg, []Transcriber{e}, nil)
	res := m.Transcribe(context.Background(), make([]byte, 10))

	if res.Engine != FallbackEngine {
		t.Fatalf("expected fallback for tiny payload, got %+v", res)
	}
	if e.calls != 0 {
		t.Fatalf("engine invoked %d times for sub-minimum payload", e.calls)
	}
}

func TestTranscribeBestOfSeveralWhenNoFastPath(t *testing.T) {
	// Both below the fast-path reliability bound; the higher-confidence
	// transcription wins even though it came from the later engine.
	low := &fakeEngine{name: "low", text: "aaa", conf: 0.4}
	high := &fakeEngine{name: "high", text: "bbb", conf: 0.8}
	reg := engine.NewRegistry(map[string]float64{"low": 0.7, "high": 0.6})

	m := NewMultiEngine(Config{}, reg, []Transcriber{low, high}, nil)
	res := m.Transcribe(context.Background(), payload())

	if res.Engine != "high" || res.Confidence != 0.8 {
		t.Fatalf("expected best-of-several to pick high, got %+v", res)
	}
	if low.calls != 1 || high.calls != 1 {
		t.Fatalf("both engines should be attempted, got %d/%d", low.calls, high.calls)
	}
}

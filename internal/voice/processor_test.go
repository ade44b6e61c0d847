package voice

import (
	"context"
	"testing"

	"github.com/hamgoftar/voice-gateway/internal/emotion"
	"github.com/hamgoftar/voice-gateway/internal/engine"
	"github.com/hamgoftar/voice-gateway/internal/stt"
	"github.com/hamgoftar/voice-gateway/internal/tts"
)

type stubTranscriber struct {
	name string
	text string
	conf float64
}

func (s *stubTranscriber) Name() string { return s.name }

func (s *stubTranscriber) Transcribe(ctx context.Context, audio []byte) (stt.Transcription, error) {
	return stt.Transcription{Text: s.text, Confidence: s.conf}, nil
}

type stubSynth struct{ out []byte }

func (s *stubSynth) Name() string { return "stub" }

func (s *stubSynth) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	return s.out, nil
}

func newProcessor(t *testing.T, tr stt.Transcriber) *Processor {
	t.Helper()
	reg := engine.NewRegistry(map[string]float64{tr.Name(): 0.95})
	sttEngine := stt.NewMultiEngine(stt.Config{}, reg, []stt.Transcriber{tr}, nil)
	ttsEngine := tts.NewMultiEngine(tts.Config{}, []tts.Synthesizer{&stubSynth{out: []byte("audio")}})
	return NewProcessor(sttEngine, ttsEngine, 0.1)
}

func TestProcessVoiceInputSuccess(t *testing.T) {
	p := newProcessor(t, &stubTranscriber{name: "whisper", text: "ممنون از شما", conf: 0.9})

	res := p.ProcessVoiceInput(context.Background(), make([]byte, 2000))

	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Text != "ممنون از شما" || res.EngineUsed != "whisper" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Emotion != emotion.Happy {
		t.Fatalf("expected happy emotion for thankful text, got %s", res.Emotion)
	}
	if res.Confidence != 0.9 {
		t.Fatalf("confidence not propagated: %v", res.Confidence)
	}
	if res.ProcessTime < 0 {
		t.Fatalf("negative process time: %v", res.ProcessTime)
	}
}

func TestProcessVoiceInputLowConfidenceFails(t *testing.T) {
	p := newProcessor(t, &stubTranscriber{name: "weak", text: "متن", conf: 0.05})

	res := p.ProcessVoiceInput(context.Background(), make([]byte, 2000))

	if res.Success {
		t.Fatal("expected failure below confidence floor")
	}
	if res.Message == "" {
		t.Fatal("failed result must carry a message")
	}
	if len(res.Audio) == 0 {
		t.Fatal("failed result must carry fallback audio")
	}
}

func TestProcessVoiceInputTinyAudioFails(t *testing.T) {
	p := newProcessor(t, &stubTranscriber{name: "whisper", text: "سلام", conf: 0.9})

	res := p.ProcessVoiceInput(context.Background(), []byte{1, 2, 3})

	if res.Success {
		t.Fatal("expected failure for sub-minimum audio payload")
	}
	if len(res.Audio) == 0 && res.Message == "" {
		t.Fatal("failure must carry audio or message")
	}
}

type panickingTranscriber struct{}

func (p *panickingTranscriber) Name() string { return "boom" }

func (p *panickingTranscriber) Transcribe(ctx context.Context, audio []byte) (stt.Transcription, error) {
	panic("engine blew up")
}

func TestProcessVoiceInputContainsPanic(t *testing.T) {
	p := newProcessor(t, &panickingTranscriber{})

	res := p.ProcessVoiceInput(context.Background(), make([]byte, 2000))

	if res.Success {
		t.Fatal("panic must convert to a failed result")
	}
	if len(res.Audio) == 0 {
		t.Fatal("panic fallback must carry apology audio")
	}
}

func TestGenerateVoiceResponseAlwaysReturnsBytes(t *testing.T) {
	p := newProcessor(t, &stubTranscriber{name: "whisper", text: "سلام", conf: 0.9})
	if audio := p.GenerateVoiceResponse(context.Background(), "سلام", emotion.Neutral); len(audio) == 0 {
		t.Fatal("expected non-empty audio")
	}
}

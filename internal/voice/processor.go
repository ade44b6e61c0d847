// Package voice sequences STT, emotion analysis, and TTS for one utterance.
package voice

import (
	"context"
	"log/slog"
	"time"

	"github.com/hamgoftar/voice-gateway/internal/emotion"
	"github.com/hamgoftar/voice-gateway/internal/metrics"
	"github.com/hamgoftar/voice-gateway/internal/stt"
	"github.com/hamgoftar/voice-gateway/internal/tts"
)

// Persian fallback utterances for failed voice input.
const (
	// FailureMessage is reported to the client when speech recognition fails.
	FailureMessage = "نتوانستم صدای شما را تشخیص دهم"
	// ApologyUtterance is synthesized alongside the failure message.
	ApologyUtterance = "متاسفانه نتوانستم صدای شما را درست تشخیص دهم. لطفاً دوباره تلاش کنید."
	// ErrorUtterance is synthesized when the pipeline itself fails.
	ErrorUtterance = "متاسفانه خطایی رخ داد. لطفاً دوباره تلاش کنید."
)

// Result is the immutable outcome of one voice utterance. On failure it
// always carries a non-empty Message and fallback Audio so the client never
// receives a silent failure.
type Result struct {
	Success     bool
	Text        string
	Emotion     emotion.Label
	Confidence  float64
	EngineUsed  string
	ProcessTime float64

	Message string
	Audio   []byte
}

// Processor is the state-free orchestrator of the voice pipeline.
type Processor struct {
	stt             *stt.MultiEngine
	tts             *tts.MultiEngine
	confidenceFloor float64
}

// NewProcessor creates a processor. confidenceFloor is the minimum STT
// confidence accepted into the pipeline; below it the utterance is rejected
// with an apology.
func NewProcessor(sttEngine *stt.MultiEngine, ttsEngine *tts.MultiEngine, confidenceFloor float64) *Processor {
	if confidenceFloor <= 0 {
		confidenceFloor = 0.1
	}
	return &Processor{stt: sttEngine, tts: ttsEngine, confidenceFloor: confidenceFloor}
}

// Ready reports whether the recognition side can serve. Synthesis is always
// ready because of the silence last resort.
func (p *Processor) Ready() bool {
	return p.stt.Ready()
}

// ProcessVoiceInput runs STT → confidence gate → emotion for one utterance.
// It never propagates an error or panic to the session layer: any unexpected
// failure is converted into a failed Result carrying synthesized apology
// audio.
func (p *Processor) ProcessVoiceInput(ctx context.Context, audioData []byte) (result Result) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			metrics.Errors.WithLabelValues("voice", "panic").Inc()
			slog.Error("voice pipeline panic", "panic", r)
			result = p.failure(ctx, ErrorUtterance)
		}
	}()

	sttResult := p.stt.Transcribe(ctx, audioData)

	if sttResult.Text == "" || sttResult.Confidence < p.confidenceFloor {
		slog.Info("voice input rejected",
			"engine", sttResult.Engine,
			"confidence", sttResult.Confidence,
		)
		return p.failure(ctx, ApologyUtterance)
	}

	emo := emotion.Classify(sttResult.Text)
	metrics.EmotionDetected.WithLabelValues(string(emo)).Inc()

	processTime := time.Since(start).Seconds()
	slog.Info("voice input processed",
		"engine", sttResult.Engine,
		"emotion", emo,
		"confidence", sttResult.Confidence,
		"process_time", processTime,
	)

	return Result{
		Success:     true,
		Text:        sttResult.Text,
		Emotion:     emo,
		Confidence:  sttResult.Confidence,
		EngineUsed:  sttResult.Engine,
		ProcessTime: processTime,
	}
}

// GenerateVoiceResponse synthesizes reply audio styled by the emotion tag.
// Always returns playable bytes.
func (p *Processor) GenerateVoiceResponse(ctx context.Context, text string, emo emotion.Label) []byte {
	return p.tts.Synthesize(ctx, text, emo)
}

func (p *Processor) failure(ctx context.Context, utterance string) Result {
	return Result{
		Success: false,
		Emotion: emotion.Sad,
		Message: FailureMessage,
		Audio:   p.tts.Synthesize(ctx, utterance, emotion.Sad),
	}
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hamgoftar/voice-gateway/internal/emotion"
	"github.com/hamgoftar/voice-gateway/internal/engine"
	"github.com/hamgoftar/voice-gateway/internal/httpx"
	"github.com/hamgoftar/voice-gateway/internal/intent"
	"github.com/hamgoftar/voice-gateway/internal/ratelimit"
	"github.com/hamgoftar/voice-gateway/internal/session"
	"github.com/hamgoftar/voice-gateway/internal/stt"
	"github.com/hamgoftar/voice-gateway/internal/tts"
	"github.com/hamgoftar/voice-gateway/internal/validate"
	"github.com/hamgoftar/voice-gateway/internal/voice"
	"github.com/hamgoftar/voice-gateway/internal/worker"
	"github.com/hamgoftar/voice-gateway/internal/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file", "error", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg := loadConfig()

	// STT backends in declared reliability, ordered at runtime by the registry.
	scores := map[string]float64{}
	var sttBackends []stt.Transcriber
	if cfg.whisperURL != "" {
		scores["whisper"] = cfg.whisperScore
		sttBackends = append(sttBackends, stt.NewWhisperClient("whisper", cfg.whisperURL, cfg.whisperLanguage, cfg.sttPoolSize))
	}
	if cfg.openaiAPIKey != "" {
		scores["openai"] = cfg.openaiSTTScore
		sttBackends = append(sttBackends, stt.NewOpenAIClient("openai", cfg.openaiAPIKey, cfg.openaiBaseURL, cfg.openaiSTTModel, cfg.whisperLanguage))
	}
	registry := engine.NewRegistry(scores)
	pool := worker.NewPool(cfg.workerPoolSize)

	sttEngine := stt.NewMultiEngine(stt.Config{
		MinAudioBytes:       cfg.minAudioBytes,
		FastPathReliability: cfg.fastPathReliability,
		FastPathWindow:      cfg.fastPathWindow,
	}, registry, sttBackends, pool)

	ttsHTTP := httpx.NewPooledClient(cfg.ttsPoolSize, 30*time.Second)
	var ttsBackends []tts.Synthesizer
	if cfg.piperURL != "" {
		ttsBackends = append(ttsBackends, tts.NewPiperSynthesizer("piper", cfg.piperURL, ttsHTTP))
	}
	if cfg.speechAPIURL != "" {
		ttsBackends = append(ttsBackends, tts.NewSpeechAPISynthesizer("speech-api", cfg.speechAPIURL, cfg.speechAPIModel, cfg.openaiAPIKey, ttsHTTP))
	}
	voices := map[emotion.Label]string{}
	if cfg.happyVoice != "" {
		voices[emotion.Happy] = cfg.happyVoice
		voices[emotion.Excited] = cfg.happyVoice
	}
	if cfg.sadVoice != "" {
		voices[emotion.Sad] = cfg.sadVoice
	}
	ttsEngine := tts.NewMultiEngine(tts.Config{
		Voices:       voices,
		DefaultVoice: cfg.defaultVoice,
	}, ttsBackends)

	var gen intent.Generator
	switch {
	case cfg.openaiAPIKey != "":
		gen = intent.NewOpenAIGenerator(cfg.openaiAPIKey, cfg.openaiBaseURL, cfg.openaiChatModel)
	case cfg.ollamaURL != "":
		gen = intent.NewOllamaGenerator(cfg.ollamaURL, cfg.ollamaModel, cfg.llmMaxTokens, cfg.llmPoolSize)
	}
	intentEngine := intent.NewEngine(intent.Config{
		AcceptThreshold: cfg.intentThreshold,
		SystemPrompt:    cfg.systemPrompt,
	}, gen)

	processor := voice.NewProcessor(sttEngine, ttsEngine, cfg.confidenceFloor)
	sessions := session.NewManager(cfg.maxConnections)
	limiter := ratelimit.New(cfg.maxRequestsPerMin, time.Minute)

	wsHandler := ws.NewHandler(ws.HandlerConfig{
		Sessions:    sessions,
		Limiter:     limiter,
		Voice:       processor,
		Intent:      intentEngine,
		AudioRules:  validate.NewAudioValidator(cfg.maxAudioSizeMB, cfg.audioFormats),
		TextRules:   validate.NewTextValidator(cfg.minTextLength, cfg.maxTextLength),
		IdleTimeout: cfg.idleTimeout,
	})

	router := newRouter(deps{
		sessions:  sessions,
		sttEngine: sttEngine,
		ttsEngine: ttsEngine,
		intent:    intentEngine,
		voice:     processor,
		wsHandler: wsHandler,
	})

	addr := ":" + cfg.port
	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	slog.Info("gateway starting",
		"addr", addr,
		"stt_engines", sttEngine.Engines(),
		"tts_engines", ttsEngine.Engines(),
		"max_connections", cfg.maxConnections,
	)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("gateway stopped")
}

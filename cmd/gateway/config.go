package main

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type config struct {
	port string

	// Speech recognition.
	whisperURL          string
	whisperScore        float64
	whisperLanguage     string
	openaiAPIKey        string
	openaiBaseURL       string
	openaiSTTModel      string
	openaiSTTScore      float64
	sttPoolSize         int
	minAudioBytes       int
	fastPathReliability float64
	fastPathWindow      time.Duration
	confidenceFloor     float64

	// Speech synthesis.
	piperURL       string
	speechAPIURL   string
	speechAPIModel string
	ttsPoolSize    int
	defaultVoice   string
	happyVoice     string
	sadVoice       string

	// Response generation.
	ollamaURL       string
	ollamaModel     string
	llmMaxTokens    int
	llmPoolSize     int
	openaiChatModel string
	intentThreshold float64
	systemPrompt    string

	// Session and admission control.
	maxConnections    int
	maxRequestsPerMin int
	idleTimeout       time.Duration
	workerPoolSize    int

	// Input validation.
	maxAudioSizeMB int
	audioFormats   []string
	minTextLength  int
	maxTextLength  int
}

func loadConfig() config {
	return config{
		port: envStr("GATEWAY_PORT", "8000"),

		whisperURL:          envStr("WHISPER_SERVER_URL", ""),
		whisperScore:        envFloat("WHISPER_RELIABILITY", 0.95),
		whisperLanguage:     envStr("WHISPER_LANGUAGE", "fa"),
		openaiAPIKey:        envStr("OPENAI_API_KEY", ""),
		openaiBaseURL:       envStr("OPENAI_BASE_URL", ""),
		openaiSTTModel:      envStr("OPENAI_STT_MODEL", "whisper-1"),
		openaiSTTScore:      envFloat("OPENAI_STT_RELIABILITY", 0.85),
		sttPoolSize:         envInt("STT_POOL_SIZE", 50),
		minAudioBytes:       envInt("MIN_AUDIO_BYTES", 100),
		fastPathReliability: envFloat("STT_FAST_PATH_RELIABILITY", 0.9),
		fastPathWindow:      envDuration("STT_FAST_PATH_WINDOW", 2*time.Second),
		confidenceFloor:     envFloat("STT_CONFIDENCE_FLOOR", 0.1),

		piperURL:       envStr("PIPER_URL", ""),
		speechAPIURL:   envStr("SPEECH_API_URL", ""),
		speechAPIModel: envStr("SPEECH_API_MODEL", "tts-1"),
		ttsPoolSize:    envInt("TTS_POOL_SIZE", 50),
		defaultVoice:   envStr("TTS_VOICE_DEFAULT", "fa_IR-amir-medium"),
		happyVoice:     envStr("TTS_VOICE_HAPPY", ""),
		sadVoice:       envStr("TTS_VOICE_SAD", ""),

		ollamaURL:       envStr("OLLAMA_URL", ""),
		ollamaModel:     envStr("OLLAMA_MODEL", "llama3.2:3b"),
		llmMaxTokens:    envInt("LLM_MAX_TOKENS", 150),
		llmPoolSize:     envInt("LLM_POOL_SIZE", 50),
		openaiChatModel: envStr("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
		intentThreshold: envFloat("INTENT_CONFIDENCE_THRESHOLD", 0.6),
		systemPrompt:    envStr("LLM_SYSTEM_PROMPT", ""),

		maxConnections:    envInt("MAX_WEBSOCKET_CONNECTIONS", 100),
		maxRequestsPerMin: envInt("MAX_REQUESTS_PER_MINUTE", 60),
		idleTimeout:       envDuration("SESSION_IDLE_TIMEOUT", 30*time.Second),
		workerPoolSize:    envInt("WORKER_POOL_SIZE", 4),

		maxAudioSizeMB: envInt("MAX_AUDIO_SIZE_MB", 10),
		audioFormats:   envList("SUPPORTED_AUDIO_FORMATS", []string{"wav", "webm", "ogg", "mp3"}),
		minTextLength:  envInt("MIN_TEXT_LENGTH", 1),
		maxTextLength:  envInt("MAX_TEXT_LENGTH", 1000),
	}
}

func envStr(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func envInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return d
}

func envList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

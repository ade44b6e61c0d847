package ws

import "time"

// Inbound frame types.
const (
	frameTypePing  = "ping"
	frameTypeAudio = "audio"
	frameTypeText  = "text"
)

// inboundFrame is a single client frame. Type selects the payload field.
// Format optionally names the audio container of Data.
type inboundFrame struct {
	Type   string `json:"type"`
	Data   string `json:"data,omitempty"`
	Format string `json:"format,omitempty"`
	Text   string `json:"text,omitempty"`
}

type pongFrame struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

// messageFrame is the multimodal response to an audio utterance.
type messageFrame struct {
	Type        string  `json:"type"`
	UserMessage string  `json:"user_message"`
	BotMessage  string  `json:"bot_message"`
	Audio       string  `json:"audio,omitempty"`
	Emotion     string  `json:"emotion"`
	Confidence  float64 `json:"confidence"`
	EngineUsed  string  `json:"engine_used"`
	ProcessTime float64 `json:"process_time"`
	Timestamp   string  `json:"timestamp"`
}

// textResponseFrame answers a text utterance. No synthesized audio.
type textResponseFrame struct {
	Type        string  `json:"type"`
	UserMessage string  `json:"user_message"`
	BotMessage  string  `json:"bot_message"`
	Emotion     string  `json:"emotion"`
	Intent      string  `json:"intent"`
	ProcessTime float64 `json:"process_time"`
	Timestamp   string  `json:"timestamp"`
}

// errorFrame reports a recoverable failure. Audio carries a synthesized
// apology when the failure happened inside the voice pipeline.
type errorFrame struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Audio     string `json:"audio,omitempty"`
	Timestamp string `json:"timestamp"`
}

type timeoutFrame struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func stamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

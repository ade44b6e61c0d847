// Package ws exposes the conversational pipeline over a WebSocket endpoint.
package ws

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hamgoftar/voice-gateway/internal/emotion"
	"github.com/hamgoftar/voice-gateway/internal/intent"
	"github.com/hamgoftar/voice-gateway/internal/metrics"
	"github.com/hamgoftar/voice-gateway/internal/ratelimit"
	"github.com/hamgoftar/voice-gateway/internal/session"
	"github.com/hamgoftar/voice-gateway/internal/validate"
	"github.com/hamgoftar/voice-gateway/internal/voice"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  16384,
	WriteBufferSize: 16384,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Persian client-facing error strings.
const (
	msgMalformedFrame = "فرمت پیام نامعتبر است"
	msgUnknownType    = "نوع پیام پشتیبانی نمی‌شود"
	msgIdleTimeout    = "اتصال به دلیل عدم فعالیت بسته شد"
	msgInternalError  = "خطای داخلی رخ داد"
	msgInvalidAudio   = "ورودی صوتی نامعتبر است"
	msgInvalidText    = "ورودی متنی نامعتبر است"
)

// HandlerConfig wires the shared pipeline components into the endpoint.
type HandlerConfig struct {
	Sessions    *session.Manager
	Limiter     *ratelimit.Limiter
	Voice       *voice.Processor
	Intent      *intent.Engine
	AudioRules  *validate.AudioValidator
	TextRules   *validate.TextValidator
	IdleTimeout time.Duration
}

// Handler runs one session per WebSocket connection. Frames are processed
// strictly in arrival order with at most one pipeline invocation in flight.
type Handler struct {
	cfg HandlerConfig
}

// NewHandler creates the WebSocket chat handler.
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 30 * time.Second
	}
	return &Handler{cfg: cfg}
}

// ServeHTTP applies admission control, upgrades the connection, and runs the
// session loop until the client disconnects or idles out.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	client := clientIP(r)

	if h.cfg.Limiter != nil && !h.cfg.Limiter.Allow(client) {
		metrics.RateLimited.Inc()
		slog.Warn("connection rate limited", "client", client)
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	if h.cfg.Sessions.AtCapacity() {
		metrics.CapacityRejected.Inc()
		slog.Warn("connection rejected at capacity", "client", client)
		http.Error(w, "at capacity", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sess, err := h.cfg.Sessions.Connect(client, conn)
	if err != nil {
		if errors.Is(err, session.ErrCapacity) {
			metrics.CapacityRejected.Inc()
		}
		writeFrame(conn, errorFrame{Type: "error", Message: msgInternalError, Timestamp: stamp()})
		return
	}
	defer h.cfg.Sessions.Disconnect(sess.ID)

	h.runSession(r.Context(), conn, sess)
}

func (h *Handler) runSession(ctx context.Context, conn *websocket.Conn, sess *session.Session) {
	slog.Info("chat session started", "session_id", sess.ID, "client", sess.Client)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(h.cfg.IdleTimeout)); err != nil {
			return
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				metrics.IdleTimeouts.Inc()
				slog.Info("session idle timeout", "session_id", sess.ID)
				writeFrame(conn, timeoutFrame{Type: "timeout", Message: msgIdleTimeout, Timestamp: stamp()})
			} else {
				slog.Info("connection closed", "session_id", sess.ID, "error", err)
			}
			return
		}

		sess.Touch(time.Now())

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			metrics.Errors.WithLabelValues("ws", "malformed_frame").Inc()
			writeFrame(conn, errorFrame{Type: "error", Message: msgMalformedFrame, Timestamp: stamp()})
			continue
		}

		metrics.FramesTotal.WithLabelValues(frame.Type).Inc()

		switch frame.Type {
		case frameTypePing:
			writeFrame(conn, pongFrame{Type: "pong", Timestamp: stamp()})
		case frameTypeAudio:
			h.handleAudio(ctx, conn, sess, frame.Data, frame.Format)
		case frameTypeText:
			h.handleText(ctx, conn, sess, frame.Text)
		default:
			writeFrame(conn, errorFrame{Type: "error", Message: msgUnknownType, Timestamp: stamp()})
		}
	}
}

// handleAudio runs the full voice pipeline for one utterance and replies with
// a multimodal message frame, or an error frame carrying apology audio.
func (h *Handler) handleAudio(ctx context.Context, conn *websocket.Conn, sess *session.Session, data, format string) {
	start := time.Now()

	audioData, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		metrics.Errors.WithLabelValues("ws", "bad_base64").Inc()
		writeFrame(conn, errorFrame{Type: "error", Message: msgMalformedFrame, Timestamp: stamp()})
		return
	}
	if err := h.cfg.AudioRules.ValidateAudioSize(audioData); err != nil {
		rejectInput(conn, sess, msgInvalidAudio, err)
		return
	}
	if format != "" {
		if err := h.cfg.AudioRules.ValidateAudioFormat(format); err != nil {
			rejectInput(conn, sess, msgInvalidAudio, err)
			return
		}
	}

	result := h.cfg.Voice.ProcessVoiceInput(ctx, audioData)
	if !result.Success {
		writeFrame(conn, errorFrame{
			Type:      "error",
			Message:   result.Message,
			Audio:     base64.StdEncoding.EncodeToString(result.Audio),
			Timestamp: stamp(),
		})
		return
	}

	intentResult := h.cfg.Intent.UnderstandIntent(result.Text)
	reply := h.cfg.Intent.GenerateResponse(ctx, intentResult, result.Text, result.Emotion, sess.History())
	sess.AppendUtterance(result.Text)

	replyAudio := h.cfg.Voice.GenerateVoiceResponse(ctx, reply, result.Emotion)

	elapsed := time.Since(start).Seconds()
	metrics.E2EDuration.Observe(elapsed)
	slog.Info("utterance answered",
		"session_id", sess.ID,
		"intent", intentResult.Intent,
		"emotion", result.Emotion,
		"engine", result.EngineUsed,
		"elapsed", elapsed,
	)

	writeFrame(conn, messageFrame{
		Type:        "message",
		UserMessage: result.Text,
		BotMessage:  reply,
		Audio:       base64.StdEncoding.EncodeToString(replyAudio),
		Emotion:     string(result.Emotion),
		Confidence:  result.Confidence,
		EngineUsed:  result.EngineUsed,
		ProcessTime: result.ProcessTime,
		Timestamp:   stamp(),
	})
}

// handleText answers a typed utterance without synthesis.
func (h *Handler) handleText(ctx context.Context, conn *websocket.Conn, sess *session.Session, text string) {
	start := time.Now()

	if err := h.cfg.TextRules.ValidateTextInput(text); err != nil {
		rejectInput(conn, sess, msgInvalidText, err)
		return
	}
	if err := h.cfg.TextRules.ValidateLanguageInput(text); err != nil {
		rejectInput(conn, sess, msgInvalidText, err)
		return
	}

	emo := emotion.Classify(text)
	metrics.EmotionDetected.WithLabelValues(string(emo)).Inc()

	intentResult := h.cfg.Intent.UnderstandIntent(text)
	reply := h.cfg.Intent.GenerateResponse(ctx, intentResult, text, emo, sess.History())
	sess.AppendUtterance(text)

	writeFrame(conn, textResponseFrame{
		Type:        "text_response",
		UserMessage: text,
		BotMessage:  reply,
		Emotion:     string(emo),
		Intent:      string(intentResult.Intent),
		ProcessTime: time.Since(start).Seconds(),
		Timestamp:   stamp(),
	})
}

// rejectInput answers a validation failure with a Persian client message and
// keeps the technical detail in the log.
func rejectInput(conn *websocket.Conn, sess *session.Session, message string, err error) {
	metrics.Errors.WithLabelValues("ws", "validation").Inc()
	slog.Info("input rejected", "session_id", sess.ID, "error", err)
	writeFrame(conn, errorFrame{Type: "error", Message: message, Timestamp: stamp()})
}

func writeFrame(conn *websocket.Conn, v any) {
	if err := conn.WriteJSON(v); err != nil {
		slog.Error("write frame", "error", err)
	}
}

// clientIP strips the port from RemoteAddr so rate limiting keys on the host.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

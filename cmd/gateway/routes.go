package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hamgoftar/voice-gateway/internal/intent"
	"github.com/hamgoftar/voice-gateway/internal/session"
	"github.com/hamgoftar/voice-gateway/internal/stt"
	"github.com/hamgoftar/voice-gateway/internal/tts"
	"github.com/hamgoftar/voice-gateway/internal/voice"
)

type deps struct {
	sessions  *session.Manager
	sttEngine *stt.MultiEngine
	ttsEngine *tts.MultiEngine
	intent    *intent.Engine
	voice     *voice.Processor
	wsHandler http.Handler
}

// newRouter wires all HTTP endpoints.
func newRouter(d deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ws/chat", d.wsHandler.ServeHTTP)
	r.Get("/health", d.handleHealth)
	r.Get("/ready", d.handleReady)
	r.Get("/engines", d.handleEngines)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (d deps) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"active_sessions": d.sessions.ActiveCount(),
	})
}

// handleReady aggregates per-stage readiness. Synthesis is always ready
// because of the silence last resort, but its flag is reported anyway.
func (d deps) handleReady(w http.ResponseWriter, r *http.Request) {
	stages := map[string]bool{
		"stt":    d.sttEngine.Ready(),
		"tts":    true,
		"intent": d.intent.Ready(),
	}
	status := http.StatusOK
	for _, ok := range stages {
		if !ok {
			status = http.StatusServiceUnavailable
		}
	}
	writeJSON(w, status, map[string]any{
		"ready":  status == http.StatusOK,
		"stages": stages,
	})
}

func (d deps) handleEngines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"stt": d.sttEngine.Engines(),
		"tts": d.ttsEngine.Engines(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// --- Piper backend (local neural TTS via piper-tts, returns WAV) ---

type piperSynthesizer struct {
	name   string
	url    string
	client *http.Client
}

// NewPiperSynthesizer creates a backend for a piper-tts HTTP sidecar.
func NewPiperSynthesizer(name, url string, client *http.Client) Synthesizer {
	return &piperSynthesizer{name: name, url: url, client: client}
}

func (p *piperSynthesizer) Name() string { return p.name }

func (p *piperSynthesizer) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	body, err := json.Marshal(struct {
		Text  string `json:"text"`
		Voice string `json:"voice"`
	}{Text: text, Voice: voice})
	if err != nil {
		return nil, fmt.Errorf("marshal piper request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.url+"/synthesize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create piper request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return doTTSRequest(p.client, req)
}

// --- OpenAI-compatible backend (any server exposing /v1/audio/speech) ---

type speechAPISynthesizer struct {
	name   string
	url    string
	model  string
	apiKey string
	client *http.Client
}

// NewSpeechAPISynthesizer creates a backend for an OpenAI-compatible speech
// endpoint. apiKey may be empty for local deployments.
func NewSpeechAPISynthesizer(name, url, model, apiKey string, client *http.Client) Synthesizer {
	return &speechAPISynthesizer{name: name, url: url, model: model, apiKey: apiKey, client: client}
}

func (o *speechAPISynthesizer) Name() string { return o.name }

func (o *speechAPISynthesizer) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	body, err := json.Marshal(struct {
		Input          string `json:"input"`
		Model          string `json:"model"`
		Voice          string `json:"voice"`
		ResponseFormat string `json:"response_format"`
	}{Input: text, Model: o.model, Voice: voice, ResponseFormat: "wav"})
	if err != nil {
		return nil, fmt.Errorf("marshal speech request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.url+"/v1/audio/speech", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create speech request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if o.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	return doTTSRequest(o.client, req)
}

// --- shared HTTP helper ---

func doTTSRequest(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

package stt

import (
	"bytes"
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// OpenAIClient transcribes through any server exposing the OpenAI audio
// transcription API (hosted OpenAI, or a local compatible sidecar).
type OpenAIClient struct {
	name     string
	model    string
	language string
	client   openai.Client
}

// NewOpenAIClient creates a backend for an OpenAI-compatible /v1/audio
// endpoint. baseURL may be empty for the hosted API.
func NewOpenAIClient(name, apiKey, baseURL, model, language string) *OpenAIClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = string(openai.AudioModelWhisper1)
	}
	return &OpenAIClient{
		name:     name,
		model:    model,
		language: language,
		client:   openai.NewClient(opts...),
	}
}

// Name returns the engine name used for reliability lookup.
func (c *OpenAIClient) Name() string { return c.name }

// Transcribe uploads the audio and returns the transcript. The API does not
// report a usable per-utterance confidence, so a fixed 0.8 is assigned and
// the registry score decides ordering.
func (c *OpenAIClient) Transcribe(ctx context.Context, audio []byte) (Transcription, error) {
	params := openai.AudioTranscriptionNewParams{
		File:  openai.File(bytes.NewReader(audio), "audio.wav", "audio/wav"),
		Model: openai.AudioModel(c.model),
	}
	if c.language != "" {
		params.Language = openai.String(c.language)
	}

	resp, err := c.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return Transcription{}, fmt.Errorf("%s transcription: %w", c.name, err)
	}

	return Transcription{Text: resp.Text, Confidence: 0.8}, nil
}

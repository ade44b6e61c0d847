package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/hamgoftar/voice-gateway/internal/httpx"
)

// WhisperClient sends audio as multipart form data to any whisper-compatible
// HTTP endpoint. Different deployments only vary by endpoint path
// (e.g. /inference for whisper.cpp). The name is used for engine routing and
// in error messages.
type WhisperClient struct {
	name     string
	url      string
	endpoint string
	language string
	client   *http.Client
}

// NewWhisperClient creates a backend for a whisper.cpp-style server.
func NewWhisperClient(name, url, language string, poolSize int) *WhisperClient {
	return &WhisperClient{
		name:     name,
		url:      url,
		endpoint: "/inference",
		language: language,
		client:   httpx.NewPooledClient(poolSize, 30*time.Second),
	}
}

// Name returns the engine name used for reliability lookup.
func (c *WhisperClient) Name() string { return c.name }

// Transcribe posts the audio payload and returns the transcript. The server
// reports no confidence of its own, so 1-no_speech_prob stands in for it.
func (c *WhisperClient) Transcribe(ctx context.Context, audio []byte) (Transcription, error) {
	body, contentType, err := buildMultipartAudio(audio, c.language)
	if err != nil {
		return Transcription{}, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url+c.endpoint, body)
	if err != nil {
		return Transcription{}, fmt.Errorf("create %s request: %w", c.name, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return Transcription{}, fmt.Errorf("%s request: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Transcription{}, fmt.Errorf("%s status %d: %s", c.name, resp.StatusCode, string(respBody))
	}

	var result whisperResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Transcription{}, fmt.Errorf("decode %s response: %w", c.name, err)
	}

	return Transcription{
		Text:       result.Text,
		Confidence: 1 - result.NoSpeechProb,
	}, nil
}

type whisperResponse struct {
	Text         string  `json:"text"`
	NoSpeechProb float64 `json:"no_speech_prob"`
}

func buildMultipartAudio(audio []byte, language string) (*bytes.Buffer, string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err = part.Write(audio); err != nil {
		return nil, "", fmt.Errorf("write audio data: %w", err)
	}
	if language != "" {
		if err = writer.WriteField("language", language); err != nil {
			return nil, "", fmt.Errorf("write language field: %w", err)
		}
	}
	if err = writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close writer: %w", err)
	}

	return &body, writer.FormDataContentType(), nil
}

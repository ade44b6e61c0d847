package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hamgoftar/voice-gateway/internal/httpx"
)

// OllamaGenerator produces replies from a local Ollama server. Used as the
// generative fallback when no template applies.
type OllamaGenerator struct {
	url       string
	model     string
	maxTokens int
	client    *http.Client
}

// NewOllamaGenerator creates an Ollama HTTP client.
func NewOllamaGenerator(url, model string, maxTokens, poolSize int) *OllamaGenerator {
	return &OllamaGenerator{
		url:       url,
		model:     model,
		maxTokens: maxTokens,
		client:    httpx.NewPooledClient(poolSize, 60*time.Second),
	}
}

// Generate sends one chat completion request and returns the reply text.
func (g *OllamaGenerator) Generate(ctx context.Context, systemPrompt, userText string, history []string) (string, error) {
	messages := []ollamaMessage{{Role: "system", Content: systemPrompt}}
	if len(history) > 0 {
		messages = append(messages, ollamaMessage{
			Role:    "system",
			Content: "گفتگوی اخیر:\n" + strings.Join(history, "\n"),
		})
	}
	messages = append(messages, ollamaMessage{Role: "user", Content: userText})

	reqBody := ollamaRequest{
		Model:    g.model,
		Stream:   false,
		Messages: messages,
		Options:  ollamaOptions{NumPredict: g.maxTokens},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.url+"/api/chat", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ollama status %d: %s", resp.StatusCode, body)
	}

	var out ollamaResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	return out.Message.Content, nil
}

type ollamaRequest struct {
	Model    string          `json:"model"`
	Stream   bool            `json:"stream"`
	Messages []ollamaMessage `json:"messages"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	NumPredict int `json:"num_predict"`
}

type ollamaResponse struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

package intent

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// OpenAIGenerator produces replies through any OpenAI-compatible chat
// completions endpoint.
type OpenAIGenerator struct {
	model  string
	client openai.Client
}

// NewOpenAIGenerator creates a client for the hosted API or, when baseURL is
// set, a compatible local server.
func NewOpenAIGenerator(apiKey, baseURL, model string) *OpenAIGenerator {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIGenerator{
		model:  model,
		client: openai.NewClient(opts...),
	}
}

// Generate sends one chat completion request and returns the reply text.
func (g *OpenAIGenerator) Generate(ctx context.Context, systemPrompt, userText string, history []string) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
	}
	if len(history) > 0 {
		messages = append(messages, openai.SystemMessage("گفتگوی اخیر:\n"+strings.Join(history, "\n")))
	}
	messages = append(messages, openai.UserMessage(userText))

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(g.model),
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

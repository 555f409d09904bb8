package ai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// Generator is the slice of the hosted generative-text API the assist
// features use. A nil Generator means no API key was configured; callers
// degrade to their local fallbacks.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const defaultModel = "gpt-4o-mini"

// OpenAIGenerator implements Generator against an OpenAI-compatible API
// with a fixed model identifier.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator, or nil when no API key is set.
func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = defaultModel
	}
	return &OpenAIGenerator{client: openai.NewClient(apiKey), model: model}
}

// Generate sends the prompt as a single user message and returns the model's text.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("generative API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("generative API returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

package reporter

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const (
	groqSystemMessage = "You are a helpful assistant that outputs strictly in JSON."
	groqJSONSuffix    = "\nIMPORTANT: Valid JSON output only."
)

// groqBackend talks to Groq's OpenAI-compatible endpoint. It is text only.
type groqBackend struct {
	client openai.Client
	model  string
}

func newGroqBackend(key, baseURL, model string) *groqBackend {
	return &groqBackend{
		client: openai.NewClient(
			option.WithAPIKey(key),
			option.WithBaseURL(baseURL),
			option.WithMaxRetries(0),
		),
		model: model,
	}
}

func (g *groqBackend) supportsAudio() bool { return false }

func (g *groqBackend) complete(ctx context.Context, prompt, _ string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(groqSystemMessage),
			openai.UserMessage(prompt + groqJSONSuffix),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from Groq")
	}
	return resp.Choices[0].Message.Content, nil
}

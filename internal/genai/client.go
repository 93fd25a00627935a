package genai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is the chat model used for enrichment prompts
const DefaultModel = "gpt-4o-mini"

var (
	// ErrEmptyPrompt is returned when the prompt is empty
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
	// ErrNoCompletion is returned when the API returns no choices
	ErrNoCompletion = errors.New("no completion returned")
)

// CompletionAPI defines the interface for text generation
type CompletionAPI interface {
	CreateCompletion(ctx context.Context, prompt string) (string, error)
}

// Client wraps a chat-completion backend behind a single Generate call.
type Client struct {
	api CompletionAPI
}

// OpenAIAdapter calls the OpenAI chat completion API
type OpenAIAdapter struct {
	client *openai.Client
	model  string
}

func NewOpenAIAdapter(apiKey, model string) *OpenAIAdapter {
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIAdapter{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// CreateCompletion sends a single-turn chat completion request
func (a *OpenAIAdapter) CreateCompletion(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoCompletion
	}

	return resp.Choices[0].Message.Content, nil
}

// NewClient creates a new generation client backed by OpenAI.
func NewClient(apiKey, model string) *Client {
	return &Client{api: NewOpenAIAdapter(apiKey, model)}
}

// NewClientWithAPI creates a client with an explicit backend (for testing).
func NewClientWithAPI(api CompletionAPI) *Client {
	return &Client{api: api}
}

// Generate produces a completion for the given prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	text, err := c.api.CreateCompletion(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}

	return text, nil
}

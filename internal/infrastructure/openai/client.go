package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/RDias-31/presenteperfeito/internal/domain"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gpt-4.1-mini"

// Config holds the OpenAI client settings
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional, e.g. an OpenAI-compatible gateway
}

// Client sends chat completion requests to the OpenAI API
type Client struct {
	client *goopenai.Client
	model  string
	logger zerolog.Logger
}

// NewClient creates a new OpenAI chat completion client
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	clientConfig := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		client: goopenai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger.With().Str("provider", "openai").Str("model", model).Logger(),
	}
}

// Name identifies the provider in logs and errors
func (c *Client) Name() string {
	return "openai"
}

// Complete makes a single chat completion call and returns the text of the first choice.
// A response without choices yields an empty string.
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		Temperature: req.Temperature,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) {
			c.logger.Error().
				Int("status", apiErr.HTTPStatusCode).
				Str("code", fmt.Sprint(apiErr.Code)).
				Msg("chat completion rejected")
		}
		return "", fmt.Errorf("chat completion: %w", err)
	}

	c.logger.Debug().
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Dur("elapsed", time.Since(start)).
		Msg("chat completion finished")

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

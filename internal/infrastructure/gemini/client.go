package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/RDias-31/presenteperfeito/internal/domain"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.0-flash"

// Config holds the Gemini client settings
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Client generates content through the Gemini API
type Client struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

// NewClient creates a Gemini client. It does not contact the API.
func NewClient(ctx context.Context, cfg Config, logger zerolog.Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		client: client,
		model:  model,
		logger: logger.With().Str("provider", "gemini").Str("model", model).Logger(),
	}, nil
}

// Name identifies the provider in logs and errors
func (c *Client) Name() string {
	return "gemini"
}

// Complete makes a single generateContent call and returns the concatenated text parts
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	start := time.Now()

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(req.Temperature),
		ResponseMIMEType:  "application/json",
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.UserPrompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		c.logger.Warn().Msg("response blocked by safety filters")
	}

	event := c.logger.Debug().Dur("elapsed", time.Since(start))
	if resp.UsageMetadata != nil {
		event = event.
			Int32("prompt_tokens", resp.UsageMetadata.PromptTokenCount).
			Int32("completion_tokens", resp.UsageMetadata.CandidatesTokenCount)
	}
	event.Msg("generate content finished")

	return resp.Text(), nil
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/RDias-31/presenteperfeito/internal/domain"
	"github.com/RDias-31/presenteperfeito/internal/infrastructure/logging"
	"github.com/rs/zerolog"
)

// DefaultTemperature favors varied but still plausible suggestions
const DefaultTemperature float32 = 0.8

// GenerationRecorder receives the outcome label and duration of every Generate call
type GenerationRecorder interface {
	ObserveGeneration(outcome string, elapsed time.Duration)
}

// SuggestionServiceConfig holds configuration for the suggestion service
type SuggestionServiceConfig struct {
	APIKey      string
	Temperature float32
}

// SuggestionService generates gift suggestions from quiz answers with a single
// provider call. It keeps no state between calls and is safe for concurrent use.
type SuggestionService struct {
	provider    domain.CompletionProvider
	recorder    GenerationRecorder
	logger      zerolog.Logger
	apiKey      string
	temperature float32
}

// NewSuggestionService creates a suggestion service. provider may be nil when
// no credentials are configured; Generate then fails with ErrConfigurationMissing.
func NewSuggestionService(
	provider domain.CompletionProvider,
	recorder GenerationRecorder,
	logger zerolog.Logger,
	config SuggestionServiceConfig,
) *SuggestionService {
	temperature := config.Temperature
	if temperature <= 0 {
		temperature = DefaultTemperature
	}

	return &SuggestionService{
		provider:    provider,
		recorder:    recorder,
		logger:      logger,
		apiKey:      strings.TrimSpace(config.APIKey),
		temperature: temperature,
	}
}

// Configured reports whether provider credentials are present
func (s *SuggestionService) Configured() bool {
	return s.apiKey != "" && s.provider != nil
}

// Generate turns answers into a non-empty batch of suggestions.
// Flow: validate input -> check credentials -> build prompt -> call provider once ->
// decode -> normalize. Every failure is a *domain.GenerationError.
func (s *SuggestionService) Generate(ctx context.Context, answers domain.QuizAnswers) (batch domain.SuggestionBatch, err error) {
	start := time.Now()
	defer func() {
		if s.recorder != nil {
			s.recorder.ObserveGeneration(domain.KindName(err), time.Since(start))
		}
	}()

	if answers == nil {
		return nil, s.fail(ctx, domain.NewGenerationError(domain.ErrInvalidInput, "answers are required", nil))
	}

	if !s.Configured() {
		return nil, s.fail(ctx, domain.NewGenerationError(domain.ErrConfigurationMissing, "no API key set", nil))
	}

	request := domain.CompletionRequest{
		SystemPrompt: SystemPrompt(),
		UserPrompt:   BuildUserPrompt(answers),
		Temperature:  s.temperature,
	}

	raw, err := s.provider.Complete(ctx, request)
	if err != nil {
		return nil, s.fail(ctx, domain.NewGenerationError(domain.ErrProviderFailure, s.provider.Name(), err))
	}

	if strings.TrimSpace(raw) == "" {
		return nil, s.fail(ctx, domain.NewGenerationError(domain.ErrEmptyResponse, s.provider.Name(), nil))
	}

	doc, err := DecodeDocument(raw)
	if err != nil {
		genErr := domain.NewGenerationError(domain.ErrMalformedResponse, "", err)
		genErr.Raw = raw
		return nil, s.fail(ctx, genErr)
	}

	batch, dropped := NormalizeDocument(doc)
	log := logging.FromContext(ctx, &s.logger)
	if dropped > 0 {
		log.Warn().
			Int("dropped", dropped).
			Int("kept", len(batch)).
			Msg("dropped suggestions without a title")
	}

	if len(batch) == 0 {
		genErr := domain.NewGenerationError(domain.ErrNoSuggestions, "", nil)
		genErr.Raw = raw
		return nil, s.fail(ctx, genErr)
	}

	log.Info().
		Str("provider", s.provider.Name()).
		Int("suggestions", len(batch)).
		Dur("elapsed", time.Since(start)).
		Msg("gift suggestions generated")

	return batch, nil
}

// fail logs a classified failure and returns it
func (s *SuggestionService) fail(ctx context.Context, genErr *domain.GenerationError) error {
	log := logging.FromContext(ctx, &s.logger)

	event := log.Error()
	if errors.Is(genErr, domain.ErrInvalidInput) {
		event = log.Warn()
	}
	event = event.Str("kind", domain.KindName(genErr)).Err(genErr)
	if genErr.Raw != "" {
		event = event.Str("raw_response", genErr.Raw)
	}
	event.Msg("gift suggestion generation failed")

	return genErr
}

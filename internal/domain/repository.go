package domain

import "context"

// CompletionRequest is a single chat-style request to a text generation provider
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
}

// CompletionProvider sends one completion request to a hosted language model and
// returns its raw text. An empty string means the model produced no content.
// Implementations make exactly one attempt.
type CompletionProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Name() string
}

// SuggestionGenerator turns quiz answers into gift suggestions
type SuggestionGenerator interface {
	Generate(ctx context.Context, answers QuizAnswers) (SuggestionBatch, error)
}

// CreditsLedger stores the remaining quiz runs per user.
// GetCredits and SetCredits return ErrUserNotFound when the user has no row.
// CreateCredits inserts a row only when none exists and reports whether it did.
type CreditsLedger interface {
	GetCredits(ctx context.Context, userID string) (int, error)
	SetCredits(ctx context.Context, userID string, credits int) error
	CreateCredits(ctx context.Context, userID string, credits int) (bool, error)
}

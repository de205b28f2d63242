package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/RDias-31/presenteperfeito/internal/domain"
	"github.com/RDias-31/presenteperfeito/internal/infrastructure/logging"
	"github.com/rs/zerolog"
)

// CreditsWarning is reported when suggestions were produced but the new balance could not be saved
const CreditsWarning = "Não foi possível atualizar os teus créditos."

// QuizResult is what a paid quiz submission returns
type QuizResult struct {
	Suggestions      domain.SuggestionBatch `json:"suggestions"`
	RemainingCredits int                    `json:"remainingCredits"`
	CreditsWarning   string                 `json:"warning,omitempty"`
}

// DefaultInitialCredits is granted to every newly registered account
const DefaultInitialCredits = 2

// QuizFlowConfig holds configuration for the quiz flow
type QuizFlowConfig struct {
	InitialCredits int
}

// QuizFlow charges one credit per successful generation.
// The read-then-write on the balance is not atomic; two concurrent submissions
// by the same user can both be charged against the same starting balance.
type QuizFlow struct {
	ledger    domain.CreditsLedger
	generator domain.SuggestionGenerator
	logger    zerolog.Logger

	initialCredits int
}

// NewQuizFlow creates a quiz flow
func NewQuizFlow(
	ledger domain.CreditsLedger,
	generator domain.SuggestionGenerator,
	logger zerolog.Logger,
	config QuizFlowConfig,
) *QuizFlow {
	initial := config.InitialCredits
	if initial < 0 {
		initial = 0
	}

	return &QuizFlow{
		ledger:         ledger,
		generator:      generator,
		logger:         logger,
		initialCredits: initial,
	}
}

// Register grants the initial credits to an account that has no ledger row yet.
// For an existing account it returns the current balance and created=false.
func (f *QuizFlow) Register(ctx context.Context, userID string) (credits int, created bool, err error) {
	created, err = f.ledger.CreateCredits(ctx, userID, f.initialCredits)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}
	if created {
		logging.FromContext(ctx, &f.logger).Info().
			Str("user_id", userID).
			Int("credits", f.initialCredits).
			Msg("account credits created")
		return f.initialCredits, true, nil
	}

	credits, err = f.Credits(ctx, userID)
	return credits, false, err
}

// Credits returns the user's balance. A user without a ledger row has zero credits.
func (f *QuizFlow) Credits(ctx context.Context, userID string) (int, error) {
	credits, err := f.ledger.GetCredits(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}
	return credits, nil
}

// Submit checks the balance, generates suggestions and debits one credit.
// Generation failures leave the balance untouched.
func (f *QuizFlow) Submit(ctx context.Context, userID string, answers domain.QuizAnswers) (*QuizResult, error) {
	log := logging.FromContext(ctx, &f.logger)

	balance, err := f.Credits(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to read credits")
		return nil, err
	}

	if balance <= 0 {
		return nil, domain.ErrInsufficientCredits
	}

	suggestions, err := f.generator.Generate(ctx, answers)
	if err != nil {
		return nil, err
	}

	result := &QuizResult{
		Suggestions:      suggestions,
		RemainingCredits: max(0, balance-1),
	}

	if err := f.ledger.SetCredits(ctx, userID, result.RemainingCredits); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Int("credits", result.RemainingCredits).
			Msg("failed to update credits")
		result.CreditsWarning = CreditsWarning
	}

	return result, nil
}

package domain

import "errors"

// Generation failure kinds. A *GenerationError always unwraps to exactly one of these.
var (
	// ErrInvalidInput is returned when the quiz answers are missing or not a mapping
	ErrInvalidInput = errors.New("invalid quiz answers")

	// ErrConfigurationMissing is returned when no provider credentials are configured
	ErrConfigurationMissing = errors.New("text generation provider not configured")

	// ErrProviderFailure is returned when the call to the provider itself fails
	ErrProviderFailure = errors.New("text generation provider call failed")

	// ErrEmptyResponse is returned when the provider answers without any text
	ErrEmptyResponse = errors.New("empty response from text generation provider")

	// ErrMalformedResponse is returned when the provider text is not a usable JSON document
	ErrMalformedResponse = errors.New("malformed response from text generation provider")

	// ErrNoSuggestions is returned when normalization leaves zero valid suggestions
	ErrNoSuggestions = errors.New("no valid gift suggestions generated")
)

var (
	// ErrUserNotFound is returned when the ledger has no credits row for a user
	ErrUserNotFound = errors.New("user not found in credits ledger")

	// ErrInsufficientCredits is returned when a user has no credits left
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrLedgerUnavailable is returned when the credits ledger cannot be read
	ErrLedgerUnavailable = errors.New("credits ledger unavailable")

	// ErrUnauthenticated is returned when a request carries no valid session
	ErrUnauthenticated = errors.New("unauthenticated")
)

var generationKinds = []struct {
	err  error
	name string
}{
	{ErrInvalidInput, "invalid_input"},
	{ErrConfigurationMissing, "configuration_missing"},
	{ErrProviderFailure, "provider_error"},
	{ErrEmptyResponse, "empty_response"},
	{ErrMalformedResponse, "malformed_response"},
	{ErrNoSuggestions, "no_suggestions"},
}

// GenerationError is a classified generation failure. Kind is one of the
// generation sentinels above; Raw holds the provider text when there was any.
type GenerationError struct {
	Kind   error
	Detail string
	Raw    string
	Err    error
}

// NewGenerationError builds a classified failure of the given kind.
func NewGenerationError(kind error, detail string, cause error) *GenerationError {
	return &GenerationError{Kind: kind, Detail: detail, Err: cause}
}

func (e *GenerationError) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *GenerationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindName returns a stable label for the generation failure kind of err,
// "success" for nil and "unknown" for anything unclassified.
func KindName(err error) string {
	if err == nil {
		return "success"
	}
	for _, k := range generationKinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "unknown"
}

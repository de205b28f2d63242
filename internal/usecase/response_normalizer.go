package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/RDias-31/presenteperfeito/internal/domain"
	"github.com/go-playground/validator/v10"
)

var suggestionValidator = validator.New()

// Legacy keys used by older prompt versions, read when the current key is absent
var (
	categoryKeys   = []string{"category", "type"}
	priceRangeKeys = []string{"priceRange", "budget"}
	rationaleKeys  = []string{"rationale", "why"}
	optionsKeys    = []string{"purchaseOptions", "whereToBuy"}
	searchURLKeys  = []string{"searchUrl", "url"}
)

// DecodeDocument parses raw model text as exactly one JSON object.
// A surrounding markdown code fence is tolerated.
func DecodeDocument(raw string) (map[string]any, error) {
	text := stripCodeFence(strings.TrimSpace(raw))

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON document")
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %s", jsonKind(doc))
	}
	return obj, nil
}

// NormalizeDocument maps a decoded model document onto validated suggestions.
// The suggestions value may be a list or a single object; anything else counts
// as an empty list. Entries that fail validation are dropped and counted.
func NormalizeDocument(doc map[string]any) (domain.SuggestionBatch, int) {
	items := asSequence(doc[SuggestionsKey])

	batch := make(domain.SuggestionBatch, 0, len(items))
	dropped := 0
	for _, item := range items {
		suggestion := normalizeSuggestion(asObject(item))
		if err := suggestionValidator.Struct(suggestion); err != nil {
			dropped++
			continue
		}
		batch = append(batch, suggestion)
	}
	return batch, dropped
}

func normalizeSuggestion(obj map[string]any) domain.GiftSuggestion {
	suggestion := domain.GiftSuggestion{
		Title:           coerceString(lookup(obj, "title")),
		Category:        coerceString(lookup(obj, categoryKeys...)),
		PriceRange:      coerceString(lookup(obj, priceRangeKeys...)),
		Rationale:       coerceString(lookup(obj, rationaleKeys...)),
		PurchaseOptions: []domain.PurchaseOption{},
	}

	rawOptions, _ := lookup(obj, optionsKeys...).([]any)
	for _, raw := range rawOptions {
		option := normalizeOption(asObject(raw))
		if err := suggestionValidator.Struct(option); err != nil {
			continue
		}
		suggestion.PurchaseOptions = append(suggestion.PurchaseOptions, option)
	}
	return suggestion
}

func normalizeOption(obj map[string]any) domain.PurchaseOption {
	option := domain.PurchaseOption{
		Name: coerceString(lookup(obj, "name")),
	}
	if u := lookup(obj, searchURLKeys...); isTruthy(u) {
		option.SearchURL = coerceString(u)
	}
	return option
}

// lookup returns the value of the first key present with a non-null value
func lookup(obj map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := obj[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func asSequence(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		return []any{t}
	default:
		return nil
	}
}

func asObject(v any) map[string]any {
	if obj, ok := v.(map[string]any); ok {
		return obj
	}
	return map[string]any{}
}

// coerceString renders scalars as trimmed strings; null, objects and lists become "".
func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

func isTruthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	body := strings.TrimPrefix(s, "```")
	newline := strings.Index(body, "\n")
	if newline < 0 {
		return s
	}
	body = strings.TrimSpace(body[newline+1:])
	return strings.TrimSpace(strings.TrimSuffix(body, "```"))
}

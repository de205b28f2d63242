package usecase

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/RDias-31/presenteperfeito/internal/domain"
)

func TestDecodeDocument(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "object", raw: `{"suggestions": []}`},
		{name: "object with whitespace", raw: "\n  {\"suggestions\": []}  \n"},
		{name: "fenced object", raw: "```json\n{\"suggestions\": []}\n```"},
		{name: "plain text", raw: "not json", wantErr: true},
		{name: "array", raw: `[{"title": "x"}]`, wantErr: true},
		{name: "string", raw: `"hello"`, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
		{name: "trailing data", raw: `{"a": 1} {"b": 2}`, wantErr: true},
		{name: "truncated", raw: `{"suggestions": [`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := DecodeDocument(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", doc)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if doc == nil {
				t.Error("expected document")
			}
		})
	}
}

func mustDecode(t *testing.T, raw string) map[string]any {
	t.Helper()
	doc, err := DecodeDocument(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return doc
}

func TestNormalizeDocument(t *testing.T) {
	t.Run("maps complete suggestion", func(t *testing.T) {
		doc := mustDecode(t, `{"suggestions": [{
			"title": "Kit de café",
			"category": "útil",
			"priceRange": "20-50€",
			"rationale": "Adora café.",
			"purchaseOptions": [
				{"name": "Amazon.es", "searchUrl": "https://www.amazon.es/s?k=kit+cafe"},
				{"name": "Torrefação local"}
			]
		}]}`)

		batch, dropped := NormalizeDocument(doc)
		if dropped != 0 {
			t.Errorf("dropped = %d, want 0", dropped)
		}
		want := domain.SuggestionBatch{{
			Title:      "Kit de café",
			Category:   "útil",
			PriceRange: "20-50€",
			Rationale:  "Adora café.",
			PurchaseOptions: []domain.PurchaseOption{
				{Name: "Amazon.es", SearchURL: "https://www.amazon.es/s?k=kit+cafe"},
				{Name: "Torrefação local"},
			},
		}}
		if !reflect.DeepEqual(batch, want) {
			t.Errorf("batch = %+v, want %+v", batch, want)
		}
	})

	t.Run("empty list yields empty batch", func(t *testing.T) {
		batch, dropped := NormalizeDocument(mustDecode(t, `{"suggestions": []}`))
		if len(batch) != 0 || dropped != 0 {
			t.Errorf("got %d suggestions, %d dropped", len(batch), dropped)
		}
	})

	t.Run("single object is treated as one-element list", func(t *testing.T) {
		batch, _ := NormalizeDocument(mustDecode(t, `{"suggestions": {"title": "Livro"}}`))
		if len(batch) != 1 || batch[0].Title != "Livro" {
			t.Fatalf("batch = %+v, want one suggestion titled Livro", batch)
		}
		if batch[0].PurchaseOptions == nil {
			t.Error("purchase options should be an empty list, not nil")
		}
	})

	t.Run("missing or scalar suggestions value yields empty batch", func(t *testing.T) {
		for _, raw := range []string{`{}`, `{"suggestions": "nope"}`, `{"suggestions": 3}`, `{"suggestions": null}`} {
			batch, _ := NormalizeDocument(mustDecode(t, raw))
			if len(batch) != 0 {
				t.Errorf("%s: got %d suggestions", raw, len(batch))
			}
		}
	})

	t.Run("drops entries without title", func(t *testing.T) {
		batch, dropped := NormalizeDocument(mustDecode(t, `{"suggestions": [
			{"title": "Vela aromática"},
			{"title": ""},
			{"title": "   "},
			{"category": "útil"},
			"texto solto",
			{"title": "Jogo de tabuleiro"}
		]}`))
		if dropped != 4 {
			t.Errorf("dropped = %d, want 4", dropped)
		}
		if len(batch) != 2 || batch[0].Title != "Vela aromática" || batch[1].Title != "Jogo de tabuleiro" {
			t.Errorf("batch = %+v", batch)
		}
	})

	t.Run("drops purchase options without name", func(t *testing.T) {
		batch, _ := NormalizeDocument(mustDecode(t, `{"suggestions": [{
			"title": "Caneca",
			"purchaseOptions": [{"searchUrl": "https://x"}, {"name": ""}, 5, {"name": "Loja local"}]
		}]}`))
		if len(batch) != 1 {
			t.Fatalf("batch = %+v", batch)
		}
		opts := batch[0].PurchaseOptions
		if len(opts) != 1 || opts[0].Name != "Loja local" {
			t.Errorf("purchase options = %+v", opts)
		}
	})

	t.Run("coerces scalar fields to strings", func(t *testing.T) {
		batch, _ := NormalizeDocument(mustDecode(t, `{"suggestions": [{
			"title": 42,
			"category": true,
			"priceRange": 12.5,
			"rationale": {"nested": "x"}
		}]}`))
		if len(batch) != 1 {
			t.Fatalf("batch = %+v", batch)
		}
		got := batch[0]
		if got.Title != "42" || got.Category != "true" || got.PriceRange != "12.5" || got.Rationale != "" {
			t.Errorf("coerced = %+v", got)
		}
	})

	t.Run("falsy search url is omitted", func(t *testing.T) {
		batch, _ := NormalizeDocument(mustDecode(t, `{"suggestions": [{
			"title": "Flores",
			"purchaseOptions": [{"name": "Florista", "searchUrl": ""}, {"name": "Mercado", "searchUrl": null}]
		}]}`))
		for _, opt := range batch[0].PurchaseOptions {
			if opt.SearchURL != "" {
				t.Errorf("option %q kept search url %q", opt.Name, opt.SearchURL)
			}
		}
	})

	t.Run("reads legacy keys", func(t *testing.T) {
		batch, _ := NormalizeDocument(mustDecode(t, `{"suggestions": [{
			"title": "Experiência spa",
			"type": "experiência",
			"budget": "50-100€",
			"why": "Precisa de descansar.",
			"whereToBuy": [{"name": "Fnac", "url": "https://www.fnac.pt/SearchResult/ResultList.aspx?Search=spa"}]
		}]}`))
		got := batch[0]
		if got.Category != "experiência" || got.PriceRange != "50-100€" || got.Rationale != "Precisa de descansar." {
			t.Errorf("legacy fields not mapped: %+v", got)
		}
		if len(got.PurchaseOptions) != 1 || got.PurchaseOptions[0].SearchURL == "" {
			t.Errorf("legacy purchase options not mapped: %+v", got.PurchaseOptions)
		}
	})

	t.Run("current keys win over legacy keys", func(t *testing.T) {
		batch, _ := NormalizeDocument(mustDecode(t, `{"suggestions": [{"title": "A", "category": "nova", "type": "antiga"}]}`))
		if batch[0].Category != "nova" {
			t.Errorf("category = %q, want nova", batch[0].Category)
		}
	})

	t.Run("normalizing a serialized batch is idempotent", func(t *testing.T) {
		first, _ := NormalizeDocument(mustDecode(t, `{"suggestions": [
			{"title": "Puzzle", "category": 3, "purchaseOptions": [{"name": "Worten", "searchUrl": "https://www.worten.pt/search?query=puzzle"}, {"name": ""}]},
			{"title": "Agenda", "priceRange": "até 20€"}
		]}`))

		encoded, err := json.Marshal(map[string]any{SuggestionsKey: first})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		second, dropped := NormalizeDocument(mustDecode(t, string(encoded)))

		if dropped != 0 {
			t.Errorf("dropped = %d on second pass", dropped)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("second pass differs:\nfirst  %+v\nsecond %+v", first, second)
		}
	})
}

func TestDecodeDocument_ErrorIsDescriptive(t *testing.T) {
	_, err := DecodeDocument(`[1, 2]`)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "expected a JSON object, got array" {
		t.Errorf("error = %q", got)
	}
}

package domain

// PurchaseOption is a place where a suggested gift can be bought
type PurchaseOption struct {
	Name      string `json:"name" validate:"required"`
	SearchURL string `json:"searchUrl,omitempty"` // search results page, never a product page
}

// GiftSuggestion is one recommended gift
type GiftSuggestion struct {
	Title           string           `json:"title" validate:"required"`
	Category        string           `json:"category"`   // free text, e.g. "emocional", "personalizado"
	PriceRange      string           `json:"priceRange"` // a band such as "20-50€", never an exact price
	Rationale       string           `json:"rationale"`
	PurchaseOptions []PurchaseOption `json:"purchaseOptions" validate:"dive"`
}

// SuggestionBatch is the ordered result of a single provider invocation.
// A batch handed back to a caller always holds at least one suggestion.
type SuggestionBatch []GiftSuggestion

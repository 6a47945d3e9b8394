package models

// MarketQuote is one provider's view of a card's market price.
// All numeric fields are optional: a nil field means the provider did not
// report it, which downstream consumers must treat as unknown, never zero.
type MarketQuote struct {
	Provider string   `json:"provider"`
	Currency string   `json:"currency"`
	Avg      *float64 `json:"avg,omitempty"`
	Low      *float64 `json:"low,omitempty"`
	High     *float64 `json:"high,omitempty"`
	Volume   *int     `json:"volume,omitempty"`
	URL      string   `json:"url,omitempty"`
}

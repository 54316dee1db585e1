package model

import "github.com/shopspring/decimal"

// Quote is a point-in-time price snapshot for a symbol.
type Quote struct {
	Symbol        string           `json:"symbol"`
	Price         decimal.Decimal  `json:"price"`
	PreviousClose *decimal.Decimal `json:"previous_close,omitempty"`
	Currency      string           `json:"currency"`
	MarketState   string           `json:"market_state"`
}

// HasPreviousClose reports whether the server sent a usable previous close.
// A zero previous close is treated as absent.
func (q *Quote) HasPreviousClose() bool {
	return q.PreviousClose != nil && !q.PreviousClose.IsZero()
}

// IsUp reports whether the price is strictly above the previous close.
func (q *Quote) IsUp() bool {
	return q.HasPreviousClose() && q.Price.GreaterThan(*q.PreviousClose)
}

// HistoryEntry is a single recorded price.
type HistoryEntry struct {
	Timestamp Timestamp       `json:"timestamp"`
	Price     decimal.Decimal `json:"price"`
}

// History is the price history of a symbol in server order.
type History struct {
	Symbol  string         `json:"symbol"`
	History []HistoryEntry `json:"history"`
}

package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// WatchlistItem is one entry of the user's watchlist.
type WatchlistItem struct {
	Symbol       string           `json:"symbol"`
	TargetPrice  *decimal.Decimal `json:"target_price,omitempty"`
	AlertEnabled bool             `json:"alert_enabled"`
}

// HasTarget reports whether a non-zero target price is set.
func (w *WatchlistItem) HasTarget() bool {
	return w.TargetPrice != nil && !w.TargetPrice.IsZero()
}

// WatchlistAddRequest is the body of POST /api/watchlist. TargetPrice is
// omitted from the payload when nil.
type WatchlistAddRequest struct {
	Symbol      string           `json:"symbol"`
	TargetPrice *decimal.Decimal `json:"target_price,omitempty"`
}

func (r WatchlistAddRequest) MarshalJSON() ([]byte, error) {
	type wire struct {
		Symbol      string       `json:"symbol"`
		TargetPrice *json.Number `json:"target_price,omitempty"`
	}
	w := wire{Symbol: r.Symbol}
	if r.TargetPrice != nil {
		n := number(*r.TargetPrice)
		w.TargetPrice = &n
	}
	return json.Marshal(w)
}

// number renders d as a bare JSON number rather than the quoted string
// decimal.Decimal marshals to by default.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

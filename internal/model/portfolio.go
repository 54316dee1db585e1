package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Position is a held quantity of a symbol. All derived values are computed
// by the backend.
type Position struct {
	Symbol        string          `json:"symbol"`
	Shares        decimal.Decimal `json:"shares"`
	AvgPrice      decimal.Decimal `json:"avg_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	PositionValue decimal.Decimal `json:"position_value"`
	InvestedValue decimal.Decimal `json:"invested_value"`
	ProfitLoss    decimal.Decimal `json:"profit_loss"`
	ProfitLossPct decimal.Decimal `json:"profit_loss_pct"`
}

// PortfolioSummary aggregates all positions.
type PortfolioSummary struct {
	TotalInvested      decimal.Decimal `json:"total_invested"`
	TotalCurrentValue  decimal.Decimal `json:"total_current_value"`
	TotalProfitLoss    decimal.Decimal `json:"total_profit_loss"`
	TotalProfitLossPct decimal.Decimal `json:"total_profit_loss_pct"`
}

// Portfolio is the GET /api/portfolio payload. Positions is nil when the
// backend omits the field, which is distinct from an empty list.
type Portfolio struct {
	Positions []Position        `json:"positions"`
	Summary   *PortfolioSummary `json:"summary"`
}

// PositionAddRequest is the body of POST /api/portfolio.
type PositionAddRequest struct {
	Symbol string          `json:"symbol"`
	Shares decimal.Decimal `json:"shares"`
	Price  decimal.Decimal `json:"price"`
	Notes  string          `json:"notes"`
}

func (r PositionAddRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Symbol string      `json:"symbol"`
		Shares json.Number `json:"shares"`
		Price  json.Number `json:"price"`
		Notes  string      `json:"notes"`
	}{r.Symbol, number(r.Shares), number(r.Price), r.Notes})
}

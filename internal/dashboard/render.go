package dashboard

import (
	"fmt"
	"time"

	"StockWatcher/internal/model"
	"StockWatcher/internal/view"

	"github.com/shopspring/decimal"
)

// maxHistoryRows caps the rendered history; the server order is kept.
const maxHistoryRows = 10

const historyTimeLayout = "2006-01-02 15:04:05"

func errorNode(msg string) view.Node {
	return view.Text("error", msg)
}

func loadingNode(msg string) view.Node {
	return view.Text("loading", msg)
}

func signClass(d decimal.Decimal) string {
	if d.IsNegative() {
		return "negative"
	}
	return "positive"
}

func quoteNode(q *model.Quote) view.Node {
	price := view.Money(q.Price)
	priceClass := "price"
	if q.HasPreviousClose() {
		if q.IsUp() {
			price += " ↗"
			priceClass += " positive"
		} else {
			price += " ↘"
			priceClass += " negative"
		}
	}

	children := []view.Node{
		view.Text("symbol-heading", q.Symbol),
		view.Text(priceClass, price),
		view.Text("currency", q.Currency),
		view.Text("market-state", "Market: "+q.MarketState),
	}
	if q.HasPreviousClose() {
		children = append(children, view.Text("prev-close", "Previous Close: "+view.Money(*q.PreviousClose)))
	}
	return view.Group("stock-info", children...)
}

func historyNode(h *model.History, loc *time.Location) view.Node {
	entries := h.History
	if len(entries) > maxHistoryRows {
		entries = entries[:maxHistoryRows]
	}
	rows := make([]view.Node, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, view.Group("history-item",
			view.Text("hist-price", view.Money(e.Price)),
			view.Text("hist-time", e.Timestamp.In(loc).Format(historyTimeLayout)),
		))
	}
	return view.Group("price-history",
		view.Text("history-heading", "Price History for "+h.Symbol),
		view.Group("history-list", rows...),
	)
}

func watchlistNode(items []model.WatchlistItem) view.Node {
	if len(items) == 0 {
		return view.Text("empty-watchlist", "No stocks in watchlist")
	}
	rows := make([]view.Node, 0, len(items))
	for _, item := range items {
		target := "No target"
		if item.HasTarget() {
			target = view.Money(*item.TargetPrice)
		}
		alert := view.Text("alert-status disabled", "Alert OFF")
		if item.AlertEnabled {
			alert = view.Text("alert-status enabled", "Alert ON")
		}
		rows = append(rows, view.Group("watchlist-item",
			view.Text("symbol", item.Symbol).WithAction(view.ActionSearch, item.Symbol),
			view.Text("target-price", target),
			alert,
			view.Text("remove-btn", "Remove").WithAction(view.ActionRemove, item.Symbol),
		))
	}
	return view.Group("watchlist-items", rows...)
}

func profitText(pl, pct decimal.Decimal) string {
	return fmt.Sprintf("%s (%s)", view.Money(pl), view.Percent(pct))
}

func portfolioNode(p *model.Portfolio) view.Node {
	if p.Positions != nil && len(p.Positions) == 0 {
		return view.Text("empty-portfolio", "No positions in portfolio")
	}

	children := []view.Node{view.Text("portfolio-heading", "Portfolio Summary")}

	if s := p.Summary; s != nil {
		children = append(children, view.Group("portfolio-summary",
			view.Group("summary-item",
				view.Text("label", "Total Invested:"),
				view.Text("value", view.Money(s.TotalInvested)),
			),
			view.Group("summary-item",
				view.Text("label", "Current Value:"),
				view.Text("value", view.Money(s.TotalCurrentValue)),
			),
			view.Group("summary-item total-pl "+signClass(s.TotalProfitLoss),
				view.Text("label", "Total P&L:"),
				view.Text("value", profitText(s.TotalProfitLoss, s.TotalProfitLossPct)),
			),
		))
	}

	if p.Positions != nil {
		rows := make([]view.Node, 0, len(p.Positions))
		for _, pos := range p.Positions {
			rows = append(rows, view.Group("portfolio-item",
				view.Group("position-header",
					view.Text("symbol", pos.Symbol).WithAction(view.ActionSearch, pos.Symbol),
					view.Text("shares", pos.Shares.String()+" shares"),
				),
				view.Group("position-details",
					view.Text("avg-price", "Avg: "+view.Money(pos.AvgPrice)),
					view.Text("current-price", "Current: "+view.Money(pos.CurrentPrice)),
					view.Text("profit-loss "+signClass(pos.ProfitLoss), "P&L: "+profitText(pos.ProfitLoss, pos.ProfitLossPct)),
				),
			))
		}
		children = append(children, view.Group("portfolio-positions", rows...))
	}

	return view.Group("portfolio-view", children...)
}

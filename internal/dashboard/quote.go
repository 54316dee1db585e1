package dashboard

import (
	"context"

	"StockWatcher/internal/api"
	"StockWatcher/internal/model"
	"StockWatcher/internal/recorder"
	"StockWatcher/internal/view"
)

// SearchQuote fetches and renders the quote for input. On success the symbol
// becomes the current symbol and the action controls are revealed.
func (d *Dashboard) SearchQuote(ctx context.Context, input string) error {
	symbol := normalizeSymbol(input)
	t := d.ticket(view.RegionResult)
	if symbol == "" {
		d.render(view.RegionResult, t, errorNode("Please enter a stock symbol"), nil)
		return ErrEmptySymbol
	}

	d.render(view.RegionResult, t, loadingNode("Loading..."), nil)

	q, err := d.backend.Quote(ctx, symbol)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		d.logger.Warn().Err(err).Str("symbol", symbol).Msg("quote fetch failed")
		if apiErr, ok := api.AsAPIError(err); ok {
			d.render(view.RegionResult, t, errorNode(apiErr.Message), nil)
			return err
		}
		d.render(view.RegionResult, t, errorNode("Failed to fetch stock data: "+transportReason(err)), nil)
		return err
	}

	applied := d.render(view.RegionResult, t, quoteNode(q), func() {
		d.mu.Lock()
		d.currentSymbol = symbol
		d.mu.Unlock()
	})
	if !applied {
		return nil
	}
	d.showControls()
	d.recordQuote(q)
	return nil
}

// SubmitSearch searches for whatever the input control currently holds.
func (d *Dashboard) SubmitSearch(ctx context.Context) error {
	var value string
	if in := d.surface.Input(); in != nil {
		value = in.Value()
	}
	return d.SearchQuote(ctx, value)
}

// QuickSearch fills the input control with symbol and searches for it.
func (d *Dashboard) QuickSearch(ctx context.Context, symbol string) error {
	if in := d.surface.Input(); in != nil {
		in.SetValue(symbol)
	}
	return d.SearchQuote(ctx, symbol)
}

// ShowHistory renders recent prices for the current symbol. It does nothing
// before the first successful search.
func (d *Dashboard) ShowHistory(ctx context.Context) error {
	symbol := d.CurrentSymbol()
	if symbol == "" {
		return nil
	}

	t := d.ticket(view.RegionHistory)
	d.render(view.RegionHistory, t, loadingNode("Loading history..."), nil)

	h, err := d.backend.History(ctx, symbol)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		d.logger.Warn().Err(err).Str("symbol", symbol).Msg("history fetch failed")
		if apiErr, ok := api.AsAPIError(err); ok {
			d.render(view.RegionHistory, t, errorNode(apiErr.Message), nil)
			return err
		}
		d.render(view.RegionHistory, t, errorNode("Failed to fetch history"), nil)
		return err
	}

	d.render(view.RegionHistory, t, historyNode(h, d.loc), nil)
	return nil
}

func (d *Dashboard) recordQuote(q *model.Quote) {
	if err := d.rec.RecordQuote(&recorder.QuoteSnapshot{
		Symbol:        q.Symbol,
		Price:         q.Price,
		PreviousClose: q.PreviousClose,
		Currency:      q.Currency,
		MarketState:   q.MarketState,
	}); err != nil {
		d.logger.Error().Err(err).Str("symbol", q.Symbol).Msg("record quote")
	}
}

func transportReason(err error) string {
	if tErr, ok := api.AsTransportError(err); ok {
		return tErr.Reason()
	}
	return err.Error()
}

package dashboard

import (
	"context"
	"fmt"

	"StockWatcher/internal/api"
	"StockWatcher/internal/model"
	"StockWatcher/internal/recorder"
	"StockWatcher/internal/view"

	"github.com/shopspring/decimal"
)

// requireSymbol returns the current symbol, or renders the "search first"
// message and returns ErrNoSymbol.
func (d *Dashboard) requireSymbol() (string, error) {
	symbol := d.CurrentSymbol()
	if symbol == "" {
		t := d.ticket(view.RegionResult)
		d.render(view.RegionResult, t, errorNode("Search for a stock first"), nil)
		return "", ErrNoSymbol
	}
	return symbol, nil
}

// AddToWatchlist adds the current symbol, with an optional target price, to
// the watchlist. An unparseable target is treated as no target.
func (d *Dashboard) AddToWatchlist(ctx context.Context) error {
	symbol, err := d.requireSymbol()
	if err != nil {
		return err
	}

	req := model.WatchlistAddRequest{Symbol: symbol}
	if raw, ok := d.ui.Prompt(ctx, fmt.Sprintf("Enter target price for %s (optional):", symbol)); ok {
		if target, ok := parseNumber(raw); ok {
			req.TargetPrice = &target
		}
	}

	msg, err := d.backend.AddToWatchlist(ctx, req)
	evt := &recorder.MutationEvent{EventType: recorder.EventWatchlistAdd, Symbol: symbol}
	if req.TargetPrice != nil {
		evt.Price = *req.TargetPrice
	}
	if err != nil {
		d.mutationFailed(ctx, evt, err, "Failed to add to watchlist")
		return err
	}

	d.mutationDone(evt, msg)
	d.ui.Notify(ctx, msg)
	return d.RefreshWatchlist(ctx)
}

// RemoveFromWatchlist deletes symbol from the watchlist after the user
// confirms.
func (d *Dashboard) RemoveFromWatchlist(ctx context.Context, symbol string) error {
	if !d.ui.Confirm(ctx, fmt.Sprintf("Remove %s from watchlist?", symbol)) {
		return ErrDeclined
	}

	msg, err := d.backend.RemoveFromWatchlist(ctx, symbol)
	evt := &recorder.MutationEvent{EventType: recorder.EventWatchlistRemove, Symbol: symbol}
	if err != nil {
		d.mutationFailed(ctx, evt, err, "Failed to remove from watchlist")
		return err
	}

	d.mutationDone(evt, msg)
	return d.RefreshWatchlist(ctx)
}

// AddToPortfolio records a purchase of the current symbol. Shares and price
// must both be numbers; otherwise nothing is sent.
func (d *Dashboard) AddToPortfolio(ctx context.Context) error {
	symbol, err := d.requireSymbol()
	if err != nil {
		return err
	}

	shares, ok := d.promptNumber(ctx, fmt.Sprintf("Enter number of shares for %s:", symbol))
	if !ok {
		d.ui.Notify(ctx, "Invalid number of shares")
		return ErrInvalidShares
	}
	price, ok := d.promptNumber(ctx, "Enter purchase price per share:")
	if !ok {
		d.ui.Notify(ctx, "Invalid price")
		return ErrInvalidPrice
	}
	notes, _ := d.ui.Prompt(ctx, "Enter notes (optional):")

	req := model.PositionAddRequest{
		Symbol: symbol,
		Shares: shares,
		Price:  price,
		Notes:  notes,
	}
	msg, err := d.backend.AddPosition(ctx, req)
	evt := &recorder.MutationEvent{
		EventType: recorder.EventPositionAdd,
		Symbol:    symbol,
		Shares:    shares,
		Price:     price,
	}
	if err != nil {
		d.mutationFailed(ctx, evt, err, "Failed to add to portfolio")
		return err
	}

	d.mutationDone(evt, msg)
	d.ui.Notify(ctx, msg)
	return d.RefreshPortfolio(ctx)
}

func (d *Dashboard) promptNumber(ctx context.Context, message string) (decimal.Decimal, bool) {
	raw, ok := d.ui.Prompt(ctx, message)
	if !ok {
		return decimal.Decimal{}, false
	}
	return parseNumber(raw)
}

func (d *Dashboard) mutationFailed(ctx context.Context, evt *recorder.MutationEvent, err error, generic string) {
	d.logger.Warn().Err(err).Str("symbol", evt.Symbol).Str("event", evt.EventType).Msg("mutation failed")
	if apiErr, ok := api.AsAPIError(err); ok {
		evt.Outcome = recorder.OutcomeRejected
		evt.Message = apiErr.Message
		d.ui.Notify(ctx, "Error: "+apiErr.Message)
	} else {
		evt.Outcome = recorder.OutcomeFailed
		evt.Message = err.Error()
		d.ui.Notify(ctx, generic)
	}
	d.recordMutation(evt)
}

func (d *Dashboard) mutationDone(evt *recorder.MutationEvent, msg string) {
	evt.Outcome = recorder.OutcomeOK
	evt.Message = msg
	d.logger.Info().Str("symbol", evt.Symbol).Str("event", evt.EventType).Str("message", msg).Msg("mutation applied")
	d.recordMutation(evt)
}

func (d *Dashboard) recordMutation(evt *recorder.MutationEvent) {
	if err := d.rec.RecordMutation(evt); err != nil {
		d.logger.Error().Err(err).Str("event", evt.EventType).Msg("record mutation")
	}
}

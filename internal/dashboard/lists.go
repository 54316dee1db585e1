package dashboard

import (
	"context"

	"StockWatcher/internal/api"
	"StockWatcher/internal/view"
)

// RefreshWatchlist replaces the watchlist region with the server's list.
func (d *Dashboard) RefreshWatchlist(ctx context.Context) error {
	t := d.ticket(view.RegionWatchlist)

	items, err := d.backend.Watchlist(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		d.logger.Warn().Err(err).Msg("watchlist fetch failed")
		if apiErr, ok := api.AsAPIError(err); ok {
			d.render(view.RegionWatchlist, t, errorNode(apiErr.Message), nil)
			return err
		}
		d.render(view.RegionWatchlist, t, errorNode("Failed to load watchlist"), nil)
		return err
	}

	d.render(view.RegionWatchlist, t, watchlistNode(items), nil)
	return nil
}

// RefreshPortfolio replaces the portfolio region with the server's snapshot.
// Hosts without a portfolio region get no request and no error.
func (d *Dashboard) RefreshPortfolio(ctx context.Context) error {
	if !d.hasRegion(view.RegionPortfolio) {
		return nil
	}
	t := d.ticket(view.RegionPortfolio)

	p, err := d.backend.Portfolio(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		d.logger.Warn().Err(err).Msg("portfolio fetch failed")
		if apiErr, ok := api.AsAPIError(err); ok {
			d.render(view.RegionPortfolio, t, errorNode(apiErr.Message), nil)
			return err
		}
		d.render(view.RegionPortfolio, t, errorNode("Failed to load portfolio"), nil)
		return err
	}

	d.render(view.RegionPortfolio, t, portfolioNode(p), nil)
	return nil
}

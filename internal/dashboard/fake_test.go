package dashboard

import (
	"context"
	"sync"

	"StockWatcher/internal/model"
)

// fakeBackend is an in-memory Backend that counts calls per endpoint.
type fakeBackend struct {
	mu sync.Mutex

	quotes    map[string]*model.Quote
	quoteErr  error
	history   *model.History
	histErr   error
	watchlist []model.WatchlistItem
	watchErr  error
	portfolio *model.Portfolio
	portErr   error
	mutateErr error

	// quoteGate, when set for a symbol, blocks Quote until it is closed.
	quoteGate map[string]chan struct{}
	// watchGate, when set, blocks Watchlist until it is closed or ctx ends.
	watchGate chan struct{}

	calls        map[string]int
	watchAdds    []model.WatchlistAddRequest
	watchRemoves []string
	positionAdds []model.PositionAddRequest
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		quotes:    make(map[string]*model.Quote),
		quoteGate: make(map[string]chan struct{}),
		watchlist: []model.WatchlistItem{},
		portfolio: &model.Portfolio{Positions: []model.Position{}},
		calls:     make(map[string]int),
	}
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeBackend) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeBackend) Quote(ctx context.Context, symbol string) (*model.Quote, error) {
	f.hit("quote")
	f.mu.Lock()
	gate := f.quoteGate[symbol]
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.quoteErr != nil {
		return nil, f.quoteErr
	}
	q, ok := f.quotes[symbol]
	if !ok {
		return nil, errNotFound
	}
	cp := *q
	return &cp, nil
}

func (f *fakeBackend) History(_ context.Context, symbol string) (*model.History, error) {
	f.hit("history")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.histErr != nil {
		return nil, f.histErr
	}
	return f.history, nil
}

func (f *fakeBackend) Watchlist(ctx context.Context) ([]model.WatchlistItem, error) {
	f.hit("watchlist")
	f.mu.Lock()
	gate := f.watchGate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.watchErr != nil {
		return nil, f.watchErr
	}
	return append([]model.WatchlistItem(nil), f.watchlist...), nil
}

func (f *fakeBackend) AddToWatchlist(_ context.Context, req model.WatchlistAddRequest) (string, error) {
	f.hit("watchlist_add")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.watchAdds = append(f.watchAdds, req)
	if f.mutateErr != nil {
		return "", f.mutateErr
	}
	return req.Symbol + " added to watchlist", nil
}

func (f *fakeBackend) RemoveFromWatchlist(_ context.Context, symbol string) (string, error) {
	f.hit("watchlist_remove")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.watchRemoves = append(f.watchRemoves, symbol)
	if f.mutateErr != nil {
		return "", f.mutateErr
	}
	return symbol + " removed", nil
}

func (f *fakeBackend) Portfolio(_ context.Context) (*model.Portfolio, error) {
	f.hit("portfolio")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.portErr != nil {
		return nil, f.portErr
	}
	return f.portfolio, nil
}

func (f *fakeBackend) AddPosition(_ context.Context, req model.PositionAddRequest) (string, error) {
	f.hit("position_add")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.positionAdds = append(f.positionAdds, req)
	if f.mutateErr != nil {
		return "", f.mutateErr
	}
	return "Position added", nil
}

// scriptedUI answers prompts from a queue and records notifications.
type scriptedUI struct {
	mu       sync.Mutex
	answers  []string
	cancel   bool
	confirm  bool
	prompts  []string
	confirms []string
	notes    []string
}

func (u *scriptedUI) Prompt(_ context.Context, message string) (string, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.prompts = append(u.prompts, message)
	if u.cancel || len(u.answers) == 0 {
		return "", false
	}
	a := u.answers[0]
	u.answers = u.answers[1:]
	return a, true
}

func (u *scriptedUI) Confirm(_ context.Context, message string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.confirms = append(u.confirms, message)
	return u.confirm
}

func (u *scriptedUI) Notify(_ context.Context, message string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.notes = append(u.notes, message)
}

func (u *scriptedUI) notifications() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.notes...)
}

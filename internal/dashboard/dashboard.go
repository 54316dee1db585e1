// Package dashboard polls the stock API and renders quote, history, watchlist
// and portfolio views onto a host-provided surface.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"StockWatcher/internal/model"
	"StockWatcher/internal/recorder"
	"StockWatcher/internal/scheduler"
	"StockWatcher/internal/view"

	"github.com/rs/zerolog"
)

// DefaultRefreshSchedule re-fetches watchlist and portfolio every five minutes.
const DefaultRefreshSchedule = "@every 5m"

const refreshJob = "refresh"

var (
	ErrAlreadyStarted = errors.New("dashboard already started")
	ErrEmptySymbol    = errors.New("please enter a stock symbol")
	ErrNoSymbol       = errors.New("search for a stock first")
	ErrInvalidShares  = errors.New("invalid number of shares")
	ErrInvalidPrice   = errors.New("invalid price")
	ErrDeclined       = errors.New("action declined")
)

// Backend is the stock API the dashboard consumes.
type Backend interface {
	Quote(ctx context.Context, symbol string) (*model.Quote, error)
	History(ctx context.Context, symbol string) (*model.History, error)
	Watchlist(ctx context.Context) ([]model.WatchlistItem, error)
	AddToWatchlist(ctx context.Context, req model.WatchlistAddRequest) (string, error)
	RemoveFromWatchlist(ctx context.Context, symbol string) (string, error)
	Portfolio(ctx context.Context) (*model.Portfolio, error)
	AddPosition(ctx context.Context, req model.PositionAddRequest) (string, error)
}

// Interactor is how the dashboard asks the user for input and reports
// outcomes of mutations.
type Interactor interface {
	// Prompt asks for a value; ok is false if the user cancelled.
	Prompt(ctx context.Context, message string) (value string, ok bool)
	Confirm(ctx context.Context, message string) bool
	Notify(ctx context.Context, message string)
}

// Options configures a Dashboard. Backend, Surface and Interactor are required.
type Options struct {
	Backend         Backend
	Surface         view.Surface
	Interactor      Interactor
	Recorder        recorder.Recorder
	RefreshSchedule string
	Location        *time.Location
	Logger          zerolog.Logger
}

// Dashboard is the client session: it owns the current symbol and the
// periodic refresh task.
type Dashboard struct {
	backend  Backend
	surface  view.Surface
	ui       Interactor
	rec      recorder.Recorder
	sched    *scheduler.Scheduler
	schedule string
	loc      *time.Location
	logger   zerolog.Logger

	mu            sync.Mutex
	currentSymbol string
	runCtx        context.Context // read by the cron goroutine

	// renderMu serialises sequence checks with the render they guard.
	renderMu sync.Mutex
	seq      map[view.Region]uint64

	lifecycleMu sync.Mutex
	started     bool
	cancel      context.CancelFunc
}

// New creates a stopped dashboard.
func New(opts Options) (*Dashboard, error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("dashboard: backend is required")
	}
	if opts.Surface == nil {
		return nil, fmt.Errorf("dashboard: surface is required")
	}
	if opts.Interactor == nil {
		return nil, fmt.Errorf("dashboard: interactor is required")
	}
	if opts.Recorder == nil {
		opts.Recorder = recorder.NewNoopRecorder()
	}
	if opts.RefreshSchedule == "" {
		opts.RefreshSchedule = DefaultRefreshSchedule
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	logger := opts.Logger.With().Str("component", "dashboard").Logger()
	return &Dashboard{
		backend:  opts.Backend,
		surface:  opts.Surface,
		ui:       opts.Interactor,
		rec:      opts.Recorder,
		sched:    scheduler.NewScheduler(opts.Logger),
		schedule: opts.RefreshSchedule,
		loc:      opts.Location,
		logger:   logger,
		seq:      make(map[view.Region]uint64),
	}, nil
}

// Start loads the watchlist and portfolio, then arms the periodic refresh.
// A second Start without an intervening Stop returns ErrAlreadyStarted. The
// initial load runs without the lifecycle lock, so Stop can cancel it; a Start
// stopped that way returns without arming the schedule.
func (d *Dashboard) Start(ctx context.Context) error {
	runCtx, err := d.begin(ctx)
	if err != nil {
		return err
	}

	d.refreshAll(runCtx)

	d.lifecycleMu.Lock()
	defer d.lifecycleMu.Unlock()
	if runCtx.Err() != nil {
		if d.started && d.currentRun() == runCtx {
			// ctx ended before the schedule was armed.
			d.cancel()
			d.setRunContext(nil)
			d.started = false
			return ctx.Err()
		}
		d.logger.Info().Msg("dashboard stopped during initial load")
		return nil
	}
	d.sched.Start()
	d.logger.Info().Str("schedule", d.schedule).Msg("dashboard started")
	return nil
}

func (d *Dashboard) begin(ctx context.Context) (context.Context, error) {
	d.lifecycleMu.Lock()
	defer d.lifecycleMu.Unlock()
	if d.started {
		return nil, ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	if !d.sched.Registered(refreshJob) {
		if err := d.sched.Register(refreshJob, d.schedule, d.tick); err != nil {
			cancel()
			return nil, err
		}
	}
	d.cancel = cancel
	d.started = true
	d.setRunContext(runCtx)
	return runCtx, nil
}

// Stop cancels the periodic refresh and any refresh still in flight. It is
// safe to call more than once.
func (d *Dashboard) Stop() {
	d.lifecycleMu.Lock()
	defer d.lifecycleMu.Unlock()
	if !d.started {
		return
	}
	d.cancel()
	d.sched.Stop()
	d.setRunContext(nil)
	d.started = false
	d.logger.Info().Msg("dashboard stopped")
}

// Running reports whether the periodic refresh is armed.
func (d *Dashboard) Running() bool {
	d.lifecycleMu.Lock()
	defer d.lifecycleMu.Unlock()
	return d.started
}

// CurrentSymbol returns the last successfully searched symbol, or "".
func (d *Dashboard) CurrentSymbol() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.currentSymbol
}

// Refresh re-fetches watchlist and portfolio now.
func (d *Dashboard) Refresh(ctx context.Context) {
	d.refreshAll(ctx)
}

func (d *Dashboard) refreshAll(ctx context.Context) {
	if err := d.RefreshWatchlist(ctx); err != nil {
		d.logger.Debug().Err(err).Msg("watchlist refresh failed")
	}
	if err := d.RefreshPortfolio(ctx); err != nil {
		d.logger.Debug().Err(err).Msg("portfolio refresh failed")
	}
}

func (d *Dashboard) setRunContext(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.runCtx = ctx
}

func (d *Dashboard) currentRun() context.Context {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.runCtx
}

func (d *Dashboard) tick() {
	d.mu.Lock()
	ctx := d.runCtx
	d.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		return
	}
	d.logger.Debug().Msg("periodic refresh")
	d.refreshAll(ctx)
}

// ticket starts a new request for region r; only the latest ticket may render.
func (d *Dashboard) ticket(r view.Region) uint64 {
	d.renderMu.Lock()
	defer d.renderMu.Unlock()
	d.seq[r]++
	return d.seq[r]
}

// render writes n to region r if t is still the latest ticket for r. It
// reports whether the content was applied. The optional apply func runs under
// the same guard, so session state changes only alongside their render.
func (d *Dashboard) render(r view.Region, t uint64, n view.Node, apply func()) bool {
	d.renderMu.Lock()
	defer d.renderMu.Unlock()
	if d.seq[r] != t {
		d.logger.Debug().Str("region", string(r)).Msg("dropping stale response")
		return false
	}
	sink, ok := d.surface.Sink(r)
	if !ok {
		return false
	}
	if apply != nil {
		apply()
	}
	sink.Render(n)
	return true
}

func (d *Dashboard) hasRegion(r view.Region) bool {
	_, ok := d.surface.Sink(r)
	return ok
}

func (d *Dashboard) showControls() {
	for _, c := range view.ActionControls {
		if t, ok := d.surface.Toggle(c); ok {
			t.SetVisible(true)
		}
	}
}

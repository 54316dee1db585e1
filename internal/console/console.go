// Package console reads dashboard commands from a line-oriented input and
// dispatches them.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"StockWatcher/internal/recorder"
	"StockWatcher/internal/view"

	"github.com/rs/zerolog"
)

// Dashboard is the set of operations the console can trigger.
type Dashboard interface {
	SearchQuote(ctx context.Context, input string) error
	QuickSearch(ctx context.Context, symbol string) error
	ShowHistory(ctx context.Context) error
	AddToWatchlist(ctx context.Context) error
	RemoveFromWatchlist(ctx context.Context, symbol string) error
	AddToPortfolio(ctx context.Context) error
	Refresh(ctx context.Context)
}

// Controls reports which action controls are currently shown.
type Controls interface {
	Visible(view.Control) bool
}

// journalLimit is how many mutation events the journal command lists.
const journalLimit = 10

// ExampleSymbols are suggested in the help text.
var ExampleSymbols = []string{"AAPL", "GOOGL", "MSFT", "TSLA"}

// Loop reads one command per line.
type Loop struct {
	dash     Dashboard
	controls Controls
	journal  recorder.Reader
	in       *bufio.Reader
	out      io.Writer
	logger   zerolog.Logger
}

// NewLoop creates a command loop. in must be the same reader the dashboard's
// prompter uses. journal may be nil when no session journal is kept.
func NewLoop(dash Dashboard, controls Controls, journal recorder.Reader, in *bufio.Reader, out io.Writer, logger zerolog.Logger) *Loop {
	return &Loop{
		dash:     dash,
		controls: controls,
		journal:  journal,
		in:       in,
		out:      out,
		logger:   logger.With().Str("component", "console").Logger(),
	}
}

// Run processes commands until quit, EOF or ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	fmt.Fprintln(l.out, helpText())
	for {
		select {
		case <-ctx.Done():
			l.logger.Info().Msg("console stopped")
			return ctx.Err()
		default:
		}

		fmt.Fprint(l.out, "> ")
		line, err := l.in.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}

		reply, quit := l.HandleCommand(ctx, strings.TrimSpace(line))
		if reply != "" {
			fmt.Fprintln(l.out, reply)
		}
		if quit {
			return nil
		}
	}
}

// HandleCommand runs one command and returns a reply for the user. Errors
// from dashboard operations are already rendered, so they are only logged.
func (l *Loop) HandleCommand(ctx context.Context, line string) (reply string, quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	var err error
	switch cmd {
	case "search", "s":
		err = l.dash.SearchQuote(ctx, strings.Join(args, " "))
	case "open":
		if len(args) == 0 {
			return "usage: open <SYMBOL>", false
		}
		err = l.dash.QuickSearch(ctx, args[0])
	case "history", "h":
		if !l.controls.Visible(view.ControlHistory) {
			return "search for a stock first", false
		}
		err = l.dash.ShowHistory(ctx)
	case "watch", "w":
		if !l.controls.Visible(view.ControlWatchlist) {
			return "search for a stock first", false
		}
		err = l.dash.AddToWatchlist(ctx)
	case "unwatch":
		if len(args) == 0 {
			return "usage: unwatch <SYMBOL>", false
		}
		err = l.dash.RemoveFromWatchlist(ctx, args[0])
	case "buy", "b":
		if !l.controls.Visible(view.ControlPortfolio) {
			return "search for a stock first", false
		}
		err = l.dash.AddToPortfolio(ctx)
	case "refresh", "r":
		l.dash.Refresh(ctx)
	case "journal", "j":
		return l.journalReply(args), false
	case "help", "?":
		return helpText(), false
	case "quit", "exit", "q":
		return "bye", true
	default:
		return fmt.Sprintf("unknown command %q, type help", cmd), false
	}
	if err != nil {
		l.logger.Debug().Err(err).Str("command", cmd).Msg("command finished with error")
	}
	return "", false
}

func (l *Loop) journalReply(args []string) string {
	if l.journal == nil {
		return "journal disabled, set database.sqlite_path to keep one"
	}

	var lines []string
	if len(args) > 0 {
		symbol := strings.ToUpper(args[0])
		n, err := l.journal.CountQuotes(symbol)
		if err != nil {
			l.logger.Error().Err(err).Str("symbol", symbol).Msg("count quotes")
			return "journal unavailable"
		}
		lines = append(lines, fmt.Sprintf("%s: %d quotes recorded", symbol, n))
	}

	events, err := l.journal.RecentMutations(journalLimit)
	if err != nil {
		l.logger.Error().Err(err).Msg("recent mutations")
		return "journal unavailable"
	}
	if len(events) == 0 {
		lines = append(lines, "no changes recorded")
	}
	for _, evt := range events {
		line := fmt.Sprintf("%s  %-16s %-6s %-8s", evt.RecordedAt.Format("2006-01-02 15:04:05"), evt.EventType, evt.Symbol, evt.Outcome)
		if evt.Message != "" {
			line += " " + evt.Message
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func helpText() string {
	return strings.Join([]string{
		"commands:",
		"  search <SYMBOL>   look up a quote (e.g. " + strings.Join(ExampleSymbols, ", ") + ")",
		"  open <SYMBOL>     jump to a symbol from the watchlist or portfolio",
		"  history           price history of the current symbol",
		"  watch             add the current symbol to the watchlist",
		"  unwatch <SYMBOL>  remove a symbol from the watchlist",
		"  buy               add a position for the current symbol",
		"  refresh           reload watchlist and portfolio",
		"  journal [SYMBOL]  recent changes sent, and quotes seen for SYMBOL",
		"  quit",
	}, "\n")
}

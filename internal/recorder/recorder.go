package recorder

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteSnapshot holds a quote the dashboard rendered.
type QuoteSnapshot struct {
	Symbol        string
	Price         decimal.Decimal
	PreviousClose *decimal.Decimal
	Currency      string
	MarketState   string
}

// Event types for MutationEvent.
const (
	EventWatchlistAdd    = "WATCHLIST_ADD"
	EventWatchlistRemove = "WATCHLIST_REMOVE"
	EventPositionAdd     = "POSITION_ADD"
)

// Outcomes for MutationEvent.
const (
	OutcomeOK       = "OK"
	OutcomeRejected = "REJECTED"
	OutcomeFailed   = "FAILED"
)

// MutationEvent records a change the user sent to the backend.
type MutationEvent struct {
	EventType string
	Symbol    string
	Shares    decimal.Decimal
	Price     decimal.Decimal // purchase price or watchlist target
	Outcome   string
	Message   string

	RecordedAt time.Time // set when read back from the journal
}

// Recorder keeps a local journal of the session.
type Recorder interface {
	RecordQuote(snap *QuoteSnapshot) error
	RecordMutation(evt *MutationEvent) error
	Close() error
}

// Reader queries what the journal has stored.
type Reader interface {
	CountQuotes(symbol string) (int, error)
	RecentMutations(limit int) ([]MutationEvent, error)
}

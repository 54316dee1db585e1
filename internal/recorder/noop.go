package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordQuote(_ *QuoteSnapshot) error    { return nil }
func (n *NoopRecorder) RecordMutation(_ *MutationEvent) error { return nil }
func (n *NoopRecorder) Close() error                          { return nil }

func (n *NoopRecorder) CountQuotes(_ string) (int, error)              { return 0, nil }
func (n *NoopRecorder) RecentMutations(_ int) ([]MutationEvent, error) { return nil, nil }

package view

import "sync"

// Board is an in-memory Surface. It records the latest node per region and
// the visibility of each control, and notifies an optional observer.
type Board struct {
	mu       sync.Mutex
	regions  map[Region]bool
	content  map[Region]Node
	renders  map[Region]int
	visible  map[Control]bool
	input    string
	onRender func(Region, Node)
	onToggle func(Control, bool)
}

// NewBoard creates a board exposing the given regions. All controls exist and
// start hidden.
func NewBoard(regions ...Region) *Board {
	b := &Board{
		regions: make(map[Region]bool, len(regions)),
		content: make(map[Region]Node),
		renders: make(map[Region]int),
		visible: make(map[Control]bool),
	}
	for _, r := range regions {
		b.regions[r] = true
	}
	return b
}

// AllRegions lists every region the dashboard knows about.
func AllRegions() []Region {
	return []Region{RegionResult, RegionHistory, RegionWatchlist, RegionPortfolio}
}

// OnRender registers fn to be called after every render.
func (b *Board) OnRender(fn func(Region, Node)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onRender = fn
}

// OnToggle registers fn to be called after every visibility change.
func (b *Board) OnToggle(fn func(Control, bool)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onToggle = fn
}

func (b *Board) Sink(r Region) (Sink, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.regions[r] {
		return nil, false
	}
	return regionSink{board: b, region: r}, true
}

func (b *Board) Toggle(c Control) (Toggle, bool) {
	return controlToggle{board: b, control: c}, true
}

func (b *Board) Input() Input { return boardInput{board: b} }

// Content returns the latest node rendered into r.
func (b *Board) Content(r Region) (Node, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.content[r]
	return n, ok
}

// Renders returns how many times r has been rendered.
func (b *Board) Renders(r Region) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.renders[r]
}

// Visible reports whether c is shown.
func (b *Board) Visible(c Control) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible[c]
}

type regionSink struct {
	board  *Board
	region Region
}

func (s regionSink) Render(n Node) {
	b := s.board
	b.mu.Lock()
	b.content[s.region] = n
	b.renders[s.region]++
	fn := b.onRender
	b.mu.Unlock()
	if fn != nil {
		fn(s.region, n)
	}
}

type controlToggle struct {
	board   *Board
	control Control
}

func (t controlToggle) SetVisible(v bool) {
	b := t.board
	b.mu.Lock()
	changed := b.visible[t.control] != v
	b.visible[t.control] = v
	fn := b.onToggle
	b.mu.Unlock()
	if changed && fn != nil {
		fn(t.control, v)
	}
}

type boardInput struct {
	board *Board
}

func (i boardInput) Value() string {
	i.board.mu.Lock()
	defer i.board.mu.Unlock()
	return i.board.input
}

func (i boardInput) SetValue(v string) {
	i.board.mu.Lock()
	defer i.board.mu.Unlock()
	i.board.input = v
}

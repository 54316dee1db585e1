// Package view defines the render contract between the dashboard and its host:
// named regions receive whole node trees, controls are shown or hidden.
package view

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Region is a logical render target.
type Region string

const (
	RegionResult    Region = "result"
	RegionHistory   Region = "history"
	RegionWatchlist Region = "watchlist"
	RegionPortfolio Region = "portfolio"
)

// Control is a visibility-toggled action control.
type Control string

const (
	ControlHistory   Control = "historyBtn"
	ControlWatchlist Control = "watchlistBtn"
	ControlPortfolio Control = "portfolioBtn"
)

// ActionControls are revealed after a successful search.
var ActionControls = []Control{ControlHistory, ControlWatchlist, ControlPortfolio}

// ActionKind names what activating a node does.
type ActionKind string

const (
	ActionSearch ActionKind = "search"
	ActionRemove ActionKind = "remove"
)

// Action is an affordance attached to a node, e.g. click-to-search.
type Action struct {
	Kind   ActionKind
	Symbol string
}

// Node is one element of rendered content.
type Node struct {
	Class    string
	Text     string
	Action   *Action
	Children []Node
}

// Text builds a leaf node.
func Text(class, text string) Node {
	return Node{Class: class, Text: text}
}

// Group builds a container node.
func Group(class string, children ...Node) Node {
	return Node{Class: class, Children: children}
}

// WithAction returns a copy of n carrying the given action.
func (n Node) WithAction(kind ActionKind, symbol string) Node {
	n.Action = &Action{Kind: kind, Symbol: symbol}
	return n
}

// FindAll returns every node carrying the given class, depth-first.
func (n Node) FindAll(class string) []Node {
	var found []Node
	n.Walk(func(c Node) {
		if c.HasClass(class) {
			found = append(found, c)
		}
	})
	return found
}

// Walk visits n and all descendants depth-first.
func (n Node) Walk(fn func(Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// HasClass reports whether class is one of n's space-separated classes.
func (n Node) HasClass(class string) bool {
	for _, c := range strings.Fields(n.Class) {
		if c == class {
			return true
		}
	}
	return false
}

// Find returns the first node (depth-first) carrying the given class.
func (n Node) Find(class string) (Node, bool) {
	var found Node
	var ok bool
	n.Walk(func(c Node) {
		if !ok && c.HasClass(class) {
			found, ok = c, true
		}
	})
	return found, ok
}

// Sink receives the full contents of one region.
type Sink interface {
	Render(Node)
}

// Toggle shows or hides a control.
type Toggle interface {
	SetVisible(bool)
}

// Input is the symbol entry field.
type Input interface {
	Value() string
	SetValue(string)
}

// Surface resolves regions and controls. Lookups report absence; a host may
// omit regions it does not display.
type Surface interface {
	Sink(Region) (Sink, bool)
	Toggle(Control) (Toggle, bool)
	Input() Input
}

// Money formats a price as "$" plus two fraction digits.
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Percent formats a percentage with two fraction digits. Positive values get
// no leading plus.
func Percent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

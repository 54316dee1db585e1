// Package terminal hosts the dashboard on a text terminal: regions print as
// labelled blocks and dialogs read answers from a line reader.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"StockWatcher/internal/view"

	"github.com/fatih/color"
)

// Screen is a view.Surface that prints every render to out.
type Screen struct {
	*view.Board

	mu       sync.Mutex
	out      io.Writer
	positive *color.Color
	negative *color.Color
	errorC   *color.Color
	heading  *color.Color
	hint     *color.Color
}

var controlCommands = map[view.Control]string{
	view.ControlHistory:   "history",
	view.ControlWatchlist: "watch",
	view.ControlPortfolio: "buy",
}

// NewScreen creates a screen exposing the given regions.
func NewScreen(out io.Writer, noColor bool, regions ...view.Region) *Screen {
	s := &Screen{
		Board:    view.NewBoard(regions...),
		out:      out,
		positive: color.New(color.FgGreen),
		negative: color.New(color.FgRed),
		errorC:   color.New(color.FgRed, color.Bold),
		heading:  color.New(color.FgCyan, color.Bold),
		hint:     color.New(color.Faint),
	}
	if noColor {
		for _, c := range []*color.Color{s.positive, s.negative, s.errorC, s.heading, s.hint} {
			c.DisableColor()
		}
	}
	s.Board.OnRender(s.print)
	s.Board.OnToggle(s.announce)
	return s
}

func (s *Screen) print(r view.Region, n view.Node) {
	var b strings.Builder
	b.WriteString(s.heading.Sprintf("── %s ──", strings.ToUpper(string(r))))
	b.WriteByte('\n')
	s.writeNode(&b, n, 0)

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.out, b.String())
}

func (s *Screen) announce(c view.Control, visible bool) {
	cmd, ok := controlCommands[c]
	if !ok || !visible {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, s.hint.Sprintf("(%s available)", cmd))
}

// writeNode prints leaves on their own line, groups of leaves on one line,
// and nested groups indented.
func (s *Screen) writeNode(b *strings.Builder, n view.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if len(n.Children) == 0 {
		b.WriteString(indent)
		b.WriteString(s.leaf(n, ""))
		b.WriteByte('\n')
		return
	}
	if allLeaves(n.Children) {
		parts := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			parts = append(parts, s.leaf(c, n.Class))
		}
		b.WriteString(indent)
		b.WriteString(strings.Join(parts, "  "))
		b.WriteByte('\n')
		return
	}
	for _, c := range n.Children {
		s.writeNode(b, c, depth+1)
	}
}

func (s *Screen) leaf(n view.Node, parentClass string) string {
	text := n.Text
	probe := view.Node{Class: n.Class + " " + parentClass}
	switch {
	case probe.HasClass("error"):
		text = s.errorC.Sprint(text)
	case probe.HasClass("positive"), probe.HasClass("enabled"):
		text = s.positive.Sprint(text)
	case probe.HasClass("negative"):
		text = s.negative.Sprint(text)
	}
	if n.Action != nil {
		text += " " + s.hint.Sprint(actionHint(n.Action))
	}
	return text
}

func actionHint(a *view.Action) string {
	switch a.Kind {
	case view.ActionSearch:
		return "[open " + a.Symbol + "]"
	case view.ActionRemove:
		return "[unwatch " + a.Symbol + "]"
	default:
		return ""
	}
}

func allLeaves(nodes []view.Node) bool {
	for _, n := range nodes {
		if len(n.Children) > 0 {
			return false
		}
	}
	return true
}

package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Prompter answers dashboard dialogs from a line reader. It shares the reader
// with the command loop, so prompts consume the next input lines.
type Prompter struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading from in and writing to out.
func NewPrompter(in *bufio.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Prompt prints message and reads one line. ok is false on EOF or when ctx
// is already done.
func (p *Prompter) Prompt(ctx context.Context, message string) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "%s ", message)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// Confirm asks a yes/no question; anything but y/yes declines.
func (p *Prompter) Confirm(ctx context.Context, message string) bool {
	answer, ok := p.Prompt(ctx, message+" [y/N]")
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func (p *Prompter) Notify(_ context.Context, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "» %s\n", message)
}

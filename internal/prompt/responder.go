package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Responder answers a prompt synchronously.
type Responder interface {
	Respond(ctx context.Context, req Request) (bool, error)
}

// ResponderFunc adapts a function to Responder.
type ResponderFunc func(ctx context.Context, req Request) (bool, error)

// Respond implements Responder.
func (f ResponderFunc) Respond(ctx context.Context, req Request) (bool, error) {
	return f(ctx, req)
}

// Auto answers every confirmation with a fixed value. It backs --yes.
type Auto bool

// Respond implements Responder.
func (a Auto) Respond(_ context.Context, req Request) (bool, error) {
	if req.Kind == KindAlert {
		return true, nil
	}
	return bool(a), nil
}

// Console asks on a terminal: the question goes to Out and a y/N answer is
// read from In. Alerts are printed and resolve immediately.
//
// A Console keeps one buffered reader over In. A read cut short by context
// cancellation stays pending and its line answers the next prompt.
type Console struct {
	In  io.Reader
	Out io.Writer

	mu      sync.Mutex
	reader  *bufio.Reader
	pending chan string
}

// NewConsole returns a Console on stdin/stderr.
func NewConsole() *Console {
	return &Console{In: os.Stdin, Out: os.Stderr}
}

// Interactive reports whether f is a terminal that can be prompted.
func Interactive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// Respond implements Responder.
func (c *Console) Respond(ctx context.Context, req Request) (bool, error) {
	if req.Kind == KindAlert {
		fmt.Fprintln(c.Out, req.Title)
		if req.Message != "" {
			fmt.Fprintln(c.Out, req.Message)
		}
		return true, nil
	}

	if req.Message != "" {
		fmt.Fprintf(c.Out, "%s\n%s [y/N] ", req.Title, req.Message)
	} else {
		fmt.Fprintf(c.Out, "%s [y/N] ", req.Title)
	}

	answers := c.readLine()

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.Out)
		return false, ctx.Err()
	case line := <-answers:
		c.mu.Lock()
		c.pending = nil
		c.mu.Unlock()
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer == "y" || answer == "yes" {
			return true, nil
		}
		fmt.Fprintln(c.Out, "Canceled.")
		return false, nil
	}
}

// readLine returns the channel of the in-flight read, starting one if none
// is pending.
func (c *Console) readLine() <-chan string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		return c.pending
	}
	if c.reader == nil {
		c.reader = bufio.NewReader(c.In)
	}
	ch := make(chan string, 1)
	c.pending = ch
	r := c.reader
	go func() {
		line, _ := r.ReadString('\n')
		ch <- line
	}()
	return ch
}

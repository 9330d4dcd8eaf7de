// Package prompt coordinates confirmation and alert prompts. At most one
// prompt is open at a time and every prompt resolves exactly once.
package prompt

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/twiced-technology-gmbh/tasklist/internal/logging"
)

// DefaultDebounce is the minimum gap between two prompts opening.
const DefaultDebounce = 350 * time.Millisecond

// Kind distinguishes confirmations from alerts.
type Kind int

const (
	KindConfirm Kind = iota
	KindAlert
)

func (k Kind) String() string {
	if k == KindAlert {
		return "alert"
	}
	return "confirm"
}

// Variant is the visual weight of a prompt.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantDanger  Variant = "danger"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

// Request describes a prompt to show.
type Request struct {
	Kind        Kind
	Title       string
	Message     string
	ConfirmText string
	CancelText  string
	Variant     Variant
}

// Confirm builds a confirmation request.
func Confirm(title, message string, variant Variant) Request {
	return Request{Kind: KindConfirm, Title: title, Message: message, Variant: variant}.withDefaults()
}

// Alert builds an alert request.
func Alert(title, message string, variant Variant) Request {
	return Request{Kind: KindAlert, Title: title, Message: message, Variant: variant}.withDefaults()
}

func (r Request) withDefaults() Request {
	if r.Variant == "" {
		r.Variant = VariantDefault
		if r.Kind == KindAlert {
			r.Variant = VariantInfo
		}
	}
	if r.ConfirmText == "" {
		r.ConfirmText = "Confirm"
		if r.Kind == KindAlert {
			r.ConfirmText = "Ok"
		}
	}
	if r.CancelText == "" && r.Kind == KindConfirm {
		r.CancelText = "Cancel"
	}
	return r
}

// Coordinator is the single "a prompt may be open" token. The UI owns one
// and passes it to whatever needs to ask the user something.
type Coordinator struct {
	mu       sync.Mutex
	debounce time.Duration
	now      func() time.Time
	logger   *log.Logger
	open     *Ticket
	lastOpen time.Time
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) { c.debounce = d }
}

// WithClock overrides the clock used for the debounce window.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// WithLogger logs refused prompts at debug level.
func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// NewCoordinator returns an idle Coordinator.
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{
		debounce: DefaultDebounce,
		now:      time.Now,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Begin opens a prompt for req. It refuses, returning false, while another
// prompt is open or when the previous prompt opened less than the debounce
// window ago. A refused request counts as declined.
func (c *Coordinator) Begin(req Request) (*Ticket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !c.lastOpen.IsZero() && now.Sub(c.lastOpen) < c.debounce {
		c.logger.Debug("prompt refused: debounce", "title", req.Title)
		return nil, false
	}
	if c.open != nil {
		c.logger.Debug("prompt refused: busy", "title", req.Title, "open", c.open.req.Title)
		return nil, false
	}

	t := &Ticket{c: c, req: req.withDefaults(), done: make(chan struct{})}
	c.open = t
	c.lastOpen = now
	return t, true
}

// Current returns the open ticket, or nil.
func (c *Coordinator) Current() *Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Busy reports whether a prompt is open.
func (c *Coordinator) Busy() bool {
	return c.Current() != nil
}

// Ask opens req, lets r answer it and resolves the ticket with the answer.
// A refused Begin returns false without calling r. A responder error or a
// cancelled context resolves as declined.
func (c *Coordinator) Ask(ctx context.Context, r Responder, req Request) bool {
	t, ok := c.Begin(req)
	if !ok {
		return false
	}

	accepted, err := r.Respond(ctx, t.Request())
	if err != nil {
		c.logger.Debug("prompt responder failed", "title", req.Title, "err", err)
		accepted = false
	}
	t.Resolve(accepted)
	return t.Accepted()
}

// Ticket is one open prompt.
type Ticket struct {
	c        *Coordinator
	req      Request
	done     chan struct{}
	resolved bool
	accepted bool
}

// Request returns the prompt being shown.
func (t *Ticket) Request() Request {
	return t.req
}

// Resolve settles the prompt. Only the first call has an effect and it
// reports true; every later call reports false. Alerts always resolve as
// accepted. Resolving releases the coordinator.
func (t *Ticket) Resolve(accepted bool) bool {
	c := t.c
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.resolved {
		return false
	}
	t.resolved = true
	t.accepted = accepted || t.req.Kind == KindAlert
	if c.open == t {
		c.open = nil
	}
	close(t.done)
	return true
}

// Resolved reports whether the prompt has been settled.
func (t *Ticket) Resolved() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	return t.resolved
}

// Accepted reports the outcome. It is false until the prompt resolves.
func (t *Ticket) Accepted() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	return t.accepted
}

// Done is closed once the prompt resolves.
func (t *Ticket) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the prompt resolves and returns the outcome. If ctx is
// cancelled first the prompt resolves as declined.
func (t *Ticket) Wait(ctx context.Context) bool {
	select {
	case <-t.done:
	case <-ctx.Done():
		t.Resolve(false)
	}
	return t.Accepted()
}

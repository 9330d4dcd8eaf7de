package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCoordinator() (*Coordinator, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 8, 19, 10, 0, 0, 0, time.UTC)}
	return NewCoordinator(WithClock(clock.Now)), clock
}

func TestSecondPromptWhileOpenIsDeclined(t *testing.T) {
	g := NewWithT(t)
	c, clock := newTestCoordinator()

	first, ok := c.Begin(Confirm("Remove task?", "", VariantDanger))
	g.Expect(ok).To(BeTrue())
	g.Expect(c.Busy()).To(BeTrue())

	clock.Advance(time.Second)
	second, ok := c.Begin(Confirm("Complete task?", "", VariantDefault))
	g.Expect(ok).To(BeFalse())
	g.Expect(second).To(BeNil())
	g.Expect(c.Current()).To(BeIdenticalTo(first))
}

func TestDebounceWindow(t *testing.T) {
	g := NewWithT(t)
	c, clock := newTestCoordinator()

	first, ok := c.Begin(Alert("Empty title", "", ""))
	g.Expect(ok).To(BeTrue())
	g.Expect(first.Resolve(true)).To(BeTrue())

	clock.Advance(DefaultDebounce - time.Millisecond)
	_, ok = c.Begin(Alert("Empty title", "", ""))
	g.Expect(ok).To(BeFalse())

	clock.Advance(time.Millisecond)
	_, ok = c.Begin(Alert("Empty title", "", ""))
	g.Expect(ok).To(BeTrue())
}

func TestCustomDebounce(t *testing.T) {
	g := NewWithT(t)
	clock := &fakeClock{now: time.Unix(0, 0).Add(time.Hour)}
	c := NewCoordinator(WithClock(clock.Now), WithDebounce(0))

	tk, ok := c.Begin(Confirm("a", "", ""))
	g.Expect(ok).To(BeTrue())
	tk.Resolve(false)

	_, ok = c.Begin(Confirm("b", "", ""))
	g.Expect(ok).To(BeTrue())
}

func TestResolveExactlyOnce(t *testing.T) {
	g := NewWithT(t)
	c, _ := newTestCoordinator()

	tk, ok := c.Begin(Confirm("Complete task?", `"write docs"`, ""))
	g.Expect(ok).To(BeTrue())

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tk.Resolve(i%2 == 0) {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	g.Expect(wins.Load()).To(Equal(int32(1)))
	g.Expect(tk.Resolved()).To(BeTrue())
	g.Expect(c.Busy()).To(BeFalse())
	g.Expect(tk.Done()).To(BeClosed())
}

func TestFirstResolutionWins(t *testing.T) {
	g := NewWithT(t)
	c, _ := newTestCoordinator()

	tk, _ := c.Begin(Confirm("Remove task?", "", VariantDanger))
	g.Expect(tk.Resolve(false)).To(BeTrue())
	g.Expect(tk.Resolve(true)).To(BeFalse())
	g.Expect(tk.Accepted()).To(BeFalse())
}

func TestAlertResolvesAccepted(t *testing.T) {
	g := NewWithT(t)
	c, _ := newTestCoordinator()

	tk, _ := c.Begin(Alert("Empty title", "Type a task before saving.", VariantWarning))
	tk.Resolve(false)
	g.Expect(tk.Accepted()).To(BeTrue())
}

func TestWaitBlocksUntilResolved(t *testing.T) {
	g := NewWithT(t)
	c, _ := newTestCoordinator()
	tk, _ := c.Begin(Confirm("Complete task?", "", ""))

	result := make(chan bool, 1)
	go func() { result <- tk.Wait(context.Background()) }()

	g.Consistently(result, 50*time.Millisecond).ShouldNot(Receive())
	tk.Resolve(true)
	g.Eventually(result).Should(Receive(BeTrue()))
}

func TestWaitCancelledDeclines(t *testing.T) {
	g := NewWithT(t)
	c, _ := newTestCoordinator()
	tk, _ := c.Begin(Confirm("Remove task?", "", VariantDanger))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g.Expect(tk.Wait(ctx)).To(BeFalse())
	g.Expect(tk.Resolved()).To(BeTrue())
	g.Expect(c.Busy()).To(BeFalse())
}

func TestAsk(t *testing.T) {
	g := NewWithT(t)
	c, clock := newTestCoordinator()

	var calls int
	yes := ResponderFunc(func(_ context.Context, req Request) (bool, error) {
		calls++
		g.Expect(c.Busy()).To(BeTrue())
		g.Expect(req.ConfirmText).To(Equal("Confirm"))
		return true, nil
	})

	g.Expect(c.Ask(context.Background(), yes, Confirm("Complete task?", "", ""))).To(BeTrue())
	g.Expect(c.Busy()).To(BeFalse())

	// Inside the debounce window the responder is never consulted.
	g.Expect(c.Ask(context.Background(), yes, Confirm("again", "", ""))).To(BeFalse())
	g.Expect(calls).To(Equal(1))

	clock.Advance(time.Second)
	failing := ResponderFunc(func(context.Context, Request) (bool, error) {
		return true, errors.New("closed stdin")
	})
	g.Expect(c.Ask(context.Background(), failing, Confirm("x", "", ""))).To(BeFalse())
	g.Expect(c.Busy()).To(BeFalse())
}

func TestRequestDefaults(t *testing.T) {
	g := NewWithT(t)

	confirm := Confirm("t", "", "")
	g.Expect(confirm.Variant).To(Equal(VariantDefault))
	g.Expect(confirm.ConfirmText).To(Equal("Confirm"))
	g.Expect(confirm.CancelText).To(Equal("Cancel"))

	alert := Alert("t", "", "")
	g.Expect(alert.Kind.String()).To(Equal("alert"))
	g.Expect(alert.Variant).To(Equal(VariantInfo))
	g.Expect(alert.ConfirmText).To(Equal("Ok"))
	g.Expect(alert.CancelText).To(BeEmpty())
}

func TestAuto(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()

	ok, err := Auto(true).Respond(ctx, Confirm("x", "", ""))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeTrue())

	ok, _ = Auto(false).Respond(ctx, Confirm("x", "", ""))
	g.Expect(ok).To(BeFalse())

	ok, _ = Auto(false).Respond(ctx, Alert("x", "", ""))
	g.Expect(ok).To(BeTrue())
}

func TestConsole(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			g := NewWithT(t)
			var out bytes.Buffer
			c := &Console{In: strings.NewReader(tt.input), Out: &out}

			ok, err := c.Respond(context.Background(), Confirm("Remove task?", `"buy milk"`, VariantDanger))
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(ok).To(Equal(tt.want))
			g.Expect(out.String()).To(HavePrefix("Remove task?\n\"buy milk\" [y/N] "))
		})
	}
}

func TestConsoleKeepsBufferedInput(t *testing.T) {
	g := NewWithT(t)
	var out bytes.Buffer
	c := &Console{In: strings.NewReader("y\nn\n"), Out: &out}

	ok, err := c.Respond(context.Background(), Confirm("First?", "", VariantDefault))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeTrue())

	ok, err = c.Respond(context.Background(), Confirm("Second?", "", VariantDefault))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeFalse())
}

func TestConsoleCanceledReadAnswersNextPrompt(t *testing.T) {
	g := NewWithT(t)
	pr, pw := io.Pipe()
	defer pw.Close()
	c := &Console{In: pr, Out: io.Discard}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok, err := c.Respond(ctx, Confirm("First?", "", VariantDefault))
	g.Expect(err).To(MatchError(context.Canceled))
	g.Expect(ok).To(BeFalse())

	go func() { _, _ = pw.Write([]byte("yes\n")) }()
	ok, err = c.Respond(context.Background(), Confirm("Second?", "", VariantDefault))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeTrue())
}

func TestConsoleAlert(t *testing.T) {
	g := NewWithT(t)
	var out bytes.Buffer
	c := &Console{In: strings.NewReader(""), Out: &out}

	ok, err := c.Respond(context.Background(), Alert("Empty title", "Type a task before saving.", VariantWarning))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeTrue())
	g.Expect(out.String()).To(Equal("Empty title\nType a task before saving.\n"))
}

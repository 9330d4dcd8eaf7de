package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"github.com/twiced-technology-gmbh/tasklist/internal/slot"
)

type collector struct {
	mu    sync.Mutex
	calls [][]string
}

func (c *collector) add(keys []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, keys)
}

func (c *collector) snapshot() [][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]string(nil), c.calls...)
}

func TestWatcherReportsWatchedSlots(t *testing.T) {
	g := NewWithT(t)

	d, err := slot.OpenDir(t.TempDir())
	g.Expect(err).NotTo(HaveOccurred())

	var got collector
	w, err := New(d.Root(), []string{"theme-preference"}, got.add)
	g.Expect(err).NotTo(HaveOccurred())
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, nil)

	g.Expect(d.Set("todo-list:v1", "[]")).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(d.Root(), "notes.txt"), []byte("x"), 0o600)).To(Succeed())
	g.Expect(d.Set("theme-preference", "dark")).To(Succeed())
	g.Expect(d.Set("theme-preference", "light")).To(Succeed())

	g.Eventually(got.snapshot, 2*time.Second, 20*time.Millisecond).
		Should(ContainElement([]string{"theme-preference"}))
	g.Consistently(got.snapshot, 300*time.Millisecond, 50*time.Millisecond).
		Should(HaveEach(Equal([]string{"theme-preference"})))
}

func TestWatcherDebounceCollectsKeys(t *testing.T) {
	g := NewWithT(t)

	var got collector
	w := &Watcher{
		pending:  make(map[string]struct{}),
		delay:    10 * time.Millisecond,
		callback: got.add,
	}
	w.debounce("b")
	w.debounce("a")
	w.debounce("b")

	g.Eventually(got.snapshot).Should(Equal([][]string{{"a", "b"}}))
}

func TestNewMissingDir(t *testing.T) {
	g := NewWithT(t)
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, func([]string) {})
	g.Expect(err).To(HaveOccurred())
}

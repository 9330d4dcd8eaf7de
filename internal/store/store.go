// Package store holds the task collection in memory and mirrors it to a
// durable slot after every mutation.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/twiced-technology-gmbh/tasklist/internal/date"
	"github.com/twiced-technology-gmbh/tasklist/internal/logging"
	"github.com/twiced-technology-gmbh/tasklist/internal/slot"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

// Journal receives one call per successful mutation.
type Journal interface {
	Record(action, taskID, detail string)
}

// Journal actions.
const (
	ActionAdd    = "add"
	ActionToggle = "toggle"
	ActionEdit   = "edit"
	ActionRemove = "remove"
)

// Store is the ordered task collection, newest-created first. It is not
// safe for concurrent use; the UI drives it from a single goroutine.
type Store struct {
	slot    slot.Slot
	key     string
	tasks   []task.Task
	now     func() time.Time
	newID   func() string
	logger  *log.Logger
	journal Journal
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for createdAt/completedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides task id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithLogger sets the logger used for silent recoveries.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithJournal records every mutation in j.
func WithJournal(j Journal) Option {
	return func(s *Store) { s.journal = j }
}

// Open loads the collection stored under key. A missing slot starts empty.
// A malformed value is discarded and the store starts empty; that recovery
// is logged, not returned. Only a failing read is an error.
func Open(sl slot.Slot, key string, opts ...Option) (*Store, error) {
	s := &Store{
		slot:   sl,
		key:    key,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the slot, replacing the in-memory collection.
func (s *Store) Reload() error {
	raw, ok, err := s.slot.Get(s.key)
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		s.tasks = nil
		return nil
	}

	tasks, err := task.Decode([]byte(raw), s.stamp())
	if err != nil {
		s.logger.Debug("discarding malformed task slot", "key", s.key, "err", err)
		s.tasks = nil
		return nil
	}
	s.tasks = tasks
	return nil
}

// Key returns the slot key the collection is stored under.
func (s *Store) Key() string {
	return s.key
}

// Tasks returns a copy of the collection in stored order.
func (s *Store) Tasks() []task.Task {
	return task.Apply(s.tasks, task.FilterAll)
}

// View returns the tasks matching f in stored order.
func (s *Store) View(f task.Filter) []task.Task {
	return task.Apply(s.tasks, f)
}

// Counters returns total/pending/done for the whole collection.
func (s *Store) Counters() task.Counters {
	return task.Count(s.tasks)
}

// Find returns the task with the given id.
func (s *Store) Find(id string) (task.Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return task.Task{}, false
}

// Resolve maps a full id or a unique id prefix to a task id.
func (s *Store) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", task.NotFound(ref)
	}
	if s.index(ref) >= 0 {
		return ref, nil
	}
	var matches []string
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", task.NotFound(ref)
	case 1:
		return matches[0], nil
	default:
		return "", task.Ambiguous(ref, matches)
	}
}

// Add validates title, prepends a new pending task and persists.
func (s *Store) Add(title string) (task.Task, error) {
	clean, err := task.ValidateTitle(title)
	if err != nil {
		return task.Task{}, err
	}

	t := task.New(s.newID(), clean, s.stamp())
	s.tasks = append([]task.Task{t}, s.tasks...)

	if err := s.persist(); err != nil {
		return t, err
	}
	s.record(ActionAdd, t.ID, t.Title)
	return t, nil
}

// Toggle flips the completion state of id and persists. It reports false,
// without writing, when id is unknown.
func (s *Store) Toggle(id string) (task.Task, bool, error) {
	i := s.index(id)
	if i < 0 {
		return task.Task{}, false, nil
	}
	return s.SetCompleted(id, !s.tasks[i].Completed)
}

// SetCompleted moves id to the given completion state and persists. It
// reports false, without writing, when id is unknown or already in that
// state.
func (s *Store) SetCompleted(id string, completed bool) (task.Task, bool, error) {
	i := s.index(id)
	if i < 0 {
		return task.Task{}, false, nil
	}

	t := &s.tasks[i]
	if t.Completed == completed {
		return *t, false, nil
	}
	task.SetCompleted(t, completed, s.stamp())

	if err := s.persist(); err != nil {
		return *t, true, err
	}
	detail := "reopened"
	if completed {
		detail = "completed"
	}
	s.record(ActionToggle, t.ID, detail)
	return *t, true, nil
}

// Edit replaces the title of id and persists. An empty title is an error.
// It reports false, without writing, when id is unknown or the trimmed
// title equals the current one.
func (s *Store) Edit(id, title string) (bool, error) {
	clean, err := task.ValidateTitle(title)
	if err != nil {
		return false, err
	}

	i := s.index(id)
	if i < 0 || s.tasks[i].Title == clean {
		return false, nil
	}

	old := s.tasks[i].Title
	s.tasks[i].Title = clean

	if err := s.persist(); err != nil {
		return true, err
	}
	s.record(ActionEdit, id, old+" -> "+clean)
	return true, nil
}

// Remove deletes id and persists. It reports false, without writing, when
// id is unknown.
func (s *Store) Remove(id string) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}

	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)

	if err := s.persist(); err != nil {
		return true, err
	}
	s.record(ActionRemove, removed.ID, removed.Title)
	return true, nil
}

// ErrPersist wraps slot write failures. The in-memory change is kept.
var ErrPersist = errors.New("saving tasks")

func (s *Store) persist() error {
	data, err := task.Encode(s.tasks)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := s.slot.Set(s.key, string(data)); err != nil {
		s.logger.Warn("task slot write failed", "key", s.key, "err", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (s *Store) record(action, id, detail string) {
	s.logger.Debug("task mutation", "action", action, "id", id)
	if s.journal != nil {
		s.journal.Record(action, id, detail)
	}
}

func (s *Store) stamp() date.Millis {
	return date.FromTime(s.now())
}

func (s *Store) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

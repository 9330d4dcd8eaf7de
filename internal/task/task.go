// Package task defines the to-do record, its filters and counters, and the
// JSON codec used for the persisted collection.
package task

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/date"
)

// Task is one to-do item.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Completed   bool         `json:"completed"`
	CreatedAt   date.Millis  `json:"createdAt"`
	CompletedAt *date.Millis `json:"completedAt"`
}

// Filter selects which tasks a view shows. It is never persisted.
type Filter string

// Filter values, in the order the filter bar cycles through them.
const (
	FilterAll     Filter = "all"
	FilterPending Filter = "pending"
	FilterDone    Filter = "done"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterPending, FilterDone}

// ParseFilter converts user input to a Filter.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Filters {
		if f == known {
			return f, nil
		}
	}
	return "", clierr.Newf(clierr.InvalidFilter, "invalid filter %q", s).
		WithDetails(map[string]any{
			"filter":  s,
			"allowed": Filters,
		})
}

// Label returns the display label for the filter.
func (f Filter) Label() string {
	switch f {
	case FilterPending:
		return "Pending"
	case FilterDone:
		return "Done"
	default:
		return "All"
	}
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	return Filters[(f.index()+1)%len(Filters)]
}

// Prev returns the filter before f, wrapping around.
func (f Filter) Prev() Filter {
	return Filters[(f.index()-1+len(Filters))%len(Filters)]
}

func (f Filter) index() int {
	for i, known := range Filters {
		if f == known {
			return i
		}
	}
	return 0
}

// Match reports whether t belongs in a view filtered by f.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterDone:
		return t.Completed
	default:
		return true
	}
}

// Apply returns the tasks matching f in source order. The input is never
// modified and the result never aliases it.
func Apply(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// NewestFirst sorts tasks in place by creation time, newest first. Ties keep
// their relative order.
func NewestFirst(tasks []Task) {
	slices.SortStableFunc(tasks, func(x, y Task) int {
		return cmp.Compare(y.CreatedAt, x.CreatedAt)
	})
}

// Counters summarizes a collection.
type Counters struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Done    int `json:"done"`
}

// Count computes the counters for tasks.
func Count(tasks []Task) Counters {
	var c Counters
	c.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			c.Done++
		}
	}
	c.Pending = c.Total - c.Done
	return c
}

// Of returns the counter matching the filter (all → total).
func (c Counters) Of(f Filter) int {
	switch f {
	case FilterPending:
		return c.Pending
	case FilterDone:
		return c.Done
	default:
		return c.Total
	}
}

// Percent returns the rounded completion percentage, 0 for an empty collection.
func (c Counters) Percent() int {
	if c.Total == 0 {
		return 0
	}
	return int(math.Round(float64(c.Done) / float64(c.Total) * 100)) //nolint:mnd // percent
}

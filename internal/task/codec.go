package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/twiced-technology-gmbh/tasklist/internal/date"
)

// ErrMalformed is returned by Decode when the blob cannot be read as a task
// collection at all.
var ErrMalformed = errors.New("malformed task collection")

// Encode serializes the collection as a JSON array.
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encoding tasks: %w", err)
	}
	return data, nil
}

// Decode maps an untyped persisted blob to tasks. It never panics: the blob
// either decodes (with per-field repair) or Decode returns an error wrapping
// ErrMalformed.
//
// Repairs applied to each entry:
//   - id and title are coerced to text.
//   - completed is coerced by truthiness.
//   - createdAt falls back to now when it is not a number.
//   - completedAt is kept when it is a number on a completed entry,
//     otherwise it becomes now for completed entries and null for pending
//     ones, so every decoded task satisfies Consistent.
//
// Entries repeating an earlier id are dropped.
func Decode(raw []byte, now date.Millis) ([]Task, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after array", ErrMalformed)
	}

	entries, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an array, got %s", ErrMalformed, kindOf(doc))
	}

	tasks := make([]Task, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		obj, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d is %s, not an object", ErrMalformed, i, kindOf(e))
		}
		t := decodeEntry(obj, now)
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func decodeEntry(obj map[string]any, now date.Millis) Task {
	id, idOK := obj["id"]
	title, titleOK := obj["title"]
	t := Task{
		ID:        text(id, idOK),
		Title:     text(title, titleOK),
		Completed: truthy(obj["completed"]),
		CreatedAt: now,
	}

	if v, ok := number(obj["createdAt"], true); ok {
		t.CreatedAt = v
	}

	if t.Completed {
		at := now
		if v, ok := number(obj["completedAt"], false); ok {
			at = v
		}
		t.CompletedAt = &at
	}
	return t
}

// FieldText renders obj[name] the way Decode coerces text fields. Numbers
// are formatted, booleans spelled out, null becomes "null" and a missing
// field "undefined".
func FieldText(obj map[string]any, name string) string {
	v, ok := obj[name]
	return text(v, ok)
}

// text renders a decoded JSON value as a string.
func text(v any, present bool) string {
	if !present {
		return "undefined"
	}
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return formatNumber(x)
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

func formatNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}

// number reads a timestamp. Numeric strings are accepted only when
// allowText is set.
func number(v any, allowText bool) (date.Millis, bool) {
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return date.FromFloat(f)
	case string:
		if !allowText {
			return 0, false
		}
		m, err := date.Parse(x)
		if err != nil {
			return 0, false
		}
		return m, true
	default:
		return 0, false
	}
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case []any:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number:
		return "a number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Package doctor inspects a stored task collection without changing it.
// Load is lenient and silently repairs what it can; doctor reports what
// that repair would touch.
package doctor

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/twiced-technology-gmbh/tasklist/internal/date"
	"github.com/twiced-technology-gmbh/tasklist/internal/slot"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

//go:embed task.schema.json
var schemaJSON string

const schemaURL = "task.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("loading task schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// Issue is one schema violation.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Report describes the state of one task slot.
type Report struct {
	Key       string  `json:"key"`
	Present   bool    `json:"present"`
	Bytes     int     `json:"bytes"`
	Entries   int     `json:"entries"`
	Loaded    int     `json:"loaded"`
	Valid     bool    `json:"valid"`
	Malformed bool    `json:"malformed"`
	Issues    []Issue `json:"issues"`
}

// Repaired reports whether loading the slot changes what is stored.
func (r Report) Repaired() bool {
	return r.Present && !r.Valid && !r.Malformed
}

// Check reads key from sl and validates it. An error is returned only when
// the slot cannot be read or the schema cannot be compiled.
func Check(sl slot.Slot, key string, now time.Time) (Report, error) {
	rep := Report{Key: key, Valid: true, Issues: []Issue{}}

	raw, ok, err := sl.Get(key)
	if err != nil {
		return rep, fmt.Errorf("reading %s: %w", key, err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return rep, nil
	}
	rep.Present = true
	rep.Bytes = len(raw)

	schema, err := compileSchema()
	if err != nil {
		return rep, err
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		rep.Valid = false
		rep.Malformed = true
		rep.Issues = append(rep.Issues, Issue{Path: "/", Message: err.Error()})
		return rep, nil
	}

	if entries, ok := doc.([]any); ok {
		rep.Entries = len(entries)
		rep.Issues = append(rep.Issues, duplicateIDs(entries)...)
	}

	if err := schema.Validate(doc); err != nil {
		rep.Issues = append(rep.Issues, schemaIssues(err)...)
	}

	tasks, err := task.Decode(bytes.TrimSpace([]byte(raw)), date.FromTime(now))
	if err != nil {
		rep.Malformed = true
	}
	rep.Loaded = len(tasks)
	rep.Valid = len(rep.Issues) == 0 && !rep.Malformed
	return rep, nil
}

func duplicateIDs(entries []any) []Issue {
	var issues []Issue
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		obj, ok := e.(map[string]any)
		if !ok {
			continue
		}
		id := task.FieldText(obj, "id")
		if seen[id] {
			issues = append(issues, Issue{
				Path:    fmt.Sprintf("/%d/id", i),
				Message: fmt.Sprintf("duplicate id %q (entry is dropped on load)", id),
			})
		}
		seen[id] = true
	}
	return issues
}

func schemaIssues(err error) []Issue {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []Issue{{Path: "/", Message: err.Error()}}
	}
	var issues []Issue
	collect(ve, &issues)
	return issues
}

func collect(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) == 0 {
		path := ve.InstanceLocation
		if path == "" {
			path = "/"
		}
		*issues = append(*issues, Issue{Path: path, Message: ve.Message})
		return
	}
	for _, cause := range ve.Causes {
		collect(cause, issues)
	}
}

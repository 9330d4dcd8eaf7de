// Package journal records task mutations in a JSONL activity file kept next
// to the slots.
package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// FileName is the journal file inside the data directory.
	FileName = "activity.jsonl"

	fileMode   = 0o600
	maxEntries = 10000 // truncate oldest entries when the journal exceeds this size
)

// Entry is one journal line.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	TaskID    string    `json:"task_id"`
	Detail    string    `json:"detail"`
}

// Journal appends entries under a data directory.
type Journal struct {
	dir string
	now func() time.Time
}

// New returns a Journal writing to dir/activity.jsonl.
func New(dir string) *Journal {
	return &Journal{dir: dir, now: time.Now}
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	return filepath.Join(j.dir, FileName)
}

// Append writes entry to the journal. If the journal exceeds maxEntries,
// the oldest entries are truncated.
func (j *Journal) Append(entry Entry) error {
	path := j.Path()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode) //nolint:gosec // path from the data dir
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling journal entry: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing journal entry: %w", err)
	}

	// Best-effort; a journal that is a bit too long is harmless.
	_ = truncateIfNeeded(path)

	return nil
}

// Record appends an entry stamped with the current time. Errors are
// discarded because the journal must never fail a task mutation.
func (j *Journal) Record(action, taskID, detail string) {
	_ = j.Append(Entry{
		Timestamp: j.now(),
		Action:    action,
		TaskID:    taskID,
		Detail:    detail,
	})
}

// Tail returns up to limit of the most recent entries, oldest first.
// A limit <= 0 returns every entry. Lines that do not parse are skipped.
func (j *Journal) Tail(limit int) ([]Entry, error) {
	f, err := os.Open(j.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading journal: %w", err)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// truncateIfNeeded rewrites the journal keeping only the most recent
// maxEntries lines.
func truncateIfNeeded(path string) error {
	f, err := os.Open(path) //nolint:gosec // trusted path
	if err != nil {
		return err
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	_ = f.Close()

	if err := scanner.Err(); err != nil {
		return err
	}

	if len(lines) <= maxEntries {
		return nil
	}

	lines = lines[len(lines)-maxEntries:]

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(buf.String()), fileMode)
}

// Package output renders tasks, journal entries and errors for the CLI in
// table, compact, JSON or Markdown form.
package output

import (
	"os"
	"strings"
)

// Format selects how a command renders its result. The zero value is
// FormatTable.
type Format int

const (
	FormatTable Format = iota
	FormatJSON
	FormatCompact
)

// EnvVar selects the output format when no flag does.
const EnvVar = "TASKLIST_OUTPUT"

var formatNames = map[Format]string{
	FormatTable:   "table",
	FormatJSON:    "json",
	FormatCompact: "compact",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "table"
}

// ParseFormat maps a format name to a Format. "oneline" is accepted as an
// alias for compact.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, true
	case "compact", "oneline":
		return FormatCompact, true
	case "table":
		return FormatTable, true
	}
	return FormatTable, false
}

// Detect picks the format from the global flags, then TASKLIST_OUTPUT,
// falling back to table. JSON wins over compact, compact over table.
func Detect(jsonFlag, tableFlag, compactFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case compactFlag:
		return FormatCompact
	case tableFlag:
		return FormatTable
	}
	if f, ok := ParseFormat(os.Getenv(EnvVar)); ok {
		return f
	}
	return FormatTable
}

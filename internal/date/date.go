// Package date provides the millisecond timestamp type stored on tasks.
package date

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultLayout renders a timestamp as day/month/year hour:minute.
const DefaultLayout = "02/01/2006 15:04"

// Millis is a point in time as milliseconds since the Unix epoch.
// It marshals as a plain JSON number.
type Millis int64

// FromTime converts t to Millis.
func FromTime(t time.Time) Millis {
	return Millis(t.UnixMilli())
}

// Now returns the current time as Millis.
func Now() Millis {
	return FromTime(time.Now())
}

// Time returns m as a local time.Time.
func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m))
}

// Format renders m with the given time layout. An empty layout uses DefaultLayout.
func (m Millis) Format(layout string) string {
	if layout == "" {
		layout = DefaultLayout
	}
	return m.Time().Format(layout)
}

// String returns m formatted with DefaultLayout.
func (m Millis) String() string {
	return m.Format(DefaultLayout)
}

// FromFloat converts a JSON number to Millis. Non-finite values are rejected.
func FromFloat(f float64) (Millis, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return Millis(int64(f)), true
}

// Parse reads a timestamp written as decimal milliseconds.
func Parse(s string) (Millis, error) {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: expected milliseconds since epoch", s)
	}
	m, ok := FromFloat(f)
	if !ok {
		return 0, fmt.Errorf("invalid timestamp %q: out of range", s)
	}
	return m, nil
}

// Age formats a duration as a compact human-readable string.
// Examples: "<1m", "5m", "2h", "3d", "2w", "3mo", "1y".
func Age(d time.Duration) string {
	const (
		day   = 24 * time.Hour
		week  = 7 * day
		month = 30 * day
		year  = 365 * day
	)

	switch {
	case d < time.Minute:
		return "<1m"
	case d < time.Hour:
		return strconv.Itoa(int(d.Minutes())) + "m"
	case d < day:
		return strconv.Itoa(int(d.Hours())) + "h"
	case d < week:
		return strconv.Itoa(int(d/day)) + "d"
	case d < month:
		return strconv.Itoa(int(d/week)) + "w"
	case d < year:
		return strconv.Itoa(int(d/month)) + "mo"
	default:
		return strconv.Itoa(int(d/year)) + "y"
	}
}

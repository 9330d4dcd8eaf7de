package date

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTimeRoundTrip(t *testing.T) {
	ts := time.Date(2025, time.August, 19, 10, 42, 0, 0, time.Local)
	m := FromTime(ts)

	assert.Equal(t, ts.UnixMilli(), int64(m))
	assert.True(t, m.Time().Equal(ts))
	assert.Equal(t, "19/08/2025 10:42", m.String())
	assert.Equal(t, "2025-08-19", m.Format("2006-01-02"))
}

func TestParse(t *testing.T) {
	m, err := Parse(" 1724060520000 ")
	require.NoError(t, err)
	assert.Equal(t, Millis(1724060520000), m)

	_, err = Parse("yesterday")
	assert.Error(t, err)
}

func TestFromFloat(t *testing.T) {
	m, ok := FromFloat(1724060520000.7)
	assert.True(t, ok)
	assert.Equal(t, Millis(1724060520000), m)

	_, ok = FromFloat(math.NaN())
	assert.False(t, ok)
	_, ok = FromFloat(math.Inf(1))
	assert.False(t, ok)
	_, ok = FromFloat(1e300)
	assert.False(t, ok)
}

func TestAge(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "<1m"},
		{5 * time.Minute, "5m"},
		{2 * time.Hour, "2h"},
		{3 * 24 * time.Hour, "3d"},
		{15 * 24 * time.Hour, "2w"},
		{95 * 24 * time.Hour, "3mo"},
		{400 * 24 * time.Hour, "1y"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Age(tt.d), tt.d.String())
	}
}

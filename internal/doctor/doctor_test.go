package doctor

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/tasklist/internal/slot"
)

const key = "todo-list:v1"

var now = time.Date(2025, 8, 19, 10, 0, 0, 0, time.UTC)

func check(t *testing.T, value string) Report {
	t.Helper()
	mem := slot.NewMemory()
	require.NoError(t, mem.Set(key, value))
	rep, err := Check(mem, key, now)
	require.NoError(t, err)
	return rep
}

func paths(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Path)
	}
	return out
}

func TestCheckMissingSlot(t *testing.T) {
	rep, err := Check(slot.NewMemory(), key, now)
	require.NoError(t, err)
	assert.False(t, rep.Present)
	assert.True(t, rep.Valid)
	assert.False(t, rep.Repaired())
}

func TestCheckValidCollection(t *testing.T) {
	rep := check(t, `[
		{"id":"a","title":"write docs","completed":false,"createdAt":1724061600000,"completedAt":null},
		{"id":"b","title":"ship","completed":true,"createdAt":1724061600000,"completedAt":1724065200000}
	]`)
	assert.True(t, rep.Present)
	assert.True(t, rep.Valid, rep.Issues)
	assert.Empty(t, rep.Issues)
	assert.Equal(t, 2, rep.Entries)
	assert.Equal(t, 2, rep.Loaded)
}

func TestCheckRepairableEntry(t *testing.T) {
	rep := check(t, `[{"id":1,"title":"x","completed":true}]`)
	assert.False(t, rep.Valid)
	assert.False(t, rep.Malformed)
	assert.True(t, rep.Repaired())
	assert.Equal(t, 1, rep.Loaded)
	assert.Contains(t, paths(rep.Issues), "/0/id")
}

func TestCheckCompletionMismatch(t *testing.T) {
	rep := check(t, `[{"id":"a","title":"x","completed":false,"createdAt":1,"completedAt":5}]`)
	assert.False(t, rep.Valid)
	assert.Contains(t, paths(rep.Issues), "/0/completedAt")
}

func TestCheckDuplicateIDs(t *testing.T) {
	rep := check(t, `[
		{"id":"a","title":"first","completed":false,"createdAt":1,"completedAt":null},
		{"id":"a","title":"second","completed":false,"createdAt":2,"completedAt":null}
	]`)
	assert.False(t, rep.Valid)
	assert.Equal(t, 2, rep.Entries)
	assert.Equal(t, 1, rep.Loaded)
	assert.Equal(t, []string{"/1/id"}, paths(rep.Issues))
}

func TestCheckDuplicateIDsAfterCoercion(t *testing.T) {
	rep := check(t, `[
		{"id":1,"title":"number","completed":false,"createdAt":1,"completedAt":null},
		{"id":"1","title":"text","completed":false,"createdAt":2,"completedAt":null}
	]`)
	assert.False(t, rep.Valid)
	assert.Equal(t, 1, rep.Loaded)
	assert.Contains(t, paths(rep.Issues), "/1/id")
}

func TestCheckMalformed(t *testing.T) {
	for name, value := range map[string]string{
		"not json":   `{nope`,
		"object":     `{"id":"a"}`,
		"bad entry":  `["a"]`,
		"number doc": `42`,
	} {
		t.Run(name, func(t *testing.T) {
			rep := check(t, value)
			assert.False(t, rep.Valid)
			assert.True(t, rep.Malformed)
			assert.False(t, rep.Repaired())
			assert.Zero(t, rep.Loaded)
			assert.NotEmpty(t, rep.Issues)
		})
	}
}

type brokenSlot struct{ slot.Slot }

func (brokenSlot) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }

func TestCheckReadError(t *testing.T) {
	_, err := Check(brokenSlot{}, key, now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

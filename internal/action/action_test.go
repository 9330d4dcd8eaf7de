package action

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/prompt"
	"github.com/twiced-technology-gmbh/tasklist/internal/slot"
	"github.com/twiced-technology-gmbh/tasklist/internal/store"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

// scripted answers confirmations in order and records every request.
type scripted struct {
	answers []bool
	asked   []prompt.Request
}

func (s *scripted) Respond(_ context.Context, req prompt.Request) (bool, error) {
	s.asked = append(s.asked, req)
	if req.Kind == prompt.KindAlert || len(s.answers) == 0 {
		return true, nil
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

type fixture struct {
	slot  *slot.Memory
	store *store.Store
	svc   *Service
	resp  *scripted
	disp  *Dispatcher
}

func newFixture(t *testing.T, answers ...bool) *fixture {
	t.Helper()
	mem := slot.NewMemory()
	st, err := store.Open(mem, "todo-list:v1")
	require.NoError(t, err)

	resp := &scripted{answers: answers}
	coord := prompt.NewCoordinator(prompt.WithDebounce(0))
	return &fixture{
		slot:  mem,
		store: st,
		svc:   NewService(st),
		resp:  resp,
		disp:  NewDispatcher(coord, resp),
	}
}

func (f *fixture) add(t *testing.T, title string) task.Task {
	t.Helper()
	tk, err := f.svc.Add(title)
	require.NoError(t, err)
	return tk
}

func TestToggleAccepted(t *testing.T) {
	f := newFixture(t, true)
	tk := f.add(t, "write docs")
	before := time.Now().UnixMilli()

	in := f.svc.Toggle(tk.ID)
	require.NotNil(t, in)
	assert.Equal(t, "Complete task?", in.Prompt.Title)
	assert.Contains(t, in.Prompt.Message, `"write docs"`)

	res, ok, err := f.disp.Run(context.Background(), in)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, res.Changed)
	assert.True(t, res.Task.Completed)
	require.NotNil(t, res.Task.CompletedAt)
	assert.GreaterOrEqual(t, int64(*res.Task.CompletedAt), before)

	reopen := f.svc.Toggle(tk.ID)
	require.NotNil(t, reopen)
	assert.Equal(t, "Reopen task?", reopen.Prompt.Title)
}

func TestToggleAppliesDirectionShownInPrompt(t *testing.T) {
	f := newFixture(t, true)
	tk := f.add(t, "write docs")

	in := f.svc.Toggle(tk.ID)
	require.Equal(t, "Complete task?", in.Prompt.Title)

	// The task is completed by someone else before the answer arrives.
	_, _, err := f.store.Toggle(tk.ID)
	require.NoError(t, err)

	res, ok, err := f.disp.Run(context.Background(), in)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, res.Changed)
	assert.True(t, res.Task.Completed)

	got, _ := f.store.Find(tk.ID)
	assert.True(t, got.Completed)
}

func TestEditRechecksCompletionOnApply(t *testing.T) {
	f := newFixture(t, true)
	tk := f.add(t, "draft")

	in, err := f.svc.Edit(tk.ID, "final")
	require.NoError(t, err)
	require.NotNil(t, in)

	_, _, err = f.store.Toggle(tk.ID)
	require.NoError(t, err)

	_, _, err = f.disp.Run(context.Background(), in)
	assert.True(t, clierr.HasCode(err, clierr.TaskCompleted), err)
	got, _ := f.store.Find(tk.ID)
	assert.Equal(t, "draft", got.Title)
}

func TestToggleDeclinedLeavesTaskUnchanged(t *testing.T) {
	f := newFixture(t, false)
	tk := f.add(t, "write docs")
	writes := f.slot.Writes()

	_, ok, err := f.disp.Run(context.Background(), f.svc.Toggle(tk.ID))
	require.NoError(t, err)
	assert.False(t, ok)

	got, _ := f.store.Find(tk.ID)
	assert.Equal(t, tk, got)
	assert.Equal(t, writes, f.slot.Writes())
}

func TestToggleUnknownHasNoIntent(t *testing.T) {
	f := newFixture(t)
	assert.Nil(t, f.svc.Toggle("missing"))

	_, ok, err := f.disp.Run(context.Background(), nil)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, f.resp.asked)
}

func TestEditUnchangedTitleAsksNothing(t *testing.T) {
	f := newFixture(t, true)
	tk := f.add(t, "same")
	writes := f.slot.Writes()

	in, err := f.svc.Edit(tk.ID, "  same ")
	require.NoError(t, err)
	assert.Nil(t, in)

	_, _, err = f.disp.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, f.resp.asked)
	assert.Equal(t, writes, f.slot.Writes())
}

func TestEditNamesOldAndNewTitles(t *testing.T) {
	f := newFixture(t, true)
	tk := f.add(t, "draft")

	in, err := f.svc.Edit(tk.ID, "final")
	require.NoError(t, err)
	require.NotNil(t, in)
	assert.Equal(t, `Rename "draft" to "final"?`, in.Prompt.Message)

	res, ok, err := f.disp.Run(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "final", res.Task.Title)
}

func TestEditValidation(t *testing.T) {
	f := newFixture(t, true, true)
	tk := f.add(t, "x")

	_, err := f.svc.Edit(tk.ID, "  ")
	assert.True(t, clierr.HasCode(err, clierr.InvalidInput))

	_, _, err = f.disp.Run(context.Background(), f.svc.Toggle(tk.ID))
	require.NoError(t, err)

	_, err = f.svc.Edit(tk.ID, "y")
	assert.True(t, clierr.HasCode(err, clierr.TaskCompleted))

	assert.True(t, f.disp.Warn(context.Background(), err))
	last := f.resp.asked[len(f.resp.asked)-1]
	assert.Equal(t, prompt.KindAlert, last.Kind)
	assert.Equal(t, "Task is completed", last.Title)
}

func TestRemove(t *testing.T) {
	f := newFixture(t, false, true)
	tk := f.add(t, "buy milk")
	f.add(t, "other")

	in := f.svc.Remove(tk.ID)
	assert.Equal(t, prompt.VariantDanger, in.Prompt.Variant)
	assert.Contains(t, in.Prompt.Message, `"buy milk"`)

	_, ok, err := f.disp.Run(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, f.store.Tasks(), 2)

	res, ok, err := f.disp.Run(context.Background(), f.svc.Remove(tk.ID))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, res.Changed)
	assert.Len(t, f.store.Tasks(), 1)
}

func TestRemoveGoneTaskUsesGenericName(t *testing.T) {
	f := newFixture(t, true)
	in := f.svc.Remove("gone")
	assert.Contains(t, in.Prompt.Message, "this task")

	res, ok, err := f.disp.Run(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, res.Changed)
	assert.Equal(t, 0, f.slot.Writes())
}

func TestIntentAppliesOnce(t *testing.T) {
	f := newFixture(t)
	tk := f.add(t, "x")

	in := f.svc.Toggle(tk.ID)
	_, err := in.Apply()
	require.NoError(t, err)
	res, err := in.Apply()
	require.NoError(t, err)
	assert.False(t, res.Changed)

	got, _ := f.store.Find(tk.ID)
	assert.True(t, got.Completed)
}

func TestAddEmptyWarns(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Add(" ")
	require.Error(t, err)

	assert.True(t, f.disp.Warn(context.Background(), err))
	require.Len(t, f.resp.asked, 1)
	assert.Equal(t, "Empty title", f.resp.asked[0].Title)
	assert.Empty(t, f.store.Tasks())

	assert.False(t, f.disp.Warn(context.Background(), assert.AnError))
}

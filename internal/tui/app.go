// Package tui implements the terminal UI for tasklist.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/twiced-technology-gmbh/tasklist/internal/action"
	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/logging"
	"github.com/twiced-technology-gmbh/tasklist/internal/prompt"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
	"github.com/twiced-technology-gmbh/tasklist/internal/theme"
)

// mode is what the keyboard is currently driving.
type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

const (
	titleCharLimit = 200
	tickInterval   = 30 * time.Second // how often ages refresh
)

// ReloadMsg tells the app the task slot changed on disk.
type ReloadMsg struct{}

// ThemeChangedMsg tells the app the theme slot changed on disk.
type ThemeChangedMsg struct{}

// TickMsg refreshes relative timestamps.
type TickMsg struct{}

// Options configures an App.
type Options struct {
	Filter     task.Filter
	DateLayout string
	Logger     *log.Logger
	Now        func() time.Time
}

// App is the top-level bubbletea model.
type App struct {
	svc    *action.Service
	coord  *prompt.Coordinator
	pref   *theme.Preference
	styles theme.Styles
	logger *log.Logger
	now    func() time.Time
	layout string

	keys       keyMap
	dialogKeys dialogKeys
	formKeys   formKeys
	help       help.Model
	input      textinput.Model
	editor     textinput.Model
	progress   progress.Model

	mode    mode
	filter  task.Filter
	cursor  int
	editID  string
	ticket  *prompt.Ticket
	pending *action.Intent
	err     error
	width   int
	height  int
}

// New creates the app model.
func New(svc *action.Service, coord *prompt.Coordinator, pref *theme.Preference, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Filter == "" {
		opts.Filter = task.FilterAll
	}

	input := textinput.New()
	input.Placeholder = "What needs to be done?"
	input.CharLimit = titleCharLimit
	input.Prompt = "+ "

	editor := textinput.New()
	editor.CharLimit = titleCharLimit
	editor.Prompt = "✎ "

	a := &App{
		svc:        svc,
		coord:      coord,
		pref:       pref,
		logger:     opts.Logger,
		now:        opts.Now,
		layout:     opts.DateLayout,
		keys:       defaultKeyMap(),
		dialogKeys: defaultDialogKeys(),
		formKeys:   defaultFormKeys(),
		help:       help.New(),
		input:      input,
		editor:     editor,
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		filter:     opts.Filter,
	}
	a.applyTheme(pref.Load())
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return TickMsg{} })
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.progress.Width = max(msg.Width/3, 10) //nolint:mnd // a third of the screen, at least 10 cells
		return a, nil
	case ReloadMsg:
		if err := a.svc.Store().Reload(); err != nil {
			a.err = err
		}
		a.clampCursor()
		return a, nil
	case ThemeChangedMsg:
		a.applyTheme(a.pref.Observed())
		return a, nil
	case TickMsg:
		return a, tickCmd()
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// An open prompt captures every key until it resolves.
	if a.ticket != nil {
		a.handleDialogKey(msg)
		return a, nil
	}

	switch a.mode {
	case modeAdd:
		return a.handleAddKey(msg)
	case modeEdit:
		return a.handleEditKey(msg)
	default:
		return a.handleListKey(msg)
	}
}

func (a *App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.err = nil

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.visible())-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Add):
		a.mode = modeAdd
		a.input.Reset()
		return a, a.input.Focus()
	case key.Matches(msg, a.keys.Toggle):
		if t, ok := a.selected(); ok {
			a.ask(a.svc.Toggle(t.ID))
		}
	case key.Matches(msg, a.keys.Edit):
		if t, ok := a.selected(); ok {
			return a, a.startEdit(t)
		}
	case key.Matches(msg, a.keys.Remove):
		if t, ok := a.selected(); ok {
			a.ask(a.svc.Remove(t.ID))
		}
	case key.Matches(msg, a.keys.PrevFilter):
		a.setFilter(a.filter.Prev())
	case key.Matches(msg, a.keys.NextFilter):
		a.setFilter(a.filter.Next())
	case key.Matches(msg, a.keys.FilterAll):
		a.setFilter(task.FilterAll)
	case key.Matches(msg, a.keys.FilterPend):
		a.setFilter(task.FilterPending)
	case key.Matches(msg, a.keys.FilterDone):
		a.setFilter(task.FilterDone)
	case key.Matches(msg, a.keys.Theme):
		a.toggleTheme()
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

func (a *App) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.formKeys.Cancel):
		a.mode = modeList
		a.input.Blur()
		a.input.Reset()
		return a, nil
	case key.Matches(msg, a.formKeys.Submit):
		t, err := a.svc.Add(a.input.Value())
		if err != nil {
			a.fail(err)
			return a, nil
		}
		a.input.Reset()
		a.selectID(t.ID)
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) startEdit(t task.Task) tea.Cmd {
	if err := task.ValidateEditable(t); err != nil {
		a.warn(err)
		return nil
	}
	a.mode = modeEdit
	a.editID = t.ID
	a.editor.SetValue(t.Title)
	a.editor.CursorEnd()
	return a.editor.Focus()
}

func (a *App) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.formKeys.Cancel):
		a.stopEdit()
		return a, nil
	case key.Matches(msg, a.formKeys.Submit):
		in, err := a.svc.Edit(a.editID, a.editor.Value())
		if err != nil {
			a.fail(err)
			return a, nil
		}
		if in == nil {
			a.stopEdit()
			return a, nil
		}
		a.ask(in)
		return a, nil
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return a, cmd
}

func (a *App) stopEdit() {
	a.mode = modeList
	a.editID = ""
	a.editor.Blur()
	a.editor.Reset()
}

// ask opens the confirmation for in. A refused prompt drops the intent, the
// same as a declined one.
func (a *App) ask(in *action.Intent) {
	if in == nil {
		return
	}
	t, ok := a.coord.Begin(in.Prompt)
	if !ok {
		a.logger.Debug("prompt refused", "kind", in.Kind, "task", in.TaskID)
		return
	}
	a.ticket = t
	a.pending = in
}

// warn opens the alert for a validation error.
func (a *App) warn(err error) {
	req, ok := action.WarningFor(err)
	if !ok {
		a.err = err
		return
	}
	if t, ok := a.coord.Begin(req); ok {
		a.ticket = t
		a.pending = nil
	}
}

// fail routes err to an alert when it is a validation error and to the
// status line otherwise.
func (a *App) fail(err error) {
	if clierr.HasCode(err, clierr.InvalidInput, clierr.TaskCompleted) {
		a.warn(err)
		return
	}
	a.logger.Warn("task operation failed", "err", err)
	a.err = err
}

func (a *App) handleDialogKey(msg tea.KeyMsg) {
	var accepted bool
	switch {
	case key.Matches(msg, a.dialogKeys.Accept):
		accepted = true
	case key.Matches(msg, a.dialogKeys.Decline):
		accepted = false
	default:
		return
	}
	a.resolve(accepted)
}

// resolve settles the open prompt and, on acceptance, applies the pending
// intent.
func (a *App) resolve(accepted bool) {
	t, in := a.ticket, a.pending
	a.ticket, a.pending = nil, nil
	if t == nil || !t.Resolve(accepted) || !t.Accepted() || in == nil {
		return
	}

	if _, err := in.Apply(); err != nil {
		a.fail(err)
	}
	if in.Kind == action.KindEdit {
		a.stopEdit()
	}
	a.clampCursor()
}

func (a *App) toggleTheme() {
	next := a.styles.Name.Toggle()
	if err := a.pref.Save(next); err != nil {
		a.logger.Warn("saving theme failed", "err", err)
		a.err = err
	}
	a.applyTheme(next)
}

func (a *App) applyTheme(n theme.Name) {
	a.styles = theme.For(n)
	a.help.Styles.ShortKey = a.styles.Text
	a.help.Styles.ShortDesc = a.styles.Dim
	a.help.Styles.FullKey = a.styles.Text
	a.help.Styles.FullDesc = a.styles.Dim
}

func (a *App) setFilter(f task.Filter) {
	a.filter = f
	a.cursor = 0
}

// visible returns the filtered view, newest-created first.
func (a *App) visible() []task.Task {
	tasks := a.svc.Store().View(a.filter)
	task.NewestFirst(tasks)
	return tasks
}

func (a *App) selected() (task.Task, bool) {
	tasks := a.visible()
	if a.cursor < 0 || a.cursor >= len(tasks) {
		return task.Task{}, false
	}
	return tasks[a.cursor], true
}

func (a *App) selectID(id string) {
	for i, t := range a.visible() {
		if t.ID == id {
			a.cursor = i
			return
		}
	}
	a.clampCursor()
}

func (a *App) clampCursor() {
	n := len(a.visible())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// Theme returns the active theme name.
func (a *App) Theme() theme.Name {
	return a.styles.Name
}

// Filter returns the active filter.
func (a *App) Filter() task.Filter {
	return a.filter
}

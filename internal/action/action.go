// Package action turns user requests into confirmation-gated store
// mutations. Validation happens when an Intent is built; the mutation
// happens only when the Intent is applied after the user accepts.
package action

import (
	"context"
	"errors"
	"fmt"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/prompt"
	"github.com/twiced-technology-gmbh/tasklist/internal/store"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

// Kind names the mutation an Intent performs.
type Kind string

const (
	KindToggle Kind = "toggle"
	KindEdit   Kind = "edit"
	KindRemove Kind = "remove"
)

// Result is what applying an Intent produced.
type Result struct {
	Kind    Kind
	Task    task.Task
	Changed bool
}

// Intent is a validated mutation waiting for confirmation.
type Intent struct {
	Kind    Kind
	TaskID  string
	Prompt  prompt.Request
	apply   func() (Result, error)
	applied bool
}

// Apply performs the mutation. A second call is a no-op.
func (i *Intent) Apply() (Result, error) {
	if i.applied {
		return Result{Kind: i.Kind}, nil
	}
	i.applied = true
	return i.apply()
}

// Service builds intents against a store.
type Service struct {
	store *store.Store
}

// NewService returns a Service for s.
func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// Store returns the underlying store.
func (s *Service) Store() *store.Store {
	return s.store
}

// Add creates a task straight away; adding needs no confirmation.
func (s *Service) Add(title string) (task.Task, error) {
	return s.store.Add(title)
}

// Toggle returns an intent that moves id to the opposite of its current
// completion state, or nil when id is unknown.
func (s *Service) Toggle(id string) *Intent {
	t, ok := s.store.Find(id)
	if !ok {
		return nil
	}

	target := !t.Completed
	title, verb := "Complete task?", "Mark %q as done?"
	if !target {
		title, verb = "Reopen task?", "Mark %q as pending again?"
	}

	return &Intent{
		Kind:   KindToggle,
		TaskID: id,
		Prompt: prompt.Request{
			Kind:        prompt.KindConfirm,
			Title:       title,
			Message:     fmt.Sprintf(verb, t.Title),
			ConfirmText: "Yes",
			CancelText:  "No",
			Variant:     prompt.VariantDefault,
		},
		apply: func() (Result, error) {
			// The state confirmed is the one applied, even if another
			// process flipped the task while the prompt was open.
			updated, changed, err := s.store.SetCompleted(id, target)
			return Result{Kind: KindToggle, Task: updated, Changed: changed}, err
		},
	}
}

// Edit returns an intent that renames id. An empty title and an edit of a
// completed task are errors. It returns nil, nil when id is unknown or the
// title would not change.
func (s *Service) Edit(id, title string) (*Intent, error) {
	clean, err := task.ValidateTitle(title)
	if err != nil {
		return nil, err
	}

	t, ok := s.store.Find(id)
	if !ok || t.Title == clean {
		return nil, nil
	}
	if err := task.ValidateEditable(t); err != nil {
		return nil, err
	}

	return &Intent{
		Kind:   KindEdit,
		TaskID: id,
		Prompt: prompt.Request{
			Kind:        prompt.KindConfirm,
			Title:       "Save changes?",
			Message:     fmt.Sprintf("Rename %q to %q?", t.Title, clean),
			ConfirmText: "Save",
			CancelText:  "Cancel",
			Variant:     prompt.VariantInfo,
		},
		apply: func() (Result, error) {
			if cur, ok := s.store.Find(id); ok {
				if err := task.ValidateEditable(cur); err != nil {
					return Result{Kind: KindEdit, Task: cur}, err
				}
			}
			changed, err := s.store.Edit(id, clean)
			updated, _ := s.store.Find(id)
			return Result{Kind: KindEdit, Task: updated, Changed: changed}, err
		},
	}, nil
}

// Remove returns an intent that deletes id. The prompt names the task, or
// "this task" when it is already gone; applying is then a no-op.
func (s *Service) Remove(id string) *Intent {
	name := "this task"
	t, ok := s.store.Find(id)
	if ok {
		name = fmt.Sprintf("%q", t.Title)
	}

	return &Intent{
		Kind:   KindRemove,
		TaskID: id,
		Prompt: prompt.Request{
			Kind:        prompt.KindConfirm,
			Title:       "Remove task?",
			Message:     fmt.Sprintf("Remove %s? This cannot be undone.", name),
			ConfirmText: "Remove",
			CancelText:  "Cancel",
			Variant:     prompt.VariantDanger,
		},
		apply: func() (Result, error) {
			removed, err := s.store.Remove(id)
			return Result{Kind: KindRemove, Task: t, Changed: removed}, err
		},
	}
}

// WarningFor maps a validation error to the alert shown to the user. It
// returns false for errors that are not user-facing validation failures.
func WarningFor(err error) (prompt.Request, bool) {
	var ce *clierr.Error
	if !errors.As(err, &ce) {
		return prompt.Request{}, false
	}
	switch ce.Code {
	case clierr.InvalidInput:
		return prompt.Alert("Empty title", "Type a task before saving.", prompt.VariantWarning), true
	case clierr.TaskCompleted:
		return prompt.Alert("Task is completed", "Reopen the task to edit its title.", prompt.VariantWarning), true
	default:
		return prompt.Request{}, false
	}
}

// Dispatcher runs intents through a coordinator and a blocking responder.
type Dispatcher struct {
	coord     *prompt.Coordinator
	responder prompt.Responder
}

// NewDispatcher returns a Dispatcher.
func NewDispatcher(coord *prompt.Coordinator, r prompt.Responder) *Dispatcher {
	return &Dispatcher{coord: coord, responder: r}
}

// Run asks for confirmation and applies the intent on acceptance. A nil
// intent, a refused prompt and a declined prompt all return a zero Result
// and no error.
func (d *Dispatcher) Run(ctx context.Context, in *Intent) (Result, bool, error) {
	if in == nil {
		return Result{}, false, nil
	}
	if !d.coord.Ask(ctx, d.responder, in.Prompt) {
		return Result{Kind: in.Kind}, false, nil
	}
	res, err := in.Apply()
	return res, true, err
}

// Warn shows the alert for a validation error. It reports whether err was
// a validation failure.
func (d *Dispatcher) Warn(ctx context.Context, err error) bool {
	req, ok := WarningFor(err)
	if !ok {
		return false
	}
	d.coord.Ask(ctx, d.responder, req)
	return true
}

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/opsdeck/internal/backend"
	"github.com/opsdeck/opsdeck/internal/workflow"
)

// Screen is the navigation-level contract: a navigable full-surface UI
// state. A screen may embed zero or more forms; it owns its active form
// exclusively and drops it when the form completes or is cancelled.
type Screen interface {
	// Name is the stable display identifier used in the breadcrumb.
	Name() string

	// View renders the screen body. Pure: rendering mutates no state and
	// is idempotent for a given internal state.
	View(width, height int) string

	// CommandKeys are the action bindings the screen advertises right
	// now. Recomputed on each query; they change as form state changes.
	CommandKeys() []key.Binding

	// ToggleKeys are the mode/flag bindings the screen advertises.
	ToggleKeys() []key.Binding

	// OnEvent is the single state-transition entry point.
	OnEvent(msg tea.Msg) Feedback
}

// FeedbackKind enumerates the navigation effect of one processed event.
type FeedbackKind int

const (
	// FeedbackNone means the event was consumed with no navigation effect.
	FeedbackNone FeedbackKind = iota
	// FeedbackPush pushes a new screen onto the navigation stack.
	FeedbackPush
	// FeedbackPop removes the active screen; popping the root quits.
	FeedbackPop
	// FeedbackRedirect replaces the active screen.
	FeedbackRedirect
)

// Feedback is the result of a screen processing one event. A task may
// accompany any navigation effect: a completed form can both dispatch
// work and change screens.
type Feedback struct {
	Kind   FeedbackKind
	Screen Screen // destination for push/redirect

	Task  *backend.Task
	Block bool

	// Cmd requests asynchronous work from the runtime (discovery scans
	// and the like); its message is delivered back through OnEvent.
	Cmd tea.Cmd
}

// None reports a consumed event with no navigation effect.
func None() Feedback { return Feedback{Kind: FeedbackNone} }

// Push requests the given screen be pushed onto the stack.
func Push(s Screen) Feedback { return Feedback{Kind: FeedbackPush, Screen: s} }

// Pop requests the active screen be removed.
func Pop() Feedback { return Feedback{Kind: FeedbackPop} }

// RedirectTo requests the active screen be replaced.
func RedirectTo(s Screen) Feedback { return Feedback{Kind: FeedbackRedirect, Screen: s} }

// WithTask attaches a dispatched task to the feedback.
func (f Feedback) WithTask(t backend.Task, block bool) Feedback {
	f.Task = &t
	f.Block = block
	return f
}

// WithCmd attaches an asynchronous command to the feedback.
func (f Feedback) WithCmd(cmd tea.Cmd) Feedback {
	f.Cmd = cmd
	return f
}

// TaskResultMsg delivers a backend completion notification into the
// event stream. The application loop re-routes it to the active screen
// after clearing the blocked state.
type TaskResultMsg backend.Result

// feedbackFromForm is the single translation point between form statuses
// and screen feedback for screens that keep an inline form: Done becomes
// a task hand-off, Exit and Redirect drop the form (Exit stays on the
// screen, Redirect replaces it). The second return reports whether the
// embedded form must be dropped.
func feedbackFromForm(fs workflow.FormStatus) (Feedback, bool) {
	switch fs.Kind {
	case workflow.FormDone:
		return None().WithTask(fs.Task, fs.Block), true
	case workflow.FormExit:
		return None(), true
	case workflow.FormRedirect:
		if dest, ok := fs.Next.(Screen); ok {
			return RedirectTo(dest), true
		}
		return None(), true
	}
	return None(), false
}

// formProgress renders the "step x/y" fragment for form chrome.
func formProgress(r workflow.Runner) string {
	return fmt.Sprintf("%s — %s (step %d/%d)",
		r.FormName(), r.StepName(), r.StepIndex()+1, r.StepsNumber())
}

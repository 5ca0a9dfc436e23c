package workflow

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/opsdeck/internal/backend"
)

// Controller supplies a fixed-shape form's metadata, constructs the
// input for each step, and builds the final task once every step has
// produced a value. The shape is fixed for the form's lifetime: the
// driver consults StepsNumber once per event and never expects it to
// change. Branching workflows use a Selector with a DelegatingForm
// instead.
type Controller interface {
	// FormName is the display name for chrome rendering.
	FormName() string

	// StepsNumber is the fixed number of steps.
	StepsNumber() int

	// StepName returns the display name of step index.
	StepName(index int) string

	// StepInput constructs a fresh input for step index. Called when the
	// step is entered, including when the user navigates back to it: a
	// revisited step starts from a clean input, never a stale one.
	StepInput(index int) Input

	// Build assembles the backend task from the accumulated step values
	// (indexed by step) and reports whether the UI must block further
	// form input until the task completes.
	Build(values []any) (backend.Task, bool)
}

// Redirector is implemented by controllers whose completion navigates to
// another surface instead of producing a task. The destination is
// interpreted by the embedding screen.
type Redirector interface {
	Redirect(values []any) (dest any, ok bool)
}

// Runner drives a form to completion. Form and DelegatingForm are the
// two implementations; screens embed a Runner without caring which.
type Runner interface {
	FormName() string
	StepName() string
	StepIndex() int
	StepsNumber() int
	OnEvent(msg tea.KeyMsg) FormStatus
	View(width int) string
}

// Form sequences a fixed-shape controller's steps. It owns the live
// input for the current step only; inputs for unvisited steps are not
// built ahead of time.
type Form struct {
	ctrl     Controller
	step     int
	input    Input
	values   []any
	finished bool
}

// NewForm starts a form at step 0.
func NewForm(ctrl Controller) *Form {
	return &Form{
		ctrl:   ctrl,
		input:  ctrl.StepInput(0),
		values: make([]any, ctrl.StepsNumber()),
	}
}

// FormName returns the controller's display name.
func (f *Form) FormName() string { return f.ctrl.FormName() }

// StepIndex returns the current 0-based step cursor.
func (f *Form) StepIndex() int { return f.step }

// StepsNumber returns the fixed step count.
func (f *Form) StepsNumber() int { return f.ctrl.StepsNumber() }

// StepName returns the current step's display name.
func (f *Form) StepName() string { return f.ctrl.StepName(f.step) }

// OnEvent forwards the event to the current step's input and maps the
// input status into a form status, advancing or rewinding the cursor.
func (f *Form) OnEvent(msg tea.KeyMsg) FormStatus {
	if f.finished {
		// A completed form is inert; the owning screen should have
		// dropped it already.
		return FormStatus{Kind: FormPending}
	}

	switch st := f.input.OnEvent(msg); st.Kind {
	case StatusDone:
		f.values[f.step] = st.Value
		f.step++
		if f.step == f.ctrl.StepsNumber() {
			f.finished = true
			if r, ok := f.ctrl.(Redirector); ok {
				if dest, redirect := r.Redirect(f.values); redirect {
					return FormStatus{Kind: FormRedirect, Next: dest}
				}
			}
			task, block := f.ctrl.Build(f.values)
			return FormStatus{Kind: FormDone, Task: task, Block: block}
		}
		f.input = f.ctrl.StepInput(f.step)
		return FormStatus{Kind: FormPending}

	case StatusExit:
		// No partial save: cancellation discards every accumulated value.
		f.finished = true
		return FormStatus{Kind: FormExit}

	case StatusRedirect:
		// Back one step, or out of the form entirely at step 0. This
		// tie-break is the user's only way to correct an earlier step.
		if f.step == 0 {
			f.finished = true
			return FormStatus{Kind: FormExit}
		}
		f.step--
		f.input = f.ctrl.StepInput(f.step)
		return FormStatus{Kind: FormPending}
	}

	return FormStatus{Kind: FormPending}
}

// View renders the current step's input.
func (f *Form) View(width int) string {
	if f.finished {
		return ""
	}
	return f.input.View(width)
}

// Selector is the entry point for branching composites: the first step
// chooses an operation variant, and the chosen variant's controller owns
// every subsequent step.
type Selector interface {
	// FormName is the composite's display name.
	FormName() string

	// SelectorName is the display name of the choice step.
	SelectorName() string

	// SelectorInput constructs the choice step's input. prev is the
	// previously chosen value when re-entering after backing out of a
	// sub-form, or nil on first entry; implementations use it to
	// preserve the outer selection.
	SelectorInput(prev any) Input

	// Select returns the controller for the chosen variant.
	Select(choice any) Controller
}

// DelegatingForm is the branching form variant: its total step count is
// not known until the selector step completes, at which point it
// constructs the chosen controller's form and forwards all subsequent
// events to it. Status translation happens only here, at the delegation
// boundary.
type DelegatingForm struct {
	sel      Selector
	selInput Input
	choice   any
	chosen   bool
	inner    *Form
	finished bool
}

// NewDelegatingForm starts a composite form at its selector step.
func NewDelegatingForm(sel Selector) *DelegatingForm {
	return &DelegatingForm{
		sel:      sel,
		selInput: sel.SelectorInput(nil),
	}
}

// FormName returns the composite's display name.
func (d *DelegatingForm) FormName() string { return d.sel.FormName() }

// StepIndex returns the composite cursor: 0 on the selector, then the
// inner form's cursor offset by one.
func (d *DelegatingForm) StepIndex() int {
	if !d.chosen {
		return 0
	}
	return 1 + d.inner.StepIndex()
}

// StepsNumber reports the currently known step count: just the selector
// until a branch is chosen, then selector plus the branch's steps.
func (d *DelegatingForm) StepsNumber() int {
	if !d.chosen {
		return 1
	}
	return 1 + d.inner.StepsNumber()
}

// StepName returns the active step's display name.
func (d *DelegatingForm) StepName() string {
	if !d.chosen {
		return d.sel.SelectorName()
	}
	return d.inner.StepName()
}

// OnEvent drives the selector step, then delegates to the chosen
// sub-form. Backing out of the sub-form's first step returns to the
// selector with the previous choice preserved; the sub-form itself is
// reconstructed from scratch on re-entry.
func (d *DelegatingForm) OnEvent(msg tea.KeyMsg) FormStatus {
	if d.finished {
		return FormStatus{Kind: FormPending}
	}

	if !d.chosen {
		switch st := d.selInput.OnEvent(msg); st.Kind {
		case StatusDone:
			d.choice = st.Value
			d.chosen = true
			d.inner = NewForm(d.sel.Select(st.Value))
			return FormStatus{Kind: FormPending}
		case StatusRedirect, StatusExit:
			// The selector is step 0 of the composite: back and abort
			// both leave the form.
			d.finished = true
			return FormStatus{Kind: FormExit}
		}
		return FormStatus{Kind: FormPending}
	}

	if d.inner.StepIndex() == 0 && matches(msg, Keys.Back) {
		d.chosen = false
		d.inner = nil
		d.selInput = d.sel.SelectorInput(d.choice)
		return FormStatus{Kind: FormPending}
	}

	fs := d.inner.OnEvent(msg)
	if fs.Kind == FormDone || fs.Kind == FormExit || fs.Kind == FormRedirect {
		d.finished = true
	}
	return fs
}

// View renders the selector or the delegated sub-form's current step.
func (d *DelegatingForm) View(width int) string {
	if d.finished {
		return ""
	}
	if !d.chosen {
		return d.selInput.View(width)
	}
	return d.inner.View(width)
}

package workflow

import "github.com/opsdeck/opsdeck/internal/backend"

// StatusKind enumerates the outcomes of feeding one key event to an Input.
// Exactly one status is produced per event.
type StatusKind int

const (
	// StatusPending means the input is still being edited; no change of control.
	StatusPending StatusKind = iota
	// StatusDone means a validated value is ready and the input relinquishes it.
	StatusDone
	// StatusRedirect means the user escaped the field without completing it
	// (go back one step).
	StatusRedirect
	// StatusExit means the user abandoned the whole form.
	StatusExit
)

// Status is the result of feeding one key event to an Input.
type Status struct {
	Kind  StatusKind
	Value any // set when Kind == StatusDone
}

// Pending reports that the input consumed the event and is still editing.
func Pending() Status { return Status{Kind: StatusPending} }

// Done reports a completed input carrying its validated value.
func Done(value any) Status { return Status{Kind: StatusDone, Value: value} }

// Redirect reports a request to back out of the field.
func Redirect() Status { return Status{Kind: StatusRedirect} }

// Exit reports a request to abandon the whole form.
func Exit() Status { return Status{Kind: StatusExit} }

// FormStatusKind enumerates the outcomes of feeding an event to a form.
type FormStatusKind int

const (
	// FormPending means the form is still in progress; no navigation action.
	FormPending FormStatusKind = iota
	// FormDone means all steps completed and a task has been built.
	FormDone
	// FormRedirect means the form was abandoned in favor of another screen.
	FormRedirect
	// FormExit means the user cancelled the form.
	FormExit
)

// FormStatus is the result of feeding an event to a form driver.
type FormStatus struct {
	Kind FormStatusKind

	// Task and Block are valid when Kind == FormDone. Block signals that
	// the UI must suspend further form input until the task's completion
	// notification arrives.
	Task  backend.Task
	Block bool

	// Next is the redirect destination when Kind == FormRedirect. It is
	// interpreted by the embedding screen (typically as another screen).
	Next any
}

package workflow

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// maxSuggestions caps the displayed completion list per input.
const maxSuggestions = 6

// Input is a single interactive field. Feeding it one key event yields
// exactly one Status. Inputs are created when a form step is entered and
// discarded when the form moves past them; no input is shared across
// steps.
type Input interface {
	OnEvent(msg tea.KeyMsg) Status
	View(width int) string
}

// TextInput is a free-text field validated by a ParseFunc at submit time.
// An optional CompletionEngine supplies suggestions recomputed whenever
// the buffer changes; accepted values are recorded into the engine when
// the input completes.
type TextInput[T any] struct {
	label  string
	inner  textinput.Model
	parse  ParseFunc[T]
	engine CompletionEngine

	suggestions []string
	hint        int // index into suggestions, -1 = none highlighted
	reject      string
}

// NewTextInput creates a focused text input for one form step.
func NewTextInput[T any](label, placeholder string, parse ParseFunc[T]) *TextInput[T] {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 48
	ti.Focus()

	return &TextInput[T]{
		label: label,
		inner: ti,
		parse: parse,
		hint:  -1,
	}
}

// WithCompletion attaches a suggestion source. The engine is shared
// process-wide state passed in explicitly by whoever builds the step.
func (t *TextInput[T]) WithCompletion(engine CompletionEngine) *TextInput[T] {
	t.engine = engine
	t.refreshSuggestions()
	return t
}

// WithValue pre-fills the buffer, e.g. when reconstructing a step's
// default from a preset.
func (t *TextInput[T]) WithValue(value string) *TextInput[T] {
	t.inner.SetValue(value)
	t.inner.CursorEnd()
	t.refreshSuggestions()
	return t
}

// OnEvent feeds one key event to the input.
func (t *TextInput[T]) OnEvent(msg tea.KeyMsg) Status {
	switch {
	case matches(msg, Keys.Abort):
		return Exit()

	case matches(msg, Keys.Back):
		return Redirect()

	case matches(msg, Keys.Submit):
		raw := t.inner.Value()
		value, err := t.parse(raw)
		if err != nil {
			// Buffer is preserved unchanged so the user can correct it.
			t.reject = err.Error()
			return Pending()
		}
		if t.engine != nil {
			t.engine.Record(raw)
		}
		return Done(value)

	case matches(msg, Keys.Down) && len(t.suggestions) > 0:
		t.hint = (t.hint + 1) % len(t.suggestions)
		return Pending()

	case matches(msg, Keys.Up) && len(t.suggestions) > 0:
		t.hint--
		if t.hint < 0 {
			t.hint = len(t.suggestions) - 1
		}
		return Pending()

	case matches(msg, Keys.AcceptHint) && len(t.suggestions) > 0:
		idx := t.hint
		if idx < 0 {
			idx = 0
		}
		t.inner.SetValue(t.suggestions[idx])
		t.inner.CursorEnd()
		t.reject = ""
		t.refreshSuggestions()
		return Pending()
	}

	// Everything else edits the buffer (cursor movement, delete, runes).
	before := t.inner.Value()
	t.inner, _ = t.inner.Update(msg)
	if t.inner.Value() != before {
		t.reject = ""
		t.refreshSuggestions()
	}
	return Pending()
}

// refreshSuggestions recomputes the displayed list for the current
// buffer. Suggestions are never persisted; a changed buffer invalidates
// the previous list entirely.
func (t *TextInput[T]) refreshSuggestions() {
	t.suggestions = CollectCompletions(t.engine, t.inner.Value(), maxSuggestions)
	t.hint = -1
}

// Buffer returns the current raw text, unvalidated.
func (t *TextInput[T]) Buffer() string {
	return t.inner.Value()
}

// RejectReason returns the message from the last failed submit, or ""
// if the buffer has been edited since.
func (t *TextInput[T]) RejectReason() string {
	return t.reject
}

// Suggestions returns the currently displayed completion list.
func (t *TextInput[T]) Suggestions() []string {
	return t.suggestions
}

// View renders the field, its validation message, and the suggestion list.
func (t *TextInput[T]) View(width int) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(t.label))
	b.WriteString("\n")
	b.WriteString(t.inner.View())
	b.WriteString("\n")

	if t.reject != "" {
		b.WriteString(rejectStyle.Render("✗ " + t.reject))
		b.WriteString("\n")
	}

	for i, s := range t.suggestions {
		if i == t.hint {
			b.WriteString(suggestionActiveStyle.Render("▸ " + s))
		} else {
			b.WriteString(suggestionStyle.Render(s))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// SelectInput is an ordered list of candidate values with a selection
// cursor. Submission never involves a parser; it yields the element at
// the current index. An empty list is a valid terminal state that can
// only emit Exit.
type SelectInput[T any] struct {
	label  string
	items  []T
	render func(T) string
	index  int
}

// NewSelectInput creates a selection input over the given candidates.
// render may be nil, in which case items are displayed with fmt.Sprint.
func NewSelectInput[T any](label string, items []T, render func(T) string) *SelectInput[T] {
	if render == nil {
		render = func(v T) string { return fmt.Sprint(v) }
	}
	return &SelectInput[T]{
		label:  label,
		items:  items,
		render: render,
	}
}

// WithIndex sets the initial selection, clamped into range. Used to
// preserve an outer selection when a composite form reconstructs its
// selector step.
func (s *SelectInput[T]) WithIndex(index int) *SelectInput[T] {
	if index >= 0 && index < len(s.items) {
		s.index = index
	}
	return s
}

// OnEvent feeds one key event to the input. Out-of-range movement is a
// no-op, never a fault.
func (s *SelectInput[T]) OnEvent(msg tea.KeyMsg) Status {
	switch {
	case matches(msg, Keys.Abort):
		return Exit()

	case matches(msg, Keys.Back):
		return Redirect()

	case matches(msg, Keys.Up):
		if s.index > 0 {
			s.index--
		}

	case matches(msg, Keys.Down):
		if s.index < len(s.items)-1 {
			s.index++
		}

	case matches(msg, Keys.Submit):
		if len(s.items) == 0 {
			return Pending()
		}
		return Done(s.items[s.index])
	}

	return Pending()
}

// Index returns the current selection index.
func (s *SelectInput[T]) Index() int {
	return s.index
}

// View renders the candidate list with the selection cursor.
func (s *SelectInput[T]) View(width int) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(s.label))
	b.WriteString("\n")

	if len(s.items) == 0 {
		b.WriteString(emptyListStyle.Render("nothing to select — ctrl+q to abort"))
		b.WriteString("\n")
		return b.String()
	}

	for i, item := range s.items {
		if i == s.index {
			b.WriteString(optionActiveStyle.Render("▸ " + s.render(item)))
		} else {
			b.WriteString(optionStyle.Render(s.render(item)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

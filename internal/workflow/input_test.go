package workflow

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// Key event helpers shared by the input and form tests.

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyEsc() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyEscape} }
func keyAbort() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyCtrlQ} }
func keyUp() tea.KeyMsg    { return tea.KeyMsg{Type: tea.KeyUp} }
func keyDown() tea.KeyMsg  { return tea.KeyMsg{Type: tea.KeyDown} }
func keyTab() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyTab} }

// typeInto feeds each rune of s as a separate key event.
func typeInto(t *testing.T, in Input, s string) {
	t.Helper()
	for _, r := range s {
		if st := in.OnEvent(keyRunes(string(r))); st.Kind != StatusPending {
			t.Fatalf("typing %q: status = %v, want pending", r, st.Kind)
		}
	}
}

func TestTextInputSubmitValid(t *testing.T) {
	in := NewTextInput("Alias", "", ParseNonEmpty)
	typeInto(t, in, "ops-primary")

	st := in.OnEvent(keyEnter())
	if st.Kind != StatusDone {
		t.Fatalf("status = %v, want done", st.Kind)
	}
	if got := st.Value.(string); got != "ops-primary" {
		t.Errorf("value = %q, want %q", got, "ops-primary")
	}
}

func TestTextInputRejectPreservesBuffer(t *testing.T) {
	in := NewTextInput("Credits", "", ParseCredits)
	typeInto(t, in, "12x")

	st := in.OnEvent(keyEnter())
	if st.Kind != StatusPending {
		t.Fatalf("status after invalid submit = %v, want pending", st.Kind)
	}
	if in.Buffer() != "12x" {
		t.Errorf("buffer after reject = %q, want %q", in.Buffer(), "12x")
	}
	if in.RejectReason() == "" {
		t.Error("reject reason should be set after invalid submit")
	}

	// Editing the buffer clears the reject message
	in.OnEvent(keyRunes("9"))
	if in.RejectReason() != "" {
		t.Errorf("reject reason after edit = %q, want empty", in.RejectReason())
	}
}

func TestTextInputBackAndAbort(t *testing.T) {
	in := NewTextInput("Alias", "", ParseNonEmpty)

	if st := in.OnEvent(keyEsc()); st.Kind != StatusRedirect {
		t.Errorf("esc status = %v, want redirect", st.Kind)
	}
	if st := in.OnEvent(keyAbort()); st.Kind != StatusExit {
		t.Errorf("ctrl+q status = %v, want exit", st.Kind)
	}
}

func TestTextInputSuggestions(t *testing.T) {
	engine := NewHistoryEngine("alpha", "amber", "echo")
	in := NewTextInput("Alias", "", ParseNonEmpty).WithCompletion(engine)

	// Empty buffer shows the whole history, newest first
	got := in.Suggestions()
	if len(got) != 3 || got[0] != "echo" {
		t.Fatalf("initial suggestions = %v, want [echo amber alpha]", got)
	}

	// Typing narrows the list
	typeInto(t, in, "a")
	got = in.Suggestions()
	if len(got) != 2 {
		t.Fatalf("suggestions after typing 'a' = %v, want 2 entries", got)
	}

	// Tab accepts the first suggestion when none is highlighted
	in.OnEvent(keyTab())
	if in.Buffer() != got[0] {
		t.Errorf("buffer after tab = %q, want %q", in.Buffer(), got[0])
	}
}

func TestTextInputHintCycling(t *testing.T) {
	engine := NewHistoryEngine("alpha", "beta", "gamma")
	in := NewTextInput("Alias", "", ParseNonEmpty).WithCompletion(engine)

	// Suggestions are newest first: gamma, beta, alpha. Two downs
	// highlight beta; tab accepts it.
	in.OnEvent(keyDown())
	in.OnEvent(keyDown())
	in.OnEvent(keyTab())

	if in.Buffer() != "beta" {
		t.Errorf("buffer after down,down,tab = %q, want %q", in.Buffer(), "beta")
	}
}

func TestTextInputRecordsOnDone(t *testing.T) {
	engine := NewHistoryEngine()
	in := NewTextInput("Alias", "", ParseNonEmpty).WithCompletion(engine)
	typeInto(t, in, "ops-primary")

	if st := in.OnEvent(keyEnter()); st.Kind != StatusDone {
		t.Fatalf("status = %v, want done", st.Kind)
	}

	items := engine.Items()
	if len(items) != 1 || items[0] != "ops-primary" {
		t.Errorf("engine items after done = %v, want [ops-primary]", items)
	}
}

func TestSelectInputNavigation(t *testing.T) {
	in := NewSelectInput("Pick", []string{"a", "b", "c"}, nil)

	// Up at the top edge is a no-op
	in.OnEvent(keyUp())
	if in.Index() != 0 {
		t.Errorf("index after up at top = %d, want 0", in.Index())
	}

	in.OnEvent(keyDown())
	in.OnEvent(keyDown())
	if in.Index() != 2 {
		t.Fatalf("index after down,down = %d, want 2", in.Index())
	}

	// Down at the bottom edge is a no-op
	in.OnEvent(keyDown())
	if in.Index() != 2 {
		t.Errorf("index after down at bottom = %d, want 2", in.Index())
	}

	st := in.OnEvent(keyEnter())
	if st.Kind != StatusDone {
		t.Fatalf("status = %v, want done", st.Kind)
	}
	if got := st.Value.(string); got != "c" {
		t.Errorf("value = %q, want %q", got, "c")
	}
}

func TestSelectInputEmptyList(t *testing.T) {
	in := NewSelectInput("Pick", nil, func(string) string { return "" })

	if st := in.OnEvent(keyEnter()); st.Kind != StatusPending {
		t.Errorf("submit on empty list status = %v, want pending", st.Kind)
	}
	if st := in.OnEvent(keyAbort()); st.Kind != StatusExit {
		t.Errorf("abort on empty list status = %v, want exit", st.Kind)
	}
}

func TestSelectInputWithIndex(t *testing.T) {
	in := NewSelectInput("Pick", []string{"a", "b", "c"}, nil).WithIndex(2)
	if in.Index() != 2 {
		t.Errorf("WithIndex(2) index = %d, want 2", in.Index())
	}

	// Out-of-range values are ignored
	in = NewSelectInput("Pick", []string{"a"}, nil).WithIndex(5)
	if in.Index() != 0 {
		t.Errorf("WithIndex(5) on 1-item list index = %d, want 0", in.Index())
	}
}

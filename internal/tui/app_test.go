package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/opsdeck/internal/backend"
	"github.com/opsdeck/opsdeck/internal/config"
)

func newTestDeps() *Deps {
	reg := config.NewRegistry()
	return &Deps{
		Dispatcher: backend.NewDispatcher(),
		Registry:   reg,
		Histories:  NewHistories(reg),
	}
}

func pressRune(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func pressEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func pressEsc() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyEscape} }

// stubScreen returns a scripted feedback for every key event and counts
// how many events reached it.
type stubScreen struct {
	name   string
	fb     Feedback
	events int
}

func (s *stubScreen) Name() string                  { return s.name }
func (s *stubScreen) View(width, height int) string { return s.name }
func (s *stubScreen) CommandKeys() []key.Binding    { return nil }
func (s *stubScreen) ToggleKeys() []key.Binding     { return nil }

func (s *stubScreen) OnEvent(msg tea.Msg) Feedback {
	s.events++
	return s.fb
}

func TestAppPushAndPop(t *testing.T) {
	child := &stubScreen{name: "child", fb: Pop()}
	root := &stubScreen{name: "root", fb: Push(child)}
	app := NewApp(newTestDeps(), root)

	app.Update(pressRune("x"))
	if len(app.stack) != 2 {
		t.Fatalf("stack depth after push = %d, want 2", len(app.stack))
	}
	if app.top() != Screen(child) {
		t.Error("top of stack should be the pushed screen")
	}

	app.Update(pressRune("x"))
	if len(app.stack) != 1 {
		t.Fatalf("stack depth after pop = %d, want 1", len(app.stack))
	}
	if app.top() != Screen(root) {
		t.Error("top of stack should be the root again")
	}
}

func TestAppPopRootQuits(t *testing.T) {
	root := &stubScreen{name: "root", fb: Pop()}
	app := NewApp(newTestDeps(), root)

	_, cmd := app.Update(pressRune("x"))
	if cmd == nil {
		t.Fatal("popping the root should produce a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("popping the root should quit the program")
	}
	if len(app.stack) != 1 {
		t.Error("the root screen itself is never removed")
	}
}

func TestAppRedirectReplacesTop(t *testing.T) {
	replacement := &stubScreen{name: "replacement"}
	root := &stubScreen{name: "root", fb: RedirectTo(replacement)}
	app := NewApp(newTestDeps(), root)

	app.Update(pressRune("x"))
	if len(app.stack) != 1 {
		t.Fatalf("stack depth after redirect = %d, want 1", len(app.stack))
	}
	if app.top() != Screen(replacement) {
		t.Error("redirect should replace the top screen")
	}
}

func TestAppBlockingTaskLifecycle(t *testing.T) {
	task := backend.RegisterIdentity("ops-primary", 1000)
	root := &stubScreen{name: "root", fb: None().WithTask(task, true)}
	app := NewApp(newTestDeps(), root)

	app.Update(pressRune("x"))
	if !app.waiting {
		t.Fatal("app should be waiting after a blocking task")
	}

	// While blocked, ordinary keys are not delivered to the screen.
	eventsBefore := root.events
	app.Update(pressRune("y"))
	if root.events != eventsBefore {
		t.Error("screen received input while blocked")
	}

	// The completion notification clears the blocked state and is
	// forwarded to the active screen.
	root.fb = None()
	app.Update(TaskResultMsg{Kind: task.Kind, OK: true, Detail: "id: abc"})
	if app.waiting {
		t.Error("app should not be waiting after the result arrives")
	}
	if root.events != eventsBefore+1 {
		t.Error("result should be forwarded to the active screen")
	}
	if app.lastResult == nil || !app.lastResult.OK {
		t.Error("last result should record the completion")
	}
}

func TestAppEscCancelsWhileWaiting(t *testing.T) {
	task := backend.RunStrategy("steady-documents", 60, 5)
	root := &stubScreen{name: "root", fb: None().WithTask(task, true)}
	app := NewApp(newTestDeps(), root)

	app.Update(pressRune("x"))
	if !app.waiting {
		t.Fatal("app should be waiting")
	}

	app.Update(pressEsc())
	if app.waiting {
		t.Error("esc should cancel the wait")
	}
}

func TestAppNonBlockingTaskDoesNotWait(t *testing.T) {
	task := backend.TopUpIdentity("abc", 500)
	root := &stubScreen{name: "root", fb: None().WithTask(task, false)}
	app := NewApp(newTestDeps(), root)

	app.Update(pressRune("x"))
	if app.waiting {
		t.Error("fire-and-forget tasks must not block input")
	}
}

func TestAppPaletteCapture(t *testing.T) {
	root := &stubScreen{name: "root"}
	app := NewApp(newTestDeps(), root)

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	if !app.palette.Active() {
		t.Fatal("ctrl+k should open the palette")
	}

	// Keys go to the palette, not the screen, while it is open.
	eventsBefore := root.events
	app.Update(pressRune("a"))
	if root.events != eventsBefore {
		t.Error("screen received input while the palette was capturing")
	}

	app.Update(pressEsc())
	if app.palette.Active() {
		t.Error("esc should close the palette")
	}
}

func TestAppViewIsRepeatable(t *testing.T) {
	deps := newTestDeps()
	app := NewApp(deps, NewMenuScreen(deps))

	first := app.View()
	second := app.View()
	if first != second {
		t.Error("rendering twice without events should produce identical output")
	}
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/opsdeck/internal/backend"
	"github.com/opsdeck/opsdeck/internal/workflow"
)

// menuEntry is one destination in the main menu.
type menuEntry struct {
	label string
	build func(deps *Deps) Screen
}

// menuEntries lists the reachable sections in display order.
func menuEntries() []menuEntry {
	return []menuEntry{
		{"Nodes — discover and pick a backend node", func(d *Deps) Screen { return NewNodesScreen(d) }},
		{"Identities — register and fund identities", func(d *Deps) Screen { return NewIdentitiesScreen(d) }},
		{"Contracts — register contracts", func(d *Deps) Screen { return NewContractsScreen(d) }},
		{"Documents — broadcast document operations", func(d *Deps) Screen { return NewDocumentsScreen(d) }},
		{"Strategies — run load strategies", func(d *Deps) Screen { return NewStrategiesScreen(d) }},
	}
}

// menuDest carries a chosen destination out of the menu form along with
// the index that produced it, so the menu can restore its cursor when
// the user navigates back.
type menuDest struct {
	index  int
	screen Screen
}

// menuController is a single-step redirecting form: its one step selects
// a destination, and completion navigates instead of building a task.
type menuController struct {
	deps *Deps
	prev int
}

func (c menuController) FormName() string    { return "Main menu" }
func (c menuController) StepsNumber() int    { return 1 }
func (c menuController) StepName(int) string { return "Destination" }

func (c menuController) StepInput(int) workflow.Input {
	return workflow.NewSelectInput("Where to?", menuEntries(), func(e menuEntry) string {
		return e.label
	}).WithIndex(c.prev)
}

// Build is never reached: Redirect always claims the completion.
func (c menuController) Build([]any) (backend.Task, bool) {
	return backend.Task{}, false
}

func (c menuController) Redirect(values []any) (any, bool) {
	entry := values[0].(menuEntry)
	for i, e := range menuEntries() {
		if e.label == entry.label {
			return menuDest{index: i, screen: entry.build(c.deps)}, true
		}
	}
	return nil, false
}

// MenuScreen is the root screen: a destination picker that pushes the
// chosen section onto the navigation stack.
type MenuScreen struct {
	deps       *Deps
	form       workflow.Runner
	lastChoice int
}

// NewMenuScreen creates the root menu.
func NewMenuScreen(deps *Deps) *MenuScreen {
	m := &MenuScreen{deps: deps}
	m.form = m.newForm()
	return m
}

func (m *MenuScreen) newForm() workflow.Runner {
	return workflow.NewForm(menuController{deps: m.deps, prev: m.lastChoice})
}

// Name implements Screen.
func (m *MenuScreen) Name() string { return "Menu" }

// CommandKeys implements Screen.
func (m *MenuScreen) CommandKeys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit")),
	}
}

// ToggleKeys implements Screen.
func (m *MenuScreen) ToggleKeys() []key.Binding { return nil }

// OnEvent implements Screen. The menu interprets its form's redirect
// itself: destinations are pushed, not swapped in, so the menu stays at
// the bottom of the stack and popping the destination returns here.
func (m *MenuScreen) OnEvent(msg tea.Msg) Feedback {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return None()
	}

	switch fs := m.form.OnEvent(keyMsg); fs.Kind {
	case workflow.FormRedirect:
		dest, ok := fs.Next.(menuDest)
		if !ok {
			m.form = m.newForm()
			return None()
		}
		m.lastChoice = dest.index
		m.form = m.newForm()
		return Push(dest.screen)

	case workflow.FormExit:
		// Esc or abort on the root menu leaves the program.
		m.form = m.newForm()
		return Pop()
	}
	return None()
}

// View implements Screen.
func (m *MenuScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(SectionStyle.Render("Operations"))
	b.WriteString("\n\n")
	b.WriteString(m.form.View(width))
	return b.String()
}

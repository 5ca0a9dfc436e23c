package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/opsdeck/internal/backend"
	"github.com/opsdeck/opsdeck/internal/workflow"
)

// registerContractController drives contract registration: a contract
// name and the single document type it defines. Registration blocks so
// the returned contract id is visible before dependent operations.
type registerContractController struct {
	hist *Histories
}

func (c registerContractController) FormName() string { return "Register contract" }
func (c registerContractController) StepsNumber() int { return 2 }

func (c registerContractController) StepName(index int) string {
	if index == 0 {
		return "Name"
	}
	return "Document type"
}

func (c registerContractController) StepInput(index int) workflow.Input {
	if index == 0 {
		return workflow.NewTextInput("Contract name", "e.g. ops-notes", workflow.ParseNonEmpty).
			WithCompletion(c.hist.Aliases)
	}
	return workflow.NewTextInput("Document type", "e.g. note", workflow.ParseNonEmpty).
		WithCompletion(c.hist.DocumentTypes)
}

func (c registerContractController) Build(values []any) (backend.Task, bool) {
	return backend.RegisterContract(values[0].(string), values[1].(string)), true
}

// ContractsScreen hosts contract operations. Unlike the identities
// screen it runs its form on a dedicated pushed screen, so the form gets
// the full surface and popping it lands back here.
type ContractsScreen struct {
	deps *Deps
}

// NewContractsScreen creates the contracts section.
func NewContractsScreen(deps *Deps) *ContractsScreen {
	return &ContractsScreen{deps: deps}
}

// Name implements Screen.
func (s *ContractsScreen) Name() string { return "Contracts" }

// CommandKeys implements Screen.
func (s *ContractsScreen) CommandKeys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "register contract")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// ToggleKeys implements Screen.
func (s *ContractsScreen) ToggleKeys() []key.Binding { return nil }

// OnEvent implements Screen.
func (s *ContractsScreen) OnEvent(msg tea.Msg) Feedback {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return None()
	}

	switch keyMsg.String() {
	case "r":
		form := workflow.NewForm(registerContractController{hist: s.deps.Histories})
		return Push(NewFormScreen(form))
	case "esc":
		return Pop()
	}
	return None()
}

// View implements Screen.
func (s *ContractsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(SectionStyle.Render("Contracts"))
	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render("Register a data contract defining one document type."))
	return b.String()
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/opsdeck/internal/backend"
	"github.com/opsdeck/opsdeck/internal/workflow"
)

// registerIdentityController drives the two-step identity registration
// form: alias then funding amount. Registration blocks because the key
// material is generated backend-side and follow-up operations need the
// resulting identity.
type registerIdentityController struct {
	hist *Histories
}

func (c registerIdentityController) FormName() string { return "Register identity" }
func (c registerIdentityController) StepsNumber() int { return 2 }

func (c registerIdentityController) StepName(index int) string {
	if index == 0 {
		return "Alias"
	}
	return "Funding"
}

func (c registerIdentityController) StepInput(index int) workflow.Input {
	if index == 0 {
		return workflow.NewTextInput("Identity alias", "e.g. ops-primary", workflow.ParseNonEmpty).
			WithCompletion(c.hist.Aliases)
	}
	return workflow.NewTextInput("Funding credits", "e.g. 100000", workflow.ParseCredits)
}

func (c registerIdentityController) Build(values []any) (backend.Task, bool) {
	return backend.RegisterIdentity(values[0].(string), values[1].(uint64)), true
}

// topUpIdentityController drives the two-step top-up form: identity id
// then amount. Top-ups are fire-and-forget.
type topUpIdentityController struct {
	hist *Histories
}

func (c topUpIdentityController) FormName() string { return "Top up identity" }
func (c topUpIdentityController) StepsNumber() int { return 2 }

func (c topUpIdentityController) StepName(index int) string {
	if index == 0 {
		return "Identity"
	}
	return "Amount"
}

func (c topUpIdentityController) StepInput(index int) workflow.Input {
	if index == 0 {
		return workflow.NewTextInput("Identity id", "base58 identifier", workflow.ParseIdentifier).
			WithCompletion(c.hist.IdentityIDs)
	}
	return workflow.NewTextInput("Top-up credits", "e.g. 50000", workflow.ParseCredits)
}

func (c topUpIdentityController) Build(values []any) (backend.Task, bool) {
	return backend.TopUpIdentity(values[0].(string), values[1].(uint64)), false
}

// IdentitiesScreen hosts the identity operations. At most one form is
// active at a time; starting one replaces the idle key set with the
// form's own bindings.
type IdentitiesScreen struct {
	deps *Deps
	form workflow.Runner
}

// NewIdentitiesScreen creates the identities section.
func NewIdentitiesScreen(deps *Deps) *IdentitiesScreen {
	return &IdentitiesScreen{deps: deps}
}

// Name implements Screen.
func (s *IdentitiesScreen) Name() string { return "Identities" }

// CommandKeys implements Screen.
func (s *IdentitiesScreen) CommandKeys() []key.Binding {
	if s.form != nil {
		return workflow.CommandKeys()
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "register identity")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "top up identity")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// ToggleKeys implements Screen.
func (s *IdentitiesScreen) ToggleKeys() []key.Binding { return nil }

// OnEvent implements Screen.
func (s *IdentitiesScreen) OnEvent(msg tea.Msg) Feedback {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return None()
	}

	if s.form != nil {
		fb, drop := feedbackFromForm(s.form.OnEvent(keyMsg))
		if drop {
			s.form = nil
		}
		return fb
	}

	switch keyMsg.String() {
	case "r":
		s.form = workflow.NewForm(registerIdentityController{hist: s.deps.Histories})
	case "t":
		s.form = workflow.NewForm(topUpIdentityController{hist: s.deps.Histories})
	case "esc":
		return Pop()
	}
	return None()
}

// View implements Screen.
func (s *IdentitiesScreen) View(width, height int) string {
	var b strings.Builder

	if s.form != nil {
		b.WriteString(SectionStyle.Render(formProgress(s.form)))
		b.WriteString("\n\n")
		b.WriteString(s.form.View(width))
		return b.String()
	}

	b.WriteString(SectionStyle.Render("Identities"))
	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render("Register a new funded identity or top up an existing one."))
	return b.String()
}

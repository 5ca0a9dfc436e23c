package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/opsdeck/internal/backend"
	"github.com/opsdeck/opsdeck/internal/workflow"
)

// documentActions lists the broadcast variants in display order.
var documentActions = []backend.DocumentAction{
	backend.DocumentInsert,
	backend.DocumentDelete,
	backend.DocumentReplace,
}

// documentSelector is the branching entry point for document broadcasts:
// the first step picks the action, and the chosen action's controller
// owns the remaining steps.
type documentSelector struct {
	hist *Histories
}

func (s documentSelector) FormName() string     { return "Broadcast document" }
func (s documentSelector) SelectorName() string { return "Action" }

func (s documentSelector) SelectorInput(prev any) workflow.Input {
	in := workflow.NewSelectInput("Document action", documentActions, func(a backend.DocumentAction) string {
		return string(a)
	})
	if chosen, ok := prev.(backend.DocumentAction); ok {
		for i, a := range documentActions {
			if a == chosen {
				in = in.WithIndex(i)
			}
		}
	}
	return in
}

func (s documentSelector) Select(choice any) workflow.Controller {
	return documentController{
		action: choice.(backend.DocumentAction),
		hist:   s.hist,
	}
}

// documentController drives the steps of one broadcast variant. Insert
// and replace take a body; delete and replace take a document id; every
// variant starts from the contract id.
type documentController struct {
	action backend.DocumentAction
	hist   *Histories
}

func (c documentController) FormName() string {
	return string(c.action) + " document"
}

// stepNames returns the variant's step sequence.
func (c documentController) stepNames() []string {
	switch c.action {
	case backend.DocumentInsert:
		return []string{"Contract", "Type", "Body"}
	case backend.DocumentDelete:
		return []string{"Contract", "Document id"}
	default: // replace
		return []string{"Contract", "Document id", "Body"}
	}
}

func (c documentController) StepsNumber() int { return len(c.stepNames()) }

func (c documentController) StepName(index int) string { return c.stepNames()[index] }

func (c documentController) StepInput(index int) workflow.Input {
	switch c.stepNames()[index] {
	case "Contract":
		return workflow.NewTextInput("Contract id", "base58 identifier", workflow.ParseIdentifier).
			WithCompletion(c.hist.ContractIDs)
	case "Type":
		return workflow.NewTextInput("Document type", "e.g. note", workflow.ParseNonEmpty).
			WithCompletion(c.hist.DocumentTypes)
	case "Document id":
		return workflow.NewTextInput("Document id", "base58 identifier", workflow.ParseIdentifier)
	default: // Body
		return workflow.NewTextInput("Document body", `{"message":"…"}`, workflow.ParseJSONish)
	}
}

func (c documentController) Build(values []any) (backend.Task, bool) {
	op := backend.DocumentOp{
		Action:     c.action,
		ContractID: values[0].(string),
	}
	switch c.action {
	case backend.DocumentInsert:
		op.Type = values[1].(string)
		op.Body = values[2].(string)
	case backend.DocumentDelete:
		op.DocumentID = values[1].(string)
	default:
		op.DocumentID = values[1].(string)
		op.Body = values[2].(string)
	}
	return backend.BroadcastDocument(op), false
}

// DocumentsScreen hosts document broadcasts through an inline branching
// form.
type DocumentsScreen struct {
	deps *Deps
	form workflow.Runner
}

// NewDocumentsScreen creates the documents section.
func NewDocumentsScreen(deps *Deps) *DocumentsScreen {
	return &DocumentsScreen{deps: deps}
}

// Name implements Screen.
func (s *DocumentsScreen) Name() string { return "Documents" }

// CommandKeys implements Screen.
func (s *DocumentsScreen) CommandKeys() []key.Binding {
	if s.form != nil {
		return workflow.CommandKeys()
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "broadcast document")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// ToggleKeys implements Screen.
func (s *DocumentsScreen) ToggleKeys() []key.Binding { return nil }

// OnEvent implements Screen.
func (s *DocumentsScreen) OnEvent(msg tea.Msg) Feedback {
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
	case "b":
		s.form = workflow.NewDelegatingForm(documentSelector{hist: s.deps.Histories})
	case "esc":
		return Pop()
	}
	return None()
}

// View implements Screen.
func (s *DocumentsScreen) View(width, height int) string {
	var b strings.Builder

	if s.form != nil {
		b.WriteString(SectionStyle.Render(formProgress(s.form)))
		b.WriteString("\n\n")
		b.WriteString(s.form.View(width))
		return b.String()
	}

	b.WriteString(SectionStyle.Render("Documents"))
	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render("Broadcast insert, delete, or replace operations against a contract."))
	return b.String()
}

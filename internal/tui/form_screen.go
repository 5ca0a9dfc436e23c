package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/opsdeck/internal/workflow"
)

// FormScreen dedicates a whole screen to one form. Completion and
// cancellation both pop back to the screen that pushed it; a completed
// form's task rides along on the pop feedback.
type FormScreen struct {
	form workflow.Runner
}

// NewFormScreen wraps a form runner in a dedicated screen.
func NewFormScreen(form workflow.Runner) *FormScreen {
	return &FormScreen{form: form}
}

// Name implements Screen.
func (s *FormScreen) Name() string {
	return s.form.FormName()
}

// CommandKeys implements Screen.
func (s *FormScreen) CommandKeys() []key.Binding {
	return workflow.CommandKeys()
}

// ToggleKeys implements Screen.
func (s *FormScreen) ToggleKeys() []key.Binding {
	return nil
}

// OnEvent implements Screen.
func (s *FormScreen) OnEvent(msg tea.Msg) Feedback {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || s.form == nil {
		return None()
	}

	switch fs := s.form.OnEvent(keyMsg); fs.Kind {
	case workflow.FormDone:
		s.form = nil
		return Pop().WithTask(fs.Task, fs.Block)
	case workflow.FormExit:
		s.form = nil
		return Pop()
	case workflow.FormRedirect:
		s.form = nil
		if dest, ok := fs.Next.(Screen); ok {
			return RedirectTo(dest)
		}
		return Pop()
	}
	return None()
}

// View implements Screen.
func (s *FormScreen) View(width, height int) string {
	if s.form == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(SectionStyle.Render(formProgress(s.form)))
	b.WriteString("\n\n")
	b.WriteString(s.form.View(width))
	return b.String()
}

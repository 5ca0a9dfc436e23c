package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/opsdeck/internal/backend"
	"github.com/opsdeck/opsdeck/internal/config"
	"github.com/opsdeck/opsdeck/internal/workflow"
)

// strategySelector picks a preset first; the preset then seeds the
// duration and rate steps with editable defaults.
type strategySelector struct {
	presets []config.StrategyPreset
	wait    *bool
}

func (s strategySelector) FormName() string     { return "Run strategy" }
func (s strategySelector) SelectorName() string { return "Preset" }

func (s strategySelector) SelectorInput(prev any) workflow.Input {
	in := workflow.NewSelectInput("Strategy preset", s.presets, func(p config.StrategyPreset) string {
		return p.Name + "  (" + strconv.Itoa(p.Seconds) + "s, " +
			strconv.Itoa(p.OpsPerInterval) + " ops/interval)"
	})
	if chosen, ok := prev.(config.StrategyPreset); ok {
		for i, p := range s.presets {
			if p.Name == chosen.Name {
				in = in.WithIndex(i)
			}
		}
	}
	return in
}

func (s strategySelector) Select(choice any) workflow.Controller {
	return strategyController{
		preset: choice.(config.StrategyPreset),
		wait:   s.wait,
	}
}

// strategyController drives the duration and rate steps for the chosen
// preset. The wait flag is read at build time so toggling it mid-form
// still takes effect.
type strategyController struct {
	preset config.StrategyPreset
	wait   *bool
}

func (c strategyController) FormName() string { return "Run strategy: " + c.preset.Name }
func (c strategyController) StepsNumber() int { return 2 }

func (c strategyController) StepName(index int) string {
	if index == 0 {
		return "Duration"
	}
	return "Rate"
}

func (c strategyController) StepInput(index int) workflow.Input {
	if index == 0 {
		return workflow.NewTextInput("Duration", "seconds or 2m30s", workflow.ParseSeconds).
			WithValue(strconv.Itoa(c.preset.Seconds))
	}
	return workflow.NewTextInput("Operations per interval", "e.g. 5", workflow.ParsePositiveInt).
		WithValue(strconv.Itoa(c.preset.OpsPerInterval))
}

func (c strategyController) Build(values []any) (backend.Task, bool) {
	task := backend.RunStrategy(c.preset.Name, values[0].(int), values[1].(int))
	return task, *c.wait
}

// StrategiesScreen hosts scripted load-test runs. The wait toggle
// decides whether the dashboard blocks until the run finishes or lets
// it complete in the background.
type StrategiesScreen struct {
	deps *Deps
	form workflow.Runner
	wait bool
}

// NewStrategiesScreen creates the strategies section.
func NewStrategiesScreen(deps *Deps) *StrategiesScreen {
	return &StrategiesScreen{deps: deps, wait: true}
}

// Name implements Screen.
func (s *StrategiesScreen) Name() string { return "Strategies" }

// presets returns the configured presets, falling back to the built-in
// defaults when the registry has none.
func (s *StrategiesScreen) presets() []config.StrategyPreset {
	if prefs := s.deps.Registry.Preferences; prefs != nil && len(prefs.Strategies) > 0 {
		return prefs.Strategies
	}
	return config.NewRegistry().Preferences.Strategies
}

// CommandKeys implements Screen.
func (s *StrategiesScreen) CommandKeys() []key.Binding {
	if s.form != nil {
		return workflow.CommandKeys()
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start strategy")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// ToggleKeys implements Screen.
func (s *StrategiesScreen) ToggleKeys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "toggle wait for completion")),
	}
}

// OnEvent implements Screen.
func (s *StrategiesScreen) OnEvent(msg tea.Msg) Feedback {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return None()
	}

	// The toggle only applies while idle; once a form is active, "w"
	// belongs to its text buffers.
	if s.form == nil && keyMsg.String() == "w" {
		s.wait = !s.wait
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
	case "s":
		s.form = workflow.NewDelegatingForm(strategySelector{presets: s.presets(), wait: &s.wait})
	case "esc":
		return Pop()
	}
	return None()
}

// View implements Screen.
func (s *StrategiesScreen) View(width, height int) string {
	var b strings.Builder

	if s.form != nil {
		b.WriteString(SectionStyle.Render(formProgress(s.form)))
		b.WriteString("\n\n")
		b.WriteString(s.form.View(width))
		return b.String()
	}

	b.WriteString(SectionStyle.Render("Strategies"))
	b.WriteString("\n\n")
	for _, p := range s.presets() {
		b.WriteString(MenuItemStyle.Render(
			p.Name + "  " + strconv.Itoa(p.Seconds) + "s @ " +
				strconv.Itoa(p.OpsPerInterval) + " ops/interval"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if s.wait {
		b.WriteString(InfoStyle.Render("Runs block until the strategy finishes (w to toggle)."))
	} else {
		b.WriteString(InfoStyle.Render("Runs complete in the background (w to toggle)."))
	}
	return b.String()
}

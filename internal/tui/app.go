package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/opsdeck/opsdeck/internal/backend"
	"github.com/opsdeck/opsdeck/internal/config"
	"github.com/opsdeck/opsdeck/internal/logging"
	"github.com/opsdeck/opsdeck/internal/workflow"
)

// paletteKey activates the command launcher. Chosen so it never collides
// with text entry.
const paletteKey = "ctrl+k"

// Histories groups the process-wide completion engines, one per field
// family. They are constructed once at startup and passed explicitly
// into every text input that opts in.
type Histories struct {
	Aliases       *workflow.HistoryEngine
	IdentityIDs   *workflow.HistoryEngine
	ContractIDs   *workflow.HistoryEngine
	DocumentTypes *workflow.HistoryEngine
}

// NewHistories builds the engines, seeded from the persisted registry.
func NewHistories(reg *config.Registry) *Histories {
	return &Histories{
		Aliases:       workflow.NewHistoryEngine(reg.HistoryFor("alias")...),
		IdentityIDs:   workflow.NewHistoryEngine(reg.HistoryFor("identity_id")...),
		ContractIDs:   workflow.NewHistoryEngine(reg.HistoryFor("contract_id")...),
		DocumentTypes: workflow.NewHistoryEngine(reg.HistoryFor("document_type")...),
	}
}

// Persist writes the engines' contents back into the registry.
func (h *Histories) Persist(reg *config.Registry) {
	reg.SetHistory("alias", h.Aliases.Items())
	reg.SetHistory("identity_id", h.IdentityIDs.Items())
	reg.SetHistory("contract_id", h.ContractIDs.Items())
	reg.SetHistory("document_type", h.DocumentTypes.Items())
}

// Deps bundles the shared collaborators screens need: the task hand-off
// point, the persisted registry, and the completion engines.
type Deps struct {
	Dispatcher *backend.Dispatcher
	Registry   *config.Registry
	Histories  *Histories
}

// App is the top-level bubbletea model: it owns the navigation stack,
// routes events to the active screen, applies the resulting feedback,
// and manages the blocked state while a dispatched task is in flight.
type App struct {
	deps  *Deps
	stack []Screen

	palette *Palette
	help    help.Model
	spin    spinner.Model

	waiting    bool
	lastResult *backend.Result

	width  int
	height int
}

// NewApp creates the application model with the given root screen.
func NewApp(deps *Deps, root Screen) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = WaitingStyle

	return &App{
		deps:    deps,
		stack:   []Screen{root},
		palette: NewPalette(),
		help:    help.New(),
		spin:    s,
		width:   80,
		height:  24,
	}
}

// top returns the active screen. The stack is never empty while the
// program runs; popping the root quits.
func (a *App) top() Screen {
	return a.stack[len(a.stack)-1]
}

// Init arms the result listener.
func (a *App) Init() tea.Cmd {
	return awaitResult(a.deps.Dispatcher)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		if !a.waiting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case TaskResultMsg:
		a.waiting = false
		res := backend.Result(msg)
		a.lastResult = &res
		// Let the active screen react (refresh lists, show detail), then
		// re-arm the listener.
		fb := a.top().OnEvent(msg)
		return a, tea.Batch(awaitResult(a.deps.Dispatcher), a.applyFeedback(fb))

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Non-key runtime messages (scan results and the like) go to the
	// active screen.
	fb := a.top().OnEvent(msg)
	return a, a.applyFeedback(fb)
}

// handleKey routes one key event: global bindings first, then the
// palette when it is capturing, then the active screen.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.palette.Active() {
		if entry := a.palette.OnEvent(msg); entry != nil {
			// The palette emits the bound key as an event to the owning
			// screen; it never executes the action itself.
			fb := a.top().OnEvent(keyMsgFor(entry.Key))
			return a, a.applyFeedback(fb)
		}
		return a, nil
	}

	if msg.String() == paletteKey {
		a.palette.Open(PaletteEntries(a.top()))
		return a, nil
	}

	if a.waiting {
		// Form input is suspended while a blocking task is in flight;
		// only cancellation stays live.
		if msg.String() == "esc" {
			a.deps.Dispatcher.Cancel()
			a.waiting = false
		}
		return a, nil
	}

	fb := a.top().OnEvent(msg)
	return a, a.applyFeedback(fb)
}

// applyFeedback mutates the navigation stack and hands off any task the
// feedback carries.
func (a *App) applyFeedback(fb Feedback) tea.Cmd {
	var cmds []tea.Cmd

	if fb.Task != nil {
		if err := a.deps.Dispatcher.Submit(*fb.Task); err != nil {
			logging.Warn("task submission rejected", zap.Error(err))
			a.lastResult = &backend.Result{Kind: fb.Task.Kind, OK: false, Detail: err.Error()}
		} else if fb.Block {
			a.waiting = true
			cmds = append(cmds, a.spin.Tick)
		}
	}

	switch fb.Kind {
	case FeedbackPush:
		a.stack = append(a.stack, fb.Screen)
		logging.LogScreenTransition("push", fb.Screen.Name(), len(a.stack))

	case FeedbackPop:
		if len(a.stack) == 1 {
			return tea.Quit
		}
		popped := a.top()
		a.stack = a.stack[:len(a.stack)-1]
		logging.LogScreenTransition("pop", popped.Name(), len(a.stack))

	case FeedbackRedirect:
		a.stack[len(a.stack)-1] = fb.Screen
		logging.LogScreenTransition("redirect", fb.Screen.Name(), len(a.stack))
	}

	if fb.Cmd != nil {
		cmds = append(cmds, fb.Cmd)
	}

	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// View renders header, active screen body, and footer chrome.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	if a.palette.Active() {
		b.WriteString(a.palette.View())
		b.WriteString("\n")
	}

	b.WriteString(a.top().View(contentWidth(a.width), a.height-6))
	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

// renderHeader draws the title and the navigation breadcrumb.
func (a *App) renderHeader() string {
	crumbs := make([]string, len(a.stack))
	for i, s := range a.stack {
		if i == len(a.stack)-1 {
			crumbs[i] = BreadcrumbActiveStyle.Render(s.Name())
		} else {
			crumbs[i] = BreadcrumbStyle.Render(s.Name())
		}
	}

	title := TitleStyle.Render(AppName+" "+AppVersion()) +
		"  " + strings.Join(crumbs, BreadcrumbStyle.Render(" › "))
	return title + "\n" + headerRule(a.width)
}

// renderFooter draws the waiting indicator or the key help line, plus
// the last task result.
func (a *App) renderFooter() string {
	var b strings.Builder
	b.WriteString(headerRule(a.width))
	b.WriteString("\n")

	if a.waiting {
		b.WriteString(a.spin.View())
		b.WriteString(WaitingStyle.Render(" waiting for task — esc to cancel"))
	} else {
		bindings := append(a.top().CommandKeys(), a.top().ToggleKeys()...)
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(paletteKey),
			key.WithHelp(paletteKey, "palette"),
		))
		b.WriteString(a.help.ShortHelpView(bindings))
	}

	if a.lastResult != nil {
		b.WriteString("\n")
		line := string(a.lastResult.Kind) + ": " + a.lastResult.Detail
		if a.lastResult.OK {
			b.WriteString(StatusOKStyle.Render("✓ " + line))
		} else {
			b.WriteString(StatusFailStyle.Render("✗ " + line))
		}
	}

	return b.String()
}

// awaitResult blocks on the dispatcher's result channel and feeds the
// completion back into the event stream.
func awaitResult(d *backend.Dispatcher) tea.Cmd {
	return func() tea.Msg {
		return TaskResultMsg(<-d.Results())
	}
}

// namedKeys maps the named keys palette entries may carry to their
// bubbletea key types.
var namedKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEscape,
	"tab":    tea.KeyTab,
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"ctrl+q": tea.KeyCtrlQ,
	"ctrl+r": tea.KeyCtrlR,
}

// keyMsgFor synthesizes the key event for a palette selection.
func keyMsgFor(k string) tea.KeyMsg {
	if kt, ok := namedKeys[k]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

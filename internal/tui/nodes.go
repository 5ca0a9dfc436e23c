package tui

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/opsdeck/internal/backend"
	"github.com/opsdeck/opsdeck/internal/discovery"
)

// nodeRow is one selectable line on the nodes screen, merged from the
// persisted registry and live discovery.
type nodeRow struct {
	name     string
	endpoint string
	network  string
	live     bool
}

// scanDoneMsg delivers an mDNS scan outcome back into the event stream.
type scanDoneMsg struct {
	nodes []*discovery.Node
	err   error
}

// scanCmd runs one discovery pass off the event loop.
func scanCmd(timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		nodes, err := discovery.ScanForNodes(timeout)
		return scanDoneMsg{nodes: nodes, err: err}
	}
}

// NodesScreen lists known and freshly discovered platform nodes and
// lets the user pick the default one. Selecting a node records it in
// the registry and probes it with a status task; the recorded default
// takes effect on the next connection.
type NodesScreen struct {
	deps *Deps

	rows     []nodeRow
	index    int
	scanning bool
	scanErr  error
}

// NewNodesScreen creates the nodes section, pre-populated from the
// registry.
func NewNodesScreen(deps *Deps) *NodesScreen {
	s := &NodesScreen{deps: deps}
	s.rebuildRows(nil)
	return s
}

// rebuildRows merges registry entries with the latest scan results.
// Live nodes win over stale registry data for the same name.
func (s *NodesScreen) rebuildRows(found []*discovery.Node) {
	byName := make(map[string]nodeRow)

	for name, node := range s.deps.Registry.Nodes {
		byName[name] = nodeRow{
			name:     name,
			endpoint: node.Endpoint,
			network:  node.Network,
		}
	}
	for _, node := range found {
		byName[node.Name] = nodeRow{
			name:     node.Name,
			endpoint: node.Endpoint(),
			network:  node.Network,
			live:     true,
		}
	}

	rows := make([]nodeRow, 0, len(byName))
	for _, row := range byName {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })

	s.rows = rows
	if s.index >= len(s.rows) {
		s.index = 0
	}
}

// scanTimeout returns the configured discovery timeout.
func (s *NodesScreen) scanTimeout() time.Duration {
	if prefs := s.deps.Registry.Preferences; prefs != nil && prefs.DiscoverTimeout > 0 {
		return time.Duration(prefs.DiscoverTimeout) * time.Second
	}
	return discovery.DefaultScanTimeout
}

// Name implements Screen.
func (s *NodesScreen) Name() string { return "Nodes" }

// CommandKeys implements Screen.
func (s *NodesScreen) CommandKeys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scan network")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select node")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// ToggleKeys implements Screen.
func (s *NodesScreen) ToggleKeys() []key.Binding { return nil }

// OnEvent implements Screen.
func (s *NodesScreen) OnEvent(msg tea.Msg) Feedback {
	switch msg := msg.(type) {
	case scanDoneMsg:
		s.scanning = false
		s.scanErr = msg.err
		if msg.err == nil {
			for _, node := range msg.nodes {
				s.deps.Registry.RecordNode(node.Name, node.Endpoint(), node.Network)
			}
			s.rebuildRows(msg.nodes)
		}
		return None()

	case tea.KeyMsg:
		return s.onKey(msg)
	}
	return None()
}

func (s *NodesScreen) onKey(msg tea.KeyMsg) Feedback {
	switch msg.String() {
	case "s":
		if s.scanning {
			return None()
		}
		s.scanning = true
		s.scanErr = nil
		return None().WithCmd(scanCmd(s.scanTimeout()))

	case "up":
		if s.index > 0 {
			s.index--
		}

	case "down":
		if s.index < len(s.rows)-1 {
			s.index++
		}

	case "enter":
		if len(s.rows) == 0 {
			return None()
		}
		row := s.rows[s.index]
		if s.deps.Registry.Preferences != nil {
			s.deps.Registry.Preferences.DefaultNode = row.name
		}
		return None().WithTask(backend.FetchNodeStatus(), false)

	case "esc":
		return Pop()
	}
	return None()
}

// View implements Screen.
func (s *NodesScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(SectionStyle.Render("Platform nodes"))
	b.WriteString("\n\n")

	if len(s.rows) == 0 {
		b.WriteString(InfoStyle.Render("No known nodes. Press s to scan the local network."))
		b.WriteString("\n")
	}

	for i, row := range s.rows {
		line := row.name
		if row.network != "" {
			line += " [" + row.network + "]"
		}
		line += "  " + row.endpoint
		if row.live {
			line += "  " + StatusOKStyle.Render("●")
		}
		if row.name == s.defaultNode() {
			line += "  " + InfoStyle.Render("(default)")
		}
		if i == s.index {
			b.WriteString(SelectedMenuItemStyle.Render("▸ " + line))
		} else {
			b.WriteString(MenuItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case s.scanning:
		b.WriteString(WaitingStyle.Render("scanning…"))
	case s.scanErr != nil:
		b.WriteString(StatusFailStyle.Render("scan failed: " + s.scanErr.Error()))
	}
	return b.String()
}

func (s *NodesScreen) defaultNode() string {
	if prefs := s.deps.Registry.Preferences; prefs != nil {
		return prefs.DefaultNode
	}
	return ""
}

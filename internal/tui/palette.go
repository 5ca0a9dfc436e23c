package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// KeyType classifies a palette entry's binding.
type KeyType int

const (
	// KeyCommand triggers an action on the owning screen.
	KeyCommand KeyType = iota
	// KeyToggle flips a mode or flag on the owning screen.
	KeyToggle
)

// PaletteEntry is one launchable binding: the key it is bound to, its
// classification, and the label shown (and matched) in the launcher.
type PaletteEntry struct {
	Key     string
	KeyType KeyType
	Label   string
}

// paletteSource adapts entries to the fuzzy matcher.
type paletteSource []PaletteEntry

func (s paletteSource) String(i int) string { return s[i].Label }
func (s paletteSource) Len() int            { return len(s) }

// Palette is the fuzzy command launcher. It is independent of the form
// machine: activation captures the bindings the active screen advertises
// at that instant, and selecting an entry emits the bound key back to
// the screen's OnEvent rather than executing anything directly.
type Palette struct {
	entries []PaletteEntry
	input   textinput.Model
	matches []int // indices into entries, filtered by the typed text
	index   int
	active  bool
}

// NewPalette creates an inactive palette.
func NewPalette() *Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.Prompt = "❯ "
	ti.CharLimit = 64
	ti.Width = 40
	return &Palette{input: ti}
}

// Active reports whether the palette is capturing input.
func (p *Palette) Active() bool { return p.active }

// Open activates the palette over the given entries.
func (p *Palette) Open(entries []PaletteEntry) {
	p.entries = entries
	p.input.SetValue("")
	p.input.Focus()
	p.index = 0
	p.active = true
	p.refilter()
}

// Close deactivates the palette without selecting anything.
func (p *Palette) Close() {
	p.active = false
	p.input.Blur()
}

// OnEvent processes one key event while active. It returns the selected
// entry once the user confirms one; a nil entry means the palette either
// consumed the event or closed without a selection.
func (p *Palette) OnEvent(msg tea.KeyMsg) *PaletteEntry {
	switch msg.String() {
	case "esc":
		p.Close()
		return nil

	case "enter":
		if len(p.matches) == 0 {
			p.Close()
			return nil
		}
		entry := p.entries[p.matches[p.index]]
		p.Close()
		return &entry

	case "up":
		if p.index > 0 {
			p.index--
		}
		return nil

	case "down":
		if p.index < len(p.matches)-1 {
			p.index++
		}
		return nil
	}

	before := p.input.Value()
	p.input, _ = p.input.Update(msg)
	if p.input.Value() != before {
		p.refilter()
	}
	return nil
}

// refilter recomputes the match list for the typed text. An empty query
// shows every registered entry in registration order.
func (p *Palette) refilter() {
	p.index = 0
	query := p.input.Value()
	if query == "" {
		p.matches = make([]int, len(p.entries))
		for i := range p.entries {
			p.matches[i] = i
		}
		return
	}

	results := fuzzy.FindFrom(query, paletteSource(p.entries))
	p.matches = make([]int, len(results))
	for i, r := range results {
		p.matches[i] = r.Index
	}
}

// View renders the launcher box.
func (p *Palette) View() string {
	var b strings.Builder
	b.WriteString(p.input.View())
	b.WriteString("\n")

	if len(p.matches) == 0 {
		b.WriteString(InfoStyle.Render("no matching commands"))
	}

	for i, mi := range p.matches {
		entry := p.entries[mi]
		line := entry.Label + "  " + HelpStyle.Render("("+entry.Key+")")
		if i == p.index {
			b.WriteString(SelectedMenuItemStyle.Render("▸ " + line))
		} else {
			b.WriteString(MenuItemStyle.Render(line))
		}
		if i < len(p.matches)-1 {
			b.WriteString("\n")
		}
	}

	return PaletteBoxStyle.Render(b.String())
}

// PaletteEntries converts a screen's advertised bindings into palette
// entries, commands first, then toggles.
func PaletteEntries(s Screen) []PaletteEntry {
	var entries []PaletteEntry
	for _, b := range s.CommandKeys() {
		entries = append(entries, entryFromBinding(b, KeyCommand)...)
	}
	for _, b := range s.ToggleKeys() {
		entries = append(entries, entryFromBinding(b, KeyToggle)...)
	}
	return entries
}

// entryFromBinding builds an entry from the binding's first key and its
// help description. Unbound or help-less bindings contribute nothing.
func entryFromBinding(b key.Binding, kt KeyType) []PaletteEntry {
	keys := b.Keys()
	if len(keys) == 0 || b.Help().Desc == "" {
		return nil
	}
	return []PaletteEntry{{Key: keys[0], KeyType: kt, Label: b.Help().Desc}}
}

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testEntries() []PaletteEntry {
	return []PaletteEntry{
		{Key: "r", KeyType: KeyCommand, Label: "register identity"},
		{Key: "t", KeyType: KeyCommand, Label: "top up identity"},
		{Key: "w", KeyType: KeyToggle, Label: "toggle wait for completion"},
	}
}

func TestPaletteOpenShowsAllEntries(t *testing.T) {
	p := NewPalette()
	p.Open(testEntries())

	if !p.Active() {
		t.Fatal("palette should be active after Open()")
	}
	if len(p.matches) != 3 {
		t.Errorf("matches = %d, want 3 (empty query shows everything)", len(p.matches))
	}
}

func TestPaletteFuzzyFilter(t *testing.T) {
	p := NewPalette()
	p.Open(testEntries())

	for _, r := range "reg" {
		p.OnEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	if len(p.matches) == 0 {
		t.Fatal("query 'reg' should match at least one entry")
	}
	top := p.entries[p.matches[0]]
	if top.Label != "register identity" {
		t.Errorf("top match = %q, want 'register identity'", top.Label)
	}
}

func TestPaletteSelectEmitsEntry(t *testing.T) {
	p := NewPalette()
	p.Open(testEntries())

	p.OnEvent(tea.KeyMsg{Type: tea.KeyDown})
	entry := p.OnEvent(tea.KeyMsg{Type: tea.KeyEnter})

	if entry == nil {
		t.Fatal("enter should return the highlighted entry")
	}
	if entry.Key != "t" {
		t.Errorf("selected key = %q, want 't'", entry.Key)
	}
	if p.Active() {
		t.Error("palette should close after selection")
	}
}

func TestPaletteEscCloses(t *testing.T) {
	p := NewPalette()
	p.Open(testEntries())

	if entry := p.OnEvent(tea.KeyMsg{Type: tea.KeyEscape}); entry != nil {
		t.Errorf("esc returned entry %+v, want nil", entry)
	}
	if p.Active() {
		t.Error("palette should be inactive after esc")
	}
}

func TestPaletteEnterWithNoMatches(t *testing.T) {
	p := NewPalette()
	p.Open(testEntries())

	for _, r := range "zzzzqqq" {
		p.OnEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if entry := p.OnEvent(tea.KeyMsg{Type: tea.KeyEnter}); entry != nil {
		t.Errorf("enter with no matches returned %+v, want nil", entry)
	}
	if p.Active() {
		t.Error("palette should close on enter with no matches")
	}
}

func TestPaletteEntriesFromScreen(t *testing.T) {
	deps := newTestDeps()
	s := NewIdentitiesScreen(deps)

	entries := PaletteEntries(s)
	if len(entries) != 3 {
		t.Fatalf("PaletteEntries() = %d entries, want 3", len(entries))
	}
	if entries[0].Key != "r" || entries[0].KeyType != KeyCommand {
		t.Errorf("first entry = %+v, want command bound to 'r'", entries[0])
	}
}

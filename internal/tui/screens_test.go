package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/opsdeck/internal/backend"
	"github.com/opsdeck/opsdeck/internal/workflow"
)

// typeText feeds each rune of s to the screen as a separate key event.
func typeText(t *testing.T, s Screen, text string) {
	t.Helper()
	for _, r := range text {
		fb := s.OnEvent(pressRune(string(r)))
		if fb.Kind != FeedbackNone || fb.Task != nil {
			t.Fatalf("typing %q produced unexpected feedback %+v", r, fb)
		}
	}
}

func TestMenuScreenPushesDestination(t *testing.T) {
	m := NewMenuScreen(newTestDeps())

	// Second entry is the identities section
	m.OnEvent(tea.KeyMsg{Type: tea.KeyDown})
	fb := m.OnEvent(pressEnter())

	if fb.Kind != FeedbackPush {
		t.Fatalf("feedback kind = %v, want push", fb.Kind)
	}
	if _, ok := fb.Screen.(*IdentitiesScreen); !ok {
		t.Errorf("pushed screen = %T, want *IdentitiesScreen", fb.Screen)
	}

	// The cursor position survives the round trip: confirming again
	// without moving lands on the same destination.
	fb = m.OnEvent(pressEnter())
	if fb.Kind != FeedbackPush {
		t.Fatalf("second feedback kind = %v, want push", fb.Kind)
	}
	if _, ok := fb.Screen.(*IdentitiesScreen); !ok {
		t.Errorf("second pushed screen = %T, want *IdentitiesScreen", fb.Screen)
	}
}

func TestMenuScreenEscPops(t *testing.T) {
	m := NewMenuScreen(newTestDeps())

	fb := m.OnEvent(pressEsc())
	if fb.Kind != FeedbackPop {
		t.Errorf("feedback kind = %v, want pop (root pop quits)", fb.Kind)
	}
}

func TestIdentitiesScreenRegisterForm(t *testing.T) {
	deps := newTestDeps()
	s := NewIdentitiesScreen(deps)

	if fb := s.OnEvent(pressRune("r")); fb.Kind != FeedbackNone {
		t.Fatalf("starting form feedback = %+v, want none", fb)
	}
	if s.form == nil {
		t.Fatal("form should be active after 'r'")
	}

	typeText(t, s, "ops-primary")
	if fb := s.OnEvent(pressEnter()); fb.Task != nil {
		t.Fatalf("task built after first step: %+v", fb.Task)
	}

	typeText(t, s, "100000")
	fb := s.OnEvent(pressEnter())

	if fb.Task == nil {
		t.Fatal("completed form should carry a task")
	}
	if fb.Task.Kind != backend.TaskRegisterIdentity {
		t.Errorf("task kind = %v, want %v", fb.Task.Kind, backend.TaskRegisterIdentity)
	}
	if !fb.Block {
		t.Error("identity registration should block")
	}
	if s.form != nil {
		t.Error("form should be dropped after completion")
	}

	// The accepted alias feeds the completion history.
	items := deps.Histories.Aliases.Items()
	if len(items) == 0 || items[len(items)-1] != "ops-primary" {
		t.Errorf("alias history = %v, should end with ops-primary", items)
	}
}

func TestIdentitiesScreenAbortDropsForm(t *testing.T) {
	s := NewIdentitiesScreen(newTestDeps())

	s.OnEvent(pressRune("t"))
	if s.form == nil {
		t.Fatal("form should be active after 't'")
	}

	fb := s.OnEvent(tea.KeyMsg{Type: tea.KeyCtrlQ})
	if fb.Kind != FeedbackNone || fb.Task != nil {
		t.Errorf("abort feedback = %+v, want plain none", fb)
	}
	if s.form != nil {
		t.Error("form should be dropped after abort")
	}
}

func TestIdentitiesScreenEscPopsWhenIdle(t *testing.T) {
	s := NewIdentitiesScreen(newTestDeps())

	if fb := s.OnEvent(pressEsc()); fb.Kind != FeedbackPop {
		t.Errorf("idle esc feedback kind = %v, want pop", fb.Kind)
	}
}

func TestDocumentsScreenInsertFlow(t *testing.T) {
	s := NewDocumentsScreen(newTestDeps())

	s.OnEvent(pressRune("b"))
	if s.form == nil {
		t.Fatal("form should be active after 'b'")
	}

	// Selector: insert is the first action
	s.OnEvent(pressEnter())

	typeText(t, s, "GWRSAVFMjXx8")
	s.OnEvent(pressEnter())
	typeText(t, s, "note")
	s.OnEvent(pressEnter())
	typeText(t, s, `{"message":"hi"}`)
	fb := s.OnEvent(pressEnter())

	if fb.Task == nil {
		t.Fatal("completed broadcast should carry a task")
	}
	if fb.Task.Kind != backend.TaskBroadcastDocument {
		t.Fatalf("task kind = %v, want %v", fb.Task.Kind, backend.TaskBroadcastDocument)
	}
	doc := fb.Task.Document
	if doc.Action != backend.DocumentInsert {
		t.Errorf("action = %v, want insert", doc.Action)
	}
	if doc.ContractID != "GWRSAVFMjXx8" || doc.Type != "note" {
		t.Errorf("payload = %+v", doc)
	}
	if fb.Block {
		t.Error("document broadcasts are fire-and-forget")
	}
}

func TestDocumentsScreenDeleteBranchSteps(t *testing.T) {
	s := NewDocumentsScreen(newTestDeps())

	s.OnEvent(pressRune("b"))
	// Move to delete and confirm
	s.OnEvent(tea.KeyMsg{Type: tea.KeyDown})
	s.OnEvent(pressEnter())

	typeText(t, s, "GWRSAVFMjXx8")
	s.OnEvent(pressEnter())
	typeText(t, s, "DocId123")
	fb := s.OnEvent(pressEnter())

	if fb.Task == nil {
		t.Fatal("completed delete should carry a task")
	}
	doc := fb.Task.Document
	if doc.Action != backend.DocumentDelete {
		t.Errorf("action = %v, want delete", doc.Action)
	}
	if doc.DocumentID != "DocId123" {
		t.Errorf("document id = %v, want DocId123", doc.DocumentID)
	}
	if doc.Body != "" {
		t.Errorf("delete should carry no body, got %q", doc.Body)
	}
}

func TestStrategiesScreenRunWithDefaults(t *testing.T) {
	s := NewStrategiesScreen(newTestDeps())

	s.OnEvent(pressRune("s"))
	if s.form == nil {
		t.Fatal("form should be active after 's'")
	}

	// Accept the first preset, then its prefilled duration and rate.
	s.OnEvent(pressEnter())
	s.OnEvent(pressEnter())
	fb := s.OnEvent(pressEnter())

	if fb.Task == nil {
		t.Fatal("completed strategy form should carry a task")
	}
	if fb.Task.Kind != backend.TaskRunStrategy {
		t.Fatalf("task kind = %v, want %v", fb.Task.Kind, backend.TaskRunStrategy)
	}
	op := fb.Task.Strategy
	if op.Name != "steady-documents" || op.Seconds != 60 || op.OpsPerInterval != 5 {
		t.Errorf("strategy payload = %+v, want steady-documents/60/5", op)
	}
	if !fb.Block {
		t.Error("strategy run should block by default")
	}
}

func TestStrategiesScreenWaitToggle(t *testing.T) {
	s := NewStrategiesScreen(newTestDeps())

	s.OnEvent(pressRune("w")) // background mode
	s.OnEvent(pressRune("s"))
	s.OnEvent(pressEnter())
	s.OnEvent(pressEnter())
	fb := s.OnEvent(pressEnter())

	if fb.Task == nil {
		t.Fatal("completed strategy form should carry a task")
	}
	if fb.Block {
		t.Error("toggled-off wait should produce a non-blocking run")
	}
}

func TestNodesScreenSelectRecordsDefault(t *testing.T) {
	deps := newTestDeps()
	deps.Registry.RecordNode("node-7f3a", "ws://192.168.1.40:9443/ops", "testnet")
	s := NewNodesScreen(deps)

	fb := s.OnEvent(pressEnter())
	if fb.Task == nil || fb.Task.Kind != backend.TaskFetchNodeStatus {
		t.Fatalf("selecting a node should probe it, got %+v", fb.Task)
	}
	if deps.Registry.Preferences.DefaultNode != "node-7f3a" {
		t.Errorf("default node = %v, want node-7f3a", deps.Registry.Preferences.DefaultNode)
	}
}

func TestNodesScreenScanResults(t *testing.T) {
	deps := newTestDeps()
	s := NewNodesScreen(deps)

	if len(s.rows) != 0 {
		t.Fatalf("fresh screen rows = %d, want 0", len(s.rows))
	}

	fb := s.OnEvent(pressRune("s"))
	if fb.Cmd == nil {
		t.Fatal("scan should request an asynchronous command")
	}
	if !s.scanning {
		t.Error("screen should show scanning state")
	}

	// Deliver a scan outcome without running real mDNS.
	s.OnEvent(scanDoneMsg{nodes: nil, err: nil})
	if s.scanning {
		t.Error("scan state should clear when results arrive")
	}
}

func TestFormScreenPopsWithTask(t *testing.T) {
	deps := newTestDeps()
	s := NewFormScreen(workflow.NewForm(registerContractController{hist: deps.Histories}))

	typeText(t, s, "ops-notes")
	s.OnEvent(pressEnter())
	typeText(t, s, "note")
	fb := s.OnEvent(pressEnter())

	if fb.Kind != FeedbackPop {
		t.Fatalf("feedback kind = %v, want pop", fb.Kind)
	}
	if fb.Task == nil || fb.Task.Kind != backend.TaskRegisterContract {
		t.Fatalf("completed form should carry the contract task, got %+v", fb.Task)
	}
}

func TestFormScreenEscAtFirstStepPops(t *testing.T) {
	deps := newTestDeps()
	s := NewFormScreen(workflow.NewForm(registerContractController{hist: deps.Histories}))

	fb := s.OnEvent(pressEsc())
	if fb.Kind != FeedbackPop {
		t.Errorf("feedback kind = %v, want pop", fb.Kind)
	}
	if fb.Task != nil {
		t.Error("cancelled form must not carry a task")
	}
}

func TestScreenViewsArePure(t *testing.T) {
	deps := newTestDeps()
	screens := []Screen{
		NewMenuScreen(deps),
		NewIdentitiesScreen(deps),
		NewContractsScreen(deps),
		NewDocumentsScreen(deps),
		NewStrategiesScreen(deps),
		NewNodesScreen(deps),
	}

	for _, s := range screens {
		first := s.View(80, 24)
		second := s.View(80, 24)
		if first != second {
			t.Errorf("%s: rendering twice produced different output", s.Name())
		}
		if strings.TrimSpace(first) == "" {
			t.Errorf("%s: view is empty", s.Name())
		}
	}
}

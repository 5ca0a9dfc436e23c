package config

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, "opsdeck") {
		t.Errorf("GetConfigDir() = %v, should contain 'opsdeck'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}

	if reg.Nodes == nil {
		t.Error("NewRegistry().Nodes should not be nil")
	}

	if reg.History == nil {
		t.Error("NewRegistry().History should not be nil")
	}

	if reg.Preferences == nil {
		t.Fatal("NewRegistry().Preferences should not be nil")
	}

	if reg.Preferences.AutoDiscover != true {
		t.Error("NewRegistry().Preferences.AutoDiscover should be true by default")
	}

	if reg.Preferences.DiscoverTimeout != 10 {
		t.Errorf("NewRegistry().Preferences.DiscoverTimeout = %v, want 10", reg.Preferences.DiscoverTimeout)
	}

	if len(reg.Preferences.Strategies) == 0 {
		t.Error("NewRegistry() should ship default strategy presets")
	}
}

func TestRegistryEnsureNode(t *testing.T) {
	reg := NewRegistry()

	// First call should create the node
	node1 := reg.EnsureNode("node-7f3a")
	if node1 == nil {
		t.Fatal("EnsureNode() returned nil")
	}

	// Second call should return the same node
	node2 := reg.EnsureNode("node-7f3a")
	if node1 != node2 {
		t.Error("EnsureNode() should return same instance for same name")
	}

	// Different name should create a new node
	node3 := reg.EnsureNode("node-a912")
	if node1 == node3 {
		t.Error("EnsureNode() should create new instance for different name")
	}
}

func TestRegistryRecordNode(t *testing.T) {
	reg := NewRegistry()

	before := time.Now()
	reg.RecordNode("node-7f3a", "ws://192.168.1.40:9443/ops", "testnet")
	after := time.Now()

	node := reg.GetNode("node-7f3a")
	if node == nil {
		t.Fatal("Node should exist after RecordNode()")
	}

	if node.Endpoint != "ws://192.168.1.40:9443/ops" {
		t.Errorf("Endpoint = %v, want ws://192.168.1.40:9443/ops", node.Endpoint)
	}

	if node.Network != "testnet" {
		t.Errorf("Network = %v, want testnet", node.Network)
	}

	if node.LastSeen.Before(before) || node.LastSeen.After(after) {
		t.Errorf("LastSeen = %v, should be between %v and %v", node.LastSeen, before, after)
	}
}

func TestRegistryHistory(t *testing.T) {
	reg := NewRegistry()

	if got := reg.HistoryFor("identity_id"); got != nil {
		t.Errorf("HistoryFor() on empty registry = %v, want nil", got)
	}

	reg.SetHistory("identity_id", []string{"a", "b"})

	got := reg.HistoryFor("identity_id")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("HistoryFor() = %v, want [a b]", got)
	}

	// Families are independent
	if got := reg.HistoryFor("contract_id"); got != nil {
		t.Errorf("HistoryFor(contract_id) = %v, want nil", got)
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	reg := NewRegistry()
	reg.RecordNode("node-7f3a", "ws://192.168.1.40:9443/ops", "testnet")
	reg.EnsureNode("node-7f3a").Nickname = "lab node"
	reg.SetHistory("alias", []string{"ops-primary", "ops-secondary"})
	reg.Preferences.DefaultNode = "node-7f3a"

	data, err := yaml.Marshal(reg)
	if err != nil {
		t.Fatalf("Failed to marshal registry: %v", err)
	}

	var loaded Registry
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Failed to unmarshal registry: %v", err)
	}

	node := loaded.GetNode("node-7f3a")
	if node == nil {
		t.Fatal("Node should exist in loaded registry")
	}

	if node.Nickname != "lab node" {
		t.Errorf("Loaded nickname = %v, want 'lab node'", node.Nickname)
	}

	if node.Endpoint != "ws://192.168.1.40:9443/ops" {
		t.Errorf("Loaded endpoint = %v, want ws://192.168.1.40:9443/ops", node.Endpoint)
	}

	history := loaded.HistoryFor("alias")
	if len(history) != 2 || history[0] != "ops-primary" {
		t.Errorf("Loaded history = %v, want [ops-primary ops-secondary]", history)
	}

	if loaded.Preferences.DefaultNode != "node-7f3a" {
		t.Errorf("Loaded default node = %v, want node-7f3a", loaded.Preferences.DefaultNode)
	}
}

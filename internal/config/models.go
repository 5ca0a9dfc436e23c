package config

import "time"

// Registry represents the entire user configuration file.
// This stores known platform nodes, application preferences, and the
// persisted seeds for free-text completion history.
type Registry struct {
	Version     int                 `yaml:"version"`
	Nodes       map[string]*Node    `yaml:"nodes,omitempty"` // Keyed by node name
	Preferences *Preferences        `yaml:"preferences,omitempty"`
	History     map[string][]string `yaml:"history,omitempty"` // Completion seeds keyed by field family
}

// Node represents a known platform node. Nodes are added from mDNS
// discovery or manual entry; the dashboard offers them on the node screen
// without rescanning.
type Node struct {
	Nickname string    `yaml:"nickname,omitempty"` // User-friendly name
	Endpoint string    `yaml:"endpoint"`           // Websocket endpoint (ws://host:port/ops)
	Network  string    `yaml:"network,omitempty"`  // Advertised network name (e.g., "testnet")
	LastSeen time.Time `yaml:"last_seen,omitempty"`
}

// StrategyPreset is a named load-test strategy offered on the strategies
// screen. Presets only describe the script to request; the executor owns
// the script itself.
type StrategyPreset struct {
	Name           string `yaml:"name"`
	Seconds        int    `yaml:"seconds"`
	OpsPerInterval int    `yaml:"ops_per_interval"`
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	AutoDiscover    bool             `yaml:"auto_discover"`    // Scan for nodes on startup
	DiscoverTimeout int              `yaml:"discover_timeout"` // mDNS discovery timeout in seconds
	DefaultNode     string           `yaml:"default_node,omitempty"`
	Strategies      []StrategyPreset `yaml:"strategies,omitempty"`
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Nodes:   make(map[string]*Node),
		History: make(map[string][]string),
		Preferences: &Preferences{
			AutoDiscover:    true,
			DiscoverTimeout: 10,
			Strategies: []StrategyPreset{
				{Name: "steady-documents", Seconds: 60, OpsPerInterval: 5},
				{Name: "identity-burst", Seconds: 30, OpsPerInterval: 20},
			},
		},
	}
}

// GetNode retrieves node metadata by name.
// Returns nil if the node doesn't exist in the registry.
func (r *Registry) GetNode(name string) *Node {
	return r.Nodes[name]
}

// EnsureNode ensures a node entry exists in the registry and returns it.
func (r *Registry) EnsureNode(name string) *Node {
	if r.Nodes == nil {
		r.Nodes = make(map[string]*Node)
	}

	if node, exists := r.Nodes[name]; exists {
		return node
	}

	node := &Node{}
	r.Nodes[name] = node
	return node
}

// RecordNode updates the endpoint and last-seen timestamp for a node.
func (r *Registry) RecordNode(name, endpoint, network string) {
	node := r.EnsureNode(name)
	node.Endpoint = endpoint
	node.Network = network
	node.LastSeen = time.Now()
}

// HistoryFor returns the persisted completion seeds for a field family
// (e.g. "identity_id", "contract_id"). Returns nil when none recorded.
func (r *Registry) HistoryFor(family string) []string {
	if r.History == nil {
		return nil
	}
	return r.History[family]
}

// SetHistory replaces the persisted completion seeds for a field family.
func (r *Registry) SetHistory(family string, items []string) {
	if r.History == nil {
		r.History = make(map[string][]string)
	}
	r.History[family] = items
}

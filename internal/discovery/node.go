package discovery

import (
	"fmt"
	"time"
)

// Node represents a discovered platform node on the local network.
type Node struct {
	// Name is the advertised instance name (e.g., "node-7f3a")
	Name string

	// Hostname is the mDNS hostname (e.g., "node-7f3a.local.")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.1.40")
	IP string

	// Port is the websocket port the operations endpoint listens on
	Port int

	// Network is the platform network the node serves, from the TXT
	// record (e.g., "testnet", "devnet"). Empty when not advertised.
	Network string

	// Metadata contains additional mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the node was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the node.
func (n *Node) String() string {
	if n.Network != "" {
		return fmt.Sprintf("%s (%s) at %s:%d", n.Name, n.Network, n.IP, n.Port)
	}
	return fmt.Sprintf("%s at %s:%d", n.Name, n.IP, n.Port)
}

// Endpoint returns the websocket endpoint for the node's operations API.
func (n *Node) Endpoint() string {
	return fmt.Sprintf("ws://%s:%d/ops", n.IP, n.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found.
func (n *Node) GetMetadata(key string) string {
	if n.Metadata == nil {
		return ""
	}
	return n.Metadata[key]
}

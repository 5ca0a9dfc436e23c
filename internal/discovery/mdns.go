package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type platform nodes advertise.
	ServiceType = "_opsdeck._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for node discovery
	DefaultScanTimeout = 10 * time.Second

	// DefaultPort is the default operations port for platform nodes
	DefaultPort = 9443
)

// Scanner handles mDNS node discovery
type Scanner struct {
	// Timeout is the maximum time to wait for node discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForNodes discovers all platform nodes on the local network.
// Returns a list of discovered nodes or an error.
func (s *Scanner) ScanForNodes() ([]*Node, error) {
	return s.ScanForNodesWithContext(context.Background())
}

// ScanForNodesWithContext discovers nodes with a custom context
func (s *Scanner) ScanForNodesWithContext(ctx context.Context) ([]*Node, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	nodes := make([]*Node, 0)
	done := make(chan struct{})

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		defer close(done)
		for entry := range entries {
			node := ParseServiceEntry(entry)
			if node != nil {
				nodes = append(nodes, node)
			}
		}
	}()

	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for context to complete (timeout or cancellation), then for the
	// collector to drain the closed entries channel.
	<-ctx.Done()
	<-done

	return nodes, nil
}

// WaitForNode waits for a specific node by instance name.
// Returns the node or an error if not found within timeout.
func (s *Scanner) WaitForNode(name string) (*Node, error) {
	return s.WaitForNodeWithContext(context.Background(), name)
}

// WaitForNodeWithContext waits for a specific node with a custom context
func (s *Scanner) WaitForNodeWithContext(ctx context.Context, name string) (*Node, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	nodeChan := make(chan *Node, 1)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			node := ParseServiceEntry(entry)
			if node != nil && node.Name == name {
				nodeChan <- node
				cancel() // Found the node, cancel context
				return
			}
		}
	}()

	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case node := <-nodeChan:
		return node, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("node %s not found within timeout", name)
	}
}

// ParseServiceEntry converts a zeroconf service entry to a Node.
// Returns nil if the entry does not describe a usable node.
func ParseServiceEntry(entry *zeroconf.ServiceEntry) *Node {
	if entry.Instance == "" {
		return nil
	}

	// Get IP address (prefer IPv4)
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	// Parse TXT records into metadata ("key=value" format)
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Node{
		Name:         entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Network:      metadata["network"],
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// ScanForNodes is a convenience function to scan for nodes with a custom timeout
func ScanForNodes(timeout time.Duration) ([]*Node, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.ScanForNodes()
}

// QuickScan performs a fast scan with a 3-second timeout
func QuickScan() ([]*Node, error) {
	scanner := NewScanner()
	scanner.Timeout = 3 * time.Second
	return scanner.ScanForNodes()
}

// Package discovery provides mDNS-based discovery of platform nodes.
//
// Platform nodes advertise their operations endpoint as "_opsdeck._tcp"
// services. The scanner browses for those advertisements, extracts the
// node name, address, port, and TXT-record metadata (most importantly the
// "network" key), and returns the collected nodes after the timeout.
//
// # Usage
//
//	nodes, err := discovery.ScanForNodes(10 * time.Second)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, node := range nodes {
//		fmt.Printf("Found: %s -> %s\n", node, node.Endpoint())
//	}
//
// Discovery requires the node and the operator workstation to share a
// multicast domain; nodes on remote networks are added manually through
// the config registry instead.
package discovery

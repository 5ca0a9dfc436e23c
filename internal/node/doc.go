// Package node implements a simulated platform node for dashboard
// development and end-to-end tests.
//
// The simulator serves the same websocket operations endpoint a real
// node does and answers every task frame with a plausible result frame:
// identity and contract registrations return deterministic identifiers,
// strategy runs pace themselves to their requested duration, and status
// queries report connection counts. It can advertise itself over mDNS
// so the dashboard's discovery screen finds it like any other node.
package node

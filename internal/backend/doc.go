// Package backend defines the task hand-off boundary between the
// dashboard and the external platform executor.
//
// The workflow core produces Task values from completed forms and never
// executes them; the Dispatcher queues them for an executor and routes
// completion notifications back so the application loop can deliver them
// into the event stream. Two executors are provided: Client, which
// exchanges JSON frames with a platform node over a websocket, and the
// dispatcher's Loopback, which completes tasks locally when no node is
// connected.
//
// # Protocol
//
// Each task is one JSON text frame:
//
//	{"kind": "register_identity", "identity": {"alias": "ops", "credits": 50000}}
//
// and each completion is one JSON text frame:
//
//	{"kind": "register_identity", "ok": true, "detail": "..."}
//
// The dashboard treats the detail field as opaque display text.
package backend

package backend

import (
	"encoding/json"
	"fmt"
)

// TaskKind identifies the backend operation a task describes.
type TaskKind string

const (
	TaskRegisterIdentity  TaskKind = "register_identity"
	TaskTopUpIdentity     TaskKind = "topup_identity"
	TaskRegisterContract  TaskKind = "register_contract"
	TaskBroadcastDocument TaskKind = "broadcast_document"
	TaskRunStrategy       TaskKind = "run_strategy"
	TaskFetchNodeStatus   TaskKind = "node_status"
)

// DocumentAction selects the document broadcast variant.
type DocumentAction string

const (
	DocumentInsert  DocumentAction = "insert"
	DocumentDelete  DocumentAction = "delete"
	DocumentReplace DocumentAction = "replace"
)

// IdentityOp carries the payload for identity tasks.
type IdentityOp struct {
	Alias   string `json:"alias,omitempty"`
	ID      string `json:"id,omitempty"`
	Credits uint64 `json:"credits,omitempty"`
}

// ContractOp carries the payload for contract registration.
type ContractOp struct {
	Name         string `json:"name"`
	DocumentType string `json:"document_type"`
}

// DocumentOp carries the payload for a document broadcast.
type DocumentOp struct {
	Action     DocumentAction `json:"action"`
	ContractID string         `json:"contract_id"`
	Type       string         `json:"type,omitempty"`
	DocumentID string         `json:"document_id,omitempty"`
	Body       string         `json:"body,omitempty"`
}

// StrategyOp carries the payload for a scripted load-test run.
type StrategyOp struct {
	Name           string `json:"name"`
	Seconds        int    `json:"seconds"`
	OpsPerInterval int    `json:"ops_per_interval"`
}

// Task is a fully described unit of backend intent. The dashboard builds
// tasks from completed forms and hands them to the dispatcher; it never
// executes them itself. Exactly one payload field is set, matching Kind.
type Task struct {
	Kind     TaskKind    `json:"kind"`
	Identity *IdentityOp `json:"identity,omitempty"`
	Contract *ContractOp `json:"contract,omitempty"`
	Document *DocumentOp `json:"document,omitempty"`
	Strategy *StrategyOp `json:"strategy,omitempty"`
}

// RegisterIdentity builds a task that registers a new identity funded with
// the given number of credits.
func RegisterIdentity(alias string, credits uint64) Task {
	return Task{
		Kind:     TaskRegisterIdentity,
		Identity: &IdentityOp{Alias: alias, Credits: credits},
	}
}

// TopUpIdentity builds a task that adds credits to an existing identity.
func TopUpIdentity(id string, credits uint64) Task {
	return Task{
		Kind:     TaskTopUpIdentity,
		Identity: &IdentityOp{ID: id, Credits: credits},
	}
}

// RegisterContract builds a task that registers a data contract with a
// single initial document type.
func RegisterContract(name, documentType string) Task {
	return Task{
		Kind:     TaskRegisterContract,
		Contract: &ContractOp{Name: name, DocumentType: documentType},
	}
}

// BroadcastDocument builds a document state transition task.
func BroadcastDocument(op DocumentOp) Task {
	return Task{Kind: TaskBroadcastDocument, Document: &op}
}

// RunStrategy builds a task that starts a scripted load-test strategy.
func RunStrategy(name string, seconds, opsPerInterval int) Task {
	return Task{
		Kind:     TaskRunStrategy,
		Strategy: &StrategyOp{Name: name, Seconds: seconds, OpsPerInterval: opsPerInterval},
	}
}

// FetchNodeStatus builds a task that queries the connected node's status.
func FetchNodeStatus() Task {
	return Task{Kind: TaskFetchNodeStatus}
}

// Describe returns a short human-readable summary used in chrome and logs.
func (t Task) Describe() string {
	switch t.Kind {
	case TaskRegisterIdentity:
		return fmt.Sprintf("register identity %q (%d credits)", t.Identity.Alias, t.Identity.Credits)
	case TaskTopUpIdentity:
		return fmt.Sprintf("top up identity %s (%d credits)", t.Identity.ID, t.Identity.Credits)
	case TaskRegisterContract:
		return fmt.Sprintf("register contract %q", t.Contract.Name)
	case TaskBroadcastDocument:
		return fmt.Sprintf("%s document on contract %s", t.Document.Action, t.Document.ContractID)
	case TaskRunStrategy:
		return fmt.Sprintf("run strategy %q for %ds", t.Strategy.Name, t.Strategy.Seconds)
	case TaskFetchNodeStatus:
		return "fetch node status"
	}
	return string(t.Kind)
}

// Encode serializes the task for the wire.
func (t Task) Encode() ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode task: %w", err)
	}
	return data, nil
}

// DecodeTask parses a task frame from the wire. Used by the node side
// of the protocol.
func DecodeTask(data []byte) (Task, error) {
	var t Task
	if err := json.Unmarshal(data, &t); err != nil {
		return Task{}, fmt.Errorf("failed to decode task: %w", err)
	}
	return t, nil
}

// Result is the completion notification for a dispatched task. The
// dashboard only inspects it far enough to unblock input and show a line
// of detail; interpretation of failures belongs to the executor.
type Result struct {
	Kind   TaskKind `json:"kind"`
	OK     bool     `json:"ok"`
	Detail string   `json:"detail,omitempty"`
}

// Encode serializes the result for the wire.
func (r Result) Encode() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode task result: %w", err)
	}
	return data, nil
}

// DecodeResult parses a completion notification from the wire.
func DecodeResult(data []byte) (Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, fmt.Errorf("failed to decode task result: %w", err)
	}
	return r, nil
}

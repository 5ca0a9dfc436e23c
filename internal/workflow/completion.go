package workflow

import (
	"iter"
	"strings"
)

// Completion is a single suggestion offered for a text input. Any type
// that renders as text qualifies.
type Completion interface {
	String() string
}

// CompletionEngine is a pluggable suggestion source queried by text
// inputs as the user types. Engines never mutate their backing store as
// a side effect of producing suggestions; recording happens only through
// Record, which the owning input invokes when it completes.
type CompletionEngine interface {
	// Completions returns a finite, lazily produced sequence of
	// suggestions for the given partial input. The sequence is recomputed
	// on every call and may be enumerated more than once. An empty input
	// yields all candidates.
	Completions(input string) iter.Seq[Completion]

	// Record adds an accepted value to the backing store.
	Record(value string)
}

// historyItem adapts a plain history string to the Completion interface.
type historyItem string

func (h historyItem) String() string { return string(h) }

// HistoryEngine suggests previously accepted values, most recent first.
// Consecutive duplicate submissions collapse into one entry; the same
// value re-accepted later appears at its new position only.
type HistoryEngine struct {
	items []string // insertion order, oldest first
}

// NewHistoryEngine creates a history engine, optionally seeded with
// previously persisted values (oldest first).
func NewHistoryEngine(seed ...string) *HistoryEngine {
	e := &HistoryEngine{}
	for _, v := range seed {
		e.Record(v)
	}
	return e
}

// Record appends an accepted value. Empty values and immediate repeats
// are ignored; re-accepting an older value moves it to the front of the
// suggestion order.
func (e *HistoryEngine) Record(value string) {
	if value == "" {
		return
	}
	if n := len(e.items); n > 0 && e.items[n-1] == value {
		return
	}
	for i, existing := range e.items {
		if existing == value {
			e.items = append(e.items[:i], e.items[i+1:]...)
			break
		}
	}
	e.items = append(e.items, value)
}

// Completions yields history entries containing the input as a
// case-insensitive substring, most recent first. An empty input yields
// the full history.
func (e *HistoryEngine) Completions(input string) iter.Seq[Completion] {
	needle := strings.ToLower(input)
	return func(yield func(Completion) bool) {
		for i := len(e.items) - 1; i >= 0; i-- {
			item := e.items[i]
			if needle != "" && !strings.Contains(strings.ToLower(item), needle) {
				continue
			}
			if !yield(historyItem(item)) {
				return
			}
		}
	}
}

// Items returns the recorded history oldest first, for persistence.
func (e *HistoryEngine) Items() []string {
	out := make([]string, len(e.items))
	copy(out, e.items)
	return out
}

// CollectCompletions materializes an engine's suggestions for the given
// input, capped at limit (0 means no cap). Inputs use this to build the
// displayed suggestion list.
func CollectCompletions(engine CompletionEngine, input string, limit int) []string {
	if engine == nil {
		return nil
	}
	var out []string
	for c := range engine.Completions(input) {
		out = append(out, c.String())
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

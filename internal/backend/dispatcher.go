package backend

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/opsdeck/opsdeck/internal/logging"
)

const (
	// DefaultQueueSize bounds the number of tasks waiting for the executor.
	// The UI blocks new form input while a blocking task is in flight, so
	// the queue only ever holds a handful of fire-and-forget tasks.
	DefaultQueueSize = 16
)

// queued pairs a task with the dispatcher generation it was submitted
// under. Results from stale generations are dropped.
type queued struct {
	task Task
	gen  uint64
}

// Dispatcher is the hand-off point between completed forms and the
// external task executor. Submit never blocks the UI loop; results flow
// back through Results so the application can deliver them into the
// event stream.
type Dispatcher struct {
	mu    sync.Mutex
	gen   uint64
	tasks chan queued
	out   chan Result
}

// NewDispatcher creates a dispatcher with the default queue size.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		tasks: make(chan queued, DefaultQueueSize),
		out:   make(chan Result, DefaultQueueSize),
	}
}

// Submit places a task on the executor queue. It returns an error only
// when the queue is full, which the caller surfaces as a rejected
// operation rather than blocking.
func (d *Dispatcher) Submit(t Task) error {
	d.mu.Lock()
	gen := d.gen
	d.mu.Unlock()

	select {
	case d.tasks <- queued{task: t, gen: gen}:
		logging.Debug("task submitted", zap.String("task", t.Describe()))
		return nil
	default:
		return fmt.Errorf("task queue full, %s not submitted", t.Describe())
	}
}

// Cancel discards the reference to any in-flight task: results produced
// for tasks submitted before the cancel are dropped. The executor itself
// is not interrupted; cancellation of the network call is its concern.
func (d *Dispatcher) Cancel() {
	d.mu.Lock()
	d.gen++
	d.mu.Unlock()
	logging.Debug("pending task reference discarded")
}

// Results returns the channel completion notifications arrive on.
func (d *Dispatcher) Results() <-chan Result {
	return d.out
}

// deliver forwards a result unless the submitting generation has been
// cancelled in the meantime.
func (d *Dispatcher) deliver(gen uint64, r Result) {
	d.mu.Lock()
	stale := gen != d.gen
	d.mu.Unlock()
	if stale {
		logging.Debug("dropping result for cancelled task", zap.String("kind", string(r.Kind)))
		return
	}
	select {
	case d.out <- r:
	default:
		logging.Warn("result channel full, dropping completion", zap.String("kind", string(r.Kind)))
	}
}

// Loopback consumes the task queue and completes every task immediately
// without touching the network. Used when no node is connected and by
// tests; it preserves the hand-off contract so the UI behaves identically.
func (d *Dispatcher) Loopback(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case q := <-d.tasks:
			d.deliver(q.gen, Result{
				Kind:   q.task.Kind,
				OK:     true,
				Detail: "completed locally (no node connected)",
			})
		}
	}
}

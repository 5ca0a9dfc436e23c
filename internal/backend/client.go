package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/opsdeck/opsdeck/internal/logging"
)

const (
	// DefaultDialTimeout is the websocket handshake timeout.
	DefaultDialTimeout = 10 * time.Second

	// writeWait is the time allowed to write a task frame to the node.
	writeWait = 10 * time.Second

	// reconnectDelay is the pause before redialing a dropped connection.
	reconnectDelay = 2 * time.Second
)

// Client executes dispatched tasks against a platform node over a
// websocket JSON protocol. One task is in flight per connection at a
// time; the node answers each task frame with a result frame.
type Client struct {
	endpoint   string
	dispatcher *Dispatcher
	dialer     *websocket.Dialer
}

// NewClient creates a client that consumes the dispatcher's queue and
// reports completions back through it.
func NewClient(endpoint string, d *Dispatcher) *Client {
	return &Client{
		endpoint:   endpoint,
		dispatcher: d,
		dialer: &websocket.Dialer{
			HandshakeTimeout: DefaultDialTimeout,
		},
	}
}

// Run pumps tasks to the node until the context is cancelled. Connection
// failures complete the affected task with a failed result and trigger a
// redial; the UI never waits on a connection inline.
func (c *Client) Run(ctx context.Context) {
	var conn *websocket.Conn
	defer func() {
		if conn != nil {
			_ = conn.Close()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case q := <-c.dispatcher.tasks:
			if conn == nil {
				var err error
				conn, err = c.dial(ctx)
				if err != nil {
					c.dispatcher.deliver(q.gen, Result{
						Kind:   q.task.Kind,
						OK:     false,
						Detail: fmt.Sprintf("node unreachable: %v", err),
					})
					continue
				}
			}

			res, err := c.execute(conn, q.task)
			if err != nil {
				logging.Warn("task exchange failed, dropping connection",
					zap.String("task", q.task.Describe()),
					zap.Error(err),
				)
				_ = conn.Close()
				conn = nil
				c.dispatcher.deliver(q.gen, Result{
					Kind:   q.task.Kind,
					OK:     false,
					Detail: err.Error(),
				})
				continue
			}
			c.dispatcher.deliver(q.gen, res)
		}
	}
}

// dial connects to the node, retrying once after a short delay.
func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, _, err := c.dialer.DialContext(ctx, c.endpoint, nil)
	if err == nil {
		logging.Info("connected to node", zap.String("endpoint", c.endpoint))
		return conn, nil
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(reconnectDelay):
	}

	conn, _, err = c.dialer.DialContext(ctx, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", c.endpoint, err)
	}
	logging.Info("connected to node", zap.String("endpoint", c.endpoint))
	return conn, nil
}

// execute writes one task frame and reads its result frame.
func (c *Client) execute(conn *websocket.Conn, t Task) (Result, error) {
	data, err := t.Encode()
	if err != nil {
		return Result{}, err
	}

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return Result{}, fmt.Errorf("failed to set write deadline: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return Result{}, fmt.Errorf("failed to send task: %w", err)
	}
	logging.Info("task sent", zap.String("task", t.Describe()))

	// No read deadline here: strategy runs legitimately take as long as
	// the strategy's configured duration.
	_, payload, err := conn.ReadMessage()
	if err != nil {
		return Result{}, fmt.Errorf("failed to read task result: %w", err)
	}

	res, err := DecodeResult(payload)
	if err != nil {
		return Result{}, err
	}
	logging.Info("task completed",
		zap.String("kind", string(res.Kind)),
		zap.Bool("ok", res.OK),
	)
	return res, nil
}

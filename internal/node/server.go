package node

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/opsdeck/opsdeck/internal/backend"
	"github.com/opsdeck/opsdeck/internal/discovery"
	"github.com/opsdeck/opsdeck/internal/logging"
)

// Config controls the simulated node.
type Config struct {
	Host      string
	Port      int    // 0 picks a free port
	Name      string // mDNS instance name
	Network   string // advertised network name, e.g. "devnet"
	Advertise bool   // announce the node via mDNS
	LogLevel  string
}

// Server is a simulated platform node: it serves the operations
// websocket endpoint and answers every task frame with a plausible
// result frame. It exists for dashboard development and end-to-end
// tests; it holds no real state machine.
type Server struct {
	config     *Config
	listener   net.Listener
	httpServer *http.Server
	mdns       *zeroconf.Server
	upgrader   websocket.Upgrader

	mu          sync.Mutex
	activeConns map[string]*websocket.Conn

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a simulated node.
func New(config *Config) (*Server, error) {
	if config.LogLevel != "" {
		if err := logging.Initialize(config.LogLevel); err != nil {
			return nil, fmt.Errorf("failed to initialize logging: %w", err)
		}
	}
	if config.Name == "" {
		config.Name = "opsdeck-sim"
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		config:      config,
		activeConns: make(map[string]*websocket.Conn),
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

// Start begins listening and, when configured, advertising. It returns
// once the node is reachable; Shutdown stops it.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	mux := http.NewServeMux()
	mux.HandleFunc("/ops", s.handleOps)

	s.httpServer = &http.Server{Handler: mux}
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logging.Error("node server stopped", zap.Error(err))
		}
	}()

	logging.Info("simulated node listening",
		zap.String("addr", listener.Addr().String()),
		zap.String("name", s.config.Name),
	)

	if s.config.Advertise {
		port := listener.Addr().(*net.TCPAddr).Port
		txt := []string{"network=" + s.config.Network}
		mdns, err := zeroconf.Register(s.config.Name, discovery.ServiceType, discovery.ServiceDomain, port, txt, nil)
		if err != nil {
			_ = s.httpServer.Close()
			return fmt.Errorf("failed to register mDNS service: %w", err)
		}
		s.mdns = mdns
		logging.Info("advertising via mDNS",
			zap.String("service", discovery.ServiceType),
			zap.String("network", s.config.Network),
		)
	}

	return nil
}

// Addr returns the listening address, valid after Start.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Endpoint returns the websocket endpoint clients should dial.
func (s *Server) Endpoint() string {
	return "ws://" + s.Addr() + "/ops"
}

// Shutdown stops accepting connections, closes the active ones, and
// withdraws the mDNS advertisement.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()

	if s.mdns != nil {
		s.mdns.Shutdown()
	}

	s.mu.Lock()
	for addr, conn := range s.activeConns {
		_ = conn.Close()
		delete(s.activeConns, addr)
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// ActiveConnections reports the number of connected dashboards.
func (s *Server) ActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activeConns)
}

// handleOps upgrades the connection and answers task frames until the
// dashboard disconnects.
func (s *Server) handleOps(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	remote := r.RemoteAddr
	s.mu.Lock()
	s.activeConns[remote] = conn
	s.mu.Unlock()

	logging.Info("dashboard connected", zap.String("remote_addr", remote))

	defer func() {
		s.mu.Lock()
		delete(s.activeConns, remote)
		s.mu.Unlock()
		_ = conn.Close()
		logging.Info("dashboard disconnected", zap.String("remote_addr", remote))
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		task, err := backend.DecodeTask(data)
		if err != nil {
			logging.Warn("unreadable task frame",
				zap.String("remote_addr", remote),
				zap.Error(err),
			)
			continue
		}

		logging.Info("task received",
			zap.String("remote_addr", remote),
			zap.String("task", task.Describe()),
		)

		res := s.simulate(task)

		payload, err := res.Encode()
		if err != nil {
			logging.Error("failed to encode result", zap.Error(err))
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// simulate produces a plausible result for the task, pacing strategy
// runs to their requested duration so blocking behaves realistically.
func (s *Server) simulate(task backend.Task) backend.Result {
	switch task.Kind {
	case backend.TaskRegisterIdentity:
		return okResult(task.Kind, "id: "+pseudoIdentifier(task.Identity.Alias))

	case backend.TaskTopUpIdentity:
		return okResult(task.Kind, fmt.Sprintf("balance increased by %d credits", task.Identity.Credits))

	case backend.TaskRegisterContract:
		return okResult(task.Kind, "contract id: "+pseudoIdentifier(task.Contract.Name))

	case backend.TaskBroadcastDocument:
		return okResult(task.Kind, fmt.Sprintf("%s accepted", task.Document.Action))

	case backend.TaskRunStrategy:
		d := time.Duration(task.Strategy.Seconds) * time.Second
		select {
		case <-s.ctx.Done():
			return backend.Result{Kind: task.Kind, OK: false, Detail: "node shutting down"}
		case <-time.After(d):
		}
		ops := task.Strategy.Seconds * task.Strategy.OpsPerInterval
		return okResult(task.Kind, fmt.Sprintf("strategy %q finished, %d operations", task.Strategy.Name, ops))

	case backend.TaskFetchNodeStatus:
		return okResult(task.Kind, fmt.Sprintf("%s on %s, %d connection(s)",
			s.config.Name, s.config.Network, s.ActiveConnections()))
	}

	return backend.Result{
		Kind:   task.Kind,
		OK:     false,
		Detail: fmt.Sprintf("unknown task kind %q", task.Kind),
	}
}

func okResult(kind backend.TaskKind, detail string) backend.Result {
	return backend.Result{Kind: kind, OK: true, Detail: detail}
}

package fleet

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-slmp/slmp/clog"
	"github.com/go-slmp/slmp/session"
)

// ConnectionManager holds a map endpoint -> worker under a mutex, and is
// the public entry point for the fleet scheduler (spec §4.6).
type ConnectionManager struct {
	cfg session.Config
	log clog.Clog

	mu      sync.Mutex
	workers map[string]*worker
}

// NewConnectionManager returns an empty manager using cfg for every
// Session it opens.
func NewConnectionManager(cfg session.Config) *ConnectionManager {
	return &ConnectionManager{
		cfg:     cfg,
		log:     clog.NewLogger("fleet:manager"),
		workers: make(map[string]*worker),
	}
}

// Connect opens a session for props and starts polling it, delivering
// results to callback. If an entry already exists for this endpoint it is
// closed and evicted first, with a 100ms settle before the replacement is
// created (spec §4.6 "connect").
func (m *ConnectionManager) Connect(props session.ConnectionProps, callback Callback) error {
	endpoint := props.Endpoint()

	if old := m.evict(endpoint); old != nil {
		if err := old.close(); err != nil {
			m.log.Warn("closing prior worker for %s: %v", endpoint, err)
		}
		time.Sleep(100 * time.Millisecond)
	}

	sess, err := session.New(props, m.cfg)
	if err != nil {
		return err
	}
	if err := sess.Connect(); err != nil {
		return fmt.Errorf("fleet: connect %s: %w", endpoint, err)
	}

	w := newWorker(endpoint, sess, callback)
	w.start()

	m.mu.Lock()
	m.workers[endpoint] = w
	m.mu.Unlock()
	return nil
}

// evict removes and returns the worker for endpoint, if any, without
// closing it.
func (m *ConnectionManager) evict(endpoint string) *worker {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.workers[endpoint]
	if !ok {
		return nil
	}
	delete(m.workers, endpoint)
	return w
}

// Disconnect closes and removes the worker for props, reporting whether
// one existed (spec §4.6 "disconnect").
func (m *ConnectionManager) Disconnect(props session.ConnectionProps) bool {
	w := m.evict(props.Endpoint())
	if w == nil {
		return false
	}
	if err := w.close(); err != nil {
		m.log.Warn("disconnect %s: %v", props.Endpoint(), err)
	}
	return true
}

// Clear disconnects every worker (spec §4.6 "clear").
func (m *ConnectionManager) Clear() {
	m.mu.Lock()
	all := make([]*worker, 0, len(m.workers))
	for _, w := range m.workers {
		all = append(all, w)
	}
	m.workers = make(map[string]*worker)
	m.mu.Unlock()

	for _, w := range all {
		if err := w.close(); err != nil {
			m.log.Warn("clear: closing %s: %v", w.endpoint, err)
		}
	}
}

// RegisterMonitorTargets replaces the monitor target list for props'
// worker (spec §4.6 "register_monitor_targets"). It returns a
// *NotConnectedError if no worker exists for that endpoint.
func (m *ConnectionManager) RegisterMonitorTargets(props session.ConnectionProps, targets []MonitorTarget) error {
	m.mu.Lock()
	w, ok := m.workers[props.Endpoint()]
	m.mu.Unlock()
	if !ok {
		return &NotConnectedError{Endpoint: props.Endpoint()}
	}
	w.setTargets(targets)
	return nil
}

// OperateWorker loans props' session to fn, serialised by the session's
// own lock (spec §4.6 "operate_worker").
func (m *ConnectionManager) OperateWorker(props session.ConnectionProps, fn func(*session.Session) error) error {
	m.mu.Lock()
	w, ok := m.workers[props.Endpoint()]
	m.mu.Unlock()
	if !ok {
		return &NotConnectedError{Endpoint: props.Endpoint()}
	}
	return fn(w.sess)
}

// ConnectionStatus is one entry of GetConnectionsWithElapsedTime.
type ConnectionStatus struct {
	Endpoint string
	Elapsed  time.Duration
}

// GetConnectionsWithElapsedTime snapshots every live endpoint and its
// uptime (spec §4.6 "get_connections_with_elapsed_time").
func (m *ConnectionManager) GetConnectionsWithElapsedTime() []ConnectionStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ConnectionStatus, 0, len(m.workers))
	now := time.Now()
	for endpoint, w := range m.workers {
		out = append(out, ConnectionStatus{Endpoint: endpoint, Elapsed: now.Sub(w.connectedAt)})
	}
	return out
}

// NotConnectedError reports an operation against an endpoint with no
// active worker.
type NotConnectedError struct {
	Endpoint string
}

func (e *NotConnectedError) Error() string {
	return fmt.Sprintf("fleet: no connection for %s", e.Endpoint)
}

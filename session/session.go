// Package session owns one TCP connection to a PLC and speaks the SLMP
// 4E-frame protocol over it: connect/close lifecycle, strict send/receive
// timeout discipline, and exactly one in-flight request at a time (spec
// §4.5, §5).
package session

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/go-slmp/slmp/clog"
	"github.com/go-slmp/slmp/metrics"
	"github.com/go-slmp/slmp/protocol"
)

// ConnectionProps is the identity and framing configuration for one
// session: the endpoint to dial, the CPU variant, and the frame fields
// the server is expected to echo back (spec §3).
type ConnectionProps struct {
	IP   string
	Port int

	CPU protocol.CPU

	SerialID  uint16
	NetworkID byte
	PcID      byte
	IoID      uint16
	AreaID    byte
	CPUTimer  uint16
}

// Endpoint returns the "ip:port" identity key used by the fleet package
// to key its connection map (spec §3).
func (p ConnectionProps) Endpoint() string {
	return net.JoinHostPort(p.IP, fmt.Sprintf("%d", p.Port))
}

func (p ConnectionProps) frameFields() protocol.FrameFields {
	return protocol.FrameFields{
		SerialID:  p.SerialID,
		NetworkID: p.NetworkID,
		PcID:      p.PcID,
		IoID:      p.IoID,
		AreaID:    p.AreaID,
		CpuTimer:  p.CPUTimer,
	}
}

// State is one of the Session lifecycle states (spec §3).
type State byte

const (
	Disconnected State = iota
	Connecting
	Connected
	Closing
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "Disconnected"
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	case Closing:
		return "Closing"
	default:
		return "Unknown"
	}
}

// Session owns one TCP connection and serialises every request/response
// pair through its own lock — at most one Exchange in flight at a time
// (spec §4.5, §5).
type Session struct {
	props ConnectionProps
	cfg   Config
	log   clog.Clog

	mu    sync.Mutex
	state State
	conn  net.Conn
}

// New constructs a Session without performing any I/O.
func New(props ConnectionProps, cfg Config) (*Session, error) {
	if err := cfg.Valid(); err != nil {
		return nil, err
	}
	return &Session{
		props: props,
		cfg:   cfg,
		log:   clog.NewLogger("session:" + props.Endpoint()),
		state: Disconnected,
	}, nil
}

// SetLogMode toggles debug logging for this session.
func (s *Session) SetLogMode(enable bool) { s.log.LogMode(enable) }

// Props returns the session's connection identity.
func (s *Session) Props() ConnectionProps { return s.props }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Connect resolves the endpoint and opens a TCP stream with a
// ConnectTimeout deadline, closing any prior stream first (spec §4.5).
func (s *Session) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
	s.state = Connecting

	d := net.Dialer{Timeout: s.cfg.ConnectTimeout}
	conn, err := d.Dial("tcp", s.props.Endpoint())
	if err != nil {
		s.state = Disconnected
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			s.log.Warn("connect timeout to %s", s.props.Endpoint())
			return &TimeoutError{Op: "connect"}
		}
		s.log.Error("connect to %s failed: %v", s.props.Endpoint(), err)
		return &IoError{Op: "connect", Err: err}
	}

	s.conn = conn
	s.state = Connected
	s.log.Debug("connected to %s", s.props.Endpoint())
	return nil
}

// Close idempotently shuts down the stream.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		s.state = Disconnected
		return nil
	}
	s.state = Closing
	err := s.conn.Close()
	s.conn = nil
	s.state = Disconnected
	if err != nil {
		return &IoError{Op: "close", Err: err}
	}
	return nil
}

// Exchange sends req and returns the validated response payload (the
// bytes starting at byte 15). It acquires the session lock for the
// duration of the call, so at most one request is ever in flight (spec
// §4.5, §5). NotConnectedError is returned if no stream is open.
func (s *Session) Exchange(req []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil, &NotConnectedError{}
	}

	start := time.Now()
	payload, err := s.exchangeLocked(req)
	d := time.Since(start)

	switch {
	case err == nil:
		metrics.ObserveExchange(s.props.Endpoint(), metrics.ExchangeOK, d)
	case isTimeout(err):
		metrics.ObserveExchange(s.props.Endpoint(), metrics.ExchangeTimeout, d)
	case isProtocolError(err):
		metrics.ObserveExchange(s.props.Endpoint(), metrics.ExchangeProtocol, d)
	default:
		metrics.ObserveExchange(s.props.Endpoint(), metrics.ExchangeIO, d)
	}
	return payload, err
}

func (s *Session) exchangeLocked(req []byte) ([]byte, error) {
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.cfg.SendTimeout)); err != nil {
		return nil, &IoError{Op: "set write deadline", Err: err}
	}
	if _, err := s.conn.Write(req); err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			s.log.Warn("send timeout")
			return nil, &TimeoutError{Op: "send"}
		}
		s.log.Error("send failed: %v", err)
		return nil, &IoError{Op: "send", Err: err}
	}

	if err := s.conn.SetReadDeadline(time.Now().Add(s.cfg.RecvTimeout)); err != nil {
		return nil, &IoError{Op: "set read deadline", Err: err}
	}
	buf := make([]byte, s.cfg.BufSize)
	n, err := s.conn.Read(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			s.log.Warn("recv timeout")
			return nil, &TimeoutError{Op: "recv"}
		}
		s.log.Error("recv failed: %v", err)
		return nil, &IoError{Op: "recv", Err: err}
	}

	payload, err := protocol.ValidateResponse(buf[:n], s.props.frameFields())
	if err != nil {
		s.log.Warn("response validation failed: %v", err)
		return nil, err
	}
	return payload, nil
}

func isTimeout(err error) bool {
	_, ok := err.(*TimeoutError)
	return ok
}

func isProtocolError(err error) bool {
	_, ok := err.(*protocol.ProtocolError)
	return ok
}

// buildAndExchange is the shared plumbing every high-level wrapper in
// commands.go funnels through: build the frame, send it, and return the
// validated payload.
func (s *Session) buildAndExchange(r protocol.Request) ([]byte, error) {
	req := protocol.BuildRequest(s.props.frameFields(), r.Command, r.Subcommand, r.Payload)
	return s.Exchange(req)
}

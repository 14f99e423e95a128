package session

import "fmt"

// TimeoutError reports a connect, send, or receive timeout (spec §5, §7).
// The session is left in an indeterminate state after one of these; the
// caller must Close and Connect again to recover.
type TimeoutError struct {
	Op string // "connect", "send", or "recv"
}

func (e *TimeoutError) Error() string { return fmt.Sprintf("slmp: %s timeout", e.Op) }

// NotConnectedError reports an Exchange call on a session with no live
// stream (spec §4.5, §7).
type NotConnectedError struct{}

func (e *NotConnectedError) Error() string { return "slmp: not connected" }

// IoError wraps an underlying transport or DNS failure (spec §7).
type IoError struct {
	Op  string
	Err error
}

func (e *IoError) Error() string { return fmt.Sprintf("slmp: io: %s: %v", e.Op, e.Err) }
func (e *IoError) Unwrap() error { return e.Err }

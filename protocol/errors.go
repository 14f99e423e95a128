package protocol

import "fmt"

// ValidationError reports a caller input rejected before any I/O was
// attempted: a bad password length, a string too long for its declared
// device size, an unrepresentable Shift-JIS character, or a MonitorList
// over the 192 access-point cap.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return "slmp: validation: " + e.Msg }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ErrUnrepresentable is the sentinel wrapped by a ValidationError when a
// string cannot be transcoded to Shift-JIS.
var ErrUnrepresentable = fmt.Errorf("character not representable in Shift-JIS")

// WireFormatError reports a malformed response envelope: too short, a
// DataLen mismatch, a wrong response code, or a mismatched SerialID,
// NetworkID, PcID, IoID, or AreaID (spec §4.4, §7).
type WireFormatError struct {
	Msg string
}

func (e *WireFormatError) Error() string { return "slmp: wire format: " + e.Msg }

func wireFormatErrorf(format string, args ...interface{}) error {
	return &WireFormatError{Msg: fmt.Sprintf(format, args...)}
}

// EndCode is the 16-bit status word the server returns after the response
// header. Zero means success.
type EndCode uint16

// Named SLMP end codes (spec §6).
const (
	EndCodeOK                    EndCode = 0x0000
	EndCodeWrongCommand         EndCode = 0xC059
	EndCodeWrongFormat          EndCode = 0xC05C
	EndCodeWrongLength          EndCode = 0xC061
	EndCodeBusy                 EndCode = 0xCEE0
	EndCodeExceedReqLength      EndCode = 0xCEE1
	EndCodeExceedRespLength     EndCode = 0xCEE2
	EndCodeServerNotFound       EndCode = 0xCF10
	EndCodeWrongConfigItem      EndCode = 0xCF20
	EndCodePrmIDNotFound        EndCode = 0xCF30
	EndCodeNotStartExclusiveWrite EndCode = 0xCF31
	EndCodeRelayFailure         EndCode = 0xCF70
	EndCodeTimeoutError         EndCode = 0xCF71
)

var endCodeName = map[EndCode]string{
	EndCodeWrongCommand:           "WrongCommand",
	EndCodeWrongFormat:            "WrongFormat",
	EndCodeWrongLength:            "WrongLength",
	EndCodeBusy:                   "Busy",
	EndCodeExceedReqLength:        "ExceedReqLength",
	EndCodeExceedRespLength:       "ExceedRespLength",
	EndCodeServerNotFound:         "ServerNotFound",
	EndCodeWrongConfigItem:        "WrongConfigItem",
	EndCodePrmIDNotFound:          "PrmIDNotFound",
	EndCodeNotStartExclusiveWrite: "NotStartExclusiveWrite",
	EndCodeRelayFailure:           "RelayFailure",
	EndCodeTimeoutError:           "TimeoutError",
}

// Name returns the symbolic name for a known end code, or "Unknown" for
// anything else.
func (e EndCode) Name() string {
	if n, ok := endCodeName[e]; ok {
		return n
	}
	return "Unknown"
}

// String implements fmt.Stringer.
func (e EndCode) String() string {
	if e == EndCodeOK {
		return "OK"
	}
	if n, ok := endCodeName[e]; ok {
		return fmt.Sprintf("%s(0x%04X)", n, uint16(e))
	}
	return fmt.Sprintf("Unknown(0x%04X)", uint16(e))
}

// ProtocolError reports a non-zero EndCode returned by the server (spec §7).
type ProtocolError struct {
	Code EndCode
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("slmp: protocol error: %s", e.Code)
}

// NewProtocolError wraps a non-zero end code into a *ProtocolError, or
// returns nil when code is EndCodeOK.
func NewProtocolError(code EndCode) error {
	if code == EndCodeOK {
		return nil
	}
	return &ProtocolError{Code: code}
}

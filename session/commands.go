package session

import "github.com/go-slmp/slmp/protocol"

// BulkReadWord reads count consecutive values of type dt starting at start;
// the request covers count*dt.ByteSize()/2 device words (spec §4.3
// "BulkRead (word)").
func (s *Session) BulkReadWord(start protocol.Device, dt protocol.DataType, count int) ([]protocol.DeviceData, error) {
	r := protocol.BulkReadWordRequest(s.props.CPU, start, uint16(count*dt.ByteSize()/2))
	payload, err := s.buildAndExchange(r)
	if err != nil {
		return nil, err
	}
	return protocol.BulkReadWordParse(payload, start, dt, count)
}

// BulkReadBit reads count consecutive bits starting at start.
func (s *Session) BulkReadBit(start protocol.Device, count int) ([]protocol.DeviceData, error) {
	r := protocol.BulkReadBitRequest(s.props.CPU, start, uint16(count))
	payload, err := s.buildAndExchange(r)
	if err != nil {
		return nil, err
	}
	return protocol.BulkReadBitParse(payload, start, count)
}

// BulkWriteWord writes the little-endian word payload data starting at
// start. No request is sent for empty data (spec §8).
func (s *Session) BulkWriteWord(start protocol.Device, wordCount int, data []byte) error {
	r, ok := protocol.BulkWriteWordRequest(s.props.CPU, start, uint16(wordCount), data)
	if !ok {
		return nil
	}
	_, err := s.buildAndExchange(r)
	return err
}

// BulkWriteBit writes values starting at start. No request is sent for an
// empty slice (spec §8).
func (s *Session) BulkWriteBit(start protocol.Device, values []bool) error {
	r, ok := protocol.BulkWriteBitRequest(s.props.CPU, start, values)
	if !ok {
		return nil
	}
	_, err := s.buildAndExchange(r)
	return err
}

// RandomRead reads targets in one request, returning results in the order
// targets was given (spec §4.3, §4.4).
func (s *Session) RandomRead(targets []protocol.TypedDevice) ([]protocol.DeviceData, error) {
	ml, err := protocol.NewMonitorList(targets)
	if err != nil {
		return nil, err
	}
	r := protocol.RandomReadRequest(s.props.CPU, ml)
	payload, err := s.buildAndExchange(r)
	if err != nil {
		return nil, err
	}
	return protocol.RandomReadParse(payload, ml)
}

// RandomWriteWord writes the word-sized and double-word-sized values in
// data in one request. No request is sent for an empty slice (spec §8).
func (s *Session) RandomWriteWord(data []protocol.DeviceData) error {
	r, ok := protocol.RandomWriteWordRequest(s.props.CPU, data)
	if !ok {
		return nil
	}
	_, err := s.buildAndExchange(r)
	return err
}

// RandomWriteBit writes bit values in data in one request. No request is
// sent for an empty slice (spec §8).
func (s *Session) RandomWriteBit(data []protocol.DeviceData) error {
	r, ok := protocol.RandomWriteBitRequest(s.props.CPU, data)
	if !ok {
		return nil
	}
	_, err := s.buildAndExchange(r)
	return err
}

// BlockRead reads blocks in one request, word blocks before bit blocks
// (spec §4.3, §4.4).
func (s *Session) BlockRead(blocks []protocol.DeviceBlock) ([]protocol.BlockedDeviceData, error) {
	r := protocol.BlockReadRequest(s.props.CPU, blocks)
	payload, err := s.buildAndExchange(r)
	if err != nil {
		return nil, err
	}
	return protocol.BlockReadParse(payload, blocks)
}

// BlockWrite writes blocks in one request. No request is sent for an
// empty slice (spec §8).
func (s *Session) BlockWrite(blocks []protocol.BlockedDeviceData) error {
	r, ok := protocol.BlockWriteRequest(s.props.CPU, blocks)
	if !ok {
		return nil
	}
	_, err := s.buildAndExchange(r)
	return err
}

// MonitorRegister registers targets as the device set MonitorRead will
// return on subsequent calls (spec §4.3).
func (s *Session) MonitorRegister(targets []protocol.TypedDevice) (*protocol.MonitorList, error) {
	ml, err := protocol.NewMonitorList(targets)
	if err != nil {
		return nil, err
	}
	r := protocol.MonitorRegisterRequest(s.props.CPU, ml)
	if _, err := s.buildAndExchange(r); err != nil {
		return nil, err
	}
	return ml, nil
}

// MonitorRead returns the current values of the device set last passed to
// MonitorRegister (spec §4.3, §4.4).
func (s *Session) MonitorRead(ml *protocol.MonitorList) ([]protocol.DeviceData, error) {
	r := protocol.MonitorReadRequest()
	payload, err := s.buildAndExchange(r)
	if err != nil {
		return nil, err
	}
	return protocol.RandomReadParse(payload, ml)
}

// RemoteRun puts the CPU into RUN (spec §4.3).
func (s *Session) RemoteRun() error {
	_, err := s.buildAndExchange(protocol.RemoteRunRequest())
	return err
}

// RemoteStop puts the CPU into STOP.
func (s *Session) RemoteStop() error {
	_, err := s.buildAndExchange(protocol.RemoteStopRequest())
	return err
}

// RemotePause puts the CPU into PAUSE.
func (s *Session) RemotePause() error {
	_, err := s.buildAndExchange(protocol.RemotePauseRequest())
	return err
}

// LatchClear clears latch-retained device memory.
func (s *Session) LatchClear() error {
	_, err := s.buildAndExchange(protocol.LatchClearRequest())
	return err
}

// RemoteReset resets the CPU.
func (s *Session) RemoteReset() error {
	_, err := s.buildAndExchange(protocol.RemoteResetRequest())
	return err
}

// ReadCPUType returns the raw ReadCpuType response payload (model name and
// code), undecoded beyond wire validation (spec §4.3).
func (s *Session) ReadCPUType() ([]byte, error) {
	return s.buildAndExchange(protocol.ReadCPUTypeRequest())
}

// LockCPU locks the CPU's remote-operation interface with password.
func (s *Session) LockCPU(password []byte) error {
	r, err := protocol.LockCPURequest(s.props.CPU, password)
	if err != nil {
		return err
	}
	_, err = s.buildAndExchange(r)
	return err
}

// UnlockCPU unlocks the CPU's remote-operation interface with password.
func (s *Session) UnlockCPU(password []byte) error {
	r, err := protocol.UnlockCPURequest(s.props.CPU, password)
	if err != nil {
		return err
	}
	_, err = s.buildAndExchange(r)
	return err
}

// Echo round-trips the fixed echo payload; a caller can use it to check
// that the connection is still alive (spec §4.3).
func (s *Session) Echo() error {
	_, err := s.buildAndExchange(protocol.EchoRequest())
	return err
}

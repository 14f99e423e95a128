package protocol

// Command codes (spec §4.3), shared across all three CPU families. Where
// the subcommand differs between Q/L and R, each builder selects it via
// CPU.Subcommand.
const (
	cmdBulkRead      uint16 = 0x0401
	cmdBulkWrite     uint16 = 0x1401
	cmdRandomRead    uint16 = 0x0403
	cmdRandomWrite   uint16 = 0x1402
	cmdBlockRead     uint16 = 0x0406
	cmdBlockWrite    uint16 = 0x1406
	cmdMonitorReg    uint16 = 0x0801
	cmdMonitorRead   uint16 = 0x0802
	cmdRemoteRun     uint16 = 0x1001
	cmdRemoteStop    uint16 = 0x1002
	cmdRemotePause   uint16 = 0x1003
	cmdLatchClear    uint16 = 0x1005
	cmdRemoteReset   uint16 = 0x1006
	cmdReadCPUType   uint16 = 0x0101
	cmdLockCPU       uint16 = 0x1631
	cmdUnlockCPU     uint16 = 0x1630
	cmdEcho          uint16 = 0x0619
)

// echoMessage is the fixed 4-byte payload body for the Echo test command
// (spec §4.3, §6).
var echoMessage = [4]byte{0x41, 0x31, 0x47, 0x35}

// Request bundles the command/subcommand/payload a Session hands to
// BuildRequest.
type Request struct {
	Command    uint16
	Subcommand uint16
	Payload    []byte
}

// BulkReadWordRequest builds the BulkRead(word) request for count devices
// starting at start (spec §4.3 table row "BulkRead (word)").
func BulkReadWordRequest(cpu CPU, start Device, count uint16) Request {
	p := start.appendCode(nil, cpu)
	p = appendU16(p, count)
	return Request{cmdBulkRead, cpu.Subcommand(0x0000, 0x0002), p}
}

// BulkReadBitRequest builds the BulkRead(bit) request for count bits
// starting at start.
func BulkReadBitRequest(cpu CPU, start Device, count uint16) Request {
	p := start.appendCode(nil, cpu)
	p = appendU16(p, count)
	return Request{cmdBulkRead, cpu.Subcommand(0x0001, 0x0003), p}
}

// BulkWriteWordRequest builds the BulkWrite(word) request. data is the
// little-endian word payload (already concatenated per device). Empty
// data or a zero wordCount yields a nil Payload signal via ok=false so
// callers can skip sending a packet (spec §8 "empty input ... MUST send no
// packet").
func BulkWriteWordRequest(cpu CPU, start Device, wordCount uint16, data []byte) (Request, bool) {
	if wordCount == 0 || len(data) == 0 {
		return Request{}, false
	}
	p := start.appendCode(nil, cpu)
	p = appendU16(p, wordCount)
	p = append(p, data...)
	return Request{cmdBulkWrite, cpu.Subcommand(0x0000, 0x0002), p}, true
}

// BulkWriteBitRequest builds the BulkWrite(bit) request from values,
// packed two bits per byte high-nibble-first (spec §4.1).
func BulkWriteBitRequest(cpu CPU, start Device, values []bool) (Request, bool) {
	if len(values) == 0 {
		return Request{}, false
	}
	p := start.appendCode(nil, cpu)
	p = appendU16(p, uint16(len(values)))
	p = append(p, packBulkBits(values)...)
	return Request{cmdBulkWrite, cpu.Subcommand(0x0001, 0x0003), p}, true
}

// RandomReadRequest builds the RandomRead request for ml: n_sw, n_dw, then
// device addresses in the single-word / multi-word-expansion / double-word
// order Parse expects back (spec §4.3, §4.4).
func RandomReadRequest(cpu CPU, ml *MonitorList) Request {
	p := appendU16(nil, uint16(ml.SingleWordAccessPoints()))
	p = appendU16(p, uint16(ml.DoubleWordAccessPoints()))

	for _, t := range ml.Sorted() {
		if t.DataType.SizeClass() == SizeMultiWord || t.DataType.SizeClass() == SizeDoubleWord {
			continue
		}
		p = t.Device.appendCode(p, cpu)
	}
	for _, t := range ml.Sorted() {
		if t.DataType.SizeClass() != SizeMultiWord {
			continue
		}
		for n := 0; n < t.DataType.DeviceSize(); n++ {
			p = t.Device.Offset(uint32(n)).appendCode(p, cpu)
		}
	}
	for _, t := range ml.Sorted() {
		if t.DataType.SizeClass() != SizeDoubleWord {
			continue
		}
		p = t.Device.appendCode(p, cpu)
	}
	return Request{cmdRandomRead, cpu.Subcommand(0x0000, 0x0002), p}
}

// RandomWriteWordRequest builds the RandomWrite(word) request: n_sw, n_dw,
// then (device, value) pairs in the same grouping order as
// RandomReadRequest, with multi-word values expanded across their
// constituent single-word slots (spec §4.3).
func RandomWriteWordRequest(cpu CPU, data []DeviceData) (Request, bool) {
	if len(data) == 0 {
		return Request{}, false
	}
	ml, ordered, err := sortDeviceData(data)
	if err != nil {
		return Request{}, false
	}

	p := appendU16(nil, uint16(ml.SingleWordAccessPoints()))
	p = appendU16(p, uint16(ml.DoubleWordAccessPoints()))

	for _, d := range ordered {
		if isWide(d.Value.DataType()) {
			continue
		}
		p = d.Device.appendCode(p, cpu)
		b, _ := d.Value.ToBytes()
		p = append(p, b...)
	}
	for _, d := range ordered {
		if d.Value.DataType().SizeClass() != SizeMultiWord {
			continue
		}
		b, _ := d.Value.ToBytes()
		for n := 0; n < d.Value.DataType().DeviceSize(); n++ {
			p = d.Device.Offset(uint32(n)).appendCode(p, cpu)
			p = append(p, b[2*n:2*n+2]...)
		}
	}
	for _, d := range ordered {
		if d.Value.DataType().SizeClass() != SizeDoubleWord {
			continue
		}
		p = d.Device.appendCode(p, cpu)
		b, _ := d.Value.ToBytes()
		p = append(p, b...)
	}
	return Request{cmdRandomWrite, cpu.Subcommand(0x0000, 0x0002), p}, true
}

func isWide(dt DataType) bool {
	sc := dt.SizeClass()
	return sc == SizeMultiWord || sc == SizeDoubleWord
}

// RandomWriteBitRequest builds the RandomWrite(bit) request: n_bits, then
// (device, bitvalue) pairs. Under CPU R, each bit record is padded with
// one extra 0x00 byte (spec §4.3, §8).
func RandomWriteBitRequest(cpu CPU, data []DeviceData) (Request, bool) {
	if len(data) == 0 {
		return Request{}, false
	}
	p := appendU16(nil, uint16(len(data)))
	width := cpu.BitWriteRecordWidth()
	for _, d := range data {
		p = d.Device.appendCode(p, cpu)
		if d.Value.Bool() {
			p = append(p, 0x01)
		} else {
			p = append(p, 0x00)
		}
		for i := 1; i < width; i++ {
			p = append(p, 0x00)
		}
	}
	return Request{cmdRandomWrite, cpu.Subcommand(0x0001, 0x0003), p}, true
}

// sortDeviceData mirrors MonitorList's ordering over a []DeviceData write
// set, returning the list reordered to match Sorted().
func sortDeviceData(data []DeviceData) (*MonitorList, []DeviceData, error) {
	targets := make([]TypedDevice, len(data))
	for i, d := range data {
		targets[i] = TypedDevice{Device: d.Device, DataType: d.Value.DataType()}
	}
	ml, err := NewMonitorList(targets)
	if err != nil {
		return nil, nil, err
	}
	ordered := make([]DeviceData, len(data))
	for i, idx := range ml.origIndices() {
		ordered[i] = data[idx]
	}
	return ml, ordered, nil
}

// BlockReadRequest builds the BlockRead request: n_word_blocks,
// n_bit_blocks, then (device, size)* with word blocks first (spec §4.3).
func BlockReadRequest(cpu CPU, blocks []DeviceBlock) Request {
	wordBlocks, bitBlocks := partitionBlocks(blocks)
	p := appendU16(nil, uint16(len(wordBlocks)))
	p = appendU16(p, uint16(len(bitBlocks)))
	for _, b := range wordBlocks {
		p = b.StartDevice.appendCode(p, cpu)
		p = appendU16(p, uint16(b.Size))
	}
	for _, b := range bitBlocks {
		p = b.StartDevice.appendCode(p, cpu)
		p = appendU16(p, uint16(b.Size))
	}
	return Request{cmdBlockRead, cpu.Subcommand(0x0000, 0x0002), p}
}

// BlockWriteRequest builds the BlockWrite request: n_word_blocks,
// n_bit_blocks, then (device, size, payload)* with word blocks first
// (spec §4.3).
func BlockWriteRequest(cpu CPU, blocks []BlockedDeviceData) (Request, bool) {
	if len(blocks) == 0 {
		return Request{}, false
	}
	var wordBlocks, bitBlocks []BlockedDeviceData
	for _, b := range blocks {
		if b.Access == AccessWord {
			wordBlocks = append(wordBlocks, b)
		} else {
			bitBlocks = append(bitBlocks, b)
		}
	}
	p := appendU16(nil, uint16(len(wordBlocks)))
	p = appendU16(p, uint16(len(bitBlocks)))
	for _, b := range wordBlocks {
		p = b.StartDevice.appendCode(p, cpu)
		p = appendU16(p, uint16(len(b.Data)))
		for _, v := range b.Data {
			bs, _ := v.ToBytes()
			p = append(p, bs...)
		}
	}
	for _, b := range bitBlocks {
		p = b.StartDevice.appendCode(p, cpu)
		values := make([]bool, len(b.Data))
		for i, v := range b.Data {
			values[i] = v.Bool()
		}
		packed := packBlockBits(values)
		p = appendU16(p, uint16(len(packed)/2))
		p = append(p, packed...)
	}
	return Request{cmdBlockWrite, cpu.Subcommand(0x0000, 0x0002), p}, true
}

func partitionBlocks(blocks []DeviceBlock) (word, bit []DeviceBlock) {
	for _, b := range blocks {
		if b.Access == AccessWord {
			word = append(word, b)
		} else {
			bit = append(bit, b)
		}
	}
	return
}

// MonitorRegisterRequest builds the MonitorRegister request, identical in
// shape to RandomReadRequest's device list (spec §4.3).
func MonitorRegisterRequest(cpu CPU, ml *MonitorList) Request {
	r := RandomReadRequest(cpu, ml)
	return Request{cmdMonitorReg, cpu.Subcommand(0x0000, 0x0002), r.Payload}
}

// MonitorReadRequest builds the (payload-less) MonitorRead request.
func MonitorReadRequest() Request {
	return Request{cmdMonitorRead, 0x0000, nil}
}

// RemoteRunRequest builds the RemoteRun request.
func RemoteRunRequest() Request {
	return Request{cmdRemoteRun, 0x0000, []byte{0x03, 0x00, 0x02, 0x00}}
}

// RemoteStopRequest builds the RemoteStop request.
func RemoteStopRequest() Request {
	return Request{cmdRemoteStop, 0x0000, []byte{0x01, 0x00}}
}

// RemotePauseRequest builds the RemotePause request.
func RemotePauseRequest() Request {
	return Request{cmdRemotePause, 0x0000, []byte{0x03, 0x00}}
}

// LatchClearRequest builds the LatchClear request.
func LatchClearRequest() Request {
	return Request{cmdLatchClear, 0x0000, []byte{0x01, 0x00}}
}

// RemoteResetRequest builds the RemoteReset request.
func RemoteResetRequest() Request {
	return Request{cmdRemoteReset, 0x0000, []byte{0x01, 0x00}}
}

// ReadCPUTypeRequest builds the (payload-less) ReadCpuType request.
func ReadCPUTypeRequest() Request {
	return Request{cmdReadCPUType, 0x0000, nil}
}

// validatePassword enforces spec §4.3's length rule: Q/L must be exactly
// 4 bytes, R must be 6..32 bytes.
func validatePassword(cpu CPU, password []byte) error {
	min, max := cpu.PasswordRange()
	if len(password) < min || len(password) > max {
		return validationErrorf("password length %d out of [%d, %d] for CPU %s", len(password), min, max, cpu)
	}
	return nil
}

// LockCPURequest builds the LockCpu request.
func LockCPURequest(cpu CPU, password []byte) (Request, error) {
	if err := validatePassword(cpu, password); err != nil {
		return Request{}, err
	}
	p := appendU16(nil, uint16(len(password)))
	p = append(p, password...)
	return Request{cmdLockCPU, 0x0000, p}, nil
}

// UnlockCPURequest builds the UnlockCpu request.
func UnlockCPURequest(cpu CPU, password []byte) (Request, error) {
	if err := validatePassword(cpu, password); err != nil {
		return Request{}, err
	}
	p := appendU16(nil, uint16(len(password)))
	p = append(p, password...)
	return Request{cmdUnlockCPU, 0x0000, p}, nil
}

// EchoRequest builds the Echo request with its fixed 4-byte payload.
func EchoRequest() Request {
	p := appendU16(nil, uint16(len(echoMessage)))
	p = append(p, echoMessage[:]...)
	return Request{cmdEcho, 0x0000, p}
}

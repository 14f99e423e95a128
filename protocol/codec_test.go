package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrameFields() FrameFields {
	return FrameFields{SerialID: 7, NetworkID: 0, PcID: 0xFF, IoID: 0x03FF, AreaID: 0, CpuTimer: 4}
}

func TestBuildRequestLayout(t *testing.T) {
	f := testFrameFields()
	payload := []byte{0xAA, 0xBB}
	req := BuildRequest(f, 0x0401, 0x0000, payload)

	require.Len(t, req, 19+len(payload))
	assert.Equal(t, byte(0x54), req[0])
	assert.Equal(t, byte(0x00), req[1])
	assert.Equal(t, byte(7), req[2])
	assert.Equal(t, byte(0), req[3])
	assert.Equal(t, byte(0xFF), req[7]) // PcID
	dataLen := int(req[11]) | int(req[12])<<8
	assert.Equal(t, len(req)-13, dataLen)
	assert.Equal(t, byte(0x01), req[15]) // Command low byte
	assert.Equal(t, byte(0x04), req[16]) // Command high byte
	assert.Equal(t, payload, req[19:])
}

func buildValidResponse(f FrameFields, endCode EndCode, payload []byte) []byte {
	buf := make([]byte, 0, 15+len(payload))
	buf = appendU16(buf, ResponseCode)
	buf = appendU16(buf, f.SerialID)
	buf = append(buf, 0x00, 0x00)
	buf = append(buf, f.NetworkID, f.PcID)
	buf = appendU16(buf, f.IoID)
	buf = append(buf, f.AreaID)
	dataLen := 2 + len(payload)
	buf = appendU16(buf, uint16(dataLen))
	buf = appendU16(buf, uint16(endCode))
	buf = append(buf, payload...)
	return buf
}

func TestValidateResponseSuccess(t *testing.T) {
	f := testFrameFields()
	payload := []byte{0x01, 0x02, 0x03}
	resp := buildValidResponse(f, EndCodeOK, payload)

	got, err := ValidateResponse(resp, f)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestValidateResponseProtocolError(t *testing.T) {
	f := testFrameFields()
	resp := buildValidResponse(f, EndCodeWrongCommand, nil)

	_, err := ValidateResponse(resp, f)
	require.Error(t, err)
	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, EndCodeWrongCommand, pe.Code)
}

func TestValidateResponseSerialIDMismatch(t *testing.T) {
	f := testFrameFields()
	resp := buildValidResponse(f, EndCodeOK, nil)

	other := f
	other.SerialID = f.SerialID + 1
	_, err := ValidateResponse(resp, other)
	require.Error(t, err)
	var wfe *WireFormatError
	assert.ErrorAs(t, err, &wfe)
}

func TestValidateResponseTooShort(t *testing.T) {
	_, err := ValidateResponse([]byte{0x01, 0x02}, testFrameFields())
	require.Error(t, err)
}

func TestPackUnpackBulkBits(t *testing.T) {
	values := []bool{true, false, true, true, false}
	packed := packBulkBits(values)
	assert.Equal(t, (len(values)+1)/2, len(packed))
	assert.Equal(t, values, unpackBulkBits(packed, len(values)))
}

func TestPackUnpackBlockBits(t *testing.T) {
	values := []bool{true, false, true, true, false, false, true, false, true}
	packed := packBlockBits(values)
	assert.Equal(t, 0, len(packed)%2, "block bit packing rounds up to a 16-bit word")
	assert.Equal(t, values, unpackBlockBits(packed, len(values)))
}

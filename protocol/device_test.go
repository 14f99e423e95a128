package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceAppendCodeWidthByCPU(t *testing.T) {
	d := Device{Type: DeviceD, Address: 0x010203}

	ql := d.appendCode(nil, CPUQ)
	assert.Len(t, ql, 4, "Q/L device code must be 4 bytes")
	assert.Equal(t, []byte{0x03, 0x02, 0x01, DeviceD.Code()}, ql)

	r := d.appendCode(nil, CPUR)
	assert.Len(t, r, 6, "R device code must be 6 bytes")
	assert.Equal(t, []byte{0x03, 0x02, 0x01, 0x00, DeviceD.Code(), 0x00}, r)
}

func TestDeviceOffset(t *testing.T) {
	d := Device{Type: DeviceW, Address: 100}
	assert.Equal(t, Device{Type: DeviceW, Address: 103}, d.Offset(3))
}

func TestDeviceString(t *testing.T) {
	assert.Equal(t, "D100", Device{Type: DeviceD, Address: 100}.String())
}

func TestParseDeviceType(t *testing.T) {
	dt, ok := ParseDeviceType("ZR")
	assert.True(t, ok)
	assert.Equal(t, DeviceZR, dt)

	_, ok = ParseDeviceType("nonsense")
	assert.False(t, ok)
}

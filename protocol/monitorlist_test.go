package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorListSortOrderAndCounts(t *testing.T) {
	targets := []TypedDevice{
		{Device: Device{Type: DeviceD, Address: 10}, DataType: U32},
		{Device: Device{Type: DeviceD, Address: 0}, DataType: U16},
		{Device: Device{Type: DeviceD, Address: 5}, DataType: F64},
		{Device: Device{Type: DeviceM, Address: 0}, DataType: Bool},
	}
	ml, err := NewMonitorList(targets)
	require.NoError(t, err)

	// single-word group (Bool before U16 by DataType order; both at address 0), then multi-word (F64), then double-word (U32)
	sorted := ml.Sorted()
	assert.Equal(t, Bool, sorted[0].DataType)
	assert.Equal(t, U16, sorted[1].DataType)
	assert.Equal(t, F64, sorted[2].DataType)
	assert.Equal(t, U32, sorted[3].DataType)

	assert.Equal(t, 1+1+4, ml.SingleWordAccessPoints(), "Bool(1) + U16(1) + F64 expansion(4)")
	assert.Equal(t, 1, ml.DoubleWordAccessPoints())
	assert.Equal(t, 1, ml.MultiWordAccessPoints())
}

func TestMonitorListRejectsOverCapacity(t *testing.T) {
	targets := make([]TypedDevice, MaxAccessPoints+1)
	for i := range targets {
		targets[i] = TypedDevice{Device: Device{Type: DeviceD, Address: uint32(i)}, DataType: U16}
	}
	_, err := NewMonitorList(targets)
	require.Error(t, err)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestMonitorListParsePreservesOriginalOrder(t *testing.T) {
	targets := []TypedDevice{
		{Device: Device{Type: DeviceD, Address: 10}, DataType: U32}, // double-word, originally first
		{Device: Device{Type: DeviceD, Address: 0}, DataType: U16},  // single-word, originally second
		{Device: Device{Type: DeviceD, Address: 5}, DataType: F64},  // multi-word, originally third
	}
	ml, err := NewMonitorList(targets)
	require.NoError(t, err)

	// Wire order is single-word, multi-word(expanded), double-word: U16(2 bytes),
	// F64 as 4 single-word slots (2 bytes each), then U32(4 bytes).
	wire := [][]byte{
		{0x11, 0x00}, // U16 = 0x0011
		{0x00, 0x00}, {0x00, 0x00}, {0x00, 0x00}, {0x00, 0x40}, // F64 slots (little-endian 2.0)
		{0x22, 0x00, 0x00, 0x00}, // U32 = 0x22
	}
	idx := 0
	results, err := ml.Parse(func(n int) ([]byte, error) {
		b := wire[idx]
		require.Equal(t, n, len(b))
		idx++
		return b, nil
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, uint32(0x22), results[0].Value.U32())
	assert.Equal(t, uint16(0x11), results[1].Value.U16())
	assert.InDelta(t, 2.0, results[2].Value.F64(), 0.0001)
}

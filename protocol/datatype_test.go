package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataTypeOrdinalGrouping(t *testing.T) {
	singleWord := []DataType{Bool, BitArray16, U16, I16}
	multiWord := []DataType{F64, String(4)}
	doubleWord := []DataType{U32, I32, F32}

	for _, dt := range singleWord {
		assert.Equal(t, 0, dt.Ordinal(), "%s should rank in the single-word group", dt.Kind())
	}
	for _, dt := range multiWord {
		assert.Equal(t, 1, dt.Ordinal(), "%s should rank in the multi-word group", dt.Kind())
	}
	for _, dt := range doubleWord {
		assert.Equal(t, 2, dt.Ordinal(), "%s should rank in the double-word group", dt.Kind())
	}
}

func TestDataTypeSizeClass(t *testing.T) {
	assert.Equal(t, SizeBit, Bool.SizeClass())
	assert.Equal(t, SizeSingleWord, U16.SizeClass())
	assert.Equal(t, SizeSingleWord, I16.SizeClass())
	assert.Equal(t, SizeSingleWord, BitArray16.SizeClass())
	assert.Equal(t, SizeMultiWord, F64.SizeClass())
	assert.Equal(t, SizeMultiWord, String(10).SizeClass())
	assert.Equal(t, SizeDoubleWord, U32.SizeClass())
	assert.Equal(t, SizeDoubleWord, I32.SizeClass())
	assert.Equal(t, SizeDoubleWord, F32.SizeClass())
}

func TestDataTypeByteAndDeviceSize(t *testing.T) {
	assert.Equal(t, 2, U16.ByteSize())
	assert.Equal(t, 1, U16.DeviceSize())

	assert.Equal(t, 8, F64.ByteSize())
	assert.Equal(t, 4, F64.DeviceSize())

	s := String(5)
	assert.Equal(t, 10, s.ByteSize())
	assert.Equal(t, 5, s.DeviceSize())

	assert.Equal(t, 4, U32.ByteSize())
	assert.Equal(t, 1, U32.DeviceSize())
}

func TestDataTypeEqual(t *testing.T) {
	assert.True(t, String(4).Equal(String(4)))
	assert.False(t, String(4).Equal(String(5)))
	assert.False(t, U16.Equal(I16))
	assert.True(t, U32.Equal(U32))
}

func TestTypedDataRoundTrip(t *testing.T) {
	cases := []TypedData{
		NewBool(true),
		NewBool(false),
		NewBitArray16(0xBEEF),
		NewU16(12345),
		NewI16(-1234),
		NewU32(0xDEADBEEF),
		NewI32(-123456789),
		NewF32(3.14159),
		NewF64(2.718281828),
	}
	for _, v := range cases {
		b, err := v.ToBytes()
		require.NoError(t, err)
		assert.Equal(t, v.DataType().ByteSize(), len(b))

		got, err := TypedDataFrom(b, v.DataType())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestTypedDataStringRoundTrip(t *testing.T) {
	v, err := NewString(4, "ABC")
	require.NoError(t, err)

	b, err := v.ToBytes()
	require.NoError(t, err)
	require.Len(t, b, 8)

	got, err := TypedDataFrom(b, String(4))
	require.NoError(t, err)
	assert.Equal(t, "ABC", got.Str())
}

func TestTypedDataStringTooLong(t *testing.T) {
	_, err := NewString(1, "TOOLONG")
	require.Error(t, err)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestTypedDataBoolLowBitOnly(t *testing.T) {
	v, err := TypedDataFrom([]byte{0x03, 0x00}, Bool)
	require.NoError(t, err)
	assert.True(t, v.Bool())

	v, err = TypedDataFrom([]byte{0x02, 0x00}, Bool)
	require.NoError(t, err)
	assert.False(t, v.Bool())
}

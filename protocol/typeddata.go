package protocol

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/text/encoding/japanese"
)

// TypedData is a tagged value carrying exactly one of the nine DataType
// shapes, with its literal payload. See spec §3, §4.2.
type TypedData struct {
	dt DataType

	boolean bool
	u16     uint16
	i16     int16
	u32     uint32
	i32     int32
	f32     float32
	f64     float64
	str     string
}

// NewBool, NewBitArray16, ... construct a TypedData of the matching shape.
func NewBool(v bool) TypedData             { return TypedData{dt: Bool, boolean: v} }
func NewBitArray16(v uint16) TypedData      { return TypedData{dt: BitArray16, u16: v} }
func NewU16(v uint16) TypedData             { return TypedData{dt: U16, u16: v} }
func NewI16(v int16) TypedData              { return TypedData{dt: I16, i16: v} }
func NewU32(v uint32) TypedData             { return TypedData{dt: U32, u32: v} }
func NewI32(v int32) TypedData              { return TypedData{dt: I32, i32: v} }
func NewF32(v float32) TypedData            { return TypedData{dt: F32, f32: v} }
func NewF64(v float64) TypedData            { return TypedData{dt: F64, f64: v} }

// NewString constructs a String(n) TypedData. n is the device-word
// capacity (1..32); v must transcode to at most n*2 Shift-JIS bytes.
func NewString(n int, v string) (TypedData, error) {
	if n < 1 || n > 32 {
		return TypedData{}, validationErrorf("string device size %d out of [1,32]", n)
	}
	enc, err := shiftJISEncode(v)
	if err != nil {
		return TypedData{}, err
	}
	if len(enc) > n*2 {
		return TypedData{}, validationErrorf("string %q needs %d Shift-JIS bytes, exceeds device size %d (%d bytes)", v, len(enc), n, n*2)
	}
	return TypedData{dt: String(n), str: v}, nil
}

// DataType returns the tag of this value.
func (t TypedData) DataType() DataType { return t.dt }

// Bool, U16, I16, U32, I32, F32, F64, Str return the literal payload;
// callers must check DataType first.
func (t TypedData) Bool() bool      { return t.boolean }
func (t TypedData) U16() uint16     { return t.u16 }
func (t TypedData) I16() int16      { return t.i16 }
func (t TypedData) U32() uint32     { return t.u32 }
func (t TypedData) I32() int32      { return t.i32 }
func (t TypedData) F32() float32    { return t.f32 }
func (t TypedData) F64() float64    { return t.f64 }
func (t TypedData) Str() string     { return t.str }

// ToBytes encodes the value little-endian, except booleans (0x01 0x00 /
// 0x00 0x00) and strings (Shift-JIS, NUL-padded to n*2 bytes) — spec §3,
// §4.2.
func (t TypedData) ToBytes() ([]byte, error) {
	switch t.dt.kind {
	case tdBool:
		if t.boolean {
			return []byte{0x01, 0x00}, nil
		}
		return []byte{0x00, 0x00}, nil
	case tdBitArray16, tdU16:
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, t.u16)
		return b, nil
	case tdI16:
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, uint16(t.i16))
		return b, nil
	case tdU32:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, t.u32)
		return b, nil
	case tdI32:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, uint32(t.i32))
		return b, nil
	case tdF32:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, math.Float32bits(t.f32))
		return b, nil
	case tdF64:
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, math.Float64bits(t.f64))
		return b, nil
	case tdString:
		enc, err := shiftJISEncode(t.str)
		if err != nil {
			return nil, err
		}
		n := t.dt.strN * 2
		if len(enc) > n {
			return nil, validationErrorf("string %q needs %d Shift-JIS bytes, exceeds device size (%d bytes)", t.str, len(enc), n)
		}
		out := make([]byte, n)
		copy(out, enc)
		return out, nil
	default:
		return nil, validationErrorf("unrepresentable data type")
	}
}

// TypedDataFrom decodes b (exactly dt.ByteSize() bytes) into a TypedData
// of shape dt. Bool reads only the low bit of the first byte (spec §4.2).
func TypedDataFrom(b []byte, dt DataType) (TypedData, error) {
	if len(b) < dt.ByteSize() {
		return TypedData{}, wireFormatErrorf("short buffer for %s: need %d bytes, have %d", dt.Kind(), dt.ByteSize(), len(b))
	}
	switch dt.kind {
	case tdBool:
		return TypedData{dt: Bool, boolean: b[0]&0x01 != 0}, nil
	case tdBitArray16:
		return TypedData{dt: BitArray16, u16: binary.LittleEndian.Uint16(b)}, nil
	case tdU16:
		return TypedData{dt: U16, u16: binary.LittleEndian.Uint16(b)}, nil
	case tdI16:
		return TypedData{dt: I16, i16: int16(binary.LittleEndian.Uint16(b))}, nil
	case tdU32:
		return TypedData{dt: U32, u32: binary.LittleEndian.Uint32(b)}, nil
	case tdI32:
		return TypedData{dt: I32, i32: int32(binary.LittleEndian.Uint32(b))}, nil
	case tdF32:
		return TypedData{dt: F32, f32: math.Float32frombits(binary.LittleEndian.Uint32(b))}, nil
	case tdF64:
		return TypedData{dt: F64, f64: math.Float64frombits(binary.LittleEndian.Uint64(b))}, nil
	case tdString:
		s, err := shiftJISDecode(b[:dt.ByteSize()])
		if err != nil {
			return TypedData{}, err
		}
		return TypedData{dt: dt, str: s}, nil
	default:
		return TypedData{}, wireFormatErrorf("unrepresentable data type")
	}
}

// shiftJISEncode transcodes UTF-8 v to Shift-JIS, failing with a
// ValidationError wrapping ErrUnrepresentable if any rune has no Shift-JIS
// mapping.
func shiftJISEncode(v string) ([]byte, error) {
	enc, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(v))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", &ValidationError{Msg: "encode string to Shift-JIS: " + err.Error()}, ErrUnrepresentable)
	}
	return enc, nil
}

// shiftJISDecode trims b at the first NUL byte (spec §9 "open question":
// this is a known deficiency for double-byte characters whose trailing
// byte is 0x00; a character-boundary-aware scan would be required to fix
// it) and transcodes the remainder from Shift-JIS to UTF-8.
func shiftJISDecode(b []byte) (string, error) {
	trimmed := b
	for i, c := range b {
		if c == 0x00 {
			trimmed = b[:i]
			break
		}
	}
	dec, err := japanese.ShiftJIS.NewDecoder().Bytes(trimmed)
	if err != nil {
		return "", wireFormatErrorf("decode Shift-JIS string: %v", err)
	}
	return string(dec), nil
}

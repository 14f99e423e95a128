package protocol

// SizeClass is the wire access-point class a DataType occupies: a single
// request slot (bit or single word), one double-word slot, or a run of
// consecutive single-word slots synthesised for wide values.
type SizeClass byte

const (
	SizeBit SizeClass = iota
	SizeSingleWord
	SizeDoubleWord
	SizeMultiWord
)

// DataType is a closed, ordinal-significant tagged enumeration of every
// value shape the wire protocol can carry. The ordering below — single
// word < multi-word < double word — is load-bearing: MonitorList sorts by
// it so that random-access requests place multi-word slots ahead of
// double-word slots, exactly mirroring the server's reply layout.
//
// See spec §3 and §9 ("tagged values over trait objects").
type DataType struct {
	kind tdKind
	strN int // String(n) word count; meaningless for other kinds
}

type tdKind byte

const (
	tdBool tdKind = iota
	tdBitArray16
	tdU16
	tdI16
	tdF64
	tdString
	tdU32
	tdI32
	tdF32
)

// ordinal gives the stable sort rank described in spec §3 and §9:
// single-word(0) < multi-word(1) < double-word(2). Bool is bit-accessed on
// the wire but ranks alongside the single-word group because MonitorList
// counts it as a single-word access point (spec §3).
var tdOrdinal = [...]int{
	tdBool:       0,
	tdBitArray16: 0,
	tdU16:        0,
	tdI16:        0,
	tdF64:        1,
	tdString:     1,
	tdU32:        2,
	tdI32:        2,
	tdF32:        2,
}

// Exported constructors/constants for the nine DataType shapes.
var (
	Bool       = DataType{kind: tdBool}
	BitArray16 = DataType{kind: tdBitArray16}
	U16        = DataType{kind: tdU16}
	I16        = DataType{kind: tdI16}
	F64        = DataType{kind: tdF64}
	U32        = DataType{kind: tdU32}
	I32        = DataType{kind: tdI32}
	F32        = DataType{kind: tdF32}
)

// String constructs a String(n) DataType for n device words, 1 ≤ n ≤ 32.
func String(n int) DataType {
	return DataType{kind: tdString, strN: n}
}

// IsString reports whether this DataType is a String(n) and, if so, n.
func (d DataType) IsString() (n int, ok bool) {
	return d.strN, d.kind == tdString
}

// Kind returns a stable name for the type, e.g. "Bool", "String".
func (d DataType) Kind() string {
	switch d.kind {
	case tdBool:
		return "Bool"
	case tdBitArray16:
		return "BitArray16"
	case tdU16:
		return "U16"
	case tdI16:
		return "I16"
	case tdF64:
		return "F64"
	case tdString:
		return "String"
	case tdU32:
		return "U32"
	case tdI32:
		return "I32"
	case tdF32:
		return "F32"
	default:
		return "invalid"
	}
}

// Ordinal returns the sort rank used by MonitorList (spec §3): 0 for Bool
// and single-word shapes, 1 for multi-word shapes, 2 for double-word
// shapes.
func (d DataType) Ordinal() int {
	return tdOrdinal[d.kind]
}

// SizeClass returns the wire access-point class for this DataType.
func (d DataType) SizeClass() SizeClass {
	switch d.kind {
	case tdBool:
		return SizeBit
	case tdBitArray16, tdU16, tdI16:
		return SizeSingleWord
	case tdF64, tdString:
		return SizeMultiWord
	default: // U32, I32, F32
		return SizeDoubleWord
	}
}

// DeviceSize returns how many single-word slots this value decomposes
// into for multi-word access-point counting and iteration (spec §3):
// 1 for Bool, single-word, and double-word shapes (none of those are
// decomposed into synthetic single-word slots), n for String(n), and 4
// for F64. See ByteSize for the on-wire byte length instead.
func (d DataType) DeviceSize() int {
	switch d.kind {
	case tdF64:
		return 4
	case tdString:
		return d.strN
	default:
		return 1
	}
}

// ByteSize returns the on-wire byte length of the value payload.
func (d DataType) ByteSize() int {
	switch d.kind {
	case tdBool, tdBitArray16, tdU16, tdI16:
		return 2
	case tdF64:
		return 8
	case tdString:
		return d.strN * 2
	case tdU32, tdI32, tdF32:
		return 4
	default:
		return 0
	}
}

// Equal reports whether two DataType values denote the same shape
// (String(n) compares n too).
func (d DataType) Equal(o DataType) bool {
	return d.kind == o.kind && (d.kind != tdString || d.strN == o.strN)
}

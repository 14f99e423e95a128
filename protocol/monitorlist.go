package protocol

import "sort"

// MaxAccessPoints is the SLMP server's random-access request limit: the
// sum of single-word and double-word access points in one request must
// not exceed this (spec §3, §8).
const MaxAccessPoints = 192

// monitorEntry is one user-supplied target plus the index it held in the
// caller's original sequence, so MonitorList.Parse can hand results back
// in that order after sorting for the wire (spec §3, §4.2).
type monitorEntry struct {
	target   TypedDevice
	origIdx  int
}

// MonitorList is a user-supplied sequence of TypedDevice, re-ordered and
// measured for the random-access wire protocol. See spec §3 for its
// invariants.
type MonitorList struct {
	entries []monitorEntry

	singleWordAccessPoints int // includes bits and the expansion of MultiWord(n)
	doubleWordAccessPoints int
	multiWordAccessPoints  int // count of MultiWord(n) items, not their expansion
}

// NewMonitorList builds a MonitorList from targets, sorted primarily by
// DataType (ordinal group, then declaration order of the shapes within a
// group, e.g. Bool before U16) and secondarily by device address, with the
// single/double/multi-word access-point counts cached. It fails with a
// ValidationError if the total access-point count would exceed
// MaxAccessPoints.
func NewMonitorList(targets []TypedDevice) (*MonitorList, error) {
	entries := make([]monitorEntry, len(targets))
	for i, t := range targets {
		entries[i] = monitorEntry{target: t, origIdx: i}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		oi, oj := entries[i].target.DataType.Ordinal(), entries[j].target.DataType.Ordinal()
		if oi != oj {
			return oi < oj
		}
		ki, kj := entries[i].target.DataType.kind, entries[j].target.DataType.kind
		if ki != kj {
			return ki < kj
		}
		return entries[i].target.Device.Address < entries[j].target.Device.Address
	})

	ml := &MonitorList{entries: entries}
	for _, e := range entries {
		dt := e.target.DataType
		switch dt.SizeClass() {
		case SizeBit, SizeSingleWord:
			ml.singleWordAccessPoints++
		case SizeDoubleWord:
			ml.doubleWordAccessPoints++
		case SizeMultiWord:
			ml.multiWordAccessPoints++
			ml.singleWordAccessPoints += dt.DeviceSize()
		}
	}
	if ml.singleWordAccessPoints+ml.doubleWordAccessPoints > MaxAccessPoints {
		return nil, validationErrorf(
			"monitor list has %d single-word + %d double-word access points, exceeds the %d-point server limit",
			ml.singleWordAccessPoints, ml.doubleWordAccessPoints, MaxAccessPoints)
	}
	return ml, nil
}

// Len returns the number of distinct targets (pre-expansion).
func (ml *MonitorList) Len() int { return len(ml.entries) }

// origIndices returns, for each sorted position, the index the target
// held in the caller's original sequence.
func (ml *MonitorList) origIndices() []int {
	out := make([]int, len(ml.entries))
	for i, e := range ml.entries {
		out[i] = e.origIdx
	}
	return out
}

// SingleWordAccessPoints, DoubleWordAccessPoints, MultiWordAccessPoints
// expose the cached counts from spec §3.
func (ml *MonitorList) SingleWordAccessPoints() int { return ml.singleWordAccessPoints }
func (ml *MonitorList) DoubleWordAccessPoints() int { return ml.doubleWordAccessPoints }
func (ml *MonitorList) MultiWordAccessPoints() int  { return ml.multiWordAccessPoints }

// Sorted returns the targets in wire order (single-word group, then
// multi-word group, then double-word group; within a group by DataType,
// then by address).
func (ml *MonitorList) Sorted() []TypedDevice {
	out := make([]TypedDevice, len(ml.entries))
	for i, e := range ml.entries {
		out[i] = e.target
	}
	return out
}

// slotReader yields the next single-word or double-word slot's raw bytes,
// in wire order, for one access point.
type slotReader func(byteLen int) ([]byte, error)

// Parse walks the sorted targets, consuming single-word slots, then the
// single-word slots belonging to multi-word items (coalesced back into
// one value each), then double-word slots — the layout spec §4.4
// specifies for RandomRead — and returns DeviceData in the caller's
// original order.
func (ml *MonitorList) Parse(next slotReader) ([]DeviceData, error) {
	out := make([]DeviceData, len(ml.entries))

	// First pass: plain single-word (and bit) targets, in sorted order.
	for _, e := range ml.entries {
		if e.target.DataType.SizeClass() == SizeMultiWord {
			continue
		}
		if e.target.DataType.SizeClass() == SizeDoubleWord {
			continue
		}
		b, err := next(e.target.DataType.ByteSize())
		if err != nil {
			return nil, err
		}
		v, err := TypedDataFrom(b, e.target.DataType)
		if err != nil {
			return nil, err
		}
		out[e.origIdx] = DeviceData{Device: e.target.Device, Value: v}
	}

	// Second pass: multi-word targets, each consuming DeviceSize() many
	// 2-byte single-word slots, coalesced into one value.
	for _, e := range ml.entries {
		if e.target.DataType.SizeClass() != SizeMultiWord {
			continue
		}
		buf := make([]byte, 0, e.target.DataType.ByteSize())
		for n := 0; n < e.target.DataType.DeviceSize(); n++ {
			b, err := next(2)
			if err != nil {
				return nil, err
			}
			buf = append(buf, b...)
		}
		v, err := TypedDataFrom(buf, e.target.DataType)
		if err != nil {
			return nil, err
		}
		out[e.origIdx] = DeviceData{Device: e.target.Device, Value: v}
	}

	// Third pass: double-word targets.
	for _, e := range ml.entries {
		if e.target.DataType.SizeClass() != SizeDoubleWord {
			continue
		}
		b, err := next(e.target.DataType.ByteSize())
		if err != nil {
			return nil, err
		}
		v, err := TypedDataFrom(b, e.target.DataType)
		if err != nil {
			return nil, err
		}
		out[e.origIdx] = DeviceData{Device: e.target.Device, Value: v}
	}

	return out, nil
}

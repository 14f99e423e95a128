package protocol

// BulkReadWordParse decodes a BulkRead(word) response payload into count
// values of type dt, starting at device start. Address advances by
// dt.ByteSize()/2 device words per element (spec §4.4).
func BulkReadWordParse(payload []byte, start Device, dt DataType, count int) ([]DeviceData, error) {
	step := dt.ByteSize()
	need := step * count
	if len(payload) < need {
		return nil, wireFormatErrorf("BulkRead(word) payload too short: need %d bytes, have %d", need, len(payload))
	}
	wordsPerElem := uint32(step / 2)
	out := make([]DeviceData, count)
	for i := 0; i < count; i++ {
		v, err := TypedDataFrom(payload[i*step:(i+1)*step], dt)
		if err != nil {
			return nil, err
		}
		out[i] = DeviceData{Device: start.Offset(uint32(i) * wordsPerElem), Value: v}
	}
	return out, nil
}

// BulkReadBitParse decodes a BulkRead(bit) response payload into count
// bools, starting at device start (spec §4.4).
func BulkReadBitParse(payload []byte, start Device, count int) ([]DeviceData, error) {
	need := (count + 1) / 2
	if len(payload) < need {
		return nil, wireFormatErrorf("BulkRead(bit) payload too short: need %d bytes, have %d", need, len(payload))
	}
	bits := unpackBulkBits(payload, count)
	out := make([]DeviceData, count)
	for i, b := range bits {
		out[i] = DeviceData{Device: start.Offset(uint32(i)), Value: NewBool(b)}
	}
	return out, nil
}

// BlockReadParse decodes a BlockRead response payload in the same
// word-blocks-then-bit-blocks order the request was built in. blocks is
// the same slice passed to BlockReadRequest: each entry gives the block's
// access type, start device, and declared size (words or bits) (spec
// §4.4).
func BlockReadParse(payload []byte, blocks []DeviceBlock) ([]BlockedDeviceData, error) {
	wordBlocks, bitBlocks := partitionBlocks(blocks)
	out := make([]BlockedDeviceData, 0, len(blocks))
	pos := 0

	for _, b := range wordBlocks {
		need := 2 * b.Size
		if pos+need > len(payload) {
			return nil, wireFormatErrorf("BlockRead payload too short for word block at %s", b.StartDevice)
		}
		data := make([]TypedData, b.Size)
		for i := 0; i < b.Size; i++ {
			v, err := TypedDataFrom(payload[pos+2*i:pos+2*i+2], U16)
			if err != nil {
				return nil, err
			}
			data[i] = v
		}
		pos += need
		out = append(out, BlockedDeviceData{Access: AccessWord, StartDevice: b.StartDevice, Data: data})
	}

	for _, b := range bitBlocks {
		need := (b.Size + 7) / 8
		if pos+need > len(payload) {
			return nil, wireFormatErrorf("BlockRead payload too short for bit block at %s", b.StartDevice)
		}
		bits := unpackBlockBits(payload[pos:pos+need], b.Size)
		data := make([]TypedData, b.Size)
		for i, v := range bits {
			data[i] = NewBool(v)
		}
		pos += need
		out = append(out, BlockedDeviceData{Access: AccessBit, StartDevice: b.StartDevice, Data: data})
	}

	return out, nil
}

// RandomReadParse decodes a RandomRead response payload via ml, returning
// results in the caller's original order (spec §4.4).
func RandomReadParse(payload []byte, ml *MonitorList) ([]DeviceData, error) {
	pos := 0
	return ml.Parse(func(n int) ([]byte, error) {
		if pos+n > len(payload) {
			return nil, wireFormatErrorf("RandomRead payload exhausted: need %d more bytes at offset %d, have %d total", n, pos, len(payload))
		}
		b := payload[pos : pos+n]
		pos += n
		return b, nil
	})
}

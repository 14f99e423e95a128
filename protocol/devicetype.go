package protocol

// DeviceType is a Mitsubishi PLC memory device family (X, Y, M, D, …).
// See companion MELSEC communication protocol reference, chapter on
// device codes.
type DeviceType byte

// The 28 supported device families and their single-byte wire codes.
const (
	DeviceX  DeviceType = iota // input relay
	DeviceY                    // output relay
	DeviceM                    // internal relay
	DeviceL                    // latch relay
	DeviceF                    // annunciator
	DeviceV                    // edge relay
	DeviceB                    // link relay
	DeviceD                    // data register
	DeviceW                    // link register
	DeviceS                    // step relay
	DeviceZ                    // index register
	DeviceR                    // file register
	DeviceTS                   // timer contact
	DeviceTC                   // timer coil
	DeviceTN                   // timer current value
	DeviceSS                   // retentive timer contact
	DeviceSC                   // retentive timer coil
	DeviceSN                   // retentive timer current value
	DeviceCS                   // counter contact
	DeviceCC                   // counter coil
	DeviceCN                   // counter current value
	DeviceSB                   // link special relay
	DeviceSD                   // link special register
	DeviceSM                   // special relay
	DeviceSW                   // special register
	DeviceDX                   // direct input
	DeviceDY                   // direct output
	DeviceZR                   // file register (block-independent)
)

var deviceTypeCode = [...]byte{
	DeviceX:  0x9c,
	DeviceY:  0x9d,
	DeviceM:  0x90,
	DeviceL:  0x92,
	DeviceF:  0x93,
	DeviceV:  0x94,
	DeviceB:  0xa0,
	DeviceD:  0xa8,
	DeviceW:  0xb4,
	DeviceS:  0x98,
	DeviceZ:  0xcc,
	DeviceR:  0xaf,
	DeviceTS: 0xc1,
	DeviceTC: 0xc0,
	DeviceTN: 0xc2,
	DeviceSS: 0xc7,
	DeviceSC: 0xc6,
	DeviceSN: 0xc8,
	DeviceCS: 0xc4,
	DeviceCC: 0xc3,
	DeviceCN: 0xc5,
	DeviceSB: 0xa1,
	DeviceSD: 0xa9,
	DeviceSM: 0x91,
	DeviceSW: 0xb5,
	DeviceDX: 0xa2,
	DeviceDY: 0xa3,
	DeviceZR: 0xb0,
}

var deviceTypeName = [...]string{
	DeviceX: "X", DeviceY: "Y", DeviceM: "M", DeviceL: "L", DeviceF: "F",
	DeviceV: "V", DeviceB: "B", DeviceD: "D", DeviceW: "W", DeviceS: "S",
	DeviceZ: "Z", DeviceR: "R", DeviceTS: "TS", DeviceTC: "TC", DeviceTN: "TN",
	DeviceSS: "SS", DeviceSC: "SC", DeviceSN: "SN", DeviceCS: "CS",
	DeviceCC: "CC", DeviceCN: "CN", DeviceSB: "SB", DeviceSD: "SD",
	DeviceSM: "SM", DeviceSW: "SW", DeviceDX: "DX", DeviceDY: "DY",
	DeviceZR: "ZR",
}

var deviceTypeByName = func() map[string]DeviceType {
	m := make(map[string]DeviceType, len(deviceTypeName))
	for dt, name := range deviceTypeName {
		m[name] = DeviceType(dt)
	}
	return m
}()

// Code returns the single wire byte for this device family.
func (d DeviceType) Code() byte {
	return deviceTypeCode[d]
}

// String implements fmt.Stringer.
func (d DeviceType) String() string {
	if int(d) < len(deviceTypeName) {
		return deviceTypeName[d]
	}
	return "DeviceType(invalid)"
}

// ParseDeviceType resolves the device family from its mnemonic (e.g. "D",
// "ZR"). ok is false for an unrecognised mnemonic.
func ParseDeviceType(name string) (dt DeviceType, ok bool) {
	dt, ok = deviceTypeByName[name]
	return
}

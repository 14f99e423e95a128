package protocol

import "fmt"

// Device identifies a single memory cell inside the PLC, e.g. D100 or M3.
// It is a pure value with no lifecycle.
type Device struct {
	Type    DeviceType
	Address uint32
}

// String renders the device in its conventional mnemonic+address form,
// e.g. "D100".
func (d Device) String() string {
	return fmt.Sprintf("%s%d", d.Type, d.Address)
}

// Offset returns the device n addresses past d, same type.
func (d Device) Offset(n uint32) Device {
	return Device{Type: d.Type, Address: d.Address + n}
}

// appendCode writes the little-endian 3-byte device number followed by the
// device-type code, widened per cpu: 4 bytes total for Q/L, 6 for R (one
// pad byte before and after the code) — see spec §4.1 and §3.
func (d Device) appendCode(buf []byte, cpu CPU) []byte {
	a := d.Address
	buf = append(buf, byte(a), byte(a>>8), byte(a>>16))
	if cpu == CPUR {
		buf = append(buf, 0x00, d.Type.Code(), 0x00)
		return buf
	}
	buf = append(buf, d.Type.Code())
	return buf
}

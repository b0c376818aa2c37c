package console

// CRC16 computes the checksum carried as an integrity trailer on
// console payload transfers. A pushed value arrives as a quoted
// argument followed by crc=HHHH; the receiver recomputes the checksum
// over the raw payload bytes and rejects the command on mismatch.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		b ^= uint8(crc & 0xFF)
		b ^= b << 4
		crc = (uint16(b)<<8 | crc>>8) ^ (uint16(b) >> 4) ^ (uint16(b) << 3)
	}
	return crc
}

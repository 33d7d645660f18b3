package upload

// crc32Table is the standard IEEE polynomial table (same polynomial as
// hash/crc32.IEEETable), but the DFU trailer protocol uses an
// uninverted convention (initial register 0xFFFFFFFF, no final xor, and
// the running register is reused across multiple Update calls spanning
// the image bytes and then the two six-byte trailer-magic halves). That
// doesn't map onto crc32.Checksum/crc32.Update's finalization, so the
// table and update step are hand-rolled here rather than wrapped around
// the stdlib package.
var crc32Table [256]uint32

const crc32Poly = 0xEDB88320

func init() {
	for i := 0; i < 256; i++ {
		c := uint32(i)
		for j := 0; j < 8; j++ {
			if c&1 != 0 {
				c = crc32Poly ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		crc32Table[i] = c
	}
}

// crc32Init is the running register's starting value.
const crc32Init uint32 = 0xFFFFFFFF

// crc32Update folds data into reg using the table-driven IEEE
// polynomial, with no final xor — crc32Update(crc32Init, nil) ==
// crc32Init, matching crc(empty) == 0xFFFFFFFF in this protocol's
// convention.
func crc32Update(reg uint32, data []byte) uint32 {
	for _, b := range data {
		reg = crc32Table[byte(reg)^b] ^ (reg >> 8)
	}
	return reg
}

// dfuMagic is the 12-byte literal trailer constant.
var dfuMagic = [12]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xAC, 0x05, 0x00, 0x01, 0x55, 0x46, 0x44, 0x10}

// dfuTrailer computes the 16-byte DFU trailer for a running CRC
// register that already reflects every data byte sent so far: run the
// CRC two additional rounds over the 12-byte magic split into two
// 6-byte halves, then append the resulting register little-endian.
func dfuTrailer(reg uint32) [16]byte {
	reg = crc32Update(reg, dfuMagic[:6])
	reg = crc32Update(reg, dfuMagic[6:])

	var out [16]byte
	copy(out[:12], dfuMagic[:])
	out[12] = byte(reg)
	out[13] = byte(reg >> 8)
	out[14] = byte(reg >> 16)
	out[15] = byte(reg >> 24)
	return out
}

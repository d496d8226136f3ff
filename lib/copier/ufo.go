package copier

import "github.com/sargunv/floppyconvert/lib/snes"

// ufoSramSizeCode maps a cartridge SRAM size to the UFO header's byte-19 code.
func ufoSramSizeCode(sramSize int) byte {
	switch {
	case sramSize == 0:
		return 0
	case sramSize <= 2*1024:
		return 1
	case sramSize <= 8*1024:
		return 2
	case sramSize <= 32*1024:
		return 3
	default:
		return 8
	}
}

// ufoAddressBytes computes the A15, A20/A21, A22/A23, and SRAM-type bytes
// (header offsets 20-23) from the table in the UfoSramEncoder.
func ufoAddressBytes(rom *snes.Rom) (a15, a2021, a2223, sramType byte) {
	switch {
	case rom.IsHiRom && rom.SramSize > 0:
		a2021, a2223, sramType = 0x0C, 0x02, 0x00
	case !rom.IsHiRom && rom.SramSize > 0:
		a15, a2021, a2223, sramType = 2, 0x0F, 3, 3
	case !rom.IsHiRom && rom.SramSize == 0 && rom.HasDsp:
		a15, a2021 = 1, 0x0C
	case !rom.IsHiRom && rom.SramSize == 0 && !rom.HasDsp:
		a2223, sramType = 2, 0
	}
	return
}

// genUfoHeader produces the 512-byte Super UFO copier header.
func genUfoHeader(rom *snes.Rom, _, partSize, _, _ int, isLast bool) []byte {
	header := make([]byte, headerSize)

	chunks := uint16(partSize / 8192)
	header[0] = byte(chunks)
	header[1] = byte(chunks >> 8)

	if !isLast {
		header[2] = 0x40
	}

	copy(header[8:16], "SUPERUFO")

	if rom.SramSize > 0 {
		header[16] = 1
	}

	// §4.4: byte 17 is the ROM's raw (pre-interleave, pre-padding) size in
	// Mbit, not the padded/interleaved part payload's total length.
	header[17] = byte(len(rom.Raw) / mbit)

	if !rom.IsHiRom {
		header[18] = 1
	}

	header[19] = ufoSramSizeCode(rom.SramSize)

	header[20], header[21], header[22], header[23] = ufoAddressBytes(rom)

	return header
}

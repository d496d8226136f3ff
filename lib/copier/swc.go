package copier

import "github.com/sargunv/floppyconvert/lib/snes"

// swcSramCode computes the 4-level SRAM-size code packed into bits 2-3
// (mask 0x0C) of the SWC emulation byte.
func swcSramCode(sramSize int) byte {
	switch {
	case sramSize == 0:
		return 0x0C
	case sramSize <= 2*1024:
		return 0x08
	case sramSize <= 8*1024:
		return 0x04
	default:
		return 0x00
	}
}

// genSwcHeader produces the 512-byte SWC (Super Wild Card) copier header.
func genSwcHeader(rom *snes.Rom, _, partSize, _, _ int, isLast bool) []byte {
	header := make([]byte, headerSize)

	chunks := uint16(partSize / 8192)
	header[0] = byte(chunks)
	header[1] = byte(chunks >> 8)

	emulation := swcSramCode(rom.SramSize)
	if !isLast {
		emulation |= 0x40
	}
	if rom.IsHiRom {
		emulation |= 0x30
	}
	header[2] = emulation

	header[8], header[9], header[10] = 0xAA, 0xBB, 0x04

	return header
}

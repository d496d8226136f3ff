package copier

import "github.com/sargunv/floppyconvert/lib/snes"

// figSramEmu computes the FIG header's emu1/emu2 bytes (offsets 4 and 5),
// which jointly encode SRAM presence/size and DSP coprocessor presence.
func figSramEmu(rom *snes.Rom) (emu1, emu2 byte) {
	if !rom.IsHiRom {
		emu1, emu2 = 0x77, 0x83
		if rom.SramSize > 0 {
			// byte 4 is preserved from the no-SRAM case; byte 5 switches to 0x80.
			emu2 = 0x80
		}
		if rom.HasDsp {
			emu1 = emu1&0x0F | 0x40
		}
		return emu1, emu2
	}

	emu2 |= 0x02
	if rom.SramSize > 0 {
		emu1 |= 0xDD
	}
	if rom.HasDsp {
		emu1 |= 0xF0
	}
	return emu1, emu2
}

// genFigHeader produces the 512-byte FIG (Pro Fighter) copier header.
func genFigHeader(rom *snes.Rom, _, partSize, _, _ int, isLast bool) []byte {
	header := make([]byte, headerSize)

	chunks := uint16(partSize / 8192)
	header[0] = byte(chunks)
	header[1] = byte(chunks >> 8)

	if !isLast {
		header[2] = 0x40
	}

	if rom.IsHiRom {
		header[3] = 0x80
	}

	header[4], header[5] = figSramEmu(rom)

	return header
}

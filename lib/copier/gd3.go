package copier

import "github.com/sargunv/floppyconvert/lib/snes"

// gd3MemoryMapSize is the length of the memory-map table embedded at header
// offset 0x11.
const gd3MemoryMapSize = 24

// repeatBytes builds a byte slice by repeating pattern count times.
func repeatBytes(pattern []byte, count int) []byte {
	out := make([]byte, 0, len(pattern)*count)
	for i := 0; i < count; i++ {
		out = append(out, pattern...)
	}
	return out
}

// gd3MemoryMaps are the fixed 24-byte memory-map tables from §6.4, keyed by
// (HiROM-family, ROM size in Mbit).
var gd3MemoryMaps = map[bool]map[int][]byte{
	true: { // HiROM / ExHiROM
		8:  append(repeatBytes([]byte{0x20}, 16), repeatBytes([]byte{0x22}, 8)...),
		16: append(repeatBytes([]byte{0x20, 0x21}, 8), repeatBytes([]byte{0x22, 0x23}, 4)...),
		24: append(repeatBytes([]byte{0x20, 0x21, 0x22, 0x00}, 4), repeatBytes([]byte{0x24, 0x25, 0x23, 0x00}, 2)...),
		32: append(repeatBytes([]byte{0x20, 0x21, 0x22, 0x23}, 4), repeatBytes([]byte{0x24, 0x25, 0x26, 0x27}, 2)...),
	},
	false: { // LoROM
		4:  repeatBytes([]byte{0x20}, 24),
		8:  repeatBytes([]byte{0x20, 0x21}, 12),
		16: repeatBytes([]byte{0x20, 0x21, 0x22, 0x23}, 6),
		32: append(repeatBytes([]byte{0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27}, 2), repeatBytes([]byte{0x24, 0x25, 0x26, 0x27}, 2)...),
	},
}

// gd3MemoryMap selects the memory-map table for the given ROM family and
// ROM size in Mbit, falling back to the largest table that does not exceed
// the actual size for sizes the fixed lookup does not cover exactly.
func gd3MemoryMap(isHiRom bool, sizeMbit int) []byte {
	tables := gd3MemoryMaps[isHiRom]
	if table, ok := tables[sizeMbit]; ok {
		return table
	}

	best := -1
	for size := range tables {
		if size <= sizeMbit && size > best {
			best = size
		}
	}
	if best == -1 {
		for size := range tables {
			if best == -1 || size < best {
				best = size
			}
		}
	}
	return tables[best]
}

// gd3SramSizeCode computes the GD3 header's byte-16 SRAM-size code.
func gd3SramSizeCode(sramSize int) byte {
	switch sramSize {
	case 8 * 1024:
		return 0x81
	case 2 * 1024:
		return 0x82
	default:
		return 0x80
	}
}

// genGd3Header produces the 512-byte Game Doctor SF 3/6/7 copier header.
// GD3 emits a header only for partIndex 0; callers must not call this for
// later parts (see splitGd3 in splitter.go).
func genGd3Header(rom *snes.Rom, target, _, partIndex, _ int, _ bool) []byte {
	if partIndex > 0 {
		return nil
	}

	header := make([]byte, headerSize)
	copy(header[0:16], "GAME DOCTOR SF 3")

	header[16] = gd3SramSizeCode(rom.SramSize)

	copy(header[0x11:0x11+gd3MemoryMapSize], gd3MemoryMap(rom.IsHiRom, target/mbit))

	if !rom.IsHiRom && rom.HasDsp {
		header[0x14] = 0x60
		header[0x1C] = 0x60
	}

	if rom.IsHiRom && rom.SramSize > 0 {
		header[0x29] = 0x0C
		header[0x2A] = 0x0C
	}

	if !rom.IsHiRom && rom.SramSize > 0 {
		header[0x24] = 0x40
		header[0x28] = 0x40
	}

	return header
}

package copier

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/sargunv/floppyconvert/lib/interleave"
	"github.com/sargunv/floppyconvert/lib/snes"
)

// DosNameCollisionError is returned when two GD3 part names collapse to the
// same DOS 8.3 (first 8 characters) name.
type DosNameCollisionError struct {
	Name string
}

func (e *DosNameCollisionError) Error() string {
	return fmt.Sprintf("copier: two GD3 part names collide in DOS 8.3 form: %q", e.Name)
}

// Split reads and classifies rom via snes.Read, validates it against the
// target format's hardware limits, and returns its ordered copier parts in
// copier playback order. baseName is used to derive on-disk filenames for
// FIG/SWC/UFO; GD3 part names are derived from the ROM title and do not use
// baseName.
func Split(r io.ReaderAt, size int64, format Format, baseName string) (*snes.Rom, []Part, error) {
	rom, err := snes.Read(r, size)
	if err != nil {
		return nil, nil, err
	}

	var parts []Part
	switch format {
	case FIG:
		parts, err = splitInterleaved(rom, baseName, FIG, genFigHeader)
	case SWC:
		parts, err = splitInterleaved(rom, baseName, SWC, genSwcHeader)
	case UFO:
		parts, err = splitUfo(rom, baseName)
	case GD3:
		parts, err = splitGd3(rom)
	default:
		return nil, nil, fmt.Errorf("copier: unknown format %v", format)
	}
	if err != nil {
		return nil, nil, err
	}
	return rom, parts, nil
}

// splitInterleaved implements the shared FIG/SWC split: interleave, chunk
// into 8-Mbit pieces, prepend the format header, name "<base>.N".
func splitInterleaved(rom *snes.Rom, baseName string, format Format, gen headerGenerator) ([]Part, error) {
	payload := interleave.Interleave(rom.Raw)
	if err := ValidateHardware(format, rom, len(payload)); err != nil {
		return nil, err
	}

	chunkLen := 8 * mbit
	total := len(payload) / chunkLen

	parts := make([]Part, 0, total)
	for i := 0; i < total; i++ {
		isLast := i == total-1
		chunk := payload[i*chunkLen : (i+1)*chunkLen]
		header := gen(rom, len(payload), len(chunk), i, total, isLast)
		parts = append(parts, Part{
			Header:  header,
			Payload: chunk,
			Name:    fmt.Sprintf("%s.%d", baseName, i+1),
		})
	}
	return parts, nil
}

// splitUfo implements the UFO split: interleave, then chunk into 8-Mbit
// pieces with HiROM's irregular trailing 4-Mbit chunk at 12/20/28 Mbit
// totals, naming parts "<base>.Ngm".
func splitUfo(rom *snes.Rom, baseName string) ([]Part, error) {
	payload := interleave.Interleave(rom.Raw)
	if err := ValidateHardware(UFO, rom, len(payload)); err != nil {
		return nil, err
	}

	chunkLen := 8 * mbit
	// The irregular rule is evaluated against the raw, pre-interleave ROM
	// size: interleave.Interleave always mirror-pads its output to a
	// multiple of 8 Mbit, so len(payload)/mbit can never be 12/20/28 and
	// testing it here would make this branch unreachable.
	rawMbit := len(rom.Raw) / mbit

	var boundaries []int // byte offsets of chunk ends
	irregular := rom.IsHiRom && (rawMbit == 12 || rawMbit == 20 || rawMbit == 28)
	if irregular {
		fullChunks := rawMbit / 8
		offset := 0
		for i := 0; i < fullChunks; i++ {
			offset += chunkLen
			boundaries = append(boundaries, offset)
		}
		boundaries = append(boundaries, len(rom.Raw))
	} else {
		for offset := chunkLen; offset <= len(payload); offset += chunkLen {
			boundaries = append(boundaries, offset)
		}
	}

	total := len(boundaries)
	parts := make([]Part, 0, total)
	start := 0
	for i, end := range boundaries {
		isLast := i == total-1
		chunk := payload[start:end]
		header := genUfoHeader(rom, len(payload), len(chunk), i, total, isLast)
		parts = append(parts, Part{
			Header:  header,
			Payload: chunk,
			Name:    fmt.Sprintf("%s.%dgm", baseName, i+1),
		})
		start = end
	}
	return parts, nil
}

var gd3NonAlnum = regexp.MustCompile(`[^A-Z0-9]+`)

// gd3BaseName derives the GD3 part-name stem from the ROM title: first 6
// uppercased characters, with runs of non-alphanumerics collapsed to a
// single underscore.
func gd3BaseName(title string) string {
	upper := strings.ToUpper(title)
	if len(upper) > 6 {
		upper = upper[:6]
	}
	return gd3NonAlnum.ReplaceAllString(upper, "_")
}

// splitGd3 implements the GD3 split: no interleave, raw payload chunked into
// 8-Mbit pieces, padded with 0xFF to the hardware's minimum volume count,
// header emitted only on part 0, names derived from the ROM title.
func splitGd3(rom *snes.Rom) ([]Part, error) {
	chunkLen := 8 * mbit
	raw := rom.Raw

	chunks := (len(raw) + chunkLen - 1) / chunkLen
	if rom.IsHiRom && len(raw) >= chunkLen && chunks < 2 {
		chunks = 2
	}
	target := chunks * chunkLen

	if err := ValidateHardware(GD3, rom, target); err != nil {
		return nil, err
	}

	padded := make([]byte, target)
	copy(padded, raw)
	for i := len(raw); i < target; i++ {
		padded[i] = 0xFF
	}

	stem := gd3BaseName(rom.Title)
	seen := make(map[string]string, chunks)

	parts := make([]Part, 0, chunks)
	for i := 0; i < chunks; i++ {
		chunk := padded[i*chunkLen : (i+1)*chunkLen]

		letter := partLetter(i)
		name := stem + letter + ".078"

		dos8 := strings.ToUpper(stem + letter)
		if len(dos8) > 8 {
			dos8 = dos8[:8]
		}
		if existing, ok := seen[dos8]; ok && existing != name {
			return nil, &DosNameCollisionError{Name: dos8}
		}
		seen[dos8] = name

		var header []byte
		if i == 0 {
			header = genGd3Header(rom, target, len(chunk), i, chunks, i == chunks-1)
		}

		parts = append(parts, Part{
			Header:  header,
			Payload: chunk,
			Name:    name,
		})
	}
	return parts, nil
}

// partLetter returns the single-letter suffix for GD3 part index i: A, B,
// C, ... Z, then AA, AB, ... (wrapping is extremely unlikely in practice
// given the hardware size caps, but is handled for completeness).
func partLetter(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return partLetter(i/26-1) + partLetter(i%26)
}

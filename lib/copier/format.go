// Package copier implements the four historical SNES backup-unit file
// formats (FIG, SWC, UFO, GD3): their per-part 512-byte headers, hardware
// capacity limits, and the splitting algorithm that turns an analyzed ROM
// into an ordered sequence of on-disk parts.
package copier

import (
	"fmt"
	"strings"

	"github.com/sargunv/floppyconvert/lib/snes"
)

// Format is the closed set of supported copier targets.
type Format int

const (
	FIG Format = iota
	SWC
	UFO
	GD3
)

// String returns the format's canonical name.
func (f Format) String() string {
	switch f {
	case FIG:
		return "FIG"
	case SWC:
		return "SWC"
	case UFO:
		return "UFO"
	case GD3:
		return "GD3"
	default:
		return "unknown"
	}
}

// Extension returns the file extension associated with the format: the
// conventional ROM file extension for FIG and SWC (their split parts are
// named "<base>.N" and do not carry it), the suffix that follows the part
// number in UFO part names ("<base>.Ngm"), and the extension of GD3 part
// names.
func (f Format) Extension() string {
	switch f {
	case FIG:
		return ".fig"
	case SWC:
		return ".swc"
	case UFO:
		return "gm"
	case GD3:
		return ".078"
	default:
		return ""
	}
}

// ParseFormat parses a case-insensitive format name as used on the CLI.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "fig":
		return FIG, nil
	case "swc":
		return SWC, nil
	case "ufo":
		return UFO, nil
	case "gd3":
		return GD3, nil
	default:
		return 0, fmt.Errorf("copier: unknown format %q (want fig, swc, ufo, or gd3)", s)
	}
}

// Part is one split chunk of a ROM, ready to be written to disk: a
// format-specific header (may be empty, see GD3) followed by a slice of the
// ROM payload.
type Part struct {
	// Header is the 512-byte copier header, or empty for GD3 parts after the
	// first.
	Header []byte
	// Payload is this part's slice of ROM data.
	Payload []byte
	// Name is the on-disk filename (including extension) in playback order.
	Name string
}

// Size is the total on-disk size of the part (header + payload).
func (p Part) Size() int {
	return len(p.Header) + len(p.Payload)
}

// headerGenerator produces the 512-byte copier header for one split part.
// rom is the analyzed source ROM, totalSize is the full split payload size
// in bytes, partSize is this part's payload size, partIndex is 0-based,
// totalParts is the number of parts in the split, and isLast indicates the
// final part.
type headerGenerator func(rom *snes.Rom, totalSize, partSize, partIndex, totalParts int, isLast bool) []byte

const headerSize = 512

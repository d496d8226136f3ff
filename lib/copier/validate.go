package copier

import (
	"fmt"

	"github.com/sargunv/floppyconvert/lib/snes"
)

const mbit = 131072

// UnsupportedHardwareError is returned when a ROM exceeds the physical
// capacity of the target copier.
type UnsupportedHardwareError struct {
	Format  Format
	Actual  int
	Max     int
}

func (e *UnsupportedHardwareError) Error() string {
	return fmt.Sprintf("copier: %s cannot hold a %d-Mbit ROM (max %d Mbit)",
		e.Format, e.Actual/mbit, e.Max/mbit)
}

// ValidateHardware rejects ROMs the target copier cannot physically hold.
// payloadSize is the size, in bytes, of the data the copier would actually
// need to store (post-interleave for FIG/SWC/UFO, raw for GD3).
func ValidateHardware(format Format, rom *snes.Rom, payloadSize int) error {
	switch format {
	case UFO:
		const max = 32 * mbit
		if payloadSize > max {
			return &UnsupportedHardwareError{Format: UFO, Actual: payloadSize, Max: max}
		}
	case GD3:
		if rom.Type == snes.ExHiROM {
			const max = 64 * mbit
			if payloadSize > max {
				return &UnsupportedHardwareError{Format: GD3, Actual: payloadSize, Max: max}
			}
		} else {
			const max = 32 * mbit
			if payloadSize > max {
				return &UnsupportedHardwareError{Format: GD3, Actual: payloadSize, Max: max}
			}
		}
	case FIG, SWC:
		// No explicit hardware cap.
	}
	return nil
}

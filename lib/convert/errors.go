// Package convert wires the Reader, Interleaver, Validator, Header, Splitter,
// Normalizer, Packer, Template and Workspace packages into a single
// "ROM file -> N floppy images" pipeline.
package convert

import "fmt"

// InvalidRomNameError is returned when a ROM file's stem sanitizes to the
// empty string.
type InvalidRomNameError struct {
	RomFile string
}

func (e *InvalidRomNameError) Error() string {
	return fmt.Sprintf("convert: %q has no usable base name", e.RomFile)
}

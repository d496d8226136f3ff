// Package diskpack greedily bin-packs copier parts into the smallest set of
// floppy-image layouts that can hold them.
package diskpack

import (
	"fmt"

	"github.com/sargunv/floppyconvert/lib/fat12"
)

// overheadBytes is reserved per floppy for FAT/root-directory bookkeeping
// that GreedyDiskPacker must leave headroom for.
const overheadBytes = 16 * 1024

// capacities lists every floppy type the packer may choose, smallest first.
var capacities = []fat12.Type{fat12.F720K, fat12.F144M, fat12.F160M}

// RomPart is the packer's view of one copier-produced file: a DOS name and
// the number of bytes (header + payload) it will occupy on disk.
type RomPart struct {
	DosName string
	Size    int
}

// DiskLayout is an ordered group of parts destined for one floppy image.
type DiskLayout struct {
	FloppyType fat12.Type
	Parts      []RomPart
}

// PartTooLargeError is returned when a single part cannot fit on the
// largest supported floppy even with no other content.
type PartTooLargeError struct {
	DosName string
	Size    int
	MaxSize int
}

func (e *PartTooLargeError) Error() string {
	return fmt.Sprintf("diskpack: part %q (%d bytes) exceeds the largest floppy's usable capacity (%d bytes)", e.DosName, e.Size, e.MaxSize)
}

// usableCapacity returns how many payload bytes fit on a floppy of t once
// the FAT/directory overhead is reserved.
func usableCapacity(t fat12.Type) int {
	return t.Capacity() - overheadBytes
}

// smallestThatFits returns the smallest floppy type whose usable capacity is
// at least size, or false if none of them are large enough.
func smallestThatFits(size int) (fat12.Type, bool) {
	for _, t := range capacities {
		if size <= usableCapacity(t) {
			return t, true
		}
	}
	return 0, false
}

// GreedyDiskPacker packs parts, in order, into DiskLayouts. Equal inputs
// always produce equal outputs.
func GreedyDiskPacker(parts []RomPart) ([]DiskLayout, error) {
	maxCapacity := usableCapacity(capacities[len(capacities)-1])
	for _, p := range parts {
		if p.Size > maxCapacity {
			return nil, &PartTooLargeError{DosName: p.DosName, Size: p.Size, MaxSize: maxCapacity}
		}
	}

	var layouts []DiskLayout
	var current []RomPart
	currentSize := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		t, _ := smallestThatFits(currentSize)
		layouts = append(layouts, DiskLayout{FloppyType: t, Parts: current})
		current = nil
		currentSize = 0
	}

	for _, p := range parts {
		if _, fits := smallestThatFits(currentSize + p.Size); !fits {
			flush()
		}
		current = append(current, p)
		currentSize += p.Size
	}
	flush()

	return layouts, nil
}

// Package template materializes blank FAT12 floppy-disk images.
package template

import (
	"fmt"
	"os"

	"github.com/sargunv/floppyconvert/lib/fat12"
)

// TemplateUnavailableError is returned when a blank image for a type cannot
// be produced or located.
type TemplateUnavailableError struct {
	Type fat12.Type
}

func (e *TemplateUnavailableError) Error() string {
	return fmt.Sprintf("template: no blank image available for %s", e.Type)
}

// bpbParams mirrors the BIOS Parameter Block fields fat12.Writer assumes for
// each floppy type; kept in sync with lib/fat12's internal table so the
// boot sector this package writes actually matches what the writer parses.
type bpbParams struct {
	sectorsPerCluster byte
	rootDirEntries    uint16
	sectorsPerFat     uint16
	totalSectors      uint16
	mediaDescriptor   byte
	sectorsPerTrack   uint16
	heads             uint16
}

func paramsFor(t fat12.Type) bpbParams {
	switch t {
	case fat12.F720K:
		return bpbParams{sectorsPerCluster: 2, rootDirEntries: 112, sectorsPerFat: 3, totalSectors: 1440, mediaDescriptor: 0xF9, sectorsPerTrack: 9, heads: 2}
	case fat12.F144M:
		return bpbParams{sectorsPerCluster: 1, rootDirEntries: 224, sectorsPerFat: 9, totalSectors: 2880, mediaDescriptor: 0xF0, sectorsPerTrack: 18, heads: 2}
	case fat12.F160M:
		return bpbParams{sectorsPerCluster: 1, rootDirEntries: 224, sectorsPerFat: 9, totalSectors: 3200, mediaDescriptor: 0xF0, sectorsPerTrack: 20, heads: 2}
	default:
		return bpbParams{}
	}
}

// Blank builds a complete blank FAT12 image of exactly t.Capacity() bytes:
// a boot sector with a filled-in BPB, two zeroed FATs (except the first two
// reserved entries), and an empty root directory.
func Blank(t fat12.Type) []byte {
	p := paramsFor(t)
	img := make([]byte, t.Capacity())

	img[0] = 0xEB
	img[1] = 0x3C
	img[2] = 0x90
	copy(img[3:11], "FLPYCNVT")

	putU16(img[11:13], 512)
	img[13] = p.sectorsPerCluster
	putU16(img[14:16], 1) // reserved sectors
	img[16] = 2           // FAT copies
	putU16(img[17:19], p.rootDirEntries)
	putU16(img[19:21], p.totalSectors)
	img[21] = p.mediaDescriptor
	putU16(img[22:24], p.sectorsPerFat)
	putU16(img[24:26], p.sectorsPerTrack)
	putU16(img[26:28], p.heads)

	img[510] = 0x55
	img[511] = 0xAA

	fatStart := 512
	fat := img[fatStart : fatStart+int(p.sectorsPerFat)*512]
	fat[0] = p.mediaDescriptor
	fat[1] = 0xFF
	fat[2] = 0xFF

	fat2Start := fatStart + int(p.sectorsPerFat)*512
	copy(img[fat2Start:fat2Start+int(p.sectorsPerFat)*512], fat)

	return img
}

func putU16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

// CreateBlankDisk streams a blank image of the given type to targetPath,
// replacing any existing file.
func CreateBlankDisk(t fat12.Type, targetPath string) error {
	data := Blank(t)
	if err := os.WriteFile(targetPath, data, 0o644); err != nil {
		return &TemplateUnavailableError{Type: t}
	}
	return nil
}

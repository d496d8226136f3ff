// Package fat12 writes bit-exact FAT12 floppy-disk images from a blank
// template and a set of short (DOS 8.3) filename-to-bytes mappings. It is
// write-only: the package never needs to read an existing FAT12 filesystem's
// directory structure back out.
package fat12

import (
	"fmt"
	"os"
)

const bytesPerSector = 512

// Type is one of the three floppy capacities this package supports.
type Type int

const (
	F720K Type = iota
	F144M
	F160M
)

// Capacity returns the exact byte size of a blank image of this type.
func (t Type) Capacity() int {
	switch t {
	case F720K:
		return 737280
	case F144M:
		return 1474560
	case F160M:
		return 1638400
	default:
		panic("fat12: unknown floppy type")
	}
}

func (t Type) String() string {
	switch t {
	case F720K:
		return "720K"
	case F144M:
		return "1.44M"
	case F160M:
		return "1.6M"
	default:
		return "unknown"
	}
}

// bpbParams holds the fixed BIOS Parameter Block values this package assumes
// for a template of a given Type.
type bpbParams struct {
	sectorsPerCluster int
	reservedSectors   int
	fatCopies         int
	rootDirEntries    int
	sectorsPerFat     int
}

func paramsFor(t Type) bpbParams {
	switch t {
	case F720K:
		return bpbParams{sectorsPerCluster: 2, reservedSectors: 1, fatCopies: 2, rootDirEntries: 112, sectorsPerFat: 3}
	case F144M, F160M:
		return bpbParams{sectorsPerCluster: 1, reservedSectors: 1, fatCopies: 2, rootDirEntries: 224, sectorsPerFat: 9}
	default:
		panic("fat12: unknown floppy type")
	}
}

// Writer mutates an in-memory copy of a blank FAT12 template, adding files
// one at a time, and flushes the result back to disk on Close.
type Writer struct {
	path   string
	typ    Type
	params bpbParams
	image  []byte

	fatStart       int // byte offset of FAT #1
	fatSize        int // bytes per FAT copy
	rootDirStart   int // byte offset of root directory
	rootDirEntries int
	dataStart      int // byte offset of cluster 2
	clusterBytes   int
	totalClusters  int // total data-area clusters, numbered from 2

	nextFreeHint int // next cluster number to start first-fit scanning from
}

// OutOfSpaceError is returned when the cluster allocator cannot satisfy the
// next file.
type OutOfSpaceError struct {
	Name      string
	NeedBytes int
}

func (e *OutOfSpaceError) Error() string {
	return fmt.Sprintf("fat12: out of space writing %q (%d bytes)", e.Name, e.NeedBytes)
}

// DirectoryFullError is returned when the root directory has no free entry.
type DirectoryFullError struct {
	Name string
}

func (e *DirectoryFullError) Error() string {
	return fmt.Sprintf("fat12: root directory full, cannot add %q", e.Name)
}

// InvalidDosNameError is returned when a DOS 8.3 name fails validation.
type InvalidDosNameError struct {
	Name string
}

func (e *InvalidDosNameError) Error() string {
	return fmt.Sprintf("fat12: invalid DOS 8.3 name %q", e.Name)
}

// Open loads a blank template image (already the exact capacity of typ) for
// in-place mutation. The template bytes are not otherwise validated: the
// caller (Template Factory) is responsible for supplying a valid boot
// sector, empty FATs, and an empty root directory.
func Open(path string, typ Type, template []byte) (*Writer, error) {
	if len(template) != typ.Capacity() {
		return nil, fmt.Errorf("fat12: template is %d bytes, want %d for %s", len(template), typ.Capacity(), typ)
	}

	params := paramsFor(typ)
	image := make([]byte, len(template))
	copy(image, template)

	fatStart := params.reservedSectors * bytesPerSector
	fatSize := params.sectorsPerFat * bytesPerSector
	rootDirStart := fatStart + params.fatCopies*fatSize
	dataStart := rootDirStart + params.rootDirEntries*32
	clusterBytes := params.sectorsPerCluster * bytesPerSector
	totalClusters := (len(image) - dataStart) / clusterBytes

	return &Writer{
		path:           path,
		typ:            typ,
		params:         params,
		image:          image,
		fatStart:       fatStart,
		fatSize:        fatSize,
		rootDirStart:   rootDirStart,
		rootDirEntries: params.rootDirEntries,
		dataStart:      dataStart,
		clusterBytes:   clusterBytes,
		totalClusters:  totalClusters,
		nextFreeHint:   2,
	}, nil
}

// OpenPath reads the blank template image already written at path (by the
// Template Factory) and opens it for in-place mutation.
func OpenPath(path string, typ Type) (*Writer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fat12: reading %s: %w", path, err)
	}
	return Open(path, typ, data)
}

// Bytes returns the current in-memory image, including FAT mirror, ready to
// be flushed to disk.
func (w *Writer) Bytes() []byte {
	w.mirrorFat()
	return w.image
}

// mirrorFat copies FAT #1 onto every subsequent FAT copy.
func (w *Writer) mirrorFat() {
	fat1 := w.image[w.fatStart : w.fatStart+w.fatSize]
	for i := 1; i < w.params.fatCopies; i++ {
		start := w.fatStart + i*w.fatSize
		copy(w.image[start:start+w.fatSize], fat1)
	}
}

// Close mirrors the FAT and flushes the finished image to w.path.
func (w *Writer) Close() error {
	if err := os.WriteFile(w.path, w.Bytes(), 0o644); err != nil {
		return fmt.Errorf("fat12: writing %s: %w", w.path, err)
	}
	return nil
}

package fat12

import (
	"strings"
)

const dirEntrySize = 32

// splitDosName splits "NAME.EXT" into an 8-byte name field and a 3-byte
// extension field, both space-padded and uppercased, rejecting anything that
// does not fit the classic DOS 8.3 shape.
func splitDosName(dosName string) (name [8]byte, ext [3]byte, ok bool) {
	for i := range name {
		name[i] = ' '
	}
	for i := range ext {
		ext[i] = ' '
	}

	upper := strings.ToUpper(dosName)
	stem, extPart, _ := strings.Cut(upper, ".")
	if len(stem) == 0 || len(stem) > 8 || len(extPart) > 3 {
		return name, ext, false
	}
	if strings.Contains(extPart, ".") {
		return name, ext, false
	}
	for _, r := range stem + extPart {
		if !isValidDosChar(r) {
			return name, ext, false
		}
	}

	copy(name[:], stem)
	copy(ext[:], extPart)
	return name, ext, true
}

func isValidDosChar(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case strings.ContainsRune("_-", r):
		return true
	default:
		return false
	}
}

// WriteFile allocates clusters for data, writes it into the image's data
// area, links the FAT chain, and adds a root directory entry named dosName.
func (w *Writer) WriteFile(dosName string, data []byte) error {
	name, ext, ok := splitDosName(dosName)
	if !ok {
		return &InvalidDosNameError{Name: dosName}
	}

	clusterCount := (len(data) + w.clusterBytes - 1) / w.clusterBytes
	if clusterCount == 0 {
		clusterCount = 1
	}

	clusters, ok := w.allocateChain(clusterCount)
	if !ok {
		return &OutOfSpaceError{Name: dosName, NeedBytes: len(data)}
	}

	slot, err := w.freeDirEntry(dosName)
	if err != nil {
		return err
	}

	remaining := data
	for _, cl := range clusters {
		dst := w.image[w.clusterOffset(cl) : w.clusterOffset(cl)+w.clusterBytes]
		n := copy(dst, remaining)
		for i := n; i < len(dst); i++ {
			dst[i] = 0
		}
		if n < len(remaining) {
			remaining = remaining[n:]
		} else {
			remaining = nil
		}
	}

	w.writeDirEntry(slot, name, ext, clusters[0], len(data))
	return nil
}

// freeDirEntry returns the byte offset of the first unused (all-zero) root
// directory slot, or a DirectoryFullError if none remain.
func (w *Writer) freeDirEntry(dosName string) (int, error) {
	for i := 0; i < w.rootDirEntries; i++ {
		offset := w.rootDirStart + i*dirEntrySize
		entry := w.image[offset : offset+dirEntrySize]
		if entry[0] == 0x00 {
			return offset, nil
		}
	}
	return 0, &DirectoryFullError{Name: dosName}
}

// writeDirEntry fills in a 32-byte root directory entry at offset: 8-byte
// name, 3-byte extension, archive attribute, zeroed reserved/time/date
// fields, first cluster, and file size.
func (w *Writer) writeDirEntry(offset int, name [8]byte, ext [3]byte, firstCluster int, size int) {
	entry := w.image[offset : offset+dirEntrySize]
	copy(entry[0:8], name[:])
	copy(entry[8:11], ext[:])
	entry[11] = 0x20 // archive
	for i := 12; i < 22; i++ {
		entry[i] = 0
	}
	entry[22], entry[23] = 0, 0 // time
	entry[24], entry[25] = 0, 0 // date
	entry[26] = byte(firstCluster)
	entry[27] = byte(firstCluster >> 8)
	entry[28] = byte(size)
	entry[29] = byte(size >> 8)
	entry[30] = byte(size >> 16)
	entry[31] = byte(size >> 24)
}

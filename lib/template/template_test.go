package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sargunv/floppyconvert/lib/fat12"
)

func TestBlankSizes(t *testing.T) {
	for _, typ := range []fat12.Type{fat12.F720K, fat12.F144M, fat12.F160M} {
		img := Blank(typ)
		if len(img) != typ.Capacity() {
			t.Errorf("Blank(%v) len = %d, want %d", typ, len(img), typ.Capacity())
		}
		if img[510] != 0x55 || img[511] != 0xAA {
			t.Errorf("Blank(%v) missing boot signature", typ)
		}
	}
}

func TestCreateBlankDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.img")
	if err := CreateBlankDisk(fat12.F144M, path); err != nil {
		t.Fatalf("CreateBlankDisk: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() != int64(fat12.F144M.Capacity()) {
		t.Errorf("file size = %d, want %d", info.Size(), fat12.F144M.Capacity())
	}
}

func TestCreateBlankDiskOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.img")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	if err := CreateBlankDisk(fat12.F720K, path); err != nil {
		t.Fatalf("CreateBlankDisk: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() != int64(fat12.F720K.Capacity()) {
		t.Errorf("file size = %d, want %d", info.Size(), fat12.F720K.Capacity())
	}
}

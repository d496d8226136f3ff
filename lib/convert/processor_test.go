package convert

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sargunv/floppyconvert/lib/copier"
)

// writeSyntheticRom builds a minimal, scorable LoROM image and writes it to
// path, returning the path.
func writeSyntheticRom(t *testing.T, dir, name string, size int) string {
	t.Helper()
	raw := make([]byte, size)
	header := raw[0x7FB0 : 0x7FB0+64]
	title := "TEST GAME"
	for i := 0; i < 21; i++ {
		if i < len(title) {
			header[0x10+i] = title[i]
		} else {
			header[0x10+i] = ' '
		}
	}
	header[0x15] = 0x00 // LoROM
	header[0x16] = 0x00
	header[0x17] = 10
	header[0x18] = 0

	checksum := uint16(0xBEEF)
	complement := checksum ^ 0xFFFF
	header[0x1E] = byte(checksum)
	header[0x1F] = byte(checksum >> 8)
	header[0x1C] = byte(complement)
	header[0x1D] = byte(complement >> 8)

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("writing synthetic ROM: %v", err)
	}
	return path
}

func TestProcessRomProducesSingleImage(t *testing.T) {
	dir := t.TempDir()
	romPath := writeSyntheticRom(t, dir, "test game.sfc", 0x80000)
	outDir := filepath.Join(dir, "out")

	n, err := ProcessRom(context.Background(), romPath, outDir, "suffix1", copier.FIG)
	if err != nil {
		t.Fatalf("ProcessRom: %v", err)
	}
	if n < 1 {
		t.Fatalf("diskCount = %d, want >= 1", n)
	}

	entries, err := os.ReadDir(filepath.Join(outDir, "test_game"))
	if err != nil {
		t.Fatalf("reading output dir: %v", err)
	}
	found := false
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".img" {
			found = true
		}
	}
	if !found {
		t.Error("expected at least one .img file in output directory")
	}

	if _, err := os.Stat(filepath.Join(dir, "out", "test_game."+"suffix1")); !os.IsNotExist(err) {
		t.Error("expected scratch workspace to be cleaned up after promotion")
	}
}

func TestProcessRomInvalidName(t *testing.T) {
	dir := t.TempDir()
	romPath := writeSyntheticRom(t, dir, ".sfc", 0x80000)
	outDir := filepath.Join(dir, "out")

	_, err := ProcessRom(context.Background(), romPath, outDir, "suffix2", copier.FIG)
	if err == nil {
		t.Fatal("expected InvalidRomNameError")
	}
	if _, ok := err.(*InvalidRomNameError); !ok {
		t.Fatalf("expected *InvalidRomNameError, got %T", err)
	}
}

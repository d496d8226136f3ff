package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sargunv/floppyconvert/lib/copier"
	"github.com/sargunv/floppyconvert/lib/diskpack"
	"github.com/sargunv/floppyconvert/lib/fat12"
	"github.com/sargunv/floppyconvert/lib/filename"
	"github.com/sargunv/floppyconvert/lib/template"
	"github.com/sargunv/floppyconvert/lib/workspace"
)

// ProcessRom converts a single ROM file into one or more FAT12 floppy
// images under outputBaseDir, using suffix to name its scratch workspace.
// It returns the number of disk images produced.
func ProcessRom(ctx context.Context, romFile, outputBaseDir, suffix string, format copier.Format) (int, error) {
	baseName := filename.SanitizeName(strings.TrimSuffix(filepath.Base(romFile), filepath.Ext(romFile)))
	if baseName == "" {
		return 0, &InvalidRomNameError{RomFile: romFile}
	}

	ws, err := workspace.New(ctx, outputBaseDir, baseName, suffix)
	if err != nil {
		return 0, err
	}

	diskCount, procErr := processInWorkspace(ws, romFile, outputBaseDir, baseName, format)

	if cerr := ws.Close(); cerr != nil {
		if procErr != nil {
			return 0, fmt.Errorf("%w (%v)", procErr, cerr)
		}
		return 0, cerr
	}
	if procErr != nil {
		return 0, procErr
	}
	return diskCount, nil
}

func processInWorkspace(ws *workspace.Workspace, romFile, outputBaseDir, baseName string, format copier.Format) (int, error) {
	f, err := os.Open(romFile)
	if err != nil {
		return 0, fmt.Errorf("convert: opening %s: %w", romFile, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("convert: stat %s: %w", romFile, err)
	}

	_, parts, err := copier.Split(f, info.Size(), format, baseName)
	if err != nil {
		return 0, err
	}

	paths := make([]string, len(parts))
	for i, p := range parts {
		path := filepath.Join(ws.WorkDir, p.Name)
		if err := writePart(path, p); err != nil {
			return 0, err
		}
		ws.Track(path)
		paths[i] = path
	}

	normalized, err := filename.Normalize(paths, ws)
	if err != nil {
		return 0, err
	}

	romParts := make([]diskpack.RomPart, len(normalized))
	dosNames := make([]string, len(normalized))
	for i, p := range normalized {
		dos, err := filename.DosName(filepath.Base(p))
		if err != nil {
			return 0, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return 0, fmt.Errorf("convert: stat %s: %w", p, err)
		}
		dosNames[i] = dos
		romParts[i] = diskpack.RomPart{DosName: dos, Size: int(info.Size())}
	}

	layouts, err := diskpack.GreedyDiskPacker(romParts)
	if err != nil {
		return 0, err
	}

	finalDir := filepath.Join(outputBaseDir, baseName)

	partIdx := 0
	width := len(fmt.Sprintf("%d", len(layouts)))
	for k, layout := range layouts {
		imgName := baseName + ".img"
		if len(layouts) > 1 {
			imgName = fmt.Sprintf("%s_%0*d.img", baseName, width, k+1)
		}
		imgPath := filepath.Join(ws.WorkDir, imgName)

		if err := template.CreateBlankDisk(layout.FloppyType, imgPath); err != nil {
			return 0, err
		}
		ws.Track(imgPath)

		writer, err := fat12.OpenPath(imgPath, layout.FloppyType)
		if err != nil {
			return 0, err
		}

		for range layout.Parts {
			data, err := os.ReadFile(normalized[partIdx])
			if err != nil {
				return 0, fmt.Errorf("convert: reading %s: %w", normalized[partIdx], err)
			}
			if err := writer.WriteFile(dosNames[partIdx], data); err != nil {
				return 0, err
			}
			partIdx++
		}

		if err := writer.Close(); err != nil {
			return 0, err
		}

		if _, err := ws.PromoteToFinal(imgPath, finalDir); err != nil {
			return 0, err
		}
		ws.MarkAsOutput(imgPath)
	}

	return len(layouts), nil
}

// writePart concatenates a part's header (if any) and payload and writes
// them to path.
func writePart(path string, p copier.Part) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("convert: creating %s: %w", path, err)
	}
	defer f.Close()

	if p.Header != nil {
		if _, err := f.Write(p.Header); err != nil {
			return fmt.Errorf("convert: writing %s: %w", path, err)
		}
	}
	if _, err := f.Write(p.Payload); err != nil {
		return fmt.Errorf("convert: writing %s: %w", path, err)
	}
	return f.Close()
}

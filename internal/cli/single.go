package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sargunv/floppyconvert/internal/format"
	"github.com/sargunv/floppyconvert/lib/convert"
	"github.com/sargunv/floppyconvert/lib/copier"
	"github.com/sargunv/floppyconvert/lib/diskpack"
	"github.com/sargunv/floppyconvert/lib/filename"
)

var (
	singleFormat string
	singleDryRun bool
)

var singleCmd = &cobra.Command{
	Use:   "single <rom-file> <output-dir>",
	Short: "Convert a single SNES ROM into floppy images",
	Args:  cobra.ExactArgs(2),
	RunE:  runSingle,
}

func init() {
	singleCmd.Flags().StringVarP(&singleFormat, "format", "f", "swc", "copier format: fig, swc, ufo, or gd3")
	singleCmd.Flags().BoolVar(&singleDryRun, "dry-run", false, "plan the conversion without writing any .img files")
	rootCmd.AddCommand(singleCmd)
}

func runSingle(cmd *cobra.Command, args []string) error {
	romFile, outputDir := args[0], args[1]

	parsedFormat, err := copier.ParseFormat(singleFormat)
	if err != nil {
		return newArgError("%v", err)
	}

	if singleDryRun {
		return printDryRun(romFile, parsedFormat)
	}

	n, err := convert.ProcessRom(cmd.Context(), romFile, outputDir, uuid.NewString(), parsedFormat)
	if err != nil {
		return err
	}
	cmd.Printf("%s: %s -> %d disk(s)\n", filepath.Base(romFile), parsedFormat, n)
	return nil
}

// printDryRun runs the Splitter and Packer without ever touching the
// FAT12 layer, reporting the layout that a real conversion would produce.
func printDryRun(romFile string, fmtArg copier.Format) error {
	f, err := os.Open(romFile)
	if err != nil {
		return fmt.Errorf("cli: opening %s: %w", romFile, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("cli: stat %s: %w", romFile, err)
	}

	baseName := filename.SanitizeName(filepath.Base(romFile))
	_, parts, err := copier.Split(f, info.Size(), fmtArg, baseName)
	if err != nil {
		return err
	}

	romParts := make([]diskpack.RomPart, len(parts))
	for i, p := range parts {
		dos, err := filename.DosName(p.Name)
		if err != nil {
			return err
		}
		romParts[i] = diskpack.RomPart{DosName: dos, Size: p.Size()}
	}

	layouts, err := diskpack.GreedyDiskPacker(romParts)
	if err != nil {
		return err
	}

	fmt.Println(format.HeaderStyle.Render(fmt.Sprintf("dry-run: %s (%s)", filepath.Base(romFile), fmtArg)))
	for i, layout := range layouts {
		fmt.Printf("  disk %d: %s, %d part(s)\n", i+1, layout.FloppyType, len(layout.Parts))
		for _, p := range layout.Parts {
			fmt.Printf("    %s %s\n", format.LabelStyle.Render(p.DosName), fmt.Sprintf("(%d bytes)", p.Size))
		}
	}
	fmt.Printf("total: %d disk(s)\n", len(layouts))
	return nil
}

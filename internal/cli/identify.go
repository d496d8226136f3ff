package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sargunv/floppyconvert/internal/format"
	"github.com/sargunv/floppyconvert/lib/snes"
)

var identifyCmd = &cobra.Command{
	Use:   "identify <rom-file>...",
	Short: "Parse SNES ROM headers and print what was found",
	Long: `Reads each ROM's internal header, reports its mapping mode, title, ROM/SRAM
sizes, checksum validity and hardware configuration, without performing any
conversion.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	first := true
	for _, path := range args {
		if !first {
			fmt.Println()
		}
		first = false

		if err := identifyOne(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to identify %s: %v\n", path, err)
		}
	}
	return nil
}

func identifyOne(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	rom, err := snes.Read(f, info.Size())
	if err != nil {
		return err
	}

	fmt.Println(format.HeaderStyle.Render(fmt.Sprintf("ROM: %s", filepath.Base(path))))
	fmt.Printf("  %s %s\n", format.LabelStyle.Render("Type:"), rom.Type)
	fmt.Printf("  %s %q\n", format.LabelStyle.Render("Title:"), rom.Title)
	fmt.Printf("  %s %d bytes\n", format.LabelStyle.Render("ROM size:"), len(rom.Raw))
	fmt.Printf("  %s %d bytes\n", format.LabelStyle.Render("SRAM size:"), rom.SramSize)
	fmt.Printf("  %s %v\n", format.LabelStyle.Render("DSP:"), rom.HasDsp)
	fmt.Printf("  %s %v\n", format.LabelStyle.Render("Checksum OK:"), rom.Checksum^rom.Complement == 0xFFFF)
	if hw := rom.Hardware(); hw != "" {
		fmt.Printf("  %s %s\n", format.LabelStyle.Render("Hardware:"), hw)
	}
	romSpeed := "SlowROM"
	if rom.IsFastRom {
		romSpeed = "FastROM"
	}
	fmt.Printf("  %s %s\n", format.LabelStyle.Render("Speed:"), romSpeed)
	return nil
}

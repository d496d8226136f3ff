// Package cli wires the cobra command tree for the floppyconvert binary.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "floppyconvert",
	Short: "Convert SNES ROM images into FAT12 floppy-disk images",
	Long: `floppyconvert splits SNES ROMs into the chunked, headered format used by
historical copier hardware (FIG, SWC, UFO, Game Doctor SF 3/6/7), then packs
the resulting parts onto FAT12 floppy images ready to write to physical
media or mount in an emulator.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is the sole entry point cmd/floppyconvert
// calls.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if isUsageError(err) {
			return 2
		}
		return 1
	}
	return 0
}

// usageError is implemented by errors that should map to the CLI's
// invalid-arguments exit code rather than its generic I/O-error code.
type usageError interface {
	UsageError()
}

func isUsageError(err error) bool {
	_, ok := err.(usageError)
	return ok
}

package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sargunv/floppyconvert/internal/cli/progress"
	"github.com/sargunv/floppyconvert/internal/format"
	"github.com/sargunv/floppyconvert/lib/batch"
	"github.com/sargunv/floppyconvert/lib/copier"
)

var batchFormat string

var batchCmd = &cobra.Command{
	Use:   "batch <input-dir> <output-dir>",
	Short: "Convert every ROM under a directory tree into floppy images",
	Args:  cobra.ExactArgs(2),
	RunE:  runBatchCmd,
}

func init() {
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "swc", "copier format: fig, swc, ufo, or gd3")
	rootCmd.AddCommand(batchCmd)
}

func runBatchCmd(cmd *cobra.Command, args []string) error {
	inputDir, outputDir := args[0], args[1]

	parsedFormat, err := copier.ParseFormat(batchFormat)
	if err != nil {
		return newArgError("%v", err)
	}

	var observer batch.ConversionObserver
	var tui *progress.Model
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		tui = progress.New()
		observer = tui
	} else {
		observer = plainObserver{}
	}

	var result batch.Result
	var runErr error
	if tui != nil {
		result, runErr = tui.Run(cmd.Context(), inputDir, outputDir, parsedFormat)
	} else {
		result, runErr = batch.RunBatch(cmd.Context(), inputDir, outputDir, parsedFormat, observer)
	}
	if runErr != nil {
		return runErr
	}

	fmt.Printf("Batch complete: %d successful, %d failed\n", result.Successful, result.Failed)
	return nil
}

// plainObserver is the non-TTY fallback: one structured line per outcome,
// the same shape the teacher's identify command uses for non-JSON text
// output.
type plainObserver struct{}

func (plainObserver) OnStart(romPath string) {}

func (plainObserver) OnSuccess(romPath string, diskCount int) {
	fmt.Printf("OK: %s -> %d disk(s)\n", romPath, diskCount)
}

func (plainObserver) OnFailure(romPath string, err error) {
	fmt.Println(format.FailureStyle.Render(fmt.Sprintf("FAILED: %s - %v", romPath, err)))
}

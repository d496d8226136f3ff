// Package batch walks a directory tree of ROM files and dispatches each one
// to the Processor through a bounded worker pool with caller-runs
// backpressure.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/sargunv/floppyconvert/lib/convert"
	"github.com/sargunv/floppyconvert/lib/copier"
)

// gracePeriod is how long in-flight tasks are given to finish once a
// cancellation signal arrives before the batch stops waiting on them.
const gracePeriod = 5 * time.Minute

// romExtensions are the fixed copier file extensions the walker recognizes
// outright (case-insensitive).
var romExtensions = map[string]bool{
	".sfc": true,
	".fig": true,
	".swc": true,
	".ufo": true,
}

// gameDoctorName matches Game Doctor-style filenames: sf<digits><letters>
// with an optional .NNN extension.
var gameDoctorName = regexp.MustCompile(`(?i)^sf[0-9]{1,2}[a-z]{1,5}(\.[0-9]{3})?$`)

func isRomFile(name string) bool {
	if romExtensions[strings.ToLower(filepath.Ext(name))] {
		return true
	}
	return gameDoctorName.MatchString(name)
}

// ConversionObserver is notified of the progress and outcome of each ROM
// conversion task.
type ConversionObserver interface {
	OnStart(romPath string)
	OnSuccess(romPath string, diskCount int)
	OnFailure(romPath string, err error)
}

// Result summarizes a completed batch run.
type Result struct {
	Successful int64
	Failed     int64
}

// RunBatch walks inputRoot depth-first, converting every recognized ROM file
// into outputRoot/<relative-dir>/<rom-base-name>/ using format, reporting
// progress through observer. Worker pool size defaults to runtime.NumCPU();
// queue capacity is 2x that, with caller-runs backpressure once full.
func RunBatch(ctx context.Context, inputRoot, outputRoot string, format copier.Format, observer ConversionObserver) (Result, error) {
	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}
	queueCapacity := int64(2 * poolSize)

	// admit bounds running plus queued tasks; workers bounds running ones.
	admit := semaphore.NewWeighted(int64(poolSize) + queueCapacity)
	workers := semaphore.NewWeighted(int64(poolSize))
	var group errgroup.Group
	var result Result

	runTask := func(romPath, relDir string) {
		runConversionTask(ctx, romPath, inputRoot, outputRoot, relDir, format, observer, &result)
	}

	walkErr := filepath.WalkDir(inputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: batch: traversal error at %s: %v\n", path, err)
			if path == inputRoot {
				return err
			}
			return fs.SkipDir
		}
		if d.IsDir() {
			return nil
		}
		if !isRomFile(d.Name()) {
			return nil
		}

		relDir, err := filepath.Rel(inputRoot, filepath.Dir(path))
		if err != nil {
			relDir = "."
		}

		if ctx.Err() != nil {
			return fs.SkipAll
		}

		// Caller-runs backpressure: if the pool + queue is saturated, the
		// walking goroutine executes the task itself instead of blocking
		// forever on Acquire. Tasks never return an error to the group -
		// per-ROM failures are recorded into result/observer instead, so one
		// failing ROM never cancels its siblings.
		if admit.TryAcquire(1) {
			group.Go(func() error {
				defer admit.Release(1)
				_ = workers.Acquire(context.Background(), 1)
				defer workers.Release(1)
				runTask(path, relDir)
				return nil
			})
		} else {
			runTask(path, relDir)
		}
		return nil
	})

	// The group supervises in-flight tasks through the cancellation grace
	// period: once ctx is cancelled the walk above stops admitting new work,
	// but already-running tasks get up to gracePeriod to finish before this
	// call gives up waiting on them.
	done := make(chan struct{})
	go func() {
		group.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		select {
		case <-done:
		case <-time.After(gracePeriod):
			fmt.Fprintf(os.Stderr, "warning: batch: %s grace period elapsed after cancellation; returning with tasks still in flight\n", gracePeriod)
		}
	}

	if walkErr != nil {
		return result, fmt.Errorf("batch: %w", walkErr)
	}
	return result, nil
}

func runConversionTask(ctx context.Context, romPath, inputRoot, outputRoot, relDir string, format copier.Format, observer ConversionObserver, result *Result) {
	if observer != nil {
		observer.OnStart(romPath)
	}

	outDir := filepath.Join(outputRoot, relDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		atomic.AddInt64(&result.Failed, 1)
		if observer != nil {
			observer.OnFailure(romPath, fmt.Errorf("batch: creating %s: %w", outDir, err))
		}
		return
	}

	suffix := uuid.NewString()
	diskCount, err := convert.ProcessRom(ctx, romPath, outDir, suffix, format)
	if err != nil {
		atomic.AddInt64(&result.Failed, 1)
		if observer != nil {
			observer.OnFailure(romPath, err)
		}
		return
	}

	atomic.AddInt64(&result.Successful, 1)
	if observer != nil {
		observer.OnSuccess(romPath, diskCount)
	}
}

// Package progress implements a live terminal UI for batch conversions,
// built on bubbletea/bubbles.
package progress

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sargunv/floppyconvert/internal/format"
	"github.com/sargunv/floppyconvert/lib/batch"
	"github.com/sargunv/floppyconvert/lib/copier"
)

const logLines = 10

// startMsg, successMsg and failureMsg are forwarded onto the tea.Program
// from the batch worker goroutines via Program.Send; they are the only way
// ConversionObserver callbacks (which may fire concurrently) reach the
// single-threaded Update loop.
type startMsg struct{ romPath string }
type successMsg struct {
	romPath   string
	diskCount int
}
type failureMsg struct {
	romPath string
	err     error
}
type doneMsg struct{ result batch.Result }

// Model is a bubbletea model that also implements batch.ConversionObserver,
// so it can be handed directly to batch.RunBatch.
type Model struct {
	program *tea.Program
	bar     progress.Model
	log     []string

	started   int64
	completed int64
	total     int64

	result batch.Result
	done   bool
}

// New creates an idle progress Model; call Run to start a batch conversion
// driven by it.
func New() *Model {
	m := &Model{bar: progress.New(progress.WithDefaultGradient())}
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case startMsg:
		atomic.AddInt64(&m.started, 1)
	case successMsg:
		atomic.AddInt64(&m.completed, 1)
		m.pushLog(format.SuccessStyle.Render(fmt.Sprintf("OK: %s -> %d disk(s)", msg.romPath, msg.diskCount)))
	case failureMsg:
		atomic.AddInt64(&m.completed, 1)
		m.pushLog(format.FailureStyle.Render(fmt.Sprintf("FAILED: %s - %v", msg.romPath, msg.err)))
	case doneMsg:
		m.result = msg.result
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) pushLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > logLines {
		m.log = m.log[len(m.log)-logLines:]
	}
}

func (m *Model) View() string {
	completed := atomic.LoadInt64(&m.completed)
	total := atomic.LoadInt64(&m.started)
	ratio := 0.0
	if total > 0 {
		ratio = float64(completed) / float64(total)
	}

	out := format.HeaderStyle.Render("floppyconvert batch") + "\n"
	out += m.bar.ViewAs(ratio) + "\n\n"
	for _, line := range m.log {
		out += line + "\n"
	}
	if m.done {
		out += fmt.Sprintf("\nBatch complete: %d successful, %d failed\n", m.result.Successful, m.result.Failed)
	}
	return out
}

// ConversionObserver implementation: these fire from batch worker
// goroutines and must only ever touch the model through Program.Send.
func (m *Model) OnStart(romPath string) {
	if m.program != nil {
		m.program.Send(startMsg{romPath: romPath})
	}
}

func (m *Model) OnSuccess(romPath string, diskCount int) {
	if m.program != nil {
		m.program.Send(successMsg{romPath: romPath, diskCount: diskCount})
	}
}

func (m *Model) OnFailure(romPath string, err error) {
	if m.program != nil {
		m.program.Send(failureMsg{romPath: romPath, err: err})
	}
}

// Run drives a full batch conversion while rendering this Model live,
// returning the final batch.Result once the TUI exits.
func (m *Model) Run(ctx context.Context, inputDir, outputDir string, fmtArg copier.Format) (batch.Result, error) {
	m.program = tea.NewProgram(m)

	resultCh := make(chan struct {
		result batch.Result
		err    error
	}, 1)

	go func() {
		result, err := batch.RunBatch(ctx, inputDir, outputDir, fmtArg, m)
		m.program.Send(doneMsg{result: result})
		resultCh <- struct {
			result batch.Result
			err    error
		}{result, err}
	}()

	if _, err := m.program.Run(); err != nil {
		return batch.Result{}, fmt.Errorf("progress: tui error: %w", err)
	}

	final := <-resultCh
	return final.result, final.err
}

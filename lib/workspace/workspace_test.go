package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestTrackAndCleanupOnClose(t *testing.T) {
	base := t.TempDir()
	ws, err := New(context.Background(), base, "game", "abc123")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	file := filepath.Join(ws.WorkDir, "part.1")
	if err := os.WriteFile(file, []byte("data"), 0o644); err != nil {
		t.Fatalf("write part: %v", err)
	}
	ws.Track(file)

	if err := ws.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(ws.WorkDir); !os.IsNotExist(err) {
		t.Errorf("expected workspace dir to be removed, stat err = %v", err)
	}
}

func TestMarkAsOutputSurvivesClose(t *testing.T) {
	base := t.TempDir()
	ws, err := New(context.Background(), base, "game", "abc123")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	file := filepath.Join(ws.WorkDir, "game.img")
	if err := os.WriteFile(file, []byte("img"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ws.Track(file)
	ws.MarkAsOutput(file)

	if err := ws.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(file); err != nil {
		t.Errorf("expected output file to survive close: %v", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	base := t.TempDir()
	ws, err := New(context.Background(), base, "game", "abc123")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ws.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := ws.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestCancelledContextSkipsCleanup(t *testing.T) {
	base := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	ws, err := New(ctx, base, "game", "abc123")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cancel()

	if err := ws.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(ws.WorkDir); err != nil {
		t.Errorf("expected workspace dir to survive cancellation, stat err = %v", err)
	}
}

func TestPromoteToFinal(t *testing.T) {
	base := t.TempDir()
	ws, err := New(context.Background(), base, "game", "abc123")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	file := filepath.Join(ws.WorkDir, "game.img")
	if err := os.WriteFile(file, []byte("img"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ws.Track(file)

	finalDir := filepath.Join(base, "final")
	dst, err := ws.PromoteToFinal(file, finalDir)
	if err != nil {
		t.Fatalf("PromoteToFinal: %v", err)
	}
	ws.MarkAsOutput(file)

	if _, err := os.Stat(dst); err != nil {
		t.Errorf("expected promoted file at %s: %v", dst, err)
	}

	if err := ws.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("promoted file should survive Close: %v", err)
	}
}

func TestRetrack(t *testing.T) {
	base := t.TempDir()
	ws, err := New(context.Background(), base, "game", "abc123")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	oldPath := filepath.Join(ws.WorkDir, "Game (USA).1")
	newPath := filepath.Join(ws.WorkDir, "Game__USA_.1")
	if err := os.WriteFile(oldPath, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ws.Track(oldPath)
	if err := os.Rename(oldPath, newPath); err != nil {
		t.Fatalf("rename: %v", err)
	}
	ws.Retrack(oldPath, newPath)

	if err := ws.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(newPath); !os.IsNotExist(err) {
		t.Errorf("expected renamed file to be cleaned up, stat err = %v", err)
	}
}

package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testSettle = 20 * time.Millisecond

func expectChange(t *testing.T, w *Watcher, want bool) {
	t.Helper()
	select {
	case <-w.Changes():
		if !want {
			t.Error("unexpected change notification")
		}
	case <-time.After(500 * time.Millisecond):
		if want {
			t.Error("timed out waiting for change notification")
		}
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	model := writeFile(t, dir, "quad.obj", []byte(quadSource))

	w, err := NewWatcher(testSettle, model, "")
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(model, []byte(quadSource+"# edited\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	expectChange(t, w, true)
}

func TestWatcherReportsRenameOver(t *testing.T) {
	dir := t.TempDir()
	model := writeFile(t, dir, "quad.obj", []byte(quadSource))

	w, err := NewWatcher(testSettle, model)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	tmp := writeFile(t, dir, "quad.obj.tmp", []byte(quadSource))
	if err := os.Rename(tmp, model); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	expectChange(t, w, true)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	model := writeFile(t, dir, "quad.obj", []byte(quadSource))

	w, err := NewWatcher(testSettle, model)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	writeFile(t, dir, "notes.txt", []byte("hello"))
	expectChange(t, w, false)
}

func TestWatcherCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	model := writeFile(t, dir, "quad.obj", []byte(quadSource))

	w, err := NewWatcher(testSettle, model)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(model, []byte(quadSource), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	expectChange(t, w, true)
	expectChange(t, w, false)
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(testSettle, filepath.Join(t.TempDir(), "missing", "quad.obj"))
	if err == nil {
		t.Error("expected error watching a missing directory")
	}
}

package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestInputWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	if err := os.WriteFile(path, []byte("first"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := NewInputWatcher(path)
	if err != nil {
		t.Fatalf("NewInputWatcher: %v", err)
	}
	defer func() { _ = w.Close() }()

	if content, err := w.Load(); err != nil || content != "first" {
		t.Fatalf("Load() = %q, %v", content, err)
	}

	if err := os.WriteFile(path, []byte("second"), 0o600); err != nil {
		t.Fatal(err)
	}

	msgs := make(chan tea.Msg, 1)
	go func() { msgs <- w.Next()() }()

	select {
	case msg := <-msgs:
		changed, ok := msg.(inputFileMsg)
		if !ok {
			t.Fatalf("unexpected message %#v", msg)
		}
		if changed.content != "second" {
			t.Errorf("content = %q, want second", changed.content)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestInputWatcherFeedsModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	w, err := NewInputWatcher(path)
	if err != nil {
		t.Fatalf("NewInputWatcher: %v", err)
	}
	defer func() { _ = w.Close() }()

	m := NewModel(&fakeDetector{}, Options{Watcher: w, Clipboard: &fakeClipboard{}})
	_, cmd := m.Update(inputFileMsg{content: "from disk"})
	if cmd == nil {
		t.Error("expected the model to keep listening")
	}
	if m.State().Input != "from disk" || m.editor.Value() != "from disk" {
		t.Errorf("input not reloaded: state=%q editor=%q", m.State().Input, m.editor.Value())
	}
}

func TestInputWatcherClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	w, err := NewInputWatcher(path)
	if err != nil {
		t.Fatalf("NewInputWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if msg := w.Next()(); msg != nil {
		t.Errorf("Next after Close = %#v, want nil", msg)
	}
}

func TestValidateWatchFilePath(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		path   string
		errMsg string
	}{
		{"empty", "  ", "empty file path"},
		{"traversal", "../secret.txt", "path traversal not allowed"},
		{"missing", filepath.Join(dir, "nope.txt"), "cannot access file"},
		{"directory", dir, "cannot watch directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateWatchFilePath(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("validateWatchFilePath(%q) = %v, want %q", tt.path, err, tt.errMsg)
			}
		})
	}
}

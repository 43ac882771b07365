package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// InputWatcher reloads the editor whenever a file changes on disk
type InputWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	msgs    chan tea.Msg
	done    chan struct{}
}

// NewInputWatcher starts watching path. The parent directory is watched
// instead of the file so editors that save by rename are still seen.
func NewInputWatcher(path string) (*InputWatcher, error) {
	if err := validateWatchFilePath(path); err != nil {
		return nil, fmt.Errorf("invalid file path: %w", err)
	}

	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	w := &InputWatcher{
		path:    abs,
		watcher: watcher,
		msgs:    make(chan tea.Msg, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Path returns the absolute path being watched
func (w *InputWatcher) Path() string {
	return w.path
}

// Load reads the current file contents
func (w *InputWatcher) Load() (string, error) {
	// #nosec G304 - path is validated by validateWatchFilePath
	data, err := os.ReadFile(w.path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", w.path, err)
	}
	return string(data), nil
}

// Next waits for the next change and delivers it to the program
func (w *InputWatcher) Next() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-w.msgs:
			return msg
		case <-w.done:
			return nil
		}
	}
}

// Close stops the watcher
func (w *InputWatcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
		close(w.done)
	}
	return w.watcher.Close()
}

func (w *InputWatcher) loop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			content, err := w.Load()
			if err != nil {
				w.send(watchErrMsg{err: err})
				continue
			}
			w.send(inputFileMsg{content: content})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(watchErrMsg{err: err})
		}
	}
}

func (w *InputWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// send keeps only the newest pending message; the file is re-read on
// every event so an older one carries nothing the newer lacks
func (w *InputWatcher) send(msg tea.Msg) {
	for {
		select {
		case w.msgs <- msg:
			return
		case <-w.done:
			return
		default:
		}
		select {
		case <-w.msgs:
		default:
		}
	}
}

// validateWatchFilePath validates that a file path is safe to watch
func validateWatchFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}

	return nil
}

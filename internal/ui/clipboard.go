package ui

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aymanbagabas/go-osc52/v2"
)

// OSC52Clipboard copies by writing an OSC 52 escape sequence to a
// terminal. It works over SSH and needs no clipboard daemon, but the
// terminal emulator has to support the sequence.
type OSC52Clipboard struct {
	mu  sync.Mutex
	out io.Writer
	env func(string) string
}

// NewOSC52Clipboard writes sequences to out. A nil out means stderr,
// which stays a terminal while stdout belongs to the TUI renderer.
func NewOSC52Clipboard(out io.Writer) *OSC52Clipboard {
	if out == nil {
		out = os.Stderr
	}
	return &OSC52Clipboard{out: out, env: os.Getenv}
}

// Copy implements Clipboard
func (c *OSC52Clipboard) Copy(text string) error {
	seq := osc52.New(text)

	// Multiplexers swallow the raw sequence unless it is wrapped
	switch {
	case c.env("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(c.env("TERM"), "screen"):
		seq = seq.Screen()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := seq.WriteTo(c.out)
	return err
}

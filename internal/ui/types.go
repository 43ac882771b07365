package ui

import (
	"context"

	"github.com/yildizm/HumanizePro/internal/common"
)

// Detector runs the two model operations for the session
type Detector interface {
	Analyze(ctx context.Context, text string) (common.AnalysisResult, error)
	Humanize(ctx context.Context, text string, language common.Language, tone common.Tone) (string, error)
}

// Clipboard places text on the user's clipboard
type Clipboard interface {
	Copy(text string) error
}

// Focus is the pane receiving key presses
type Focus int

const (
	// FocusEditor sends keys to the input text area
	FocusEditor Focus = iota
	// FocusControls interprets keys as commands
	FocusControls
)

func (f Focus) String() string {
	if f == FocusEditor {
		return "editor"
	}
	return "controls"
}

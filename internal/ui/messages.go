package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/HumanizePro/internal/common"
	"github.com/yildizm/HumanizePro/internal/session"
)

// Completion messages carry the sequence number of the request they answer
type analyzeDoneMsg struct {
	seq    uint64
	result common.AnalysisResult
	err    error
}

type humanizeDoneMsg struct {
	seq  uint64
	text string
	err  error
}

type copiedExpiredMsg struct {
	token uint64
}

type clipboardErrMsg struct {
	err error
}

// inputFileMsg replaces the editor contents after the watched file changed
type inputFileMsg struct {
	content string
}

type watchErrMsg struct {
	err error
}

// analyzeCmd runs one analysis off the event loop
func analyzeCmd(d Detector, call session.AnalyzeCall) tea.Cmd {
	return func() tea.Msg {
		result, err := d.Analyze(context.Background(), call.Text)
		return analyzeDoneMsg{seq: call.Seq, result: result, err: err}
	}
}

// humanizeCmd runs one rewrite off the event loop
func humanizeCmd(d Detector, call session.HumanizeCall) tea.Cmd {
	return func() tea.Msg {
		text, err := d.Humanize(context.Background(), call.Text, call.Language, call.Tone)
		return humanizeDoneMsg{seq: call.Seq, text: text, err: err}
	}
}

// copyCmd writes to the clipboard and schedules the indicator reset
func copyCmd(c Clipboard, call session.CopyCall) tea.Cmd {
	write := func() tea.Msg {
		if err := c.Copy(call.Text); err != nil {
			return clipboardErrMsg{err: err}
		}
		return nil
	}
	expire := tea.Tick(call.After, func(time.Time) tea.Msg {
		return copiedExpiredMsg{token: call.Token}
	})
	return tea.Batch(write, expire)
}

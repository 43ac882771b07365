package session

import (
	"github.com/yildizm/HumanizePro/internal/common"
)

// RequestAnalyze starts an analysis. Blank input is a no-op.
func (s State) RequestAnalyze() (State, Effect) {
	if !s.CanSubmit() {
		return s, nil
	}

	next := s.begin(KindAnalyze, ViewAnalysis)
	return next, AnalyzeCall{Seq: next.seq, Text: next.Input}
}

// RequestHumanize starts a rewrite with the current language and tone.
// Blank input is a no-op.
func (s State) RequestHumanize() (State, Effect) {
	if !s.CanSubmit() {
		return s, nil
	}

	next := s.begin(KindHumanize, ViewHumanized)
	return next, HumanizeCall{
		Seq:      next.seq,
		Text:     next.Input,
		Language: next.Language,
		Tone:     next.Tone,
	}
}

func (s State) begin(kind Kind, view View) State {
	s.seq++
	s.Status = StatusLoading
	s.Loading = kind
	s.Result = nil
	s.Error = ""
	s.View = view
	s.Copied = false
	return s
}

// AnalyzeSucceeded applies a finished analysis
func (s State) AnalyzeSucceeded(seq uint64, result common.AnalysisResult) State {
	if s.stale(seq) {
		return s
	}
	return s.settle(&Result{Kind: KindAnalyze, Analysis: result}, "")
}

// HumanizeSucceeded applies a finished rewrite
func (s State) HumanizeSucceeded(seq uint64, text string) State {
	if s.stale(seq) {
		return s
	}
	return s.settle(&Result{Kind: KindHumanize, Humanized: text}, "")
}

// RequestFailed applies a failed call. Any previous result is dropped.
func (s State) RequestFailed(seq uint64, message string) State {
	if s.stale(seq) {
		return s
	}
	return s.settle(nil, message)
}

func (s State) settle(result *Result, message string) State {
	s.Loading = KindNone
	s.Result = result
	s.Error = message
	if result != nil {
		s.Status = StatusSuccess
	} else {
		s.Status = StatusFailed
	}
	return s
}

func (s State) stale(seq uint64) bool {
	return s.options.DiscardStale && seq != s.seq
}

// SetInput replaces the input text
func (s State) SetInput(text string) State {
	s.Input = text
	return s
}

// SetLanguage selects the rewrite language; unsupported values are ignored
func (s State) SetLanguage(language common.Language) State {
	if language.Valid() {
		s.Language = language
	}
	return s
}

// SetTone selects the rewrite tone; unsupported values are ignored
func (s State) SetTone(tone common.Tone) State {
	if tone.Valid() {
		s.Tone = tone
	}
	return s
}

// CycleLanguage moves to the next language
func (s State) CycleLanguage() State {
	return s.SetLanguage(s.Language.Next())
}

// CycleTone moves to the next tone
func (s State) CycleTone() State {
	return s.SetTone(s.Tone.Next())
}

// ToggleTheme switches between dark and light
func (s State) ToggleTheme() State {
	if s.Theme == ThemeDark {
		s.Theme = ThemeLight
	} else {
		s.Theme = ThemeDark
	}
	return s
}

// CopyToClipboard sets the copied indicator when the snapshot holds a
// rewrite. Each call issues a new token so only the latest timer clears it.
func (s State) CopyToClipboard() (State, Effect) {
	text, ok := s.HumanizedText()
	if !ok {
		return s, nil
	}

	s.copyToken++
	s.Copied = true
	return s, CopyCall{Text: text, Token: s.copyToken, After: CopiedWindow}
}

// CopiedExpired clears the indicator if token belongs to the latest copy
func (s State) CopiedExpired(token uint64) State {
	if token != s.copyToken {
		return s
	}
	s.Copied = false
	return s
}

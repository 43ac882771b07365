// Package session holds the interactive session as an immutable snapshot.
// Every transition returns a new State and, when something must happen
// outside the state machine, an Effect for the runtime to execute.
package session

import (
	"time"

	"github.com/yildizm/HumanizePro/internal/common"
)

// CopiedWindow is how long the "copied" indicator stays on
const CopiedWindow = 2 * time.Second

// Status is the position in the request lifecycle
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Kind identifies which operation a request or result belongs to
type Kind int

const (
	KindNone Kind = iota
	KindAnalyze
	KindHumanize
)

func (k Kind) String() string {
	switch k {
	case KindAnalyze:
		return "analyze"
	case KindHumanize:
		return "humanize"
	default:
		return "none"
	}
}

// View is the active result tab
type View string

const (
	ViewAnalysis  View = "analysis"
	ViewHumanized View = "humanized"
)

// DefaultView is shown before any request
const DefaultView = ViewHumanized

// Theme is the color scheme preference
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Result is the outcome of a successful call; exactly one field is meaningful
type Result struct {
	Kind      Kind
	Analysis  common.AnalysisResult
	Humanized string
}

// Options changes how completions are applied
type Options struct {
	// DiscardStale drops completions that do not belong to the most
	// recently dispatched request. Off by default: the last call to
	// settle wins.
	DiscardStale bool

	// Theme, Language and Tone seed the initial snapshot; zero values
	// fall back to the defaults
	Theme    Theme
	Language common.Language
	Tone     common.Tone
}

// State is one snapshot of the session. Transition methods use value
// receivers and never modify the receiver.
type State struct {
	Input    string
	Language common.Language
	Tone     common.Tone
	Theme    Theme

	Status  Status
	Loading Kind
	Result  *Result
	Error   string
	View    View
	Copied  bool

	seq       uint64
	copyToken uint64
	options   Options
}

// New returns the initial snapshot
func New(options Options) State {
	s := State{
		Language: common.DefaultLanguage,
		Tone:     common.DefaultTone,
		Theme:    ThemeDark,
		Status:   StatusIdle,
		View:     DefaultView,
		options:  options,
	}

	if options.Language.Valid() {
		s.Language = options.Language
	}
	if options.Tone.Valid() {
		s.Tone = options.Tone
	}
	if options.Theme == ThemeLight {
		s.Theme = ThemeLight
	}

	return s
}

// IsLoading reports whether a request is in flight
func (s State) IsLoading() bool {
	return s.Status == StatusLoading
}

// CanSupersede reports whether a new request may be dispatched while one
// is in flight. Only safe when superseded completions are discarded.
func (s State) CanSupersede() bool {
	return s.options.DiscardStale
}

// CanSubmit reports whether analyze/humanize would do anything
func (s State) CanSubmit() bool {
	return !common.IsBlank(s.Input)
}

// HumanizedText returns the rewritten text when the snapshot holds one
func (s State) HumanizedText() (string, bool) {
	if s.Status != StatusSuccess || s.Result == nil || s.Result.Kind != KindHumanize {
		return "", false
	}
	return s.Result.Humanized, true
}

// Analysis returns the analysis result when the snapshot holds one
func (s State) Analysis() (common.AnalysisResult, bool) {
	if s.Status != StatusSuccess || s.Result == nil || s.Result.Kind != KindAnalyze {
		return common.AnalysisResult{}, false
	}
	return s.Result.Analysis, true
}

// Seq is the sequence number of the most recently dispatched request
func (s State) Seq() uint64 {
	return s.seq
}

package session

import (
	"time"

	"github.com/yildizm/HumanizePro/internal/common"
)

// Effect is work the runtime must perform on behalf of a transition
type Effect interface {
	effect()
}

// AnalyzeCall asks the runtime to run one analysis and report back with
// AnalyzeSucceeded or RequestFailed carrying Seq
type AnalyzeCall struct {
	Seq  uint64
	Text string
}

// HumanizeCall asks the runtime to run one rewrite
type HumanizeCall struct {
	Seq      uint64
	Text     string
	Language common.Language
	Tone     common.Tone
}

// CopyCall asks the runtime to place Text on the clipboard and to
// deliver CopiedExpired(Token) once After has elapsed
type CopyCall struct {
	Text  string
	Token uint64
	After time.Duration
}

func (AnalyzeCall) effect()  {}
func (HumanizeCall) effect() {}
func (CopyCall) effect()     {}

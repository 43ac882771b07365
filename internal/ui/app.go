package ui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/HumanizePro/internal/detector"
	"github.com/yildizm/HumanizePro/internal/logger"
	"github.com/yildizm/HumanizePro/internal/session"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// Wider terminals put the editor and the result side by side
	splitWidth = 100
)

// Options configures a Model
type Options struct {
	Session      session.Options
	InitialInput string
	Clipboard    Clipboard
	Watcher      *InputWatcher
	Logger       *logger.Logger
}

// Model is the bubbletea model for an interactive session. It owns the
// session snapshot and turns the snapshot's effects into commands.
type Model struct {
	state     session.State
	detector  Detector
	clipboard Clipboard
	watcher   *InputWatcher
	log       *logger.Logger

	editor  textarea.Model
	spinner spinner.Model
	gauge   progress.Model
	styles  *Styles

	focus    Focus
	width    int
	height   int
	notice   string
	quitting bool
}

// NewModel creates a session model backed by d
func NewModel(d Detector, opts Options) *Model {
	if opts.Clipboard == nil {
		opts.Clipboard = NewOSC52Clipboard(nil)
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	editor := textarea.New()
	editor.Placeholder = "Paste or type the text to analyze or humanize..."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.SetValue(opts.InitialInput)
	editor.Focus()

	m := &Model{
		state:     session.New(opts.Session).SetInput(opts.InitialInput),
		detector:  d,
		clipboard: opts.Clipboard,
		watcher:   opts.Watcher,
		log:       opts.Logger.WithComponent("tui"),
		editor:    editor,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		focus:     FocusEditor,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.applyTheme()
	m.layout()
	return m
}

// State returns the current session snapshot
func (m *Model) State() session.State {
	return m.state
}

// Init starts the cursor blink and, when watching, the file listener
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.Next())
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		if !m.state.IsLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case analyzeDoneMsg:
		m.handleAnalyzeDone(msg)
		return m, nil

	case humanizeDoneMsg:
		m.handleHumanizeDone(msg)
		return m, nil

	case copiedExpiredMsg:
		m.state = m.state.CopiedExpired(msg.token)
		return m, nil

	case clipboardErrMsg:
		m.log.Warn("clipboard write failed: %v", msg.err)
		m.notice = "Could not write to the clipboard: " + msg.err.Error()
		return m, nil

	case inputFileMsg:
		m.editor.SetValue(msg.content)
		m.state = m.state.SetInput(msg.content)
		m.notice = "Reloaded " + m.watcher.Path()
		return m, m.watcher.Next()

	case watchErrMsg:
		m.log.Warn("input watch error: %v", msg.err)
		m.notice = msg.err.Error()
		return m, m.watcher.Next()
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "tab", "esc":
		return m, m.toggleFocus()
	}

	if m.focus == FocusEditor {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		m.state = m.state.SetInput(m.editor.Value())
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "a":
		if !m.canDispatch() {
			return m, nil
		}
		return m, m.apply(m.state.RequestAnalyze())
	case "h":
		if !m.canDispatch() {
			return m, nil
		}
		return m, m.apply(m.state.RequestHumanize())
	case "c":
		return m, m.apply(m.state.CopyToClipboard())
	case "l":
		m.state = m.state.CycleLanguage()
	case "t":
		m.state = m.state.CycleTone()
	case "d":
		m.state = m.state.ToggleTheme()
		m.applyTheme()
	}
	return m, nil
}

// canDispatch is false while loading unless the new request may supersede
// the one in flight
func (m *Model) canDispatch() bool {
	return !m.state.IsLoading() || m.state.CanSupersede()
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == FocusEditor {
		m.focus = FocusControls
		m.editor.Blur()
		return nil
	}
	m.focus = FocusEditor
	return m.editor.Focus()
}

// apply installs the next snapshot and runs its effect
func (m *Model) apply(next session.State, eff session.Effect) tea.Cmd {
	wasLoading := m.state.IsLoading()
	m.state = next
	if eff == nil {
		return nil
	}
	m.notice = ""

	switch e := eff.(type) {
	case session.AnalyzeCall:
		m.log.Debug("dispatching analysis seq=%d", e.Seq)
		return m.withSpinner(wasLoading, analyzeCmd(m.detector, e))
	case session.HumanizeCall:
		m.log.Debug("dispatching rewrite seq=%d language=%s tone=%s", e.Seq, e.Language, e.Tone)
		return m.withSpinner(wasLoading, humanizeCmd(m.detector, e))
	case session.CopyCall:
		return copyCmd(m.clipboard, e)
	}
	return nil
}

func (m *Model) withSpinner(alreadyTicking bool, cmd tea.Cmd) tea.Cmd {
	if alreadyTicking {
		return cmd
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *Model) handleAnalyzeDone(msg analyzeDoneMsg) {
	if msg.err != nil {
		m.logFailure("analysis", msg.seq, msg.err)
		m.state = m.state.RequestFailed(msg.seq, msg.err.Error())
		return
	}
	m.state = m.state.AnalyzeSucceeded(msg.seq, msg.result)
}

func (m *Model) handleHumanizeDone(msg humanizeDoneMsg) {
	if msg.err != nil {
		m.logFailure("rewrite", msg.seq, msg.err)
		m.state = m.state.RequestFailed(msg.seq, msg.err.Error())
		return
	}
	m.state = m.state.HumanizeSucceeded(msg.seq, msg.text)
}

func (m *Model) logFailure(op string, seq uint64, err error) {
	m.log.WarnWithFields(op+" failed", []logger.Field{
		logger.F("seq", seq),
		logger.F("detail", detector.Detail(err)),
	})
}

func (m *Model) applyTheme() {
	m.styles = NewStyles(ThemeFor(m.state.Theme))
	m.spinner.Style = m.styles.Spinner
	m.gauge = progress.New(
		progress.WithSolidFill(string(m.styles.Theme.Human)),
		progress.WithoutPercentage(),
		progress.WithWidth(m.gaugeWidth()),
	)
}

// layout sizes the editor and gauge for the current window
func (m *Model) layout() {
	paneWidth := m.paneWidth()
	m.editor.SetWidth(paneWidth)
	m.editor.SetHeight(max(3, m.height/3))
	m.gauge.Width = m.gaugeWidth()
}

// paneWidth is the inner width of one bordered pane
func (m *Model) paneWidth() int {
	w := m.width - 4
	if m.width >= splitWidth {
		w = m.width/2 - 4
	}
	return max(20, w)
}

func (m *Model) gaugeWidth() int {
	return min(40, m.paneWidth())
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.styles
	editorStyle, controlsStyle := st.FocusedPanel, st.Panel
	if m.focus == FocusControls {
		editorStyle, controlsStyle = st.Panel, st.FocusedPanel
	}

	paneWidth := m.paneWidth()
	editor := editorStyle.Width(paneWidth).Render(m.editor.View())
	result := st.Panel.Width(paneWidth).Render(
		renderResult(m.state, st, m.spinner.View(), m.gauge, paneWidth-2),
	)

	var body string
	if m.width >= splitWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, editor, result)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, editor, result)
	}

	sections := []string{
		renderHeader(m.state, st),
		"",
		controlsStyle.Render(renderControls(m.state, st)),
		body,
	}
	if m.notice != "" {
		sections = append(sections, st.Muted.Render(m.notice))
	}
	sections = append(sections, renderHelp(m.focus, st))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Run starts the interactive session and blocks until the user quits
func Run(d Detector, opts Options) error {
	model := NewModel(d, opts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/HumanizePro/internal/common"
	"github.com/yildizm/HumanizePro/internal/emoji"
	"github.com/yildizm/HumanizePro/internal/session"
)

// Fixed panel copy
const (
	thinkingText      = "Thinking..."
	errorTitle        = "An Error Occurred"
	placeholderTitle  = "Your results will appear here"
	placeholderDetail = `Enter some text and click "Analyze" or "Humanize".`
	copyLabel         = "Copy Humanized Text"
	copiedLabel       = "Copied!"
)

// renderResult draws the result panel body for a snapshot. Loading wins
// over error, error over result; a result shows only under its own view.
func renderResult(s session.State, st *Styles, spin string, gauge progress.Model, width int) string {
	if s.IsLoading() {
		return lipgloss.JoinHorizontal(lipgloss.Center, st.Spinner.Render(spin), " ", st.Muted.Render(thinkingText))
	}

	if s.Error != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			st.Error.Render(emoji.GetEmoji("error")+" "+errorTitle),
			st.Error.UnsetBold().Width(width).Render(s.Error),
		)
	}

	switch s.View {
	case session.ViewAnalysis:
		if result, ok := s.Analysis(); ok {
			return renderAnalysis(result, st, gauge)
		}
	case session.ViewHumanized:
		if text, ok := s.HumanizedText(); ok && text != "" {
			return renderHumanized(text, s.Copied, st, width)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		st.Header.Render(emoji.GetEmoji("sparkles")+" "+placeholderTitle),
		st.Muted.Width(width).Render(placeholderDetail),
	)
}

func renderAnalysis(result common.AnalysisResult, st *Styles, gauge progress.Model) string {
	human := st.Percentage.Render(common.FormatPercent(result.HumanPercentage)) + " " + st.Muted.Render("Human")
	summary := fmt.Sprintf("Analysis complete. Estimated %s content.",
		st.AIShare.Render(common.FormatPercent(result.AIPercentage)+" AI"))

	return lipgloss.JoinVertical(lipgloss.Left,
		human,
		gauge.ViewAs(gaugeFraction(result.HumanPercentage)),
		"",
		st.Body.Render(summary),
	)
}

func renderHumanized(text string, copied bool, st *Styles, width int) string {
	button := st.Button.Render(st.Key.Render("c") + " " + copyLabel)
	if copied {
		button = st.Button.Render(st.Success.Render(emoji.GetEmoji("success") + " " + copiedLabel))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		st.Body.Width(width).Render(text),
		"",
		button,
	)
}

// gaugeFraction maps a percentage to the gauge's [0, 1] range
func gaugeFraction(percent float64) float64 {
	switch {
	case percent < 0:
		return 0
	case percent > 100:
		return 1
	default:
		return percent / 100
	}
}

// renderControls draws the option selectors and the two action buttons
func renderControls(s session.State, st *Styles) string {
	options := fmt.Sprintf("%s Language: %s  %s  %s Tone: %s  %s",
		emoji.GetEmoji("globe"), st.Option.Render(s.Language.String()), st.Key.Render("[l]"),
		emoji.GetEmoji("pen"), st.Option.Render(s.Tone.String()), st.Key.Render("[t]"))

	enabled := s.CanSubmit() && (!s.IsLoading() || s.CanSupersede())
	analyze := actionButton(st, enabled, "a", "Analyze Text")
	humanize := actionButton(st, enabled, "h", "Humanize Text")

	return lipgloss.JoinVertical(lipgloss.Left,
		options,
		lipgloss.JoinHorizontal(lipgloss.Top, analyze, " ", humanize),
	)
}

func actionButton(st *Styles, enabled bool, key, label string) string {
	if !enabled {
		return st.Disabled.Render(key + " " + label)
	}
	return st.Button.Render(st.Key.Render(key) + " " + label)
}

// renderHeader draws the title block with the theme indicator
func renderHeader(s session.State, st *Styles) string {
	title := st.Title.Render("HumanizePro")
	theme := st.Muted.Render(fmt.Sprintf("theme: %s ", s.Theme)) + st.Key.Render("[d]")
	return lipgloss.JoinVertical(lipgloss.Left,
		title+"  "+theme,
		st.Subtitle.Render("Transform AI text into authentic, human-like content."),
	)
}

// renderHelp lists the keys that apply to the focused pane
func renderHelp(focus Focus, st *Styles) string {
	var keys [][2]string
	if focus == FocusEditor {
		keys = [][2]string{{"tab", "controls"}, {"ctrl+c", "quit"}}
	} else {
		keys = [][2]string{
			{"a", "analyze"}, {"h", "humanize"}, {"l", "language"}, {"t", "tone"},
			{"c", "copy"}, {"d", "theme"}, {"tab", "edit"}, {"q", "quit"},
		}
	}

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, st.Key.Render(k[0])+" "+st.Muted.Render(k[1]))
	}
	return strings.Join(parts, st.Muted.Render(" • "))
}

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/HumanizePro/internal/common"
	"github.com/yildizm/HumanizePro/internal/detector"
	"github.com/yildizm/HumanizePro/internal/emoji"
	"github.com/yildizm/HumanizePro/internal/formatter"
	"github.com/yildizm/HumanizePro/internal/logger"
	"github.com/yildizm/HumanizePro/internal/ui"
)

var (
	humanizeFile       string
	humanizeOutputFile string
	humanizeLanguage   string
	humanizeTone       string
	humanizeCopy       bool
	humanizeRaw        bool
	humanizeTimeout    time.Duration
)

func newHumanizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "humanize [text...]",
		Short: "Rewrite text so it reads as human-written",
		Long: `Rewrite a text in a natural voice, in the chosen language and tone.

The text comes from the arguments, --file, or stdin, in that order.
Language and tone default to session.language and session.tone.

Examples:
  humanizepro humanize --tone Formal "We leverage synergies."
  humanizepro humanize --language Arabic --file draft.txt
  cat draft.txt | humanizepro humanize --raw --copy`,
		RunE: runHumanize,
	}

	cmd.Flags().StringVarP(&humanizeFile, "file", "f", "", "read the text from a file")
	cmd.Flags().StringVar(&humanizeOutputFile, "output-file", "", "save output to file instead of stdout")
	cmd.Flags().StringVarP(&humanizeLanguage, "language", "l", "", "target language (English, Arabic)")
	cmd.Flags().StringVarP(&humanizeTone, "tone", "t", "", "tone (Academic, Casual, Formal, Creative)")
	cmd.Flags().BoolVar(&humanizeCopy, "copy", false, "copy the result to the clipboard (OSC 52)")
	cmd.Flags().BoolVar(&humanizeRaw, "raw", false, "print only the rewritten text")
	cmd.Flags().DurationVar(&humanizeTimeout, "timeout", 0, "overall deadline (default: ai.timeout)")

	return cmd
}

func runHumanize(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	log := GetLogger("humanize")

	language, tone, err := rewriteOptions(humanizeLanguage, humanizeTone, cfg.Session.Language, cfg.Session.Tone)
	if err != nil {
		return err
	}

	text, err := readInput(args, humanizeFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if common.IsBlank(text) {
		return errNoInput
	}

	var f formatter.Formatter
	if !humanizeRaw {
		f, err = formatter.New(getOutputFormat(), useColor(cmd.OutOrStdout()), !isEmojiDisabled())
		if err != nil {
			return err
		}
	}

	client, provider, err := newDetector(cfg, rootLogger)
	if err != nil {
		return err
	}
	defer provider.Close()

	ctx, cancel := commandContext(humanizeTimeout)
	defer cancel()

	start := time.Now()
	rewritten, err := client.Humanize(ctx, text, language, tone)
	if err != nil {
		log.ErrorWithFields("rewrite failed", []logger.Field{logger.F("detail", detector.Detail(err))})
		return err
	}

	var output []byte
	if humanizeRaw {
		output = []byte(rewritten + "\n")
	} else {
		output, err = f.Format(&formatter.Report{
			Operation: formatter.OperationHumanize,
			Provider:  provider.Name(),
			Model:     modelName(cfg, provider),
			InputSize: len([]rune(text)),
			Duration:  time.Since(start),
			Text:      rewritten,
			Language:  language,
			Tone:      tone,
		})
		if err != nil {
			return err
		}
	}
	if err := writeOutput(cmd.OutOrStdout(), output, humanizeOutputFile); err != nil {
		return err
	}

	if humanizeCopy {
		if err := ui.NewOSC52Clipboard(os.Stderr).Copy(rewritten); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintf(os.Stderr, "%s Copied to clipboard\n", emoji.GetEmoji("clipboard"))
	}
	return nil
}

// rewriteOptions resolves flag values, falling back to the configured
// session defaults
func rewriteOptions(languageFlag, toneFlag, languageDefault, toneDefault string) (common.Language, common.Tone, error) {
	if languageFlag == "" {
		languageFlag = languageDefault
	}
	if toneFlag == "" {
		toneFlag = toneDefault
	}

	language := common.DefaultLanguage
	if languageFlag != "" {
		parsed, err := common.ParseLanguage(languageFlag)
		if err != nil {
			return "", "", err
		}
		language = parsed
	}

	tone := common.DefaultTone
	if toneFlag != "" {
		parsed, err := common.ParseTone(toneFlag)
		if err != nil {
			return "", "", err
		}
		tone = parsed
	}
	return language, tone, nil
}

package cli

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/HumanizePro/internal/common"
	"github.com/yildizm/HumanizePro/internal/detector"
	"github.com/yildizm/HumanizePro/internal/formatter"
	"github.com/yildizm/HumanizePro/internal/logger"
)

var (
	analyzeFile       string
	analyzeOutputFile string
	analyzeTimeout    time.Duration
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Estimate how much of a text is AI-written",
		Long: `Ask the model how likely a text is to be human or AI-written.

The text comes from the arguments, --file, or stdin, in that order.

Examples:
  humanizepro analyze "The results demonstrate a paradigm shift."
  humanizepro analyze --file essay.txt -o json
  pbpaste | humanizepro analyze`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "read the text from a file")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "overall deadline (default: ai.timeout)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	log := GetLogger("analyze")

	text, err := readInput(args, analyzeFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if common.IsBlank(text) {
		return errNoInput
	}

	f, err := formatter.New(getOutputFormat(), useColor(cmd.OutOrStdout()), !isEmojiDisabled())
	if err != nil {
		return err
	}

	client, provider, err := newDetector(cfg, rootLogger)
	if err != nil {
		return err
	}
	defer provider.Close()

	ctx, cancel := commandContext(analyzeTimeout)
	defer cancel()

	start := time.Now()
	result, err := client.Analyze(ctx, text)
	if err != nil {
		log.ErrorWithFields("analysis failed", []logger.Field{logger.F("detail", detector.Detail(err))})
		return err
	}

	output, err := f.Format(&formatter.Report{
		Operation: formatter.OperationAnalyze,
		Provider:  provider.Name(),
		Model:     modelName(cfg, provider),
		InputSize: len([]rune(text)),
		Duration:  time.Since(start),
		Analysis:  &result,
	})
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), output, analyzeOutputFile)
}

// commandContext is cancelled on interrupt and, when timeout is positive,
// after timeout
func commandContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	if timeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

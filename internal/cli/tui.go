package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yildizm/HumanizePro/internal/common"
	"github.com/yildizm/HumanizePro/internal/config"
	"github.com/yildizm/HumanizePro/internal/logger"
	"github.com/yildizm/HumanizePro/internal/session"
	"github.com/yildizm/HumanizePro/internal/ui"
)

var (
	tuiInput string
	tuiWatch bool
)

func newTUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal app",
		Long: `Start the interactive editor. Type or paste text, pick a language and
tone, then analyze or humanize it.

With --input the editor starts with the file's content; adding --watch
reloads the editor whenever the file is written.

Examples:
  humanizepro tui
  humanizepro tui --input draft.txt --watch`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}

	cmd.Flags().StringVarP(&tuiInput, "input", "i", "", "load the editor from a file")
	cmd.Flags().BoolVarP(&tuiWatch, "watch", "w", false, "reload the editor when --input changes")

	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	if tuiWatch && tuiInput == "" {
		return fmt.Errorf("--watch requires --input")
	}

	opts, err := sessionOptions(cfg)
	if err != nil {
		return err
	}

	// The terminal belongs to the program; logs go to a file or nowhere
	log, closeLog, err := tuiLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	client, provider, err := newDetector(cfg, log)
	if err != nil {
		return err
	}
	defer provider.Close()

	uiOpts := ui.Options{
		Session:   opts,
		Clipboard: ui.NewOSC52Clipboard(os.Stderr),
		Logger:    log,
	}

	if tuiInput != "" {
		if tuiWatch {
			watcher, err := ui.NewInputWatcher(tuiInput)
			if err != nil {
				return err
			}
			defer watcher.Close()
			uiOpts.Watcher = watcher
			uiOpts.InitialInput, err = watcher.Load()
			if err != nil {
				return err
			}
		} else {
			uiOpts.InitialInput, err = readInput(nil, tuiInput, nil)
			if err != nil {
				return err
			}
		}
	}

	return ui.Run(client, uiOpts)
}

// sessionOptions seeds a session from the session config section
func sessionOptions(cfg *config.Config) (session.Options, error) {
	language, err := common.ParseLanguage(cfg.Session.Language)
	if err != nil {
		return session.Options{}, err
	}
	tone, err := common.ParseTone(cfg.Session.Tone)
	if err != nil {
		return session.Options{}, err
	}

	theme := session.ThemeDark
	if cfg.Session.Theme == string(session.ThemeLight) {
		theme = session.ThemeLight
	}

	return session.Options{
		DiscardStale: cfg.Session.DiscardStale,
		Theme:        theme,
		Language:     language,
		Tone:         tone,
	}, nil
}

// tuiLogger opens output.log_file when verbose and discards otherwise
func tuiLogger(cfg *config.Config) (*logger.Logger, func(), error) {
	if !isVerbose() || cfg.Output.LogFile == "" {
		return logger.Discard(), func() {}, nil
	}

	path := config.ExpandPath(cfg.Output.LogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	// #nosec G304 - path comes from the user's own configuration
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log := logger.NewWithCallback("tui", isVerbose)
	log.SetOutput(f)
	return log, func() { _ = f.Close() }, nil
}

package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/felixgeelhaar/abacus/internal/ui/tui"
	"github.com/spf13/cobra"
	"golang.org/x/text/message"
)

var (
	configPath  string
	verbose     bool
	jsonLogs    bool
	logFile     string
	journalPath string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "abacus",
	Short: "Terminal calculator",
	Long: `Abacus is a keypad calculator for the terminal with basic and scientific
modes, memory, history, and age, currency and temperature converters.

Run without arguments to open the interactive keypad.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.abacus/config.yaml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	RootCmd.PersistentFlags().BoolVar(&jsonLogs, "json", false, "Log as JSON")
	RootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	RootCmd.PersistentFlags().StringVar(&journalPath, "journal", "", "Record evaluations in this SQLite database")
}

func runTUI(cmd *cobra.Command) error {
	a, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	model := tui.NewModel(a.session, message.NewPrinter(a.cfg.Language()))
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		a.obs.Log().Error().Err(err).Msg("TUI exited with error")
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

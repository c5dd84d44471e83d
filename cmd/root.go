package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/tocview/tocview/internal/config"
	"github.com/tocview/tocview/internal/document"
	"github.com/tocview/tocview/internal/logging"
	"github.com/tocview/tocview/internal/tui"
)

var (
	flagConfig   string
	flagTheme    string
	flagPanel    string
	flagDebugLog string
)

var rootCmd = &cobra.Command{
	Use:   "tocview <file>",
	Short: "Terminal document reader with a scroll-synced outline panel",
	Long: `tocview renders a markdown or HTML document in the terminal and keeps
a table-of-contents panel in sync with the scroll position. Click an
outline entry to jump to its section, or press tab to toggle the panel.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: "+filepath.Join("$XDG_CONFIG_HOME", "tocview", "config.yaml")+")")
	rootCmd.Flags().StringVar(&flagTheme, "theme", "", "rendering theme: auto, dark, light or notty")
	rootCmd.Flags().StringVar(&flagPanel, "panel", "", "initial panel state: open, closed or auto")
	rootCmd.Flags().StringVar(&flagDebugLog, "debug-log", "", "write debug logs to this file")
}

// configPath resolves the config file location from the flag or the
// user's config directory.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tocview", "config.yaml")
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, err
	}
	if flagTheme != "" {
		cfg.Theme = flagTheme
	}
	if flagPanel != "" {
		cfg.StartOpen = flagPanel
	}
	if flagDebugLog != "" {
		cfg.DebugLog = flagDebugLog
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc, err := document.Load(args[0], document.Options{
		MarkerKinds: cfg.MarkerKinds,
		Width:       cfg.ContentWidth,
		Theme:       cfg.Theme,
	})
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.DebugLog)
	if err != nil {
		return fmt.Errorf("opening debug log: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	zone.NewGlobal()
	defer zone.Close()

	p := tea.NewProgram(
		tui.NewModel(cfg, doc, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tocview/tocview/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the tocview configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if path == "" {
			return fmt.Errorf("cannot determine config directory")
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Println("wrote", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Printf("marker_kinds:  %v\n", cfg.MarkerKinds)
		fmt.Printf("start_open:    %s\n", cfg.StartOpen)
		fmt.Printf("click_close:   %s\n", cfg.ClickClose)
		fmt.Printf("char_limit:    %d\n", cfg.CharLimit)
		fmt.Printf("show_bullets:  %v\n", cfg.ShowBullets)
		fmt.Printf("panel_width:   %d\n", cfg.PanelWidth)
		fmt.Printf("content_width: %d\n", cfg.ContentWidth)
		fmt.Printf("theme:         %s\n", cfg.Theme)
		fmt.Printf("debug_log:     %s\n", cfg.DebugLog)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Tri-state enums. Unrecognized values are rejected at load time instead
// of silently falling through to a default branch.
const (
	StartOpen   = "open"
	StartClosed = "closed"
	StartAuto   = "auto"

	ClickClose    = "close"
	ClickKeepOpen = "keep-open"
	ClickAuto     = "auto"
)

// PanelMinWidth is the narrowest the outline panel is allowed to render.
// The small-screen threshold is derived from it: a terminal is "small"
// when it cannot fit the content column plus a panel on either side.
const PanelMinWidth = 24

// Config holds the static viewer configuration, read once at startup.
type Config struct {
	MarkerKinds  []int  `koanf:"marker_kinds" yaml:"marker_kinds"`   // heading ranks that count as sections
	StartOpen    string `koanf:"start_open" yaml:"start_open"`       // open | closed | auto
	ClickClose   string `koanf:"click_close" yaml:"click_close"`     // close | keep-open | auto
	CharLimit    int    `koanf:"char_limit" yaml:"char_limit"`       // outline label truncation limit, in runes
	ShowBullets  bool   `koanf:"show_bullets" yaml:"show_bullets"`   // bullet glyph before each entry
	PanelWidth   int    `koanf:"panel_width" yaml:"panel_width"`     // outline panel width in columns
	ContentWidth int    `koanf:"content_width" yaml:"content_width"` // document wrap width in columns
	Theme        string `koanf:"theme" yaml:"theme"`                 // glamour style: auto | dark | light | notty
	DebugLog     string `koanf:"debug_log" yaml:"debug_log"`         // debug log file path, empty disables logging
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		MarkerKinds:  []int{1, 2, 3, 4},
		StartOpen:    StartAuto,
		ClickClose:   ClickAuto,
		CharLimit:    28,
		ShowBullets:  true,
		PanelWidth:   32,
		ContentWidth: 80,
		Theme:        "auto",
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (TOCVIEW_*). A missing file is not an
// error; defaults apply. The result is validated before being returned.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("TOCVIEW_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "TOCVIEW_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validStartOpen = map[string]bool{
	StartOpen:   true,
	StartClosed: true,
	StartAuto:   true,
}

var validClickClose = map[string]bool{
	ClickClose:    true,
	ClickKeepOpen: true,
	ClickAuto:     true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if len(c.MarkerKinds) == 0 {
		return fmt.Errorf("marker_kinds must name at least one heading rank")
	}
	for _, kind := range c.MarkerKinds {
		if kind < 1 || kind > 6 {
			return fmt.Errorf("invalid marker kind %d: heading ranks are 1-6", kind)
		}
	}
	if !validStartOpen[c.StartOpen] {
		return fmt.Errorf("invalid start_open %q: must be one of open, closed, auto", c.StartOpen)
	}
	if !validClickClose[c.ClickClose] {
		return fmt.Errorf("invalid click_close %q: must be one of close, keep-open, auto", c.ClickClose)
	}
	if c.CharLimit <= 0 {
		return fmt.Errorf("char_limit must be positive")
	}
	if c.PanelWidth < PanelMinWidth {
		return fmt.Errorf("panel_width must be at least %d", PanelMinWidth)
	}
	if c.ContentWidth < 20 {
		return fmt.Errorf("content_width must be at least 20")
	}
	return nil
}

// SmallScreenThreshold returns the terminal width below which the viewer
// switches to mobile-style panel behavior: the expected content column
// plus twice the panel's minimum width.
func (c *Config) SmallScreenThreshold() int {
	return c.ContentWidth + 2*PanelMinWidth
}

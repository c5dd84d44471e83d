package tui

import (
	"github.com/tocview/tocview/internal/config"
)

// Panel owns the open/closed state of the outline panel and the policies
// that drive it. All transitions are idempotent, so the cascade triggered
// by an entry click (navigate, resync, close) converges instead of
// oscillating.
type Panel struct {
	open       bool
	startOpen  string
	clickClose string
	threshold  int
}

// NewPanel creates a panel controller from the static configuration.
func NewPanel(cfg *config.Config) Panel {
	return Panel{
		startOpen:  cfg.StartOpen,
		clickClose: cfg.ClickClose,
		threshold:  cfg.SmallScreenThreshold(),
	}
}

// SmallScreen reports whether the terminal is too narrow to keep the
// panel open alongside the content column.
func (p Panel) SmallScreen(screenWidth int) bool {
	return screenWidth < p.threshold
}

// IsOpen returns the current open/closed state.
func (p Panel) IsOpen() bool { return p.open }

// SetInitial computes the startup state from the configured policy and
// the terminal width. Called once, on the first window size report.
func (p *Panel) SetInitial(screenWidth int) {
	switch p.startOpen {
	case config.StartOpen:
		p.open = true
	case config.StartClosed:
		p.open = false
	default: // auto
		p.open = !p.SmallScreen(screenWidth)
	}
}

// Toggle flips the open/closed state.
func (p *Panel) Toggle() { p.open = !p.open }

// Open opens the panel. No-op when already open.
func (p *Panel) Open() { p.open = true }

// Close closes the panel. No-op when already closed.
func (p *Panel) Close() { p.open = false }

// EntryClicked applies the configured click policy after an outline
// entry was activated: close on small screens or when always-close is
// configured, otherwise re-affirm the open state.
func (p *Panel) EntryClicked(screenWidth int) {
	if p.clickClose == config.ClickClose || p.SmallScreen(screenWidth) {
		p.Close()
		return
	}
	p.Open()
}

// OutsideClicked handles a click anywhere outside the panel. The panel
// is only modal on small screens; large screens leave it open.
func (p *Panel) OutsideClicked(screenWidth int) {
	if p.SmallScreen(screenWidth) {
		p.Close()
	}
}

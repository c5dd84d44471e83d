package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/tocview/tocview/internal/config"
	"github.com/tocview/tocview/internal/document"
	"github.com/tocview/tocview/internal/outline"
)

// Mouse zone identifiers. Entry zones are derived per target, so they
// never collide with these.
const (
	zoneHeader       = "header"
	zoneToggleButton = "toggle-button"
	zonePanel        = "panel"
	zoneEntryPrefix  = "entry:"
)

// Model is the root Bubble Tea model: a document viewport alongside an
// outline panel, kept in sync as the user scrolls or navigates.
type Model struct {
	cfg    *config.Config
	doc    *document.Document
	logger *zap.Logger

	entries  []outline.Entry
	activeID string

	panel    Panel
	viewport viewport.Model
	keys     KeyMap

	width  int
	height int
	ready  bool
}

// NewModel builds the root model for a loaded document.
func NewModel(cfg *config.Config, doc *document.Document, logger *zap.Logger) Model {
	return Model{
		cfg:     cfg,
		doc:     doc,
		logger:  logger,
		entries: outline.Build(doc.Markers, cfg.CharLimit),
		panel:   NewPanel(cfg),
		keys:    DefaultKeyMap(),
	}
}

// PanelOpen reports whether the outline panel is currently open.
func (m Model) PanelOpen() bool { return m.panel.IsOpen() }

// ActiveID returns the identifier of the currently viewed section.
func (m Model) ActiveID() string { return m.activeID }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := !m.ready
		m.width = msg.Width
		m.height = msg.Height
		if first {
			m.viewport = viewport.New(m.contentWidth(), m.contentHeight())
			// The viewport matches our bindings, not its defaults, so the
			// KeyMap stays the single source of truth for navigation keys.
			m.viewport.KeyMap.Up = m.keys.Up
			m.viewport.KeyMap.Down = m.keys.Down
			m.viewport.KeyMap.PageUp = m.keys.PageUp
			m.viewport.KeyMap.PageDown = m.keys.PageDown
			m.viewport.SetContent(strings.Join(m.doc.Lines, "\n"))
			m.panel.SetInitial(m.width)
			m.ready = true
			m.logger.Debug("window ready",
				zap.Int("width", m.width),
				zap.Int("height", m.height),
				zap.Bool("panel_open", m.panel.IsOpen()))
		}
		m.layout()
		m.syncActive()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Escape):
			m.panel.Close()
			m.layout()
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.panel.Toggle()
			m.layout()
			return m, nil
		case key.Matches(msg, m.keys.Home):
			m.viewport.GotoTop()
			m.syncActive()
			return m, nil
		case key.Matches(msg, m.keys.End):
			m.viewport.GotoBottom()
			m.syncActive()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.syncActive()
		return m, cmd

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			m.applyClick(msg)
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.syncActive()
		return m, cmd
	}

	return m, nil
}

// applyClick resolves a left-click against the marked zones and
// dispatches it. Zones are checked most specific first and exactly one
// handler fires per click, so the toggle button never double-toggles
// through the header behind it.
func (m *Model) applyClick(msg tea.MouseMsg) {
	m.dispatchClick(m.resolveClick(msg))
}

// resolveClick maps a click position to a zone identifier. The empty
// string means the click landed on nothing interactive.
func (m *Model) resolveClick(msg tea.MouseMsg) string {
	if zone.Get(zoneToggleButton).InBounds(msg) {
		return zoneToggleButton
	}
	if zone.Get(zoneHeader).InBounds(msg) {
		return zoneHeader
	}
	if m.panel.IsOpen() {
		for _, e := range m.entries {
			id := zoneEntryPrefix + e.Target
			if zone.Get(id).InBounds(msg) {
				return id
			}
		}
		if zone.Get(zonePanel).InBounds(msg) {
			return zonePanel
		}
	}
	return ""
}

// dispatchClick acts on a resolved zone identifier.
func (m *Model) dispatchClick(id string) {
	switch {
	case id == zoneToggleButton, id == zoneHeader:
		m.panel.Toggle()
		m.layout()
		m.logger.Debug("panel toggled", zap.Bool("open", m.panel.IsOpen()))
	case strings.HasPrefix(id, zoneEntryPrefix):
		m.jumpTo(strings.TrimPrefix(id, zoneEntryPrefix))
	case id == zonePanel:
		// panel background swallows the click
	default:
		if m.panel.IsOpen() {
			m.panel.OutsideClicked(m.width)
			m.layout()
		}
	}
}

// jumpTo scrolls the viewport to the marker with the given identifier,
// resyncs the highlight, and applies the panel's click policy.
func (m *Model) jumpTo(target string) {
	for _, marker := range m.doc.Markers {
		if marker.ID != target {
			continue
		}
		m.viewport.SetYOffset(marker.Line)
		m.syncActive()
		m.panel.EntryClicked(m.width)
		m.layout()
		m.logger.Debug("jump", zap.String("target", target), zap.Int("line", marker.Line))
		return
	}
	m.logger.Warn("jump target not found", zap.String("target", target))
}

// viewportGeometry adapts the bubbles viewport to the locator.
type viewportGeometry struct {
	markers []outline.Marker
	yoffset int
	height  int
}

func (g viewportGeometry) Offset(i int) int { return g.markers[i].Line - g.yoffset }
func (g viewportGeometry) Height() int      { return g.height }

// syncActive recomputes which section is currently viewed and updates
// the entry flags. When every marker has been scrolled past, the last
// highlight is kept as-is.
func (m *Model) syncActive() {
	id, ok := outline.Locate(m.doc.Markers, viewportGeometry{
		markers: m.doc.Markers,
		yoffset: m.viewport.YOffset,
		height:  m.viewport.Height,
	})
	if !ok || id == m.activeID {
		return
	}
	m.activeID = id
	for i := range m.entries {
		m.entries[i].Viewed = m.entries[i].Target == id
	}
	m.logger.Debug("sync", zap.String("active", id), zap.Int("yoffset", m.viewport.YOffset))
}

// panelWidth returns the rendered width of the outline panel, zero when
// closed.
func (m Model) panelWidth() int {
	if !m.panel.IsOpen() {
		return 0
	}
	w := m.cfg.PanelWidth
	if max := m.width / 2; w > max {
		w = max
	}
	if w < config.PanelMinWidth {
		w = config.PanelMinWidth
	}
	return w
}

// contentWidth returns the document column width for the current layout.
func (m Model) contentWidth() int {
	w := m.width - m.panelWidth()
	if w < 1 {
		w = 1
	}
	return w
}

// contentHeight returns the viewport height: everything between the
// header and the status bar.
func (m Model) contentHeight() int {
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

// layout resizes the viewport after any change that affects geometry.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	m.viewport.Width = m.contentWidth()
	m.viewport.Height = m.contentHeight()
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := m.renderHeader()
	body := m.viewport.View()
	if m.panel.IsOpen() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderPanel(), body)
	}
	status := m.renderStatus()

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, header, body, status))
}

// renderHeader draws the title bar with the panel toggle button. Both
// the button and the full bar are marked as click zones.
func (m Model) renderHeader() string {
	glyph := "[>]"
	if m.panel.IsOpen() {
		glyph = "[<]"
	}
	button := zone.Mark(zoneToggleButton, HeaderButtonStyle.Render(glyph))
	title := HeaderStyle.Render(runewidth.Truncate(m.doc.Title, m.width-lipgloss.Width(button)-2, "..."))
	gap := m.width - lipgloss.Width(button) - lipgloss.Width(title)
	if gap < 0 {
		gap = 0
	}
	return zone.Mark(zoneHeader, button+title+strings.Repeat(" ", gap))
}

// renderPanel draws the outline entries, scrolled so the active entry
// stays visible.
func (m Model) renderPanel() string {
	width := m.panelWidth()
	inner := width - 4 // border and padding
	height := m.contentHeight() - 2

	rows := make([]string, 0, len(m.entries)+1)
	rows = append(rows, PanelTitleStyle.Render("Contents"))

	active := -1
	for i, e := range m.entries {
		if e.Viewed {
			active = i
		}
	}

	start := 0
	visible := height - 1
	if visible > 0 && len(m.entries) > visible {
		start = active - visible/2
		if start < 0 {
			start = 0
		}
		if start > len(m.entries)-visible {
			start = len(m.entries) - visible
		}
	}

	for i := start; i < len(m.entries) && len(rows) < height; i++ {
		rows = append(rows, m.renderEntry(m.entries[i], inner))
	}

	return zone.Mark(zonePanel, PanelStyle.
		Width(width-2).
		Height(height).
		Render(strings.Join(rows, "\n")))
}

// renderEntry draws one outline row: indentation by level, an optional
// bullet, and the truncated label.
func (m Model) renderEntry(e outline.Entry, width int) string {
	indent := ""
	if e.Level > 1 {
		indent = strings.Repeat("  ", e.Level-1)
	}
	bullet := ""
	if m.cfg.ShowBullets {
		bullet = EntryBulletStyle.Render("• ")
	}
	style := EntryStyle
	if e.Viewed {
		style = EntryActiveStyle
	}
	label := runewidth.Truncate(e.Label, width-lipgloss.Width(indent+bullet), "...")
	return zone.Mark(zoneEntryPrefix+e.Target, indent+bullet+style.Render(label))
}

// renderStatus draws the bottom bar: current section title on the left,
// key hints on the right.
func (m Model) renderStatus() string {
	section := ""
	for _, e := range m.entries {
		if e.Viewed {
			section = e.Title
			break
		}
	}

	var hints []string
	for _, b := range m.keys.ShortHelp() {
		hints = append(hints,
			StatusKeyStyle.Render(b.Help().Key)+" "+b.Help().Desc)
	}
	right := strings.Join(hints, "  ")

	left := StatusSectionStyle.Render(runewidth.Truncate(section, m.width-lipgloss.Width(right)-4, "..."))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 0 {
		gap = 0
	}
	return StatusBarStyle.Render(left + strings.Repeat(" ", gap) + right)
}

package tui

import (
	"fmt"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"

	"github.com/tocview/tocview/internal/config"
	"github.com/tocview/tocview/internal/document"
	"github.com/tocview/tocview/internal/outline"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

// testDoc builds a 100-line document with three markers spread out far
// enough to exercise every locator branch at a viewport height of 20.
func testDoc() *document.Document {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return &document.Document{
		Title: "Test Document",
		Lines: lines,
		Markers: []outline.Marker{
			{ID: "intro", Level: 1, Text: "Introduction", Line: 0},
			{ID: "middle", Level: 2, Text: "Middle Section", Line: 30},
			{ID: "end", Level: 2, Text: "End Section", Line: 60},
		},
	}
}

// newTestModel constructs a model and delivers the first window size.
func newTestModel(t *testing.T, cfg *config.Config, width, height int) Model {
	t.Helper()
	m := NewModel(cfg, testDoc(), zap.NewNop())
	next, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return next.(Model)
}

// viewedCount returns how many entries carry the viewed flag.
func viewedCount(m Model) int {
	n := 0
	for _, e := range m.entries {
		if e.Viewed {
			n++
		}
	}
	return n
}

func TestInitialState(t *testing.T) {
	m := newTestModel(t, config.Default(), 160, 22)

	if !m.PanelOpen() {
		t.Error("panel closed on wide screen with auto policy")
	}
	if m.ActiveID() != "intro" {
		t.Errorf("ActiveID() = %q, want %q", m.ActiveID(), "intro")
	}
	if viewedCount(m) != 1 {
		t.Errorf("viewed entries = %d, want 1", viewedCount(m))
	}

	narrow := newTestModel(t, config.Default(), 100, 22)
	if narrow.PanelOpen() {
		t.Error("panel open on narrow screen with auto policy")
	}
}

func TestSyncOnScroll(t *testing.T) {
	tests := []struct {
		name    string
		yoffset int
		want    string
	}{
		{"top of document", 0, "intro"},
		{"next section in bottom half keeps previous", 15, "intro"},
		{"section reaches top half", 25, "middle"},
		{"last section prominent", 55, "end"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, config.Default(), 160, 22)
			m.viewport.SetYOffset(tt.yoffset)
			m.syncActive()
			if m.ActiveID() != tt.want {
				t.Errorf("ActiveID() at offset %d = %q, want %q", tt.yoffset, m.ActiveID(), tt.want)
			}
			if viewedCount(m) != 1 {
				t.Errorf("viewed entries = %d, want 1", viewedCount(m))
			}
		})
	}
}

func TestKeepLastHighlightPastAllMarkers(t *testing.T) {
	m := newTestModel(t, config.Default(), 160, 22)
	m.viewport.SetYOffset(55)
	m.syncActive()
	if m.ActiveID() != "end" {
		t.Fatalf("ActiveID() = %q, want %q", m.ActiveID(), "end")
	}

	// All markers scrolled past: the highlight must not move.
	m.viewport.SetYOffset(80)
	m.syncActive()
	if m.ActiveID() != "end" {
		t.Errorf("ActiveID() past all markers = %q, want %q", m.ActiveID(), "end")
	}
	if viewedCount(m) != 1 {
		t.Errorf("viewed entries = %d, want 1", viewedCount(m))
	}
}

func TestFirstMarkerClamp(t *testing.T) {
	doc := testDoc()
	doc.Markers = []outline.Marker{{ID: "late", Level: 1, Text: "Late Start", Line: 15}}
	m := NewModel(config.Default(), doc, zap.NewNop())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 22})
	m = next.(Model)

	// Offset 15 is in the bottom half of a 20-line viewport, but the
	// first marker has no predecessor and clamps to itself.
	if m.ActiveID() != "late" {
		t.Errorf("ActiveID() = %q, want %q", m.ActiveID(), "late")
	}
}

func TestToggleAndEscapeKeys(t *testing.T) {
	m := newTestModel(t, config.Default(), 160, 22)
	if !m.PanelOpen() {
		t.Fatal("precondition: panel should start open")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.PanelOpen() {
		t.Fatal("tab did not close the panel")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if !m.PanelOpen() {
		t.Fatal("tab did not reopen the panel")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.PanelOpen() {
		t.Fatal("esc did not close the panel")
	}

	// Esc on a closed panel stays closed.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.PanelOpen() {
		t.Fatal("esc reopened the panel")
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, config.Default(), 160, 22)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("q produced %v, want quit", msg)
	}
}

func TestDispatchToggleButton(t *testing.T) {
	m := newTestModel(t, config.Default(), 160, 22)
	was := m.PanelOpen()

	// A button click resolves to exactly one zone, so one dispatch is
	// one toggle.
	m.dispatchClick(zoneToggleButton)
	if m.PanelOpen() == was {
		t.Fatal("button click did not toggle the panel")
	}
	m.dispatchClick(zoneHeader)
	if m.PanelOpen() != was {
		t.Fatal("header click did not toggle the panel back")
	}
}

func TestDispatchEntryClick(t *testing.T) {
	m := newTestModel(t, config.Default(), 160, 22)

	m.dispatchClick(zoneEntryPrefix + "middle")
	if m.viewport.YOffset != 30 {
		t.Errorf("YOffset = %d, want 30", m.viewport.YOffset)
	}
	if m.ActiveID() != "middle" {
		t.Errorf("ActiveID() = %q, want %q", m.ActiveID(), "middle")
	}
	if !m.PanelOpen() {
		t.Error("entry click on wide screen closed the panel under auto policy")
	}
}

func TestDispatchEntryClickNarrowScreen(t *testing.T) {
	m := newTestModel(t, config.Default(), 100, 22)
	m.dispatchClick(zoneToggleButton)
	if !m.PanelOpen() {
		t.Fatal("precondition: panel should be open after toggle")
	}

	m.dispatchClick(zoneEntryPrefix + "end")
	if m.ActiveID() != "end" {
		t.Errorf("ActiveID() = %q, want %q", m.ActiveID(), "end")
	}
	if m.PanelOpen() {
		t.Error("entry click on narrow screen left the panel open")
	}
}

func TestDispatchOutsideClick(t *testing.T) {
	wide := newTestModel(t, config.Default(), 160, 22)
	wide.dispatchClick("")
	if !wide.PanelOpen() {
		t.Error("outside click on wide screen closed the panel")
	}

	narrow := newTestModel(t, config.Default(), 100, 22)
	narrow.dispatchClick(zoneToggleButton)
	narrow.dispatchClick("")
	if narrow.PanelOpen() {
		t.Error("outside click on narrow screen left the panel open")
	}
}

func TestDispatchUnknownEntry(t *testing.T) {
	m := newTestModel(t, config.Default(), 160, 22)
	m.dispatchClick(zoneEntryPrefix + "nonexistent")
	if m.viewport.YOffset != 0 {
		t.Errorf("YOffset = %d, want 0 after unknown target", m.viewport.YOffset)
	}
}

func TestNavigationKeysRouteThroughKeyMap(t *testing.T) {
	m := newTestModel(t, config.Default(), 160, 22)

	// The viewport must scroll with the model's own bindings.
	pairs := []struct {
		name     string
		viewport []string
		model    []string
	}{
		{"up", m.viewport.KeyMap.Up.Keys(), m.keys.Up.Keys()},
		{"down", m.viewport.KeyMap.Down.Keys(), m.keys.Down.Keys()},
		{"pageup", m.viewport.KeyMap.PageUp.Keys(), m.keys.PageUp.Keys()},
		{"pagedown", m.viewport.KeyMap.PageDown.Keys(), m.keys.PageDown.Keys()},
	}
	for _, p := range pairs {
		if strings.Join(p.viewport, ",") != strings.Join(p.model, ",") {
			t.Errorf("viewport %s keys = %v, want %v", p.name, p.viewport, p.model)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = next.(Model)
	if m.viewport.YOffset != 1 {
		t.Fatalf("YOffset after j = %d, want 1", m.viewport.YOffset)
	}

	// Two page-downs land well inside the middle section, and the
	// highlight must follow the scroll.
	for i := 0; i < 2; i++ {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
		m = next.(Model)
	}
	if m.viewport.YOffset < 40 {
		t.Fatalf("YOffset after two page-downs = %d, want >= 40", m.viewport.YOffset)
	}
	if m.ActiveID() != "middle" {
		t.Errorf("ActiveID() = %q, want %q", m.ActiveID(), "middle")
	}
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t, config.Default(), 160, 40)
	view := m.View()

	if !strings.Contains(view, "Test Document") {
		t.Error("view missing document title")
	}
	if !strings.Contains(view, "Contents") {
		t.Error("view missing panel title while open")
	}
	if !strings.Contains(view, "Introduction") {
		t.Error("view missing outline entry")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	closed := m.View()
	if strings.Contains(closed, "Contents") {
		t.Error("view shows panel title while closed")
	}
}

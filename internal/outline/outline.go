package outline

// Ellipsis is appended to labels that exceed the configured character limit.
const Ellipsis = "..."

// Marker is a section heading in the rendered document that is eligible to
// appear in the outline. Markers are created once when the document is
// loaded and never mutated afterwards.
type Marker struct {
	ID    string // stable identifier, unique within the document
	Level int    // heading rank (1-6)
	Text  string // visible heading text
	Line  int    // first rendered line of the heading
}

// Entry is the navigational representation of one Marker. Viewed is the
// only field that changes after construction; the sync pass in the TUI
// flips it as the user scrolls.
type Entry struct {
	Level  int    // indentation level 1-4, 0 for unrecognized ranks
	Label  string // display text, truncated with Ellipsis when too long
	Title  string // full untruncated text, shown in the status bar
	Target string // identifier of the marker this entry navigates to
	Viewed bool   // true when this entry's section is currently viewed
}

// Build produces one Entry per marker, preserving document order. The
// locator's "previous marker" rule depends on entries and markers sharing
// the same order, so Build must never reorder or drop markers.
func Build(markers []Marker, charLimit int) []Entry {
	entries := make([]Entry, 0, len(markers))
	for _, m := range markers {
		level := m.Level
		if level < 1 || level > 4 {
			level = 0
		}
		entries = append(entries, Entry{
			Level:  level,
			Label:  Truncate(m.Text, charLimit),
			Title:  m.Text,
			Target: m.ID,
		})
	}
	return entries
}

// Truncate shortens s to limit runes plus Ellipsis. Strings within the
// limit are returned unchanged. A non-positive limit disables truncation.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + Ellipsis
}

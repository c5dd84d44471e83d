package outline

// Geometry reports marker positions relative to the visible viewport.
// The TUI implements it over a bubbles viewport; tests use synthetic
// offsets so the locator can be exercised without a terminal.
type Geometry interface {
	// Offset returns the vertical distance of marker i from the top of
	// the viewport, in lines. Negative means scrolled past.
	Offset(i int) int
	// Height returns the visible viewport height in lines.
	Height() int
}

// Locate determines which marker the user is currently viewing.
//
// Markers are scanned in document order. The first marker not yet
// scrolled past (offset >= 0) is the candidate boundary: if it sits in
// the top half of the viewport it is prominently visible and wins,
// otherwise the previous marker's section is still considered current.
// The first marker acts as its own "previous" — a deliberate clamp.
//
// When every marker has been scrolled past (e.g. viewing trailing
// content below the last section) Locate reports ok=false and the
// caller keeps the last known highlight.
func Locate(markers []Marker, geo Geometry) (id string, ok bool) {
	for i := range markers {
		off := geo.Offset(i)
		if off < 0 {
			continue
		}
		if off < geo.Height()/2 {
			return markers[i].ID, true
		}
		if i == 0 {
			return markers[0].ID, true
		}
		return markers[i-1].ID, true
	}
	return "", false
}

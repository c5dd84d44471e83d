package outline

import "testing"

// fakeGeometry provides synthetic marker offsets for locator tests.
type fakeGeometry struct {
	offsets []int
	height  int
}

func (g fakeGeometry) Offset(i int) int { return g.offsets[i] }
func (g fakeGeometry) Height() int      { return g.height }

func TestLocate(t *testing.T) {
	markers := []Marker{
		{ID: "a", Level: 1, Text: "Intro"},
		{ID: "b", Level: 2, Text: "Details"},
	}

	tests := []struct {
		name    string
		markers []Marker
		offsets []int
		height  int
		wantID  string
		wantOK  bool
	}{
		{
			// "b" sits at 10% of viewport height from the top: prominently
			// visible, so it is the active section.
			name:    "boundary in top half wins",
			markers: markers,
			offsets: []int{-30, 4},
			height:  40,
			wantID:  "b",
			wantOK:  true,
		},
		{
			// "b" sits at 80% of viewport height: not sufficiently entered,
			// the prior section is still current.
			name:    "boundary in bottom half falls back to previous",
			markers: markers,
			offsets: []int{-30, 32},
			height:  40,
			wantID:  "a",
			wantOK:  true,
		},
		{
			name:    "first marker below fold clamps to itself",
			markers: markers,
			offsets: []int{35, 60},
			height:  40,
			wantID:  "a",
			wantOK:  true,
		},
		{
			name:    "first marker at top",
			markers: markers,
			offsets: []int{0, 25},
			height:  40,
			wantID:  "a",
			wantOK:  true,
		},
		{
			name:    "all markers scrolled past reports no match",
			markers: markers,
			offsets: []int{-80, -40},
			height:  40,
			wantID:  "",
			wantOK:  false,
		},
		{
			name:    "empty marker list",
			markers: nil,
			offsets: nil,
			height:  40,
			wantID:  "",
			wantOK:  false,
		},
		{
			name: "jump skips intermediate sections",
			markers: []Marker{
				{ID: "one"}, {ID: "two"}, {ID: "three"}, {ID: "four"},
			},
			offsets: []int{-90, -60, -30, 5},
			height:  40,
			wantID:  "four",
			wantOK:  true,
		},
		{
			// Exactly half the viewport is not "less than half": the
			// boundary has not sufficiently entered view.
			name:    "boundary exactly at half falls back",
			markers: markers,
			offsets: []int{-10, 20},
			height:  40,
			wantID:  "a",
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geo := fakeGeometry{offsets: tt.offsets, height: tt.height}
			id, ok := Locate(tt.markers, geo)
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("Locate() = (%q, %v), want (%q, %v)", id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

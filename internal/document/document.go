package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/tocview/tocview/internal/outline"
)

// Document is a rendered document plus the section markers found in it.
// It is immutable once loaded; the viewer never mutates the host document.
type Document struct {
	Title   string
	Lines   []string          // rendered terminal lines
	Markers []outline.Marker  // in document order, Line indexes into Lines
}

// Options control how a document is rendered and scanned.
type Options struct {
	MarkerKinds []int  // heading ranks that count as section markers
	Width       int    // wrap width in columns
	Theme       string // glamour style for markdown rendering
}

// Load reads and renders the document at path, picking the format from
// the file extension. Markdown is the default for unknown extensions.
func Load(path string, opts Options) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return parseHTML(src, name, opts)
	default:
		return parseMarkdown(src, name, opts)
	}
}

// kindSet converts a marker-kind list to a lookup set.
func kindSet(kinds []int) map[int]bool {
	set := make(map[int]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}

// wrapText word-wraps s to the given display width. Words wider than the
// width get a line of their own.
func wrapText(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if runewidth.StringWidth(cur)+1+runewidth.StringWidth(w) <= width {
			cur += " " + w
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

package document

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"github.com/gosimple/slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/tocview/tocview/internal/outline"
)

// parseMarkdown renders markdown for the terminal with glamour and scans
// the goldmark AST for section markers.
func parseMarkdown(src []byte, filename string, opts Options) (*Document, error) {
	md := goldmark.New(
		goldmark.WithParserOptions(parser.WithAttribute()),
	)
	root := md.Parser().Parse(text.NewReader(src))

	doc := &Document{
		Title: strings.TrimSuffix(strings.TrimSuffix(filename, ".md"), ".markdown"),
	}
	titled := false

	kinds := kindSet(opts.MarkerKinds)
	seen := make(map[string]int)
	type heading struct {
		id, text string
		level    int
	}
	var headings []heading

	// Walk the whole tree: headings nested in blockquotes or list items
	// are sections too.
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		title := string(h.Text(src))
		if h.Level == 1 && !titled {
			doc.Title = title
			titled = true
		}
		if !kinds[h.Level] {
			return ast.WalkSkipChildren, nil
		}
		id := headingID(h, title)
		if id == "" {
			// No identifier could be derived; the heading is skipped.
			return ast.WalkSkipChildren, nil
		}
		if dup := seen[id]; dup > 0 {
			id = fmt.Sprintf("%s-%d", id, dup)
		}
		seen[id]++
		headings = append(headings, heading{id: id, text: title, level: h.Level})
		return ast.WalkSkipChildren, nil
	})

	rendered, err := renderMarkdown(src, opts)
	if err != nil {
		return nil, err
	}
	doc.Lines = strings.Split(rendered, "\n")

	// Map each heading to its rendered line. Glamour decorates headings
	// but keeps their text, so an ANSI-stripped forward scan finds them;
	// scanning resumes after the previous match so duplicate texts land
	// on distinct lines and document order is preserved.
	next := 0
	for _, h := range headings {
		line := findLine(doc.Lines, h.text, next)
		doc.Markers = append(doc.Markers, outline.Marker{
			ID:    h.id,
			Level: h.level,
			Text:  h.text,
			Line:  line,
		})
		next = line + 1
	}

	return doc, nil
}

// headingID returns the heading's explicit {#id} attribute when present,
// otherwise a slug derived from its text. Empty when neither yields one.
func headingID(h *ast.Heading, title string) string {
	if v, ok := h.AttributeString("id"); ok {
		switch id := v.(type) {
		case []byte:
			return string(id)
		case string:
			return id
		}
	}
	return slug.Make(title)
}

func renderMarkdown(src []byte, opts Options) (string, error) {
	ropts := []glamour.TermRendererOption{
		glamour.WithWordWrap(opts.Width),
	}
	switch opts.Theme {
	case "", "auto":
		ropts = append(ropts, glamour.WithAutoStyle())
	default:
		ropts = append(ropts, glamour.WithStylePath(opts.Theme))
	}
	r, err := glamour.NewTermRenderer(ropts...)
	if err != nil {
		return "", fmt.Errorf("building renderer: %w", err)
	}
	out, err := r.Render(string(src))
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// findLine locates text in lines starting at from, trying the full text
// first and then a prefix in case the heading was wrapped. Falls back to
// from so marker order stays monotonic even when matching fails.
func findLine(lines []string, text string, from int) int {
	needles := []string{text}
	if runes := []rune(text); len(runes) > 24 {
		needles = append(needles, string(runes[:24]))
	}
	for _, needle := range needles {
		for i := from; i < len(lines); i++ {
			if strings.Contains(ansi.Strip(lines[i]), needle) {
				return i
			}
		}
	}
	if from >= len(lines) {
		return len(lines) - 1
	}
	return from
}

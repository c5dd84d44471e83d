package document

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	"github.com/tocview/tocview/internal/outline"
)

// parseHTML renders an HTML document to plain wrapped lines and collects
// section markers from heading elements carrying an id attribute.
func parseHTML(src []byte, filename string, opts Options) (*Document, error) {
	root, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Title: strings.TrimSuffix(strings.TrimSuffix(filename, ".html"), ".htm"),
	}
	if title := findTitle(root); title != "" {
		doc.Title = title
	}

	kinds := kindSet(opts.MarkerKinds)

	appendBlock := func(text string) {
		if text == "" {
			return
		}
		if len(doc.Lines) > 0 {
			doc.Lines = append(doc.Lines, "")
		}
		doc.Lines = append(doc.Lines, wrapText(text, opts.Width)...)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				text := textContent(n)
				id := attrValue(n, "id")
				// Headings without a stable identifier render but never
				// become markers.
				if id != "" && kinds[level] {
					line := len(doc.Lines)
					if line > 0 {
						line++ // account for the blank separator appendBlock inserts
					}
					doc.Markers = append(doc.Markers, outline.Marker{
						ID:    id,
						Level: level,
						Text:  text,
						Line:  line,
					})
				}
				appendBlock(text)
				return
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p", "li", "td", "blockquote", "pre":
				appendBlock(textContent(n))
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(root); body != nil {
		walk(body)
	} else {
		walk(root)
	}

	return doc, nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

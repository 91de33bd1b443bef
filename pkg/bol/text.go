package bol

import (
	"strings"

	"golang.org/x/net/html"
)

// blockElements start a new line when they open or close.
var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true,
	"tr": true, "table": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "pre": true, "blockquote": true,
}

// PlainText reduces description text that may carry editor markup to
// plain lines. Block elements and <br> become line breaks, entities are
// decoded, and text that is not HTML passes through unchanged apart from
// line trimming.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(splitLines(s), "\n")
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return strings.Join(splitLines(s), "\n")
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			if n.Data == "br" {
				b.WriteString("\n")
				return
			}
			if n.Data == "script" || n.Data == "style" {
				return
			}
			if blockElements[n.Data] {
				b.WriteString("\n")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			b.WriteString("\n")
		}
	}
	walk(doc)

	return strings.Join(splitLines(b.String()), "\n")
}

package layout

import (
	"strings"

	"github.com/gardar/shipdoc/pkg/surface"
)

// Wrap breaks text into lines no wider than maxWidth when drawn in font.
//
// Lines break at whitespace and keep the original word order. Explicit
// newlines start a new line; blank lines inside the text are kept, blank
// lines at either end are dropped. Empty text yields no lines. A single
// word wider than maxWidth is split between runes, since no whitespace
// break can make it fit.
func Wrap(m surface.Measurer, text string, font surface.Font, maxWidth float64) []string {
	paragraphs := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	start, end := 0, len(paragraphs)
	for start < end && strings.TrimSpace(paragraphs[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(paragraphs[end-1]) == "" {
		end--
	}

	var lines []string
	for _, p := range paragraphs[start:end] {
		words := strings.Fields(p)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapWords(m, words, font, maxWidth)...)
	}
	return lines
}

func wrapWords(m surface.Measurer, words []string, font surface.Font, maxWidth float64) []string {
	var lines []string
	current := ""
	for _, w := range words {
		if current != "" {
			if candidate := current + " " + w; m.MeasureText(candidate, font) <= maxWidth {
				current = candidate
				continue
			}
			lines = append(lines, current)
			current = ""
		}
		if m.MeasureText(w, font) <= maxWidth {
			current = w
			continue
		}
		pieces := splitWord(m, w, font, maxWidth)
		lines = append(lines, pieces[:len(pieces)-1]...)
		current = pieces[len(pieces)-1]
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// splitWord cuts an overlong word into pieces that fit maxWidth. Every
// piece holds at least one rune.
func splitWord(m surface.Measurer, word string, font surface.Font, maxWidth float64) []string {
	var pieces []string
	runes := []rune(word)
	for len(runes) > 0 {
		n := 1
		for n < len(runes) && m.MeasureText(string(runes[:n+1]), font) <= maxWidth {
			n++
		}
		pieces = append(pieces, string(runes[:n]))
		runes = runes[n:]
	}
	return pieces
}

// wrapAll wraps each text line and concatenates the results.
func wrapAll(m surface.Measurer, texts []string, font surface.Font, maxWidth float64) []string {
	var lines []string
	for _, t := range texts {
		lines = append(lines, Wrap(m, t, font, maxWidth)...)
	}
	return lines
}

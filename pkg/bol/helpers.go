package bol

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// dateLayouts are the input formats accepted by FormatDate, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"02-Jan-2006",
	"02-Jan-06",
}

// FormatDate renders a date as DD-MON-YY (e.g. 05-MAR-24).
// Invalid or absent dates render as an empty string.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return strings.ToUpper(t.Format("02-Jan-06"))
		}
	}
	return ""
}

var printer = message.NewPrinter(language.English)

// formatQuantity renders a number with thousands separators and the
// given number of decimals (e.g. 12,500.000).
func formatQuantity(v float64, decimals int) string {
	return printer.Sprintf("%v", number.Decimal(v, number.Scale(decimals)))
}

// formatCount renders a whole number with thousands separators.
func formatCount(v float64) string {
	return printer.Sprintf("%d", int64(v+0.5))
}

// cleanLine collapses inner whitespace of a single line.
func cleanLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// splitLines splits free text into trimmed, non-blank lines.
func splitLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if l = cleanLine(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// firstNonEmpty returns the first argument that is not blank.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

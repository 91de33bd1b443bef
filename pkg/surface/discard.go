package surface

import (
	"unicode/utf8"
)

// discard is a Surface that draws nothing and only measures text.
type discard struct {
	m Measurer
}

// Discard returns a Surface that measures with m and throws every
// primitive away. Finish returns no bytes. It is used for layout dry runs
// and tests where only the engine's own display list matters.
func Discard(m Measurer) Surface {
	if m == nil {
		m = Monospace(0.5)
	}
	return discard{m: m}
}

func (discard) AddPage(width, height float64)                {}
func (discard) Line(x1, y1, x2, y2, width float64)           {}
func (discard) Rect(x, y, w, h, width float64)               {}
func (discard) Text(x, y float64, text string, font Font)    {}
func (discard) Image(data []byte, x, y, w, h float64) error  { return nil }
func (d discard) MeasureText(text string, font Font) float64 { return d.m.MeasureText(text, font) }
func (discard) Finish() ([]byte, error)                      { return nil, nil }
func (discard) ContentType() string                          { return "application/octet-stream" }

// Monospace returns a Measurer where every rune advances by
// advance*font.Size. It gives predictable widths for previews and tests.
func Monospace(advance float64) Measurer {
	return MeasurerFunc(func(text string, font Font) float64 {
		return float64(utf8.RuneCountInString(text)) * advance * font.Size
	})
}

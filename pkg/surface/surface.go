// Package surface defines the abstract drawing surface the document layout
// engine renders onto.
//
// A Surface is a minimal set of primitives: pages, lines, rectangles, single
// text lines, images and text measurement. It holds no layout knowledge, so
// any backend (PDF, SVG, raster) can implement it and render the same
// document.
//
// Coordinates are in points with the origin at the top-left corner of the
// page and y growing downwards. Text is positioned by its baseline.
//
// Key Types:
//
// - Surface: The drawing contract implemented by every backend
// - Font: Family, style and size used for drawing and measuring text
// - Op: One recorded drawing primitive (used for display lists)
// - Measurer: Stateless text measurement, shared by backends that do not
// measure text themselves
package surface

// Surface is the drawing contract used by the layout engine.
// A Surface is owned by exactly one generation call at a time.
type Surface interface {
	// AddPage starts a new page of the given size. All following
	// primitives are drawn on that page.
	AddPage(width, height float64)
	// Line draws a straight line between two points.
	Line(x1, y1, x2, y2, width float64)
	// Rect draws the outline of a rectangle.
	Rect(x, y, w, h, width float64)
	// Text draws a single line of text with its baseline at y.
	Text(x, y float64, text string, font Font)
	// Image draws an encoded image (PNG, JPEG or GIF) scaled into the box.
	Image(data []byte, x, y, w, h float64) error
	// MeasureText returns the width of text drawn in font.
	MeasureText(text string, font Font) float64
	// Finish closes the document and returns the encoded artifact.
	Finish() ([]byte, error)
	// ContentType is the media type of the artifact returned by Finish.
	ContentType() string
}

// Font selects a typeface for drawing or measuring text.
type Font struct {
	Family string  `yaml:"family" json:"family"` // Font family (e.g., "Helvetica")
	Style  string  `yaml:"style" json:"style"`   // Font style ("", "B", "I", "BI")
	Size   float64 `yaml:"size" json:"size"`     // Size in points
}

// Bold returns a copy of the font with bold style.
func (f Font) Bold() Font {
	f.Style = "B"
	return f
}

// WithSize returns a copy of the font with another size.
func (f Font) WithSize(size float64) Font {
	f.Size = size
	return f
}

// IsBold reports whether the font style includes bold.
func (f Font) IsBold() bool {
	for _, r := range f.Style {
		if r == 'B' || r == 'b' {
			return true
		}
	}
	return false
}

// Measurer measures text independently of any drawing state.
type Measurer interface {
	MeasureText(text string, font Font) float64
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(text string, font Font) float64

// MeasureText calls f(text, font).
func (f MeasurerFunc) MeasureText(text string, font Font) float64 {
	return f(text, font)
}

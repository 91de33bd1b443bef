package surface

import "image"

// OpKind identifies a drawing primitive.
type OpKind string

// Primitive kinds recorded in a display list.
const (
	OpLine  OpKind = "line"
	OpRect  OpKind = "rect"
	OpText  OpKind = "text"
	OpImage OpKind = "image"
)

// Op is one drawing primitive as recorded in a display list.
// Lines use X1/Y1/X2/Y2, rectangles and images use X1/Y1 as origin and
// W/H as size, text uses X1/Y1 as baseline origin.
type Op struct {
	Kind  OpKind  `json:"kind"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2,omitempty"`
	Y2    float64 `json:"y2,omitempty"`
	W     float64 `json:"w,omitempty"`
	H     float64 `json:"h,omitempty"`
	Width float64 `json:"width,omitempty"` // Stroke width
	Text  string  `json:"text,omitempty"`
	Font  Font    `json:"font"`
	Data  []byte  `json:"-"`             // Encoded image bytes
	Tag   string  `json:"tag,omitempty"` // Layout region that emitted the op

	// Decoded is the image already decoded by backends that need pixels.
	Decoded image.Image `json:"-"`
}

// PageSize is the size of one page in points.
type PageSize struct {
	Width  float64
	Height float64
}

// DisplayList is a page-by-page recording of primitives. Backends that
// render a whole page at once (SVG, raster) embed it and replay it in
// Finish.
type DisplayList struct {
	Sizes []PageSize
	Pages [][]Op
}

// AddPage opens a new page in the list.
func (d *DisplayList) AddPage(width, height float64) {
	d.Sizes = append(d.Sizes, PageSize{Width: width, Height: height})
	d.Pages = append(d.Pages, nil)
}

// Append records op on the current page. Ops emitted before the first
// page are dropped.
func (d *DisplayList) Append(op Op) {
	if len(d.Pages) == 0 {
		return
	}
	last := len(d.Pages) - 1
	d.Pages[last] = append(d.Pages[last], op)
}

// PageCount returns the number of pages recorded so far.
func (d *DisplayList) PageCount() int {
	return len(d.Pages)
}

package layout

import (
	"github.com/gardar/shipdoc/pkg/surface"
)

// Tags attached to recorded primitives, naming the region that drew them.
const (
	TagLetterhead  = "letterhead"
	TagSection     = "section"
	TagBorder      = "border"
	TagBanner      = "banner"
	TagHeader      = "header"
	TagAggregate   = "aggregate"
	TagEntry       = "entry"
	TagDescription = "description"
	TagSeparator   = "separator"
	TagFooter      = "footer"
)

// renderer forwards primitives to the surface and records them, page by
// page, into the document display list. It knows nothing about the
// layout; callers set the tag of the region they are drawing.
type renderer struct {
	s     surface.Surface
	cfg   Config
	pages []Page
	tag   string
}

func newRenderer(s surface.Surface, cfg Config) *renderer {
	return &renderer{s: s, cfg: cfg}
}

// addPage starts a page on the surface and in the display list.
func (r *renderer) addPage() *Page {
	r.s.AddPage(r.cfg.PageWidth, r.cfg.PageHeight)
	r.pages = append(r.pages, Page{Number: len(r.pages) + 1})
	return r.page()
}

// page returns the page currently being drawn.
func (r *renderer) page() *Page {
	return &r.pages[len(r.pages)-1]
}

func (r *renderer) record(op surface.Op) {
	op.Tag = r.tag
	p := r.page()
	p.Ops = append(p.Ops, op)
}

func (r *renderer) measure(text string, font surface.Font) float64 {
	return r.s.MeasureText(text, font)
}

func (r *renderer) line(x1, y1, x2, y2 float64) {
	w := r.cfg.BorderWidth
	r.s.Line(x1, y1, x2, y2, w)
	r.record(surface.Op{Kind: surface.OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Width: w})
}

func (r *renderer) rect(x, y, w, h float64) {
	bw := r.cfg.BorderWidth
	r.s.Rect(x, y, w, h, bw)
	r.record(surface.Op{Kind: surface.OpRect, X1: x, Y1: y, W: w, H: h, Width: bw})
}

func (r *renderer) text(x, baseline float64, s string, font surface.Font) {
	if s == "" {
		return
	}
	r.s.Text(x, baseline, s, font)
	r.record(surface.Op{Kind: surface.OpText, X1: x, Y1: baseline, Text: s, Font: font})
}

// lines draws one text line per lineHeight starting with the line box
// whose top edge is at top.
func (r *renderer) lines(x, top float64, lines []string, font surface.Font, lineHeight float64) {
	for i, l := range lines {
		r.text(x, baseline(top+float64(i)*lineHeight, lineHeight, font), l, font)
	}
}

// textRight draws text right-aligned against x.
func (r *renderer) textRight(x, baseline float64, s string, font surface.Font) {
	r.text(x-r.measure(s, font), baseline, s, font)
}

func (r *renderer) image(data []byte, x, y, w, h float64) error {
	if err := r.s.Image(data, x, y, w, h); err != nil {
		return err
	}
	r.record(surface.Op{Kind: surface.OpImage, X1: x, Y1: y, W: w, H: h, Data: data})
	return nil
}

// baseline places text vertically centred in a line box of height
// lineHeight whose top edge is at top.
func baseline(top, lineHeight float64, font surface.Font) float64 {
	return top + (lineHeight+0.7*font.Size)/2
}

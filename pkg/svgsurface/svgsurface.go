// Package svgsurface implements surface.Surface as SVG.
//
// Primitives are recorded into a display list and rendered in Finish
// through an embedded template. Finish returns one SVG with the pages
// stacked top to bottom; PageSVGs returns a standalone SVG per page.
package svgsurface

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"text/template"

	"github.com/gardar/shipdoc/pkg/pdfsurface"
	"github.com/gardar/shipdoc/pkg/surface"
)

//go:embed templates/document.svg.tmpl
var templateFS embed.FS

// ContentType is the media type of the documents produced by Surface.
const ContentType = "image/svg+xml"

// PageGap is the vertical space between stacked pages in the combined SVG.
const PageGap = 12

var tmpl = template.Must(template.New("document.svg.tmpl").Funcs(template.FuncMap{
	"num":     formatNum,
	"esc":     template.HTMLEscapeString,
	"family":  fontFamily,
	"dataURI": dataURI,
}).ParseFS(templateFS, "templates/document.svg.tmpl"))

// Surface records primitives for SVG output.
type Surface struct {
	surface.DisplayList
	m     surface.Measurer
	pages [][]byte // Standalone page documents, set by Finish
}

// Option configures a Surface.
type Option func(*Surface)

// WithMeasurer replaces the default core font metrics.
func WithMeasurer(m surface.Measurer) Option {
	return func(s *Surface) {
		s.m = m
	}
}

// New creates an SVG surface. Text is measured with the PDF core font
// metrics unless another Measurer is given, so SVG and PDF output break
// lines at the same places.
func New(opts ...Option) *Surface {
	s := &Surface{}
	for _, opt := range opts {
		opt(s)
	}
	if s.m == nil {
		s.m = pdfsurface.Metrics()
	}
	return s
}

func (s *Surface) Line(x1, y1, x2, y2, width float64) {
	s.Append(surface.Op{Kind: surface.OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width})
}

func (s *Surface) Rect(x, y, w, h, width float64) {
	s.Append(surface.Op{Kind: surface.OpRect, X1: x, Y1: y, W: w, H: h, Width: width})
}

func (s *Surface) Text(x, y float64, text string, font surface.Font) {
	s.Append(surface.Op{Kind: surface.OpText, X1: x, Y1: y, Text: text, Font: font})
}

// Image embeds the image as a data URI. Only PNG, JPEG and GIF data is
// accepted.
func (s *Surface) Image(data []byte, x, y, w, h float64) error {
	switch mime := http.DetectContentType(data); mime {
	case "image/png", "image/jpeg", "image/gif":
	default:
		return fmt.Errorf("unsupported image type %q", mime)
	}
	s.Append(surface.Op{Kind: surface.OpImage, X1: x, Y1: y, W: w, H: h, Data: data})
	return nil
}

func (s *Surface) MeasureText(text string, font surface.Font) float64 {
	return s.m.MeasureText(text, font)
}

type pageData struct {
	Number int
	Size   surface.PageSize
	Offset float64
	Ops    []surface.Op
}

type documentData struct {
	Width  float64
	Height float64
	Pages  []pageData
}

// Finish renders every page and returns the combined SVG.
func (s *Surface) Finish() ([]byte, error) {
	doc := documentData{}
	s.pages = s.pages[:0]

	for i, ops := range s.DisplayList.Pages {
		p := pageData{Number: i + 1, Size: s.Sizes[i], Offset: doc.Height, Ops: ops}
		if i > 0 {
			p.Offset += PageGap
		}

		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, "page", p); err != nil {
			return nil, fmt.Errorf("error rendering SVG page %d: %w", p.Number, err)
		}
		s.pages = append(s.pages, buf.Bytes())

		doc.Pages = append(doc.Pages, p)
		doc.Height = p.Offset + p.Size.Height
		if p.Size.Width > doc.Width {
			doc.Width = p.Size.Width
		}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "document", doc); err != nil {
		return nil, fmt.Errorf("error rendering SVG document: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Surface) ContentType() string {
	return ContentType
}

// PageSVGs returns one standalone SVG per page. It is filled by Finish.
func (s *Surface) PageSVGs() [][]byte {
	return s.pages
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fontFamily(f surface.Font) string {
	switch strings.ToLower(f.Family) {
	case "helvetica", "arial":
		return "Helvetica, Arial, sans-serif"
	case "times":
		return "Times, 'Times New Roman', serif"
	case "courier":
		return "Courier, 'Courier New', monospace"
	default:
		return template.HTMLEscapeString(f.Family)
	}
}

func dataURI(data []byte) string {
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

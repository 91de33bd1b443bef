// Package rastersurface implements surface.Surface as PNG previews.
//
// Text is drawn with the fixed basicfont face whatever the requested font,
// and measured with the same face so wrapped lines always fit their cells.
// Finish returns one PNG with all pages stacked; PageImages returns the
// pages as separate images.
package rastersurface

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF logo support
	_ "image/jpeg" // JPEG logo support
	"image/png"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gardar/shipdoc/pkg/surface"
)

// ContentType is the media type of the images produced by Surface.
const ContentType = "image/png"

// DefaultScale is the number of pixels per point.
const DefaultScale = 1.5

// pageGap is the gap between stacked pages, in pixels.
const pageGap = 16

var (
	paper  = color.White
	ink    = color.Black
	gutter = color.Gray{Y: 0xc0}
)

// Surface records primitives and rasterizes them in Finish.
type Surface struct {
	surface.DisplayList
	scale float64
	face  font.Face
	pages []image.Image
}

// New creates a raster surface with scale pixels per point. A scale of
// zero or less uses DefaultScale.
func New(scale float64) *Surface {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Surface{scale: scale, face: basicfont.Face7x13}
}

func (s *Surface) Line(x1, y1, x2, y2, width float64) {
	s.Append(surface.Op{Kind: surface.OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width})
}

func (s *Surface) Rect(x, y, w, h, width float64) {
	s.Append(surface.Op{Kind: surface.OpRect, X1: x, Y1: y, W: w, H: h, Width: width})
}

func (s *Surface) Text(x, y float64, text string, f surface.Font) {
	s.Append(surface.Op{Kind: surface.OpText, X1: x, Y1: y, Text: text, Font: f})
}

// Image decodes data and records the decoded image for drawing. Data that
// does not decode is rejected and nothing is recorded.
func (s *Surface) Image(data []byte, x, y, w, h float64) error {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	s.Append(surface.Op{Kind: surface.OpImage, X1: x, Y1: y, W: w, H: h, Data: data, Decoded: img})
	return nil
}

// MeasureText returns the width of text in the basicfont face, in points.
func (s *Surface) MeasureText(text string, _ surface.Font) float64 {
	return fixedToFloat(font.MeasureString(s.face, text)) / s.scale
}

// Finish rasterizes every page and returns them stacked in one PNG.
func (s *Surface) Finish() ([]byte, error) {
	s.pages = s.pages[:0]
	width, height := 0, 0
	for i, ops := range s.DisplayList.Pages {
		img := s.rasterize(s.Sizes[i], ops)
		s.pages = append(s.pages, img)

		b := img.Bounds()
		width = max(width, b.Dx())
		if i > 0 {
			height += pageGap
		}
		height += b.Dy()
	}
	if len(s.pages) == 0 {
		return nil, fmt.Errorf("no pages to rasterize")
	}

	sheet := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(gutter), image.Point{}, draw.Src)
	y := 0
	for _, p := range s.pages {
		b := p.Bounds()
		draw.Draw(sheet, image.Rect(0, y, b.Dx(), y+b.Dy()), p, b.Min, draw.Src)
		y += b.Dy() + pageGap
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, sheet); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Surface) ContentType() string {
	return ContentType
}

// PageImages returns the rasterized pages. It is filled by Finish.
func (s *Surface) PageImages() []image.Image {
	return s.pages
}

func (s *Surface) rasterize(size surface.PageSize, ops []surface.Op) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.px(size.Width), s.px(size.Height)))
	draw.Draw(img, img.Bounds(), image.NewUniform(paper), image.Point{}, draw.Src)

	for _, op := range ops {
		switch op.Kind {
		case surface.OpLine:
			s.line(img, op.X1, op.Y1, op.X2, op.Y2, op.Width)
		case surface.OpRect:
			s.line(img, op.X1, op.Y1, op.X1+op.W, op.Y1, op.Width)
			s.line(img, op.X1, op.Y1+op.H, op.X1+op.W, op.Y1+op.H, op.Width)
			s.line(img, op.X1, op.Y1, op.X1, op.Y1+op.H, op.Width)
			s.line(img, op.X1+op.W, op.Y1, op.X1+op.W, op.Y1+op.H, op.Width)
		case surface.OpText:
			d := font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(ink),
				Face: s.face,
				Dot:  fixed.P(s.px(op.X1), s.px(op.Y1)),
			}
			d.DrawString(op.Text)
		case surface.OpImage:
			if op.Decoded == nil {
				continue
			}
			src := op.Decoded
			dst := image.Rect(s.px(op.X1), s.px(op.Y1), s.px(op.X1+op.W), s.px(op.Y1+op.H))
			draw.ApproxBiLinear.Scale(img, dst, src, src.Bounds(), draw.Over, nil)
		}
	}
	return img
}

// line draws a straight line of the given stroke width. Axis-aligned lines
// are filled as rectangles; other lines are stepped pixel by pixel.
func (s *Surface) line(img *image.RGBA, x1, y1, x2, y2, width float64) {
	stroke := max(1, s.px(width))
	half := stroke / 2
	ax, ay, bx, by := s.px(x1), s.px(y1), s.px(x2), s.px(y2)

	if ax == bx || ay == by {
		r := image.Rect(min(ax, bx)-half, min(ay, by)-half, max(ax, bx)-half+stroke, max(ay, by)-half+stroke)
		draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(ink), image.Point{}, draw.Src)
		return
	}

	steps := max(abs(bx-ax), abs(by-ay))
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := ax + int(math.Round(t*float64(bx-ax)))
		y := ay + int(math.Round(t*float64(by-ay)))
		r := image.Rect(x-half, y-half, x-half+stroke, y-half+stroke)
		draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(ink), image.Point{}, draw.Src)
	}
}

func (s *Surface) px(v float64) int {
	return int(math.Round(v * s.scale))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

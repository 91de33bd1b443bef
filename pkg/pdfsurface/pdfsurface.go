// Package pdfsurface implements surface.Surface on top of fpdf.
//
// Text is drawn with the PDF core fonts, so strings are encoded to
// ISO-8859-1 before drawing and measuring; runes outside Latin-1 are
// replaced. Logos are registered from memory and an existing one-page PDF
// can be imported as stationery behind every page.
//
// Key Types:
//
// - Surface: The fpdf-backed drawing surface
// - Option: Functional options for New
// - Info: What Inspect found in a finished PDF
//
// Main Functions:
//
// - New: Creates a surface producing one PDF document
// - Metrics: A Measurer using the core font metrics without a document
// - Inspect: Validates a PDF and counts its pages
package pdfsurface

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	_ "image/gif"  // GIF logo support
	_ "image/jpeg" // JPEG logo support
	_ "image/png"  // PNG logo support
	"io"
	"strings"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/gardar/shipdoc/pkg/surface"
)

// ContentType is the media type of the documents produced by Surface.
const ContentType = "application/pdf"

// Epoch is the creation date written when none is set, so that equal
// input produces byte-identical documents.
var Epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Surface draws onto a single fpdf document.
type Surface struct {
	pdf *fpdf.Fpdf

	title      string
	created    time.Time
	stationery []byte
	importer   *gofpdi.Importer
	template   int

	images map[[sha1.Size]byte]string
	pages  int
}

// Option configures a Surface.
type Option func(*Surface)

// WithStationery draws the first page of the given PDF behind every page,
// scaled to the page size.
func WithStationery(pdf []byte) Option {
	return func(s *Surface) {
		s.stationery = pdf
	}
}

// WithCreationDate sets the creation and modification date of the document.
func WithCreationDate(t time.Time) Option {
	return func(s *Surface) {
		s.created = t
	}
}

// WithTitle sets the document title metadata.
func WithTitle(title string) Option {
	return func(s *Surface) {
		s.title = title
	}
}

// New creates a surface producing one PDF document in points.
func New(opts ...Option) *Surface {
	s := &Surface{
		created: Epoch,
		images:  make(map[[sha1.Size]byte]string),
	}
	for _, opt := range opts {
		opt(s)
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(s.created)
	pdf.SetModificationDate(s.created)
	pdf.SetCatalogSort(true)
	pdf.SetCreator("shipdoc", false)
	if s.title != "" {
		pdf.SetTitle(s.title, true)
	}
	s.pdf = pdf

	if len(s.stationery) > 0 {
		s.importer = gofpdi.NewImporter()
	}
	return s
}

// AddPage starts a page of the given size and draws the stationery.
func (s *Surface) AddPage(width, height float64) {
	s.pdf.AddPageFormat("P", fpdf.SizeType{Wd: width, Ht: height})
	s.pages++

	if s.importer == nil {
		return
	}
	if s.pages == 1 {
		rs := io.ReadSeeker(bytes.NewReader(s.stationery))
		s.template = s.importer.ImportPageFromStream(s.pdf, &rs, 1, "/MediaBox")
	}
	s.importer.UseImportedTemplate(s.pdf, s.template, 0, 0, width, height)
}

func (s *Surface) Line(x1, y1, x2, y2, width float64) {
	s.pdf.SetLineWidth(width)
	s.pdf.Line(x1, y1, x2, y2)
}

func (s *Surface) Rect(x, y, w, h, width float64) {
	s.pdf.SetLineWidth(width)
	s.pdf.Rect(x, y, w, h, "D")
}

func (s *Surface) Text(x, y float64, text string, font surface.Font) {
	s.setFont(font)
	s.pdf.Text(x, y, latin1(text))
}

// Image registers the encoded image once per distinct content and draws
// it into the box. Data that does not fully decode as a PNG, JPEG or GIF
// image is rejected without touching the page.
func (s *Surface) Image(data []byte, x, y, w, h float64) error {
	imageType, err := detectImageType(data)
	if err != nil {
		return err
	}
	opts := fpdf.ImageOptions{ReadDpi: false, ImageType: imageType}

	key := sha1.Sum(data)
	name, ok := s.images[key]
	if !ok {
		name = fmt.Sprintf("img%d", len(s.images))
		if err := s.register(name, opts, data); err != nil {
			return err
		}
		s.images[key] = name
	}

	s.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return nil
}

// register adds the image to the document. fpdf panics on some malformed
// streams, so a panic is reported as an error like any recorded failure.
func (s *Surface) register(name string, opts fpdf.ImageOptions, data []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.pdf.ClearError()
			err = fmt.Errorf("failed to register image: %v", r)
		}
	}()

	s.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if s.pdf.Err() {
		err := s.pdf.Error()
		s.pdf.ClearError()
		return fmt.Errorf("failed to register image: %w", err)
	}
	return nil
}

// MeasureText returns the width of text in the core font metrics.
func (s *Surface) MeasureText(text string, font surface.Font) float64 {
	s.setFont(font)
	return s.pdf.GetStringWidth(latin1(text))
}

// Finish closes the document and returns the PDF bytes, or the first error
// fpdf recorded while drawing.
func (s *Surface) Finish() ([]byte, error) {
	if s.pdf.Err() {
		return nil, fmt.Errorf("failed to draw PDF: %w", s.pdf.Error())
	}
	var buf bytes.Buffer
	if err := s.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Surface) ContentType() string {
	return ContentType
}

// PageCount returns the number of pages started so far.
func (s *Surface) PageCount() int {
	return s.pages
}

func (s *Surface) setFont(font surface.Font) {
	s.pdf.SetFont(font.Family, font.Style, font.Size)
}

// Metrics returns a Measurer using the PDF core font metrics, for backends
// that have no font metrics of their own.
func Metrics() surface.Measurer {
	pdf := fpdf.New("P", "pt", "A4", "")
	return surface.MeasurerFunc(func(text string, font surface.Font) float64 {
		pdf.SetFont(font.Family, font.Style, font.Size)
		return pdf.GetStringWidth(latin1(text))
	})
}

// detectImageType decodes the whole image and reports its format, so
// truncated data is caught before fpdf sees it.
func detectImageType(data []byte) (string, error) {
	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	return strings.ToUpper(format), nil
}

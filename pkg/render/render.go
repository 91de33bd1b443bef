// Package render wires the layout engine to a concrete backend. It is the
// shared entry point of the blgen and blserver commands.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gardar/shipdoc/pkg/bol"
	"github.com/gardar/shipdoc/pkg/layout"
	"github.com/gardar/shipdoc/pkg/pdfsurface"
	"github.com/gardar/shipdoc/pkg/rastersurface"
	"github.com/gardar/shipdoc/pkg/surface"
	"github.com/gardar/shipdoc/pkg/svgsurface"
)

// Format is an output format.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ErrUnknownFormat is returned for formats without a backend.
var ErrUnknownFormat = errors.New("unknown output format")

// ErrValidation is returned when a finished PDF fails inspection.
var ErrValidation = errors.New("PDF validation failed")

// ParseFormat parses a format name, defaulting to PDF when empty.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatPDF, nil
	case FormatPDF, FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Extension returns the file extension of the format, with the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Options select the backend and its resources.
type Options struct {
	Format     Format
	Layout     layout.Config
	Logo       []byte // Replaces the branch logo when set
	Stationery []byte // PDF drawn behind every page (PDF only)
	Scale      float64
	Validate   bool // Inspect the finished PDF with pdfcpu
}

// NewSurface creates the backend for opts.
func NewSurface(opts Options) (surface.Surface, error) {
	switch opts.Format {
	case FormatPDF, "":
		var pdfOpts []pdfsurface.Option
		if len(opts.Stationery) > 0 {
			pdfOpts = append(pdfOpts, pdfsurface.WithStationery(opts.Stationery))
		}
		return pdfsurface.New(pdfOpts...), nil
	case FormatSVG:
		return svgsurface.New(), nil
	case FormatPNG:
		return rastersurface.New(opts.Scale), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}

// Document renders in with the backend selected by opts.
func Document(in bol.DocumentInput, opts Options) (*layout.Document, error) {
	s, err := NewSurface(opts)
	if err != nil {
		return nil, err
	}

	if len(opts.Logo) > 0 {
		branch := bol.BranchInfo{}
		if in.Branch != nil {
			branch = *in.Branch
		}
		branch.Logo = opts.Logo
		in.Branch = &branch
	}

	doc, err := layout.Generate(in, s, opts.Layout)
	if err != nil {
		return nil, err
	}

	if opts.Validate && doc.ContentType == pdfsurface.ContentType {
		info, err := pdfsurface.Inspect(doc.Artifact)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		if info.Pages != doc.PageCount() {
			return nil, fmt.Errorf("%w: PDF has %d pages, layout produced %d",
				ErrValidation, info.Pages, doc.PageCount())
		}
	}
	return doc, nil
}

package layout

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/gardar/shipdoc/pkg/bol"
	"github.com/gardar/shipdoc/pkg/surface"
)

// Config holds the page geometry, fonts and texts of the document.
// All lengths are in points.
type Config struct {
	PageWidth  float64 `yaml:"page_width"`
	PageHeight float64 `yaml:"page_height"`
	Margin     float64 `yaml:"margin"`

	Fonts Fonts `yaml:"fonts"`

	LineHeight     float64 `yaml:"line_height"`     // Height of one value line
	LabelHeight    float64 `yaml:"label_height"`    // Height of one bold label line
	SmallHeight    float64 `yaml:"small_height"`    // Height of one small-font line
	SectionPadding float64 `yaml:"section_padding"` // Space below the last value line of a sub-section
	CellPadding    float64 `yaml:"cell_padding"`    // Horizontal text inset inside a cell
	BoxTrim        float64 `yaml:"box_trim"`        // Trimmed off the taller column when the two columns are reconciled
	PartyMinLines  int     `yaml:"party_min_lines"` // Value lines reserved for address blocks
	BorderWidth    float64 `yaml:"border_width"`

	LetterheadHeight float64 `yaml:"letterhead_height"`
	LogoSize         float64 `yaml:"logo_size"`
	BannerHeight     float64 `yaml:"banner_height"` // Continuation page banner above the page box
	FooterHeight     float64 `yaml:"footer_height"`
	SafetyMargin     float64 `yaml:"safety_margin"`
	EntryGap         float64 `yaml:"entry_gap"`

	// ColumnWidths are the fractions of the table width used by marks,
	// containers, description, gross weight and measurement.
	ColumnWidths [5]float64 `yaml:"column_widths"`

	Title         string         `yaml:"title"`
	Clause        string         `yaml:"clause"`
	DefaultBranch bol.BranchInfo `yaml:"default_branch"`

	Logger *slog.Logger `yaml:"-"` // Custom logger (nil = slog.Default())
}

// Fonts are the faces used on the document.
type Fonts struct {
	Title surface.Font `yaml:"title"`
	Name  surface.Font `yaml:"name"`  // Letterhead company name
	Label surface.Font `yaml:"label"` // Section labels and table headers
	Value surface.Font `yaml:"value"`
	Small surface.Font `yaml:"small"` // Letterhead address, clause text
}

// DefaultFonts are the standard Helvetica faces every backend supports.
var DefaultFonts = Fonts{
	Title: surface.Font{Family: "Helvetica", Style: "B", Size: 14},
	Name:  surface.Font{Family: "Helvetica", Style: "B", Size: 12},
	Label: surface.Font{Family: "Helvetica", Style: "B", Size: 6.5},
	Value: surface.Font{Family: "Helvetica", Size: 8},
	Small: surface.Font{Family: "Helvetica", Size: 6.5},
}

// DefaultClause is the carrier's receipt printed in the right column.
const DefaultClause = "RECEIVED by the Carrier from the Shipper in apparent good order and condition " +
	"unless otherwise noted herein, the total number or quantity of Containers or other packages or units " +
	"indicated above stated by the Shipper to comprise the Goods specified above, for Carriage subject to all " +
	"the terms hereof from the Place of Receipt or the Port of Loading, whichever is applicable, to the Port of " +
	"Discharge or the Place of Delivery, whichever is applicable. One original Bill of Lading, duly endorsed, " +
	"must be surrendered in exchange for the Goods or delivery order."

// DefaultConfig returns an A4 portrait layout with sensible defaults.
func DefaultConfig() Config {
	return Config{
		PageWidth:        595.28,
		PageHeight:       841.89,
		Margin:           24,
		Fonts:            DefaultFonts,
		LineHeight:       10,
		LabelHeight:      9,
		SmallHeight:      8,
		SectionPadding:   4,
		CellPadding:      3,
		BoxTrim:          2,
		PartyMinLines:    3,
		BorderWidth:      0.6,
		LetterheadHeight: 72,
		LogoSize:         54,
		BannerHeight:     16,
		FooterHeight:     112,
		SafetyMargin:     4,
		EntryGap:         6,
		ColumnWidths:     [5]float64{0.18, 0.24, 0.34, 0.12, 0.12},
		Title:            bol.DefaultTitle,
		Clause:           DefaultClause,
	}
}

// Validate checks that the geometry can hold a document.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"page_width", c.PageWidth},
		{"page_height", c.PageHeight},
		{"line_height", c.LineHeight},
		{"label_height", c.LabelHeight},
		{"small_height", c.SmallHeight},
		{"footer_height", c.FooterHeight},
		{"letterhead_height", c.LetterheadHeight},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}
	if c.Margin < 0 || c.SectionPadding < 0 || c.CellPadding < 0 || c.SafetyMargin < 0 || c.EntryGap < 0 || c.BannerHeight < 0 {
		return fmt.Errorf("%w: margins, paddings and gaps must not be negative", ErrInvalidConfig)
	}
	if c.BoxTrim < 0 || c.BoxTrim > c.SectionPadding {
		return fmt.Errorf("%w: box_trim must be between 0 and section_padding (%v), got %v",
			ErrInvalidConfig, c.SectionPadding, c.BoxTrim)
	}
	if 2*c.Margin >= c.PageWidth || 2*c.Margin >= c.PageHeight {
		return fmt.Errorf("%w: margins leave no printable area", ErrInvalidConfig)
	}

	var sum float64
	for i, w := range c.ColumnWidths {
		if w <= 0 {
			return fmt.Errorf("%w: column width %d must be positive", ErrInvalidConfig, i+1)
		}
		sum += w
	}
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("%w: column widths must add up to 1, got %v", ErrInvalidConfig, sum)
	}

	for _, f := range []surface.Font{c.Fonts.Title, c.Fonts.Name, c.Fonts.Label, c.Fonts.Value, c.Fonts.Small} {
		if f.Family == "" || f.Size <= 0 {
			return fmt.Errorf("%w: font %+v needs a family and a positive size", ErrInvalidConfig, f)
		}
	}

	if c.continuationBudget() < c.LineHeight {
		return fmt.Errorf("%w: continuation pages have no room for a single line", ErrInvalidConfig)
	}
	return nil
}

// Page box edges.
func (c Config) left() float64   { return c.Margin }
func (c Config) right() float64  { return c.PageWidth - c.Margin }
func (c Config) mid() float64    { return (c.left() + c.right()) / 2 }
func (c Config) top() float64    { return c.Margin }
func (c Config) bottom() float64 { return c.PageHeight - c.Margin }
func (c Config) width() float64  { return c.right() - c.left() }

// footerTop is where the footer block starts on the first page.
func (c Config) footerTop() float64 { return c.bottom() - c.FooterHeight }

// continuationTop is the top of the page box on continuation pages.
func (c Config) continuationTop() float64 { return c.top() + c.BannerHeight }

// continuationBudget is a lower bound of the body height on continuation
// pages, assuming a table header of at most three label lines.
func (c Config) continuationBudget() float64 {
	return c.bottom() - c.continuationTop() - 3*c.LabelHeight - c.SectionPadding - c.SafetyMargin
}

// columnEdges returns the six x positions bounding the five table columns.
func (c Config) columnEdges() [6]float64 {
	var edges [6]float64
	x := c.left()
	edges[0] = x
	for i, w := range c.ColumnWidths {
		x += w * c.width()
		edges[i+1] = x
	}
	edges[5] = c.right()
	return edges
}

// getLogger returns the configured logger, defaulting to slog.Default().
func getLogger(c Config) *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

package layout

import (
	"math"
	"strings"

	"github.com/gardar/shipdoc/pkg/bol"
	"github.com/gardar/shipdoc/pkg/surface"
)

// Column is the horizontal slot a section occupies.
type Column int

const (
	ColumnLeft Column = iota
	ColumnRight
	ColumnFull
)

func (c Column) String() string {
	switch c {
	case ColumnLeft:
		return "left"
	case ColumnRight:
		return "right"
	default:
		return "full"
	}
}

// Section is one bordered block of the fixed layout. Adjacent sections of a
// column share their border: the EndY of one is the StartY of the next.
type Section struct {
	Name   string
	Column Column
	StartY float64
	EndY   float64
	Left   float64
	Right  float64
	Splits []float64 // x positions of the sub-column separators
	Border bool      // Whether the bottom border is drawn by the section itself
}

// field is one labelled value inside a section.
type field struct {
	label  string
	values []string
}

// block describes a section before it is laid out. More than one field
// makes a row of equal-width sub-columns.
type block struct {
	name       string
	fields     []field
	minLines   int
	font       surface.Font
	lineHeight float64
}

func (e *engine) valueBlock(name string, fields ...field) block {
	return block{name: name, fields: fields, font: e.cfg.Fonts.Value, lineHeight: e.cfg.LineHeight}
}

func (e *engine) partyBlock(name string, lines []string) block {
	b := e.valueBlock(name, field{label: name, values: lines})
	b.minLines = e.cfg.PartyMinLines
	return b
}

// layoutColumn draws the labels and values of blocks stacked downwards from
// top between left and right, and returns one section per block. Borders
// are not drawn here; the last section is left open for reconciliation.
func (e *engine) layoutColumn(col Column, tag string, left, right, top float64, blocks []block) []Section {
	cfg := e.cfg
	sections := make([]Section, 0, len(blocks))
	y := top
	for i, b := range blocks {
		n := len(b.fields)
		subWidth := (right - left) / float64(n)
		lines := b.minLines

		var splits []float64
		for j, f := range b.fields {
			x := left + float64(j)*subWidth
			if j > 0 {
				splits = append(splits, x)
			}
			e.r.tag = tag
			e.r.lines(x+cfg.CellPadding, y, []string{f.label}, cfg.Fonts.Label, cfg.LabelHeight)

			values := wrapAll(e.r.s, f.values, b.font, subWidth-2*cfg.CellPadding)
			e.r.lines(x+cfg.CellPadding, y+cfg.LabelHeight, values, b.font, b.lineHeight)
			if len(values) > lines {
				lines = len(values)
			}
		}

		h := cfg.LabelHeight + float64(lines)*b.lineHeight + cfg.SectionPadding
		sections = append(sections, Section{
			Name:   b.name,
			Column: col,
			StartY: y,
			EndY:   y + h,
			Left:   left,
			Right:  right,
			Splits: splits,
			Border: i < len(blocks)-1,
		})
		y += h
	}
	return sections
}

// drawSectionBorders draws each section's own bottom border and its
// sub-column separators, which always run between the section's top and
// bottom borders.
func (e *engine) drawSectionBorders(sections []Section, tag string) {
	e.r.tag = tag
	for _, s := range sections {
		if s.Border {
			e.r.line(s.Left, s.EndY, s.Right, s.EndY)
		}
		for _, x := range s.Splits {
			e.r.line(x, s.StartY, x, s.EndY)
		}
	}
}

// drawLetterhead draws the branch letterhead and the document title above
// the fixed box and returns the y where the box starts.
func (e *engine) drawLetterhead(m *bol.Model) float64 {
	cfg := e.cfg
	fonts := cfg.Fonts
	top := cfg.top()
	x := cfg.left()
	b := m.Branch

	e.r.tag = TagLetterhead
	if len(b.Logo) > 0 && cfg.LogoSize > 0 {
		if err := e.r.image(b.Logo, x, top, cfg.LogoSize, cfg.LogoSize); err != nil {
			e.log.Warn("Branch logo could not be drawn, continuing without it", "error", err)
		} else {
			x += cfg.LogoSize + 2*cfg.CellPadding
		}
	}

	titleHeight := fonts.Title.Size * 1.3
	docLine := ""
	if m.DocumentNo != "" {
		docLine = "B/L NO. " + m.DocumentNo
	}
	titleWidth := math.Max(e.r.measure(m.Title, fonts.Title), e.r.measure(docLine, fonts.Value))
	e.r.textRight(cfg.right(), baseline(top, titleHeight, fonts.Title), m.Title, fonts.Title)
	e.r.textRight(cfg.right(), baseline(top+titleHeight, cfg.LineHeight, fonts.Value), docLine, fonts.Value)

	width := cfg.right() - titleWidth - 4*cfg.CellPadding - x
	limit := top + cfg.LetterheadHeight
	y := top

	nameHeight := fonts.Name.Size * 1.2
	for _, l := range Wrap(e.r.s, b.Name, fonts.Name, width) {
		if y+nameHeight > limit {
			break
		}
		e.r.lines(x, y, []string{l}, fonts.Name, nameHeight)
		y += nameHeight
	}

	var details []string
	details = append(details, Wrap(e.r.s, b.Address, fonts.Small, width)...)
	var contact []string
	if b.Phone != "" {
		contact = append(contact, "TEL: "+b.Phone)
	}
	if b.Email != "" {
		contact = append(contact, "EMAIL: "+b.Email)
	}
	details = append(details, Wrap(e.r.s, strings.Join(contact, "   "), fonts.Small, width)...)
	details = append(details, Wrap(e.r.s, strings.Join(b.TaxIDs, "   "), fonts.Small, width)...)

	for i, l := range details {
		if y+cfg.SmallHeight > limit {
			e.log.Debug("Letterhead truncated", "droppedLines", len(details)-i)
			break
		}
		e.r.lines(x, y, []string{l}, fonts.Small, cfg.SmallHeight)
		y += cfg.SmallHeight
	}

	return limit
}

// layoutTopBox lays out the two-column box of fixed sections starting at
// boxTop, reconciles both columns to one bottom edge and draws all borders.
// It returns the reconciled bottom edge of the box.
func (e *engine) layoutTopBox(m *bol.Model, boxTop float64) float64 {
	cfg := e.cfg

	left := e.layoutColumn(ColumnLeft, TagSection, cfg.left(), cfg.mid(), boxTop, []block{
		e.partyBlock("SHIPPER / EXPORTER", m.Shipper),
		e.partyBlock("CONSIGNEE", m.Consignee),
		e.partyBlock("NOTIFY PARTY", m.Notify),
		e.valueBlock("PRE-CARRIAGE",
			field{"PRE-CARRIAGE BY", []string{m.PreCarriage}},
			field{"PLACE OF RECEIPT", []string{m.PlaceOfReceipt}}),
		e.valueBlock("OCEAN CARRIAGE",
			field{"VESSEL / VOYAGE", []string{m.VesselVoyage}},
			field{"PORT OF LOADING", []string{m.PortOfLoading}}),
		e.valueBlock("ON-CARRIAGE",
			field{"PORT OF DISCHARGE", []string{m.PortOfDischarge}},
			field{"PLACE OF DELIVERY", []string{m.PlaceOfDelivery}}),
	})

	var refs []string
	if m.BookingNo != "" {
		refs = append(refs, "BOOKING NO: "+m.BookingNo)
	}
	if m.ShipperRef != "" {
		refs = append(refs, "SHIPPER REF: "+m.ShipperRef)
	}
	clause := block{
		name:       "CARRIER'S RECEIPT",
		fields:     []field{{"CARRIER'S RECEIPT", []string{cfg.Clause}}},
		font:       cfg.Fonts.Small,
		lineHeight: cfg.SmallHeight,
	}
	right := e.layoutColumn(ColumnRight, TagSection, cfg.mid(), cfg.right(), boxTop, []block{
		e.valueBlock("DOCUMENT",
			field{"B/L NO.", []string{m.DocumentNo}},
			field{"JOB NO.", []string{m.JobNo}},
			field{"SHIPPED ON BOARD", []string{m.OnBoardDate}}),
		e.valueBlock("EXPORT REFERENCES", field{"EXPORT REFERENCES", refs}),
		e.partyBlock("DELIVERY AGENT", m.DeliveryAgent),
		e.valueBlock("ORIGIN", field{"POINT AND COUNTRY OF ORIGIN", []string{m.Origin}}),
		clause,
	})

	boxBottom := reconcile(left, right, cfg.BoxTrim)

	e.drawSectionBorders(left, TagBorder)
	e.drawSectionBorders(right, TagBorder)
	e.r.tag = TagBorder
	e.r.rect(cfg.left(), boxTop, cfg.width(), boxBottom-boxTop)
	e.r.line(cfg.mid(), boxTop, cfg.mid(), boxBottom)

	e.sections = append(e.sections, left...)
	e.sections = append(e.sections, right...)
	return boxBottom
}

// reconcile aligns the last sections of two columns on one shared bottom
// edge, max(leftEnd, rightEnd) - trim, and returns it. The last sections do
// not draw their own border there; the box outline does.
func reconcile(left, right []Section, trim float64) float64 {
	end := 0.0
	for _, col := range [][]Section{left, right} {
		if n := len(col); n > 0 && col[n-1].EndY > end {
			end = col[n-1].EndY
		}
	}
	bottom := end - trim
	for _, col := range [][]Section{left, right} {
		if n := len(col); n > 0 {
			col[n-1].EndY = bottom
			col[n-1].Border = false
		}
	}
	return bottom
}

package layout

import (
	"fmt"
	"math"

	"github.com/gardar/shipdoc/pkg/bol"
)

// TableHeaders are the five column titles of the cargo table, repeated on
// every page.
var TableHeaders = [5]string{
	"MARKS AND NUMBERS",
	"CONTAINER / SEAL NO. / NO. OF PACKAGES",
	"DESCRIPTION OF GOODS",
	"GROSS WEIGHT",
	"MEASUREMENT",
}

// Table column indices.
const (
	colMarks = iota
	colContainers
	colDescription
	colWeight
	colMeasurement
)

// tableEntry is a container entry wrapped to the containers column.
type tableEntry struct {
	index  int
	lines  []string
	height float64
}

// table paginates container entries and description lines. Both columns
// advance independently under the same vertical budget on every page.
type table struct {
	e            *engine
	edges        [6]float64
	header       [5][]string
	headerHeight float64

	entries   []tableEntry
	desc      []string
	nextEntry int
	nextDesc  int
}

func newTable(e *engine, m *bol.Model) (*table, error) {
	cfg := e.cfg
	t := &table{e: e, edges: cfg.columnEdges()}

	maxHeader := 1
	for i, h := range TableHeaders {
		t.header[i] = Wrap(e.r.s, h, cfg.Fonts.Label, t.innerWidth(i))
		if len(t.header[i]) > maxHeader {
			maxHeader = len(t.header[i])
		}
	}
	t.headerHeight = float64(maxHeader)*cfg.LabelHeight + cfg.SectionPadding

	continuation := PageState{BodyTop: cfg.continuationTop() + t.headerHeight, Bottom: cfg.bottom()}
	limit := continuation.budget(cfg.SafetyMargin)
	if limit < cfg.LineHeight {
		return nil, fmt.Errorf("%w: continuation pages have %.1fpt of body for %.1fpt lines", ErrInvalidConfig, limit, cfg.LineHeight)
	}

	t.entries = make([]tableEntry, 0, len(m.Entries))
	for i, entry := range m.Entries {
		lines := wrapAll(e.r.s, entry.Lines, cfg.Fonts.Value, t.innerWidth(colContainers))
		te := tableEntry{
			index:  i,
			lines:  lines,
			height: bol.ContainerEntry{Lines: lines}.Height(cfg.LineHeight, cfg.EntryGap),
		}
		if te.height > limit {
			return nil, fmt.Errorf("%w: entry %d needs %.1fpt, a page holds %.1fpt", ErrEntryTooTall, i+1, te.height, limit)
		}
		t.entries = append(t.entries, te)
	}

	t.desc = Wrap(e.r.s, m.Description, cfg.Fonts.Value, t.innerWidth(colDescription))
	return t, nil
}

func (t *table) innerWidth(col int) float64 {
	return t.edges[col+1] - t.edges[col] - 2*t.e.cfg.CellPadding
}

// done reports whether every entry and description line has been drawn.
func (t *table) done() bool {
	return t.nextEntry >= len(t.entries) && t.nextDesc >= len(t.desc)
}

// drawHeader draws the five column headers with their top edge at top and
// returns the state with both column cursors at the body top.
func (t *table) drawHeader(ps PageState, top float64) PageState {
	cfg := t.e.cfg
	r := t.e.r

	r.tag = TagHeader
	bottom := top + t.headerHeight
	for i, lines := range t.header {
		r.lines(t.edges[i]+cfg.CellPadding, top+cfg.SectionPadding/2, lines, cfg.Fonts.Label, cfg.LabelHeight)
	}
	r.line(cfg.left(), bottom, cfg.right(), bottom)
	for _, x := range t.edges[1:5] {
		r.line(x, top, x, bottom)
	}

	ps.HeaderTop = top
	ps.BodyTop = bottom
	ps.EntryY = bottom
	ps.DescY = bottom
	return ps
}

// drawAggregates writes the document-level single values (marks, gross
// weight, measurement) once at the top of the first page's body.
func (t *table) drawAggregates(ps PageState, m *bol.Model) PageState {
	cfg := t.e.cfg
	r := t.e.r
	maxLines := fitLines(math.MaxInt32, cfg.LineHeight, ps.budget(cfg.SafetyMargin))

	r.tag = TagAggregate
	for _, c := range []struct {
		col  int
		text string
	}{
		{colMarks, m.Marks},
		{colWeight, m.GrossWeight},
		{colMeasurement, m.Measurement},
	} {
		lines := Wrap(r.s, c.text, cfg.Fonts.Value, t.innerWidth(c.col))
		if len(lines) > maxLines {
			t.e.log.Warn("Column text truncated to the first page", "column", TableHeaders[c.col],
				"lines", len(lines), "kept", maxLines)
			lines = lines[:maxLines]
		}
		r.lines(t.edges[c.col]+cfg.CellPadding, ps.BodyTop, lines, cfg.Fonts.Value, cfg.LineHeight)
	}
	return ps
}

// fill draws as many remaining entries and description lines as fit on the
// current page. Each column stops at its own first item that does not fit.
func (t *table) fill(ps PageState) PageState {
	cfg := t.e.cfg
	r := t.e.r
	page := r.page()
	budget := ps.budget(cfg.SafetyMargin)

	n := fitEntries(t.entries[t.nextEntry:], budget)
	r.tag = TagEntry
	for _, en := range t.entries[t.nextEntry : t.nextEntry+n] {
		r.lines(t.edges[colContainers]+cfg.CellPadding, ps.EntryY, en.lines, cfg.Fonts.Value, cfg.LineHeight)
		ps.EntryY += en.height
		page.Entries = append(page.Entries, en.index)
	}
	t.nextEntry += n

	k := fitLines(len(t.desc)-t.nextDesc, cfg.LineHeight, budget)
	r.tag = TagDescription
	r.lines(t.edges[colDescription]+cfg.CellPadding, ps.DescY, t.desc[t.nextDesc:t.nextDesc+k], cfg.Fonts.Value, cfg.LineHeight)
	ps.DescY += float64(k) * cfg.LineHeight
	page.DescriptionLines += k
	t.nextDesc += k

	return ps
}

// closePage draws the column separators of the page being closed, from its
// header bottom down to its own body bottom, and stores the page geometry.
func (t *table) closePage(ps PageState) {
	cfg := t.e.cfg
	r := t.e.r

	r.tag = TagSeparator
	for _, x := range t.edges[1:5] {
		r.line(x, ps.BodyTop, x, ps.Bottom)
	}
	if ps.Number == 1 {
		r.tag = TagBorder
		r.line(cfg.left(), ps.HeaderTop, cfg.left(), ps.Bottom)
		r.line(cfg.right(), ps.HeaderTop, cfg.right(), ps.Bottom)
	}

	page := r.page()
	page.HeaderTop = ps.HeaderTop
	page.BodyTop = ps.BodyTop
	page.Bottom = ps.Bottom
}

// fitEntries counts how many leading entries fit in budget, stopping at the
// first one that does not.
func fitEntries(entries []tableEntry, budget float64) int {
	used := 0.0
	for i, e := range entries {
		if used+e.height > budget {
			return i
		}
		used += e.height
	}
	return len(entries)
}

// fitLines counts how many of remaining lines fit in budget.
func fitLines(remaining int, lineHeight, budget float64) int {
	if remaining <= 0 || budget < lineHeight {
		return 0
	}
	n := int(math.Floor(budget/lineHeight + 1e-9))
	if n > remaining {
		return remaining
	}
	return n
}

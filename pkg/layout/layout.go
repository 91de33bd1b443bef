// Package layout lays out a House Bill of Lading on fixed-size portrait
// pages: the letterhead, the two-column box of bordered sections, the
// five-column cargo table split across as many pages as needed, and the
// footer on the first page. Drawing goes through a surface.Surface, so the
// same layout feeds every backend.
package layout

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gardar/shipdoc/pkg/bol"
	"github.com/gardar/shipdoc/pkg/surface"
)

var (
	// ErrInvalidConfig is returned when the page geometry cannot hold a document.
	ErrInvalidConfig = errors.New("invalid layout config")
	// ErrEntryTooTall is returned when a container entry does not fit on an
	// empty continuation page.
	ErrEntryTooTall = errors.New("container entry taller than a page")
	// ErrOverflow is returned when the fixed sections leave no room for the
	// table header above the footer of the first page.
	ErrOverflow = errors.New("fixed sections overflow the first page")
	// ErrRender wraps every failure of the drawing backend.
	ErrRender = errors.New("render failed")
)

// Document is a finished, paginated document.
type Document struct {
	Pages       []Page
	Sections    []Section // Fixed sections of the first page, box and footer
	Artifact    []byte    // Output of the surface
	ContentType string
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// engine carries the state of one Generate call.
type engine struct {
	cfg      Config
	r        *renderer
	log      *slog.Logger
	sections []Section
}

// Generate renders in onto s and returns the paginated document. The input
// is validated before anything is drawn. Backend panics are recovered and
// returned as ErrRender; no partial document is returned on error.
func Generate(in bol.DocumentInput, s surface.Surface, cfg Config) (doc *Document, err error) {
	if s == nil {
		return nil, fmt.Errorf("%w: surface is nil", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	log := getLogger(cfg)
	m, err := bol.Build(in, bol.Options{Title: cfg.Title, DefaultBranch: cfg.DefaultBranch, Logger: log})
	if err != nil {
		return nil, err
	}

	defer func() {
		if p := recover(); p != nil {
			log.Error("Rendering panicked", "document", m.DocumentNo, "panic", p)
			doc = nil
			err = fmt.Errorf("%w: %v", ErrRender, p)
		}
	}()

	e := &engine{cfg: cfg, r: newRenderer(s, cfg), log: log}
	log.Debug("Generating document", "document", m.DocumentNo, "entries", len(m.Entries))

	pages, err := e.paginate(m)
	if err != nil {
		return nil, err
	}

	out, err := s.Finish()
	if err != nil {
		log.Error("Failed to finish document", "document", m.DocumentNo, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	log.Info("Generated document", "document", m.DocumentNo, "pages", len(pages), "bytes", len(out))
	return &Document{
		Pages:       pages,
		Sections:    e.sections,
		Artifact:    out,
		ContentType: s.ContentType(),
	}, nil
}

// paginate draws every page and returns them. It is the only place pages
// are created.
func (e *engine) paginate(m *bol.Model) ([]Page, error) {
	cfg := e.cfg

	e.r.addPage()
	boxTop := e.drawLetterhead(m)
	boxBottom := e.layoutTopBox(m, boxTop)

	t, err := newTable(e, m)
	if err != nil {
		return nil, err
	}
	if boxBottom+t.headerHeight > cfg.footerTop() {
		return nil, fmt.Errorf("%w: box ends at %.1fpt, footer starts at %.1fpt",
			ErrOverflow, boxBottom, cfg.footerTop())
	}
	e.drawFooter(m, cfg.footerTop())

	ps := PageState{Number: 1, Top: boxTop, Bottom: cfg.footerTop()}
	ps = t.drawHeader(ps, boxBottom)
	ps = t.drawAggregates(ps, m)
	ps = t.fill(ps)

	for !t.done() {
		t.closePage(ps)
		entry, desc := t.nextEntry, t.nextDesc

		ps = e.continuationPage(m, ps.Number+1)
		ps = t.drawHeader(ps, ps.Top)
		ps = t.fill(ps)

		if t.nextEntry == entry && t.nextDesc == desc {
			return nil, fmt.Errorf("%w: page %d made no progress", ErrEntryTooTall, ps.Number)
		}
	}
	t.closePage(ps)

	return e.r.pages, nil
}

// continuationPage starts page number n with its banner and page box and
// returns a fresh state for it.
func (e *engine) continuationPage(m *bol.Model, n int) PageState {
	cfg := e.cfg
	e.r.addPage()

	title := m.Title
	if m.DocumentNo != "" {
		title += " NO. " + m.DocumentNo
	}
	title += " - CONTINUATION SHEET"

	e.r.tag = TagBanner
	y := baseline(cfg.top(), cfg.BannerHeight, cfg.Fonts.Label)
	e.r.text(cfg.left(), y, strings.ToUpper(title), cfg.Fonts.Label)
	e.r.textRight(cfg.right(), y, fmt.Sprintf("PAGE %d", n), cfg.Fonts.Label)

	e.r.tag = TagBorder
	top := cfg.continuationTop()
	e.r.rect(cfg.left(), top, cfg.width(), cfg.bottom()-top)

	e.log.Debug("Continuation page", "page", n)
	return PageState{Number: n, Top: top, Bottom: cfg.bottom()}
}

package layout

import (
	"strings"

	"github.com/gardar/shipdoc/pkg/bol"
)

// drawFooter draws the freight and signatory block between top and the
// bottom margin of the first page.
func (e *engine) drawFooter(m *bol.Model, top float64) {
	cfg := e.cfg
	bottom := cfg.bottom()

	freight := ""
	if m.FreightTerm != "" {
		freight = "FREIGHT " + m.FreightTerm
	}
	var issue []string
	for _, s := range []string{m.PlaceOfIssue, m.IssueDate} {
		if s != "" {
			issue = append(issue, s)
		}
	}

	charges := e.valueBlock("FREIGHT",
		field{"TOTAL NO. OF PACKAGES", []string{m.TotalPackages}},
		field{"FREIGHT AND CHARGES", []string{freight}},
		field{"FREIGHT PAYABLE AT", []string{m.FreightPayableAt}},
		field{"NO. OF ORIGINAL B/L", []string{m.Originals}})
	signatory := e.valueBlock("SIGNATORY",
		field{"PLACE AND DATE OF ISSUE", []string{strings.Join(issue, ", ")}},
		field{"SIGNED FOR THE CARRIER", []string{"FOR AND ON BEHALF OF", m.Branch.Name, "AS AGENT FOR THE CARRIER"}})

	sections := e.layoutColumn(ColumnFull, TagFooter, cfg.left(), cfg.right(), top, []block{charges, signatory})
	last := &sections[len(sections)-1]
	if last.EndY > bottom {
		e.log.Warn("Footer content exceeds the footer block", "needed", last.EndY-top, "height", cfg.FooterHeight)
	}
	last.EndY = bottom

	e.r.tag = TagFooter
	e.r.rect(cfg.left(), top, cfg.width(), bottom-top)
	sig := cfg.mid() + cfg.CellPadding
	e.r.line(sig, bottom-cfg.LabelHeight-cfg.SectionPadding, cfg.right()-cfg.CellPadding, bottom-cfg.LabelHeight-cfg.SectionPadding)
	e.r.lines(sig, bottom-cfg.LabelHeight-cfg.SectionPadding/2, []string{"AUTHORISED SIGNATORY"}, cfg.Fonts.Label, cfg.LabelHeight)
	e.drawSectionBorders(sections, TagFooter)

	e.sections = append(e.sections, sections...)
	e.r.page().Footer = true
}

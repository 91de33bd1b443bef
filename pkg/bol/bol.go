// Package bol builds the display-ready model of a House Bill of Lading
// from the flat job, house and branch records of the forwarding system.
//
// The builder never fails on data gaps: missing fields become empty strings
// or documented defaults, unmatched container joins leave blanks, and
// invalid dates render empty. Only a missing house record is an error.
//
// Key Types:
//
// - DocumentInput: Job, house, branch and country records for one document
// - Record: A loosely typed cargo or container row
// - Model: The render-ready field values
// - ContainerEntry: One container or cargo line of the table body
//
// Main Functions:
//
// - Build: Normalizes a DocumentInput into a Model
// - ResolveBranch: Fills letterhead fields from defaults
// - JoinContainerMeta: Joins container rows with container master data
// - FormatDate: Formats dates as DD-MON-YY
// - SumField: Sums a named numeric field across records
package bol

import (
	"fmt"
	"log/slog"
	"strings"
)

// Documented fallbacks for absent fields.
const (
	DefaultTitle            = "BILL OF LADING"
	DefaultFreightPayableAt = "DESTINATION"
	DefaultFreightTerm      = "PREPAID"
	DefaultOriginals        = "THREE (3)"
)

// Options tune the builder.
type Options struct {
	Title         string     // Document title, DefaultTitle if empty
	DefaultBranch BranchInfo // Letterhead used for fields the input lacks
	Logger        *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// logGaps reports data gaps at debug level. None of them stop the build.
func logGaps(log *slog.Logger, h *House, meta []Record) {
	doc := strings.TrimSpace(h.HouseNo)
	for _, no := range unmatchedContainers(h.Containers, meta) {
		log.Debug("Container has no master data", "document", doc, "container", no)
	}
	for _, f := range []struct{ name, value string }{
		{"freight_payable_at", h.FreightPayableAt},
		{"freight_term", h.FreightTerm},
		{"originals", h.Originals},
	} {
		if strings.TrimSpace(f.value) == "" {
			log.Debug("Field missing, using default", "document", doc, "field", f.name)
		}
	}
	if h.IssueDate != "" && FormatDate(h.IssueDate) == "" {
		log.Debug("Unparseable date left blank", "document", doc, "field", "issue_date", "value", h.IssueDate)
	}
}

// Build normalizes the input records into a Model.
func Build(in DocumentInput, opts Options) (*Model, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	h := in.House
	j := in.Job

	branch := ResolveBranch(in.Branch, opts.DefaultBranch)
	pol := firstNonEmpty(h.PortOfLoading, j.PortOfLoading)

	m := &Model{
		Title:  firstNonEmpty(opts.Title, DefaultTitle),
		Branch: branch,

		DocumentNo:  strings.TrimSpace(h.HouseNo),
		JobNo:       strings.TrimSpace(j.JobNo),
		BookingNo:   strings.TrimSpace(h.BookingNo),
		ShipperRef:  strings.TrimSpace(h.ShipperRef),
		OnBoardDate: FormatDate(firstNonEmpty(h.OnBoardDate, j.ETD)),

		Shipper:       h.Shipper.Lines(),
		Consignee:     h.Consignee.Lines(),
		Notify:        h.Notify.Lines(),
		DeliveryAgent: h.DeliveryAgent.Lines(),

		PreCarriage:     firstNonEmpty(h.PreCarriage, j.PreCarriage),
		PlaceOfReceipt:  firstNonEmpty(h.PlaceOfReceipt, j.PlaceOfReceipt),
		VesselVoyage:    VesselVoyage(j.Vessel, j.Voyage),
		PortOfLoading:   pol,
		PortOfDischarge: firstNonEmpty(h.PortOfDischarge, j.PortOfDischarge),
		PlaceOfDelivery: firstNonEmpty(h.PlaceOfDelivery, j.PlaceOfDelivery),
		Origin:          countryName(in.Country),

		Marks:       PlainText(h.Marks),
		Description: PlainText(h.Description),
		Entries:     BuildEntries(h.Containers, h.Cargo, in.ContainerMeta),

		FreightPayableAt: firstNonEmpty(h.FreightPayableAt, DefaultFreightPayableAt),
		FreightTerm:      strings.ToUpper(firstNonEmpty(h.FreightTerm, DefaultFreightTerm)),
		Originals:        firstNonEmpty(h.Originals, DefaultOriginals),
		PlaceOfIssue:     firstNonEmpty(h.PlaceOfIssue, branch.City, pol),
		IssueDate:        FormatDate(h.IssueDate),
	}

	logGaps(opts.logger(), h, in.ContainerMeta)

	totals := h.Cargo
	if len(totals) == 0 {
		totals = h.Containers
	}
	if len(totals) > 0 {
		m.TotalPackages = formatCount(SumField(totals, FieldPackages))
		m.GrossWeight = formatQuantity(SumField(totals, FieldGrossWeight), 3) + " KGS"
		m.Measurement = formatQuantity(SumField(totals, FieldVolume), 3) + " CBM"
	}

	return m, nil
}

// VesselVoyage combines vessel name and voyage number into one string.
func VesselVoyage(vessel, voyage string) string {
	vessel = cleanLine(vessel)
	voyage = cleanLine(voyage)
	switch {
	case vessel == "":
		return voyage
	case voyage == "":
		return vessel
	default:
		return fmt.Sprintf("%s V.%s", vessel, voyage)
	}
}

func countryName(c *Country) string {
	if c == nil {
		return ""
	}
	return strings.ToUpper(firstNonEmpty(c.Name, c.Code))
}

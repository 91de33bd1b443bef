package bol

import (
	"errors"
)

// ErrMissingHouse is returned when a DocumentInput carries no house record.
var ErrMissingHouse = errors.New("house record is required")

// DocumentInput is everything needed to issue one House Bill of Lading.
// It is assembled by the caller and read-only to the engine.
type DocumentInput struct {
	Job           Job         `yaml:"job" json:"job"`
	House         *House      `yaml:"house" json:"house"`
	Branch        *BranchInfo `yaml:"branch" json:"branch"`
	Country       *Country    `yaml:"country" json:"country"`
	ContainerMeta []Record    `yaml:"container_meta" json:"container_meta"` // Container master data keyed by container_no
}

// Validate checks the input shape before any drawing starts.
func (in DocumentInput) Validate() error {
	if in.House == nil {
		return ErrMissingHouse
	}
	return nil
}

// Job is the transport job (master shipment) the house belongs to.
type Job struct {
	JobNo           string `yaml:"job_no" json:"job_no"`
	Vessel          string `yaml:"vessel" json:"vessel"`
	Voyage          string `yaml:"voyage" json:"voyage"`
	ETD             string `yaml:"etd" json:"etd"`
	ETA             string `yaml:"eta" json:"eta"`
	PreCarriage     string `yaml:"pre_carriage" json:"pre_carriage"`
	PlaceOfReceipt  string `yaml:"place_of_receipt" json:"place_of_receipt"`
	PortOfLoading   string `yaml:"port_of_loading" json:"port_of_loading"`
	PortOfDischarge string `yaml:"port_of_discharge" json:"port_of_discharge"`
	PlaceOfDelivery string `yaml:"place_of_delivery" json:"place_of_delivery"`
}

// House is one consignment within a job; the unit a House Bill of Lading is
// issued for. Route fields set on the house override the job's.
type House struct {
	HouseNo          string   `yaml:"house_no" json:"house_no"`
	BookingNo        string   `yaml:"booking_no" json:"booking_no"`
	ShipperRef       string   `yaml:"shipper_ref" json:"shipper_ref"`
	Shipper          Party    `yaml:"shipper" json:"shipper"`
	Consignee        Party    `yaml:"consignee" json:"consignee"`
	Notify           Party    `yaml:"notify" json:"notify"`
	DeliveryAgent    Party    `yaml:"delivery_agent" json:"delivery_agent"`
	PreCarriage      string   `yaml:"pre_carriage" json:"pre_carriage"`
	PlaceOfReceipt   string   `yaml:"place_of_receipt" json:"place_of_receipt"`
	PortOfLoading    string   `yaml:"port_of_loading" json:"port_of_loading"`
	PortOfDischarge  string   `yaml:"port_of_discharge" json:"port_of_discharge"`
	PlaceOfDelivery  string   `yaml:"place_of_delivery" json:"place_of_delivery"`
	OnBoardDate      string   `yaml:"on_board_date" json:"on_board_date"`
	IssueDate        string   `yaml:"issue_date" json:"issue_date"`
	PlaceOfIssue     string   `yaml:"place_of_issue" json:"place_of_issue"`
	FreightPayableAt string   `yaml:"freight_payable_at" json:"freight_payable_at"`
	FreightTerm      string   `yaml:"freight_term" json:"freight_term"`
	Originals        string   `yaml:"originals" json:"originals"`
	Marks            string   `yaml:"marks" json:"marks"`
	Description      string   `yaml:"description" json:"description"`
	Cargo            []Record `yaml:"cargo" json:"cargo"`
	Containers       []Record `yaml:"containers" json:"containers"`
}

// Party is a shipper, consignee, notify party or agent block.
type Party struct {
	Name    string `yaml:"name" json:"name"`
	Address string `yaml:"address" json:"address"` // Free text, one line per address line
}

// Lines returns the name followed by the non-blank address lines.
func (p Party) Lines() []string {
	var lines []string
	if name := cleanLine(p.Name); name != "" {
		lines = append(lines, name)
	}
	return append(lines, splitLines(p.Address)...)
}

// BranchInfo is the issuing office letterhead.
type BranchInfo struct {
	Name    string   `yaml:"name" json:"name"`
	Address string   `yaml:"address" json:"address"`
	City    string   `yaml:"city" json:"city"`
	Phone   string   `yaml:"phone" json:"phone"`
	Email   string   `yaml:"email" json:"email"`
	TaxIDs  []string `yaml:"tax_ids" json:"tax_ids"`
	Logo    []byte   `yaml:"-" json:"logo"` // Encoded image, resolved by the caller
}

// Country is the optional country of origin reference.
type Country struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

// ContainerEntry is one container or cargo line printed in the table body.
type ContainerEntry struct {
	Lines []string
}

// Height is the vertical space the entry takes in the table body.
func (e ContainerEntry) Height(lineHeight, gap float64) float64 {
	return float64(len(e.Lines))*lineHeight + gap
}

// Model holds the display-ready values of one document. Every field is
// populated; absent data is an empty string or a documented default.
type Model struct {
	Title  string
	Branch BranchInfo

	DocumentNo  string
	JobNo       string
	BookingNo   string
	ShipperRef  string
	OnBoardDate string

	Shipper       []string
	Consignee     []string
	Notify        []string
	DeliveryAgent []string

	PreCarriage     string
	PlaceOfReceipt  string
	VesselVoyage    string
	PortOfLoading   string
	PortOfDischarge string
	PlaceOfDelivery string
	Origin          string

	Marks       string
	Description string
	Entries     []ContainerEntry

	TotalPackages string
	GrossWeight   string
	Measurement   string

	FreightPayableAt string
	FreightTerm      string
	Originals        string
	PlaceOfIssue     string
	IssueDate        string
}

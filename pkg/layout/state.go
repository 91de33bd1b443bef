package layout

import (
	"github.com/gardar/shipdoc/pkg/surface"
)

// PageState is the cursor of the page currently being drawn. It is a value:
// every layout step takes the state and returns the updated one, and a page
// break replaces it with a fresh state instead of mutating the old one.
type PageState struct {
	Number    int     // 1-based page number
	Top       float64 // Top edge of the page box
	Bottom    float64 // Lowest y the table body may use (footer top on page 1, bottom margin after)
	HeaderTop float64 // Top border of the table header
	BodyTop   float64 // First y below the table header
	EntryY    float64 // Cursor of the containers column
	DescY     float64 // Cursor of the description column
}

// budget is the body height available below the table header.
func (p PageState) budget(safety float64) float64 {
	return p.Bottom - p.BodyTop - safety
}

// Page is one finished page of a Document.
type Page struct {
	Number           int
	Ops              []surface.Op
	Entries          []int // Indices of the container entries drawn on this page, in order
	DescriptionLines int   // Description lines drawn on this page
	Footer           bool  // Whether the footer block was drawn on this page
	HeaderTop        float64
	BodyTop          float64
	Bottom           float64
}

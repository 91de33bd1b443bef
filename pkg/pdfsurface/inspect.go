package pdfsurface

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Info describes a finished PDF.
type Info struct {
	Pages int
}

// Inspect validates data as a PDF and counts its pages.
func Inspect(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, fmt.Errorf("PDF data is empty")
	}

	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed

	if err := api.Validate(bytes.NewReader(data), cfg); err != nil {
		return Info{}, fmt.Errorf("invalid PDF: %w", err)
	}
	pages, err := api.PageCount(bytes.NewReader(data), cfg)
	if err != nil {
		return Info{}, fmt.Errorf("failed to count PDF pages: %w", err)
	}
	return Info{Pages: pages}, nil
}

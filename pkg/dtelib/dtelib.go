// Package dtelib provides the public API for converting Chilean electronic
// tax documents (DTE XML) into canonical records and printable PDFs.
//
// Example usage:
//
//	doc, err := dtelib.Parse(xmlBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pdf, err := dtelib.NewConverter(dtelib.DefaultStylesheet()).Render(doc)
package dtelib

import (
	"github.com/facturatools/dte-processor/internal/model"
	"github.com/facturatools/dte-processor/internal/parser"
	"github.com/facturatools/dte-processor/internal/render"
)

// Re-export core types for the public API
type (
	Document       = model.Document
	Party          = model.Party
	LineItem       = model.LineItem
	Reference      = model.Reference
	TaxWithholding = model.TaxWithholding
	PaymentTerms   = model.PaymentTerms

	Stylesheet = render.Stylesheet
)

// Re-export payment terms
const (
	PaymentUnknown = model.PaymentUnknown
	PaymentCash    = model.PaymentCash
	PaymentCredit  = model.PaymentCredit
	PaymentFree    = model.PaymentFree
)

// Re-export error types
type (
	StructureError = model.StructureError
	FormatError    = model.FormatError
	StampError     = model.StampError
	RenderError    = model.RenderError
)

// Parse extracts the canonical document from raw DTE XML.
func Parse(data []byte) (*Document, error) {
	return parser.Parse(data)
}

// ParseFile extracts the canonical document from an XML file.
func ParseFile(path string) (*Document, error) {
	return parser.ParseFile(path)
}

// DefaultStylesheet returns the bundled document style.
func DefaultStylesheet() Stylesheet {
	return render.DefaultStylesheet()
}

// LoadStylesheet reads a YAML stylesheet overlaying the bundled defaults.
func LoadStylesheet(path string) (Stylesheet, error) {
	return render.LoadStylesheet(path)
}

// Converter renders canonical documents as PDFs.
type Converter struct {
	renderer *render.Renderer
}

// NewConverter creates a converter with the given stylesheet.
func NewConverter(style Stylesheet) *Converter {
	return &Converter{renderer: render.NewRenderer(style)}
}

// Render produces the printable PDF for a parsed document.
func (c *Converter) Render(doc *Document) ([]byte, error) {
	return c.renderer.Render(doc)
}

// Convert parses XML bytes and renders the PDF in one step.
func (c *Converter) Convert(data []byte) ([]byte, error) {
	doc, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}
	return c.renderer.Render(doc)
}

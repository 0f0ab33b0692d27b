// Package model defines the canonical representation of a Chilean DTE
// (Documento Tributario Electrónico) after extraction from XML.
//
// The whole graph is built in a single parse call and is never mutated
// afterwards. Optional source fields are filled with typed defaults (zero,
// empty string or an explicit "unknown" marker) so consumers never have to
// branch on absence.
package model

import "github.com/shopspring/decimal"

// UnknownField marks an optional party field that was absent from the
// source document.
const UnknownField = "Sin información"

// PaymentTerms is the labeled payment-condition domain of FmaPago.
type PaymentTerms int

// Payment terms codes as defined by the SII header schema. Codes outside
// this set occur in the wild and must never be read as credit.
const (
	PaymentUnknown PaymentTerms = 0
	PaymentCash    PaymentTerms = 1
	PaymentCredit  PaymentTerms = 2
	PaymentFree    PaymentTerms = 3
)

// Party is the issuer or recipient of a document.
type Party struct {
	RUT      string `json:"rut"`
	Name     string `json:"razon_social"`
	Activity string `json:"giro"`
	Address  string `json:"direccion"`
	City     string `json:"ciudad"`
	District string `json:"comuna"`
}

// LineItem is one detail line. Quantity and Rate keep the source precision;
// Total is in integer pesos.
type LineItem struct {
	Quantity    decimal.Decimal `json:"qty"`
	Rate        decimal.Decimal `json:"rate"`
	Description string          `json:"descripcion"`
	Total       int64           `json:"total"`
	Code        string          `json:"codigo"`
}

// Reference points at another document this one supersedes, cancels or is
// associated with (purchase orders, dispatch guides, earlier invoices).
type Reference struct {
	TypeCode  string `json:"tipo_doc_referencia"`
	TypeLabel string `json:"tipo_doc_referencia_palabras"`
	Folio     string `json:"folio_referencia"`
	Date      string `json:"fecha_referencia"`
}

// TaxWithholding is an extra tax or retained amount distinct from the
// principal VAT, identified by its SII type code.
type TaxWithholding struct {
	TypeCode  string `json:"tipo"`
	TypeLabel string `json:"tipo_palabras"`
	Amount    int64  `json:"monto"`
}

// Document is the canonical record a parsed DTE reduces to. JSON tags give
// the field-name-stable mapping consumed by listing/export tooling.
type Document struct {
	TypeCode   int    `json:"tipo_dte"`
	TypeLabel  string `json:"tipo_dte_palabras"`
	TypeAbbrev string `json:"tipo_dte_abreviatura"`

	// Folio is a non-empty digit string with leading zeros stripped,
	// "0" when the source field was blank.
	Folio     string `json:"numero_factura"`
	IssueDate string `json:"fecha_emision"`
	DueDate   string `json:"fecha_vencimiento"`

	PaymentTerms      PaymentTerms `json:"forma_pago"`
	PaymentTermsLabel string       `json:"forma_pago_palabras"`

	NetAmount    int64 `json:"monto_neto"`
	ExemptAmount int64 `json:"monto_exento"`
	VATAmount    int64 `json:"monto_iva"`
	TotalAmount  int64 `json:"monto_total"`

	Issuer    Party `json:"emisor"`
	Recipient Party `json:"receptor"`

	Items       []LineItem       `json:"items"`
	References  []Reference      `json:"references"`
	Withholding []TaxWithholding `json:"impuestos"`

	// Stamp is the verbatim TED subtree text with namespace declarations
	// and prefixes stripped. It feeds the verification barcode and must
	// never be reformatted beyond that.
	Stamp string `json:"timbre_xml"`
}

// WithholdingTotal sums all withholding amounts.
func (d *Document) WithholdingTotal() int64 {
	var total int64
	for _, w := range d.Withholding {
		total += w.Amount
	}
	return total
}

// IsCredit reports whether the document was issued on credit terms.
func (d *Document) IsCredit() bool {
	return d.PaymentTerms == PaymentCredit
}

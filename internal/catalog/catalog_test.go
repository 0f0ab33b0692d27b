package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facturatools/dte-processor/internal/catalog"
	"github.com/facturatools/dte-processor/internal/model"
)

func TestDocumentTypeLabel(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{"electronic invoice", "33", "Factura Electrónica"},
		{"credit note", "61", "Nota de Crédito Electrónica"},
		{"purchase order reference", "801", "Orden de Compra"},
		{"alphanumeric sale order", "OV", "Orden de Venta"},
		{"unknown code falls back to literal", "9999", "9999"},
		{"empty code falls back to literal", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, catalog.DocumentTypeLabel(tt.code))
		})
	}
}

func TestTaxTypeLabel(t *testing.T) {
	assert.Equal(t, "IVA retenido total", catalog.TaxTypeLabel("15"))
	assert.Equal(t, "Imp. específico diésel", catalog.TaxTypeLabel("28"))

	// Unknown codes resolve to the literal code, never an error.
	assert.Equal(t, "999", catalog.TaxTypeLabel("999"))
}

func TestTaxTypeLabel_DuplicateUpstreamCode(t *testing.T) {
	// Code 27 is declared twice upstream; the later declaration is the
	// single deterministic mapping we reproduce.
	assert.Equal(t, "Imp. Bebidas Art 42 d,e", catalog.TaxTypeLabel("27"))
}

func TestPaymentTermsLabel(t *testing.T) {
	assert.Equal(t, "Sin información", catalog.PaymentTermsLabel(model.PaymentUnknown))
	assert.Equal(t, "Contado", catalog.PaymentTermsLabel(model.PaymentCash))
	assert.Equal(t, "Crédito", catalog.PaymentTermsLabel(model.PaymentCredit))
	assert.Equal(t, "Gratuito", catalog.PaymentTermsLabel(model.PaymentFree))
}

func TestPaymentTermsLabel_UnknownCode(t *testing.T) {
	// Codes beyond the known domain exist in the wild; they must be
	// labeled unknown, never silently treated as credit.
	label := catalog.PaymentTermsLabel(model.PaymentTerms(7))
	assert.Equal(t, "Desconocido (7)", label)
	assert.NotEqual(t, catalog.PaymentTermsLabel(model.PaymentCredit), label)
}

func TestDocumentTypeInfo(t *testing.T) {
	label, abbrev := catalog.DocumentTypeInfo(33)
	assert.Equal(t, "FACTURA ELECTRÓNICA", label)
	assert.Equal(t, "FC", abbrev)

	label, abbrev = catalog.DocumentTypeInfo(61)
	assert.Equal(t, "NOTA DE CRÉDITO ELECTRÓNICA", label)
	assert.Equal(t, "NC", abbrev)
}

func TestDocumentTypeInfo_UnmappedCode(t *testing.T) {
	label, abbrev := catalog.DocumentTypeInfo(9999)
	assert.Equal(t, "9999", label)
	assert.Equal(t, "T9999", abbrev)
}

package model_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturatools/dte-processor/internal/model"
)

func TestDocument_WithholdingTotal(t *testing.T) {
	doc := model.Document{
		Withholding: []model.TaxWithholding{
			{TypeCode: "15", TypeLabel: "IVA retenido total", Amount: 19000},
			{TypeCode: "28", TypeLabel: "Imp. específico diésel", Amount: 5500},
		},
	}
	assert.Equal(t, int64(24500), doc.WithholdingTotal())

	empty := model.Document{}
	assert.Equal(t, int64(0), empty.WithholdingTotal())
}

func TestDocument_IsCredit(t *testing.T) {
	assert.True(t, (&model.Document{PaymentTerms: model.PaymentCredit}).IsCredit())
	assert.False(t, (&model.Document{PaymentTerms: model.PaymentCash}).IsCredit())
	assert.False(t, (&model.Document{PaymentTerms: model.PaymentTerms(9)}).IsCredit())
}

// The JSON mapping is the contract for listing/export consumers; field
// names must stay stable.
func TestDocument_StableJSONMapping(t *testing.T) {
	doc := model.Document{
		TypeCode:  33,
		TypeLabel: "FACTURA ELECTRÓNICA",
		Folio:     "123",
		Items: []model.LineItem{
			{Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(500), Description: "Servicio", Total: 1000, Code: "0"},
		},
		References:  []model.Reference{},
		Withholding: []model.TaxWithholding{},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))

	for _, key := range []string{
		"tipo_dte", "tipo_dte_palabras", "numero_factura", "fecha_emision",
		"forma_pago", "monto_neto", "monto_total", "emisor", "receptor",
		"items", "references", "impuestos", "timbre_xml",
	} {
		assert.Contains(t, m, key)
	}

	items, ok := m["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Contains(t, item, "qty")
	assert.Contains(t, item, "descripcion")
	assert.Contains(t, item, "codigo")
}

func TestStructureError(t *testing.T) {
	err := model.NewStructureError("Folio", "mandatory field missing", nil)
	require.Contains(t, err.Error(), "Folio")
	require.Contains(t, err.Error(), "mandatory")
}

func TestStructureError_WithCause(t *testing.T) {
	cause := assert.AnError
	err := model.NewStructureError("xml", "malformed document", cause)
	require.ErrorIs(t, err, cause)
}

func TestFormatError(t *testing.T) {
	err := model.NewFormatError("FchEmis", "ayer", "expected YYYY-MM-DD")
	require.Contains(t, err.Error(), "FchEmis")
	require.Contains(t, err.Error(), `"ayer"`)
}

func TestStampError(t *testing.T) {
	err := model.NewStampError("empty stamp payload", nil)
	require.Contains(t, err.Error(), "stamp")

	cause := assert.AnError
	require.ErrorIs(t, model.NewStampError("payload not encodable", cause), cause)
}

func TestRenderError(t *testing.T) {
	cause := assert.AnError
	err := model.NewRenderError("write", "cannot write PDF", cause)
	require.Contains(t, err.Error(), "write")
	require.ErrorIs(t, err, cause)
}

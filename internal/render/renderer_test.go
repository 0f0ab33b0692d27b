package render_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturatools/dte-processor/internal/model"
	"github.com/facturatools/dte-processor/internal/render"
)

func sampleDocument() *model.Document {
	return &model.Document{
		TypeCode:          33,
		TypeLabel:         "FACTURA ELECTRÓNICA",
		TypeAbbrev:        "FC",
		Folio:             "123",
		IssueDate:         "2024-05-20",
		DueDate:           "2024-06-20",
		PaymentTerms:      model.PaymentCredit,
		PaymentTermsLabel: "Crédito",
		NetAmount:         100000,
		VATAmount:         19000,
		TotalAmount:       119000,
		Issuer: model.Party{
			RUT:      "76.123.456-5",
			Name:     "OFICINA SUR S.A.",
			Activity: "Venta de Materiales",
			Address:  "Av. Providencia 1234",
			City:     "Santiago",
			District: "Providencia",
		},
		Recipient: model.Party{
			RUT:      "96.543.210-8",
			Name:     "COMERCIAL ANDINA LTDA",
			Activity: "Abarrotes",
			Address:  "Calle Larga 99",
			City:     "Valparaíso",
			District: "Valparaíso",
		},
		Items: []model.LineItem{
			{
				Quantity:    decimal.NewFromInt(2),
				Rate:        decimal.NewFromInt(50000),
				Description: "CEMENTO 25KG - Saco de cemento gris",
				Total:       100000,
				Code:        "CEM-25",
			},
		},
		References: []model.Reference{
			{TypeCode: "801", TypeLabel: "Orden de Compra", Folio: "4510", Date: "2024-05-02"},
		},
		Withholding: []model.TaxWithholding{
			{TypeCode: "15", TypeLabel: "IVA retenido total", Amount: 19000},
		},
		Stamp: `<TED version="1.0"><DD><RE>76123456-5</RE><TD>33</TD><F>123</F><MNT>119000</MNT></DD><FRMT algoritmo="SHA1withRSA">dGltYnJl</FRMT></TED>`,
	}
}

func TestRender_ProducesValidPDF(t *testing.T) {
	r := render.NewRenderer(render.DefaultStylesheet())

	pdf, err := r.Render(sampleDocument())
	require.NoError(t, err)
	require.NotEmpty(t, pdf)

	// The artifact must begin with the standard document magic header.
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRender_Deterministic(t *testing.T) {
	r := render.NewRenderer(render.DefaultStylesheet())
	doc := sampleDocument()

	a, err := r.Render(doc)
	require.NoError(t, err)
	b, err := r.Render(doc)
	require.NoError(t, err)
	assert.Equal(t, len(a), len(b), "same document must render to the same layout")
}

func TestRender_MissingStamp(t *testing.T) {
	r := render.NewRenderer(render.DefaultStylesheet())
	doc := sampleDocument()
	doc.Stamp = ""

	pdf, err := r.Render(doc)
	require.Error(t, err)
	assert.Nil(t, pdf, "no partial document bytes on failure")

	var stampErr *model.StampError
	require.ErrorAs(t, err, &stampErr)
}

func TestRender_BadIssueDate(t *testing.T) {
	r := render.NewRenderer(render.DefaultStylesheet())
	doc := sampleDocument()
	doc.IssueDate = "mañana"

	_, err := r.Render(doc)
	require.Error(t, err)

	var renderErr *model.RenderError
	require.ErrorAs(t, err, &renderErr)
}

func TestRender_NoReferencesNoWithholding(t *testing.T) {
	r := render.NewRenderer(render.DefaultStylesheet())
	doc := sampleDocument()
	doc.References = nil
	doc.Withholding = nil

	pdf, err := r.Render(doc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestLoadStylesheet_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_font_size: 11\naccent_rgb: [0, 0, 128]\n"), 0o644))

	style, err := render.LoadStylesheet(path)
	require.NoError(t, err)

	// Overridden fields.
	assert.Equal(t, 11.0, style.BaseFontSize)
	assert.Equal(t, [3]int{0, 0, 128}, style.AccentRGB)

	// Untouched fields keep the bundled defaults.
	defaults := render.DefaultStylesheet()
	assert.Equal(t, defaults.PageSize, style.PageSize)
	assert.Equal(t, defaults.FontFamily, style.FontFamily)
}

func TestLoadStylesheet_MissingFile(t *testing.T) {
	_, err := render.LoadStylesheet(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	var renderErr *model.RenderError
	require.ErrorAs(t, err, &renderErr)
}

func TestRender_CustomStylesheet(t *testing.T) {
	style := render.DefaultStylesheet()
	style.AccentRGB = [3]int{0, 80, 160}
	style.BarcodeWidth = 60

	pdf, err := render.NewRenderer(style).Render(sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturatools/dte-processor/internal/format"
	"github.com/facturatools/dte-processor/internal/model"
)

func TestRUT(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain digits", "761234565", "76.123.456-5"},
		{"already formatted", "76.123.456-5", "76.123.456-5"},
		{"dash only", "76123456-5", "76.123.456-5"},
		{"lowercase check char", "12345678k", "12.345.678-K"},
		{"short body", "123", "12-3"},
		{"surrounding whitespace", "  761234565 ", "76.123.456-5"},
		{"single char passes through", "7", "7"},
		{"empty passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, format.RUT(tt.input))
		})
	}
}

func TestRUT_Idempotent(t *testing.T) {
	for _, input := range []string{"761234565", "12345678K", "1-9", ""} {
		once := format.RUT(input)
		assert.Equal(t, once, format.RUT(once), "RUT(%q) must be idempotent", input)
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"corporate suffix kept upper", "OFICINA SUR S.A.", "Oficina Sur S.A."},
		{"connector stays lower", "SERVICIOS DE INGENIERIA LTDA", "Servicios de Ingenieria LTDA"},
		{"connector capitalized when first", "LA SERENA", "La Serena"},
		{"spa suffix", "comercial andina spa", "Comercial Andina SPA"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, format.TitleCase(tt.input))
		})
	}
}

func TestLongDate(t *testing.T) {
	got, err := format.LongDate("2024-09-03")
	require.NoError(t, err)
	assert.Equal(t, "3 de septiembre de 2024", got)

	got, err = format.LongDate("2023-01-15")
	require.NoError(t, err)
	assert.Equal(t, "15 de enero de 2023", got)
}

func TestLongDate_Malformed(t *testing.T) {
	for _, input := range []string{"", "15-01-2023", "2023/01/15", "2023-13-40", "hoy"} {
		_, err := format.LongDate(input)
		require.Error(t, err, "input %q", input)

		var formatErr *model.FormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, input, formatErr.Value)
	}
}

func TestCLP(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.000"},
		{1234567, "1.234.567"},
		{119000, "119.000"},
		{-45000, "-45.000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, format.CLP(tt.input))
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"strips punctuation", "Juan Pérez S.A.", 0, "Juan Pérez SA"},
		{"keeps hyphen", "Norte-Sur Ltda.", 0, "Norte-Sur Ltda"},
		{"collapses whitespace", "Dos   Espacios \t Aqui", 0, "Dos Espacios Aqui"},
		{"truncates with ellipsis", "Juan Pérez S.A.", 8, "Juan Pér…"},
		{"no truncation when under cap", "Corto", 40, "Corto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, format.SanitizeFileName(tt.input, tt.max))
		})
	}
}

func TestOutputFileName(t *testing.T) {
	doc := &model.Document{
		TypeAbbrev: "FC",
		Folio:      "123",
		IssueDate:  "2024-05-20",
		Issuer:     model.Party{Name: "OFICINA SUR S.A."},
	}

	assert.Equal(t, "20240520 FC Oficina Sur SA 123.pdf", format.OutputFileName(doc, "pdf"))
}

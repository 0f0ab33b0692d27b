// Package export produces the XLSX listing of parsed documents consumed by
// back-office tooling. It serializes the canonical model only; no business
// values are recomputed here.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/facturatools/dte-processor/internal/model"
)

// Entry pairs a parsed document with its source file name.
type Entry struct {
	File     string
	Document *model.Document
}

const sheet = "Documentos"

var headers = []string{
	"archivo", "rut", "fecha", "folio", "montoNeto", "tipoDoc",
	"razon_social", "items_json",
}

// WriteListing writes one row per document. Line items ride along as a
// JSON column: they are variable-length and downstream spreadsheets only
// re-key them occasionally.
func WriteListing(entries []Entry, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for row, e := range entries {
		items, err := json.Marshal(e.Document.Items)
		if err != nil {
			return fmt.Errorf("serialize items for %s: %w", e.File, err)
		}

		values := []interface{}{
			e.File,
			e.Document.Issuer.RUT,
			e.Document.IssueDate,
			e.Document.Folio,
			e.Document.NetAmount,
			e.Document.TypeCode,
			e.Document.Issuer.Name,
			string(items),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row+2, err)
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 32)
	_ = f.SetColWidth(sheet, "B", "D", 14)
	_ = f.SetColWidth(sheet, "G", "G", 32)
	_ = f.SetColWidth(sheet, "H", "H", 48)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

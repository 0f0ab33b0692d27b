// Package render projects a canonical document, together with its derived
// display values (long-form date, spelled-out total, withholding sum,
// verification barcode), into a paginated PDF. It performs value
// composition only; all business interpretation happened at parse time.
package render

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/facturatools/dte-processor/internal/format"
	"github.com/facturatools/dte-processor/internal/model"
	"github.com/facturatools/dte-processor/internal/stamp"
)

// Renderer turns documents into PDF bytes. Construct it explicitly with
// NewRenderer; there is no package-level engine state.
type Renderer struct {
	style Stylesheet
}

// NewRenderer creates a renderer with the given stylesheet.
func NewRenderer(style Stylesheet) *Renderer {
	return &Renderer{style: style}
}

// Render produces the printable document. Either a complete, validated PDF
// byte stream is returned or an error; partial output is never emitted. A
// document with an empty stamp fails with StampError, everything else with
// RenderError.
func (r *Renderer) Render(doc *model.Document) ([]byte, error) {
	longDate, err := format.LongDate(doc.IssueDate)
	if err != nil {
		return nil, model.NewRenderError("context", "issue date not renderable", err)
	}

	code, err := stamp.Encode(doc.Stamp, stamp.DefaultOptions)
	if err != nil {
		return nil, err
	}
	barcodeImg, err := code.Image()
	if err != nil {
		return nil, err
	}

	var barcodePNG bytes.Buffer
	if err := png.Encode(&barcodePNG, barcodeImg); err != nil {
		return nil, model.NewRenderError("barcode", "cannot rasterize stamp", err)
	}

	out, err := r.compose(doc, longDate, &barcodePNG)
	if err != nil {
		return nil, err
	}

	// Re-read the artifact before handing it out: a truncated or
	// structurally broken PDF must never reach the caller.
	conf := pdfmodel.NewDefaultConfiguration()
	if _, err := api.ReadValidateAndOptimize(bytes.NewReader(out), conf); err != nil {
		return nil, model.NewRenderError("validate", "generated PDF failed validation", err)
	}

	return out, nil
}

func (r *Renderer) compose(doc *model.Document, longDate string, barcodePNG *bytes.Buffer) ([]byte, error) {
	style := r.style

	pdf := gofpdf.New("P", "mm", style.PageSize, "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(style.MarginLeft, style.MarginTop, style.MarginRight)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	contentRight := pageWidth - style.MarginRight

	// Regulatory box, top right: issuer RUT, document type, folio.
	boxWidth := 70.0
	boxLeft := contentRight - boxWidth
	pdf.SetDrawColor(style.AccentRGB[0], style.AccentRGB[1], style.AccentRGB[2])
	pdf.SetTextColor(style.AccentRGB[0], style.AccentRGB[1], style.AccentRGB[2])
	pdf.SetLineWidth(0.5)
	pdf.Rect(boxLeft, style.MarginTop, boxWidth, 26, "D")

	pdf.SetFont(style.FontFamily, "B", style.TitleSize)
	pdf.SetXY(boxLeft, style.MarginTop+3)
	pdf.CellFormat(boxWidth, 6, tr("R.U.T.: "+doc.Issuer.RUT), "", 1, "C", false, 0, "")
	pdf.SetX(boxLeft)
	pdf.CellFormat(boxWidth, 6, tr(doc.TypeLabel), "", 1, "C", false, 0, "")
	pdf.SetX(boxLeft)
	pdf.CellFormat(boxWidth, 6, tr("N° "+doc.Folio), "", 1, "C", false, 0, "")
	pdf.SetFont(style.FontFamily, "", style.BaseFontSize)
	pdf.SetXY(boxLeft, style.MarginTop+27)
	pdf.CellFormat(boxWidth, 5, tr("S.I.I. - "+doc.Issuer.City), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)

	// Issuer block, top left.
	pdf.SetXY(style.MarginLeft, style.MarginTop+2)
	pdf.SetFont(style.FontFamily, "B", style.TitleSize)
	issuerWidth := boxLeft - style.MarginLeft - 5
	pdf.MultiCell(issuerWidth, 5, tr(format.TitleCase(doc.Issuer.Name)), "", "L", false)
	pdf.SetFont(style.FontFamily, "", style.BaseFontSize)
	pdf.SetX(style.MarginLeft)
	pdf.MultiCell(issuerWidth, 4.5, tr(doc.Issuer.Activity), "", "L", false)
	pdf.SetX(style.MarginLeft)
	pdf.MultiCell(issuerWidth, 4.5,
		tr(doc.Issuer.Address+", "+doc.Issuer.District+", "+doc.Issuer.City), "", "L", false)

	pdf.SetY(style.MarginTop + 44)
	pdf.Line(style.MarginLeft, pdf.GetY(), contentRight, pdf.GetY())
	pdf.Ln(2)

	// Recipient block.
	labelCell := func(label, value string) {
		pdf.SetFont(style.FontFamily, "B", style.BaseFontSize)
		pdf.CellFormat(30, 5, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont(style.FontFamily, "", style.BaseFontSize)
		pdf.CellFormat(68, 5, tr(value), "", 0, "L", false, 0, "")
	}
	labelCell("Señor(es):", doc.Recipient.Name)
	labelCell("R.U.T.:", doc.Recipient.RUT)
	pdf.Ln(5)
	labelCell("Giro:", doc.Recipient.Activity)
	labelCell("Fecha emisión:", longDate)
	pdf.Ln(5)
	labelCell("Dirección:", doc.Recipient.Address)
	labelCell("Forma de pago:", doc.PaymentTermsLabel)
	pdf.Ln(5)
	labelCell("Comuna:", doc.Recipient.District)
	if doc.DueDate != "" {
		labelCell("Vencimiento:", doc.DueDate)
	}
	pdf.Ln(7)

	// Items table.
	colWidths := []float64{24, 96, 18, 26, 28}
	headers := []string{"Código", "Descripción", "Cant.", "Precio", "Total"}
	aligns := []string{"L", "L", "R", "R", "R"}

	pdf.SetFont(style.FontFamily, "B", style.BaseFontSize)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 6, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont(style.FontFamily, "", style.BaseFontSize)
	for _, item := range doc.Items {
		cells := []string{
			item.Code,
			item.Description,
			item.Quantity.String(),
			format.CLP(item.Rate.Round(0).IntPart()),
			format.CLP(item.Total),
		}
		for i, c := range cells {
			pdf.CellFormat(colWidths[i], 5.5, tr(c), "1", 0, aligns[i], false, 0, "")
		}
		pdf.Ln(5.5)
	}
	pdf.Ln(3)

	// References, when present.
	if len(doc.References) > 0 {
		pdf.SetFont(style.FontFamily, "B", style.BaseFontSize)
		pdf.CellFormat(0, 5, tr("Referencias"), "", 1, "L", false, 0, "")
		pdf.SetFont(style.FontFamily, "", style.BaseFontSize)
		for _, ref := range doc.References {
			line := fmt.Sprintf("%s N° %s (%s)", ref.TypeLabel, ref.Folio, ref.Date)
			pdf.CellFormat(0, 4.5, tr(line), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	// Totals, right aligned.
	totalsLeft := contentRight - 70
	totalRow := func(label string, amount int64, bold bool) {
		fontStyle := ""
		if bold {
			fontStyle = "B"
		}
		pdf.SetFont(style.FontFamily, fontStyle, style.BaseFontSize)
		pdf.SetX(totalsLeft)
		pdf.CellFormat(40, 5, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, "$ "+format.CLP(amount), "", 1, "R", false, 0, "")
	}
	totalRow("Monto neto", doc.NetAmount, false)
	totalRow("Monto exento", doc.ExemptAmount, false)
	totalRow("I.V.A.", doc.VATAmount, false)
	if withheld := doc.WithholdingTotal(); withheld != 0 {
		totalRow("Imp. y retenciones", withheld, false)
	}
	totalRow("Total", doc.TotalAmount, true)

	pdf.SetFont(style.FontFamily, "I", style.BaseFontSize)
	pdf.SetX(style.MarginLeft)
	pdf.MultiCell(0, 5, tr("Son: "+format.AmountInWords(doc.TotalAmount)+" PESOS"), "", "L", false)
	pdf.Ln(4)

	// Verification barcode and footer.
	barcodeY := pdf.GetY()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("ted", opts, barcodePNG)
	pdf.ImageOptions("ted", style.MarginLeft, barcodeY, style.BarcodeWidth, 0, false, opts, 0, "")

	pdf.SetY(barcodeY + 28)
	pdf.SetFont(style.FontFamily, "", style.BaseFontSize-1)
	pdf.CellFormat(0, 4, tr("Timbre Electrónico SII"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, tr("Verifique documento: "+style.VerificationURL), "", 1, "L", false, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, model.NewRenderError("write", "cannot write PDF", err)
	}
	return out.Bytes(), nil
}

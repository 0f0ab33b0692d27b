// Package parser extracts a canonical model.Document from DTE XML.
//
// Every lookup is scoped to its parent context (Emisor vs Receptor, IdDoc
// vs Totales, each Detalle and Referencia) because several tag names repeat
// across scopes; a document-wide first-match search would cross-contaminate
// fields. Tag matching ignores namespace prefixes.
package parser

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/facturatools/dte-processor/internal/catalog"
	"github.com/facturatools/dte-processor/internal/format"
	"github.com/facturatools/dte-processor/internal/model"
)

var (
	nsDeclPattern   = regexp.MustCompile(`\sxmlns(:\w+)?="[^"]+"`)
	nsPrefixPattern = regexp.MustCompile(`\bns\d+:`)
)

// ParseFile reads and parses a DTE XML file.
func ParseFile(path string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.NewStructureError("file", "cannot read input", err)
	}
	return Parse(data)
}

// Parse extracts the canonical document from raw DTE XML bytes. It fails
// with a StructureError when the XML is not well-formed or a mandatory
// field (issuer RUT, recipient RUT, folio, issue date, document type) is
// absent; no partial document is returned. Optional fields missing from
// the source get their documented defaults.
func Parse(data []byte) (*model.Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, model.NewStructureError("xml", "malformed document", err)
	}

	root := tree.Root()
	if root == nil {
		return nil, model.NewStructureError("xml", "empty document", nil)
	}

	// Scope elements. The header blocks hang off Documento/Encabezado;
	// detail, reference and stamp blocks are siblings of Encabezado.
	documento := findDescendant(root, "Documento")
	if documento == nil {
		documento = root
	}
	encabezado := child(documento, "Encabezado")
	idDoc := child(encabezado, "IdDoc")
	emisor := child(encabezado, "Emisor")
	receptor := child(encabezado, "Receptor")
	totales := child(encabezado, "Totales")

	doc := &model.Document{}

	var err error
	if doc.Issuer, err = parseParty(emisor, "RUTEmisor", "RznSoc", "GiroEmis", "DirOrigen", "CiudadOrigen", "CmnaOrigen"); err != nil {
		return nil, err
	}
	if doc.Recipient, err = parseParty(receptor, "RUTRecep", "RznSocRecep", "GiroRecep", "DirRecep", "CiudadRecep", "CmnaRecep"); err != nil {
		return nil, err
	}

	folio := strings.TrimSpace(childText(idDoc, "Folio"))
	if folio == "" {
		return nil, model.NewStructureError("Folio", "mandatory field missing", nil)
	}
	doc.Folio = strings.TrimLeft(folio, "0")
	if doc.Folio == "" {
		doc.Folio = "0"
	}

	doc.IssueDate = strings.TrimSpace(childText(idDoc, "FchEmis"))
	if doc.IssueDate == "" {
		return nil, model.NewStructureError("FchEmis", "mandatory field missing", nil)
	}
	if _, err := time.Parse("2006-01-02", doc.IssueDate); err != nil {
		return nil, model.NewFormatError("FchEmis", doc.IssueDate, "expected YYYY-MM-DD")
	}

	typeText := strings.TrimSpace(childText(idDoc, "TipoDTE"))
	if typeText == "" {
		return nil, model.NewStructureError("TipoDTE", "mandatory field missing", nil)
	}
	typeCode, err := strconv.Atoi(typeText)
	if err != nil {
		return nil, model.NewFormatError("TipoDTE", typeText, "expected numeric document type")
	}
	doc.TypeCode = typeCode
	doc.TypeLabel, doc.TypeAbbrev = catalog.DocumentTypeInfo(typeCode)

	doc.DueDate = strings.TrimSpace(childText(idDoc, "FchVenc"))
	doc.PaymentTerms = model.PaymentTerms(intText(child(idDoc, "FmaPago"), 0))
	doc.PaymentTermsLabel = catalog.PaymentTermsLabel(doc.PaymentTerms)

	doc.NetAmount = intText(child(totales, "MntNeto"), 0)
	doc.ExemptAmount = intText(child(totales, "MntExe"), 0)
	doc.VATAmount = intText(child(totales, "IVA"), 0)
	doc.TotalAmount = intText(child(totales, "MntTotal"), 0)

	doc.Items = parseItems(documento)
	doc.References = parseReferences(documento)
	doc.Withholding = parseWithholding(totales)

	doc.Stamp, err = extractStamp(documento)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

func parseParty(scope *etree.Element, rutTag, nameTag, activityTag, addressTag, cityTag, districtTag string) (model.Party, error) {
	rut := strings.TrimSpace(childText(scope, rutTag))
	if rut == "" {
		return model.Party{}, model.NewStructureError(rutTag, "mandatory field missing", nil)
	}
	return model.Party{
		RUT:      format.RUT(rut),
		Name:     textOrUnknown(scope, nameTag, false),
		Activity: textOrUnknown(scope, activityTag, true),
		Address:  textOrUnknown(scope, addressTag, true),
		City:     textOrUnknown(scope, cityTag, true),
		District: textOrUnknown(scope, districtTag, true),
	}, nil
}

// textOrUnknown resolves an optional party field, title-casing free-form
// values and substituting the explicit unknown marker for absent ones.
func textOrUnknown(scope *etree.Element, tag string, titleCase bool) string {
	s := strings.TrimSpace(childText(scope, tag))
	if s == "" {
		return model.UnknownField
	}
	if titleCase {
		return format.TitleCase(s)
	}
	return s
}

func parseItems(documento *etree.Element) []model.LineItem {
	items := []model.LineItem{}
	for _, det := range childrenNamed(documento, "Detalle") {
		qty := decimalText(findDescendant(det, "QtyItem"), decimal.NewFromInt(1))

		rateEl := findDescendant(det, "PrcItem")
		rate := decimalText(rateEl, decimal.Zero)

		totalEl := findDescendant(det, "MontoItem")
		total := intText(totalEl, qty.Mul(rate).Round(0).IntPart())
		if rateEl == nil {
			// A missing unit rate defaults to the line total.
			rate = decimal.NewFromInt(total)
		}

		name := strings.TrimSpace(elementText(findDescendant(det, "NmbItem")))
		detail := strings.TrimSpace(elementText(findDescendant(det, "DscItem")))
		desc := name
		switch {
		case name != "" && detail != "":
			desc = name + " - " + detail
		case name == "":
			desc = detail
		}

		code := strings.TrimSpace(elementText(findDescendant(det, "VlrCodigo")))
		if code == "" {
			code = "0"
		}

		items = append(items, model.LineItem{
			Quantity:    qty,
			Rate:        rate,
			Description: desc,
			Total:       total,
			Code:        code,
		})
	}
	return items
}

func parseReferences(documento *etree.Element) []model.Reference {
	refs := []model.Reference{}
	for _, r := range childrenNamed(documento, "Referencia") {
		code := strings.TrimSpace(childText(r, "TpoDocRef"))
		refs = append(refs, model.Reference{
			TypeCode:  code,
			TypeLabel: catalog.DocumentTypeLabel(code),
			Folio:     strings.TrimSpace(childText(r, "FolioRef")),
			Date:      strings.TrimSpace(childText(r, "FchRef")),
		})
	}
	return refs
}

func parseWithholding(totales *etree.Element) []model.TaxWithholding {
	taxes := []model.TaxWithholding{}
	for _, imp := range childrenNamed(totales, "ImptoReten") {
		code := strings.TrimSpace(childText(imp, "TipoImp"))
		taxes = append(taxes, model.TaxWithholding{
			TypeCode:  code,
			TypeLabel: catalog.TaxTypeLabel(code),
			Amount:    intText(child(imp, "MontoImp"), 0),
		})
	}
	return taxes
}

// extractStamp serializes the TED subtree verbatim, preserving element
// order, attribute order and text content, then applies the two textual
// rewrites the verification scheme expects: namespace declarations and
// numeric-suffixed prefixes are dropped. The payload must stay byte-exact
// otherwise every generated barcode is silently corrupted, so nothing is
// re-escaped or reordered here.
func extractStamp(documento *etree.Element) (string, error) {
	ted := findDescendant(documento, "TED")
	if ted == nil {
		return "", nil
	}

	sub := etree.NewDocument()
	sub.AddChild(ted.Copy())
	s, err := sub.WriteToString()
	if err != nil {
		return "", model.NewStructureError("TED", "cannot serialize stamp subtree", err)
	}

	s = nsDeclPattern.ReplaceAllString(s, "")
	s = nsPrefixPattern.ReplaceAllString(s, "")
	return s, nil
}

// child returns the first direct child whose local name matches, ignoring
// namespace prefixes. A nil scope yields nil so absent blocks default
// cleanly downstream.
func child(scope *etree.Element, name string) *etree.Element {
	if scope == nil {
		return nil
	}
	for _, c := range scope.ChildElements() {
		if c.Tag == name {
			return c
		}
	}
	return nil
}

func childrenNamed(scope *etree.Element, name string) []*etree.Element {
	if scope == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range scope.ChildElements() {
		if c.Tag == name {
			out = append(out, c)
		}
	}
	return out
}

// findDescendant does a depth-first search for the first element with the
// given local name, within the scope subtree only.
func findDescendant(scope *etree.Element, name string) *etree.Element {
	if scope == nil {
		return nil
	}
	for _, c := range scope.ChildElements() {
		if c.Tag == name {
			return c
		}
		if found := findDescendant(c, name); found != nil {
			return found
		}
	}
	return nil
}

func childText(scope *etree.Element, name string) string {
	return elementText(child(scope, name))
}

func elementText(el *etree.Element) string {
	if el == nil {
		return ""
	}
	return el.Text()
}

// intText coerces element text to an integer peso amount; decimal commas
// are tolerated, anything non-numeric yields the default.
func intText(el *etree.Element, def int64) int64 {
	s := strings.TrimSpace(elementText(el))
	if s == "" {
		return def
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ".")); err == nil {
		return d.Round(0).IntPart()
	}
	return def
}

// decimalText coerces element text to a decimal, tolerating a comma as the
// decimal separator. Bad input yields the default, never an error.
func decimalText(el *etree.Element, def decimal.Decimal) decimal.Decimal {
	s := strings.TrimSpace(elementText(el))
	if s == "" {
		return def
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return def
	}
	return d
}

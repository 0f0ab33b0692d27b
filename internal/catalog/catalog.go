// Package catalog holds the static SII code tables: document types,
// extra-tax/withholding types and payment terms. All tables are read-only
// and total: an unknown code resolves to the literal code, never to an
// error.
package catalog

import (
	"fmt"
	"strconv"

	"github.com/facturatools/dte-processor/internal/model"
)

// documentTypes maps commercial document codes (30-112) and the non-tax
// reference codes (801-820 plus a few alphanumeric ones) to their labels.
// Used for resolving document references.
var documentTypes = map[string]string{
	"30":  "Factura",
	"32":  "Factura bienes/servicios",
	"33":  "Factura Electrónica",
	"34":  "Factura Exenta Electrónica",
	"35":  "Boleta",
	"38":  "Boleta Exenta",
	"39":  "Boleta Electrónica",
	"40":  "Liquidación-Factura",
	"41":  "Boleta Exenta Electrónica",
	"43":  "Liquidación-Factura Electrónica",
	"45":  "Factura de Compra",
	"46":  "Factura de Compra Electrónica",
	"50":  "Guía de Despacho",
	"52":  "Guía de Despacho Electrónica",
	"55":  "Nota de Débito",
	"56":  "Nota de Débito Electrónica",
	"60":  "Nota de Crédito",
	"61":  "Nota de Crédito Electrónica",
	"103": "Liquidación",
	"110": "Factura de Exportación Electrónica",
	"111": "Nota de Débito de Exportación",
	"112": "Nota de Crédito de Exportación",
	"801": "Orden de Compra",
	"802": "Nota de pedido",
	"803": "Contrato",
	"804": "Resolución",
	"805": "Proceso ChileCompra",
	"806": "Ficha ChileCompra",
	"807": "DUS",
	"808": "B/L",
	"809": "AWB",
	"810": "MIC/DTA",
	"811": "Carta de Porte",
	"812": "Resolución SNA Servicios Exportación",
	"813": "Pasaporte",
	"814": "Certificado Depósito Bolsa",
	"815": "Vale de Prenda Bolsa",
	"820": "Registro Plazo de Pago Excepcional",
	"OV":  "Orden de Venta",
	"VTA": "Venta",
	"NV":  "Nota de Venta",
}

// taxTypes maps ImptoReten type codes to labels.
//
// Code "27" is declared twice in the upstream table ("DL 825/74 Art.42 a)"
// and "Imp. Bebidas Art 42 d,e", where the later declaration silently won).
// The later one is kept here as the single deterministic mapping; the
// authoritative definition is pending domain confirmation.
var taxTypes = map[string]string{
	"14":  "IVA margen comercialización",
	"15":  "IVA retenido total",
	"17":  "IVA anticipo faenamiento carne",
	"18":  "IVA anticipado carne",
	"19":  "IVA anticipado carne",
	"23":  "Imp. adicional Art 37 a,b,c",
	"24":  "Imp. Art 42 Ley 825/74 a",
	"25":  "Imp. Art 42 c",
	"26":  "Imp. Art 42 c",
	"27":  "Imp. Bebidas Art 42 d,e",
	"28":  "Imp. específico diésel",
	"29":  "Recup. específico diésel transportistas",
	"30":  "IVA retenido legumbres",
	"31":  "IVA retenido silvestres",
	"32":  "IVA retenido ganado",
	"33":  "IVA retenido madera",
	"34":  "IVA retenido trigo",
	"35":  "Imp. específico gasolina",
	"36":  "IVA retenido arroz",
	"37":  "IVA retenido hidrobiológicas",
	"38":  "IVA retenido chatarra",
	"39":  "IVA retenido PPA",
	"41":  "IVA retenido construcción",
	"44":  "Imp. adicional Art 37 e,h,i,l",
	"45":  "Imp. adicional Art 37 j",
	"47":  "IVA retenido cartones",
	"48":  "IVA retenido frambuesas/pasas",
	"49":  "Factura compra sin retención",
	"50":  "IVA margen prepago",
	"51":  "Imp. gas natural comprimido",
	"52":  "Imp. gas licuado",
	"53":  "Imp. retenido suplementeros",
	"60":  "IVA retenido factura inicio",
	"271": "DL 825/74, Art.42 a) Inc. 2º",
}

// paymentTerms labels the known FmaPago codes.
var paymentTerms = map[model.PaymentTerms]string{
	model.PaymentUnknown: "Sin información",
	model.PaymentCash:    "Contado",
	model.PaymentCredit:  "Crédito",
	model.PaymentFree:    "Gratuito",
}

// rootDocumentTypes maps the code of the document being rendered to its
// printed label and short abbreviation. Distinct from documentTypes: the
// abbreviation only applies to the root document, references never carry
// one.
var rootDocumentTypes = map[int]struct{ label, abbrev string }{
	30:  {"AFECTA", "FC"},
	33:  {"FACTURA ELECTRÓNICA", "FC"},
	34:  {"FACTURA EXENTA ELECTRÓNICA", "FC"},
	43:  {"LIQUIDACIÓN-FACTURA ELECTRÓNICA", "LFE"},
	46:  {"FACTURA DE COMPRA ELECTRÓNICA", "FCI"},
	52:  {"GUÍA DE DESPACHO ELECTRÓNICA", "GD"},
	56:  {"NOTA DE DÉBITO ELECTRÓNICA", "ND"},
	61:  {"NOTA DE CRÉDITO ELECTRÓNICA", "NC"},
	110: {"FACTURA DE EXPORTACIÓN", "FEXP"},
	111: {"NOTA DE DÉBITO DE EXPORTACIÓN", "NDE"},
	112: {"NOTA DE CRÉDITO DE EXPORTACIÓN", "NCE"},
}

// DocumentTypeLabel resolves a referenced-document type code. Unknown codes
// resolve to the literal code.
func DocumentTypeLabel(code string) string {
	if label, ok := documentTypes[code]; ok {
		return label
	}
	return code
}

// TaxTypeLabel resolves an extra-tax/withholding type code. Unknown codes
// resolve to the literal code.
func TaxTypeLabel(code string) string {
	if label, ok := taxTypes[code]; ok {
		return label
	}
	return code
}

// PaymentTermsLabel labels a payment-terms code. Codes outside the known
// domain are labeled as unknown with the literal code attached; they are
// never read as credit.
func PaymentTermsLabel(terms model.PaymentTerms) string {
	if label, ok := paymentTerms[terms]; ok {
		return label
	}
	return fmt.Sprintf("Desconocido (%d)", int(terms))
}

// DocumentTypeInfo resolves the label and abbreviation for the document
// being rendered. Codes outside the table fall back to the stringified
// code and a "T<code>" abbreviation.
func DocumentTypeInfo(code int) (label, abbrev string) {
	if info, ok := rootDocumentTypes[code]; ok {
		return info.label, info.abbrev
	}
	return strconv.Itoa(code), "T" + strconv.Itoa(code)
}

package format

import "strings"

var units = [...]string{
	"", "uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho",
	"nueve", "diez", "once", "doce", "trece", "catorce", "quince",
	"dieciséis", "diecisiete", "dieciocho", "diecinueve", "veinte",
	"veintiuno", "veintidós", "veintitrés", "veinticuatro", "veinticinco",
	"veintiséis", "veintisiete", "veintiocho", "veintinueve",
}

var tens = [...]string{
	"", "", "", "treinta", "cuarenta", "cincuenta", "sesenta", "setenta",
	"ochenta", "noventa",
}

var hundreds = [...]string{
	"", "ciento", "doscientos", "trescientos", "cuatrocientos",
	"quinientos", "seiscientos", "setecientos", "ochocientos",
	"novecientos",
}

// AmountInWords spells out an integer peso amount in upper-case Spanish
// cardinals, as printed on the document ("Son: ... pesos").
func AmountInWords(n int64) string {
	if n == 0 {
		return "CERO"
	}

	sign := ""
	if n < 0 {
		sign = "MENOS "
		n = -n
	}
	return sign + strings.ToUpper(cardinal(n))
}

func cardinal(n int64) string {
	switch {
	case n < 1000:
		return belowThousand(int(n))
	case n < 1_000_000:
		thousands, rest := n/1000, n%1000
		head := "mil"
		if thousands > 1 {
			head = apocope(belowThousand(int(thousands))) + " mil"
		}
		if rest == 0 {
			return head
		}
		return head + " " + belowThousand(int(rest))
	default:
		millions, rest := n/1_000_000, n%1_000_000
		head := "un millón"
		if millions > 1 {
			head = apocope(cardinal(millions)) + " millones"
		}
		if rest == 0 {
			return head
		}
		return head + " " + cardinal(rest)
	}
}

func belowThousand(n int) string {
	if n == 0 {
		return ""
	}
	if n == 100 {
		return "cien"
	}

	var parts []string
	if n >= 100 {
		parts = append(parts, hundreds[n/100])
		n %= 100
	}
	switch {
	case n == 0:
	case n < 30:
		parts = append(parts, units[n])
	default:
		word := tens[n/10]
		if n%10 != 0 {
			word += " y " + units[n%10]
		}
		parts = append(parts, word)
	}
	return strings.Join(parts, " ")
}

// apocope shortens a trailing "uno" before mil/millón ("veintiún mil",
// "treinta y un millones").
func apocope(s string) string {
	if strings.HasSuffix(s, "veintiuno") {
		return strings.TrimSuffix(s, "veintiuno") + "veintiún"
	}
	if strings.HasSuffix(s, "uno") {
		return strings.TrimSuffix(s, "uno") + "un"
	}
	return s
}

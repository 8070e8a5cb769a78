// Package normalize provides text, number, and vocabulary normalization for
// SIMA quotation data.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFKD and removes combining marks, so "Feijão"
// and "Feijao" compare equal.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Text normalizes a string for matching: accents stripped, uppercased,
// trimmed. Never used for display.
func Text(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return strings.ToUpper(strings.TrimSpace(out))
}

// categoryRule pairs a normalized keyword with its category. The table is
// ordered: the first keyword contained in the product name wins, so more
// specific keywords must precede generic ones.
type categoryRule struct {
	keyword  string
	category string
}

var categoryRules = []categoryRule{
	{"SOJA", "Graos"}, {"MILHO", "Graos"}, {"TRIGO", "Graos"},
	{"FEIJAO", "Graos"}, {"ARROZ", "Graos"}, {"AVEIA", "Graos"},
	{"CEVADA", "Graos"}, {"CENTEIO", "Graos"}, {"SORGO", "Graos"},
	{"TRITICALE", "Graos"}, {"CANOLA", "Graos"}, {"GIRASSOL", "Graos"},
	{"AMENDOIM", "Graos"}, {"CAFE", "Graos"}, {"ALGODAO", "Graos"},
	{"LARANJA", "Frutas"}, {"BANANA", "Frutas"}, {"UVA", "Frutas"},
	{"MACA", "Frutas"}, {"MELANCIA", "Frutas"}, {"MELAO", "Frutas"},
	{"MAMAO", "Frutas"}, {"ABACAXI", "Frutas"}, {"MORANGO", "Frutas"},
	{"PESSEGO", "Frutas"}, {"AMEIXA", "Frutas"}, {"FIGO", "Frutas"},
	{"CAQUI", "Frutas"}, {"GOIABA", "Frutas"}, {"MANGA", "Frutas"},
	{"MARACUJA", "Frutas"}, {"LIMAO", "Frutas"}, {"TANGERINA", "Frutas"},
	{"PONCAN", "Frutas"}, {"ABACATE", "Frutas"},
	{"TOMATE", "Hortalicas"}, {"BATATA", "Hortalicas"},
	{"CEBOLA", "Hortalicas"}, {"ALHO", "Hortalicas"},
	{"MANDIOCA", "Hortalicas"}, {"CENOURA", "Hortalicas"},
	{"BETERRABA", "Hortalicas"}, {"REPOLHO", "Hortalicas"},
	{"ALFACE", "Hortalicas"}, {"COUVE", "Hortalicas"},
	{"PEPINO", "Hortalicas"}, {"PIMENTAO", "Hortalicas"},
	{"ABOBRINHA", "Hortalicas"}, {"ABOBORA", "Hortalicas"},
	{"CHUCHU", "Hortalicas"}, {"QUIABO", "Hortalicas"},
	{"BERINJELA", "Hortalicas"}, {"VAGEM", "Hortalicas"},
	{"BOI", "Pecuaria"}, {"VACA", "Pecuaria"}, {"NOVILHO", "Pecuaria"},
	{"BEZERRO", "Pecuaria"}, {"SUINO", "Pecuaria"}, {"PORCO", "Pecuaria"},
	{"FRANGO", "Pecuaria"}, {"GALINHA", "Pecuaria"}, {"OVO", "Pecuaria"},
	{"OVINO", "Pecuaria"}, {"CAPRINO", "Pecuaria"}, {"LEITE", "Pecuaria"},
	{"MADEIRA", "Florestal"}, {"LENHA", "Florestal"},
	{"PINUS", "Florestal"}, {"EUCALIPTO", "Florestal"},
	{"ERVA-MATE", "Florestal"}, {"ERVA MATE", "Florestal"},
}

// CategoryOther is the category assigned when no keyword matches.
const CategoryOther = "Outros"

// DetectCategory classifies a product name into its coarse category.
// It is a pure function of the product string.
func DetectCategory(product string) string {
	norm := Text(product)
	for _, rule := range categoryRules {
		if strings.Contains(norm, rule.keyword) {
			return rule.category
		}
	}
	return CategoryOther
}

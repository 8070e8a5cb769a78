package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/simaquote/simaquote-go/pkg/sima/models"
)

// productRule rewrites a raw product name to its canonical form. Rules are
// tried top to bottom, first match wins; specific patterns precede generic
// ones. Several patterns use "." in place of accented letters so that
// mojibake from legacy files still matches.
type productRule struct {
	re        *regexp.Regexp
	canonical string
}

var productRules = []productRule{
	// Arroz
	{regexp.MustCompile(`(?i)arroz.*(agulhinha|casca).*tipo\s*1`), "Arroz em casca tipo 1"},
	{regexp.MustCompile(`(?i)arroz.*sequeiro`), "Arroz sequeiro"},
	{regexp.MustCompile(`(?i)arroz.*irrigado`), "Arroz irrigado"},
	// Soja
	{regexp.MustCompile(`(?i)soja\s*industrial\s*tipo\s*1`), "Soja industrial tipo 1"},
	{regexp.MustCompile(`(?i)soja\s*industrial`), "Soja industrial tipo 1"},
	{regexp.MustCompile(`(?i)sojaindustrial`), "Soja industrial tipo 1"},
	{regexp.MustCompile(`(?i)^soja\s*$`), "Soja industrial tipo 1"},
	// Milho
	{regexp.MustCompile(`(?i)milho\s*amarelo`), "Milho amarelo tipo 1"},
	{regexp.MustCompile(`(?i)milho.*tipo\s*1`), "Milho amarelo tipo 1"},
	{regexp.MustCompile(`(?i)milho.*comum`), "Milho comum"},
	{regexp.MustCompile(`(?i)^milho\s*$`), "Milho"},
	// Trigo
	{regexp.MustCompile(`(?i)trigo.*(pao|ph|78)`), "Trigo pão"},
	{regexp.MustCompile(`(?i)^trigo\s*$`), "Trigo"},
	// Feijão
	{regexp.MustCompile(`(?i)feij.o\s*preto\s*tipo`), "Feijão preto tipo 1"},
	{regexp.MustCompile(`(?i)feij.o\s*preto`), "Feijão preto tipo 1"},
	{regexp.MustCompile(`(?i)feij.o\s*carioca\s*tipo`), "Feijão carioca tipo 1"},
	{regexp.MustCompile(`(?i)feij.o\s*carioca`), "Feijão carioca tipo 1"},
	{regexp.MustCompile(`(?i)feij.o.*(cor|de\s*cor)`), "Feijão de cor tipo 1"},
	// Café ("benefici?ado" tolerates the recurring "beneficado" typo)
	{regexp.MustCompile(`(?i)caf.\s*benefici?ado\s*bebida\s*dura`), "Café beneficiado bebida dura tipo 6"},
	{regexp.MustCompile(`(?i)caf.\s*benefici?ado`), "Café beneficiado bebida dura tipo 6"},
	{regexp.MustCompile(`(?i)caf.\s*(em\s*)?coco`), "Café em coco"},
	{regexp.MustCompile(`(?i)algod.o`), "Algodão em caroço"},
	// Boi/Vaca
	{regexp.MustCompile(`(?i)boi\s*gordo`), "Boi gordo"},
	{regexp.MustCompile(`(?i)boi.*(em\s*)?p[eé]`), "Boi em pé"},
	{regexp.MustCompile(`(?i)^boi\s*$`), "Boi em pé"},
	{regexp.MustCompile(`(?i)vaca\s*gorda`), "Vaca gorda"},
	{regexp.MustCompile(`(?i)vaca.*(em\s*)?p[eé]`), "Vaca em pé"},
	{regexp.MustCompile(`(?i)^vaca\s*$`), "Vaca em pé"},
	// Suíno
	{regexp.MustCompile(`(?i)su.no\s*(em\s*)?p.\s*tipo\s*carne\s*n.o\s*integrado`), "Suíno em pé tipo carne não integrado"},
	{regexp.MustCompile(`(?i)su.no\s*(em\s*)?p.\s*tipo\s*carne`), "Suíno em pé tipo carne"},
	{regexp.MustCompile(`(?i)su.noemp.\s*tipocarne`), "Suíno em pé tipo carne"},
	{regexp.MustCompile(`(?i)su.no\s*(em\s*)?p.`), "Suíno em pé tipo carne"},
	{regexp.MustCompile(`(?i)^su.no\s*$`), "Suíno em pé tipo carne"},
	{regexp.MustCompile(`(?i)frango.*corte`), "Frango de corte"},
	// Florestal
	{regexp.MustCompile(`(?i)erva[\s\-]?mate\s*folha\s*(em\s*)?barranco`), "Erva-mate folha em barranco"},
	{regexp.MustCompile(`(?i)erva[\s\-]?mate`), "Erva-mate"},
	// Hortaliças
	{regexp.MustCompile(`(?i)mandioca\s*industrial`), "Mandioca industrial"},
	{regexp.MustCompile(`(?i)mandioca.*amido`), "Mandioca industrial"},
	{regexp.MustCompile(`(?i)^mandioca\s*$`), "Mandioca industrial"},
}

// rejectPatterns drop records whose product is only a fragment: a bare
// unit, a bare type qualifier, or a mis-joined flush of the old three-row
// layout. Matching any pattern removes the record from canonical output.
var rejectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^sc\s*\d+`),
	regexp.MustCompile(`(?i)^em\s*barranco`),
	regexp.MustCompile(`(?i)^embarranco`),
	regexp.MustCompile(`(?i)^\(vivo\)`),
	regexp.MustCompile(`(?i)^vaca\s+bebida`),
	regexp.MustCompile(`(?i)^gr\.?longo`),
	regexp.MustCompile(`(?i)^irrigado\s*$`),
	regexp.MustCompile(`(?i)^sequeiro\s*$`),
	regexp.MustCompile(`(?i)^tipo\s*\d+\s*$`),
	regexp.MustCompile(`(?i)^tipo\s*carne`),
	regexp.MustCompile(`(?i)^n[aã]o\s*integrado`),
	regexp.MustCompile(`(?i)^arroba\s*$`),
	regexp.MustCompile(`(?i)^kg\s*$`),
	regexp.MustCompile(`(?i)vaca.*caf[eé]`),
	regexp.MustCompile(`(?i)caf[eé].*vaca`),
}

// productUnitEntry maps a canonical product to its official SIMA/DERAL
// quotation unit. Ordered to keep the case-insensitive fallback scan
// deterministic.
type productUnitEntry struct {
	product string
	unit    string
}

var productUnits = []productUnitEntry{
	{"Soja industrial tipo 1", "sc 60 Kg"},
	{"Milho amarelo tipo 1", "sc 60 Kg"},
	{"Milho comum", "sc 60 Kg"},
	{"Milho", "sc 60 Kg"},
	{"Trigo pão", "sc 60 Kg"},
	{"Trigo", "sc 60 Kg"},
	{"Feijão preto tipo 1", "sc 60 Kg"},
	{"Feijão carioca tipo 1", "sc 60 Kg"},
	{"Feijão de cor tipo 1", "sc 60 Kg"},
	{"Arroz em casca tipo 1", "sc 60 Kg"},
	{"Arroz irrigado", "sc 60 Kg"},
	{"Arroz sequeiro", "sc 60 Kg"},
	{"Café beneficiado bebida dura tipo 6", "sc 60 Kg"},
	{"Algodão em caroço", "arroba"},
	{"Café em coco", "kg renda"},
	{"Boi em pé", "arroba"},
	{"Boi gordo", "arroba"},
	{"Vaca em pé", "arroba"},
	{"Vaca gorda", "arroba"},
	{"Suíno em pé tipo carne", "kg"},
	{"Suíno em pé tipo carne não integrado", "kg"},
	{"Frango de corte", "kg"},
	{"Erva-mate", "arroba"},
	{"Erva-mate folha em barranco", "arroba"},
	{"Mandioca industrial", "tonelada"},
}

// unitHeuristic assigns a unit by substring when no exact table entry
// exists.
type unitHeuristic struct {
	substr string
	unit   string
}

var unitHeuristics = []unitHeuristic{
	{"soja", "sc 60 Kg"},
	{"milho", "sc 60 Kg"},
	{"trigo", "sc 60 Kg"},
	{"feij", "sc 60 Kg"},
	{"arroz", "sc 60 Kg"},
	{"boi", "arroba"},
	{"vaca", "arroba"},
	{"suino", "kg"},
	{"suíno", "kg"},
	{"frango", "kg"},
	{"erva", "arroba"},
	{"mandioca", "tonelada"},
	{"algod", "arroba"},
}

var (
	trailingPunctRe = regexp.MustCompile(`[.,;:!?\s]+$`)
	multiSpaceRe    = regexp.MustCompile(`\s+`)
	ptTitleCaser    = cases.Title(language.BrazilianPortuguese)
)

// titleCaseFixes restore Portuguese casing and accents that generic title
// casing breaks. Applied in order.
var titleCaseFixes = []struct {
	re  *regexp.Regexp
	sub string
}{
	{regexp.MustCompile(`\bEm\b`), "em"},
	{regexp.MustCompile(`\bDe\b`), "de"},
	{regexp.MustCompile(`\bDa\b`), "da"},
	{regexp.MustCompile(`\bDo\b`), "do"},
	{regexp.MustCompile(`\bTipo\b`), "tipo"},
	{regexp.MustCompile(`\bN[aã]o\b`), "não"},
	{regexp.MustCompile(`\bCafe\b`), "Café"},
	{regexp.MustCompile(`\bFeijao\b`), "Feijão"},
	{regexp.MustCompile(`\bSuino\b`), "Suíno"},
	{regexp.MustCompile(`\bPe\b`), "pé"},
	{regexp.MustCompile(`Erva-Mate`), "Erva-mate"},
}

// CleanProductName trims trailing punctuation and collapses whitespace.
// Returns "" when nothing survives.
func CleanProductName(name string) string {
	name = strings.TrimSpace(name)
	name = trailingPunctRe.ReplaceAllString(name, "")
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(name, " "))
}

// CanonicalProduct maps a raw product name to its canonical form. ok is
// false when the name is a rejected fragment and the record should be
// dropped. Unmatched names fall through to Portuguese title casing.
func CanonicalProduct(name string) (string, bool) {
	name = CleanProductName(name)
	if name == "" {
		return "", false
	}
	for _, re := range rejectPatterns {
		if re.MatchString(name) {
			return "", false
		}
	}
	for _, rule := range productRules {
		if rule.re.MatchString(name) {
			return rule.canonical, true
		}
	}
	name = ptTitleCaser.String(name)
	for _, fix := range titleCaseFixes {
		name = fix.re.ReplaceAllString(name, fix.sub)
	}
	return strings.TrimSpace(name), true
}

// CanonicalUnit returns the official quotation unit for a canonical product
// name, or "" when unknown.
func CanonicalUnit(product string) string {
	if product == "" {
		return ""
	}
	for _, e := range productUnits {
		if e.product == product {
			return e.unit
		}
	}
	lower := strings.ToLower(product)
	for _, e := range productUnits {
		if strings.ToLower(e.product) == lower {
			return e.unit
		}
	}
	// Café splits on preparation: "em coco" is quoted per kg of yield.
	if strings.Contains(lower, "cafe") || strings.Contains(lower, "café") {
		if strings.Contains(lower, "coco") {
			return "kg renda"
		}
		return "sc 60 Kg"
	}
	for _, h := range unitHeuristics {
		if strings.Contains(lower, h.substr) {
			return h.unit
		}
	}
	return ""
}

// Records canonicalizes a record batch in place: product names rewritten,
// fragment records dropped, units assigned from the canonical table, and
// category recomputed from the canonical name so the two never drift.
func Records(records []models.PriceRecord) []models.PriceRecord {
	out := records[:0]
	for _, r := range records {
		if r.ProductRaw == "" {
			r.ProductRaw = r.Product
		}
		canonical, ok := CanonicalProduct(r.Product)
		if !ok {
			continue
		}
		r.Product = canonical
		if u := CanonicalUnit(canonical); u != "" {
			r.Unit = u
		}
		r.Category = DetectCategory(canonical)
		out = append(out, r)
	}
	return out
}

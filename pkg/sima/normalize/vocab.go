package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// units is the curated unit-of-measure vocabulary found in column cells.
var units = map[string]struct{}{
	"sc 60 kg": {}, "sc 50 kg": {}, "sc60kg": {}, "sc50kg": {},
	"sc 60kg": {}, "sc 50kg": {},
	"arroba": {}, "kg": {}, "kg renda": {}, "kg embranco": {}, "kgrenda": {},
	"tonelada": {}, "ton": {}, "t": {},
	"unidade": {}, "un": {}, "un.": {}, "duzia": {}, "dúzia": {},
	"caixa": {}, "cx": {}, "litro": {}, "l": {},
	"cabeca": {}, "cabeça": {}, "cab": {}, "cab.": {},
}

// typesVarieties are varietal/grade descriptors that ride on the second row
// of the old three-row layout.
var typesVarieties = []string{
	"tipo 1", "tipo 2", "tipo 3", "tipo 4", "tipo 5", "tipo 6",
	"tipo1", "tipo2", "tipo3", "tipo4", "tipo5", "tipo6",
	"sequeiro", "irrigado",
	"em coco", "emcoco", "em caroço", "emcaroço",
	"em casca", "emcasca", "beneficiado",
	"em pé", "empé", "em pe", "empe",
	"tipo carne", "tipocarne", "padrão corte", "padrao corte",
	"bebida dura", "bebidadura",
	"folha em barranco", "folhaembarranco",
	"gr.longo", "gr.longo fino", "grlongo", "grlongofino",
	"de cor", "decor", "preto", "carioca",
	"não integrado", "naointegrado",
}

// invalidEntries are cell texts that can never be a product name: metric
// labels, placeholders, table furniture.
var invalidEntries = map[string]struct{}{
	"min": {}, "max": {}, "máx": {}, "m_c": {}, "media": {}, "média": {},
	"nan": {}, "none": {}, "-": {}, "--": {}, `\\\`: {}, "sinf": {}, "aus": {},
	"produto": {}, "produtos": {}, "total": {}, "fonte": {}, "obs": {},
	"nota": {},
	"(vivo)": {}, "vivo": {}, "sc 60": {}, "sc 50": {},
}

var (
	sackUnitRe      = regexp.MustCompile(`(?i)^sc\s*\d+\s*kg?$`)
	digitsOnlyRe    = regexp.MustCompile(`^\d+$`)
	sackPrefixRe    = regexp.MustCompile(`(?i)^sc\s*\d+`)
	barrancoRe      = regexp.MustCompile(`(?i)^em\s*barranco`)
	barrancoJoinRe  = regexp.MustCompile(`(?i)^embarranco`)
	backslashLeadRe = regexp.MustCompile(`^\\`)
)

// IsUnit reports whether text is a unit of measurement.
func IsUnit(text string) bool {
	if text == "" {
		return false
	}
	t := strings.ToLower(strings.TrimSpace(text))
	if _, ok := units[t]; ok {
		return true
	}
	return sackUnitRe.MatchString(t)
}

// IsTypeVariety reports whether text is a type/variety descriptor.
func IsTypeVariety(text string) bool {
	if text == "" {
		return false
	}
	t := strings.ToLower(strings.TrimSpace(text))
	for _, v := range typesVarieties {
		if strings.Contains(t, v) {
			return true
		}
	}
	return false
}

// IsInvalidEntry reports whether text cannot possibly be a product name.
func IsInvalidEntry(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return true
	}
	if _, ok := invalidEntries[t]; ok {
		return true
	}
	if utf8.RuneCountInString(t) < 3 {
		return true
	}
	if digitsOnlyRe.MatchString(t) || backslashLeadRe.MatchString(t) {
		return true
	}
	if sackPrefixRe.MatchString(t) || barrancoRe.MatchString(t) || barrancoJoinRe.MatchString(t) {
		return true
	}
	return strings.HasPrefix(t, "(")
}

// unitSuffixRes match a unit anchored at the end of a product cell, most
// specific first.
var unitSuffixRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s+(sc\s*\d+\s*[Kk]g)\s*$`),
	regexp.MustCompile(`(?i)\s+(arroba)\s*$`),
	regexp.MustCompile(`(?i)\s+(kg\s*renda)\s*$`),
	regexp.MustCompile(`(?i)\s+(kg\s*embranco)\s*$`),
	regexp.MustCompile(`(?i)\s+(kg)\s*$`),
	regexp.MustCompile(`(?i)\s+(tonelada)\s*$`),
	regexp.MustCompile(`(?i)\s+(duzia)\s*$`),
	regexp.MustCompile(`(?i)\s+(caixa)\s*$`),
	regexp.MustCompile(`(?i)\s+(litro)\s*$`),
	regexp.MustCompile(`(?i)\s+(un\.?)\s*$`),
}

// SplitUnitSuffix splits a trailing unit out of a product cell text, as in
// the newer "Soja industrial tipo 1    sc 60 Kg" columnar format. The unit
// is "" when no pattern matches.
func SplitUnitSuffix(text string) (product, unit string) {
	if text == "" {
		return "", ""
	}
	for _, re := range unitSuffixRes {
		if loc := re.FindStringSubmatchIndex(text); loc != nil {
			unit = strings.TrimSpace(text[loc[2]:loc[3]])
			product = strings.TrimSpace(text[:loc[0]])
			return product, unit
		}
	}
	return text, ""
}

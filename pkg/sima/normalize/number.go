package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/simaquote/simaquote-go/pkg/sima/models"
)

// Price sanity bounds. Values outside (0, MaxPrice] are treated as absent,
// never as zero; they reject OCR and parse garbage.
const MaxPrice = 100000

// numberPlaceholders are source markers for "no quotation" (sem informação,
// ausente) plus assorted filler.
var numberPlaceholders = map[string]struct{}{
	`\\\`: {}, "SINF": {}, "AUS": {}, "-": {}, "--": {}, "": {}, "NAN": {},
}

var (
	currencyPrefixRe = regexp.MustCompile(`R\$\s*`)
	innerSpaceRe     = regexp.MustCompile(`\s+`)
)

// ParseNumber parses a price from a worksheet cell, handling the Brazilian
// decimal-comma format. ok is false for empty cells, placeholders, and
// out-of-range values. It never panics and never maps absence to 0.
func ParseNumber(cell models.Cell) (float64, bool) {
	switch cell.Kind {
	case models.CellEmpty:
		return 0, false
	case models.CellNumber:
		return boundsCheck(cell.Number)
	}
	return ParseNumberString(cell.Text)
}

// ParseNumberString is ParseNumber over a raw string value.
func ParseNumberString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if _, bad := numberPlaceholders[strings.ToUpper(s)]; bad {
		return 0, false
	}

	s = currencyPrefixRe.ReplaceAllString(s, "")
	s = innerSpaceRe.ReplaceAllString(s, "")

	// Decide the decimal separator: of "." and ",", whichever appears
	// later is decimal; the other is thousands and is dropped.
	if strings.Contains(s, ",") {
		if dot := strings.LastIndex(s, "."); dot >= 0 && dot < strings.LastIndex(s, ",") {
			s = strings.ReplaceAll(s, ".", "")
		}
		s = strings.ReplaceAll(s, ",", ".")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return boundsCheck(f)
}

func boundsCheck(f float64) (float64, bool) {
	if f <= 0 || f > MaxPrice {
		return 0, false
	}
	return f, true
}

// Round2 rounds to two decimal places, the precision of the output table.
func Round2(f float64) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 2, 64), 64)
	if err != nil {
		return f
	}
	return v
}

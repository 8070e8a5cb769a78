package parser

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/simaquote/simaquote-go/pkg/sima/models"
	"github.com/simaquote/simaquote-go/pkg/sima/normalize"
)

// garbageProductKeywords mark rows that are table furniture, not products.
var garbageProductKeywords = []string{"PRODUTO", "TOTAL", "FONTE", "OBS", "NOTA"}

// ExtractWorksheet classifies one worksheet and emits its price records.
// Unrecognizable sheets yield an empty slice.
func ExtractWorksheet(ws models.Worksheet) []models.PriceRecord {
	layout, ok := Classify(ws.Grid)
	if !ok {
		return nil
	}

	var date *time.Time
	if t, ok := ResolveDate(ws.SheetName, fileStem(ws.FileName)); ok {
		date = &t
	}

	switch layout.Kind {
	case models.LayoutGenericHeaderTable:
		return extractGeneric(ws, layout, date)
	default:
		return extractMetricRows(ws, layout, date)
	}
}

// ExtractWorkbook runs extraction over every sheet of a workbook. A sheet
// that yields nothing is skipped, never fatal.
func ExtractWorkbook(wb *models.Workbook) []models.PriceRecord {
	var records []models.PriceRecord
	for _, ws := range wb.Sheets {
		records = append(records, ExtractWorksheet(ws)...)
	}
	return records
}

// extractGeneric walks data rows of a header table: one product per row,
// one price column per region.
func extractGeneric(ws models.Worksheet, layout models.Layout, date *time.Time) []models.PriceRecord {
	var records []models.PriceRecord
	grid := ws.Grid

	for r := layout.HeaderRow + 1; r < grid.Rows(); r++ {
		product := cellOneLine(grid.At(r, layout.ProductCol))
		if product == "" || utf8.RuneCountInString(product) < 2 {
			continue
		}
		upper := strings.ToUpper(product)
		if upper == "NAN" || upper == "NONE" || upper == "-" || upper == "--" {
			continue
		}
		if containsAny(upper, garbageProductKeywords) {
			continue
		}

		product, embeddedUnit := normalize.SplitUnitSuffix(product)
		if product == "" {
			continue
		}

		unit := embeddedUnit
		if layout.UnitCol >= 0 {
			if u := cellOneLine(grid.At(r, layout.UnitCol)); u != "" {
				unit = u
			}
		}

		var prices []float64
		for _, c := range layout.PriceCols {
			if v, ok := normalize.ParseNumber(grid.At(r, c)); ok {
				prices = append(prices, v)
			}
		}
		if len(prices) == 0 {
			continue
		}

		rec := newRecord(product, unit, date, ws.FileName)
		rec.PriceMean = normalize.Round2(mean(prices))
		rec.PriceMin = floatPtr(normalize.Round2(minOf(prices)))
		rec.PriceMax = floatPtr(normalize.Round2(maxOf(prices)))
		rec.QuoteCount = len(prices)
		records = append(records, rec)
	}
	return records
}

// metricAccumulator carries the in-progress product of a metric-row walk.
// One product spans up to three labeled rows (MIN, M_C, MAX); the
// accumulator is scoped to a single worksheet and reset on every flush.
type metricAccumulator struct {
	nameParts []string
	unit      string

	min, mean, max                *float64
	minCount, meanCount, maxCount int
}

func (a *metricAccumulator) pending() bool {
	return len(a.nameParts) > 0 || a.min != nil || a.mean != nil || a.max != nil
}

func (a *metricAccumulator) reset() {
	*a = metricAccumulator{}
}

// flush closes the current product and emits its record when a name and a
// usable mean exist. Mean falls back to min, then max, when the M_C row was
// missing or unparseable.
func (a *metricAccumulator) flush(date *time.Time, fileName string) (models.PriceRecord, bool) {
	defer a.reset()

	name := normalize.CleanProductName(strings.Join(a.nameParts, " "))
	if name == "" {
		return models.PriceRecord{}, false
	}

	meanVal, count := a.mean, a.meanCount
	if meanVal == nil {
		meanVal, count = a.min, a.minCount
	}
	if meanVal == nil {
		meanVal, count = a.max, a.maxCount
	}
	if meanVal == nil {
		return models.PriceRecord{}, false
	}

	if a.min != nil && a.mean != nil && a.max != nil {
		if !(*a.min <= *a.mean && *a.mean <= *a.max) {
			return models.PriceRecord{}, false
		}
	}

	rec := newRecord(name, a.unit, date, fileName)
	rec.PriceMean = *meanVal
	rec.PriceMin = a.min
	rec.PriceMax = a.max
	rec.QuoteCount = count
	return rec, true
}

// extractMetricRows runs the shared state machine for both metric-label
// layouts. Rows without a MIN/M_C/MAX label are ignored. A MIN label while
// a product is pending closes that product first: the flush-on-new-MIN
// invariant of the three-row format.
func extractMetricRows(ws models.Worksheet, layout models.Layout, date *time.Time) []models.PriceRecord {
	grid := ws.Grid
	labelCol := layout.ProductCol + 1
	firstPriceCol := layout.ProductCol + 2

	dataStart := layout.HeaderRow + 2

	var records []models.PriceRecord
	var acc metricAccumulator

	for r := dataStart; r < grid.Rows(); r++ {
		label := parseMetricLabel(grid.At(r, labelCol))
		if label == metricNone {
			continue
		}

		if label == metricMin && acc.pending() {
			if rec, ok := acc.flush(date, ws.FileName); ok {
				records = append(records, rec)
			}
		}

		if text := cellOneLine(grid.At(r, layout.ProductCol)); text != "" {
			acc.consumeNameCell(text)
		}

		var prices []float64
		for c := firstPriceCol; c < firstPriceCol+maxPriceCols; c++ {
			if v, ok := normalize.ParseNumber(grid.At(r, c)); ok {
				prices = append(prices, v)
			}
		}
		if len(prices) > 0 {
			avg := normalize.Round2(mean(prices))
			switch label {
			case metricMin:
				acc.min, acc.minCount = floatPtr(avg), len(prices)
			case metricMean:
				acc.mean, acc.meanCount = floatPtr(avg), len(prices)
			case metricMax:
				acc.max, acc.maxCount = floatPtr(avg), len(prices)
			}
		}
	}

	if rec, ok := acc.flush(date, ws.FileName); ok {
		records = append(records, rec)
	}
	return records
}

// consumeNameCell routes a product-column cell into the accumulator by its
// role: an embedded "name unit" pair, a bare unit (old MAX row), a
// type/variety qualifier (old M_C row), or a fresh name part.
func (a *metricAccumulator) consumeNameCell(text string) {
	if part, unit := normalize.SplitUnitSuffix(text); unit != "" && !normalize.IsInvalidEntry(part) {
		a.nameParts = append(a.nameParts, part)
		a.unit = unit
		return
	}
	switch {
	case normalize.IsUnit(text):
		a.unit = text
	case normalize.IsTypeVariety(text):
		a.nameParts = append(a.nameParts, text)
	case !normalize.IsInvalidEntry(text):
		a.nameParts = append(a.nameParts, text)
	}
}

func newRecord(product, unit string, date *time.Time, fileName string) models.PriceRecord {
	rec := models.PriceRecord{
		ProductRaw: product,
		Product:    product,
		Unit:       unit,
		Category:   normalize.DetectCategory(product),
		SourceFile: fileName,
	}
	if date != nil {
		rec.SetDate(*date)
	}
	return rec
}

func fileStem(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func floatPtr(f float64) *float64 { return &f }

func mean(vs []float64) float64 {
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func minOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

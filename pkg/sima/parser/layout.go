package parser

import (
	"strings"

	"github.com/simaquote/simaquote-go/pkg/sima/models"
	"github.com/simaquote/simaquote-go/pkg/sima/normalize"
)

// Heuristic constants inherited from the historical pipeline. Downstream
// consumers depend on the exact values; do not "improve" them.
const (
	// headerScanRows bounds the header-keyword search.
	headerScanRows = 15
	// defaultHeaderRow is assumed when no header keyword is found.
	defaultHeaderRow = 3
	// metricScanRows is the window after the header searched for
	// MIN/M_C/MAX labels.
	metricScanRows = 30
	// metricLabelThreshold is the label count that classifies a sheet as
	// a metric-row layout.
	metricLabelThreshold = 3
	// minDataRows rejects summary/cover sheets.
	minDataRows = 5
	// leadColScanRows: a sheet with no first-column value this early is a
	// cover sheet.
	leadColScanRows = 10
	// maxPriceCols caps the regional price column window in metric
	// layouts.
	maxPriceCols = 20
)

// headerKeywords mark a header row and the product column.
var headerKeywords = []string{"produto", "descricao", "item", "mercadoria", "especificacao"}

// nonPriceHeaderKeywords exclude header columns from the price set.
var nonPriceHeaderKeywords = []string{"PRODUTO", "DESCRI", "ITEM", "UNID", "ESPEC"}

// Classify inspects a worksheet grid and resolves its layout, or reports
// ok=false for sheets that carry no extractable table (cover pages,
// summaries, empty tabs).
func Classify(grid models.Grid) (models.Layout, bool) {
	if grid.Rows() < minDataRows {
		return models.Layout{}, false
	}
	if !hasLeadColumnValue(grid) {
		return models.Layout{}, false
	}

	layout := models.Layout{UnitCol: -1}
	layout.HeaderRow, layout.HeaderFound = findHeaderRow(grid)
	layout.ProductCol = findProductColumn(grid, layout.HeaderRow)
	layout.UnitCol = findUnitColumn(grid, layout.HeaderRow)

	if countMetricLabels(grid, layout) >= metricLabelThreshold {
		if hasEmbeddedUnits(grid, layout) {
			layout.Kind = models.LayoutColumnarNewFormat
		} else {
			layout.Kind = models.LayoutThreeRowMinMeanMax
		}
		return layout, true
	}

	layout.Kind = models.LayoutGenericHeaderTable
	layout.PriceCols = findPriceColumns(grid, layout)
	return layout, true
}

func hasLeadColumnValue(grid models.Grid) bool {
	for r := 0; r < leadColScanRows && r < grid.Rows(); r++ {
		if !grid.At(r, 0).IsEmpty() {
			return true
		}
	}
	return false
}

func findHeaderRow(grid models.Grid) (row int, found bool) {
	for r := 0; r < headerScanRows && r < grid.Rows(); r++ {
		for c := 0; c < grid.Cols(); c++ {
			cell := grid.At(r, c)
			if cell.IsEmpty() {
				continue
			}
			text := strings.ToLower(cell.String())
			for _, kw := range headerKeywords {
				if strings.Contains(text, kw) {
					return r, true
				}
			}
		}
	}
	return defaultHeaderRow, false
}

func findProductColumn(grid models.Grid, headerRow int) int {
	for c := 0; c < grid.Cols(); c++ {
		cell := grid.At(headerRow, c)
		if cell.IsEmpty() {
			continue
		}
		text := strings.ToLower(cell.String())
		for _, kw := range headerKeywords {
			if strings.Contains(text, kw) {
				return c
			}
		}
	}
	return 0
}

func findUnitColumn(grid models.Grid, headerRow int) int {
	for c := 0; c < grid.Cols(); c++ {
		text := strings.ToLower(grid.At(headerRow, c).String())
		if strings.Contains(text, "unid") {
			return c
		}
	}
	return -1
}

// findPriceColumns treats every header column except product/unit/
// description columns as price-bearing.
func findPriceColumns(grid models.Grid, layout models.Layout) []int {
	var cols []int
	for c := 0; c < grid.Cols(); c++ {
		cell := grid.At(layout.HeaderRow, c)
		if cell.IsEmpty() {
			continue
		}
		text := strings.ToUpper(cell.String())
		skip := false
		for _, kw := range nonPriceHeaderKeywords {
			if strings.Contains(text, kw) {
				skip = true
				break
			}
		}
		if !skip {
			cols = append(cols, c)
		}
	}
	return cols
}

// metricLabel classifies the cell immediately right of the product column.
type metricLabel int

const (
	metricNone metricLabel = iota
	metricMin
	metricMean
	metricMax
)

// parseMetricLabel recognizes MIN / M_C / MAX label cells, including the
// encoding-corrupted "M�X" variant common in legacy files.
func parseMetricLabel(cell models.Cell) metricLabel {
	if cell.Kind != models.CellText {
		return metricNone
	}
	switch strings.ToUpper(strings.TrimSpace(cell.Text)) {
	case "MIN":
		return metricMin
	case "M_C", "MC", "MEDIA", "MÉDIA":
		return metricMean
	case "MAX", "MÁX", "M�X":
		return metricMax
	}
	return metricNone
}

func countMetricLabels(grid models.Grid, layout models.Layout) int {
	count := 0
	labelCol := layout.ProductCol + 1
	for r := layout.HeaderRow + 1; r < layout.HeaderRow+1+metricScanRows && r < grid.Rows(); r++ {
		if parseMetricLabel(grid.At(r, labelCol)) != metricNone {
			count++
		}
	}
	return count
}

// hasEmbeddedUnits reports whether labeled rows carry "product ... unit"
// combined cells, the marker of the newer columnar format.
func hasEmbeddedUnits(grid models.Grid, layout models.Layout) bool {
	labelCol := layout.ProductCol + 1
	for r := layout.HeaderRow + 1; r < layout.HeaderRow+1+metricScanRows && r < grid.Rows(); r++ {
		if parseMetricLabel(grid.At(r, labelCol)) == metricNone {
			continue
		}
		cell := grid.At(r, layout.ProductCol)
		if cell.IsEmpty() {
			continue
		}
		// A bare unit cell ("sc 60 kg") also splits; only a valid
		// product part marks the combined-cell format.
		if part, unit := normalize.SplitUnitSuffix(cellOneLine(cell)); unit != "" && !normalize.IsInvalidEntry(part) {
			return true
		}
	}
	return false
}

// cellOneLine flattens embedded newlines, which legacy files use inside
// product cells.
func cellOneLine(cell models.Cell) string {
	return strings.TrimSpace(strings.ReplaceAll(cell.String(), "\n", " "))
}

package models

// LayoutKind identifies which of the known worksheet layouts a sheet
// matches.
type LayoutKind string

const (
	// LayoutColumnarNewFormat is the 2018+ format: product name with an
	// embedded unit suffix in the product column, MIN/M_C/MAX metric
	// labels in the next column.
	LayoutColumnarNewFormat LayoutKind = "columnar_new"
	// LayoutThreeRowMinMeanMax is the 2003-2017 format: one product spans
	// three consecutive rows (name+MIN, variety+M_C, unit+MAX).
	LayoutThreeRowMinMeanMax LayoutKind = "three_row_min_mean_max"
	// LayoutGenericHeaderTable is a free-form table with a header row and
	// one price column per region.
	LayoutGenericHeaderTable LayoutKind = "generic_header"
)

// Layout is the transient result of classifying one worksheet. It is never
// persisted.
type Layout struct {
	Kind LayoutKind
	// HeaderRow is the 0-based index of the header row.
	HeaderRow int
	// HeaderFound reports whether the header row was located by keyword
	// or fell back to the default.
	HeaderFound bool
	// ProductCol is the 0-based column holding product names.
	ProductCol int
	// UnitCol is the column holding units, -1 when absent.
	UnitCol int
	// PriceCols lists the price-bearing columns in order. Empty for the
	// metric-label layouts, which read a fixed column window instead.
	PriceCols []int
}

// Package sima orchestrates the SIMA quotation ETL: workbook extraction,
// canonicalization, and consolidation into the single output table.
package sima

// Options configures a pipeline run.
type Options struct {
	// InputDir is the directory holding the spreadsheet archive
	// (*.xls, *.xlsx, *.xlsm).
	InputDir string
	// ScrapedCSV is an optional already-tabular record batch merged at
	// consolidation without re-extraction ("" = none).
	ScrapedCSV string
	// OutputPath is the canonical table location.
	OutputPath string
	// Workers bounds the per-file extraction pool. Values < 1 mean
	// sequential.
	Workers int
}

// DefaultOptions returns default pipeline options.
func DefaultOptions() Options {
	return Options{
		InputDir:   "data/extracted",
		OutputPath: "data/processed/consolidated.csv",
		Workers:    4,
	}
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}

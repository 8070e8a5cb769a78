package models

// Worksheet is one tab of a workbook, tagged with its origin.
type Worksheet struct {
	// FileName is the base name of the originating workbook file.
	FileName string
	// SheetName is the tab name inside the workbook.
	SheetName string
	// Grid holds the sheet's cells.
	Grid Grid
}

// Workbook is a parsed spreadsheet file with all its sheets.
type Workbook struct {
	// FileName is the base name of the file (no path).
	FileName string
	// Sheets lists the worksheets in workbook order.
	Sheets []Worksheet
}

// Package parser turns SIMA spreadsheet files into worksheet grids and
// extracts price records from them.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/simaquote/simaquote-go/pkg/sima/models"
)

// legacyCharset is the code page of the pre-2010 .xls archives.
const legacyCharset = "cp1252"

// LoadWorkbook reads a spreadsheet file into cell grids. The format is
// chosen by extension: .xls goes through the BIFF reader, everything else
// through excelize.
func LoadWorkbook(path string) (*models.Workbook, error) {
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		return loadXLS(path)
	}
	return loadXLSX(path)
}

func loadXLSX(path string) (*models.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	wb := &models.Workbook{FileName: filepath.Base(path)}
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			// A broken sheet must not sink the workbook.
			continue
		}
		wb.Sheets = append(wb.Sheets, models.Worksheet{
			FileName:  wb.FileName,
			SheetName: sheetName,
			Grid:      gridFromStrings(rows),
		})
	}
	return wb, nil
}

func loadXLS(path string) (*models.Workbook, error) {
	book, err := xls.Open(path, legacyCharset)
	if err != nil {
		return nil, fmt.Errorf("open legacy workbook %s: %w", filepath.Base(path), err)
	}

	wb := &models.Workbook{FileName: filepath.Base(path)}
	for i := 0; i < book.NumSheets(); i++ {
		sheet := book.GetSheet(i)
		if sheet == nil {
			continue
		}
		grid := make(models.Grid, 0, int(sheet.MaxRow)+1)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				grid = append(grid, nil)
				continue
			}
			cells := make([]models.Cell, row.LastCol())
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				cells[c] = models.NewCell(strings.TrimSpace(row.Col(c)))
			}
			grid = append(grid, cells)
		}
		wb.Sheets = append(wb.Sheets, models.Worksheet{
			FileName:  wb.FileName,
			SheetName: sheet.Name,
			Grid:      grid,
		})
	}
	return wb, nil
}

// gridFromStrings types raw excelize row data into cells.
func gridFromStrings(rows [][]string) models.Grid {
	grid := make(models.Grid, len(rows))
	for i, row := range rows {
		cells := make([]models.Cell, len(row))
		for j, v := range row {
			cells[j] = models.NewCell(strings.TrimSpace(v))
		}
		grid[i] = cells
	}
	return grid
}

package table

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"kitabcloud-admin/internal/domains/entity"
)

// Export renders rows through the descriptor columns into a workbook with
// one sheet named after the entity.
func Export(d *entity.Descriptor, rows []entity.Record) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := d.Plural
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	// Row 1: header
	for colIdx, header := range Headers(d) {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil && len(d.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(d.Columns), 1)
		_ = f.SetCellStyle(sheetName, "A1", last, headerStyle)
	}

	// Data rows start at row 2
	for i, rec := range rows {
		for colIdx, col := range d.Columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, i+2)
			if err := f.SetCellValue(sheetName, cell, exportValue(col, rec)); err != nil {
				return nil, fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	return f, nil
}

// WriteXLSX exports rows and streams the workbook to w.
func WriteXLSX(w io.Writer, d *entity.Descriptor, rows []entity.Record) error {
	f, err := Export(d, rows)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// exportValue keeps raw numbers numeric so spreadsheets can sum them.
func exportValue(col entity.Column, rec entity.Record) any {
	if c, ok := col.(entity.TextColumn); ok {
		if n, isNum := rec[c.Field].(float64); isNum {
			return n
		}
	}
	return Render(col, rec).Text
}

// ExportFileName is the download name of an export.
func ExportFileName(d *entity.Descriptor) string {
	return d.Name + ".xlsx"
}

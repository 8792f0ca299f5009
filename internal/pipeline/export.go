package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"corralon/internal"
)

// ExportPendingToXLSX writes unresolved lines to a spreadsheet for offline
// review.
func ExportPendingToXLSX(lines []internal.PendingLine, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"line_id", "origin", "source", "supplier_code", "raw_description", "amount", "suggested_alias", "created_at",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, line := range lines {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, line.LineID)
		set(2, line.Origin)
		set(3, line.SourceName)
		set(4, derefString(line.SupplierCode))
		set(5, line.RawDescription)
		set(6, line.Amount)
		set(7, derefString(line.SuggestedAlias))
		set(8, line.CreatedAt)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

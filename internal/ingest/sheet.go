package ingest

import (
	"bytes"

	xls "github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// SheetDecoder turns a binary spreadsheet into a string matrix. The import
// logic only depends on this interface, not on a particular format library.
type SheetDecoder interface {
	Decode(data []byte) ([][]string, error)
}

// XLSXDecoder reads modern OOXML workbooks via excelize. Only the first sheet
// is imported.
type XLSXDecoder struct{}

func (XLSXDecoder) Decode(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, formatErrorf("cannot read xlsx workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, formatErrorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, formatErrorf("cannot read sheet %q: %v", sheets[0], err)
	}
	return rows, nil
}

// XLSDecoder reads legacy BIFF workbooks, which excelize cannot open. Old
// distributor software still emails these.
type XLSDecoder struct{}

func (XLSDecoder) Decode(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil || wb == nil {
		return nil, formatErrorf("cannot read xls workbook: %v", err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, formatErrorf("spreadsheet has no sheets")
	}

	maxCols := xlsWidth(sheet)
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		cols := make([]string, maxCols)
		if row := sheet.Row(i); row != nil {
			for j := 0; j < maxCols; j++ {
				cols[j] = row.Col(j)
			}
		}
		rows = append(rows, cols)
	}
	return rows, nil
}

// xlsWidth probes every row for the widest populated column; Row.LastCol is
// unreliable on files written by non-Excel producers.
func xlsWidth(sheet *xls.WorkSheet) int {
	const probeMax = 256
	maxCols := 1
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		for j := 0; j < probeMax; j++ {
			if row.Col(j) != "" && j+1 > maxCols {
				maxCols = j + 1
			}
		}
	}
	return maxCols
}

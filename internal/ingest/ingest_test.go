package ingest

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func mkXLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	buf := bytes.NewBuffer(nil)
	_, _ = f.WriteTo(buf)
	return buf.Bytes()
}

func TestParseImportFileCSV(t *testing.T) {
	csv := "codigo,descripcion,costo\n" +
		"A-1,\"Caño 1/2\",120\n" +
		",,\n" +
		"   ,  , \n" +
		"A-2,Válvula esférica,300\n"

	table, err := ParseImportFile(strings.NewReader(csv), "lista.csv")
	if err != nil {
		t.Fatal(err)
	}

	wantHeaders := []string{"codigo", "descripcion", "costo"}
	if len(table.Headers) != len(wantHeaders) {
		t.Fatalf("headers = %v", table.Headers)
	}
	for i, h := range wantHeaders {
		if table.Headers[i] != h {
			t.Fatalf("headers = %v", table.Headers)
		}
	}

	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if table.Rows[0]["descripcion"] != "Caño 1/2" {
		t.Fatalf("quote stripping failed: %q", table.Rows[0]["descripcion"])
	}
	if table.Rows[1]["codigo"] != "A-2" {
		t.Fatalf("row order lost: %+v", table.Rows[1])
	}
}

func TestDelimiterPrecedence(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantVal string
	}{
		{name: "tab beats semicolon", content: "a\tb;c\n1\t2;3\n", wantVal: "1"},
		{name: "semicolon beats comma", content: "a;b,c\n1;2,3\n", wantVal: "1"},
		{name: "comma fallback", content: "a,b\n1,2\n", wantVal: "1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			table, err := ParseImportFile(strings.NewReader(tc.content), "datos.txt")
			if err != nil {
				t.Fatal(err)
			}
			if got := table.Rows[0]["a"]; got != tc.wantVal {
				t.Fatalf("got %q, headers %v", got, table.Headers)
			}
		})
	}
}

func TestHeaderSanitization(t *testing.T) {
	csv := "a,,a\n1,2,3\n"
	table, err := ParseImportFile(strings.NewReader(csv), "x.csv")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"a", "column_2", "a_2"}
	for i, h := range want {
		if table.Headers[i] != h {
			t.Fatalf("headers = %v, want %v", table.Headers, want)
		}
	}
}

func TestHeaderSuffixSkipsTaken(t *testing.T) {
	// "a_2" already present, so the second "a" must take _3
	csv := "a,a_2,a\n1,2,3\n"
	table, err := ParseImportFile(strings.NewReader(csv), "x.csv")
	if err != nil {
		t.Fatal(err)
	}
	if table.Headers[2] != "a_3" {
		t.Fatalf("headers = %v", table.Headers)
	}
}

func TestRaggedRows(t *testing.T) {
	csv := "a,b\n1,2,EXTRA\n3\n"
	table, err := ParseImportFile(strings.NewReader(csv), "x.csv")
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := table.Rows[0]["EXTRA"]; ok {
		t.Fatal("extra cell leaked into row")
	}
	if table.Rows[1]["b"] != "" {
		t.Fatalf("missing trailing cell should default to empty, got %q", table.Rows[1]["b"])
	}
}

func TestNoDataRowsFails(t *testing.T) {
	for _, content := range []string{"", "solo encabezado\n", "   \n\t\n"} {
		_, err := ParseImportFile(strings.NewReader(content), "x.csv")
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Fatalf("content %q: expected FormatError, got %v", content, err)
		}
	}
}

func TestParseImportFileXLSX(t *testing.T) {
	blob := mkXLSX(t, [][]any{
		{"codigo", "descripcion", "costo"},
		{"A-1", "Caño epoxi", 1250.5},
		{"", "", ""},
		{"A-2", "Llave francesa", 800},
	})

	table, err := ParseImportFile(bytes.NewReader(blob), "catalogo.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if table.Rows[0]["descripcion"] != "Caño epoxi" {
		t.Fatalf("row = %+v", table.Rows[0])
	}
}

func TestParseImportFileXLSXNoData(t *testing.T) {
	blob := mkXLSX(t, [][]any{{"solo", "encabezado"}})
	_, err := ParseImportFile(bytes.NewReader(blob), "vacio.xlsx")
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestParseImportFileHTML(t *testing.T) {
	html := `<html><body><table>
		<tr><th>descripcion</th><th>precio</th></tr>
		<tr><td>Caño  de   PVC</td><td>$ 1.234,56</td></tr>
	</table></body></html>`

	table, err := ParseImportFile(strings.NewReader(html), "lista.html")
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("rows = %d", len(table.Rows))
	}
	if table.Rows[0]["descripcion"] != "Caño de PVC" {
		t.Fatalf("row = %+v", table.Rows[0])
	}
}

func TestFromMatrix(t *testing.T) {
	table, err := FromMatrix([][]string{
		{"", ""},
		{"a", "b"},
		{"1", "2"},
	})
	if err != nil {
		t.Fatal(err)
	}
	// leading blank row is skipped, so "a"/"b" become the header row
	if table.Headers[0] != "a" || len(table.Rows) != 1 {
		t.Fatalf("table = %+v", table)
	}
}

// Package ingest turns uploaded supplier files (delimited text, spreadsheets,
// HTML exports) into a sanitized header list plus row mappings.
package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Row maps a sanitized header name to the trimmed cell value.
type Row map[string]string

// Table is the result of parsing one import file. Headers are pairwise
// distinct and Rows never contain an all-blank row.
type Table struct {
	Headers []string
	Rows    []Row
}

// FormatError is a structural failure: the file as a whole cannot be imported.
// Cell-level garbage never produces one; it degrades to empty values instead.
type FormatError struct {
	msg string
}

func (e *FormatError) Error() string { return e.msg }

func formatErrorf(format string, args ...any) *FormatError {
	return &FormatError{msg: fmt.Sprintf(format, args...)}
}

const emptyHeaderPrefix = "column_"

// ParseImportFile decodes the file according to its extension: .xlsx and .xls
// go through a spreadsheet decoder, .html/.htm through the first HTML table,
// anything else is treated as delimited text.
func ParseImportFile(r io.Reader, filename string) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return parseWithDecoder(XLSXDecoder{}, data)
	case ".xls":
		return parseWithDecoder(XLSDecoder{}, data)
	case ".html", ".htm":
		return parseHTML(data)
	default:
		return parseDelimited(data)
	}
}

func parseWithDecoder(dec SheetDecoder, data []byte) (*Table, error) {
	matrix, err := dec.Decode(data)
	if err != nil {
		return nil, err
	}
	return FromMatrix(matrix)
}

// FromMatrix builds a Table from a raw string matrix whose first non-blank row
// is the header row. Exported so callers with their own decoder can feed a
// pre-decoded matrix through the same sanitization.
func FromMatrix(matrix [][]string) (*Table, error) {
	withData := matrix[:0:0]
	for _, row := range matrix {
		if !allBlank(row) {
			withData = append(withData, row)
		}
	}
	if len(withData) < 2 {
		return nil, formatErrorf("file is empty or has no data rows")
	}

	headers := sanitizeHeaders(withData[0])
	return &Table{Headers: headers, Rows: buildRows(headers, withData[1:])}, nil
}

func parseDelimited(data []byte) (*Table, error) {
	text := decodeCharset(data)

	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, formatErrorf("file is empty or has no data rows")
	}

	delimiter := detectDelimiter(lines[0])
	matrix := make([][]string, 0, len(lines))
	for _, line := range lines {
		cells := strings.Split(line, delimiter)
		for i, cell := range cells {
			cells[i] = unquote(cell)
		}
		matrix = append(matrix, cells)
	}

	headers := sanitizeHeaders(matrix[0])
	return &Table{Headers: headers, Rows: buildRows(headers, matrix[1:])}, nil
}

// decodeCharset converts legacy single-byte encodings to UTF-8. Spanish price
// lists exported from old desktop software are frequently Windows-1252.
func decodeCharset(data []byte) string {
	peek := data
	if len(peek) > 2048 {
		peek = peek[:2048]
	}
	cs := "utf-8"
	if len(peek) > 0 {
		if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
			cs = strings.ToLower(det.Charset)
		}
	}

	switch cs {
	case "windows-1252", "iso-8859-1", "iso-8859-15":
		if out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data); err == nil {
			return string(out)
		}
	}
	return string(data)
}

// detectDelimiter inspects the header line with precedence tab > semicolon > comma.
func detectDelimiter(line string) string {
	switch {
	case strings.Contains(line, "\t"):
		return "\t"
	case strings.Contains(line, ";"):
		return ";"
	default:
		return ","
	}
}

// unquote strips a single leading and trailing double-quote. Full CSV quote
// escaping is out of scope for the hand-authored files this tool receives.
func unquote(cell string) string {
	cell = strings.TrimPrefix(cell, `"`)
	return strings.TrimSuffix(cell, `"`)
}

// sanitizeHeaders replaces blank header cells with column_<n> and suffixes
// collisions with the smallest unused _2, _3, ... so headers come out
// pairwise distinct.
func sanitizeHeaders(raw []string) []string {
	used := map[string]struct{}{}
	out := make([]string, len(raw))

	for i, header := range raw {
		base := strings.TrimSpace(header)
		if base == "" {
			base = fmt.Sprintf("%s%d", emptyHeaderPrefix, i+1)
		}

		candidate := base
		for suffix := 2; ; suffix++ {
			if _, taken := used[candidate]; !taken {
				break
			}
			candidate = fmt.Sprintf("%s_%d", base, suffix)
		}

		used[candidate] = struct{}{}
		out[i] = candidate
	}
	return out
}

// buildRows assigns trimmed cells to headers by column index. Extra cells are
// dropped, missing trailing cells default to "", and rows that end up fully
// blank are discarded.
func buildRows(headers []string, dataRows [][]string) []Row {
	out := make([]Row, 0, len(dataRows))
	for _, rawRow := range dataRows {
		row := Row{}
		for i, header := range headers {
			value := ""
			if i < len(rawRow) {
				value = strings.TrimSpace(rawRow[i])
			}
			row[header] = value
		}
		if !row.Empty() {
			out = append(out, row)
		}
	}
	return out
}

// Empty reports whether every field of the row is blank.
func (r Row) Empty() bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func allBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

package ingest

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// parseHTML imports the first <table> of an HTML document. Some supplier
// portals only offer price lists as saved web pages.
func parseHTML(data []byte) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, formatErrorf("cannot parse html: %v", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, formatErrorf("html document has no table")
	}

	var matrix [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.Join(strings.Fields(cell.Text()), " "))
		})
		if len(cells) > 0 {
			matrix = append(matrix, cells)
		}
	})

	return FromMatrix(matrix)
}

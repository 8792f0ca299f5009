package pipeline

import (
	"bytes"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// ExtractPDFLines pulls plain-text lines out of a stored PDF document so a
// human can eyeball an unparsed price list. PDF layout is too unreliable for
// automatic line import, so this stays preview-only.
func ExtractPDFLines(content []byte, max int) ([]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	var out []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			out = append(out, line)
			if max > 0 && len(out) >= max {
				return out, nil
			}
		}
	}
	return out, nil
}

package pipeline

import (
	"fmt"
	"io"

	"corralon/internal/ingest"
	"corralon/internal/util"
)

type LegacySummary struct {
	Created    int
	Duplicates int
	Skipped    int
}

// ImportLegacyCatalog bootstraps the item table from an exported legacy
// catalog. Each row becomes an item plus a supplier-code alias; rows whose
// normalized code already exists as an alias are skipped rather than
// duplicated.
func (s *Importer) ImportLegacyCatalog(r io.Reader, fileName string) (LegacySummary, error) {
	table, err := ingest.ParseImportFile(r, fileName)
	if err != nil {
		return LegacySummary{}, err
	}

	codeHeader := findHeader(table.Headers, codeHeaderCandidates)
	descriptionHeader := findHeader(table.Headers, descriptionHeaderCandidates)
	if codeHeader == "" || descriptionHeader == "" {
		return LegacySummary{}, fmt.Errorf("no code/description columns detected in %s", fileName)
	}
	costHeader := findHeader(table.Headers, costHeaderCandidates)
	saleHeader := findHeader(table.Headers, saleHeaderCandidates)

	aliases, err := s.db.ListAliases()
	if err != nil {
		return LegacySummary{}, err
	}
	existing := map[string]struct{}{}
	for _, a := range aliases {
		if key := util.NormalizeAlias(a.Alias); key != "" {
			existing[key] = struct{}{}
		}
	}

	var summary LegacySummary
	for _, row := range table.Rows {
		code := util.CleanText(row[codeHeader])
		name := util.CleanText(row[descriptionHeader])
		key := util.NormalizeAlias(code)
		if key == "" || name == "" {
			summary.Skipped++
			continue
		}
		if _, dup := existing[key]; dup {
			summary.Duplicates++
			continue
		}

		cost := 0.0
		if costHeader != "" {
			cost = util.ParsePrice(row[costHeader])
		}
		price := 0.0
		if saleHeader != "" {
			price = util.ParsePrice(row[saleHeader])
		}

		var sku *string
		if code != "" {
			c := code
			sku = &c
		}
		if _, err := s.db.CreateItemWithAlias(name, sku, cost, price, code); err != nil {
			return summary, err
		}
		existing[key] = struct{}{}
		summary.Created++
	}

	s.log.Info().
		Str("file", fileName).
		Int("created", summary.Created).
		Int("duplicates", summary.Duplicates).
		Int("skipped", summary.Skipped).
		Msg("legacy catalog imported")
	return summary, nil
}

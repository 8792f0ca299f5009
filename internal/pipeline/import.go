package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"corralon/internal"
	"corralon/internal/config"
	"corralon/internal/ingest"
	"corralon/internal/match"
	"corralon/internal/storage"
	"corralon/internal/util"
)

// Importer runs the full supplier-data reconciliation flow: parse the file,
// normalize each row, match it against the alias table and persist the result.
type Importer struct {
	db  *storage.DB
	cfg config.Config
	log zerolog.Logger
}

func NewImporter(db *storage.DB, cfg config.Config, log zerolog.Logger) *Importer {
	return &Importer{db: db, cfg: cfg, log: log}
}

type ImportSummary struct {
	DocumentID string
	VersionID  string
	Total      int
	Matched    int
	Pending    int
	Skipped    int
	Parsed     bool
}

// ImportSupplierCatalog ingests one uploaded supplier price list or catalog.
// PDF files are stored as documents without line parsing; everything else goes
// through the tabular ingestor.
func (s *Importer) ImportSupplierCatalog(r io.Reader, fileName, supplierID, title string, notes *string) (ImportSummary, error) {
	if strings.TrimSpace(supplierID) == "" {
		return ImportSummary{}, fmt.Errorf("supplier is required")
	}
	if strings.TrimSpace(title) == "" {
		title = fileName
	}

	fileType := classifyFile(fileName)
	if fileType == "" {
		return ImportSummary{}, fmt.Errorf("unsupported file format: %s", fileName)
	}

	if fileType == "pdf" {
		doc, err := s.db.CreateSupplierDocument(supplierID, title, fileName, fileType, notes)
		if err != nil {
			return ImportSummary{}, err
		}
		s.log.Info().Str("document", doc.ID).Str("file", fileName).Msg("pdf stored without parsing")
		return ImportSummary{DocumentID: doc.ID, Parsed: false}, nil
	}

	table, err := ingest.ParseImportFile(r, fileName)
	if err != nil {
		return ImportSummary{}, err
	}

	codeHeader := findHeader(table.Headers, codeHeaderCandidates)
	descriptionHeader := findHeader(table.Headers, descriptionHeaderCandidates)
	costHeader := findHeader(table.Headers, costHeaderCandidates)
	if descriptionHeader == "" || costHeader == "" {
		return ImportSummary{}, fmt.Errorf("no description/cost columns detected in %s", fileName)
	}

	aliases, err := s.db.ListAliases()
	if err != nil {
		return ImportSummary{}, err
	}

	doc, err := s.db.CreateSupplierDocument(supplierID, title, fileName, fileType, notes)
	if err != nil {
		return ImportSummary{}, err
	}
	version, err := s.db.CreateCatalogVersion(doc.ID, "automatic import")
	if err != nil {
		return ImportSummary{}, err
	}

	summary := ImportSummary{DocumentID: doc.ID, VersionID: version.ID, Parsed: true}
	var lines []internal.CatalogLine
	for _, row := range table.Rows {
		supplierCode := ""
		if codeHeader != "" {
			supplierCode = strings.TrimSpace(row[codeHeader])
		}
		rawDescription := strings.TrimSpace(row[descriptionHeader])
		cost := util.ParsePrice(row[costHeader])
		if rawDescription == "" || cost <= 0 {
			summary.Skipped++
			continue
		}

		result := match.MatchImportLine(supplierCode, rawDescription, aliases)
		line := internal.CatalogLine{
			VersionID:      version.ID,
			RawDescription: rawDescription,
			Cost:           cost,
			MatchReason:    result.Reason,
		}
		if supplierCode != "" {
			line.SupplierCode = &supplierCode
		}
		if result.Matched() {
			itemID := result.ItemID
			line.MatchedItemID = &itemID
			line.MatchStatus = internal.LineMatched
			summary.Matched++
		} else {
			suggested := match.BuildSuggestedAlias(rawDescription)
			line.SuggestedAlias = &suggested
			line.MatchStatus = internal.LinePending
			summary.Pending++
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return ImportSummary{}, fmt.Errorf("no importable rows in %s", fileName)
	}

	for start := 0; start < len(lines); start += s.cfg.ImportBatchSize {
		end := start + s.cfg.ImportBatchSize
		if end > len(lines) {
			end = len(lines)
		}
		if err := s.db.InsertCatalogLines(lines[start:end]); err != nil {
			return ImportSummary{}, err
		}
	}

	summary.Total = len(lines)
	s.log.Info().
		Str("document", doc.ID).
		Str("version", version.ID).
		Int("total", summary.Total).
		Int("matched", summary.Matched).
		Int("pending", summary.Pending).
		Int("skipped", summary.Skipped).
		Msg("supplier catalog imported")
	return summary, nil
}

// ImportPriceList ingests a customer price list, matching each line by
// description only.
func (s *Importer) ImportPriceList(r io.Reader, fileName, name string) (ImportSummary, error) {
	if strings.TrimSpace(name) == "" {
		name = fileName
	}

	table, err := ingest.ParseImportFile(r, fileName)
	if err != nil {
		return ImportSummary{}, err
	}

	descriptionHeader := findHeader(table.Headers, descriptionHeaderCandidates)
	priceHeader := findHeader(table.Headers, priceHeaderCandidates)
	if descriptionHeader == "" || priceHeader == "" {
		return ImportSummary{}, fmt.Errorf("no description/price columns detected in %s", fileName)
	}

	aliases, err := s.db.ListAliases()
	if err != nil {
		return ImportSummary{}, err
	}

	priceList, err := s.db.CreatePriceList(name)
	if err != nil {
		return ImportSummary{}, err
	}

	summary := ImportSummary{DocumentID: priceList.ID, Parsed: true}
	var lines []internal.PriceListLine
	for _, row := range table.Rows {
		rawDescription := strings.TrimSpace(row[descriptionHeader])
		price := util.ParsePrice(row[priceHeader])
		if rawDescription == "" || price <= 0 {
			summary.Skipped++
			continue
		}

		result := match.MatchImportLine("", rawDescription, aliases)
		line := internal.PriceListLine{
			PriceListID:    priceList.ID,
			RawDescription: rawDescription,
			Price:          price,
			MatchReason:    result.Reason,
		}
		if result.Matched() {
			itemID := result.ItemID
			line.MatchedItemID = &itemID
			line.MatchStatus = internal.LineMatched
			summary.Matched++
		} else {
			suggested := match.BuildSuggestedAlias(rawDescription)
			line.SuggestedAlias = &suggested
			line.MatchStatus = internal.LinePending
			summary.Pending++
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return ImportSummary{}, fmt.Errorf("no importable rows in %s", fileName)
	}

	for start := 0; start < len(lines); start += s.cfg.ImportBatchSize {
		end := start + s.cfg.ImportBatchSize
		if end > len(lines) {
			end = len(lines)
		}
		if err := s.db.InsertPriceListLines(lines[start:end]); err != nil {
			return ImportSummary{}, err
		}
	}

	summary.Total = len(lines)
	s.log.Info().
		Str("priceList", priceList.ID).
		Int("total", summary.Total).
		Int("matched", summary.Matched).
		Int("pending", summary.Pending).
		Msg("price list imported")
	return summary, nil
}

// classifyFile mirrors the upload screen's accepted formats.
func classifyFile(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return "pdf"
	case ".xlsx", ".xls":
		return "xlsx"
	case ".csv", ".txt", ".tsv":
		return "csv"
	case ".html", ".htm":
		return "html"
	default:
		return ""
	}
}

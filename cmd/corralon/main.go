package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"corralon/internal/config"
	"corralon/internal/match"
	"corralon/internal/pipeline"
	"corralon/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)
	logger := config.SetupLogger(cfg)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	importer := pipeline.NewImporter(db, cfg, logger)

	cmd := os.Args[1]
	switch cmd {
	case "catalog:legacy-import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "legacy catalog export (csv/xlsx/xls)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}
		f, err := os.Open(*file)
		must(err)
		defer f.Close()
		summary, err := importer.ImportLegacyCatalog(f, filepath.Base(*file))
		must(err)
		fmt.Printf("legacy import done created=%d duplicates=%d skipped=%d\n", summary.Created, summary.Duplicates, summary.Skipped)
	case "supplier:import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		supplier := fs.String("supplier", "", "supplier id")
		file := fs.String("file", "", "price list file (csv/xlsx/xls/html/pdf)")
		title := fs.String("title", "", "document title")
		notes := fs.String("notes", "", "document notes")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*supplier) == "" || strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--supplier and --file are required"))
		}
		f, err := os.Open(*file)
		must(err)
		defer f.Close()
		var notesPtr *string
		if strings.TrimSpace(*notes) != "" {
			notesPtr = notes
		}
		summary, err := importer.ImportSupplierCatalog(f, filepath.Base(*file), *supplier, *title, notesPtr)
		must(err)
		if !summary.Parsed {
			fmt.Printf("document stored without parsing id=%s\n", summary.DocumentID)
			return
		}
		fmt.Printf("supplier import done lines=%d matched=%d pending=%d skipped=%d\n", summary.Total, summary.Matched, summary.Pending, summary.Skipped)
	case "pricelist:import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "price list file")
		name := fs.String("name", "", "price list name")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}
		f, err := os.Open(*file)
		must(err)
		defer f.Close()
		summary, err := importer.ImportPriceList(f, filepath.Base(*file), *name)
		must(err)
		fmt.Printf("price list import done lines=%d matched=%d pending=%d\n", summary.Total, summary.Matched, summary.Pending)
	case "pending:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", cfg.PendingLimit, "max lines")
		_ = fs.Parse(os.Args[2:])
		lines, err := db.ListPendingLines(*limit)
		must(err)
		for _, line := range lines {
			code := ""
			if line.SupplierCode != nil {
				code = *line.SupplierCode
			}
			fmt.Printf("%s/%d\t%s\t%s\t%s\t%.2f\n", line.Origin, line.LineID, line.SourceName, code, line.RawDescription, line.Amount)
		}
		fmt.Printf("%d pending lines\n", len(lines))
	case "pending:resolve":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		origin := fs.String("origin", "catalog", "catalog|pricelist")
		line := fs.Int64("line", 0, "line id")
		item := fs.String("item", "", "item id to assign")
		_ = fs.Parse(os.Args[2:])
		if *line == 0 || strings.TrimSpace(*item) == "" {
			must(fmt.Errorf("--line and --item are required"))
		}
		existing, err := db.GetItem(*item)
		must(err)
		if existing == nil {
			must(fmt.Errorf("no item with id %s", *item))
		}
		must(db.ResolvePendingLine(*origin, *line, *item))
		fmt.Printf("line %s/%d assigned to %s, alias recorded\n", *origin, *line, existing.Name)
	case "export:pending":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output xlsx path")
		limit := fs.Int("limit", cfg.PendingLimit, "max lines")
		_ = fs.Parse(os.Args[2:])
		path := *out
		if strings.TrimSpace(path) == "" {
			path = filepath.Join(cfg.OutputDir, "pending.xlsx")
		}
		lines, err := db.ListPendingLines(*limit)
		must(err)
		if len(lines) == 0 {
			must(fmt.Errorf("no pending lines to export"))
		}
		must(pipeline.ExportPendingToXLSX(lines, path))
		fmt.Printf("exported %d pending lines to %s\n", len(lines), path)
	case "document:preview-pdf":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "pdf path")
		max := fs.Int("max", 40, "max lines")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}
		content, err := os.ReadFile(*file)
		must(err)
		lines, err := pipeline.ExtractPDFLines(content, *max)
		must(err)
		for _, line := range lines {
			fmt.Println(line)
		}
	case "match":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		code := fs.String("code", "", "supplier code")
		desc := fs.String("desc", "", "raw description")
		_ = fs.Parse(os.Args[2:])
		aliases, err := db.ListAliases()
		must(err)
		result := match.MatchImportLine(*code, *desc, aliases)
		encoded, _ := json.Marshal(result)
		fmt.Println(string(encoded))
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: corralon <command>")
	fmt.Println("commands:")
	fmt.Println("  catalog:legacy-import --file=catalogo.csv")
	fmt.Println("  supplier:import --supplier=<id> --file=lista.xlsx [--title=...] [--notes=...]")
	fmt.Println("  pricelist:import --file=precios.csv [--name=...]")
	fmt.Println("  pending:list [--limit=200]")
	fmt.Println("  pending:resolve --origin=catalog|pricelist --line=<id> --item=<id>")
	fmt.Println("  export:pending [--out=./out/pending.xlsx] [--limit=200]")
	fmt.Println("  document:preview-pdf --file=lista.pdf [--max=40]")
	fmt.Println("  match --code=ABC-123 --desc=\"válvula esférica\"")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

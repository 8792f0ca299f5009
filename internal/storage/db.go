package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"corralon/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS items (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  sku TEXT,
  cost REAL NOT NULL DEFAULT 0,
  price REAL NOT NULL DEFAULT 0,
  isActive INTEGER NOT NULL DEFAULT 1,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_items_name ON items(name);

CREATE TABLE IF NOT EXISTS item_aliases (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  itemId TEXT NOT NULL,
  alias TEXT NOT NULL,
  isSupplierCode INTEGER NOT NULL DEFAULT 0,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(itemId) REFERENCES items(id)
);
CREATE INDEX IF NOT EXISTS idx_item_aliases_itemId ON item_aliases(itemId);
CREATE INDEX IF NOT EXISTS idx_item_aliases_alias ON item_aliases(alias);

CREATE TABLE IF NOT EXISTS supplier_documents (
  id TEXT PRIMARY KEY,
  supplierId TEXT NOT NULL,
  title TEXT NOT NULL,
  fileName TEXT NOT NULL,
  fileType TEXT NOT NULL,
  notes TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS supplier_catalog_versions (
  id TEXT PRIMARY KEY,
  documentId TEXT NOT NULL,
  note TEXT NOT NULL DEFAULT '',
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(documentId) REFERENCES supplier_documents(id)
);

CREATE TABLE IF NOT EXISTS supplier_catalog_lines (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  versionId TEXT NOT NULL,
  supplierCode TEXT,
  rawDescription TEXT NOT NULL,
  cost REAL NOT NULL,
  matchedItemId TEXT,
  matchStatus TEXT NOT NULL,
  matchReason TEXT NOT NULL,
  suggestedAlias TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(versionId) REFERENCES supplier_catalog_versions(id)
);
CREATE INDEX IF NOT EXISTS idx_catalog_lines_status ON supplier_catalog_lines(matchStatus);

CREATE TABLE IF NOT EXISTS price_lists (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS price_list_lines (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  priceListId TEXT NOT NULL,
  rawDescription TEXT NOT NULL,
  price REAL NOT NULL,
  matchedItemId TEXT,
  matchStatus TEXT NOT NULL,
  matchReason TEXT NOT NULL,
  suggestedAlias TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(priceListId) REFERENCES price_lists(id)
);
CREATE INDEX IF NOT EXISTS idx_price_list_lines_status ON price_list_lines(matchStatus);
`

	_, err := d.conn.Exec(schema)
	return err
}

// ListAliases returns the full alias snapshot the matcher reads.
func (d *DB) ListAliases() ([]internal.AliasRecord, error) {
	rows, err := d.conn.Query(`SELECT itemId, alias, isSupplierCode FROM item_aliases ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.AliasRecord
	for rows.Next() {
		var a internal.AliasRecord
		var isCode int
		if err := rows.Scan(&a.ItemID, &a.Alias, &isCode); err != nil {
			return nil, err
		}
		a.IsSupplierCode = isCode != 0
		out = append(out, a)
	}
	return out, rows.Err()
}

func (d *DB) InsertAlias(itemID, alias string, isSupplierCode bool) error {
	flag := 0
	if isSupplierCode {
		flag = 1
	}
	_, err := d.conn.Exec(`INSERT INTO item_aliases (itemId, alias, isSupplierCode) VALUES (?, ?, ?)`, itemID, alias, flag)
	return err
}

// CreateItemWithAlias inserts an item and its supplier-code alias in one
// transaction, used by the legacy catalog import.
func (d *DB) CreateItemWithAlias(name string, sku *string, cost, price float64, alias string) (string, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.NewString()
	if _, err := tx.Exec(`INSERT INTO items (id, name, sku, cost, price) VALUES (?, ?, ?, ?, ?)`, id, name, sku, cost, price); err != nil {
		return "", err
	}
	if alias != "" {
		if _, err := tx.Exec(`INSERT INTO item_aliases (itemId, alias, isSupplierCode) VALUES (?, ?, 1)`, id, alias); err != nil {
			return "", err
		}
	}
	return id, tx.Commit()
}

func (d *DB) GetItem(id string) (*internal.ItemRecord, error) {
	var item internal.ItemRecord
	var active int
	err := d.conn.QueryRow(`SELECT id, name, sku, cost, price, isActive, createdAt FROM items WHERE id = ?`, id).
		Scan(&item.ID, &item.Name, &item.SKU, &item.Cost, &item.Price, &active, &item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	item.IsActive = active != 0
	return &item, nil
}

func (d *DB) CreateSupplierDocument(supplierID, title, fileName, fileType string, notes *string) (internal.SupplierDocument, error) {
	doc := internal.SupplierDocument{
		ID:         uuid.NewString(),
		SupplierID: supplierID,
		Title:      title,
		FileName:   fileName,
		FileType:   fileType,
		Notes:      notes,
	}
	_, err := d.conn.Exec(`
INSERT INTO supplier_documents (id, supplierId, title, fileName, fileType, notes)
VALUES (?, ?, ?, ?, ?, ?)`, doc.ID, doc.SupplierID, doc.Title, doc.FileName, doc.FileType, doc.Notes)
	return doc, err
}

func (d *DB) CreateCatalogVersion(documentID, note string) (internal.CatalogVersion, error) {
	v := internal.CatalogVersion{ID: uuid.NewString(), DocumentID: documentID, Note: note}
	_, err := d.conn.Exec(`INSERT INTO supplier_catalog_versions (id, documentId, note) VALUES (?, ?, ?)`, v.ID, v.DocumentID, v.Note)
	return v, err
}

// InsertCatalogLines writes one batch of lines inside a transaction. Batching
// into fixed-size chunks is the caller's concern.
func (d *DB) InsertCatalogLines(lines []internal.CatalogLine) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO supplier_catalog_lines
  (versionId, supplierCode, rawDescription, cost, matchedItemId, matchStatus, matchReason, suggestedAlias)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, line := range lines {
		if _, err := stmt.Exec(
			line.VersionID, line.SupplierCode, line.RawDescription, line.Cost,
			line.MatchedItemID, string(line.MatchStatus), string(line.MatchReason), line.SuggestedAlias,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (d *DB) CreatePriceList(name string) (internal.PriceList, error) {
	pl := internal.PriceList{ID: uuid.NewString(), Name: name}
	_, err := d.conn.Exec(`INSERT INTO price_lists (id, name) VALUES (?, ?)`, pl.ID, pl.Name)
	return pl, err
}

func (d *DB) InsertPriceListLines(lines []internal.PriceListLine) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO price_list_lines
  (priceListId, rawDescription, price, matchedItemId, matchStatus, matchReason, suggestedAlias)
VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, line := range lines {
		if _, err := stmt.Exec(
			line.PriceListID, line.RawDescription, line.Price,
			line.MatchedItemID, string(line.MatchStatus), string(line.MatchReason), line.SuggestedAlias,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListPendingLines returns unresolved lines from both import targets, newest
// first, for manual adjudication.
func (d *DB) ListPendingLines(limit int) ([]internal.PendingLine, error) {
	rows, err := d.conn.Query(`
SELECT * FROM (
  SELECT l.id, 'catalog' AS origin, d.title, l.supplierCode, l.rawDescription, l.cost, l.suggestedAlias, l.createdAt
  FROM supplier_catalog_lines l
  JOIN supplier_catalog_versions v ON v.id = l.versionId
  JOIN supplier_documents d ON d.id = v.documentId
  WHERE l.matchStatus = 'PENDING'
  UNION ALL
  SELECT l.id, 'pricelist' AS origin, p.name, NULL, l.rawDescription, l.price, l.suggestedAlias, l.createdAt
  FROM price_list_lines l
  JOIN price_lists p ON p.id = l.priceListId
  WHERE l.matchStatus = 'PENDING'
)
ORDER BY createdAt DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.PendingLine
	for rows.Next() {
		var p internal.PendingLine
		if err := rows.Scan(&p.LineID, &p.Origin, &p.SourceName, &p.SupplierCode, &p.RawDescription, &p.Amount, &p.SuggestedAlias, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ResolvePendingLine assigns an item to a pending line and records the raw
// description as a new alias so future imports match automatically.
func (d *DB) ResolvePendingLine(origin string, lineID int64, itemID string) error {
	table, ok := map[string]string{
		"catalog":   "supplier_catalog_lines",
		"pricelist": "price_list_lines",
	}[origin]
	if !ok {
		return fmt.Errorf("unknown line origin: %s", origin)
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var rawDescription string
	err = tx.QueryRow(
		`SELECT rawDescription FROM `+table+` WHERE id = ? AND matchStatus = 'PENDING'`, lineID,
	).Scan(&rawDescription)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("no pending %s line with id %d", origin, lineID)
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(
		`UPDATE `+table+` SET matchedItemId = ?, matchStatus = 'MATCHED' WHERE id = ?`, itemID, lineID,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`INSERT INTO item_aliases (itemId, alias, isSupplierCode) VALUES (?, ?, 0)`, itemID, rawDescription,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// CountLinesByStatus reports matched/pending totals for one catalog version.
func (d *DB) CountLinesByStatus(versionID string) (matched, pending int, err error) {
	rows, err := d.conn.Query(`
SELECT matchStatus, COUNT(*) FROM supplier_catalog_lines WHERE versionId = ? GROUP BY matchStatus`, versionID)
	if err != nil {
		return 0, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return 0, 0, err
		}
		switch internal.LineStatus(status) {
		case internal.LineMatched:
			matched = count
		case internal.LinePending:
			pending = count
		}
	}
	return matched, pending, rows.Err()
}

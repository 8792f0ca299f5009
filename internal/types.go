package internal

// MatchReason explains how an imported line was linked to a catalog item.
type MatchReason string

const (
	ReasonSupplierCode MatchReason = "SUPPLIER_CODE"
	ReasonAliasToken   MatchReason = "ALIAS_TOKEN"
	ReasonAliasContain MatchReason = "ALIAS_CONTAINS"
	ReasonNone         MatchReason = "NONE"
)

// LineStatus is the persisted state of an imported line.
type LineStatus string

const (
	LineMatched LineStatus = "MATCHED"
	LinePending LineStatus = "PENDING"
)

// AliasRecord is one known synonym or supplier code for a catalog item.
// Aliases are not unique across items; exact duplicates are legal input.
type AliasRecord struct {
	ItemID         string
	Alias          string
	IsSupplierCode bool
}

// MatchResult is the outcome of matching one imported line.
// ItemID is empty exactly when Reason is ReasonNone.
type MatchResult struct {
	ItemID string      `json:"itemId,omitempty"`
	Reason MatchReason `json:"reason"`
}

// Matched reports whether the line was linked to an item.
func (r MatchResult) Matched() bool {
	return r.Reason != ReasonNone && r.ItemID != ""
}

type ItemRecord struct {
	ID        string
	Name      string
	SKU       *string
	Cost      float64
	Price     float64
	IsActive  bool
	CreatedAt string
}

type SupplierDocument struct {
	ID         string
	SupplierID string
	Title      string
	FileName   string
	FileType   string
	Notes      *string
	CreatedAt  string
}

type CatalogVersion struct {
	ID         string
	DocumentID string
	Note       string
	CreatedAt  string
}

// CatalogLine is one row of an imported supplier price list or catalog.
type CatalogLine struct {
	ID             int64
	VersionID      string
	SupplierCode   *string
	RawDescription string
	Cost           float64
	MatchedItemID  *string
	MatchStatus    LineStatus
	MatchReason    MatchReason
	SuggestedAlias *string
	CreatedAt      string
}

type PriceList struct {
	ID        string
	Name      string
	CreatedAt string
}

// PriceListLine mirrors CatalogLine for customer price-list imports.
type PriceListLine struct {
	ID             int64
	PriceListID    string
	RawDescription string
	Price          float64
	MatchedItemID  *string
	MatchStatus    LineStatus
	MatchReason    MatchReason
	SuggestedAlias *string
	CreatedAt      string
}

// PendingLine is a line awaiting manual item assignment, joined with its origin.
type PendingLine struct {
	LineID         int64
	Origin         string // "catalog" or "pricelist"
	SourceName     string
	SupplierCode   *string
	RawDescription string
	Amount         float64
	SuggestedAlias *string
	CreatedAt      string
}

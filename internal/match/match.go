package match

import (
	"strings"

	"corralon/internal"
	"corralon/internal/util"
)

// MinAliasLength guards against short, high-collision tokens ("tv") producing
// false positives across unrelated descriptions.
const MinAliasLength = 4

const suggestedAliasMaxLen = 80

type indexedAlias struct {
	internal.AliasRecord
	normalized string
}

// buildAliasIndex normalizes the alias snapshot, dropping non-code aliases
// whose normalized form is too short to match safely. Order is preserved so
// "first match" is deterministic.
func buildAliasIndex(aliases []internal.AliasRecord) []indexedAlias {
	out := make([]indexedAlias, 0, len(aliases))
	for _, a := range aliases {
		normalized := util.NormalizeText(a.Alias)
		if len(normalized) < MinAliasLength && !a.IsSupplierCode {
			continue
		}
		out = append(out, indexedAlias{AliasRecord: a, normalized: normalized})
	}
	return out
}

func tokenSet(normalized string) map[string]struct{} {
	if normalized == "" {
		return nil
	}
	set := map[string]struct{}{}
	for _, token := range strings.Split(normalized, " ") {
		if len(token) >= MinAliasLength {
			set[token] = struct{}{}
		}
	}
	return set
}

// MatchImportLine decides which catalog item an imported line refers to.
//
// Three phases, in decreasing order of trust: an exact supplier-code hit is
// authoritative; a whole-token alias hit is strong evidence; a substring hit
// is accepted only when it points at a single item. Any ambiguity (two items
// behind the same alias text) yields ReasonNone so a human adjudicates the
// line instead of the engine guessing.
//
// The supplier-code phase intentionally matches every alias whose text equals
// the code, whether or not it is flagged as a supplier code.
func MatchImportLine(supplierCode, rawDescription string, aliases []internal.AliasRecord) internal.MatchResult {
	codeNormalized := util.NormalizeText(supplierCode)
	descriptionNormalized := util.NormalizeText(rawDescription)
	index := buildAliasIndex(aliases)

	if codeNormalized != "" {
		for _, a := range index {
			if a.normalized == "" {
				continue
			}
			if a.normalized == codeNormalized {
				return internal.MatchResult{ItemID: a.ItemID, Reason: internal.ReasonSupplierCode}
			}
		}
	}

	tokens := tokenSet(descriptionNormalized)
	var tokenMatches []indexedAlias
	for _, a := range index {
		if a.IsSupplierCode || len(a.normalized) < MinAliasLength {
			continue
		}
		if _, ok := tokens[a.normalized]; ok {
			tokenMatches = append(tokenMatches, a)
		}
	}
	if ids := distinctItemIDs(tokenMatches); len(ids) == 1 {
		return internal.MatchResult{ItemID: tokenMatches[0].ItemID, Reason: internal.ReasonAliasToken}
	}

	var containsMatches []indexedAlias
	for _, a := range index {
		if a.IsSupplierCode || len(a.normalized) < MinAliasLength {
			continue
		}
		if strings.Contains(descriptionNormalized, a.normalized) {
			containsMatches = append(containsMatches, a)
		}
	}
	if ids := distinctItemIDs(containsMatches); len(ids) == 1 {
		return internal.MatchResult{ItemID: containsMatches[0].ItemID, Reason: internal.ReasonAliasContain}
	}

	return internal.MatchResult{Reason: internal.ReasonNone}
}

func distinctItemIDs(matches []indexedAlias) map[string]struct{} {
	if len(matches) == 0 {
		return nil
	}
	ids := map[string]struct{}{}
	for _, m := range matches {
		ids[m.ItemID] = struct{}{}
	}
	return ids
}

// BuildSuggestedAlias pre-fills a human-reviewed alias for a line that could
// not be auto-matched.
func BuildSuggestedAlias(rawDescription string) string {
	normalized := util.NormalizeText(rawDescription)
	if len(normalized) > suggestedAliasMaxLen {
		normalized = normalized[:suggestedAliasMaxLen]
	}
	return strings.TrimRight(normalized, " ")
}

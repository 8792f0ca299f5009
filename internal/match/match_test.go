package match

import (
	"strings"
	"testing"

	"corralon/internal"
)

var testAliases = []internal.AliasRecord{
	{ItemID: "item-1", Alias: "ABC-123", IsSupplierCode: true},
	{ItemID: "item-1", Alias: "válvula esférica"},
	{ItemID: "item-2", Alias: "valvula"},
	{ItemID: "item-3", Alias: "tv"},
}

func TestMatchImportLine(t *testing.T) {
	cases := []struct {
		name        string
		code        string
		description string
		aliases     []internal.AliasRecord
		want        internal.MatchResult
	}{
		{
			name:        "supplier code wins",
			code:        "abc 123",
			description: "Otro texto",
			aliases:     testAliases,
			want:        internal.MatchResult{ItemID: "item-1", Reason: internal.ReasonSupplierCode},
		},
		{
			// "valvula" is the only whole-token hit; the two-word alias
			// "válvula esférica" would only match in the containment phase
			name:        "token match on whole normalized word",
			description: "VÁLVULA esférica de 1 pulgada",
			aliases:     testAliases,
			want:        internal.MatchResult{ItemID: "item-2", Reason: internal.ReasonAliasToken},
		},
		{
			name:        "single-item token match",
			description: "VÁLVULA esférica de 1 pulgada",
			aliases: []internal.AliasRecord{
				{ItemID: "item-1", Alias: "ABC-123", IsSupplierCode: true},
				{ItemID: "item-1", Alias: "esférica"},
			},
			want: internal.MatchResult{ItemID: "item-1", Reason: internal.ReasonAliasToken},
		},
		{
			name:        "unambiguous contains match",
			description: "repuesto para valvula esferica premium",
			aliases: []internal.AliasRecord{
				{ItemID: "item-1", Alias: "esferica"},
			},
			want: internal.MatchResult{ItemID: "item-1", Reason: internal.ReasonAliasContain},
		},
		{
			name:        "ambiguous contains stays unmatched",
			description: "filtro valvula industrial",
			aliases: []internal.AliasRecord{
				{ItemID: "item-1", Alias: "valvula"},
				{ItemID: "item-2", Alias: "valvula"},
			},
			want: internal.MatchResult{Reason: internal.ReasonNone},
		},
		{
			name:        "short aliases are ignored",
			description: "televisor smart",
			aliases:     testAliases,
			want:        internal.MatchResult{Reason: internal.ReasonNone},
		},
		{
			name:        "duplicate alias same item is not ambiguous",
			description: "codo galvanizado reforzado",
			aliases: []internal.AliasRecord{
				{ItemID: "item-9", Alias: "galvanizado"},
				{ItemID: "item-9", Alias: "galvanizado"},
			},
			want: internal.MatchResult{ItemID: "item-9", Reason: internal.ReasonAliasToken},
		},
		{
			name:    "nothing to match",
			aliases: testAliases,
			want:    internal.MatchResult{Reason: internal.ReasonNone},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MatchImportLine(tc.code, tc.description, tc.aliases)
			if got != tc.want {
				t.Fatalf("got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestMatchResultInvariant(t *testing.T) {
	// reason NONE must come with an empty item id
	res := MatchImportLine("", "sin coincidencias posibles", testAliases)
	if res.Reason != internal.ReasonNone || res.ItemID != "" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Matched() {
		t.Fatal("NONE result must not report as matched")
	}
}

func TestSupplierCodePhaseMatchesPlainAliases(t *testing.T) {
	// the code phase accepts any alias whose text equals the code, even when
	// the record is not flagged as a supplier code
	aliases := []internal.AliasRecord{
		{ItemID: "item-7", Alias: "bomba presurizadora"},
	}
	res := MatchImportLine("Bomba Presurizadora", "otra cosa", aliases)
	if res.ItemID != "item-7" || res.Reason != internal.ReasonSupplierCode {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestBuildSuggestedAlias(t *testing.T) {
	if got := BuildSuggestedAlias("  CAÑO   1/2\" ÁCERO "); got != "cano 1 2 acero" {
		t.Fatalf("got %q", got)
	}

	long := strings.Repeat("valvula ", 20)
	got := BuildSuggestedAlias(long)
	if len(got) > 80 {
		t.Fatalf("suggested alias too long: %d", len(got))
	}
	if strings.HasSuffix(got, " ") {
		t.Fatal("trailing space not trimmed")
	}
}

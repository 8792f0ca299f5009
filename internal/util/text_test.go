package util

import "testing"

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "accents symbols spaces", input: "  CAÑO   1/2\"  ÁCERO+inox. ", want: "cano 1 2 acero inox"},
		{name: "dashes and hash", input: "MÓDULO---eléctrico   #220V", want: "modulo electrico 220v"},
		{name: "empty", input: "", want: ""},
		{name: "only punctuation", input: "+++///***", want: ""},
		{name: "enie decomposes", input: "Ñandú", want: "nandu"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeText(tc.input)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{
		"  CAÑO   1/2\"  ÁCERO+inox. ",
		"Válvula esférica de 1\"",
		"ya normalizado 1 2 3",
		"",
	}
	for _, s := range inputs {
		once := NormalizeText(s)
		twice := NormalizeText(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: %q vs %q", s, once, twice)
		}
	}
}

func TestCleanText(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "   ", want: ""},
		{input: "NaN", want: ""},
		{input: " null ", want: ""},
		{input: "undefined", want: ""},
		{input: "  Codigo   123  ", want: "Codigo 123"},
		{input: "Válvula 1/2\"", want: "Válvula 1/2\""},
	}

	for _, tc := range cases {
		if got := CleanText(tc.input); got != tc.want {
			t.Errorf("CleanText(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeAlias(t *testing.T) {
	if got := NormalizeAlias("  CoD  001 "); got != "cod 001" {
		t.Fatalf("got %q", got)
	}
	// punctuation survives, unlike NormalizeText
	if got := NormalizeAlias("ABC-123"); got != "abc-123" {
		t.Fatalf("got %q", got)
	}
}

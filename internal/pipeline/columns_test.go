package pipeline

import "testing"

func TestFindHeader(t *testing.T) {
	headers := []string{"Codigo", "Descripcion", "COSTO", "column_4"}

	if got := findHeader(headers, codeHeaderCandidates); got != "Codigo" {
		t.Fatalf("code header = %q", got)
	}
	if got := findHeader(headers, descriptionHeaderCandidates); got != "Descripcion" {
		t.Fatalf("description header = %q", got)
	}
	if got := findHeader(headers, costHeaderCandidates); got != "COSTO" {
		t.Fatalf("cost header = %q", got)
	}
	if got := findHeader(headers, saleHeaderCandidates); got != "" {
		t.Fatalf("sale header = %q, want none", got)
	}
}

func TestFindHeaderPrefersCandidateOrder(t *testing.T) {
	// "costo" outranks "precio" for the cost column
	headers := []string{"precio", "costo"}
	if got := findHeader(headers, costHeaderCandidates); got != "costo" {
		t.Fatalf("got %q", got)
	}
}

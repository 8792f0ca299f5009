package pipeline

import "strings"

// Candidate header names for the columns an import needs. Files are authored
// by hand in Spanish with the occasional English export, so both are probed.
var (
	codeHeaderCandidates        = []string{"codigo", "código", "cod", "sku", "item", "supplier_code"}
	descriptionHeaderCandidates = []string{"descripcion", "descripción", "description", "detalle", "producto", "articulo", "artículo"}
	costHeaderCandidates        = []string{"costo", "cost", "precio", "price", "importe"}
	priceHeaderCandidates       = []string{"precio", "price", "importe", "costo", "cost"}
	saleHeaderCandidates        = []string{"venta", "precio venta", "pvp"}
)

// findHeader returns the original header whose lowercase form equals the first
// matching candidate, or "" when none is present.
func findHeader(headers []string, candidates []string) string {
	lower := make(map[string]string, len(headers))
	for _, h := range headers {
		if _, taken := lower[strings.ToLower(h)]; !taken {
			lower[strings.ToLower(h)] = h
		}
	}
	for _, c := range candidates {
		if original, ok := lower[c]; ok {
			return original
		}
	}
	return ""
}

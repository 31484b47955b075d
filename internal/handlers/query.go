package handlers

import (
	"net/url"
	"strconv"

	"imovia/internal/catalog"
	"imovia/internal/models"
)

// parsePropertyQuery maps the public API's query parameters onto the
// internal filter set. Parameter names and enum tokens follow the catalog
// vocabulary the frontend was built against; enum values are internalized
// here and reversed again by the catalog client on the way out.
func parsePropertyQuery(values url.Values) models.PropertyQuery {
	q := models.PropertyQuery{
		Search:       values.Get("busca"),
		City:         values.Get("cidade"),
		Neighborhood: values.Get("bairro"),
		MinPrice:     parseFloat(values.Get("preco_min")),
		MaxPrice:     parseFloat(values.Get("preco_max")),
		Bedrooms:     parseInt(values.Get("quartos")),
		Bathrooms:    parseInt(values.Get("banheiros")),
		MinArea:      parseFloat(values.Get("area_min")),
		MaxArea:      parseFloat(values.Get("area_max")),
		Page:         parseInt(values.Get("pagina")),
		Limit:        parseInt(values.Get("limite")),
	}

	if v := values.Get("tipo"); v != "" {
		q.Type = catalog.PropertyTypeLabel(v)
	}
	if v := values.Get("transacao"); v != "" {
		q.Transaction = catalog.TransactionLabel(v)
	}
	if v := values.Get("situacao"); v != "" {
		q.Status = catalog.StatusLabel(v)
	}
	if v := values.Get("destaque"); v != "" {
		q.IsFeatured = parseBool(v)
	}
	if v := values.Get("ativo"); v != "" {
		q.IsActive = parseBool(v)
	}

	return q
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

func parseBool(s string) *bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &b
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// normalize.go translates between the catalog API's Portuguese vocabulary
// (lowercase, accent-bearing field names and enum tokens) and the internal
// domain labels (capitalized, accent-free). The external vocabulary is the
// fixed source of truth: anything that misses the lookup tables is treated
// as an already-external token.
package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"imovia/internal/models"
)

// Enum lookup tables, external token → internal label. Reverse mapping
// inverts these by matching the label case-insensitively.
var (
	propertyTypes = map[string]string{
		"casa":        models.TypeHouse,
		"apartamento": models.TypeApartment,
		"terreno":     models.TypeLand,
		"comercial":   models.TypeCommercial,
		"rural":       models.TypeRural,
	}

	transactionTypes = map[string]string{
		"venda":   models.TransactionSale,
		"aluguel": models.TransactionRent,
	}

	statusTypes = map[string]string{
		"disponível":   models.StatusAvailable,
		"vendido":      models.StatusSold,
		"alugado":      models.StatusRented,
		"indisponível": models.StatusUnavailable,
	}
)

// internalize maps an external enum token to its internal label. Tokens
// absent from the table pass through with first-letter capitalization.
func internalize(table map[string]string, token string) string {
	if token == "" {
		return ""
	}
	if label, ok := table[strings.ToLower(token)]; ok {
		return label
	}
	return capitalize(token)
}

// externalize maps an internal label back to its external token. Labels
// not found in the table are lowercased and stripped of diacritics,
// because anything outside the table is assumed to already be external
// vocabulary.
func externalize(table map[string]string, label string) string {
	if label == "" {
		return ""
	}
	for token, l := range table {
		if strings.EqualFold(l, label) {
			return token
		}
	}
	return stripDiacritics(strings.ToLower(label))
}

// PropertyTypeLabel converts a catalog property type token to the
// internal label.
func PropertyTypeLabel(token string) string { return internalize(propertyTypes, token) }

// PropertyTypeToken converts an internal property type label to the
// catalog token.
func PropertyTypeToken(label string) string { return externalize(propertyTypes, label) }

// TransactionLabel converts a catalog transaction token to the internal label.
func TransactionLabel(token string) string { return internalize(transactionTypes, token) }

// TransactionToken converts an internal transaction label to the catalog token.
func TransactionToken(label string) string { return externalize(transactionTypes, label) }

// StatusLabel converts a catalog status token to the internal label.
func StatusLabel(token string) string { return internalize(statusTypes, token) }

// StatusToken converts an internal status label to the catalog token.
func StatusToken(label string) string { return externalize(statusTypes, label) }

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// stripDiacritics removes combining marks after Unicode decomposition,
// turning e.g. "disponível" into "disponivel".
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

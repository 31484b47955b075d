// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures exchanged with the remote
// catalog API and provides the core types used throughout the application.
package models

// Well-known property type labels. The catalog may return values outside
// this set; they are carried as-is.
const (
	TypeHouse      = "Casa"
	TypeApartment  = "Apartamento"
	TypeLand       = "Terreno"
	TypeCommercial = "Comercial"
	TypeRural      = "Rural"
)

// Well-known transaction labels.
const (
	TransactionSale = "Venda"
	TransactionRent = "Aluguel"
)

// Well-known status labels.
const (
	StatusAvailable   = "Disponivel"
	StatusSold        = "Vendido"
	StatusRented      = "Alugado"
	StatusUnavailable = "Indisponivel"
)

// Property is the internal projection of a catalog listing. The catalog
// API owns the record; this server attaches locally stored photos to it.
type Property struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     *string  `json:"description,omitempty"`
	Price           float64  `json:"price"`
	Currency        string   `json:"currency,omitempty"`
	PropertyType    string   `json:"propertyType"`
	TransactionType string   `json:"transactionType"`
	Status          string   `json:"status,omitempty"`
	Address         string   `json:"address,omitempty"`
	Neighborhood    string   `json:"neighborhood,omitempty"`
	City            string   `json:"city,omitempty"`
	State           string   `json:"state,omitempty"`
	ZipCode         string   `json:"zipCode,omitempty"`
	Bedrooms        int      `json:"bedrooms,omitempty"`
	Bathrooms       int      `json:"bathrooms,omitempty"`
	Area            float64  `json:"area,omitempty"`
	GarageSpaces    int      `json:"garageSpaces,omitempty"`
	Features        []string `json:"features,omitempty"`
	Images          []Photo  `json:"images"`
	IsFeatured      bool     `json:"isFeatured,omitempty"`
	IsActive        bool     `json:"isActive,omitempty"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
}

// HasPhotos reports whether the property carries at least one photo.
func (p *Property) HasPhotos() bool {
	return len(p.Images) > 0
}

// PropertyQuery holds the supported catalog listing filters. Zero values
// are omitted from the outgoing request.
type PropertyQuery struct {
	Search       string
	Type         string
	Transaction  string
	Status       string
	City         string
	Neighborhood string
	MinPrice     float64
	MaxPrice     float64
	Bedrooms     int
	Bathrooms    int
	MinArea      float64
	MaxArea      float64
	Page         int
	Limit        int
	IsFeatured   *bool
	IsActive     *bool
}

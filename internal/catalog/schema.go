// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// schema.go defines the wire representation of catalog records and the
// field-name mapping between the external schema and the internal model.
package catalog

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"imovia/internal/models"
)

// flexID accepts listing identifiers sent either as JSON numbers or as
// strings; the catalog assigns them and this server never interprets them
// beyond stringifying.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	trimmed := strings.Trim(string(data), `"`)
	*f = flexID(trimmed)
	return nil
}

func (f flexID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

// wirePhoto is a photo entry as the catalog emits it.
type wirePhoto struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// photoList accepts the catalog's two image shapes: a plain array of URL
// strings, or an array of {url, alt} objects.
type photoList []wirePhoto

func (pl *photoList) UnmarshalJSON(data []byte) error {
	var urls []string
	if err := json.Unmarshal(data, &urls); err == nil {
		out := make([]wirePhoto, 0, len(urls))
		for _, u := range urls {
			out = append(out, wirePhoto{URL: u})
		}
		*pl = out
		return nil
	}

	var objs []wirePhoto
	if err := json.Unmarshal(data, &objs); err != nil {
		return err
	}
	*pl = objs
	return nil
}

// wireProperty is a listing record in the catalog API's schema.
type wireProperty struct {
	ID           flexID    `json:"id,omitempty"`
	Title        string    `json:"titulo"`
	Description  *string   `json:"descricao,omitempty"`
	Price        float64   `json:"preco"`
	Currency     string    `json:"moeda,omitempty"`
	Type         string    `json:"tipo"`
	Transaction  string    `json:"transacao"`
	Status       string    `json:"situacao,omitempty"`
	Address      string    `json:"endereco,omitempty"`
	Neighborhood string    `json:"bairro,omitempty"`
	City         string    `json:"cidade,omitempty"`
	State        string    `json:"estado,omitempty"`
	ZipCode      string    `json:"cep,omitempty"`
	Bedrooms     int       `json:"quartos,omitempty"`
	Bathrooms    int       `json:"banheiros,omitempty"`
	Area         float64   `json:"area,omitempty"`
	GarageSpaces int       `json:"vagas,omitempty"`
	Features     []string  `json:"caracteristicas,omitempty"`
	Images       photoList `json:"imagens,omitempty"`
	IsFeatured   bool      `json:"destaque,omitempty"`
	IsActive     bool      `json:"ativo,omitempty"`
	CreatedAt    string    `json:"criado_em,omitempty"`
	UpdatedAt    string    `json:"atualizado_em,omitempty"`
}

// wirePage is the catalog's paginated list envelope.
type wirePage struct {
	Data  []wireProperty `json:"data"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// wireEnvelope wraps single-record responses.
type wireEnvelope struct {
	Data    wireProperty `json:"data"`
	Message string       `json:"message,omitempty"`
}

// toInternal converts a wire record to the internal model, normalizing
// enum tokens to internal labels.
func (w *wireProperty) toInternal() models.Property {
	p := models.Property{
		ID:              string(w.ID),
		Title:           w.Title,
		Description:     w.Description,
		Price:           w.Price,
		Currency:        w.Currency,
		PropertyType:    PropertyTypeLabel(w.Type),
		TransactionType: TransactionLabel(w.Transaction),
		Status:          StatusLabel(w.Status),
		Address:         w.Address,
		Neighborhood:    w.Neighborhood,
		City:            w.City,
		State:           w.State,
		ZipCode:         w.ZipCode,
		Bedrooms:        w.Bedrooms,
		Bathrooms:       w.Bathrooms,
		Area:            w.Area,
		GarageSpaces:    w.GarageSpaces,
		Features:        w.Features,
		IsFeatured:      w.IsFeatured,
		IsActive:        w.IsActive,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
	p.Images = make([]models.Photo, 0, len(w.Images))
	for _, img := range w.Images {
		p.Images = append(p.Images, models.Photo{URL: img.URL, Alt: img.Alt})
	}
	return p
}

// toWire converts an internal property to the catalog schema, reversing
// enum labels back to external tokens. The ID is omitted; it travels in
// the URL for updates and is assigned by the catalog on creation.
func toWire(p *models.Property) wireProperty {
	w := wireProperty{
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		Currency:     p.Currency,
		Type:         PropertyTypeToken(p.PropertyType),
		Transaction:  TransactionToken(p.TransactionType),
		Status:       StatusToken(p.Status),
		Address:      p.Address,
		Neighborhood: p.Neighborhood,
		City:         p.City,
		State:        p.State,
		ZipCode:      p.ZipCode,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Area:         p.Area,
		GarageSpaces: p.GarageSpaces,
		Features:     p.Features,
		IsFeatured:   p.IsFeatured,
		IsActive:     p.IsActive,
	}
	for _, img := range p.Images {
		w.Images = append(w.Images, wirePhoto{URL: img.URL, Alt: img.Alt})
	}
	return w
}

// queryValues builds the outgoing query string from a filter set, using
// the catalog's parameter names and dropping zero values.
func queryValues(q models.PropertyQuery) url.Values {
	v := url.Values{}
	setStr := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}

	setStr("busca", q.Search)
	setStr("tipo", PropertyTypeToken(q.Type))
	setStr("transacao", TransactionToken(q.Transaction))
	setStr("situacao", StatusToken(q.Status))
	setStr("cidade", q.City)
	setStr("bairro", q.Neighborhood)
	if q.MinPrice > 0 {
		v.Set("preco_min", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice > 0 {
		v.Set("preco_max", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}
	if q.Bedrooms > 0 {
		v.Set("quartos", strconv.Itoa(q.Bedrooms))
	}
	if q.Bathrooms > 0 {
		v.Set("banheiros", strconv.Itoa(q.Bathrooms))
	}
	if q.MinArea > 0 {
		v.Set("area_min", strconv.FormatFloat(q.MinArea, 'f', -1, 64))
	}
	if q.MaxArea > 0 {
		v.Set("area_max", strconv.FormatFloat(q.MaxArea, 'f', -1, 64))
	}
	if q.Page > 0 {
		v.Set("pagina", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limite", strconv.Itoa(q.Limit))
	}
	if q.IsFeatured != nil {
		v.Set("destaque", strconv.FormatBool(*q.IsFeatured))
	}
	if q.IsActive != nil {
		v.Set("ativo", strconv.FormatBool(*q.IsActive))
	}
	return v
}

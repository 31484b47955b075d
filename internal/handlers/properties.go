// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"imovia/internal/cache"
	"imovia/internal/catalog"
	"imovia/internal/models"
)

// Properties serves the photo-enriched catalog pass-through API.
type Properties struct {
	svc   *catalog.Service
	cache *cache.ListingCache
}

// NewProperties creates a new Properties handler group. cache may be nil
// when Valkey is not configured.
func NewProperties(svc *catalog.Service, listingCache *cache.ListingCache) *Properties {
	return &Properties{svc: svc, cache: listingCache}
}

// List handles GET /api/properties. Responses are cached by query string;
// a hit skips both the catalog call and the photo fan-out.
func (h *Properties) List(w http.ResponseWriter, r *http.Request) {
	key := cache.ListKey(r.URL.Query().Encode())
	if h.serveCached(w, r, key) {
		return
	}

	q := parsePropertyQuery(r.URL.Query())
	page, err := h.svc.FetchEnriched(r.Context(), q)
	if err != nil {
		slog.Error("property list failed", "error", err)
		writeMessage(w, http.StatusBadGateway, "catálogo indisponível")
		return
	}

	h.writeCachedJSON(w, r, key, http.StatusOK, pageEnvelope{
		Data:  page.Items,
		Total: page.Total,
		Page:  page.Page,
		Limit: page.Limit,
	})
}

// Featured handles GET /api/properties/featured.
func (h *Properties) Featured(w http.ResponseWriter, r *http.Request) {
	key := cache.FeaturedKey(r.URL.Query().Encode())
	if h.serveCached(w, r, key) {
		return
	}

	q := parsePropertyQuery(r.URL.Query())
	page, err := h.svc.FetchFeatured(r.Context(), q)
	if err != nil {
		slog.Error("featured list failed", "error", err)
		writeMessage(w, http.StatusBadGateway, "catálogo indisponível")
		return
	}

	h.writeCachedJSON(w, r, key, http.StatusOK, pageEnvelope{
		Data:  page.Items,
		Total: page.Total,
		Page:  page.Page,
		Limit: page.Limit,
	})
}

// Get handles GET /api/properties/{id}.
func (h *Properties) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	key := cache.DetailKey(id)
	if h.serveCached(w, r, key) {
		return
	}

	prop, err := h.svc.FetchProperty(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "imóvel não encontrado")
			return
		}
		slog.Error("property get failed", "id", id, "error", err)
		writeMessage(w, http.StatusBadGateway, "catálogo indisponível")
		return
	}

	h.writeCachedJSON(w, r, key, http.StatusOK, itemEnvelope{Data: prop})
}

// Create handles POST /api/properties (authenticated). The record is
// written through to the catalog; stored photos attach on later reads.
func (h *Properties) Create(w http.ResponseWriter, r *http.Request) {
	var prop models.Property
	if err := json.NewDecoder(r.Body).Decode(&prop); err != nil {
		writeMessage(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}
	if msg := validateProperty(&prop); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	created, err := h.svc.Catalog().Create(r.Context(), &prop)
	if err != nil {
		slog.Error("property create failed", "error", err)
		writeMessage(w, http.StatusBadGateway, "falha ao criar imóvel")
		return
	}

	if h.cache != nil {
		h.cache.InvalidateAll(r.Context())
	}

	writeJSON(w, http.StatusCreated, itemEnvelope{Data: created, Message: "imóvel criado"})
}

// Update handles PUT /api/properties/{id} (authenticated).
func (h *Properties) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var prop models.Property
	if err := json.NewDecoder(r.Body).Decode(&prop); err != nil {
		writeMessage(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}
	if msg := validateProperty(&prop); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.svc.Catalog().Update(r.Context(), id, &prop)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "imóvel não encontrado")
			return
		}
		slog.Error("property update failed", "id", id, "error", err)
		writeMessage(w, http.StatusBadGateway, "falha ao atualizar imóvel")
		return
	}

	if h.cache != nil {
		h.cache.InvalidateAll(r.Context())
	}

	writeJSON(w, http.StatusOK, itemEnvelope{Data: updated, Message: "imóvel atualizado"})
}

// Delete handles DELETE /api/properties/{id} (authenticated).
func (h *Properties) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Catalog().Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "imóvel não encontrado")
			return
		}
		slog.Error("property delete failed", "id", id, "error", err)
		writeMessage(w, http.StatusBadGateway, "falha ao remover imóvel")
		return
	}

	if h.cache != nil {
		h.cache.InvalidateAll(r.Context())
	}

	writeMessage(w, http.StatusOK, "imóvel removido")
}

// serveCached writes a previously cached response body if one exists.
func (h *Properties) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if h.cache == nil {
		return false
	}
	body, ok := h.cache.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
	return true
}

// writeCachedJSON encodes v once, stores the bytes in the cache, and
// writes them as the response.
func (h *Properties) writeCachedJSON(w http.ResponseWriter, r *http.Request, key string, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "erro interno")
		return
	}
	if h.cache != nil {
		h.cache.Set(r.Context(), key, buf.Bytes())
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

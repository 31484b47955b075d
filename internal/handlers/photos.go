// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"imovia/internal/cache"
	"imovia/internal/storage"
)

// photosField is the multipart form field carrying the uploaded files.
const photosField = "photos"

// Photos groups the photo upload and listing handlers.
type Photos struct {
	store *storage.Store
	cache *cache.ListingCache
}

// NewPhotos creates a new Photos handler group. cache may be nil when
// Valkey is not configured.
func NewPhotos(store *storage.Store, listingCache *cache.ListingCache) *Photos {
	return &Photos{store: store, cache: listingCache}
}

// Upload handles POST /api/listings/{id}/photos. It accepts a multipart
// batch under the "photos" field and persists it atomically: either every
// file is stored or none are.
func (p *Photos) Upload(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "id")

	// Cap the request body at the worst-case batch size plus form overhead.
	maxBody := int64(p.store.MaxBatch())*p.store.MaxFileBytes() + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(maxBody); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeMessage(w, http.StatusRequestEntityTooLarge, "envio muito grande")
			return
		}
		writeMessage(w, http.StatusBadRequest, "requisição inválida")
		return
	}

	headers := r.MultipartForm.File[photosField]
	files := make([]storage.UploadFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "arquivo inválido")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "falha ao ler arquivo")
			return
		}

		// Sniff the real content type instead of trusting the client. The
		// sniff table has no AVIF entry, so an inconclusive result falls
		// back to the declared part type.
		contentType := http.DetectContentType(data)
		if contentType == "application/octet-stream" {
			if declared, _, err := mime.ParseMediaType(header.Header.Get("Content-Type")); err == nil {
				contentType = declared
			}
		}
		files = append(files, storage.UploadFile{
			OriginalName: header.Filename,
			ContentType:  contentType,
			Data:         data,
		})
	}

	photos, err := p.store.SaveBatch(listingID, files)
	if err != nil {
		p.writeUploadError(w, listingID, err)
		return
	}

	// Stored photos change what enrichment returns for every cached page.
	if p.cache != nil {
		p.cache.InvalidateAll(r.Context())
	}

	writeJSON(w, http.StatusCreated, map[string]any{"photos": photos})
}

// List handles GET /api/listings/{id}/photos.
func (p *Photos) List(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "id")

	photos, err := p.store.List(listingID)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidIdentifier) {
			writeMessage(w, http.StatusBadRequest, "identificador inválido")
			return
		}
		slog.Error("photo list failed", "listing", listingID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "erro interno")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"photos": photos})
}

// writeUploadError maps storage errors onto HTTP responses. Capacity and
// validation failures are client errors; everything else is a 500.
func (p *Photos) writeUploadError(w http.ResponseWriter, listingID string, err error) {
	var capErr *storage.CapacityError
	if errors.As(err, &capErr) {
		writeMessage(w, http.StatusBadRequest,
			fmt.Sprintf("limite de %d fotos por imóvel atingido", capErr.Limit))
		return
	}
	switch {
	case errors.Is(err, storage.ErrPayloadTooLarge):
		writeMessage(w, http.StatusBadRequest,
			fmt.Sprintf("arquivo excede o limite de %d bytes", p.store.MaxFileBytes()))
		return
	case errors.Is(err, storage.ErrInvalidIdentifier):
		writeMessage(w, http.StatusBadRequest, "identificador inválido")
		return
	case errors.Is(err, storage.ErrNoFiles):
		writeMessage(w, http.StatusBadRequest, "nenhum arquivo enviado")
		return
	case errors.Is(err, storage.ErrTooManyFiles):
		writeMessage(w, http.StatusBadRequest,
			fmt.Sprintf("no máximo %d arquivos por envio", p.store.MaxBatch()))
		return
	case errors.Is(err, storage.ErrUnsupportedMediaType):
		writeMessage(w, http.StatusBadRequest, "tipo de arquivo não suportado")
		return
	}

	slog.Error("photo upload failed", "listing", listingID, "error", err)
	writeMessage(w, http.StatusInternalServerError, "erro interno")
}

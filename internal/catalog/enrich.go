// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// enrich.go attaches locally stored photos to pages fetched from the
// catalog. One photo fetch is issued per listing, all concurrently; a
// failed fetch degrades that one listing to "no photos" and never fails
// the page.
package catalog

import (
	"context"
	"log/slog"
	"sync"

	"imovia/internal/models"
)

// PhotoSource yields the photos stored for one listing. The disk-backed
// store satisfies this in-process; RemotePhotos satisfies it over HTTP.
type PhotoSource interface {
	ListPhotos(ctx context.Context, listingID string) ([]models.Photo, error)
}

// Service combines the catalog client with a photo source to produce
// photo-enriched listing pages.
type Service struct {
	catalog *Client
	photos  PhotoSource
}

// NewService creates an enrichment service.
func NewService(catalog *Client, photos PhotoSource) *Service {
	return &Service{catalog: catalog, photos: photos}
}

// Catalog exposes the underlying client for pass-through operations.
func (s *Service) Catalog() *Client { return s.catalog }

// FetchEnriched fetches a page of listings and enriches it with photos.
// The enrichment window is the positive filter limit, else the whole
// page. Listings keep their fetched order and are never dropped: a
// listing whose photo fetch fails, or yields nothing, stays as the
// catalog returned it.
func (s *Service) FetchEnriched(ctx context.Context, q models.PropertyQuery) (*Page, error) {
	page, err := s.catalog.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return page, nil
	}

	window := len(page.Items)
	if q.Limit > 0 && q.Limit < window {
		window = q.Limit
	}

	// Scatter one guarded fetch per listing. Goroutines write to disjoint
	// slots, so the join needs no lock; the WaitGroup is the barrier that
	// settles every fetch before the merge.
	enriched := make([][]models.Photo, window)
	var wg sync.WaitGroup
	for i := 0; i < window; i++ {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			photos, err := s.photos.ListPhotos(ctx, id)
			if err != nil {
				slog.Debug("photo enrichment failed", "listing", id, "error", err)
				return
			}
			enriched[i] = photos
		}(i, page.Items[i].ID)
	}
	wg.Wait()

	for i := 0; i < window; i++ {
		if len(enriched[i]) > 0 {
			page.Items[i].Images = enriched[i]
		}
	}
	return page, nil
}

// FetchProperty fetches one listing and attaches its stored photos.
// Photo failures degrade to the catalog's own images, as in FetchEnriched.
func (s *Service) FetchProperty(ctx context.Context, id string) (*models.Property, error) {
	prop, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	photos, err := s.photos.ListPhotos(ctx, prop.ID)
	if err != nil {
		slog.Debug("photo enrichment failed", "listing", prop.ID, "error", err)
		return prop, nil
	}
	if len(photos) > 0 {
		prop.Images = photos
	}
	return prop, nil
}

// FetchFeatured fetches the highlighted listings for the landing page.
// When the caller gives no status filter, only available listings are
// requested; the page is trimmed to the limit (default 6).
func (s *Service) FetchFeatured(ctx context.Context, q models.PropertyQuery) (*Page, error) {
	if q.Status == "" {
		q.Status = models.StatusAvailable
	}
	if q.Limit <= 0 {
		q.Limit = 6
	}

	page, err := s.FetchEnriched(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(page.Items) > q.Limit {
		page.Items = page.Items[:q.Limit]
	}
	return page, nil
}

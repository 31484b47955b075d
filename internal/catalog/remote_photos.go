// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"imovia/internal/models"
)

// RemotePhotos is a PhotoSource backed by another node's photo API
// (GET <base>/api/listings/{id}/photos). Deployments that colocate the
// photo store with the aggregator wire the disk store directly instead.
type RemotePhotos struct {
	baseURL string
	client  *http.Client
}

// NewRemotePhotos creates an HTTP photo source for the given base URL.
func NewRemotePhotos(baseURL string) *RemotePhotos {
	return &RemotePhotos{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ListPhotos fetches the stored photos for one listing.
func (r *RemotePhotos) ListPhotos(ctx context.Context, listingID string) ([]models.Photo, error) {
	url := fmt.Sprintf("%s/api/listings/%s/photos", r.baseURL, listingID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("photos request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("photos http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("photos read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("photos API error (status %d): %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Photos []models.Photo `json:"photos"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("photos unmarshal: %w", err)
	}
	return payload.Photos, nil
}

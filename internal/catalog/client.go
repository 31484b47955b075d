// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog consumes the remote catalog API that owns the listing
// records, translating between its schema and the internal domain model,
// and enriching fetched pages with locally stored photos.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"imovia/internal/models"
)

// ErrNotFound is returned when the catalog has no record for an ID.
var ErrNotFound = errors.New("catalog: listing not found")

// Page is one page of catalog results in the internal schema.
type Page struct {
	Items []models.Property `json:"data"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// Client talks to the remote catalog API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// List fetches a page of listings matching the filters.
func (c *Client) List(ctx context.Context, q models.PropertyQuery) (*Page, error) {
	url := c.baseURL
	if params := queryValues(q).Encode(); params != "" {
		url += "?" + params
	}

	var page wirePage
	if err := c.do(ctx, http.MethodGet, url, nil, &page); err != nil {
		return nil, err
	}

	items := make([]models.Property, 0, len(page.Data))
	for i := range page.Data {
		items = append(items, page.Data[i].toInternal())
	}
	return &Page{Items: items, Total: page.Total, Page: page.Page, Limit: page.Limit}, nil
}

// Get fetches a single listing by ID.
func (c *Client) Get(ctx context.Context, id string) (*models.Property, error) {
	var envelope wireEnvelope
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/"+id, nil, &envelope); err != nil {
		return nil, err
	}
	p := envelope.Data.toInternal()
	return &p, nil
}

// Create submits a new listing to the catalog and returns the stored record.
func (c *Client) Create(ctx context.Context, p *models.Property) (*models.Property, error) {
	var envelope wireEnvelope
	if err := c.do(ctx, http.MethodPost, c.baseURL, toWire(p), &envelope); err != nil {
		return nil, err
	}
	created := envelope.Data.toInternal()
	return &created, nil
}

// Delete removes a listing from the catalog.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/"+id, nil, nil)
}

// Update replaces a listing in the catalog and returns the stored record.
func (c *Client) Update(ctx context.Context, id string, p *models.Property) (*models.Property, error) {
	var envelope wireEnvelope
	if err := c.do(ctx, http.MethodPut, c.baseURL+"/"+id, toWire(p), &envelope); err != nil {
		return nil, err
	}
	updated := envelope.Data.toInternal()
	return &updated, nil
}

// do performs one catalog request, encoding body as JSON when non-nil and
// decoding the response into out. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, url string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("catalog marshal: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("catalog request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("catalog http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("catalog read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("catalog API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("catalog unmarshal: %w", err)
		}
	}
	return nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// listings.go provides a Valkey-backed cache of enriched listing
// responses. A cached entry is the encoded JSON body served for one
// public query, so a hit skips the catalog round trip and the photo
// fan-out entirely. Cache errors degrade to a miss and never fail a
// request.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// listingKeyPrefix is the Valkey key prefix for cached responses.
	listingKeyPrefix = "listings:"

	// DefaultListingTTL is how long an enriched response stays cached.
	DefaultListingTTL = 5 * time.Minute
)

// ListingCache manages enriched-response caching in Valkey.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache creates a listing cache backed by the given Valkey client.
func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	if ttl == 0 {
		ttl = DefaultListingTTL
	}
	return &ListingCache{client: client, ttl: ttl}
}

// Get retrieves a cached response body. Returns false on miss or error.
func (lc *ListingCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := lc.client.Get(ctx, listingKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("listing cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("listing cache hit", "key", key)
	return val, true
}

// Set stores a response body for a key with the configured TTL.
func (lc *ListingCache) Set(ctx context.Context, key string, body []byte) {
	if err := lc.client.Set(ctx, listingKeyPrefix+key, body, lc.ttl).Err(); err != nil {
		slog.Warn("listing cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a single cached response.
func (lc *ListingCache) Invalidate(ctx context.Context, key string) {
	if err := lc.client.Del(ctx, listingKeyPrefix+key).Err(); err != nil {
		slog.Warn("listing cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("listing cache invalidated", "key", key)
}

// InvalidateAll removes every cached response by scanning for the prefix.
// Used after any write through to the catalog or a photo upload, since
// any cached page could now be stale.
func (lc *ListingCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := lc.client.Scan(ctx, cursor, listingKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("listing cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := lc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("listing cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("listing cache fully cleared", "deleted", deleted)
	}
}

// ListKey returns the cache key for a filtered listing page. The raw
// query string is already canonical enough: clients that send the same
// filters in a different order simply warm a second entry.
func ListKey(rawQuery string) string {
	if rawQuery == "" {
		return "list:_all"
	}
	return "list:" + rawQuery
}

// FeaturedKey returns the cache key for the featured listings page.
func FeaturedKey(rawQuery string) string {
	if rawQuery == "" {
		return "featured:_default"
	}
	return "featured:" + rawQuery
}

// DetailKey returns the cache key for a single listing.
func DetailKey(id string) string {
	return "detail:" + id
}

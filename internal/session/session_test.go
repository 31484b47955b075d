// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Session tests are integration tests against a local Valkey on DB 15;
// they skip when it is unreachable.
package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func testClient(t *testing.T) *redis.Client {
	t.Helper()

	host := os.Getenv("VALKEY_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("VALKEY_PORT")
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "session:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return client
}

func editorData() *Data {
	return &Data{
		UserID:      uuid.New(),
		Email:       "corretor@imovia.local",
		DisplayName: "Corretor de Teste",
		Role:        "editor",
	}
}

// requestWith returns a request carrying the session cookie for id.
func requestWith(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: id})
	return req
}

func TestSessionLifecycle(t *testing.T) {
	store := NewStore(testClient(t), false)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	id, err := store.Create(ctx, rec, editorData())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(id) != 64 {
		t.Errorf("session ID length = %d, want 64 hex chars", len(id))
	}

	// The response must carry the cookie with the ID.
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("session cookie not set")
	}
	if cookie.Value != id {
		t.Errorf("cookie value = %q, want session ID", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}

	got, err := store.Get(ctx, requestWith(id))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for a live session")
	}
	if got.Email != "corretor@imovia.local" || got.Role != "editor" {
		t.Errorf("payload = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not stamped on create")
	}

	// Destroy removes the entry and expires the cookie.
	destroyRec := httptest.NewRecorder()
	if err := store.Destroy(ctx, destroyRec, requestWith(id)); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	for _, c := range destroyRec.Result().Cookies() {
		if c.Name == CookieName && c.MaxAge != -1 {
			t.Errorf("destroy cookie MaxAge = %d, want -1", c.MaxAge)
		}
	}
	if got, _ := store.Get(ctx, requestWith(id)); got != nil {
		t.Error("session still readable after Destroy")
	}
}

func TestSessionGetWithoutCookie(t *testing.T) {
	store := NewStore(testClient(t), false)

	got, err := store.Get(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Error("expected nil session for a request without a cookie")
	}
}

func TestSessionGetUnknownID(t *testing.T) {
	store := NewStore(testClient(t), false)

	got, err := store.Get(context.Background(), requestWith("deadbeef"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Error("expected nil session for an unknown ID")
	}
}

func TestSessionUpdate(t *testing.T) {
	client := testClient(t)
	store := NewStore(client, false)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	id, err := store.Create(ctx, rec, editorData())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Promote the editor; the ID and cookie stay.
	promoted := editorData()
	promoted.Role = "admin"
	if err := store.Update(ctx, requestWith(id), promoted); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.Get(ctx, requestWith(id))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Role != "admin" {
		t.Errorf("role after update = %q, want admin", got.Role)
	}
}

func TestSessionSlidingExpiry(t *testing.T) {
	client := testClient(t)
	store := NewStore(client, false)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	id, err := store.Create(ctx, rec, editorData())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Age the entry artificially, then read it; the read must restore
	// the full TTL.
	if err := client.Expire(ctx, "session:"+id, time.Minute).Err(); err != nil {
		t.Fatalf("expire: %v", err)
	}
	if _, err := store.Get(ctx, requestWith(id)); err != nil {
		t.Fatalf("Get: %v", err)
	}

	ttl, err := client.TTL(ctx, "session:"+id).Result()
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if ttl <= time.Minute {
		t.Errorf("TTL after read = %v, want slid back toward %v", ttl, DefaultTTL)
	}
}

func TestSessionDestroyWithoutCookie(t *testing.T) {
	store := NewStore(testClient(t), false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	if err := store.Destroy(context.Background(), rec, req); err != nil {
		t.Errorf("Destroy without cookie should be a no-op, got %v", err)
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"imovia/internal/models"
)

// stubPhotos is a PhotoSource with scripted per-listing results.
type stubPhotos struct {
	mu      sync.Mutex
	photos  map[string][]models.Photo
	fail    map[string]bool
	calls   []string
}

func (s *stubPhotos) ListPhotos(_ context.Context, listingID string) ([]models.Photo, error) {
	s.mu.Lock()
	s.calls = append(s.calls, listingID)
	s.mu.Unlock()

	if s.fail[listingID] {
		return nil, errors.New("upstream blew up")
	}
	return s.photos[listingID], nil
}

// catalogStub serves a fixed page in the external schema.
func catalogStub(t *testing.T, items []map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data":  items,
			"total": len(items),
			"page":  1,
			"limit": 12,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wireItem(id, titulo string) map[string]any {
	return map[string]any{
		"id":       id,
		"titulo":   titulo,
		"preco":    350000,
		"tipo":     "casa",
		"transacao": "venda",
		"situacao": "disponível",
	}
}

func TestFetchEnriched_PartialFailure(t *testing.T) {
	srv := catalogStub(t, []map[string]any{
		wireItem("1", "Casa A"),
		wireItem("2", "Casa B"),
		wireItem("3", "Casa C"),
		wireItem("4", "Casa D"),
		wireItem("5", "Casa E"),
	})

	photos := &stubPhotos{
		photos: map[string][]models.Photo{
			"1": {{Filename: "a.jpg", URL: "/uploads/listings/1/a.jpg"}},
			"2": {{Filename: "b.jpg", URL: "/uploads/listings/2/b.jpg"}},
			"4": {{Filename: "d.jpg", URL: "/uploads/listings/4/d.jpg"}},
			"5": {{Filename: "e.jpg", URL: "/uploads/listings/5/e.jpg"}},
		},
		fail: map[string]bool{"3": true},
	}

	svc := NewService(NewClient(srv.URL), photos)
	page, err := svc.FetchEnriched(context.Background(), models.PropertyQuery{})
	if err != nil {
		t.Fatalf("FetchEnriched: %v", err)
	}

	// All five listings survive, in fetched order.
	if len(page.Items) != 5 {
		t.Fatalf("got %d items, want 5", len(page.Items))
	}
	for i, wantID := range []string{"1", "2", "3", "4", "5"} {
		if page.Items[i].ID != wantID {
			t.Errorf("items[%d].ID = %q, want %q", i, page.Items[i].ID, wantID)
		}
	}

	// The failed listing degrades to no photos; the rest are enriched.
	for i, wantPhotos := range []int{1, 1, 0, 1, 1} {
		if got := len(page.Items[i].Images); got != wantPhotos {
			t.Errorf("items[%d] has %d photos, want %d", i, got, wantPhotos)
		}
	}
}

func TestFetchEnriched_WindowBoundedByLimit(t *testing.T) {
	srv := catalogStub(t, []map[string]any{
		wireItem("1", "Casa A"),
		wireItem("2", "Casa B"),
		wireItem("3", "Casa C"),
		wireItem("4", "Casa D"),
	})

	photos := &stubPhotos{
		photos: map[string][]models.Photo{
			"1": {{Filename: "a.jpg"}},
			"2": {{Filename: "b.jpg"}},
			"3": {{Filename: "c.jpg"}},
			"4": {{Filename: "d.jpg"}},
		},
	}

	svc := NewService(NewClient(srv.URL), photos)
	page, err := svc.FetchEnriched(context.Background(), models.PropertyQuery{Limit: 2})
	if err != nil {
		t.Fatalf("FetchEnriched: %v", err)
	}

	// Only the first two listings are fetched for photos.
	if len(photos.calls) != 2 {
		t.Errorf("issued %d photo fetches, want 2", len(photos.calls))
	}
	if len(page.Items[0].Images) != 1 || len(page.Items[1].Images) != 1 {
		t.Error("listings inside the window were not enriched")
	}
	if len(page.Items[2].Images) != 0 || len(page.Items[3].Images) != 0 {
		t.Error("listings outside the window were enriched")
	}
}

func TestFetchEnriched_EmptyPage(t *testing.T) {
	srv := catalogStub(t, nil)
	photos := &stubPhotos{}

	svc := NewService(NewClient(srv.URL), photos)
	page, err := svc.FetchEnriched(context.Background(), models.PropertyQuery{})
	if err != nil {
		t.Fatalf("FetchEnriched: %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("got %d items, want 0", len(page.Items))
	}
	if len(photos.calls) != 0 {
		t.Errorf("issued %d photo fetches for an empty page, want 0", len(photos.calls))
	}
}

func TestFetchEnriched_KeepsExistingImagesOnEmptyEnrichment(t *testing.T) {
	item := wireItem("1", "Casa A")
	item["imagens"] = []string{"https://cdn.example.com/old.jpg"}
	srv := catalogStub(t, []map[string]any{item})

	// No local photos for listing 1 — the catalog's own images must stay.
	photos := &stubPhotos{}
	svc := NewService(NewClient(srv.URL), photos)

	page, err := svc.FetchEnriched(context.Background(), models.PropertyQuery{})
	if err != nil {
		t.Fatalf("FetchEnriched: %v", err)
	}
	if len(page.Items[0].Images) != 1 || page.Items[0].Images[0].URL != "https://cdn.example.com/old.jpg" {
		t.Errorf("catalog images were overwritten: %+v", page.Items[0].Images)
	}
}

func TestFetchFeatured(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		items := []map[string]any{
			wireItem("1", "A"), wireItem("2", "B"), wireItem("3", "C"),
			wireItem("4", "D"), wireItem("5", "E"), wireItem("6", "F"),
			wireItem("7", "G"), wireItem("8", "H"),
		}
		json.NewEncoder(w).Encode(map[string]any{"data": items, "total": len(items)})
	}))
	t.Cleanup(srv.Close)

	svc := NewService(NewClient(srv.URL), &stubPhotos{})
	page, err := svc.FetchFeatured(context.Background(), models.PropertyQuery{})
	if err != nil {
		t.Fatalf("FetchFeatured: %v", err)
	}

	// Status defaults to the external "available" token, limit to 6.
	if got := gotQuery["situacao"]; len(got) != 1 || got[0] != "disponível" {
		t.Errorf("situacao param = %v, want [disponível]", got)
	}
	if got := gotQuery["limite"]; len(got) != 1 || got[0] != "6" {
		t.Errorf("limite param = %v, want [6]", got)
	}
	if len(page.Items) != 6 {
		t.Errorf("got %d items, want the page trimmed to 6", len(page.Items))
	}
}

package newsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, apiKey string, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{
		BaseURL:  srv.URL,
		APIKey:   apiKey,
		Language: "en",
		Timeout:  2 * time.Second,
	}), srv
}

func TestConfigured(t *testing.T) {
	if New(Config{}).Configured() {
		t.Fatalf("client without key must report unconfigured")
	}
	if !New(Config{APIKey: "k"}).Configured() {
		t.Fatalf("client with key must report configured")
	}
}

func TestFetchUnconfigured(t *testing.T) {
	c := New(Config{BaseURL: "http://localhost:0"})
	if _, err := c.Fetch(context.Background(), "q", time.Now(), time.Now(), 5); err == nil {
		t.Fatalf("expected error without credentials")
	}
}

func TestFetchParsesArticles(t *testing.T) {
	var gotQuery, gotKey, gotSort string
	c, _ := newTestClient(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/everything" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		gotQuery = q.Get("q")
		gotKey = q.Get("apiKey")
		gotSort = q.Get("sortBy")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "ok",
			"articles": []map[string]interface{}{
				{
					"title":       "Tata Steel posts record quarter",
					"description": "Profit up",
					"url":         "https://example.com/a",
					"publishedAt": "2026-08-20T09:30:00Z",
					"source":      map[string]string{"name": "Wire"},
				},
				{
					"title": "", // dropped
				},
			},
		})
	})

	items, err := c.Fetch(context.Background(), "Tata Steel", time.Now().AddDate(0, 0, -7), time.Now(), 10)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotQuery != "Tata Steel" || gotKey != "secret" || gotSort != "publishedAt" {
		t.Fatalf("unexpected query params q=%q apiKey=%q sortBy=%q", gotQuery, gotKey, gotSort)
	}
	if len(items) != 1 {
		t.Fatalf("untitled articles must be dropped, got %d items", len(items))
	}
	it := items[0]
	if it.Source != "Wire" || it.URL != "https://example.com/a" {
		t.Fatalf("unexpected item %+v", it)
	}
	if it.PublishedAt.UTC().Format(time.RFC3339) != "2026-08-20T09:30:00Z" {
		t.Fatalf("unexpected publish time %v", it.PublishedAt)
	}
}

func TestFetchLimit(t *testing.T) {
	c, _ := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		articles := make([]map[string]interface{}, 5)
		for i := range articles {
			articles[i] = map[string]interface{}{"title": "t", "publishedAt": "2026-08-20T00:00:00Z"}
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "articles": articles})
	})

	items, err := c.Fetch(context.Background(), "q", time.Now(), time.Now(), 3)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected limit 3, got %d", len(items))
	}
}

func TestFetchUpstreamError(t *testing.T) {
	c, _ := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "error", "message": "rate limited"})
	})
	if _, err := c.Fetch(context.Background(), "q", time.Now(), time.Now(), 5); err == nil {
		t.Fatalf("expected error on upstream status")
	}
}

func TestFetchHTTPError(t *testing.T) {
	c, _ := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	if _, err := c.Fetch(context.Background(), "q", time.Now(), time.Now(), 5); err == nil {
		t.Fatalf("expected error on 500")
	}
}

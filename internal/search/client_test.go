package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/cache"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/fault"
)

func TestClient_Search_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("Expected path /search, got %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("Expected x-api-key test-key, got %s", r.Header.Get("x-api-key"))
		}

		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Query == "" {
			t.Error("Expected query in request")
		}
		if !req.Contents.Text {
			t.Error("Expected contents.text to be requested")
		}

		_ = json.NewEncoder(w).Encode(searchResponse{
			Results: []searchResult{
				{Title: "Eiffel Tower", URL: "https://example.com/eiffel", Text: "The tower is 330m tall."},
				{Title: "Title only", URL: "https://example.com/title"},
				{Title: "No URL", Text: "dropped"},
			},
		})
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, 5, 5*time.Second, nil, 0)
	sources, err := client.Search(context.Background(), "The Eiffel Tower is 330m tall.")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(sources) != 2 {
		t.Fatalf("Expected 2 sources (URL-less dropped), got %d", len(sources))
	}
	if sources[0].Text != "The tower is 330m tall." {
		t.Errorf("Unexpected text: %s", sources[0].Text)
	}
	// Title substitutes for missing text
	if sources[1].Text != "Title only" {
		t.Errorf("Expected title fallback, got %s", sources[1].Text)
	}
}

func TestClient_Search_MissingKey(t *testing.T) {
	client := NewClient("", "", 5, time.Second, nil, 0)
	_, err := client.Search(context.Background(), "claim")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !fault.IsKind(err, fault.KindMissingCredential) {
		t.Errorf("Expected missing credential fault, got %v", err)
	}
	if err.Error() != "missing Exa API key" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

func TestClient_Search_EmptyClaim(t *testing.T) {
	client := NewClient("test-key", "", 5, time.Second, nil, 0)
	_, err := client.Search(context.Background(), "   ")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !fault.IsKind(err, fault.KindInvalidInput) {
		t.Errorf("Expected invalid input fault, got %v", err)
	}
}

func TestClient_Search_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "invalid api key"}`))
	}))
	defer server.Close()

	client := NewClient("bad-key", server.URL, 5, 5*time.Second, nil, 0)
	_, err := client.Search(context.Background(), "claim")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !fault.IsKind(err, fault.KindUpstreamUnavailable) {
		t.Errorf("Expected upstream unavailable fault, got %v", err)
	}
}

func TestClient_Search_CacheHit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(searchResponse{
			Results: []searchResult{{Title: "t", URL: "https://example.com", Text: "x"}},
		})
	}))
	defer server.Close()

	c := cache.NewMemoryCache(time.Minute, time.Minute)
	client := NewClient("test-key", server.URL, 5, 5*time.Second, c, time.Minute)

	for i := 0; i < 3; i++ {
		sources, err := client.Search(context.Background(), "same claim")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(sources) != 1 {
			t.Fatalf("Expected 1 source, got %d", len(sources))
		}
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("Expected 1 upstream call, got %d", got)
	}
}

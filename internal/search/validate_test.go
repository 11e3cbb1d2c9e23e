package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
)

func TestValidator_FilterAccessible(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("Expected HEAD, got %s", r.Method)
		}
		switch r.URL.Path {
		case "/alive", "/also-alive":
			w.WriteHeader(http.StatusOK)
		case "/moved":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	validator := NewValidator(5*time.Second, 4, "FactCheck-test")
	sources := []model.Source{
		{Text: "a", URL: server.URL + "/alive"},
		{Text: "b", URL: server.URL + "/moved"},
		{Text: "c", URL: server.URL + "/also-alive"},
		{Text: "d", URL: "http://127.0.0.1:1/unreachable"},
	}

	filtered := validator.FilterAccessible(context.Background(), sources)

	if len(filtered) != 2 {
		t.Fatalf("Expected 2 accessible sources, got %d", len(filtered))
	}
	// Order preserved
	if filtered[0].Text != "a" || filtered[1].Text != "c" {
		t.Errorf("Unexpected order: %s, %s", filtered[0].Text, filtered[1].Text)
	}
}

func TestValidator_FilterAccessible_Empty(t *testing.T) {
	validator := NewValidator(time.Second, 4, "FactCheck-test")

	if got := validator.FilterAccessible(context.Background(), nil); len(got) != 0 {
		t.Errorf("Expected empty result, got %v", got)
	}
}

func TestValidator_FilterAccessible_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	validator := NewValidator(time.Second, 1, "FactCheck-test")
	sources := []model.Source{{Text: "a", URL: "http://example.com"}}

	// Must return promptly without hanging on the semaphore
	done := make(chan struct{})
	go func() {
		validator.FilterAccessible(ctx, sources)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("FilterAccessible hung on cancelled context")
	}
}

package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/fault"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
)

func TestClient_Extract_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/extractclaims" {
			t.Errorf("Expected path /api/extractclaims, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}

		var req extractRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Content == "" {
			t.Error("Expected non-empty content")
		}

		_ = json.NewEncoder(w).Encode(map[string][]model.Claim{
			"claims": {
				{Claim: "The Nile is the longest river in Africa.", OriginalText: "The Nile is Africa's longest river."},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	claims, err := client.Extract(context.Background(), "The Nile is Africa's longest river.")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(claims))
	}
	if claims[0].Claim != "The Nile is the longest river in Africa." {
		t.Errorf("Unexpected claim: %s", claims[0].Claim)
	}
}

func TestClient_Extract_RouteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "Failed to extract claims | Groq request failed",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Extract(context.Background(), "content")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !fault.IsKind(err, fault.KindExtractionFailed) {
		t.Errorf("Expected extraction failed fault, got %v", err)
	}
}

func TestClient_Extract_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 500*time.Millisecond)
	_, err := client.Extract(context.Background(), "content")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !fault.IsKind(err, fault.KindExtractionFailed) {
		t.Errorf("Expected extraction failed fault, got %v", err)
	}
}

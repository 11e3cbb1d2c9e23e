package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker_CanFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	checker := NewRobotsChecker("FactCheck-test", 5*time.Second)

	allowed, err := checker.CanFetch(context.Background(), server.URL+"/public/page")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if !allowed {
		t.Error("expected /public/page to be allowed")
	}

	allowed, err = checker.CanFetch(context.Background(), server.URL+"/private/page")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if allowed {
		t.Error("expected /private/page to be disallowed")
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	checker := NewRobotsChecker("FactCheck-test", 5*time.Second)

	allowed, err := checker.CanFetch(context.Background(), server.URL+"/anything")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if !allowed {
		t.Error("expected fetch to be allowed when robots.txt is missing")
	}
}

func TestRobotsChecker_UnreachableHostAllows(t *testing.T) {
	checker := NewRobotsChecker("FactCheck-test", 500*time.Millisecond)

	allowed, err := checker.CanFetch(context.Background(), "http://127.0.0.1:1/page")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if !allowed {
		t.Error("expected fetch to be allowed when robots.txt is unreachable")
	}
}

func TestRobotsChecker_CachesPerHost(t *testing.T) {
	var fetches atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			fetches.Add(1)
			_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
		}
	}))
	defer server.Close()

	checker := NewRobotsChecker("FactCheck-test", 5*time.Second)

	for i := 0; i < 3; i++ {
		if _, err := checker.CanFetch(context.Background(), server.URL+"/page"); err != nil {
			t.Fatalf("CanFetch failed: %v", err)
		}
	}
	if got := fetches.Load(); got != 1 {
		t.Errorf("expected 1 robots.txt fetch, got %d", got)
	}

	checker.Clear()
	if _, err := checker.CanFetch(context.Background(), server.URL+"/page"); err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if got := fetches.Load(); got != 2 {
		t.Errorf("expected refetch after Clear, got %d fetches", got)
	}
}

package search

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/util"
)

// Validator HEAD-checks candidate source URLs concurrently and drops the
// dead ones before they reach verification. Bounded by a semaphore so a
// claim with many sources cannot stampede a host.
type Validator struct {
	httpClient *http.Client
	userAgent  string
	maxWorkers int
}

// NewValidator creates a source validator
func NewValidator(timeout time.Duration, maxWorkers int, userAgent string) *Validator {
	if maxWorkers <= 0 {
		maxWorkers = 10
	}

	return &Validator{
		httpClient: util.NewHTTPClient(timeout, "", "", ""),
		userAgent:  userAgent,
		maxWorkers: maxWorkers,
	}
}

// FilterAccessible returns the subset of sources whose URLs answer a HEAD
// request with a non-error status. Order is preserved.
func (v *Validator) FilterAccessible(ctx context.Context, sources []model.Source) []model.Source {
	if len(sources) == 0 {
		return sources
	}

	alive := make([]bool, len(sources))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, v.maxWorkers)

	for i, s := range sources {
		wg.Add(1)
		go func(idx int, src model.Source) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			alive[idx] = v.accessible(ctx, src.URL)
		}(i, s)
	}

	wg.Wait()

	filtered := make([]model.Source, 0, len(sources))
	for i, s := range sources {
		if alive[i] {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func (v *Validator) accessible(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode < 400
}

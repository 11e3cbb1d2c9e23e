package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/cache"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/fault"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/util"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/worker"
)

// Crawler fetches a web page and extracts its visible text so a URL can
// be ingested like an uploaded document. It respects robots.txt and a
// per-domain rate limit, and caches fetched pages.
type Crawler struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	cache      cache.Cache // nil disables caching
	cacheTTL   time.Duration
}

// NewCrawler creates a page crawler
func NewCrawler(timeout time.Duration, userAgent string, maxBytes int64, ratePerSec float64, burst int, c cache.Cache, cacheTTL time.Duration) *Crawler {
	return &Crawler{
		httpClient: util.NewHTTPClient(timeout, "", "", ""),
		userAgent:  userAgent,
		maxBytes:   maxBytes,
		robots:     util.NewRobotsChecker(userAgent, timeout),
		limiter:    worker.NewLimiter(ratePerSec, burst),
		cache:      c,
		cacheTTL:   cacheTTL,
	}
}

// FetchText fetches the URL and returns the page's visible text
func (c *Crawler) FetchText(ctx context.Context, rawURL string) (string, error) {
	key := cache.Key("crawl:" + rawURL)
	if c.cache != nil {
		if data, found := c.cache.Get(key); found {
			return string(data), nil
		}
	}

	allowed, err := c.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return "", fmt.Errorf("robots.txt disallows fetching %s", rawURL)
	}

	if err := c.limiter.Wait(ctx, rawURL); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fault.Wrap(fault.KindUpstreamUnavailable, "fetch page", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fault.Newf(fault.KindUpstreamUnavailable, "unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	text, err := VisibleText(string(body))
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}

	if c.cache != nil {
		_ = c.cache.Set(key, []byte(text), c.cacheTTL)
	}

	return text, nil
}

// VisibleText extracts the readable text from an HTML document,
// skipping script, style, noscript and iframe subtrees
func VisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String()), nil
}

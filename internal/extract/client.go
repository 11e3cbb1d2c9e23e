package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/fault"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
)

// Client calls the extraction route over HTTP. The ingestion service uses
// it so that upload handling reaches extraction across the same boundary
// the dashboard does - a round trip to the sibling endpoint, not an
// in-process call.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an extraction route client against the given base URL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type extractRequest struct {
	Content string `json:"content"`
}

type extractResponse struct {
	Claims []model.Claim `json:"claims"`
	Error  string        `json:"error"`
}

// Extract POSTs the content to /api/extractclaims and returns the claims
func (c *Client) Extract(ctx context.Context, content string) ([]model.Claim, error) {
	body, err := json.Marshal(extractRequest{Content: content})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/api/extractclaims"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fault.Wrap(fault.KindExtractionFailed, "call extraction route", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed extractResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fault.Wrap(fault.KindExtractionFailed, "decode extraction response", err)
	}

	if parsed.Error != "" {
		return nil, fault.Newf(fault.KindExtractionFailed, "extraction route: %s", parsed.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fault.Newf(fault.KindExtractionFailed,
			"extraction route returned status %d", resp.StatusCode)
	}

	return parsed.Claims, nil
}

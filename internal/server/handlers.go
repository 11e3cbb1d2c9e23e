package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/extract"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/fault"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/ingest"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/search"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/verify"
)

// Handlers holds the route handlers and their service dependencies
type Handlers struct {
	extractor      *extract.Extractor
	verifier       *verify.Verifier
	searcher       *search.Client
	ingestor       *ingest.Ingestor
	requestTimeout time.Duration
}

type extractClaimsRequest struct {
	Content string `json:"content"`
}

type verifyClaimsRequest struct {
	Claim        string         `json:"claim"`
	OriginalText string         `json:"original_text"`
	ExaSources   []model.Source `json:"exasources"`
}

type searchSourcesRequest struct {
	Claim string `json:"claim"`
}

// ExtractClaims handles POST /api/extractclaims
func (h *Handlers) ExtractClaims(c *gin.Context) {
	var req extractClaimsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	if h.extractor == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Missing Groq API key"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	claims, err := h.extractor.Extract(ctx, req.Content)
	if err != nil {
		h.fail(c, "Failed to extract claims", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"claims": claims})
}

// VerifyClaims handles POST /api/verifyclaims
func (h *Handlers) VerifyClaims(c *gin.Context) {
	var req verifyClaimsRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.Claim == "" || req.OriginalText == "" || req.ExaSources == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Claim and sources are required"})
		return
	}

	if h.verifier == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Missing Groq API key"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	verdict, err := h.verifier.Verify(ctx, req.Claim, req.OriginalText, req.ExaSources)
	if err != nil {
		h.fail(c, "Failed to verify claims", err)
		return
	}

	// The dashboard expects the verdict under "claims"
	c.JSON(http.StatusOK, gin.H{"claims": verdict})
}

// Upload handles POST /api/upload (multipart form with a "file" field)
func (h *Handlers) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	// Reject oversized uploads from the declared size before buffering
	// the body.
	if err := h.ingestor.CheckSize(fileHeader.Size); err != nil {
		h.fail(c, "Upload failed", err)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed: " + err.Error()})
		return
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed: " + err.Error()})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.ingestor.Ingest(ctx, ingest.Upload{
		Name:     fileHeader.Filename,
		MIMEType: fileHeader.Header.Get("Content-Type"),
		Size:     fileHeader.Size,
		Data:     data,
	})
	if err != nil {
		h.fail(c, "Upload failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"filename":      result.Filename,
		"fileSize":      result.FileSize,
		"fileType":      result.FileType,
		"extractedText": result.ExtractedText,
		"claims":        result.Claims,
		"claimCount":    result.ClaimCount,
	})
}

// SearchSources handles POST /api/exasearch
func (h *Handlers) SearchSources(c *gin.Context) {
	var req searchSourcesRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Claim == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Claim is required"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	sources, err := h.searcher.Search(ctx, req.Claim)
	if err != nil {
		h.fail(c, "Failed to search sources", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": sources})
}

// requestContext applies the per-request execution ceiling
func (h *Handlers) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	timeout := h.requestTimeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

// fail maps a service error to a status code and the flat error body the
// dashboard parses. Messages stay human-readable; there is no structured
// error code.
func (h *Handlers) fail(c *gin.Context, prefix string, err error) {
	switch fault.KindOf(err) {
	case fault.KindInvalidInput, fault.KindUnsupportedFileType, fault.KindFileTooLarge:
		// Caller errors keep the service message verbatim
		slog.Warn(prefix, "status", http.StatusBadRequest, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error(prefix, "status", http.StatusInternalServerError, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": prefix + " | " + err.Error()})
	}
}

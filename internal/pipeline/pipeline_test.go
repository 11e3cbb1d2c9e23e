package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/fault"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
)

// newLLMServer answers extraction prompts with one claim and verification
// prompts with a True verdict, keyed off the system message.
func newLLMServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}

		var content string
		if strings.Contains(req.Messages[0].Content, "extracting") {
			content = `[{"claim": "The Nile is about 6650 km long.", "original_text": "The Nile is about 6650 km long."}]`
		} else {
			content = `{"claim": "The Nile is about 6650 km long.", "assessment": "True", "summary": "Supported by sources.", "fixed_original_text": "The Nile is about 6650 km long.", "confidence_score": 92}`
		}

		resp := openai.ChatCompletionResponse{
			Model: "llama-3.1-70b-versatile",
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testPipelineConfig(llmURL, exaURL string) *model.Config {
	cfg := model.DefaultConfig()
	cfg.LLM.APIKey = "test-key"
	cfg.LLM.BaseURL = llmURL
	cfg.Search.APIKey = "test-exa-key"
	cfg.Search.BaseURL = exaURL
	cfg.Cache.Enabled = false
	return cfg
}

func TestPipeline_CheckText(t *testing.T) {
	llmSrv := newLLMServer(t)
	defer llmSrv.Close()

	// One mux serves both the Exa search route and the source page the
	// validator HEAD-checks.
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"results": [{"title": "Nile", "url": "%s/source", "text": "The Nile is 6650 km long."}]}`, srv.URL)
	})
	mux.HandleFunc("/source", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	p, err := NewPipeline(testPipelineConfig(llmSrv.URL, srv.URL))
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	report, err := p.CheckText(context.Background(), "rivers.txt", "The Nile is about 6650 km long.")
	if err != nil {
		t.Fatalf("CheckText failed: %v", err)
	}

	if report.Subject != "rivers.txt" {
		t.Errorf("Unexpected subject: %s", report.Subject)
	}
	if len(report.Results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(report.Results))
	}

	res := report.Results[0]
	if res.Verdict == nil {
		t.Fatalf("Expected a verdict, got error: %s", res.Error)
	}
	if res.Verdict.Assessment != model.AssessmentTrue {
		t.Errorf("Expected True assessment, got %s", res.Verdict.Assessment)
	}
	if len(res.Sources) != 1 {
		t.Errorf("Expected 1 validated source, got %d", len(res.Sources))
	}
	if report.Stats.True != 1 || report.Stats.Claims != 1 {
		t.Errorf("Unexpected stats: %+v", report.Stats)
	}
}

func TestPipeline_CheckText_NoSearchKey(t *testing.T) {
	llmSrv := newLLMServer(t)
	defer llmSrv.Close()

	cfg := testPipelineConfig(llmSrv.URL, "")
	cfg.Search.APIKey = ""

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	// Missing search credential degrades to source-less verification
	report, err := p.CheckText(context.Background(), "subject", "The Nile is about 6650 km long.")
	if err != nil {
		t.Fatalf("CheckText failed: %v", err)
	}

	if len(report.Results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(report.Results))
	}
	if report.Results[0].Verdict == nil {
		t.Fatalf("Expected a verdict, got error: %s", report.Results[0].Error)
	}
	if len(report.Results[0].Sources) != 0 {
		t.Errorf("Expected no sources, got %d", len(report.Results[0].Sources))
	}
}

func TestPipeline_CheckFile(t *testing.T) {
	llmSrv := newLLMServer(t)
	defer llmSrv.Close()

	cfg := testPipelineConfig(llmSrv.URL, "")
	cfg.Search.APIKey = ""

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "rivers.txt")
	if err := os.WriteFile(path, []byte("The Nile is about 6650 km long."), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	report, err := p.CheckFile(context.Background(), path)
	if err != nil {
		t.Fatalf("CheckFile failed: %v", err)
	}
	if report.Subject != "rivers.txt" {
		t.Errorf("Expected base name as subject, got %s", report.Subject)
	}
}

func TestPipeline_CheckFile_UnsupportedType(t *testing.T) {
	llmSrv := newLLMServer(t)
	defer llmSrv.Close()

	p, err := NewPipeline(testPipelineConfig(llmSrv.URL, ""))
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.7"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err = p.CheckFile(context.Background(), path)
	if err == nil {
		t.Fatal("Expected error for PDF input")
	}
	if !fault.IsKind(err, fault.KindUnsupportedFileType) {
		t.Errorf("Expected unsupported file type fault, got %v", err)
	}
}

func TestMimeForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"notes.txt", "text/plain"},
		{"README.md", "text/plain"},
		{"paper.PDF", "application/pdf"},
		{"letter.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"binary.exe", ""},
	}
	for _, tt := range tests {
		if got := mimeForPath(tt.path); got != tt.want {
			t.Errorf("mimeForPath(%s) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// PDFService is a thin client for the external PDF rendering collaborator.
type PDFService struct {
	baseURL    string
	httpClient *http.Client
}

// NewPDFServiceFromEnv returns nil when PDF_SERVICE_URL is not set.
func NewPDFServiceFromEnv() *PDFService {
	if os.Getenv("PDF_SERVICE_URL") == "" {
		return nil
	}
	return &PDFService{
		baseURL: os.Getenv("PDF_SERVICE_URL"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type pdfRenderRequest struct {
	HTML     string `json:"html"`
	Filename string `json:"filename"`
}

// Render posts a document body to the rendering service and returns the
// PDF bytes. Rendering is synchronous request/response.
func (s *PDFService) Render(html, filename string) ([]byte, error) {
	if s == nil || s.baseURL == "" {
		return nil, ErrNotConfigured
	}

	payload, err := json.Marshal(pdfRenderRequest{HTML: html, Filename: filename})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/render", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("pdf service returned %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

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

// AIService is a thin client for the LLM collaborator behind /ai/enhance
// and /ai/proposal.
type AIService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewAIServiceFromEnv returns nil when AI_API_URL is not set.
func NewAIServiceFromEnv() *AIService {
	if os.Getenv("AI_API_URL") == "" {
		return nil
	}
	return &AIService{
		baseURL: os.Getenv("AI_API_URL"),
		apiKey:  os.Getenv("AI_API_KEY"),
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type aiEnhanceRequest struct {
	Prompt string `json:"prompt"`
}

type aiEnhanceResponse struct {
	EnhancedContent string `json:"enhancedContent"`
}

type aiProposalRequest struct {
	CalculatorData json.RawMessage `json:"calculatorData"`
}

type aiProposalResponse struct {
	Content string `json:"content"`
}

func (s *AIService) post(path string, payload any, out any) error {
	if s == nil || s.baseURL == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ai service returned %d: %s", resp.StatusCode, string(raw))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// Enhance sends a rewrite prompt and returns the enhanced content.
func (s *AIService) Enhance(prompt string) (string, error) {
	var out aiEnhanceResponse
	if err := s.post("/enhance", aiEnhanceRequest{Prompt: prompt}, &out); err != nil {
		return "", err
	}
	return out.EnhancedContent, nil
}

// GenerateProposal drafts a proposal body from a calculator snapshot.
func (s *AIService) GenerateProposal(calculatorData json.RawMessage) (string, error) {
	var out aiProposalResponse
	if err := s.post("/proposal", aiProposalRequest{CalculatorData: calculatorData}, &out); err != nil {
		return "", err
	}
	return out.Content, nil
}

package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

const unsplashAPIURL = "https://api.unsplash.com"

// UnsplashService searches stock photos for proposal cover images.
type UnsplashService struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
}

// NewUnsplashFromEnv returns nil when UNSPLASH_ACCESS_KEY is not set.
func NewUnsplashFromEnv() *UnsplashService {
	if os.Getenv("UNSPLASH_ACCESS_KEY") == "" {
		return nil
	}
	base := os.Getenv("UNSPLASH_API_URL")
	if base == "" {
		base = unsplashAPIURL
	}
	return &UnsplashService{
		baseURL:   base,
		accessKey: os.Getenv("UNSPLASH_ACCESS_KEY"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type PhotoURLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

type PhotoUser struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

type PhotoLinks struct {
	DownloadLocation string `json:"download_location"`
}

type Photo struct {
	ID    string     `json:"id"`
	URLs  PhotoURLs  `json:"urls"`
	User  PhotoUser  `json:"user"`
	Links PhotoLinks `json:"links"`
}

type PhotoSearchResult struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Results    []Photo `json:"results"`
}

// Search queries the photo API. Required params per the provider: query,
// page, per_page, client_id.
func (s *UnsplashService) Search(query string, page, perPage int) (*PhotoSearchResult, error) {
	if s == nil || s.accessKey == "" {
		return nil, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("client_id", s.accessKey)

	resp, err := s.httpClient.Get(s.baseURL + "/search/photos?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("photo search returned %d: %s", resp.StatusCode, string(raw))
	}

	var result PhotoSearchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}

// TriggerDownload fires the provider's attribution ping for a photo that
// was actually used. Best-effort: failures are logged, never surfaced.
func (s *UnsplashService) TriggerDownload(downloadLocation string) {
	if s == nil || s.accessKey == "" || downloadLocation == "" {
		return
	}
	go func() {
		resp, err := s.httpClient.Get(downloadLocation + "?client_id=" + url.QueryEscape(s.accessKey))
		if err != nil {
			slog.Warn("photo download ping failed", "error", err)
			return
		}
		resp.Body.Close()
	}()
}

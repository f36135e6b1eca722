package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/models"
)

// PosterService looks up poster images on an OMDb-compatible search API.
// Lookups are best effort: any failure means "no poster".
type PosterService struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

type omdbSearchResponse struct {
	Search []struct {
		Title  string `json:"Title"`
		Year   string `json:"Year"`
		Poster string `json:"Poster"`
	} `json:"Search"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

func NewPosterService(baseURL, apiKey string, timeout time.Duration) *PosterService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PosterService{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Enabled reports whether an API key is configured.
func (s *PosterService) Enabled() bool {
	return s.apiKey != "" && s.baseURL != ""
}

// Search returns the poster of the first search hit for title.
func (s *PosterService) Search(ctx context.Context, title string, contentType models.ContentType) (string, bool) {
	if !s.Enabled() || strings.TrimSpace(title) == "" {
		return "", false
	}
	poster, err := s.search(ctx, title, contentType)
	if err != nil {
		slog.Debug("poster lookup failed", "title", title, "error", err)
		return "", false
	}
	return poster, poster != ""
}

func (s *PosterService) search(ctx context.Context, title string, contentType models.ContentType) (string, error) {
	q := url.Values{}
	q.Set("apikey", s.apiKey)
	q.Set("s", title)
	if contentType.Valid() {
		q.Set("type", string(contentType))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("poster API returned status %d", resp.StatusCode)
	}

	var body omdbSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode poster response: %w", err)
	}
	if body.Response == "False" {
		return "", fmt.Errorf("poster API: %s", body.Error)
	}
	if len(body.Search) == 0 {
		return "", nil
	}

	poster := body.Search[0].Poster
	if poster == "N/A" {
		return "", nil
	}
	return poster, nil
}

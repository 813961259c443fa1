package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nutriflow/backend/config"
)

var (
	// ErrUpstreamResponse means the model returned something that is not
	// JSON even after the defensive extraction pass. The client gets a
	// generic message; the raw payload goes to the server log.
	ErrUpstreamResponse = errors.New("invalid upstream response")

	// ErrNoCachedPlan means no plan has been generated (or it expired).
	ErrNoCachedPlan = errors.New("no cached plan")
)

const (
	planCachePrefix = "plan:latest:"
	planCacheTTL    = 24 * time.Hour
)

// LLMService calls the Google Generative Language API and caches the
// latest plan per user.
type LLMService struct {
	apiKey string
	apiURL string
	client *http.Client
	redis  *redis.Client
	log    zerolog.Logger
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg *config.Config, redisClient *redis.Client, log zerolog.Logger) (*LLMService, error) {
	if cfg.GoogleAIAPIKey == "" {
		return nil, fmt.Errorf("GOOGLE_AI_API_KEY must be set")
	}

	return &LLMService{
		apiKey: cfg.GoogleAIAPIKey,
		apiURL: cfg.GoogleAIAPIURL,
		// Explicit upper bound: the model can hang, and the handler must
		// come back with a 500 rather than hold the request open forever.
		client: &http.Client{Timeout: cfg.GenerateTimeout},
		redis:  redisClient,
		log:    log,
	}, nil
}

// geminiRequest is the generateContent request body.
type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType"`
}

// Generate sends the composed prompt to the model and returns the parsed
// JSON document it produced.
func (s *LLMService) Generate(ctx context.Context, prompt string) (json.RawMessage, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:      0.8,
			ResponseMimeType: "application/json",
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		s.log.Error().Int("status", resp.StatusCode).Bytes("body", body).Msg("generation API request failed")
		return nil, fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []geminiPart `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	return s.parseModelOutput(text.String())
}

// parseModelOutput parses the model's text as JSON. The structured
// response mode makes raw text rare, but the model still violates its
// contract occasionally, so a first-'{'/last-'}' extraction is kept as a
// fallback before giving up.
func (s *LLMService) parseModelOutput(text string) (json.RawMessage, error) {
	if json.Valid([]byte(text)) {
		return json.RawMessage(text), nil
	}

	if extracted, ok := extractJSON(text); ok {
		return extracted, nil
	}

	s.log.Error().Str("body", text).Msg("model response is not valid JSON")
	return nil, ErrUpstreamResponse
}

// extractJSON pulls the first top-level JSON object out of free text.
func extractJSON(text string) (json.RawMessage, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	candidate := text[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil, false
	}
	return json.RawMessage(candidate), true
}

// CachePlan stores the latest generated plan for the user.
func (s *LLMService) CachePlan(ctx context.Context, userID uuid.UUID, plan json.RawMessage) error {
	key := planCachePrefix + userID.String()
	if err := s.redis.Set(ctx, key, []byte(plan), planCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache plan: %w", err)
	}
	return nil
}

// LatestPlan retrieves the most recently generated plan for the user.
func (s *LLMService) LatestPlan(ctx context.Context, userID uuid.UUID) (json.RawMessage, error) {
	key := planCachePrefix + userID.String()
	data, err := s.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNoCachedPlan
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached plan: %w", err)
	}
	return json.RawMessage(data), nil
}

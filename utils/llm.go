package utils

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

	"github.com/sovtrack/sovtrack/config"
)

// ErrMalformedCompletion is returned when the provider's output cannot be
// parsed into CoachAdvice even after the single repair pass.
var ErrMalformedCompletion = errors.New("coaching completion is not valid structured output")

// CoachContext is the structured context sent to the coaching provider.
type CoachContext struct {
	PathName       string  `json:"path_name"`
	RecentScores   []int   `json:"recent_scores"`
	AveragePercent float64 `json:"average_percent"`
	MotivationTier string  `json:"motivation_tier"`
	TotalSats      int64   `json:"total_sats"`
	InvestedUSD    string  `json:"invested_usd"`
	Question       string  `json:"question"`
}

// CoachAdvice is the strict schema expected back from the provider.
type CoachAdvice struct {
	Insights       []string `json:"insights"`
	Recommendation string   `json:"recommendation"`
	DataPoints     []string `json:"data_points"`
}

// CoachClient talks to an OpenAI-compatible chat completions endpoint.
// Constructed once at startup and injected into controllers.
type CoachClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewCoachClient builds a CoachClient from application configuration.
func NewCoachClient(cfg config.AppConfig) *CoachClient {
	return &CoachClient{
		baseURL: strings.TrimRight(cfg.LLMBaseURL, "/"),
		apiKey:  cfg.LLMAPIKey,
		model:   cfg.LLMModel,
		client:  &http.Client{Timeout: time.Duration(cfg.LLMTimeoutSec) * time.Second},
	}
}

const coachSystemPrompt = `You are a pragmatic habit and personal-finance coach.
Answer ONLY with a JSON object of the shape
{"insights": ["..."], "recommendation": "...", "data_points": ["..."]}.
Be concrete, reference the supplied numbers, no filler.`

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Ask sends the coaching context to the provider and parses the reply into
// CoachAdvice, tolerating near-valid output via a single repair pass.
func (c *CoachClient) Ask(ctx context.Context, cc CoachContext) (*CoachAdvice, error) {
	ctxJSON, err := json.Marshal(cc)
	if err != nil {
		return nil, err
	}

	reqBody, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: coachSystemPrompt},
			{Role: "user", Content: string(ctxJSON)},
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llm api status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("llm api error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, ErrMalformedCompletion
	}

	return ParseCoachAdvice(parsed.Choices[0].Message.Content)
}

// ParseCoachAdvice parses the model's reply against the strict CoachAdvice
// schema. On failure it applies exactly one bounded repair pass (strip code
// fences and surrounding prose, retry) before giving up with
// ErrMalformedCompletion. Unbounded heuristic patching is deliberately
// avoided.
func ParseCoachAdvice(raw string) (*CoachAdvice, error) {
	if advice, ok := tryParseAdvice(raw); ok {
		return advice, nil
	}
	if repaired := repairJSONPayload(raw); repaired != "" {
		if advice, ok := tryParseAdvice(repaired); ok {
			return advice, nil
		}
	}
	return nil, ErrMalformedCompletion
}

func tryParseAdvice(s string) (*CoachAdvice, bool) {
	var advice CoachAdvice
	dec := json.NewDecoder(strings.NewReader(s))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&advice); err != nil {
		return nil, false
	}
	if advice.Recommendation == "" && len(advice.Insights) == 0 {
		return nil, false
	}
	return &advice, true
}

// repairJSONPayload strips markdown code fences and any prose before the
// first '{' or after the last '}'. Returns "" when no object is present.
func repairJSONPayload(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		s = strings.TrimPrefix(s, "json")
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return strings.TrimSpace(s[start : end+1])
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dailygoals/dailygoals/internal/model"
)

var (
	// ErrParse marks responses that are not valid JSON.
	ErrParse = errors.New("failed to parse model response")
	// ErrMalformed marks responses that parse but violate the output
	// contract (wrong element count, missing fields).
	ErrMalformed = errors.New("malformed model response")
	// ErrGeneration marks any failure of the underlying API call
	// (network, auth, server errors), with message detail preserved.
	ErrGeneration = errors.New("goal generation failed")
)

const systemPrompt = "You are a personal goal coach who creates achievable, motivating daily goals. Always respond with valid JSON only."

const (
	temperature    = 0.7
	maxTokens      = 800
	retryBaseDelay = 500 * time.Millisecond
)

// Goal is one generated goal as returned by the model.
type Goal struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Generator produces a batch of daily goals from a rendered prompt.
// The orchestrator depends on this interface so tests can stub the
// external call and count invocations.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]Goal, error)
}

// Client calls an OpenAI-compatible chat completions API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	maxRetries int
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration, maxRetries int) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		maxRetries: maxRetries,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the prompt to the model and returns the validated batch of
// exactly 3 goals. Transient transport failures (network errors, HTTP 429
// and 5xx) are retried with exponential backoff up to maxRetries extra
// attempts; 4xx responses and contract violations are permanent.
func (c *Client) Generate(ctx context.Context, prompt string) ([]Goal, error) {
	var content string

	backoff := retry.WithMaxRetries(uint64(c.maxRetries), retry.NewExponential(retryBaseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var attemptErr error
		content, attemptErr = c.complete(ctx, prompt)
		return attemptErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrGeneration, err)
	}

	return parseGoals(content)
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network failures and timeouts are worth another attempt.
		return "", retry.RetryableError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", retry.RetryableError(err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := fmt.Errorf("api returned status %d: %s", resp.StatusCode, apiErrorMessage(respBody))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return "", retry.RetryableError(apiErr)
		}
		return "", apiErr
	}

	var chatResp chatResponse
	err = json.Unmarshal(respBody, &chatResp)
	if err != nil {
		return "", fmt.Errorf("invalid api response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", errors.New("api response contained no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}

func apiErrorMessage(body []byte) string {
	var chatResp chatResponse
	if json.Unmarshal(body, &chatResp) == nil && chatResp.Error != nil && chatResp.Error.Message != "" {
		return chatResp.Error.Message
	}
	return strings.TrimSpace(string(body))
}

// parseGoals enforces the response contract: strip an optional fenced code
// block, parse a JSON array of exactly 3 complete goals, and clamp
// oversized fields to the storage limits with a logged warning.
func parseGoals(content string) ([]Goal, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	content = strings.TrimSpace(content)

	var goals []Goal
	err := json.Unmarshal([]byte(content), &goals)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}

	if len(goals) != model.GoalsPerDay {
		return nil, fmt.Errorf("%w: expected exactly %d goals, got %d", ErrMalformed, model.GoalsPerDay, len(goals))
	}

	for i := range goals {
		if goals[i].Title == "" || goals[i].Description == "" || goals[i].Category == "" {
			return nil, fmt.Errorf("%w: goal %d is missing title, description, or category", ErrMalformed, i+1)
		}

		goals[i].Title = clamp(goals[i].Title, model.GoalTitleMaxLen, "title")
		goals[i].Description = clamp(goals[i].Description, model.GoalDescriptionMaxLen, "description")

		if !model.ValidCategory(goals[i].Category) {
			// Category drift is tolerated in storage; the prompt constrains
			// it, so an unknown value is only worth a warning.
			slog.Warn("model returned unknown goal category", "category", goals[i].Category)
		}
	}

	return goals, nil
}

// clamp truncates s to max runes. The clamp is deliberate data loss that
// keeps storage invariants safe from model drift, so it warns rather than
// failing the whole batch.
func clamp(s string, max int, field string) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	slog.Warn("clamping oversized model output", "field", field, "length", len(runes), "max", max)
	return string(runes[:max])
}

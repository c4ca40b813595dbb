package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"cemetery/internal/config"
	"cemetery/internal/metrics"
	"cemetery/internal/utils"

	"go.uber.org/zap"
)

// ErrLLMDisabled is returned when no API key is configured
var ErrLLMDisabled = errors.New("chat completion API is not enabled (missing API key)")

const intentSystemPrompt = `You extract search filters from queries typed into a cemetery burial records search box.

Respond ONLY with a JSON object. It may contain these fields:
- firstName: given name (string)
- lastName: surname (string)
- middleName: middle name(s) (string)
- dateOfBirth: full birth date as YYYY-MM-DD (string)
- dateOfDeath: full death date as YYYY-MM-DD (string)
- yearOfBirth: birth year when only the year is known (integer)
- yearOfDeath: death year when only the year is known (integer)
- ageAtDeath: age at death in years (integer)
- gender: "male" or "female" (string)
- occupation: occupation or profession (string)
- relationship: how the searcher is related to the person, e.g. "grandmother" (string)
- confidence: how confident you are in the extraction, between 0 and 1 (number)

Rules:
- Omit any field you are not confident about. Never output null or empty strings.
- Use dateOfBirth/dateOfDeath only for complete dates; use yearOfBirth/yearOfDeath for a bare year.
- A bare year with no other hint refers to the year of death.

Examples:
Query: "Juan Dela Cruz died 1985"
Response: {"firstName": "Juan", "lastName": "Dela Cruz", "yearOfDeath": 1985, "gender": "male", "confidence": 0.9}

Query: "my grandmother who was a seamstress, born March 3 1921"
Response: {"relationship": "grandmother", "gender": "female", "occupation": "seamstress", "dateOfBirth": "1921-03-03", "confidence": 0.8}`

// OpenAIClient handles OpenAI-compatible chat-completion calls
type OpenAIClient struct {
	config     *config.OpenAIConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewOpenAIClient creates a new OpenAI-compatible client
func NewOpenAIClient(cfg *config.OpenAIConfig, logger *zap.Logger) *OpenAIClient {
	return &OpenAIClient{
		config: cfg,
		httpClient: &http.Client{
			// zero means no client-side timeout; callers bound latency with ctx
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger: logger.Named("openai"),
	}
}

// IsEnabled returns whether the client is configured and ready
func (c *OpenAIClient) IsEnabled() bool {
	return c != nil && c.config.Enabled
}

// ChatCompletionRequest represents a chat completion request
type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ResponseFormat specifies the format of the response
type ResponseFormat struct {
	Type string `json:"type"` // "json_object" or "text"
}

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse represents the API response
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// ChatCompletion performs a chat completion request
func (c *OpenAIClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if !c.IsEnabled() {
		return nil, ErrLLMDisabled
	}

	if req.Model == "" {
		req.Model = c.config.ChatModel
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.config.APIBase)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

// ExtractIntent asks the model for the intent fields of query and returns
// the decoded JSON object without validating it
func (c *OpenAIClient) ExtractIntent(ctx context.Context, query string) (map[string]interface{}, error) {
	start := time.Now()
	raw, err := c.extractIntent(ctx, query)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.LLMRequestDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	return raw, err
}

func (c *OpenAIClient) extractIntent(ctx context.Context, query string) (map[string]interface{}, error) {
	req := ChatCompletionRequest{
		Model: c.config.ChatModel,
		Messages: []ChatMessage{
			{Role: "system", Content: intentSystemPrompt},
			{Role: "user", Content: query},
		},
		Temperature:    c.config.ChatTemperature,
		MaxTokens:      c.config.ChatMaxTokens,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	resp, err := c.ChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in chat completion response")
	}

	content := resp.Choices[0].Message.Content
	raw, err := utils.ExtractJSONObject(content)
	if err != nil {
		c.logger.Debug("unparseable model output", zap.String("content", truncate(content, 500)))
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}

	c.logger.Debug("model intent received",
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.Int("fields", len(raw)),
	)
	return raw, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

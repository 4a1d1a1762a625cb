package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/config"
	"github.com/pageza/pantry-chef/backend/internal/telemetry"
)

// CompletionParams are the sampling parameters sent with one prompt
type CompletionParams struct {
	Temperature float64
	MaxTokens   int
}

// CompletionResult is a validated provider reply
type CompletionResult struct {
	Text        string
	TotalTokens int
}

// completionRequest is the legacy completions wire format
type completionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// maxResponseBytes caps how much of a provider reply is read. A recipe of at most
// RecipeMaxTokens tokens is far below it.
const maxResponseBytes = 1 << 20

// OpenAIClient calls an OpenAI-compatible text completion endpoint
type OpenAIClient struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewOpenAIClient creates a client from the loaded configuration. The configured
// timeout bounds every call.
func NewOpenAIClient(cfg *config.Config, logger *zap.Logger) *OpenAIClient {
	return &OpenAIClient{
		apiKey: cfg.OpenAIAPIKey,
		apiURL: cfg.CompletionURL,
		model:  cfg.CompletionModel,
		httpClient: &http.Client{
			Timeout: cfg.CompletionTimeout,
		},
		logger: logger,
	}
}

// Complete sends a single prompt. It does not retry; any failure is returned as a
// *ProviderError.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string, params CompletionParams) (*CompletionResult, error) {
	ctx, span := otel.Tracer(telemetry.TracerName).Start(ctx, "completion.complete")
	defer span.End()
	span.SetAttributes(
		attribute.String("completion.model", c.model),
		attribute.Int("completion.prompt_length", len(prompt)),
		attribute.Int("completion.max_tokens", params.MaxTokens),
	)

	result, err := c.complete(ctx, prompt, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		c.logger.Warn("completion request failed", zap.Error(err))
		return nil, err
	}

	span.SetAttributes(attribute.Int("completion.total_tokens", result.TotalTokens))
	c.logger.Debug("completion received",
		zap.Int("total_tokens", result.TotalTokens),
		zap.Int("text_length", len(result.Text)),
	)
	return result, nil
}

func (c *OpenAIClient) complete(ctx context.Context, prompt string, params CompletionParams) (*CompletionResult, error) {
	reqBody := completionRequest{
		Model:       c.model,
		Prompt:      prompt,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ProviderError{Message: "failed to marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, &ProviderError{Message: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{Message: "failed to send request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, &ProviderError{Message: "failed to read response", Err: err}
	}
	if len(body) > maxResponseBytes {
		return nil, &ProviderError{Message: fmt.Sprintf("response larger than %d bytes", maxResponseBytes)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("request failed: %s", truncate(string(body), 512)),
		}
	}

	var result completionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ProviderError{Message: "failed to decode response", Err: err}
	}
	if len(result.Choices) == 0 {
		return nil, &ProviderError{Message: "no choices in response"}
	}
	if result.Usage == nil {
		return nil, &ProviderError{Message: "no usage in response"}
	}

	return &CompletionResult{
		Text:        result.Choices[0].Text,
		TotalTokens: result.Usage.TotalTokens,
	}, nil
}

// truncate shortens s to at most n bytes without splitting a UTF-8 sequence
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

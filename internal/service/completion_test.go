package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/config"
)

func newTestClient(url string, timeout time.Duration) *OpenAIClient {
	return NewOpenAIClient(&config.Config{
		OpenAIAPIKey:      "sk-test",
		CompletionURL:     url,
		CompletionModel:   "test-model",
		CompletionTimeout: timeout,
	}, zap.NewNop())
}

func TestOpenAIClient_Complete(t *testing.T) {
	var got completionRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"text":"\n\nYes"}],"usage":{"prompt_tokens":20,"completion_tokens":2,"total_tokens":22}}`)
	}))
	defer ts.Close()

	client := newTestClient(ts.URL, time.Second)
	result, err := client.Complete(context.Background(), "prompt text", CompletionParams{Temperature: 0.6, MaxTokens: 600})

	require.NoError(t, err)
	assert.Equal(t, "\n\nYes", result.Text)
	assert.Equal(t, 22, result.TotalTokens)

	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, "prompt text", got.Prompt)
	assert.Equal(t, 0.6, got.Temperature)
	assert.Equal(t, 600, got.MaxTokens)
}

func TestOpenAIClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		status  int
	}{
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":{"message":"Rate limit reached"}}`, http.StatusTooManyRequests)
			},
			status: http.StatusTooManyRequests,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			status: http.StatusInternalServerError,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"choices":`)
			},
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"choices":[],"usage":{"total_tokens":3}}`)
			},
		},
		{
			name: "oversized body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, `{"choices":[{"text":"%s"}],"usage":{"total_tokens":3}}`, strings.Repeat("a", maxResponseBytes))
			},
		},
		{
			name: "no usage",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"choices":[{"text":"Yes"}]}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			result, err := newTestClient(ts.URL, time.Second).Complete(context.Background(), "p", CompletionParams{MaxTokens: 10})

			assert.Nil(t, result)
			require.ErrorIs(t, err, ErrProviderFailure)
			var perr *ProviderError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.status, perr.StatusCode)
		})
	}
}

func TestOpenAIClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	_, err := newTestClient(ts.URL, 50*time.Millisecond).Complete(context.Background(), "p", CompletionParams{MaxTokens: 10})
	assert.ErrorIs(t, err, ErrProviderFailure)
}

func TestOpenAIClient_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := newTestClient(url, time.Second).Complete(context.Background(), "p", CompletionParams{MaxTokens: 10})
	assert.ErrorIs(t, err, ErrProviderFailure)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))

	// "é" is two bytes; cutting inside it backs off to the rune boundary
	got := truncate("caféteria", 4)
	assert.Equal(t, "caf...", got)
	assert.True(t, utf8.ValidString(got))
}

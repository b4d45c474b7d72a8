// Package client talks to the pearl QA backend over HTTP.
package client

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
)

// ErrMissingAnswer reports a 2xx response whose body carries no usable
// answer field.
var ErrMissingAnswer = errors.New("response missing answer")

// Client is the pearl QA backend client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a backend client for baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// QARequest is the body of a question/answer exchange.
type QARequest struct {
	Question  string `json:"question"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

// QAResponse is the backend's answer envelope. Only the answer field is
// consumed; a pointer distinguishes absent from empty.
type QAResponse struct {
	Answer *string `json:"answer"`
}

// Ask performs one question/answer exchange. Transport errors, non-2xx
// statuses and malformed or answer-less bodies are all returned as errors;
// callers treat every failure the same way.
func (c *Client) Ask(ctx context.Context, question, userID, sessionID string) (string, error) {
	body, err := json.Marshal(QARequest{
		Question:  question,
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/qa", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Gz-Trace-Id", uuid.NewString())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("backend error [%d]: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var result QAResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if result.Answer == nil || *result.Answer == "" {
		return "", ErrMissingAnswer
	}

	return *result.Answer, nil
}

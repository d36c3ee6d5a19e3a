package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"

	"github.com/disklink/disklink/internal/config"
	"github.com/disklink/disklink/internal/http"
	"github.com/disklink/disklink/internal/models"
)

// retryLogger implements the retryablehttp.LeveledLogger interface.
// Retries are surfaced at warn level; routine traffic stays quiet.
type retryLogger struct{}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	log.Error().Fields(keysAndValues).Msg(msg)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	log.Warn().Fields(keysAndValues).Msg(msg)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {}

// Client is the Disk API client. Metadata traffic goes through a
// retrying client so transient failures do not abort a catalogue walk;
// transfer-URL traffic (streamed bodies) uses a plain client because a
// partially consumed stream cannot be replayed.
type Client struct {
	apiClient      *nethttp.Client
	transferClient *nethttp.Client
	baseURL        string
	token          string
}

// NewClient creates a new Disk API client from the session configuration.
func NewClient(cfg *config.Config, token string) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = http.CreateOptimizedClient()
	retryClient.RetryMax = 5
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 30 * time.Second
	retryClient.Logger = &retryLogger{}

	return &Client{
		apiClient:      retryClient.StandardClient(),
		transferClient: http.CreateOptimizedClient(),
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		token:          token,
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs an authenticated request against the resources API.
func (c *Client) doRequest(ctx context.Context, method, path string, params url.Values) (*nethttp.Response, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := nethttp.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.apiClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

// statusError drains the response body and builds a StatusError carrying
// the service's message verbatim.
func statusError(resp *nethttp.Response) *StatusError {
	body, _ := io.ReadAll(resp.Body)

	// Prefer the structured message when the body parses as an API error.
	var apiErr models.APIError
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if apiErr.Message != "" {
			msg = apiErr.Message
		} else if apiErr.Description != "" {
			msg = apiErr.Description
		}
	}

	return &StatusError{Status: resp.StatusCode, Message: msg}
}

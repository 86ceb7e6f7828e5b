// Package facebook provides the Graph API client used to browse pages and
// lead forms while configuring a Facebook Leads trigger.
package facebook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://graph.facebook.com/v19.0"
	defaultTimeout = 15 * time.Second
)

// APIError is a non-2xx answer from the Graph API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("facebook API error %d: %s", e.StatusCode, e.Message)
}

// Page is a Facebook page the connected account manages.
type Page struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token,omitempty"`
}

// LeadForm is a lead-generation form attached to a page.
type LeadForm struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

// Client talks to the Graph API on behalf of one connected account.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Graph API client with the account's access token.
func NewClient(accessToken string, logger *slog.Logger, opts ...Option) *Client {
	client := &Client{
		baseURL:     defaultBaseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		logger:      logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Pages lists the pages the connected account manages.
func (c *Client) Pages(ctx context.Context) ([]Page, error) {
	var response struct {
		Data []Page `json:"data"`
	}

	err := c.get(ctx, "/me/accounts", nil, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}

	return response.Data, nil
}

// LeadForms lists the lead-generation forms on one page.
func (c *Client) LeadForms(ctx context.Context, pageID string) ([]LeadForm, error) {
	var response struct {
		Data []LeadForm `json:"data"`
	}

	err := c.get(ctx, "/"+pageID+"/leadgen_forms", nil, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to list lead forms for page %s: %w", pageID, err)
	}

	return response.Data, nil
}

// Subscribe registers the app for leadgen webhooks on one page. Without the
// subscription Facebook never delivers lead events.
func (c *Client) Subscribe(ctx context.Context, pageID string) error {
	params := url.Values{}
	params.Set("subscribed_fields", "leadgen")

	err := c.post(ctx, "/"+pageID+"/subscribed_apps", params, nil)
	if err != nil {
		return fmt.Errorf("failed to subscribe page %s: %w", pageID, err)
	}

	c.logger.InfoContext(ctx, "Subscribed page to leadgen webhooks", "page_id", pageID)

	return nil
}

// SendTestLead asks Facebook to emit a synthetic lead through the webhook so
// the workflow can be verified end to end before going live.
func (c *Client) SendTestLead(ctx context.Context, pageID, formID string) error {
	params := url.Values{}
	params.Set("page_id", pageID)
	params.Set("form_id", formID)

	err := c.post(ctx, "/"+pageID+"/test_leads", params, nil)
	if err != nil {
		return fmt.Errorf("failed to send test lead for form %s: %w", formID, err)
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, out)
}

func (c *Client) post(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodPost, path, params, out)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}

	params.Set("access_token", c.accessToken)

	requestURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		message := parseGraphError(body)

		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out != nil {
		err = json.Unmarshal(body, out)
		if err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// parseGraphError extracts the message from the Graph API's error envelope,
// falling back to the raw body.
func parseGraphError(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}

	return string(body)
}

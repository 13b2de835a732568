// Package fetch retrieves update payloads from the upstream store API.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/storeops/sum-backend/util"
)

// Client calls the upstream store API over HTTP with bounded retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries uint64
}

// NewClient builds a client for the given base URL. Retries and the request
// timeout come from the environment so deployments can tune them without a
// rebuild.
func NewClient(baseURL string) *Client {
	timeout := time.Duration(util.GetEnvInt("UPSTREAM_TIMEOUT_SECONDS", 30)) * time.Second
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: uint64(util.GetEnvInt("UPSTREAM_MAX_RETRIES", 4)),
	}
}

// FetchUpdates retrieves the raw update payload for one user. Transient
// failures retry with exponential backoff; a 4xx response fails immediately
// since retrying a bad request cannot help.
func (c *Client) FetchUpdates(ctx context.Context, userID string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/updates?user_id=%s", c.baseURL, url.QueryEscape(userID))

	var body []byte

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries)
	err := backoff.Retry(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return backoff.Permanent(fmt.Errorf("upstream rejected request: %s", resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("upstream returned %s", resp.Status)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}, backoff.WithContext(bo, ctx))

	if err != nil {
		return nil, fmt.Errorf("failed to fetch updates for %s: %w", userID, err)
	}

	return body, nil
}

// SubmitInstall posts an install request body to the upstream installer.
func (c *Client) SubmitInstall(ctx context.Context, body []byte) error {
	endpoint := c.baseURL + "/install"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit install request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("installer returned %s", resp.Status)
	}
	return nil
}

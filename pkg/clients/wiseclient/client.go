// Package wiseclient calls the WISE WMS report and order APIs used to build
// the workload forecast.
package wiseclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/unis-raj-shah/warehouse-scheduler/internal/config"
)

const requestTimeout = 30 * time.Second

// Client wraps the WISE HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	companyID  string
	facilityID string
	user       string
	customerID string
	httpClient *http.Client
}

// NewClient creates a WISE API client from the application configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    cfg.WiseBaseURL,
		apiKey:     cfg.WiseAPIKey,
		companyID:  cfg.WiseCompanyID,
		facilityID: cfg.WiseFacilityID,
		user:       cfg.WiseUser,
		customerID: cfg.WiseCustomerID,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// post sends a JSON payload to the given API path and decodes the response
// into out.
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("authorization", c.apiKey)
	req.Header.Set("wise-company-id", c.companyID)
	req.Header.Set("wise-facility-id", c.facilityID)
	req.Header.Set("content-type", "application/json;charset=UTF-8")
	if c.user != "" {
		req.Header.Set("user", c.user)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request to %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}

	return nil
}

const apiTimeLayout = "2006-01-02T15:04:05"

package googleads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/justcarpets/ads-dashboard-api/internal/observability"
)

const tokenURL = "https://oauth2.googleapis.com/token"

// Config carries the credentials and endpoint for the Google Ads REST API.
type Config struct {
	DeveloperToken string
	ClientID       string
	ClientSecret   string
	RefreshToken   string
	LoginCustomer  string
	Endpoint       string
	APIVersion     string

	// HTTPClient overrides the OAuth2-authenticated client; used by tests.
	HTTPClient *http.Client
}

// APIError is the decoded vendor error payload.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
	RequestID  string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("google ads api error %d (%s): %s [request id %s]", e.StatusCode, e.Status, e.Message, e.RequestID)
	}
	return fmt.Sprintf("google ads api error %d (%s): %s", e.StatusCode, e.Status, e.Message)
}

// Client is a thin wrapper over the Google Ads REST search surface.
type Client struct {
	cfg    Config
	http   *http.Client
	logger zerolog.Logger
}

// New builds a client using the OAuth2 refresh-token flow.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.DeveloperToken == "" {
		return nil, fmt.Errorf("developer token is required")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://googleads.googleapis.com"
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v17"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
			return nil, fmt.Errorf("oauth client id, secret and refresh token are required")
		}
		oauthCfg := &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
		}
		httpClient = oauthCfg.Client(context.Background(), &oauth2.Token{RefreshToken: cfg.RefreshToken})
		httpClient.Timeout = 30 * time.Second
	}

	return &Client{
		cfg:    cfg,
		http:   httpClient,
		logger: logger.With().Str("component", "googleads_client").Logger(),
	}, nil
}

type searchRequest struct {
	Query     string `json:"query"`
	PageToken string `json:"pageToken,omitempty"`
}

type searchResponse struct {
	Results       []Row  `json:"results"`
	NextPageToken string `json:"nextPageToken"`
}

// Search runs a GAQL query against the customer and returns all result rows,
// following pagination.
func (c *Client) Search(ctx context.Context, customerID, query string) ([]Row, error) {
	url := fmt.Sprintf("%s/%s/customers/%s/googleAds:search", c.cfg.Endpoint, c.cfg.APIVersion, customerID)

	var rows []Row
	pageToken := ""
	for {
		body, err := json.Marshal(searchRequest{Query: query, PageToken: pageToken})
		if err != nil {
			return nil, fmt.Errorf("failed to encode search request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to build search request: %w", err)
		}
		c.setHeaders(req)

		started := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			observeCall("search", started, "transport_error")
			return nil, fmt.Errorf("google ads search failed: %w", err)
		}

		payload, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read search response: %w", err)
		}

		observeCall("search", started, strconv.Itoa(resp.StatusCode))
		if resp.StatusCode != http.StatusOK {
			apiErr := decodeAPIError(resp.StatusCode, payload)
			c.logger.Warn().
				Str("customer_id", customerID).
				Int("status", resp.StatusCode).
				Str("request_id", apiErr.RequestID).
				Msg("google ads search rejected")
			return nil, apiErr
		}

		var page searchResponse
		if err := json.Unmarshal(payload, &page); err != nil {
			return nil, fmt.Errorf("failed to decode search response: %w", err)
		}

		rows = append(rows, page.Results...)
		c.logger.Debug().
			Str("customer_id", customerID).
			Int("rows", len(page.Results)).
			Dur("latency", time.Since(started)).
			Msg("google ads search page")

		if page.NextPageToken == "" {
			return rows, nil
		}
		pageToken = page.NextPageToken
	}
}

// ListAccessibleCustomers returns the customer resource names the credentials
// can access. Used as a connectivity check.
func (c *Client) ListAccessibleCustomers(ctx context.Context) ([]string, error) {
	url := fmt.Sprintf("%s/%s/customers:listAccessibleCustomers", c.cfg.Endpoint, c.cfg.APIVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	c.setHeaders(req)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observeCall("list_accessible_customers", started, "transport_error")
		return nil, fmt.Errorf("google ads connectivity check failed: %w", err)
	}
	defer resp.Body.Close()
	observeCall("list_accessible_customers", started, strconv.Itoa(resp.StatusCode))

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp.StatusCode, payload)
	}

	var decoded struct {
		ResourceNames []string `json:"resourceNames"`
	}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return decoded.ResourceNames, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("developer-token", c.cfg.DeveloperToken)
	if c.cfg.LoginCustomer != "" {
		req.Header.Set("login-customer-id", c.cfg.LoginCustomer)
	}
}

func decodeAPIError(statusCode int, payload []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Status: http.StatusText(statusCode)}

	var envelope struct {
		Error struct {
			Message string            `json:"message"`
			Status  string            `json:"status"`
			Details []json.RawMessage `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		apiErr.Message = string(payload)
		return apiErr
	}

	apiErr.Message = envelope.Error.Message
	if envelope.Error.Status != "" {
		apiErr.Status = envelope.Error.Status
	}
	for _, detail := range envelope.Error.Details {
		var failure struct {
			RequestID string `json:"requestId"`
		}
		if err := json.Unmarshal(detail, &failure); err == nil && failure.RequestID != "" {
			apiErr.RequestID = failure.RequestID
			break
		}
	}
	return apiErr
}

func observeCall(operation string, started time.Time, status string) {
	observability.AdsCalls().WithLabelValues(operation, status).Inc()
	observability.AdsLatency().WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

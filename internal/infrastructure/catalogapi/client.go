package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"CatalogLens/internal/config"
	"CatalogLens/internal/domain"
	"CatalogLens/internal/ports"
)

var (
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("catalog api: not found")
	// ErrUnavailable is returned when no response was received.
	ErrUnavailable = errors.New("catalog api: backend unreachable")
	// ErrRejected is returned when the backend answers success=false.
	ErrRejected = errors.New("catalog api: request rejected")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalog api: status %d", e.Status)
	}
	return fmt.Sprintf("catalog api: status %d: %s", e.Status, e.Message)
}

// Unwrap lets errors.Is match ErrNotFound on 404s.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Client talks to the catalog dashboard backend over its JSON API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

var (
	_ ports.StatsSource     = (*Client)(nil)
	_ ports.ProductSearcher = (*Client)(nil)
	_ ports.ProductCatalog  = (*Client)(nil)
	_ ports.Analyst         = (*Client)(nil)
)

// NewClient creates a reusable client; a nil httpClient gets one with the
// configured timeout.
func NewClient(cfg config.APIConfig, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Health checks that the backend answers.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health: %w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health: %w", &APIError{Status: resp.StatusCode})
	}
	return nil
}

// TableStats returns the per-table statistics computed by the backend.
func (c *Client) TableStats(ctx context.Context) ([]domain.TableStatistic, error) {
	var stats []domain.TableStatistic
	if err := c.call(ctx, http.MethodGet, "/tables/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// Brands lists the brands known to the catalog.
func (c *Client) Brands(ctx context.Context) ([]string, error) {
	var brands []string
	if err := c.call(ctx, http.MethodGet, "/brands", nil, nil, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// Search runs a semantic product search.
func (c *Client) Search(ctx context.Context, query string, filters domain.SearchFilters, limit int) ([]domain.SearchHit, error) {
	payload := map[string]any{
		"query":   query,
		"filters": filters,
		"limit":   limit,
	}

	var hits []domain.SearchHit
	if err := c.call(ctx, http.MethodPost, "/search", nil, payload, &hits); err != nil {
		return nil, err
	}
	return hits, nil
}

// ProductDetails fetches the full attribute map of one product.
func (c *Client) ProductDetails(ctx context.Context, ref domain.ProductRef) (domain.ProductDetails, error) {
	path := "/product/" + url.PathEscape(ref.ID) + "/details"
	query := url.Values{"source_table": {ref.SourceTable}}

	var details domain.ProductDetails
	if err := c.call(ctx, http.MethodGet, path, query, nil, &details); err != nil {
		return nil, err
	}
	return details, nil
}

// Analyze asks the backend for an AI narrative about one product.
func (c *Client) Analyze(ctx context.Context, ref domain.ProductRef, question string) (domain.Analysis, error) {
	payload := map[string]any{
		"product_id":   ref.ID,
		"source_table": ref.SourceTable,
		"query":        question,
	}

	var analysis domain.Analysis
	if err := c.call(ctx, http.MethodPost, "/ai/analyze", nil, payload, &analysis); err != nil {
		return domain.Analysis{}, err
	}
	return analysis, nil
}

// Chat sends a free-form question to the assistant.
func (c *Client) Chat(ctx context.Context, message string) (domain.ChatReply, error) {
	var reply domain.ChatReply
	if err := c.call(ctx, http.MethodPost, "/ai/chat", nil, map[string]any{"message": message}, &reply); err != nil {
		return domain.ChatReply{}, err
	}
	return reply, nil
}

func (c *Client) call(ctx context.Context, method, path string, query url.Values, payload any, v any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.debug("catalog api request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
		c.debug("catalog api error", "path", path, "status", resp.StatusCode, "request_id", requestID)
		return fmt.Errorf("%s %s: %w", method, path, apiErr)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	if !env.Success {
		return fmt.Errorf("%s %s: %w: %s", method, path, ErrRejected, strings.TrimSpace(env.Error))
	}

	if v == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("%s %s: decode data: %w", method, path, err)
	}
	return nil
}

func errorMessage(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error != "" {
		return env.Error
	}
	return strings.TrimSpace(string(raw))
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

package listing

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/rfpmatch/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client fetches the hosted RFP listing page and extracts procurement
// notices from it.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new listing client. requestsPerMin bounds outbound
// fetch rate; the listing is a small static site and does not need hammering.
func NewClient(baseURL string, timeout time.Duration, requestsPerMin int) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if requestsPerMin <= 0 {
		requestsPerMin = 30
	}

	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerMin)/60.0), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// FetchRFPs downloads the listing page and returns every RFP card found on
// it. Transient failures are retried up to 3 times with exponential backoff.
func (c *Client) FetchRFPs(ctx context.Context) ([]domain.RFP, error) {
	if c.debug {
		log.Printf("[LISTING] Fetching %s", c.baseURL)
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, err := c.fetch(ctx)
		if err != nil {
			log.Printf("[LISTING] Fetch error (attempt %d): %v", attempt, err)
			lastErr = err
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(exponentialBackoff(attempt)):
			}
			continue
		}

		records := ExtractRFPCards(body)
		if c.debug {
			log.Printf("[LISTING] Extracted %d RFP cards", len(records))
		}
		return records, nil
	}

	log.Printf("[LISTING] All retries failed for %s", c.baseURL)
	return nil, lastErr
}

// fetch executes one GET against the listing URL and returns the page body.
func (c *Client) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "RFPMatch/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("listing returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read listing body: %w", err)
	}
	return string(body), nil
}

// exponentialBackoff returns the wait before the next retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(250*(1<<(attempt-1))) * time.Millisecond
}

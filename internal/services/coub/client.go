package coub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/amaumene/coubarr/internal/config"
	"github.com/amaumene/coubarr/internal/models"
)

const (
	defaultBaseURL = "https://coub.com/api/v2"
	pageRetries    = 3
)

// Client handles communication with the Coub API and its media CDN
type Client struct {
	baseURL     string
	token       string
	httpClient  *http.Client // API requests
	mediaClient *http.Client // large media transfers
	logger      *logrus.Logger
}

// NewClient creates a new Coub API client. A missing API token is a fatal
// configuration error, not something retried per request.
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("coub API token is required")
	}

	return &Client{
		baseURL:     defaultBaseURL,
		token:       cfg.APIToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		mediaClient: &http.Client{Timeout: cfg.FetchTimeout},
		logger:      logger,
	}, nil
}

// getJSON performs an authenticated GET request against the Coub API
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.token)

	fullURL := c.baseURL + path + "?" + params.Encode()
	c.logger.WithField("url", c.baseURL+path).Debug("Making Coub API request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// FetchLikesPage fetches a single page of the likes listing. Transient
// failures are retried with exponential backoff before the page is given up
// on; an exhausted page fails the whole listing fetch upstream.
func (c *Client) FetchLikesPage(ctx context.Context, page, perPage int) (*models.LikesPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	var likesPage models.LikesPage
	operation := func() error {
		c.logger.WithField("page", page).Debug("Fetching likes page")
		return c.getJSON(ctx, "/timeline/likes", params, &likesPage)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), pageRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("failed to fetch likes page %d: %w", page, err)
	}

	return &likesPage, nil
}

// FetchAllLikesPages fetches page 1 to learn the authoritative total page
// count, then fetches every remaining page concurrently. The returned slice
// is ordered by page number regardless of fetch completion order, so the
// merged coub sequence is deterministic across runs.
func (c *Client) FetchAllLikesPages(ctx context.Context, perPage int) ([]models.LikesPage, error) {
	first, err := c.FetchLikesPage(ctx, 1, perPage)
	if err != nil {
		return nil, err
	}

	total := first.TotalPages
	if total < 1 {
		total = 1
	}
	c.logger.WithField("total_pages", total).Info("Total page count discovered")

	pages := make([]models.LikesPage, total)
	pages[0] = *first

	g, gctx := errgroup.WithContext(ctx)
	for i := 2; i <= total; i++ {
		page := i
		g.Go(func() error {
			likesPage, err := c.FetchLikesPage(gctx, page, perPage)
			if err != nil {
				return err
			}
			pages[page-1] = *likesPage
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch all likes pages: %w", err)
	}

	c.logger.WithField("count", len(pages)).Info("All likes pages fetched")
	return pages, nil
}

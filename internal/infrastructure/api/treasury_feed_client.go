package api

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/damon-houk/treasury-yield-service/internal/domain/entity"
	"github.com/damon-houk/treasury-yield-service/internal/infrastructure/cache"
	"github.com/damon-houk/treasury-yield-service/internal/infrastructure/logger"
)

const (
	// defaultFeedURLTemplate is the Treasury daily yield curve XML feed;
	// the single %d verb takes the publication year
	defaultFeedURLTemplate = "https://home.treasury.gov/resource-center/data-chart-center/interest-rates/pages/xmlview?data=daily_treasury_yield_curve&field_tdr_date_value=%d"

	userAgent = "treasury-yield-service/1.0"
)

// TreasuryFeedClient fetches the Treasury daily yield curve XML feed
type TreasuryFeedClient struct {
	urlTemplate string
	httpClient  *http.Client
	cache       *cache.FeedCache
	logger      logger.Logger
}

// NewTreasuryFeedClient creates a new Treasury feed client. An empty
// urlTemplate uses the official feed; a nil httpClient gets a 30s timeout.
func NewTreasuryFeedClient(urlTemplate string, httpClient *http.Client, log logger.Logger) *TreasuryFeedClient {
	if urlTemplate == "" {
		urlTemplate = defaultFeedURLTemplate
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &TreasuryFeedClient{
		urlTemplate: urlTemplate,
		httpClient:  httpClient,
		cache:       cache.NewFeedCache(),
		logger:      log,
	}
}

// atomFeed mirrors the Atom/OData envelope of the Treasury feed. Field
// names match local element names only, so the m:/d: namespace prefixes
// need no special handling.
type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Properties atomProperties `xml:"content>properties"`
}

type atomProperties struct {
	Fields []atomField `xml:",any"`
}

type atomField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// FetchYear retrieves all raw daily entries published for the given year.
// Field values are passed through untouched; interpreting them is the
// record parser's job.
func (c *TreasuryFeedClient) FetchYear(ctx context.Context, year int) ([]entity.RawEntry, error) {
	// Check cache first
	if cached := c.cache.Get(year); cached != nil {
		c.logger.Debug("Feed cache hit", map[string]interface{}{
			"year":    year,
			"entries": len(cached),
		})
		return cached, nil
	}

	reqURL := fmt.Sprintf(c.urlTemplate, year)

	c.logger.Info("Fetching treasury feed", map[string]interface{}{
		"year": year,
		"url":  reqURL,
	})

	body, err := c.fetchWithRetry(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	entries, err := decodeFeed(body)
	if err != nil {
		return nil, fmt.Errorf("decode feed for %d: %w", year, err)
	}

	c.logger.Info("Treasury feed fetched", map[string]interface{}{
		"year":    year,
		"entries": len(entries),
	})

	c.cache.Put(year, entries)

	return entries, nil
}

// fetchWithRetry executes the request with up to three attempts and
// quadratic backoff between them
func (c *TreasuryFeedClient) fetchWithRetry(ctx context.Context, reqURL string) ([]byte, error) {
	const maxRetries = 3

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < maxRetries {
				backoff := time.Duration(attempt*attempt) * time.Second
				c.logger.Warn("Feed request failed, retrying", map[string]interface{}{
					"attempt": attempt,
					"backoff": backoff.String(),
					"error":   err.Error(),
				})
				select {
				case <-time.After(backoff):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		closeErr := resp.Body.Close()
		if closeErr != nil {
			c.logger.Warn("Error closing response body", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("feed returned error status: %d", resp.StatusCode)
		}

		return body, nil
	}

	return nil, fmt.Errorf("failed to execute request after %d attempts: %w", maxRetries, lastErr)
}

// decodeFeed turns the XML payload into flat field-name -> value entries
func decodeFeed(body []byte) ([]entity.RawEntry, error) {
	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	entries := make([]entity.RawEntry, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		entry := make(entity.RawEntry, len(e.Properties.Fields))
		for _, f := range e.Properties.Fields {
			entry[f.XMLName.Local] = f.Value
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

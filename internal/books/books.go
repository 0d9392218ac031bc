// Google Books volume lookup client.
//
// Response types based on https://developers.google.com/books/docs/v1/reference/volumes
package books

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"booktrack/internal/models"
	"booktrack/internal/shared"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1"

// Cache stores normalized lookup results keyed by a normalized title|author
// string. Implemented by repositories.BookRepository. Caching failures are
// ignored so a broken cache never disrupts a lookup.
type Cache interface {
	Get(key string) (*models.BookRecord, bool)
	Put(key string, record *models.BookRecord) error
}

// Client queries the Google Books volumes API and normalizes the first
// matching record into a [models.BookRecord].
type Client struct {
	baseURL      string
	apiKey       string
	langRestrict string
	httpClient   *http.Client
	cache        Cache
}

// NewClient creates a lookup client. An empty baseURL selects the public
// Google Books endpoint.
func NewClient(baseURL, apiKey, langRestrict string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:      baseURL,
		apiKey:       apiKey,
		langRestrict: langRestrict,
		httpClient:   httpClient,
	}
}

// SetCache attaches an optional lookup cache.
func (c *Client) SetCache(cache Cache) {
	c.cache = cache
}

type imageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

type volumeInfo struct {
	Title       string      `json:"title"`
	Authors     []string    `json:"authors"`
	Description string      `json:"description"`
	ImageLinks  *imageLinks `json:"imageLinks"`
}

type volume struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

// strategy is one way of phrasing the catalog query. Strategies are tried in
// order and the first one returning at least one item wins.
type strategy struct {
	name         string
	query        string
	langRestrict string
}

func (c *Client) strategies(title, author string) []strategy {
	if author == "" {
		return []strategy{
			{name: "exact", query: fmt.Sprintf("%q", title)},
			{name: "relaxed", query: fmt.Sprintf("intitle:%s", title)},
			{name: "language", query: title, langRestrict: c.langRestrict},
		}
	}
	return []strategy{
		{name: "exact", query: fmt.Sprintf("%q inauthor:%q", title, author)},
		{name: "relaxed", query: fmt.Sprintf("intitle:%s inauthor:%s", title, author)},
		{name: "language", query: fmt.Sprintf("%s %s", title, author), langRestrict: c.langRestrict},
	}
}

// Lookup fetches book metadata for a title and author pair.
//
// Returns [shared.ErrBookNotFound] when every strategy yields zero items and
// [shared.ErrUpstream] when no strategy succeeded and at least one failed at
// the transport level.
func (c *Client) Lookup(ctx context.Context, title, author string) (*models.BookRecord, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", shared.ErrMissingArgument)
	}

	key := shared.NormalizeLookupKey(title, author)
	if c.cache != nil {
		if record, ok := c.cache.Get(key); ok {
			return record, nil
		}
	}

	var upstreamErr error
	for _, s := range c.strategies(title, author) {
		items, err := c.search(ctx, s)
		if err != nil {
			upstreamErr = err
			continue
		}
		if len(items) == 0 {
			continue
		}

		record := normalize(items[0].VolumeInfo)
		if c.cache != nil {
			_ = c.cache.Put(key, record)
		}
		return record, nil
	}

	if upstreamErr != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstream, upstreamErr)
	}
	return nil, fmt.Errorf("%w: no volumes matched %q by %q", shared.ErrBookNotFound, title, author)
}

// search issues one volumes query and returns its items.
func (c *Client) search(ctx context.Context, s strategy) ([]volume, error) {
	params := url.Values{}
	params.Set("q", s.query)
	params.Set("maxResults", "10")
	if s.langRestrict != "" {
		params.Set("langRestrict", s.langRestrict)
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	reqURL := fmt.Sprintf("%s/volumes?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("books API error: status %d", resp.StatusCode)
	}

	var body volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return body.Items, nil
}

// normalize maps a volumeInfo into a BookRecord, applying sentinel fallbacks
// for missing authors and description.
func normalize(info volumeInfo) *models.BookRecord {
	record := &models.BookRecord{
		Title:   info.Title,
		Authors: info.Authors,
		Summary: info.Description,
	}

	if record.Title == "" {
		record.Title = "Unknown Title"
	}
	if len(record.Authors) == 0 {
		record.Authors = []string{models.UnknownAuthor}
	}
	if record.Summary == "" {
		record.Summary = models.NoSummary
	}
	if info.ImageLinks != nil {
		record.CoverImageURL = info.ImageLinks.Thumbnail
	}

	return record
}

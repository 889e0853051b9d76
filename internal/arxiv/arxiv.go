// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv fetches paper metadata from the arXiv Atom API.
package arxiv

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pdiddy/arxiv-explorer/internal/httputil"
	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

// DefaultBaseURL is the arXiv query endpoint.
const DefaultBaseURL = "https://export.arxiv.org/api/query"

// DefaultRateLimit is the politeness interval arXiv asks clients to keep
// between requests.
const DefaultRateLimit = 3 * time.Second

// ErrNotFound is returned when arXiv has no entry for an identifier.
var ErrNotFound = errors.New("paper not found on arXiv")

// Client talks to the arXiv API. Requests from one Client are serialized
// through its rate limiter.
type Client struct {
	HTTP       *http.Client
	BaseURL    string
	UserAgent  string
	MaxRetries int

	limiter *httputil.Limiter
	now     func() time.Time
}

// New returns a client configured from cfg, filling defaults for zero values.
func New(cfg types.FetchConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	rate := cfg.RateLimit
	if rate <= 0 {
		rate = DefaultRateLimit
	}
	return &Client{
		HTTP:       &http.Client{Timeout: timeout},
		BaseURL:    base,
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
		limiter:    httputil.NewLimiter(rate),
		now:        time.Now,
	}
}

// Search runs a raw arXiv search_query (e.g. "all:transformer AND cat:cs.LG"),
// newest submissions first.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]types.Paper, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}
	if maxResults <= 0 {
		maxResults = 50
	}
	params := url.Values{}
	params.Set("search_query", query)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")
	return c.query(ctx, params)
}

// FreeTextQuery turns user input into a search_query. Input that already
// uses field prefixes (ti:, au:, cat:, ...) is passed through unchanged;
// otherwise every word must match somewhere in the record.
func FreeTextQuery(text string) string {
	text = strings.TrimSpace(text)
	if strings.Contains(text, ":") {
		return text
	}
	terms := strings.Fields(text)
	for i, t := range terms {
		terms[i] = "all:" + t
	}
	return strings.Join(terms, " AND ")
}

// FetchByCategory returns papers in any of categories published within the
// last days days. The API has no date filter, so the newest maxResults
// submissions are fetched and filtered locally.
func (c *Client) FetchByCategory(ctx context.Context, categories []string, days, maxResults int) ([]types.Paper, error) {
	if len(categories) == 0 {
		return nil, nil
	}
	if days <= 0 {
		days = 1
	}
	if maxResults <= 0 {
		maxResults = 200
	}

	terms := make([]string, len(categories))
	for i, cat := range categories {
		terms[i] = "cat:" + cat
	}
	papers, err := c.Search(ctx, strings.Join(terms, " OR "), maxResults)
	if err != nil {
		return nil, err
	}

	since := c.now().Add(-time.Duration(days) * 24 * time.Hour)
	recent := papers[:0]
	for _, p := range papers {
		if !p.Published.Before(since) {
			recent = append(recent, p)
		}
	}
	log.WithFields(log.Fields{
		"categories": len(categories),
		"fetched":    len(papers),
		"kept":       len(recent),
		"days":       days,
	}).Debug("fetched category listing")
	return recent, nil
}

// idBatchSize caps identifiers per id_list request.
const idBatchSize = 50

// FetchByIDs looks up papers by identifier in batches of idBatchSize. Unknown
// identifiers are silently absent from the result.
func (c *Client) FetchByIDs(ctx context.Context, ids []string) ([]types.Paper, error) {
	var papers []types.Paper
	for start := 0; start < len(ids); start += idBatchSize {
		batch := ids[start:min(start+idBatchSize, len(ids))]
		params := url.Values{}
		params.Set("id_list", strings.Join(batch, ","))
		params.Set("max_results", strconv.Itoa(len(batch)))
		got, err := c.query(ctx, params)
		if err != nil {
			return nil, err
		}
		papers = append(papers, got...)
	}
	return papers, nil
}

// Paper looks up one paper, returning ErrNotFound when arXiv has no entry.
func (c *Client) Paper(ctx context.Context, id string) (types.Paper, error) {
	id = NormalizeID(id)
	papers, err := c.FetchByIDs(ctx, []string{id})
	if err != nil {
		return types.Paper{}, err
	}
	for _, p := range papers {
		if p.ID == id {
			return p, nil
		}
	}
	return types.Paper{}, fmt.Errorf("%s: %w", id, ErrNotFound)
}

func (c *Client) query(ctx context.Context, params url.Values) ([]types.Paper, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := c.BaseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	start := time.Now()
	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	papers, err := parseFeed(resp.Body)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"papers":  len(papers),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Debug("arXiv query complete")
	return papers, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed queries the NCBI E-utilities API for PubMed and PMC
// records: esearch for IDs, esummary for metadata, efetch for abstracts.
// Requests are paced to the E-utilities rate limit and retried on HTTP 429.
package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/pubmed-assistant/internal/httputil"
	"github.com/pdiddy/pubmed-assistant/pkg/types"
)

// eutilsBase is the E-utilities endpoint prefix. Package-level var for test
// substitution with an httptest server.
var eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// sortOptions maps the CLI sort names to esearch sort parameters.
var sortOptions = map[string]string{
	"relevance":    "relevance",
	"pub_date":     "date",
	"first_author": "author",
	"journal":      "journal",
	"title":        "title",
}

// Client talks to the E-utilities API. The API key raises the allowed
// request rate from 3/s to 10/s; both limits are enforced client-side.
type Client struct {
	cfg     types.PubMedConfig
	client  *http.Client
	limiter *httputil.Limiter
}

// NewClient builds a Client from config. A nil HTTP client gets a default
// with the configured timeout.
func NewClient(cfg types.PubMedConfig, client *http.Client) *Client {
	if client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	perSecond := 3
	if cfg.APIKey != "" {
		perSecond = 10
	}
	return &Client{cfg: cfg, client: client, limiter: httputil.NewLimiter(perSecond)}
}

// DB returns the database being searched: "pmc" or "pubmed".
func (c *Client) DB() string {
	if c.cfg.UsePMC {
		return "pmc"
	}
	return "pubmed"
}

// SearchOptions tunes one search call.
type SearchOptions struct {
	// MaxResults caps the ID list. Zero uses the configured default.
	MaxResults int

	// RecentDays restricts to articles entered within the last N days.
	RecentDays int

	// Sort is one of relevance, pub_date, first_author, journal, title.
	// Unknown values fall back to relevance.
	Sort string
}

// esearchEnvelope is the esearch.fcgi JSON response.
type esearchEnvelope struct {
	Result struct {
		Count  string   `json:"count"`
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// Search runs an esearch and returns the matching IDs plus the total hit
// count reported by the API.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) ([]string, int, error) {
	term := query
	if opts.RecentDays > 0 {
		start := time.Now().AddDate(0, 0, -opts.RecentDays).Format("2006/01/02")
		term = fmt.Sprintf("%s AND %s:3000[edat]", query, start)
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = c.cfg.MaxResults
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	sortParam, ok := sortOptions[strings.ToLower(opts.Sort)]
	if !ok {
		sortParam = "relevance"
	}

	params := url.Values{
		"db":         {c.DB()},
		"term":       {term},
		"retmax":     {strconv.Itoa(maxResults)},
		"usehistory": {"y"},
		"retmode":    {"json"},
		"sort":       {sortParam},
	}

	body, err := c.get(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, 0, err
	}

	var env esearchEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, 0, fmt.Errorf("parsing esearch response: %w", err)
	}

	count, _ := strconv.Atoi(env.Result.Count)
	return env.Result.IDList, count, nil
}

// esummaryEntry is one record in the esummary.fcgi JSON response.
type esummaryEntry struct {
	Title           string `json:"title"`
	FullJournalName string `json:"fulljournalname"`
	PubDate         string `json:"pubdate"`
	Authors         []struct {
		Name string `json:"name"`
	} `json:"authors"`
	ArticleIDs []struct {
		IDType string `json:"idtype"`
		Value  string `json:"value"`
	} `json:"articleids"`
}

// Summaries fetches metadata for the given IDs via esummary and returns one
// Article per ID, preserving order. Abstracts are not populated here.
func (c *Client) Summaries(ctx context.Context, ids []string) ([]types.Article, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	params := url.Values{
		"db":      {c.DB()},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"json"},
	}

	body, err := c.get(ctx, "esummary.fcgi", params)
	if err != nil {
		return nil, err
	}

	var env struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parsing esummary response: %w", err)
	}

	var articles []types.Article
	for _, id := range ids {
		raw, ok := env.Result[id]
		if !ok {
			continue
		}
		var entry esummaryEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}

		a := types.Article{
			ID:      id,
			Title:   strings.TrimSpace(entry.Title),
			Journal: entry.FullJournalName,
			PubDate: entry.PubDate,
			URL:     articleURL(c.DB(), id),
		}
		for _, author := range entry.Authors {
			a.Authors = append(a.Authors, author.Name)
		}
		for _, aid := range entry.ArticleIDs {
			if aid.IDType == "doi" {
				a.DOI = aid.Value
				break
			}
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// FetchArticles runs esummary for the IDs and fills in each abstract via the
// efetch fallback chain. Abstract failures degrade to a placeholder and are
// noted on w; they never abort the batch.
func (c *Client) FetchArticles(ctx context.Context, ids []string, w io.Writer) ([]types.Article, error) {
	articles, err := c.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range articles {
		abstract, err := c.Abstract(ctx, articles[i].ID)
		if err != nil {
			fmt.Fprintf(w, "warning: abstract for %s: %v\n", articles[i].ID, err)
			abstract = abstractUnavailable
		}
		articles[i].Abstract = abstract
	}
	return articles, nil
}

// get issues one rate-limited, 429-retried GET against an E-utilities
// endpoint and returns the response body.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/%s?%s", eutilsBase, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned HTTP %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", endpoint, err)
	}
	return body, nil
}

// articleURL returns the canonical NCBI URL for an article ID.
func articleURL(db, id string) string {
	if db == "pmc" {
		return "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC" + strings.TrimPrefix(id, "PMC") + "/"
	}
	return "https://pubmed.ncbi.nlm.nih.gov/" + id + "/"
}

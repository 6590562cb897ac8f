// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eutils talks to the NCBI E-utilities API: esearch for PMID lists
// and efetch for full article records.
package eutils

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/pubmed-screen/internal/httputil"
	"github.com/pdiddy/pubmed-screen/pkg/types"
)

// API endpoints. Declared as vars so tests can substitute httptest servers.
var (
	searchAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	fetchAPIBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
)

// eutilsRetMax is E-utilities' hard cap on retmax.
const eutilsRetMax = 100000

// toolName identifies this client in the tool parameter NCBI asks for.
const toolName = "pubmed-screen"

// Client queries the E-utilities endpoints for the pubmed database.
type Client struct {
	HTTP *http.Client
}

// esearch JSON structures.
type esearchEnvelope struct {
	Result esearchResult `json:"esearchresult"`
	Error  string        `json:"error"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
}

// Search runs an esearch query and returns the matching PMIDs in relevance
// order. The term supports full PubMed query syntax (field tags, boolean
// operators, MeSH terms, date ranges).
func (c *Client) Search(ctx context.Context, term string, cfg types.SearchConfig) ([]string, error) {
	if term == "" {
		return nil, fmt.Errorf("query is empty: provide a PubMed search term")
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}
	if maxResults > eutilsRetMax {
		maxResults = eutilsRetMax
	}

	params := url.Values{
		"db":       {"pubmed"},
		"term":     {term},
		"retmax":   {strconv.Itoa(maxResults)},
		"retmode":  {"json"},
		"tool":     {toolName},
		"sort":     {"relevance"},
		"datetype": {"pdat"},
	}
	if cfg.RetStart > 0 {
		params.Set("retstart", strconv.Itoa(cfg.RetStart))
	}
	if cfg.MinDate != "" {
		params.Set("mindate", cfg.MinDate)
	}
	if cfg.MaxDate != "" {
		params.Set("maxdate", cfg.MaxDate)
	}
	if cfg.Email != "" {
		params.Set("email", cfg.Email)
	}
	if cfg.APIKey != "" {
		params.Set("api_key", cfg.APIKey)
	}

	resp, err := c.get(ctx, searchAPIBase, params, cfg)
	if err != nil {
		return nil, fmt.Errorf("esearch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("esearch returned HTTP %d", resp.StatusCode)
	}

	var env esearchEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	if env.Error != "" {
		return nil, fmt.Errorf("esearch API error: %s", env.Error)
	}
	return env.Result.IDList, nil
}

// Fetch retrieves one article record by PMID via efetch. A PMID the API
// does not know yields a nil record with no error; the caller decides how
// to count it.
func (c *Client) Fetch(ctx context.Context, pmid string, cfg types.SearchConfig) (*ArticleRecord, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {pmid},
		"retmode": {"xml"},
		"tool":    {toolName},
	}
	if cfg.Email != "" {
		params.Set("email", cfg.Email)
	}
	if cfg.APIKey != "" {
		params.Set("api_key", cfg.APIKey)
	}

	resp, err := c.get(ctx, fetchAPIBase, params, cfg)
	if err != nil {
		return nil, fmt.Errorf("efetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("efetch returned HTTP %d", resp.StatusCode)
	}

	var set ArticleSet
	if err := xml.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing efetch response: %w", err)
	}
	if len(set.Articles) == 0 {
		return nil, nil
	}
	return &set.Articles[0], nil
}

func (c *Client) get(ctx context.Context, base string, params url.Values, cfg types.SearchConfig) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	return httputil.DoWithRetry(ctx, c.HTTP, req, 0)
}

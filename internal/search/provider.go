package search

import (
	"context"
	"fmt"
	mathrand "math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"pricescout/config"
	"pricescout/helpers"
	"pricescout/logger"
	"pricescout/pkg/errors"
)

// Provider turns a text query into an ordered sequence of candidate URLs
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

// HTMLProvider scrapes the DuckDuckGo html frontend for result links
type HTMLProvider struct {
	endpoint string
	client   *http.Client
	identity string
	headers  map[string]string
}

// NewHTMLProvider creates a provider from the configured endpoint,
// picking one client identity from the pool
func NewHTMLProvider(cfg *config.Config) *HTMLProvider {
	rnd := mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	return &HTMLProvider{
		endpoint: cfg.SearchEndpoint,
		client:   &http.Client{Timeout: cfg.FetchTimeout},
		identity: cfg.UserAgents[rnd.Intn(len(cfg.UserAgents))],
		headers:  cfg.DefaultHeaders,
	}
}

// Search fetches one result page and returns its links in page order
func (p *HTMLProvider) Search(ctx context.Context, query string, limit int) ([]string, error) {
	searchURL := fmt.Sprintf("%s?q=%s", p.endpoint, url.QueryEscape(query))

	body, err := helpers.FetchWithIdentity(ctx, p.client, searchURL, p.identity, p.headers)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	var urls []string
	doc.Find("a.result__a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, exists := s.Attr("href")
		if !exists {
			return true
		}
		if link := resolveResultLink(href); link != "" {
			urls = append(urls, link)
		}
		return len(urls) < limit
	})

	return urls, nil
}

// resolveResultLink unwraps the redirect targets the html frontend uses
// (//duckduckgo.com/l/?uddg=<escaped target>)
func resolveResultLink(href string) string {
	if strings.Contains(href, "uddg=") {
		if u, err := url.Parse(href); err == nil {
			if target := u.Query().Get("uddg"); target != "" {
				return target
			}
		}
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	return ""
}

// Executor bounds and drives the discovery provider
type Executor struct {
	provider       Provider
	maxResults     int
	defaultResults int
	log            *logger.Logger
}

// NewExecutor creates an executor over the given provider
func NewExecutor(provider Provider, cfg *config.Config) *Executor {
	return &Executor{
		provider:       provider,
		maxResults:     cfg.MaxResults,
		defaultResults: cfg.DefaultResults,
		log:            logger.ForComponent("executor"),
	}
}

// Discover returns the candidate URL list for a query. Provider failures
// are recorded and yield an empty list; they never reach the caller.
func (e *Executor) Discover(ctx context.Context, query string, limit int) []string {
	limit = e.clampLimit(limit)

	urls, err := e.provider.Search(ctx, query, limit)
	if err != nil {
		discErr := errors.NewDiscovery("executor", "provider call failed for "+query, err)
		e.log.Error().Err(discErr).Msg("Discovery failed")
		return nil
	}

	if len(urls) > limit {
		urls = urls[:limit]
	}
	return urls
}

// clampLimit applies the DefaultResults fallback and the MaxResults cap
func (e *Executor) clampLimit(limit int) int {
	if limit <= 0 {
		return e.defaultResults
	}
	if limit > e.maxResults {
		return e.maxResults
	}
	return limit
}

package search

import (
	"context"
	stderrors "errors"
	"io"
	mathrand "math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"

	"pricescout/config"
	"pricescout/helpers"
	"pricescout/logger"
	"pricescout/pkg/errors"
	"pricescout/services/cache"
)

// Fetcher retrieves and parses one page at a time. The client identity is
// chosen once at construction and reused for the fetcher's lifetime; a
// fixed courtesy delay follows every successful fetch. No retries.
type Fetcher struct {
	client    *http.Client
	identity  string
	headers   map[string]string
	delay     time.Duration
	blockTime time.Duration
	blocks    cache.CacheService
	fetchFunc func(ctx context.Context, pageURL string) (io.Reader, error)
	log       *logger.Logger
}

// NewFetcher creates a fetcher with one identity picked from the pool.
// blocks may be nil; host backoff bookkeeping is then skipped.
func NewFetcher(cfg *config.Config, blocks cache.CacheService) *Fetcher {
	rnd := mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	f := &Fetcher{
		client:    &http.Client{Timeout: cfg.FetchTimeout},
		identity:  cfg.UserAgents[rnd.Intn(len(cfg.UserAgents))],
		headers:   cfg.DefaultHeaders,
		delay:     cfg.CourtesyDelay,
		blockTime: cfg.BlockTime,
		blocks:    blocks,
		log:       logger.ForComponent("fetcher"),
	}
	f.fetchFunc = func(ctx context.Context, pageURL string) (io.Reader, error) {
		return helpers.FetchWithIdentity(ctx, f.client, pageURL, f.identity, f.headers)
	}
	return f
}

// Fetch retrieves and parses a single URL. A failed attempt is terminal
// for that URL.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	key := blockKey(pageURL)

	// Skip hosts that recently asked us to back off
	if f.blocks != nil && key != "" {
		if _, err := f.blocks.Get(key); err == nil {
			return nil, errors.NewRateLimit(key, f.blockTime)
		}
	}

	body, err := f.fetchFunc(ctx, pageURL)
	if err != nil {
		if f.blocks != nil && key != "" && stderrors.Is(err, helpers.ErrRateLimited) {
			seconds := strconv.Itoa(int(f.blockTime / time.Second))
			if setErr := f.blocks.Set(key, []byte(seconds), f.blockTime); setErr != nil {
				f.log.Debug().Err(setErr).Str("key", key).Msg("Failed to record host block")
			}
		}
		return nil, errors.NewFetch("fetcher", "failed to fetch "+pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, errors.NewParsing("fetcher", "failed to parse "+pageURL, err)
	}

	// Courtesy pause after every successful fetch
	time.Sleep(f.delay)

	return doc, nil
}

// blockKey derives the backoff cache key for a URL's host
func blockKey(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return "fetch_block:" + u.Host
}

package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pricescout/pkg/errors"
)

// PricePattern couples a currency label with the regex used to spot it in
// free text. Order matters: patterns are tried first to last.
type PricePattern struct {
	Currency string
	Pattern  string
}

// SiteConfig holds site-specific extraction settings. Reserved for future
// site-aware extraction; nothing consults it yet.
type SiteConfig struct {
	Delay     time.Duration
	MaxPages  int
	Selectors map[string]string
}

// Config represents the application configuration
type Config struct {
	// Rate limiting and fetch behavior
	CourtesyDelay time.Duration
	MaxRetries    int
	FetchTimeout  time.Duration
	BlockTime     time.Duration

	// Search limits
	MaxResults     int
	DefaultResults int

	// Discovery
	SearchEndpoint string

	// Client identities and request headers
	UserAgents     []string
	DefaultHeaders map[string]string

	// Text-scan price patterns, in matching priority order
	PricePatterns []PricePattern

	// Per-site selector map (unwired extension point)
	SiteConfigs map[string]SiteConfig

	// HTTP server
	ListenAddr string
	AuthUsers  map[string]string

	// Memcache configuration
	MemcacheAddr string

	// Redis configuration
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	courtesyDelayMs, _ := strconv.Atoi(getEnv("COURTESY_DELAY_MS", "500"))
	maxRetries, _ := strconv.Atoi(getEnv("MAX_RETRIES", "3"))
	fetchTimeout, _ := strconv.Atoi(getEnv("REQUEST_TIMEOUT_SECONDS", "10"))
	blockTime, _ := strconv.Atoi(getEnv("FETCH_BLOCK_SECONDS", "300"))
	maxResults, _ := strconv.Atoi(getEnv("MAX_SEARCH_RESULTS", "20"))
	defaultResults, _ := strconv.Atoi(getEnv("DEFAULT_SEARCH_RESULTS", "5"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	redisStreamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "4"))
	redisStreamMaxLength, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))

	return Config{
		CourtesyDelay:  time.Duration(courtesyDelayMs) * time.Millisecond,
		MaxRetries:     maxRetries,
		FetchTimeout:   time.Duration(fetchTimeout) * time.Second,
		BlockTime:      time.Duration(blockTime) * time.Second,
		MaxResults:     maxResults,
		DefaultResults: defaultResults,
		SearchEndpoint: getEnv("SEARCH_ENDPOINT", "https://html.duckduckgo.com/html/"),
		UserAgents:     splitList(getEnv("USER_AGENTS", defaultUserAgents)),
		DefaultHeaders: map[string]string{
			"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
			"Accept-Language":           "en-US,en;q=0.5",
			"Cache-Control":             "no-cache",
			"Connection":                "keep-alive",
			"Upgrade-Insecure-Requests": "1",
		},
		PricePatterns:        defaultPricePatterns(),
		SiteConfigs:          defaultSiteConfigs(),
		ListenAddr:           getEnv("LISTEN_ADDR", ":1000"),
		AuthUsers:            parseUsers(getEnv("AUTH_USERS", "")),
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", "localhost:11211"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "outcomes"),
		RedisStreamCount:     redisStreamCount,
		RedisStreamMaxLength: redisStreamMaxLength,
		Environment:          getEnv("PRICESCOUT_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values the pipeline cannot run with
func (c *Config) Validate() error {
	if c.FetchTimeout <= 0 {
		return errors.NewConfiguration("fetch timeout must be positive", nil)
	}
	if c.CourtesyDelay < 0 {
		return errors.NewConfiguration("courtesy delay must not be negative", nil)
	}
	if c.DefaultResults < 1 {
		return errors.NewConfiguration("default result count must be at least 1", nil)
	}
	if c.MaxResults < c.DefaultResults {
		return errors.NewConfiguration("max result count must not be below the default", nil)
	}
	if len(c.UserAgents) == 0 {
		return errors.NewConfiguration("client identity pool must not be empty", nil)
	}
	for _, p := range c.PricePatterns {
		if _, err := regexp.Compile(p.Pattern); err != nil {
			return errors.NewConfiguration("invalid price pattern for "+p.Currency, err)
		}
	}
	if c.RedisAddr != "" && c.RedisStreamCount < 1 {
		return errors.NewConfiguration("redis stream count must be at least 1", nil)
	}
	return nil
}

const defaultUserAgents = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36," +
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36," +
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// defaultPricePatterns returns the ordered currency pattern set used by the
// text scan. The trailing label pattern has no currency of its own.
func defaultPricePatterns() []PricePattern {
	return []PricePattern{
		{Currency: "INR", Pattern: `₹\s*[\d,]+(?:\.\d{1,2})?`},
		{Currency: "INR", Pattern: `(?i)Rs\.?\s*[\d,]+(?:\.\d{1,2})?`},
		{Currency: "USD", Pattern: `\$\s*[\d,]+(?:\.\d{1,2})?`},
		{Currency: "EUR", Pattern: `€\s*[\d,]+(?:\.\d{1,2})?`},
		{Currency: "GBP", Pattern: `£\s*[\d,]+(?:\.\d{1,2})?`},
		{Currency: "JPY", Pattern: `¥\s*[\d,]+`},
		{Currency: "KRW", Pattern: `₩\s*[\d,]+`},
		{Currency: "RUB", Pattern: `₽\s*[\d,]+(?:\.\d{1,2})?`},
		{Currency: "", Pattern: `[\d,]+(?:\.\d{1,2})?\s*(?:USD|INR|EUR|GBP|JPY|CNY|KRW|RUB)`},
		{Currency: "", Pattern: `(?i)(?:price|cost|amount)\s*[:=]\s*(?:₹|\$|€|£|¥|₩|₽|Rs\.?\s*)?[\d,]+(?:\.\d{1,2})?`},
	}
}

// defaultSiteConfigs returns the per-site selector map
func defaultSiteConfigs() map[string]SiteConfig {
	return map[string]SiteConfig{
		"amazon": {
			Delay:    3 * time.Second,
			MaxPages: 5,
			Selectors: map[string]string{
				"title":  "#productTitle",
				"price":  ".a-price .a-offscreen",
				"rating": `[data-hook="average-star-rating"]`,
			},
		},
		"flipkart": {
			Delay:    2 * time.Second,
			MaxPages: 3,
			Selectors: map[string]string{
				"title":  "h1, .B_NuCI",
				"price":  "._30jeq3._16Jk6d",
				"rating": "._3LWZlK",
			},
		},
		"myntra": {
			Delay:    2 * time.Second,
			MaxPages: 3,
			Selectors: map[string]string{
				"title":  "h1.pdp-title",
				"price":  ".pdp-price strong",
				"rating": ".index-overallRating",
			},
		},
	}
}

// SiteConfigFor returns the configuration for a specific site type, falling
// back to generic values for unknown sites
func (c *Config) SiteConfigFor(siteType string) SiteConfig {
	if sc, ok := c.SiteConfigs[siteType]; ok {
		return sc
	}
	return SiteConfig{Delay: c.CourtesyDelay, MaxPages: 3, Selectors: map[string]string{}}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitList splits a comma separated env value into trimmed entries
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseUsers parses "user:pass,user:pass" into a credential map
func parseUsers(value string) map[string]string {
	users := make(map[string]string)
	for _, pair := range strings.Split(value, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, pass, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		users[name] = pass
	}
	return users
}

package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricescout/config"
)

// TestExecutorClampsLimit verifies the DefaultResults fallback and the
// MaxResults cap
func TestExecutorClampsLimit(t *testing.T) {
	cfg := config.LoadConfig()

	var urls []string
	for i := 0; i < 30; i++ {
		urls = append(urls, fmt.Sprintf("https://shop.example/item/%d", i))
	}
	provider := &fakeProvider{urls: urls}
	executor := NewExecutor(provider, &cfg)

	got := executor.Discover(context.Background(), "widget", 0)
	assert.Equal(t, cfg.DefaultResults, provider.gotLimit)
	assert.Len(t, got, cfg.DefaultResults)

	got = executor.Discover(context.Background(), "widget", 50)
	assert.Equal(t, cfg.MaxResults, provider.gotLimit)
	assert.Len(t, got, cfg.MaxResults)

	got = executor.Discover(context.Background(), "widget", 3)
	assert.Len(t, got, 3)
}

// TestExecutorSwallowsProviderFailure verifies a provider error yields an
// empty URL list instead of propagating
func TestExecutorSwallowsProviderFailure(t *testing.T) {
	cfg := config.LoadConfig()
	provider := &fakeProvider{err: fmt.Errorf("upstream down")}
	executor := NewExecutor(provider, &cfg)

	got := executor.Discover(context.Background(), "widget", 5)
	assert.Empty(t, got)
}

// TestHTMLProviderSearch scrapes result links from a served results page,
// unwrapping redirect targets
func TestHTMLProviderSearch(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, `
		<html><body>
			<a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fshop.example%2Fwidget">Widget</a>
			<a class="result__a" href="https://other.example/widget">Widget too</a>
			<a class="result__a" href="https://third.example/widget">Never reached</a>
		</body></html>`)
	}))
	defer server.Close()

	cfg := config.LoadConfig()
	cfg.SearchEndpoint = server.URL

	provider := NewHTMLProvider(&cfg)
	urls, err := provider.Search(context.Background(), "widget deluxe", 2)
	require.NoError(t, err)

	assert.Equal(t, "widget deluxe", gotQuery)
	assert.Equal(t, []string{
		"https://shop.example/widget",
		"https://other.example/widget",
	}, urls)
}

func TestResolveResultLink(t *testing.T) {
	assert.Equal(t, "https://shop.example/widget",
		resolveResultLink("//duckduckgo.com/l/?uddg=https%3A%2F%2Fshop.example%2Fwidget"))
	assert.Equal(t, "https://direct.example/item",
		resolveResultLink("https://direct.example/item"))
	assert.Equal(t, "", resolveResultLink("/relative/path"))
	assert.Equal(t, "", resolveResultLink("javascript:void(0)"))
}

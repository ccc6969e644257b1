package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricescout/config"
	"pricescout/internal/search"
	"pricescout/services/api"
)

// listProvider returns a fixed URL list regardless of the query
type listProvider struct {
	urls []string
}

func (p listProvider) Search(context.Context, string, int) ([]string, error) {
	return p.urls, nil
}

// newShopServer serves two product pages and one broken endpoint
func newShopServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/widget", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `
		<html>
		<head>
			<script type="application/ld+json">{"@type":"Product","name":"Widget","offers":{"price":"1199.00","priceCurrency":"INR"}}</script>
		</head>
		<body>
			<h1>Widget Deluxe</h1>
			<div class="price">₹1,499.00</div>
			<p>limited offer: ₹1,299.00</p>
		</body>
		</html>`)
	})
	mux.HandleFunc("/gadget", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><body><h1>Gadget</h1><span class="price">$24.99</span></body></html>`)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func integrationConfig() config.Config {
	cfg := config.LoadConfig()
	cfg.CourtesyDelay = 0
	cfg.AuthUsers = map[string]string{"admin": "secret"}
	return cfg
}

// TestSearchPipelineEndToEnd runs the enhanced engine over real HTTP
// fetches and checks the structured outcome
func TestSearchPipelineEndToEnd(t *testing.T) {
	shop := newShopServer(t)
	cfg := integrationConfig()

	deps := search.Dependencies{
		Config: &cfg,
		Provider: listProvider{urls: []string{
			shop.URL + "/widget",
			shop.URL + "/broken",
			shop.URL + "/gadget",
		}},
	}

	engine := search.SelectEngine(nil, deps)
	outcome := engine.Search(context.Background(), search.SearchQuery{Text: "widget", NumResults: 3})

	assert.Empty(t, outcome.Error)
	assert.Equal(t, 2, outcome.TotalResults)
	require.Len(t, outcome.Results, 2)

	widget := outcome.Results[0]
	assert.Equal(t, "Widget Deluxe", widget.ProductName)
	assert.Equal(t, search.CurrencyINR, widget.Currency)
	require.NotEmpty(t, widget.Candidates)

	// The declared offer price outranks both free-text matches
	best, ok := search.SelectBest(widget.Candidates)
	require.True(t, ok)
	assert.Equal(t, 1199.0, best.Value)
	assert.Equal(t, search.SourceJSONLD, best.Source)

	gadget := outcome.Results[1]
	assert.Equal(t, "Gadget", gadget.ProductName)
	assert.Equal(t, search.CurrencyUSD, gadget.Currency)
}

// TestSearchAPIEndToEnd drives the whole stack through the HTTP surface
func TestSearchAPIEndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)

	shop := newShopServer(t)
	cfg := integrationConfig()

	deps := search.Dependencies{
		Config:   &cfg,
		Provider: listProvider{urls: []string{shop.URL + "/gadget"}},
	}
	router := api.SetupRouter(&cfg, api.NewHandler(deps, nil))

	body := `{"query":"gadget","num_results":1,"version":1}`
	req := httptest.NewRequest(http.MethodPost, "/search/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", base64.StdEncoding.EncodeToString([]byte("admin:secret")))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string               `json:"message"`
		Data    search.SearchOutcome `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "Success", resp.Message)
	assert.Equal(t, "gadget", resp.Data.Query)
	assert.Equal(t, 1, resp.Data.TotalResults)
	require.Len(t, resp.Data.Results, 1)
	assert.Equal(t, []string{"$24.99"}, resp.Data.Results[0].Prices)
	assert.Equal(t, 1, resp.Data.Results[0].Rank)
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"pricescout/internal/search"
	"pricescout/logger"
	"pricescout/services/publisher"
)

// SearchRequest is the POST /search/ body
type SearchRequest struct {
	Query      string `json:"query" binding:"required"`
	Country    string `json:"country"`
	NumResults *int   `json:"num_results"`
	Version    *int   `json:"version"`
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	deps      search.Dependencies
	publisher publisher.Publisher
	log       *logger.Logger
}

// NewHandler creates a new HTTP handler. pub may be nil; outcomes are
// then not published.
func NewHandler(deps search.Dependencies, pub publisher.Publisher) *Handler {
	return &Handler{
		deps:      deps,
		publisher: pub,
		log:       logger.ForComponent("api"),
	}
}

// Health returns the health status of the service
func (h *Handler) Health(c *gin.Context) {
	respond(c, http.StatusOK, "Success", gin.H{"status": "healthy"})
}

// Search runs one search invocation and returns its outcome
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := search.SearchQuery{
		Text:    req.Query,
		Country: req.Country,
		Version: req.Version,
	}
	if req.NumResults != nil {
		query.NumResults = *req.NumResults
	}

	engine := search.SelectEngine(req.Version, h.deps)
	h.log.Info().
		Str("query", query.Text).
		Int("engine_version", engine.Version()).
		Msg("Running search")

	outcome := engine.Search(c.Request.Context(), query)

	h.publishOutcome(outcome)

	respond(c, http.StatusOK, "Success", outcome)
}

// publishOutcome pushes a completed outcome onto the outcome streams.
// Publishing is best-effort; failures never affect the response.
func (h *Handler) publishOutcome(outcome search.SearchOutcome) {
	if h.publisher == nil {
		return
	}

	data, err := json.Marshal(outcome)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to encode outcome for publishing")
		return
	}

	if err := h.publisher.Publish("outcome", data); err != nil {
		h.log.Error().Err(err).Msg("Failed to publish outcome")
		return
	}

	if err := h.publisher.TrimStreams(); err != nil {
		h.log.Warn().Err(err).Msg("Failed to trim outcome streams")
	}
}

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/search-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/search-agent/internal/backend"
	"github.com/povarna/generative-ai-agents/search-agent/internal/models"
	"github.com/povarna/generative-ai-agents/search-agent/internal/search"
	"github.com/rs/zerolog"
)

type Handler struct {
	service *search.Service
	logger  *zerolog.Logger
}

func NewHandler(service *search.Service, logger *zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// POST /search
// Body: SearchRequest
// Returns: []SearchResult
func (h *Handler) Search(req *restful.Request, resp *restful.Response) {
	var searchRequest models.SearchRequest
	if err := req.ReadEntity(&searchRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, fmt.Errorf("search error: %w", err), http.StatusBadRequest)
		return
	}

	ctx := req.Request.Context()
	results, err := h.service.Search(ctx, searchRequest.Query, searchRequest.Limit)
	if err != nil {
		middleware.HandleError(resp, fmt.Errorf("search error: %w", err), statusFor(err))
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, results)
}

// POST /fetch
// Body: FetchRequest
// Returns: []FetchEntry
func (h *Handler) Fetch(req *restful.Request, resp *restful.Response) {
	var fetchRequest models.FetchRequest
	if err := req.ReadEntity(&fetchRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, fmt.Errorf("fetch error: %w", err), http.StatusBadRequest)
		return
	}

	ids := fetchRequest.IDs
	if len(ids) == 0 && fetchRequest.ID != "" {
		ids = []string{fetchRequest.ID}
	}

	ctx := req.Request.Context()
	entries, err := h.service.FetchBatch(ctx, ids)
	if err != nil {
		middleware.HandleError(resp, fmt.Errorf("fetch error: %w", err), statusFor(err))
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, entries)
}

// Health handler GET /healthz
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{Status: "ok"})
}

func statusFor(err error) int {
	if errors.Is(err, backend.ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

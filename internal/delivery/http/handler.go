package http

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rfpmatch/backend/internal/domain"
	"github.com/rfpmatch/backend/internal/infrastructure/proposal"
	"github.com/rfpmatch/backend/internal/usecase"
)

// PipelineService is the slice of the match service the handlers need.
type PipelineService interface {
	RunPipeline(ctx context.Context, opts usecase.RunOptions) ([]domain.EnrichedRFP, error)
	MatchCandidates(ctx context.Context, rfp domain.RFP, k int) ([]domain.Candidate, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service  PipelineService
	store    domain.RecordStore
	notifier domain.Notifier
}

// NewHandler creates a new HTTP handler. Store and notifier are optional;
// nil disables the corresponding side effect.
func NewHandler(service PipelineService, store domain.RecordStore, notifier domain.Notifier) *Handler {
	return &Handler{
		service:  service,
		store:    store,
		notifier: notifier,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "rfpmatch-backend",
		"version": "1.0.0",
	})
}

// runRequest is the optional body of a pipeline run.
type runRequest struct {
	IncludeClosed *bool `json:"include_closed"`
}

// RunPipeline executes one full matching run: scrape, match, enrich, persist
// snapshots, render proposals and notify. Snapshots and notification are
// best-effort; only the matching run itself decides the response status.
func (h *Handler) RunPipeline(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "pipeline service not configured"})
		return
	}

	// The body is optional. Chunked requests carry ContentLength -1, so bind
	// whenever a body is present and treat only EOF as absence.
	var req runRequest
	if c.Request.Body != nil {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	records, err := h.service.RunPipeline(c.Request.Context(), usecase.RunOptions{
		IncludeClosed: req.IncludeClosed,
	})
	if err != nil {
		status := runErrorStatus(err)
		log.Printf("[PIPELINE] Run failed (%d): %v", status, err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	h.persistSnapshots(c.Request.Context(), records)

	proposals := proposal.RenderAll(records)
	if h.notifier != nil {
		if err := h.notifier.NotifyRun(c.Request.Context(), records, proposals); err != nil {
			log.Printf("[PIPELINE] Notification failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     len(records),
		"records":   records,
		"proposals": proposals,
	})
}

// candidatesRequest asks for the top-k catalogue candidates for one RFP.
type candidatesRequest struct {
	domain.RFP
	K int `json:"k"`
}

// MatchCandidates scores one RFP against the catalogue and returns the
// ordered candidate list.
func (h *Handler) MatchCandidates(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "pipeline service not configured"})
		return
	}

	var req candidatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	candidates, err := h.service.MatchCandidates(c.Request.Context(), req.RFP, req.K)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title or description is required"})
			return
		}
		status := runErrorStatus(err)
		log.Printf("[MATCH] Candidates request failed (%d): %v", status, err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":      len(candidates),
		"candidates": candidates,
	})
}

// persistSnapshots writes the run's CSV snapshots, logging failures without
// affecting the response.
func (h *Handler) persistSnapshots(ctx context.Context, records []domain.EnrichedRFP) {
	if h.store == nil {
		return
	}

	scraped := make([]domain.RFP, 0, len(records))
	for _, r := range records {
		scraped = append(scraped, r.RFP)
	}
	if err := h.store.SaveScraped(ctx, scraped); err != nil {
		log.Printf("[PIPELINE] Failed to save scraped snapshot: %v", err)
	}
	if err := h.store.SaveEnriched(ctx, records); err != nil {
		log.Printf("[PIPELINE] Failed to save enriched snapshot: %v", err)
	}
}

// runErrorStatus maps run failures onto HTTP statuses: the listing being
// unreachable is an upstream fault, structural matching failures are
// unprocessable input, anything else is internal.
func runErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrListingUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrNoRecords),
		errors.Is(err, domain.ErrEmptyCatalogue),
		errors.Is(err, domain.ErrEmptyVocabulary):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"resumatch/resume-analyzer/internal/models"
	"resumatch/resume-analyzer/internal/services"
)

type SimilarJobsHandler struct {
	similarity services.SimilarityEngine
	jobIndex   services.JobIndexService
}

func NewSimilarJobsHandler(similarity services.SimilarityEngine, jobIndex services.JobIndexService) *SimilarJobsHandler {
	return &SimilarJobsHandler{
		similarity: similarity,
		jobIndex:   jobIndex,
	}
}

// HandleSimilarJobs handles GET /jobs/similar?q=<text>&limit=<n>: finds past
// analyses whose job descriptions resemble the query text.
func (h *SimilarJobsHandler) HandleSimilarJobs(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query parameter 'q' is required",
		})
	}

	limit := c.QueryInt("limit", 5)
	if limit < 1 || limit > 50 {
		limit = 5
	}

	embedding, err := h.similarity.EmbedDocument(c.Context(), query)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Failed to embed query",
		})
	}

	jobs, err := h.jobIndex.SearchSimilar(c.Context(), embedding, limit)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Similar jobs search failed",
		})
	}

	return c.JSON(models.SimilarJobsResponse{Jobs: jobs})
}

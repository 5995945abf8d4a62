package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumatch/resume-analyzer/internal/models"
	"resumatch/resume-analyzer/internal/repositories"
)

type ResultHandler struct {
	analysisRepo repositories.AnalysisRepository
}

func NewResultHandler(analysisRepo repositories.AnalysisRepository) *ResultHandler {
	return &ResultHandler{
		analysisRepo: analysisRepo,
	}
}

// HandleGetResult handles GET /result/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	idParam := c.Params("id")
	analysisID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	analysis, err := h.analysisRepo.FindByID(analysisID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	}

	response := models.ResultResponse{
		ID:     analysis.ID.String(),
		Status: string(analysis.Status),
	}

	if analysis.Status == models.StatusCompleted && analysis.ResultJSON != nil {
		var result models.AnalysisResult
		if err := json.Unmarshal([]byte(*analysis.ResultJSON), &result); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to decode stored result",
			})
		}
		response.Result = &result
	}

	if analysis.Status == models.StatusFailed {
		response.ErrorMessage = analysis.ErrorMessage
	}

	return c.JSON(response)
}

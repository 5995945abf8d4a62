package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumatch/resume-analyzer/internal/models"
	"resumatch/resume-analyzer/internal/repositories"
	"resumatch/resume-analyzer/internal/services"
)

type AnalyzeHandler struct {
	analysisRepo repositories.AnalysisRepository
	documentRepo repositories.DocumentRepository
	storage      services.StorageService
	jobService   services.AnalysisJobService
	worker       services.Worker
}

func NewAnalyzeHandler(
	analysisRepo repositories.AnalysisRepository,
	documentRepo repositories.DocumentRepository,
	storage services.StorageService,
	jobService services.AnalysisJobService,
	worker services.Worker,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysisRepo: analysisRepo,
		documentRepo: documentRepo,
		storage:      storage,
		jobService:   jobService,
		worker:       worker,
	}
}

// HandleAnalyze handles POST /analyze: a multipart resume PDF plus a
// job_description field. The analysis runs asynchronously; the response
// carries the ID to poll.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	jobDescription := strings.TrimSpace(c.FormValue("job_description"))
	if len(jobDescription) < 20 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description must be at least 20 characters",
		})
	}

	filename, filePath, err := h.storage.SaveResume(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	document := &models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		FilePath:         filePath,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.documentRepo.Create(document); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store resume document",
		})
	}

	analysis := &models.Analysis{
		ID:               uuid.New(),
		ResumeDocumentID: document.ID,
		JobText:          jobDescription,
		Status:           models.StatusQueued,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.analysisRepo.Create(analysis); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create analysis job",
		})
	}

	h.worker.EnqueueJob(analysis.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.QueuedResponse{
		ID:     analysis.ID.String(),
		Status: string(models.StatusQueued),
	})
}

// HandleAnalyzeText handles POST /analyze-text: both inputs as plain text,
// analyzed synchronously with no persistence.
func (h *AnalyzeHandler) HandleAnalyzeText(c *fiber.Ctx) error {
	var req models.AnalyzeTextRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if len(strings.TrimSpace(req.ResumeText)) < 50 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_text must be at least 50 characters",
		})
	}

	if len(strings.TrimSpace(req.JobDescription)) < 20 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description must be at least 20 characters",
		})
	}

	start := time.Now()

	result, err := h.jobService.AnalyzeText(c.Context(), req.ResumeText, req.JobDescription)
	if err != nil {
		message := err.Error()
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.AnalyzeResponse{
			Success:               false,
			Error:                 &message,
			ProcessingTimeSeconds: time.Since(start).Seconds(),
		})
	}

	return c.JSON(models.AnalyzeResponse{
		Success:               true,
		Result:                result,
		ProcessingTimeSeconds: time.Since(start).Seconds(),
	})
}

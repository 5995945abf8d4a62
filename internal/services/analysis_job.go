package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resumatch/resume-analyzer/internal/models"
	"resumatch/resume-analyzer/internal/repositories"
)

// AnalysisJobService drives one queued analysis end to end: load the stored
// resume, extract and parse both texts, run the scoring pipeline, persist the
// result, and index the job description for similarity lookups.
type AnalysisJobService interface {
	ProcessAnalysis(ctx context.Context, analysisID uuid.UUID) error
	AnalyzeText(ctx context.Context, resumeText, jobText string) (*models.AnalysisResult, error)
}

type analysisJobService struct {
	analysisRepo repositories.AnalysisRepository
	documentRepo repositories.DocumentRepository
	pdfParser    PDFParserService
	resumeParser ResumeParser
	jobParser    JobParser
	analyzer     ResumeAnalyzer
	similarity   SimilarityEngine
	jobIndex     JobIndexService
	logger       *zap.Logger
}

func NewAnalysisJobService(
	analysisRepo repositories.AnalysisRepository,
	documentRepo repositories.DocumentRepository,
	pdfParser PDFParserService,
	resumeParser ResumeParser,
	jobParser JobParser,
	analyzer ResumeAnalyzer,
	similarity SimilarityEngine,
	jobIndex JobIndexService,
	logger *zap.Logger,
) AnalysisJobService {
	return &analysisJobService{
		analysisRepo: analysisRepo,
		documentRepo: documentRepo,
		pdfParser:    pdfParser,
		resumeParser: resumeParser,
		jobParser:    jobParser,
		analyzer:     analyzer,
		similarity:   similarity,
		jobIndex:     jobIndex,
		logger:       logger,
	}
}

// ProcessAnalysis implements AnalysisJobService. Any failure before the
// pipeline runs marks the analysis failed with the cause; the pipeline itself
// cannot fail once both profiles parse.
func (s *analysisJobService) ProcessAnalysis(ctx context.Context, analysisID uuid.UUID) error {
	analysis, err := s.analysisRepo.FindByID(analysisID)
	if err != nil {
		return fmt.Errorf("failed to load analysis: %w", err)
	}

	if analysis.Status != models.StatusQueued {
		s.logger.Debug("analysis already picked up, skipping",
			zap.String("analysis_id", analysisID.String()),
			zap.String("status", string(analysis.Status)))
		return nil
	}

	if err := s.analysisRepo.UpdateStatus(analysisID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to mark analysis processing: %w", err)
	}

	result, jobText, err := s.run(ctx, analysis)
	if err != nil {
		s.logger.Error("analysis failed",
			zap.String("analysis_id", analysisID.String()),
			zap.Error(err))
		if updateErr := s.analysisRepo.UpdateError(analysisID, err.Error()); updateErr != nil {
			s.logger.Error("failed to record analysis error", zap.Error(updateErr))
		}
		return err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		if updateErr := s.analysisRepo.UpdateError(analysisID, "failed to encode result"); updateErr != nil {
			s.logger.Error("failed to record analysis error", zap.Error(updateErr))
		}
		return fmt.Errorf("failed to encode analysis result: %w", err)
	}

	if err := s.analysisRepo.UpdateResult(analysisID, string(payload)); err != nil {
		return fmt.Errorf("failed to store analysis result: %w", err)
	}

	s.indexJob(ctx, analysisID, jobText)

	return nil
}

func (s *analysisJobService) run(ctx context.Context, analysis *models.Analysis) (*models.AnalysisResult, string, error) {
	document, err := s.documentRepo.FindByID(analysis.ResumeDocumentID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load resume document: %w", err)
	}

	resumeText, err := s.pdfParser.ExtractText(document.FilePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to extract resume text: %w", err)
	}

	resume, err := s.resumeParser.Parse(ctx, resumeText)
	if err != nil {
		return nil, "", err
	}

	job, err := s.jobParser.Parse(ctx, analysis.JobText)
	if err != nil {
		return nil, "", err
	}

	return s.analyzer.Analyze(ctx, resume, job), job.RawText, nil
}

// AnalyzeText implements AnalysisJobService, the synchronous path with no
// stored document and no persistence.
func (s *analysisJobService) AnalyzeText(ctx context.Context, resumeText, jobText string) (*models.AnalysisResult, error) {
	resume, err := s.resumeParser.Parse(ctx, resumeText)
	if err != nil {
		return nil, err
	}

	job, err := s.jobParser.Parse(ctx, jobText)
	if err != nil {
		return nil, err
	}

	return s.analyzer.Analyze(ctx, resume, job), nil
}

// indexJob best-effort: a missing vector index never fails a finished
// analysis.
func (s *analysisJobService) indexJob(ctx context.Context, analysisID uuid.UUID, jobText string) {
	if s.jobIndex == nil {
		return
	}

	embedding, err := s.similarity.EmbedDocument(ctx, jobText)
	if err != nil {
		s.logger.Warn("failed to embed job for index", zap.Error(err))
		return
	}

	if err := s.jobIndex.UpsertJob(ctx, analysisID, jobText, embedding); err != nil {
		s.logger.Warn("failed to index job description", zap.Error(err))
	}
}

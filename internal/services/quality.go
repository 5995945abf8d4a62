package services

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"

	"resumatch/resume-analyzer/internal/config"
	"resumatch/resume-analyzer/internal/models"
)

// QualityScorer grades the resume itself, independent of any job. The model
// path judges clarity, quantified achievements, and ATS-friendliness; the
// heuristic fallback counts structural sections. Score never errors.
type QualityScorer interface {
	Score(ctx context.Context, resume *models.ResumeProfile) float64
}

type qualityScorer struct {
	generator TextGenerator
	prompts   *PromptBuilder
	limits    config.LimitsConfig
	logger    *zap.Logger
}

func NewQualityScorer(generator TextGenerator, limits config.LimitsConfig, logger *zap.Logger) QualityScorer {
	return &qualityScorer{
		generator: generator,
		prompts:   NewPromptBuilder(),
		limits:    limits,
		logger:    logger,
	}
}

type qualityResponse struct {
	// Pointer so an absent score key is distinguishable from a literal 0.
	ResumeQualityScore *float64 `json:"resume_quality_score"`
	QualityNotes       string   `json:"quality_notes"`
}

// Score implements QualityScorer.
func (q *qualityScorer) Score(ctx context.Context, resume *models.ResumeProfile) float64 {
	prompt := q.prompts.BuildQualityPrompt(truncate(resume.RawText, q.limits.QualityResumeChars))

	response, err := q.generator.Generate(ctx, SystemPrompt, prompt)
	if err != nil {
		q.logger.Warn("quality assessment generation failed, using heuristic fallback", zap.Error(err))
		return q.fallback(resume)
	}

	var parsed qualityResponse
	if err := ParseObject(response, &parsed); err != nil {
		q.logger.Warn("quality assessment response unparseable, using heuristic fallback", zap.Error(err))
		return q.fallback(resume)
	}

	if parsed.ResumeQualityScore == nil {
		q.logger.Warn("quality assessment response missing score, using heuristic fallback")
		return q.fallback(resume)
	}

	return clampScore(*parsed.ResumeQualityScore)
}

// fallback scores structure only: a base of 50 plus fixed bonuses per
// populated section, capped at 100.
func (q *qualityScorer) fallback(resume *models.ResumeProfile) float64 {
	score := 50.0

	if len(resume.Skills) >= 5 {
		score += 15
	}
	if len(resume.Education) > 0 {
		score += 10
	}
	if len(resume.WorkExperience) > 0 {
		score += 15
	}
	if len(resume.Projects) > 0 || len(resume.Certifications) > 0 {
		score += 10
	}

	if score > 100 {
		return 100
	}
	return score
}

// truncate cuts text to at most limit bytes, backing up to the nearest rune
// boundary so the prompt never carries a split UTF-8 sequence.
func truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}

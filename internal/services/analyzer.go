package services

import (
	"context"

	"go.uber.org/zap"

	"resumatch/resume-analyzer/internal/models"
)

// Score used for semantic similarity when embeddings are unavailable.
const neutralSemanticScore = 50.0

// ResumeAnalyzer runs the full scoring pipeline over parsed profiles. Every
// stage degrades to a deterministic fallback, so Analyze always returns a
// complete result for valid input.
type ResumeAnalyzer interface {
	Analyze(ctx context.Context, resume *models.ResumeProfile, job *models.JobProfile) *models.AnalysisResult
}

type resumeAnalyzer struct {
	similarity  SimilarityEngine
	skills      SkillMatcher
	quality     QualityScorer
	suggestions SuggestionGenerator
	verdict     VerdictComposer
	aggregator  *ScoreAggregator
	logger      *zap.Logger
}

func NewResumeAnalyzer(
	similarity SimilarityEngine,
	skills SkillMatcher,
	quality QualityScorer,
	suggestions SuggestionGenerator,
	verdict VerdictComposer,
	aggregator *ScoreAggregator,
	logger *zap.Logger,
) ResumeAnalyzer {
	return &resumeAnalyzer{
		similarity:  similarity,
		skills:      skills,
		quality:     quality,
		suggestions: suggestions,
		verdict:     verdict,
		aggregator:  aggregator,
		logger:      logger,
	}
}

// Analyze implements ResumeAnalyzer. Stage order matters: the overall score
// feeds the suggestion and verdict stages.
func (a *resumeAnalyzer) Analyze(ctx context.Context, resume *models.ResumeProfile, job *models.JobProfile) *models.AnalysisResult {
	semanticScore := a.semanticScore(ctx, resume, job)

	skillsResult := a.skills.Compare(ctx, resume, job)
	if skillsResult.UsedFallback {
		a.logger.Info("skills comparison used deterministic fallback")
	}

	experienceScore := ScoreExperience(job.RequiredExperienceYears, resume.ExperienceYears)

	qualityScore := a.quality.Score(ctx, resume)

	overallScore := a.aggregator.Overall(skillsResult.Score, experienceScore, semanticScore, qualityScore)

	suggestions := a.suggestions.Suggest(ctx, resume, job, skillsResult.Comparison, overallScore)

	bullets := a.suggestions.OptimizeBullets(ctx, resume, job)

	verdict := a.verdict.Compose(ctx, overallScore, skillsResult.Score, experienceScore, semanticScore, skillsResult.Comparison)

	a.logger.Info("analysis complete",
		zap.Float64("overall_score", overallScore),
		zap.Float64("skills_score", skillsResult.Score),
		zap.Float64("experience_score", experienceScore),
		zap.Float64("semantic_score", semanticScore),
		zap.Float64("quality_score", qualityScore),
		zap.String("verdict", verdict.FinalVerdict),
	)

	return &models.AnalysisResult{
		MatchScore: overallScore,
		ScoresBreakdown: models.ScoreBreakdown{
			SkillsMatchScore:         skillsResult.Score,
			ExperienceRelevanceScore: experienceScore,
			SemanticSimilarityScore:  semanticScore,
			ResumeQualityScore:       qualityScore,
			OverallScore:             overallScore,
		},
		SkillsComparison:       skillsResult.Comparison,
		ImprovementSuggestions: suggestions,
		OptimizedResumeBullets: bullets,
		FinalVerdict:           verdict.FinalVerdict,
		VerdictExplanation:     verdict.VerdictExplanation,
		ATSScore:               verdict.ATSScore,
		KeyStrengths:           verdict.KeyStrengths,
		KeyWeaknesses:          verdict.KeyWeaknesses,
	}
}

// semanticScore maps the raw text cosine similarity onto [0,100]. An embed
// failure is not fatal: the score degrades to a neutral midpoint so the
// remaining weights still discriminate.
func (a *resumeAnalyzer) semanticScore(ctx context.Context, resume *models.ResumeProfile, job *models.JobProfile) float64 {
	similarity, err := a.similarity.Similarity(ctx, resume.RawText, job.RawText)
	if err != nil {
		a.logger.Warn("semantic similarity unavailable, using neutral score", zap.Error(err))
		return neutralSemanticScore
	}
	return round2(similarity * 100)
}

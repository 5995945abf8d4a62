package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumatch/resume-analyzer/internal/models"
)

func newOfflineAnalyzer(generator *stubGenerator, embedder *stubEmbedder) ResumeAnalyzer {
	logger := testLogger()
	similarity := NewSimilarityEngine(embedder)
	return NewResumeAnalyzer(
		similarity,
		NewSkillMatcher(generator, logger),
		NewQualityScorer(generator, testLimits(), logger),
		NewSuggestionGenerator(generator, testLimits(), logger),
		NewVerdictComposer(generator, logger),
		NewScoreAggregator(defaultWeights()),
		logger,
	)
}

func TestAnalyzeFullyDegradedPipeline(t *testing.T) {
	generator := &stubGenerator{err: errors.New("provider down")}
	embedder := &stubEmbedder{defaultVec: []float32{1, 0}}
	analyzer := newOfflineAnalyzer(generator, embedder)

	resume := &models.ResumeProfile{
		RawText:         "Backend engineer with Python and Docker experience.",
		Skills:          []string{"Python", "Docker"},
		ExperienceYears: floatPtr(3),
	}
	job := &models.JobProfile{
		RawText:                 "Looking for a backend engineer. Required: Python, Docker, Kubernetes.",
		RequiredSkills:          []string{"Python", "Docker", "Kubernetes"},
		PreferredSkills:         []string{"AWS"},
		RequiredExperienceYears: floatPtr(5),
	}

	result := analyzer.Analyze(context.Background(), resume, job)
	require.NotNil(t, result)

	// Skills: 2 of 3 required present
	assert.Equal(t, []string{"Python", "Docker"}, result.SkillsComparison.MatchingSkills)
	assert.Equal(t, []string{"Kubernetes"}, result.SkillsComparison.MissingRequiredSkills)
	assert.Equal(t, []string{"AWS"}, result.SkillsComparison.MissingPreferredSkills)
	assert.InDelta(t, 66.67, result.SkillsComparison.SkillMatchPercentage, 0.0001)
	assert.InDelta(t, 66.67, result.ScoresBreakdown.SkillsMatchScore, 0.0001)

	// Experience: 2 years short of 5
	assert.InDelta(t, 80, result.ScoresBreakdown.ExperienceRelevanceScore, 0.0001)

	// Identical stub vectors give full semantic similarity
	assert.InDelta(t, 100, result.ScoresBreakdown.SemanticSimilarityScore, 0.0001)

	// Quality heuristic: bare profile
	assert.InDelta(t, 50, result.ScoresBreakdown.ResumeQualityScore, 0.0001)

	// 66.67*0.4 + 80*0.3 + 100*0.2 + 50*0.1 = 75.668 -> 75.67
	assert.InDelta(t, 75.67, result.MatchScore, 0.0001)
	assert.Equal(t, result.MatchScore, result.ScoresBreakdown.OverallScore)

	// 75.67 with one missing required skill is a strong match
	assert.Equal(t, models.VerdictStrongMatch, result.FinalVerdict)
	require.NotNil(t, result.ATSScore)
	assert.InDelta(t, 75.67, *result.ATSScore, 0.0001)

	// Fallback suggestions: missing required, missing preferred, achievements
	require.Len(t, result.ImprovementSuggestions, 3)

	// No work experience means no bullet rewrites and no provider call for them
	assert.Empty(t, result.OptimizedResumeBullets)
}

func TestAnalyzeEmbedFailureUsesNeutralSemanticScore(t *testing.T) {
	generator := &stubGenerator{err: errors.New("provider down")}
	embedder := &stubEmbedder{err: errStubEmbed}
	analyzer := newOfflineAnalyzer(generator, embedder)

	resume := &models.ResumeProfile{
		RawText:         "Backend engineer with Python and Docker experience.",
		Skills:          []string{"Python", "Docker"},
		ExperienceYears: floatPtr(3),
	}
	job := &models.JobProfile{
		RawText:                 "Backend role requiring Python, Docker, and Kubernetes.",
		RequiredSkills:          []string{"Python", "Docker", "Kubernetes"},
		PreferredSkills:         []string{"AWS"},
		RequiredExperienceYears: floatPtr(5),
	}

	result := analyzer.Analyze(context.Background(), resume, job)

	assert.InDelta(t, 50, result.ScoresBreakdown.SemanticSimilarityScore, 0.0001)

	// 66.67*0.4 + 80*0.3 + 50*0.2 + 50*0.1 = 65.668 -> 65.67
	assert.InDelta(t, 65.67, result.MatchScore, 0.0001)
	assert.Equal(t, models.VerdictModerateMatch, result.FinalVerdict)
}

func TestAnalyzeNeverReturnsNilCollections(t *testing.T) {
	generator := &stubGenerator{err: errors.New("provider down")}
	embedder := &stubEmbedder{defaultVec: []float32{1, 0}}
	analyzer := newOfflineAnalyzer(generator, embedder)

	result := analyzer.Analyze(context.Background(),
		&models.ResumeProfile{RawText: "r"},
		&models.JobProfile{RawText: "j"})

	assert.NotNil(t, result.SkillsComparison.MatchingSkills)
	assert.NotNil(t, result.SkillsComparison.MissingRequiredSkills)
	assert.NotNil(t, result.SkillsComparison.MissingPreferredSkills)
	assert.NotNil(t, result.ImprovementSuggestions)
	assert.NotNil(t, result.OptimizedResumeBullets)
	assert.NotNil(t, result.KeyStrengths)
	assert.NotNil(t, result.KeyWeaknesses)
}

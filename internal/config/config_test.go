package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKeepsValidWeights(t *testing.T) {
	scoring := ScoringConfig{
		WeightSkillsMatch:         0.40,
		WeightExperienceRelevance: 0.30,
		WeightSemanticSimilarity:  0.20,
		WeightResumeQuality:       0.10,
	}

	scoring.Normalize()

	assert.InDelta(t, 0.40, scoring.WeightSkillsMatch, 0.0001)
	assert.InDelta(t, 0.30, scoring.WeightExperienceRelevance, 0.0001)
	assert.InDelta(t, 0.20, scoring.WeightSemanticSimilarity, 0.0001)
	assert.InDelta(t, 0.10, scoring.WeightResumeQuality, 0.0001)
}

func TestNormalizeRescalesSkewedWeights(t *testing.T) {
	scoring := ScoringConfig{
		WeightSkillsMatch:         0.2,
		WeightExperienceRelevance: 0.2,
		WeightSemanticSimilarity:  0.2,
		WeightResumeQuality:       0.2,
	}

	scoring.Normalize()

	assert.InDelta(t, 0.25, scoring.WeightSkillsMatch, 0.0001)
	assert.InDelta(t, 0.25, scoring.WeightExperienceRelevance, 0.0001)
	assert.InDelta(t, 0.25, scoring.WeightSemanticSimilarity, 0.0001)
	assert.InDelta(t, 0.25, scoring.WeightResumeQuality, 0.0001)

	sum := scoring.WeightSkillsMatch + scoring.WeightExperienceRelevance +
		scoring.WeightSemanticSimilarity + scoring.WeightResumeQuality
	assert.InDelta(t, 1.0, sum, 0.0001)
}

func TestNormalizeZeroWeightsFallsBackToDefaults(t *testing.T) {
	scoring := ScoringConfig{}

	scoring.Normalize()

	assert.InDelta(t, 0.40, scoring.WeightSkillsMatch, 0.0001)
	assert.InDelta(t, 0.30, scoring.WeightExperienceRelevance, 0.0001)
	assert.InDelta(t, 0.20, scoring.WeightSemanticSimilarity, 0.0001)
	assert.InDelta(t, 0.10, scoring.WeightResumeQuality, 0.0001)
}

func TestNormalizeToleratesRoundingDrift(t *testing.T) {
	scoring := ScoringConfig{
		WeightSkillsMatch:         0.401,
		WeightExperienceRelevance: 0.300,
		WeightSemanticSimilarity:  0.200,
		WeightResumeQuality:       0.104,
	}

	scoring.Normalize()

	// Within the 0.01 tolerance, weights are left untouched
	assert.InDelta(t, 0.401, scoring.WeightSkillsMatch, 0.0001)
	assert.InDelta(t, 0.104, scoring.WeightResumeQuality, 0.0001)
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resumatch/resume-analyzer/internal/config"
)

func defaultWeights() config.ScoringConfig {
	return config.ScoringConfig{
		WeightSkillsMatch:         0.40,
		WeightExperienceRelevance: 0.30,
		WeightSemanticSimilarity:  0.20,
		WeightResumeQuality:       0.10,
	}
}

func TestScoreAggregatorOverall(t *testing.T) {
	aggregator := NewScoreAggregator(defaultWeights())

	assert.InDelta(t, 100.0, aggregator.Overall(100, 100, 100, 100), 0.0001)
	assert.InDelta(t, 0.0, aggregator.Overall(0, 0, 0, 0), 0.0001)

	// 66.67*0.4 + 80*0.3 + 50*0.2 + 50*0.1 = 65.668, rounded to 65.67
	assert.InDelta(t, 65.67, aggregator.Overall(66.67, 80, 50, 50), 0.0001)
}

func TestScoreAggregatorRoundsToTwoDecimals(t *testing.T) {
	aggregator := NewScoreAggregator(defaultWeights())

	overall := aggregator.Overall(33.333, 33.333, 33.333, 33.333)
	assert.InDelta(t, 33.33, overall, 0.0001)
}

func TestScoreAggregatorClampsOutOfRangeInputs(t *testing.T) {
	aggregator := NewScoreAggregator(defaultWeights())

	assert.Equal(t, 100.0, aggregator.Overall(150, 150, 150, 150))
	assert.Equal(t, 0.0, aggregator.Overall(-50, -50, -50, -50))
}

package services

import (
	"math"

	"resumatch/resume-analyzer/internal/config"
)

// ScoreAggregator folds the four component scores into one weighted overall
// score. Weights come from configuration and are normalized at load time.
type ScoreAggregator struct {
	weights config.ScoringConfig
}

func NewScoreAggregator(weights config.ScoringConfig) *ScoreAggregator {
	return &ScoreAggregator{weights: weights}
}

// Overall returns the weighted sum of the component scores, rounded to two
// decimal places and clamped to [0,100].
func (a *ScoreAggregator) Overall(skills, experience, semantic, quality float64) float64 {
	overall := skills*a.weights.WeightSkillsMatch +
		experience*a.weights.WeightExperienceRelevance +
		semantic*a.weights.WeightSemanticSimilarity +
		quality*a.weights.WeightResumeQuality

	return clampScore(round2(overall))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

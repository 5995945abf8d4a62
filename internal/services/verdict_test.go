package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumatch/resume-analyzer/internal/models"
)

func TestFallbackVerdictDecisionTable(t *testing.T) {
	tests := []struct {
		name         string
		overallScore float64
		missing      []string
		expected     string
	}{
		{
			name:         "strong at exact threshold",
			overallScore: 75,
			missing:      []string{"K8s"},
			expected:     models.VerdictStrongMatch,
		},
		{
			name:         "just below strong threshold",
			overallScore: 74.99,
			missing:      []string{"K8s"},
			expected:     models.VerdictModerateMatch,
		},
		{
			name:         "high score but too many gaps",
			overallScore: 90,
			missing:      []string{"a", "b"},
			expected:     models.VerdictModerateMatch,
		},
		{
			name:         "moderate at exact threshold",
			overallScore: 50,
			missing:      []string{"a", "b", "c"},
			expected:     models.VerdictModerateMatch,
		},
		{
			name:         "just below moderate threshold",
			overallScore: 49.99,
			missing:      nil,
			expected:     models.VerdictWeakMatch,
		},
		{
			name:         "four gaps always weak",
			overallScore: 95,
			missing:      []string{"a", "b", "c", "d"},
			expected:     models.VerdictWeakMatch,
		},
		{
			name:         "no gaps high score",
			overallScore: 80,
			missing:      nil,
			expected:     models.VerdictStrongMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := FallbackVerdict(tt.overallScore, models.SkillComparison{
				MissingRequiredSkills: tt.missing,
			})
			assert.Equal(t, tt.expected, verdict.FinalVerdict)
		})
	}
}

func TestFallbackVerdictExplanations(t *testing.T) {
	strong := FallbackVerdict(80, models.SkillComparison{})
	assert.Equal(t, "High match score of 80% with minimal gaps. Strong candidate for the role.", strong.VerdictExplanation)

	moderate := FallbackVerdict(60, models.SkillComparison{})
	assert.Equal(t, "Decent match score of 60% with some skill gaps. Could be suitable with training.", moderate.VerdictExplanation)

	weak := FallbackVerdict(30, models.SkillComparison{})
	assert.Equal(t, "Lower match score of 30% with significant gaps. May not be the best fit.", weak.VerdictExplanation)
}

func TestFallbackVerdictStrengthsAndWeaknesses(t *testing.T) {
	verdict := FallbackVerdict(60, models.SkillComparison{
		MatchingSkills:        []string{"a", "b", "c", "d"},
		MissingRequiredSkills: []string{"x", "y", "z", "w"},
	})

	assert.Equal(t, []string{"a", "b", "c"}, verdict.KeyStrengths)
	assert.Equal(t, []string{"x", "y", "z"}, verdict.KeyWeaknesses)
	require.NotNil(t, verdict.ATSScore)
	assert.Equal(t, 60.0, *verdict.ATSScore)
}

func TestVerdictComposerSemanticPath(t *testing.T) {
	generator := &stubGenerator{response: `{
		"final_verdict": "Strong Match",
		"verdict_explanation": "Great fit.",
		"key_strengths": ["Python depth"],
		"key_weaknesses": ["No Kubernetes"],
		"ats_score": 87
	}`}
	composer := NewVerdictComposer(generator, testLogger())

	verdict := composer.Compose(context.Background(), 80, 85, 100, 70, models.SkillComparison{})

	assert.Equal(t, models.VerdictStrongMatch, verdict.FinalVerdict)
	assert.Equal(t, "Great fit.", verdict.VerdictExplanation)
	require.NotNil(t, verdict.ATSScore)
	assert.Equal(t, 87.0, *verdict.ATSScore)
}

func TestVerdictComposerRejectsUnknownLabel(t *testing.T) {
	generator := &stubGenerator{response: `{
		"final_verdict": "Hire Immediately",
		"verdict_explanation": "x"
	}`}
	composer := NewVerdictComposer(generator, testLogger())

	verdict := composer.Compose(context.Background(), 80, 85, 100, 70, models.SkillComparison{})

	// Falls back to the decision table
	assert.Equal(t, models.VerdictStrongMatch, verdict.FinalVerdict)
	assert.Contains(t, verdict.VerdictExplanation, "High match score")
}

func TestVerdictComposerFallbackOnError(t *testing.T) {
	generator := &stubGenerator{err: errors.New("provider down")}
	composer := NewVerdictComposer(generator, testLogger())

	verdict := composer.Compose(context.Background(), 40, 30, 50, 45, models.SkillComparison{
		MissingRequiredSkills: []string{"a", "b", "c", "d"},
	})

	assert.Equal(t, models.VerdictWeakMatch, verdict.FinalVerdict)
}

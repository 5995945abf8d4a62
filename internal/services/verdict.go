package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"resumatch/resume-analyzer/internal/models"
)

// Verdict is the summary judgment the pipeline attaches to a finished
// analysis: the verdict label, its explanation, and the surrounding
// strengths/weaknesses/ATS assessment.
type Verdict struct {
	FinalVerdict       string   `json:"final_verdict"`
	VerdictExplanation string   `json:"verdict_explanation"`
	KeyStrengths       []string `json:"key_strengths"`
	KeyWeaknesses      []string `json:"key_weaknesses"`
	ATSScore           *float64 `json:"ats_score"`
}

// VerdictComposer produces the final recommendation. The model path writes a
// free-form justification; the fallback applies the fixed decision table and
// templated explanations, so Compose never errors.
type VerdictComposer interface {
	Compose(ctx context.Context, overallScore, skillsScore, experienceScore, semanticScore float64, comparison models.SkillComparison) Verdict
}

type verdictComposer struct {
	generator TextGenerator
	prompts   *PromptBuilder
	logger    *zap.Logger
}

func NewVerdictComposer(generator TextGenerator, logger *zap.Logger) VerdictComposer {
	return &verdictComposer{
		generator: generator,
		prompts:   NewPromptBuilder(),
		logger:    logger,
	}
}

// Compose implements VerdictComposer.
func (v *verdictComposer) Compose(
	ctx context.Context,
	overallScore, skillsScore, experienceScore, semanticScore float64,
	comparison models.SkillComparison,
) Verdict {
	prompt := v.prompts.BuildFinalVerdictPrompt(
		overallScore, skillsScore, experienceScore, semanticScore,
		comparison.MatchingSkills, comparison.MissingRequiredSkills,
	)

	response, err := v.generator.Generate(ctx, SystemPrompt, prompt)
	if err != nil {
		v.logger.Warn("verdict generation failed, using decision-table fallback", zap.Error(err))
		return FallbackVerdict(overallScore, comparison)
	}

	var parsed Verdict
	if err := ParseObject(response, &parsed); err != nil {
		v.logger.Warn("verdict response unparseable, using decision-table fallback", zap.Error(err))
		return FallbackVerdict(overallScore, comparison)
	}

	if !validVerdict(parsed.FinalVerdict) {
		v.logger.Warn("verdict outside allowed set, using decision-table fallback",
			zap.String("verdict", parsed.FinalVerdict))
		return FallbackVerdict(overallScore, comparison)
	}

	if parsed.KeyStrengths == nil {
		parsed.KeyStrengths = []string{}
	}
	if parsed.KeyWeaknesses == nil {
		parsed.KeyWeaknesses = []string{}
	}
	if parsed.ATSScore != nil {
		clamped := clampScore(*parsed.ATSScore)
		parsed.ATSScore = &clamped
	}

	return parsed
}

// FallbackVerdict applies the deterministic decision table over the overall
// score and the number of missing required skills.
func FallbackVerdict(overallScore float64, comparison models.SkillComparison) Verdict {
	missingCount := len(comparison.MissingRequiredSkills)

	var verdict, explanation string
	switch {
	case overallScore >= 75 && missingCount <= 1:
		verdict = models.VerdictStrongMatch
		explanation = fmt.Sprintf("High match score of %.0f%% with minimal gaps. Strong candidate for the role.", overallScore)
	case overallScore >= 50 && missingCount <= 3:
		verdict = models.VerdictModerateMatch
		explanation = fmt.Sprintf("Decent match score of %.0f%% with some skill gaps. Could be suitable with training.", overallScore)
	default:
		verdict = models.VerdictWeakMatch
		explanation = fmt.Sprintf("Lower match score of %.0f%% with significant gaps. May not be the best fit.", overallScore)
	}

	ats := overallScore
	return Verdict{
		FinalVerdict:       verdict,
		VerdictExplanation: explanation,
		KeyStrengths:       emptyIfNil(firstN(comparison.MatchingSkills, 3)),
		KeyWeaknesses:      emptyIfNil(firstN(comparison.MissingRequiredSkills, 3)),
		ATSScore:           &ats,
	}
}

func validVerdict(verdict string) bool {
	switch verdict {
	case models.VerdictStrongMatch, models.VerdictModerateMatch, models.VerdictWeakMatch:
		return true
	}
	return false
}

package services

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"resumatch/resume-analyzer/internal/models"
)

// SkillMatchResult bundles the skill comparison with the component score the
// aggregator consumes.
type SkillMatchResult struct {
	Comparison   models.SkillComparison
	Score        float64
	UsedFallback bool
}

// SkillMatcher compares resume skills against job requirements. The semantic
// path asks the model to account for synonyms and related skills; when that
// path fails the deterministic overlap fallback takes over, so Compare never
// returns an error.
type SkillMatcher interface {
	Compare(ctx context.Context, resume *models.ResumeProfile, job *models.JobProfile) SkillMatchResult
}

type skillMatcher struct {
	generator TextGenerator
	prompts   *PromptBuilder
	logger    *zap.Logger
}

func NewSkillMatcher(generator TextGenerator, logger *zap.Logger) SkillMatcher {
	return &skillMatcher{
		generator: generator,
		prompts:   NewPromptBuilder(),
		logger:    logger,
	}
}

type skillsComparisonResponse struct {
	MatchingSkills         []string `json:"matching_skills"`
	MissingRequiredSkills  []string `json:"missing_required_skills"`
	MissingPreferredSkills []string `json:"missing_preferred_skills"`
	SkillMatchPercentage   float64  `json:"skill_match_percentage"`
	SkillsMatchScore       float64  `json:"skills_match_score"`
}

// Compare implements SkillMatcher.
func (m *skillMatcher) Compare(ctx context.Context, resume *models.ResumeProfile, job *models.JobProfile) SkillMatchResult {
	prompt := m.prompts.BuildSkillsComparisonPrompt(
		resume.Skills,
		formatYears(resume.ExperienceYears),
		job.RequiredSkills,
		job.PreferredSkills,
		formatYears(job.RequiredExperienceYears),
	)

	response, err := m.generator.Generate(ctx, SystemPrompt, prompt)
	if err != nil {
		m.logger.Warn("skills comparison generation failed, using deterministic fallback", zap.Error(err))
		return m.fallback(resume, job)
	}

	var parsed skillsComparisonResponse
	if err := ParseObject(response, &parsed); err != nil {
		m.logger.Warn("skills comparison response unparseable, using deterministic fallback", zap.Error(err))
		return m.fallback(resume, job)
	}

	return SkillMatchResult{
		Comparison: models.SkillComparison{
			MatchingSkills:         emptyIfNil(parsed.MatchingSkills),
			MissingRequiredSkills:  emptyIfNil(parsed.MissingRequiredSkills),
			MissingPreferredSkills: emptyIfNil(parsed.MissingPreferredSkills),
			SkillMatchPercentage:   clampScore(parsed.SkillMatchPercentage),
		},
		Score:        clampScore(parsed.SkillsMatchScore),
		UsedFallback: false,
	}
}

// fallback runs the deterministic case-insensitive overlap. The job's
// required set always splits exactly into matching and missing lists.
func (m *skillMatcher) fallback(resume *models.ResumeProfile, job *models.JobProfile) SkillMatchResult {
	resumeSkills := make(map[string]struct{}, len(resume.Skills))
	for _, skill := range resume.Skills {
		resumeSkills[strings.ToLower(strings.TrimSpace(skill))] = struct{}{}
	}

	matching := []string{}
	missingRequired := []string{}
	for _, skill := range job.RequiredSkills {
		if _, ok := resumeSkills[strings.ToLower(strings.TrimSpace(skill))]; ok {
			matching = append(matching, skill)
		} else {
			missingRequired = append(missingRequired, skill)
		}
	}

	missingPreferred := []string{}
	for _, skill := range job.PreferredSkills {
		if _, ok := resumeSkills[strings.ToLower(strings.TrimSpace(skill))]; !ok {
			missingPreferred = append(missingPreferred, skill)
		}
	}

	percentage := 0.0
	if len(job.RequiredSkills) > 0 {
		percentage = float64(len(matching)) / float64(len(job.RequiredSkills)) * 100
	}

	return SkillMatchResult{
		Comparison: models.SkillComparison{
			MatchingSkills:         matching,
			MissingRequiredSkills:  missingRequired,
			MissingPreferredSkills: missingPreferred,
			SkillMatchPercentage:   round2(percentage),
		},
		Score:        clampScore(round2(percentage)),
		UsedFallback: true,
	}
}

func formatYears(years *float64) string {
	if years == nil {
		return "Not specified"
	}
	return strconv.FormatFloat(*years, 'f', -1, 64)
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"resumatch/resume-analyzer/internal/config"
	"resumatch/resume-analyzer/internal/models"
)

// SuggestionGenerator produces improvement advice and optimized bullet
// rewrites. Suggestions always fall back to a deterministic set; bullet
// rewrites do not, a failed rewrite just yields an empty list.
type SuggestionGenerator interface {
	Suggest(ctx context.Context, resume *models.ResumeProfile, job *models.JobProfile, comparison models.SkillComparison, overallScore float64) []models.Suggestion
	OptimizeBullets(ctx context.Context, resume *models.ResumeProfile, job *models.JobProfile) []models.BulletRewrite
}

type suggestionGenerator struct {
	generator TextGenerator
	prompts   *PromptBuilder
	limits    config.LimitsConfig
	logger    *zap.Logger
}

func NewSuggestionGenerator(generator TextGenerator, limits config.LimitsConfig, logger *zap.Logger) SuggestionGenerator {
	return &suggestionGenerator{
		generator: generator,
		prompts:   NewPromptBuilder(),
		limits:    limits,
		logger:    logger,
	}
}

type suggestionsResponse struct {
	Suggestions []models.Suggestion `json:"suggestions"`
}

type bulletsResponse struct {
	OptimizedBullets []models.BulletRewrite `json:"optimized_bullets"`
}

// Suggest implements SuggestionGenerator.
func (s *suggestionGenerator) Suggest(
	ctx context.Context,
	resume *models.ResumeProfile,
	job *models.JobProfile,
	comparison models.SkillComparison,
	overallScore float64,
) []models.Suggestion {
	prompt := s.prompts.BuildImprovementPrompt(
		truncate(resume.RawText, s.limits.SuggestionResumeChars),
		truncate(job.RawText, s.limits.SuggestionJobChars),
		comparison.MissingRequiredSkills,
		comparison.MissingPreferredSkills,
		overallScore,
	)

	response, err := s.generator.Generate(ctx, SystemPrompt, prompt)
	if err != nil {
		s.logger.Warn("improvement generation failed, using fallback suggestions", zap.Error(err))
		return fallbackSuggestions(comparison)
	}

	var parsed suggestionsResponse
	if err := ParseObject(response, &parsed); err != nil {
		s.logger.Warn("improvement response unparseable, using fallback suggestions", zap.Error(err))
		return fallbackSuggestions(comparison)
	}

	for _, suggestion := range parsed.Suggestions {
		if !validSuggestion(suggestion) {
			s.logger.Warn("improvement response contains invalid entry, using fallback suggestions",
				zap.String("category", suggestion.Category),
				zap.String("priority", suggestion.Priority))
			return fallbackSuggestions(comparison)
		}
	}

	if parsed.Suggestions == nil {
		return []models.Suggestion{}
	}
	return parsed.Suggestions
}

var suggestionCategories = map[string]bool{
	models.CategorySkills:       true,
	models.CategoryExperience:   true,
	models.CategoryFormat:       true,
	models.CategoryKeywords:     true,
	models.CategoryAchievements: true,
}

var suggestionPriorities = map[string]bool{
	models.PriorityHigh:   true,
	models.PriorityMedium: true,
	models.PriorityLow:    true,
}

// validSuggestion checks an entry against the closed category/priority sets
// and requires the free-text fields to be present.
func validSuggestion(s models.Suggestion) bool {
	return suggestionCategories[s.Category] &&
		suggestionPriorities[s.Priority] &&
		strings.TrimSpace(s.Suggestion) != "" &&
		strings.TrimSpace(s.Impact) != ""
}

// fallbackSuggestions builds advice from the skill gaps alone: one entry per
// missing-skill list plus a standing quantify-your-achievements item.
func fallbackSuggestions(comparison models.SkillComparison) []models.Suggestion {
	suggestions := []models.Suggestion{}

	if len(comparison.MissingRequiredSkills) > 0 {
		suggestions = append(suggestions, models.Suggestion{
			Category:   models.CategorySkills,
			Suggestion: fmt.Sprintf("Add these required skills to your resume: %s", strings.Join(firstN(comparison.MissingRequiredSkills, 3), ", ")),
			Priority:   models.PriorityHigh,
			Impact:     "Critical for passing ATS and initial screening",
		})
	}

	if len(comparison.MissingPreferredSkills) > 0 {
		suggestions = append(suggestions, models.Suggestion{
			Category:   models.CategorySkills,
			Suggestion: fmt.Sprintf("Consider adding these preferred skills: %s", strings.Join(firstN(comparison.MissingPreferredSkills, 3), ", ")),
			Priority:   models.PriorityMedium,
			Impact:     "Will strengthen your application",
		})
	}

	suggestions = append(suggestions, models.Suggestion{
		Category:   models.CategoryAchievements,
		Suggestion: "Quantify your achievements with specific metrics (e.g., 'increased performance by 40%', 'managed team of 5')",
		Priority:   models.PriorityHigh,
		Impact:     "Makes your impact concrete and measurable",
	})

	return suggestions
}

var bulletSplitPattern = regexp.MustCompile(`\n[-•*]\s*`)

// OptimizeBullets implements SuggestionGenerator. An empty bullet pool means
// no provider call at all.
func (s *suggestionGenerator) OptimizeBullets(ctx context.Context, resume *models.ResumeProfile, job *models.JobProfile) []models.BulletRewrite {
	bullets := extractBullets(resume.WorkExperience)
	if len(bullets) == 0 {
		return []models.BulletRewrite{}
	}

	prompt := s.prompts.BuildBulletOptimizationPrompt(truncate(job.RawText, s.limits.BulletJobChars), bullets)

	response, err := s.generator.Generate(ctx, SystemPrompt, prompt)
	if err != nil {
		s.logger.Warn("bullet optimization generation failed, skipping rewrites", zap.Error(err))
		return []models.BulletRewrite{}
	}

	var parsed bulletsResponse
	if err := ParseObject(response, &parsed); err != nil {
		s.logger.Warn("bullet optimization response unparseable, skipping rewrites", zap.Error(err))
		return []models.BulletRewrite{}
	}

	for _, rewrite := range parsed.OptimizedBullets {
		if strings.TrimSpace(rewrite.Original) == "" ||
			strings.TrimSpace(rewrite.Optimized) == "" ||
			strings.TrimSpace(rewrite.ImprovementReason) == "" {
			s.logger.Warn("bullet optimization response contains incomplete entry, skipping rewrites")
			return []models.BulletRewrite{}
		}
	}

	if parsed.OptimizedBullets == nil {
		return []models.BulletRewrite{}
	}
	return parsed.OptimizedBullets
}

// extractBullets harvests rewrite candidates from the first three work
// experience blocks: split on bullet-prefixed lines, keep fragments over 20
// characters, at most two per block and five overall.
func extractBullets(workExperience []string) []string {
	bullets := []string{}

	for _, block := range firstN(workExperience, 3) {
		fragments := bulletSplitPattern.Split(block, -1)

		kept := 0
		for _, fragment := range fragments {
			fragment = strings.TrimSpace(fragment)
			if len(fragment) <= 20 {
				continue
			}
			bullets = append(bullets, fragment)
			kept++
			if kept == 2 {
				break
			}
		}
	}

	return firstN(bullets, 5)
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"resumatch/resume-analyzer/internal/models"
)

// JobParser turns raw job description text into a structured profile, same
// contract as ResumeParser: model extraction with a pattern-based fallback.
type JobParser interface {
	Parse(ctx context.Context, rawText string) (*models.JobProfile, error)
}

type jobParser struct {
	generator  TextGenerator
	prompts    *PromptBuilder
	maxRetries int
	logger     *zap.Logger
}

func NewJobParser(generator TextGenerator, maxRetries int, logger *zap.Logger) JobParser {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &jobParser{
		generator:  generator,
		prompts:    NewPromptBuilder(),
		maxRetries: maxRetries,
		logger:     logger,
	}
}

type jobExtractionResponse struct {
	RequiredSkills          []string `json:"required_skills"`
	PreferredSkills         []string `json:"preferred_skills"`
	Responsibilities        []string `json:"responsibilities"`
	RequiredExperienceYears *float64 `json:"required_experience_years"`
	Qualifications          []string `json:"qualifications"`
}

// Parse implements JobParser.
func (p *jobParser) Parse(ctx context.Context, rawText string) (*models.JobProfile, error) {
	cleaned := CleanText(rawText)
	if len(cleaned) < minJobChars {
		return nil, fmt.Errorf("job description is too short or empty (minimum %d characters)", minJobChars)
	}

	prompt := p.prompts.BuildJobExtractionPrompt(cleaned)

	response, err := p.generator.GenerateWithRetry(ctx, SystemPrompt, prompt, p.maxRetries)
	if err != nil {
		p.logger.Warn("job extraction failed, using pattern fallback", zap.Error(err))
		return p.fallback(cleaned), nil
	}

	var parsed jobExtractionResponse
	if err := ParseObject(response, &parsed); err != nil {
		p.logger.Warn("job extraction response unparseable, using pattern fallback", zap.Error(err))
		return p.fallback(cleaned), nil
	}

	return &models.JobProfile{
		RawText:                 cleaned,
		RequiredSkills:          dedupeSkills(emptyIfNil(parsed.RequiredSkills)),
		PreferredSkills:         dedupeSkills(emptyIfNil(parsed.PreferredSkills)),
		Responsibilities:        emptyIfNil(parsed.Responsibilities),
		RequiredExperienceYears: parsed.RequiredExperienceYears,
		Qualifications:          emptyIfNil(parsed.Qualifications),
	}, nil
}

var sectionSplitPattern = regexp.MustCompile(`(?i)(required|requirements|preferred|nice to have|bonus):`)

// fallback scans for known technology names, assigning them to the required
// or preferred list based on which labelled section they appear in. Without
// labelled sections everything lands in required.
func (p *jobParser) fallback(rawText string) *models.JobProfile {
	textLower := strings.ToLower(rawText)

	requiredSection, preferredSection := splitSections(rawText)

	required := []string{}
	preferred := []string{}
	for _, keyword := range techKeywords {
		keywordLower := strings.ToLower(keyword)
		switch {
		case requiredSection != "" && strings.Contains(strings.ToLower(requiredSection), keywordLower):
			required = append(required, keyword)
		case preferredSection != "" && strings.Contains(strings.ToLower(preferredSection), keywordLower):
			preferred = append(preferred, keyword)
		case strings.Contains(textLower, keywordLower):
			required = append(required, keyword)
		}
	}

	sort.Strings(required)
	sort.Strings(preferred)

	return &models.JobProfile{
		RawText:                 rawText,
		RequiredSkills:          required,
		PreferredSkills:         preferred,
		Responsibilities:        []string{},
		RequiredExperienceYears: extractExperienceYears(textLower),
		Qualifications:          []string{},
	}
}

// splitSections pulls out up to 500 characters following "required:"-style
// and "preferred:"-style headings.
func splitSections(text string) (required, preferred string) {
	indexes := sectionSplitPattern.FindAllStringSubmatchIndex(text, -1)
	for i, idx := range indexes {
		label := strings.ToLower(text[idx[2]:idx[3]])

		end := len(text)
		if i+1 < len(indexes) {
			end = indexes[i+1][0]
		}
		section := text[idx[1]:end]
		if len(section) > 500 {
			section = section[:500]
		}

		switch label {
		case "required", "requirements":
			if required == "" {
				required = section
			}
		case "preferred", "nice to have", "bonus":
			if preferred == "" {
				preferred = section
			}
		}
	}
	return required, preferred
}

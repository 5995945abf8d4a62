package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"resumatch/resume-analyzer/internal/models"
)

// Minimum usable lengths for the two pipeline inputs.
const (
	minResumeChars = 50
	minJobChars    = 20
)

// ResumeParser turns raw resume text into a structured profile. Extraction is
// model-driven with retries; on failure a keyword/regex scan produces a
// skeleton profile so the analysis can still run.
type ResumeParser interface {
	Parse(ctx context.Context, rawText string) (*models.ResumeProfile, error)
}

type resumeParser struct {
	generator  TextGenerator
	prompts    *PromptBuilder
	maxRetries int
	logger     *zap.Logger
}

func NewResumeParser(generator TextGenerator, maxRetries int, logger *zap.Logger) ResumeParser {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &resumeParser{
		generator:  generator,
		prompts:    NewPromptBuilder(),
		maxRetries: maxRetries,
		logger:     logger,
	}
}

type resumeExtractionResponse struct {
	Skills          []string `json:"skills"`
	ExperienceYears *float64 `json:"experience_years"`
	Education       []string `json:"education"`
	Projects        []string `json:"projects"`
	Certifications  []string `json:"certifications"`
	WorkExperience  []string `json:"work_experience"`
}

// Parse implements ResumeParser.
func (p *resumeParser) Parse(ctx context.Context, rawText string) (*models.ResumeProfile, error) {
	cleaned := CleanText(rawText)
	if len(cleaned) < minResumeChars {
		return nil, fmt.Errorf("resume text is too short or empty (minimum %d characters)", minResumeChars)
	}

	prompt := p.prompts.BuildResumeExtractionPrompt(cleaned)

	response, err := p.generator.GenerateWithRetry(ctx, SystemPrompt, prompt, p.maxRetries)
	if err != nil {
		p.logger.Warn("resume extraction failed, using keyword fallback", zap.Error(err))
		return p.fallback(cleaned), nil
	}

	var parsed resumeExtractionResponse
	if err := ParseObject(response, &parsed); err != nil {
		p.logger.Warn("resume extraction response unparseable, using keyword fallback", zap.Error(err))
		return p.fallback(cleaned), nil
	}

	return &models.ResumeProfile{
		RawText:         cleaned,
		Skills:          dedupeSkills(emptyIfNil(parsed.Skills)),
		ExperienceYears: parsed.ExperienceYears,
		Education:       emptyIfNil(parsed.Education),
		Projects:        emptyIfNil(parsed.Projects),
		Certifications:  emptyIfNil(parsed.Certifications),
		WorkExperience:  emptyIfNil(parsed.WorkExperience),
	}, nil
}

// fallback scans for well-known technology names and an explicit years-of-
// experience phrase. Sections it cannot recover stay empty.
func (p *resumeParser) fallback(rawText string) *models.ResumeProfile {
	textLower := strings.ToLower(rawText)

	skills := []string{}
	for _, keyword := range techKeywords {
		if strings.Contains(textLower, strings.ToLower(keyword)) {
			skills = append(skills, keyword)
		}
	}

	return &models.ResumeProfile{
		RawText:         rawText,
		Skills:          skills,
		ExperienceYears: extractExperienceYears(textLower),
		Education:       []string{},
		Projects:        []string{},
		Certifications:  []string{},
		WorkExperience:  []string{},
	}
}

var techKeywords = []string{
	"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Ruby", "Go", "Rust",
	"React", "Angular", "Vue", "Node.js", "Django", "Flask", "FastAPI", "Spring",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins", "Git",
	"SQL", "PostgreSQL", "MySQL", "MongoDB", "Redis",
	"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "scikit-learn",
	"REST API", "GraphQL", "Microservices", "Agile", "Scrum",
}

var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:of\s*)?experience`),
	regexp.MustCompile(`experience\s*:\s*(\d+)\+?\s*years?`),
	regexp.MustCompile(`minimum\s*(?:of\s*)?(\d+)\+?\s*years?`),
}

func extractExperienceYears(textLower string) *float64 {
	for _, pattern := range experiencePatterns {
		match := pattern.FindStringSubmatch(textLower)
		if match == nil {
			continue
		}
		var years float64
		if _, err := fmt.Sscanf(match[1], "%f", &years); err == nil {
			return &years
		}
	}
	return nil
}

// dedupeSkills removes case-insensitive duplicates, keeping first occurrence.
func dedupeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	result := []string{}
	for _, skill := range skills {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, strings.TrimSpace(skill))
	}
	return result
}

var (
	blankLinePattern  = regexp.MustCompile(`\n\s*\n`)
	multiSpacePattern = regexp.MustCompile(` +`)
)

// CleanText normalizes extracted text: collapses blank-line runs, squeezes
// repeated spaces, strips NUL bytes, trims.
func CleanText(text string) string {
	text = blankLinePattern.ReplaceAllString(text, "\n\n")
	text = multiSpacePattern.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "\x00", "")
	return strings.TrimSpace(text)
}

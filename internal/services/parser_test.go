package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeParserRejectsShortInput(t *testing.T) {
	parser := NewResumeParser(&stubGenerator{}, 3, testLogger())

	_, err := parser.Parse(context.Background(), "too short")
	assert.Error(t, err)
}

func TestResumeParserSemanticPath(t *testing.T) {
	generator := &stubGenerator{response: `{
		"skills": ["Python", "python", "Django"],
		"experience_years": 5,
		"education": ["MS Computer Science"],
		"projects": ["Billing pipeline"],
		"certifications": [],
		"work_experience": ["Senior Engineer at Acme (5 years)"]
	}`}
	parser := NewResumeParser(generator, 3, testLogger())

	profile, err := parser.Parse(context.Background(),
		"Senior Engineer with 5 years of experience in Python and Django at Acme.")
	require.NoError(t, err)

	// Case-insensitive dedupe keeps first spelling
	assert.Equal(t, []string{"Python", "Django"}, profile.Skills)
	require.NotNil(t, profile.ExperienceYears)
	assert.Equal(t, 5.0, *profile.ExperienceYears)
	assert.Equal(t, []string{"MS Computer Science"}, profile.Education)
	assert.Equal(t, 3, generator.retriesSeen)
}

func TestResumeParserFallbackExtraction(t *testing.T) {
	generator := &stubGenerator{err: errors.New("provider down")}
	parser := NewResumeParser(generator, 3, testLogger())

	profile, err := parser.Parse(context.Background(),
		"Backend developer with 7 years of experience. Worked with Python, Docker and PostgreSQL daily.")
	require.NoError(t, err)

	assert.Contains(t, profile.Skills, "Python")
	assert.Contains(t, profile.Skills, "Docker")
	assert.Contains(t, profile.Skills, "PostgreSQL")
	require.NotNil(t, profile.ExperienceYears)
	assert.Equal(t, 7.0, *profile.ExperienceYears)
	assert.Empty(t, profile.Education)
	assert.Empty(t, profile.WorkExperience)
}

func TestJobParserRejectsShortInput(t *testing.T) {
	parser := NewJobParser(&stubGenerator{}, 3, testLogger())

	_, err := parser.Parse(context.Background(), "short")
	assert.Error(t, err)
}

func TestJobParserSemanticPath(t *testing.T) {
	generator := &stubGenerator{response: "```json\n" + `{
		"required_skills": ["Python", "FastAPI"],
		"preferred_skills": ["AWS"],
		"responsibilities": ["Design APIs"],
		"required_experience_years": 5,
		"qualifications": ["BS in CS"]
	}` + "\n```"}
	parser := NewJobParser(generator, 3, testLogger())

	profile, err := parser.Parse(context.Background(),
		"Seeking Senior Backend Engineer with 5+ years experience. Required: Python, FastAPI.")
	require.NoError(t, err)

	assert.Equal(t, []string{"Python", "FastAPI"}, profile.RequiredSkills)
	assert.Equal(t, []string{"AWS"}, profile.PreferredSkills)
	require.NotNil(t, profile.RequiredExperienceYears)
	assert.Equal(t, 5.0, *profile.RequiredExperienceYears)
}

func TestJobParserFallbackWithSections(t *testing.T) {
	generator := &stubGenerator{err: errors.New("provider down")}
	parser := NewJobParser(generator, 3, testLogger())

	profile, err := parser.Parse(context.Background(),
		"Backend Engineer.\nRequired: Python, Docker, minimum of 5 years.\nPreferred: AWS and Redis exposure.")
	require.NoError(t, err)

	assert.Contains(t, profile.RequiredSkills, "Python")
	assert.Contains(t, profile.RequiredSkills, "Docker")
	assert.NotContains(t, profile.RequiredSkills, "AWS")
	assert.Contains(t, profile.PreferredSkills, "AWS")
	assert.Contains(t, profile.PreferredSkills, "Redis")
	require.NotNil(t, profile.RequiredExperienceYears)
	assert.Equal(t, 5.0, *profile.RequiredExperienceYears)
}

func TestJobParserFallbackWithoutSectionsDefaultsToRequired(t *testing.T) {
	generator := &stubGenerator{err: errors.New("provider down")}
	parser := NewJobParser(generator, 3, testLogger())

	profile, err := parser.Parse(context.Background(),
		"We use Python and Kubernetes heavily in production systems.")
	require.NoError(t, err)

	assert.Contains(t, profile.RequiredSkills, "Python")
	assert.Contains(t, profile.RequiredSkills, "Kubernetes")
	assert.Empty(t, profile.PreferredSkills)
}

func TestCleanText(t *testing.T) {
	cleaned := CleanText("line one\n\n\n\nline   two\x00 end  ")
	assert.Equal(t, "line one\n\nline two end", cleaned)
}

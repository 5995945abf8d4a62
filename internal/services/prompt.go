package services

import (
	"fmt"
	"strings"
)

// SystemPrompt frames every generative call in the pipeline.
const SystemPrompt = `You are an expert HR analyst and technical recruiter with 15+ years of experience.
You specialize in resume analysis, candidate evaluation, and ATS optimization.
You provide accurate, actionable, and honest assessments.`

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeExtractionPrompt creates the prompt for structured resume parsing
func (pb *PromptBuilder) BuildResumeExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`Extract structured information from the following resume.

Analyze the resume text and extract:
1. Skills: all technical skills, tools, languages, frameworks, methodologies
2. Experience Years: total years of professional experience (estimate if not explicit)
3. Education: degrees, institutions
4. Projects: project names and brief descriptions
5. Certifications: professional certifications
6. Work Experience: job titles, companies, and key responsibilities

IMPORTANT:
- Extract skills comprehensively (don't miss any)
- Be specific (e.g., "Python", "React", "AWS", not just "programming")
- For experience, look for dates and calculate total years
- Return valid JSON only

Example:
Resume: "Senior Software Engineer with 5 years at Google. Skills: Python, Django, PostgreSQL, Docker, AWS.
Built microservices handling 1M requests/day. MS in Computer Science from Stanford."

Output:
{
  "skills": ["Python", "Django", "PostgreSQL", "Docker", "AWS", "Microservices"],
  "experience_years": 5,
  "education": ["MS Computer Science - Stanford University"],
  "projects": ["Microservices architecture handling 1M+ daily requests"],
  "certifications": [],
  "work_experience": ["Senior Software Engineer at Google (5 years)"]
}

Now extract from this resume:

%s

Return ONLY valid JSON with the structure shown above. No additional text.`, resumeText)
}

// BuildJobExtractionPrompt creates the prompt for structured job description parsing
func (pb *PromptBuilder) BuildJobExtractionPrompt(jobDescription string) string {
	return fmt.Sprintf(`Extract structured requirements from the following job description.

Analyze and extract:
1. Required Skills: must-have technical skills explicitly stated
2. Preferred Skills: nice-to-have or preferred qualifications
3. Responsibilities: key job responsibilities
4. Required Experience: minimum years of experience needed
5. Qualifications: educational or certification requirements

IMPORTANT:
- Distinguish between "required" and "preferred" carefully
- Extract all technical skills mentioned
- Look for phrases like "must have", "required", "3+ years", "preferred"
- Return valid JSON only

Example:
Job Description: "Seeking Senior Backend Engineer with 5+ years experience. REQUIRED: Python, FastAPI, PostgreSQL, Docker.
PREFERRED: AWS, Kubernetes. Responsibilities: Design scalable APIs, mentor juniors. BS in CS required."

Output:
{
  "required_skills": ["Python", "FastAPI", "PostgreSQL", "Docker"],
  "preferred_skills": ["AWS", "Kubernetes"],
  "responsibilities": ["Design and implement scalable APIs", "Mentor junior engineers"],
  "required_experience_years": 5,
  "qualifications": ["Bachelor's degree in Computer Science or related field"]
}

Now extract from this job description:

%s

Return ONLY valid JSON with the structure shown above. No additional text.`, jobDescription)
}

// BuildSkillsComparisonPrompt creates the prompt for semantic skill matching
func (pb *PromptBuilder) BuildSkillsComparisonPrompt(
	resumeSkills []string,
	resumeExperienceYears string,
	requiredSkills []string,
	preferredSkills []string,
	requiredExperienceYears string,
) string {
	return fmt.Sprintf(`Compare the candidate's resume against the job requirements and provide a detailed skills analysis.

Resume Skills:
%s

Resume Experience: %s years

Job Required Skills:
%s

Job Preferred Skills:
%s

Job Required Experience: %s years

Analyze and return:
1. matching_skills: skills present in resume that match job requirements
2. missing_required_skills: required skills NOT found in resume
3. missing_preferred_skills: preferred skills NOT found in resume
4. skill_match_percentage: %% of required skills the candidate has (0-100)
5. skills_match_score: score based on skill overlap (0-100)

Scoring guidelines:
- skills_match_score: 100 if all required skills present, proportional reduction for missing skills
- Consider synonyms (e.g., "JS" = "JavaScript", "React.js" = "React")
- Consider related skills (e.g., "TensorFlow" covers some "Deep Learning" need)

Return ONLY valid JSON:
{
  "matching_skills": [],
  "missing_required_skills": [],
  "missing_preferred_skills": [],
  "skill_match_percentage": 0,
  "skills_match_score": 0
}`,
		formatList(resumeSkills),
		resumeExperienceYears,
		formatList(requiredSkills),
		formatList(preferredSkills),
		requiredExperienceYears)
}

// BuildQualityPrompt creates the prompt for resume quality assessment
func (pb *PromptBuilder) BuildQualityPrompt(resumeText string) string {
	return fmt.Sprintf(`Assess the overall quality of this resume from a professional hiring perspective.

Resume Text:
%s

Evaluate and score (0-100) based on:
1. Clarity and structure: well-organized, easy to scan, logical flow
2. Quantified achievements: uses metrics and numbers to show impact
3. Action-oriented language: strong verbs, active voice
4. Relevant content: focused on relevant experience, no fluff
5. ATS-friendliness: proper formatting, keyword usage

Consider:
- Are achievements quantified? (Good: "Reduced latency by 40%%", Bad: "Improved performance")
- Does it use strong verbs? (Good: "Architected", "Spearheaded", Bad: "Responsible for")

Return ONLY a JSON with:
{
  "resume_quality_score": 85,
  "quality_notes": "Well-structured with quantified achievements."
}`, resumeText)
}

// BuildImprovementPrompt creates the prompt for improvement suggestions
func (pb *PromptBuilder) BuildImprovementPrompt(
	resumeText, jobDescription string,
	missingRequired, missingPreferred []string,
	currentMatchScore float64,
) string {
	return fmt.Sprintf(`As an expert resume coach, provide actionable improvement suggestions for this candidate.

Resume Context:
%s

Job Description:
%s

Current Gaps:
- Missing Required Skills: %s
- Missing Preferred Skills: %s
- Match Score: %.2f/100

Provide 5-10 specific, actionable improvement suggestions across these categories:
- skills: technical skills to add or highlight
- experience: how to better present experience
- format: resume structure and formatting improvements
- keywords: ATS-friendly keywords to include
- achievements: how to quantify and strengthen achievements

Each suggestion must include:
- category: one of [skills, experience, format, keywords, achievements]
- suggestion: specific, actionable advice (1-2 sentences)
- priority: high/medium/low based on impact on this job match
- impact: expected improvement if implemented

Return ONLY valid JSON:
{
  "suggestions": [
    {
      "category": "skills",
      "suggestion": "Add 'Docker' prominently in your skills section, as it is required for the role.",
      "priority": "high",
      "impact": "Could increase match score by 10-15 points and pass ATS screening"
    }
  ]
}`,
		resumeText,
		jobDescription,
		formatList(missingRequired),
		formatList(missingPreferred),
		currentMatchScore)
}

// BuildBulletOptimizationPrompt creates the prompt for bullet point rewriting
func (pb *PromptBuilder) BuildBulletOptimizationPrompt(jobDescription string, bullets []string) string {
	var numbered strings.Builder
	for i, bullet := range bullets {
		numbered.WriteString(fmt.Sprintf("%d. %s\n", i+1, bullet))
	}

	return fmt.Sprintf(`Optimize resume bullet points to better match the job description and improve ATS scoring.

Job Description Focus:
%s

Original Bullet Points:
%s
For each bullet point, create an optimized version that:
1. Incorporates relevant keywords from the job description
2. Follows the STAR method (Situation, Task, Action, Result)
3. Quantifies achievements with metrics where possible
4. Uses strong action verbs
5. Maintains truthfulness (don't fabricate, only enhance presentation)

Example:
Original: "Worked on backend development using Python"
Optimized: "Developed scalable backend microservices using Python and FastAPI, serving 100K+ daily active users"
Reason: "Added specific technologies, quantified impact, and used a stronger verb"

Return ONLY valid JSON:
{
  "optimized_bullets": [
    {
      "original": "string",
      "optimized": "string",
      "improvement_reason": "string"
    }
  ]
}`, jobDescription, numbered.String())
}

// BuildFinalVerdictPrompt creates the prompt for the hiring recommendation
func (pb *PromptBuilder) BuildFinalVerdictPrompt(
	overallScore, skillsScore, experienceScore, similarityScore float64,
	matchingSkills, missingRequired []string,
) string {
	return fmt.Sprintf(`Based on all analysis, provide a final hiring recommendation and comprehensive summary.

Analysis Summary:
- Overall Match Score: %.2f/100
- Skills Match: %.2f/100
- Experience Relevance: %.2f/100
- Semantic Similarity: %.2f/100

Skills Analysis:
- Matching Skills: %s
- Missing Required Skills: %s

Generate:
1. final_verdict: one of ["Strong Match", "Moderate Match", "Weak Match"]
   - Strong Match: score >= 75, max 1 missing required skill
   - Moderate Match: score 50-74, or 2-3 missing required skills
   - Weak Match: score < 50, or 4+ missing required skills

2. verdict_explanation: 2-3 sentence justification for the verdict

3. key_strengths: 3-5 strongest points in candidate's favor (specific to this role)

4. key_weaknesses: 3-5 main gaps or concerns (specific to this role)

5. ats_score: estimated ATS (Applicant Tracking System) score (0-100)

Return ONLY valid JSON:
{
  "final_verdict": "Strong Match",
  "verdict_explanation": "string",
  "key_strengths": [],
  "key_weaknesses": [],
  "ats_score": 0
}`,
		overallScore, skillsScore, experienceScore, similarityScore,
		formatList(matchingSkills), formatList(missingRequired))
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

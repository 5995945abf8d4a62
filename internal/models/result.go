package models

// Verdict values the pipeline is allowed to emit.
const (
	VerdictStrongMatch   = "Strong Match"
	VerdictModerateMatch = "Moderate Match"
	VerdictWeakMatch     = "Weak Match"
)

// Suggestion categories and priorities (closed sets).
const (
	CategorySkills       = "skills"
	CategoryExperience   = "experience"
	CategoryFormat       = "format"
	CategoryKeywords     = "keywords"
	CategoryAchievements = "achievements"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// SkillComparison describes how the resume skills cover the job's skill lists.
// matching ∪ missing_required always equals the job's required set.
type SkillComparison struct {
	MatchingSkills         []string `json:"matching_skills"`
	MissingRequiredSkills  []string `json:"missing_required_skills"`
	MissingPreferredSkills []string `json:"missing_preferred_skills"`
	SkillMatchPercentage   float64  `json:"skill_match_percentage"`
}

// ScoreBreakdown holds the four component scores and the weighted overall,
// each clamped to [0,100].
type ScoreBreakdown struct {
	SkillsMatchScore         float64 `json:"skills_match_score"`
	ExperienceRelevanceScore float64 `json:"experience_relevance_score"`
	SemanticSimilarityScore  float64 `json:"semantic_similarity_score"`
	ResumeQualityScore       float64 `json:"resume_quality_score"`
	OverallScore             float64 `json:"overall_score"`
}

type Suggestion struct {
	Category   string `json:"category"`
	Suggestion string `json:"suggestion"`
	Priority   string `json:"priority"`
	Impact     string `json:"impact"`
}

type BulletRewrite struct {
	Original          string `json:"original"`
	Optimized         string `json:"optimized"`
	ImprovementReason string `json:"improvement_reason"`
}

// AnalysisResult is the sole externally visible output of the pipeline.
// Constructed once, never mutated after return.
type AnalysisResult struct {
	MatchScore             float64         `json:"match_score"`
	ScoresBreakdown        ScoreBreakdown  `json:"scores_breakdown"`
	SkillsComparison       SkillComparison `json:"skills_comparison"`
	ImprovementSuggestions []Suggestion    `json:"improvement_suggestions"`
	OptimizedResumeBullets []BulletRewrite `json:"optimized_resume_bullets"`
	FinalVerdict           string          `json:"final_verdict"`
	VerdictExplanation     string          `json:"verdict_explanation"`
	ATSScore               *float64        `json:"ats_score,omitempty"`
	KeyStrengths           []string        `json:"key_strengths"`
	KeyWeaknesses          []string        `json:"key_weaknesses"`
}

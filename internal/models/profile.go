package models

// ResumeProfile is the structured view of one resume. It is built once per
// analysis request and never mutated afterwards.
type ResumeProfile struct {
	RawText         string   `json:"raw_text"`
	Skills          []string `json:"skills"`
	ExperienceYears *float64 `json:"experience_years,omitempty"`
	Education       []string `json:"education"`
	Projects        []string `json:"projects"`
	Certifications  []string `json:"certifications"`
	WorkExperience  []string `json:"work_experience"`
}

// JobProfile is the structured view of one job description, same lifecycle
// as ResumeProfile.
type JobProfile struct {
	RawText                 string   `json:"raw_text"`
	RequiredSkills          []string `json:"required_skills"`
	PreferredSkills         []string `json:"preferred_skills"`
	Responsibilities        []string `json:"responsibilities"`
	RequiredExperienceYears *float64 `json:"required_experience_years,omitempty"`
	Qualifications          []string `json:"qualifications"`
}

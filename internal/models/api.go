package models

// AnalyzeTextRequest is the synchronous analysis payload (resume already text).
type AnalyzeTextRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

// AnalyzeResponse wraps a synchronous analysis outcome.
type AnalyzeResponse struct {
	Success               bool            `json:"success"`
	Result                *AnalysisResult `json:"result,omitempty"`
	Error                 *string         `json:"error,omitempty"`
	ProcessingTimeSeconds float64         `json:"processing_time_seconds"`
}

// QueuedResponse is returned when an analysis is accepted for async processing.
type QueuedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ResultResponse is the polling response for a queued analysis.
type ResultResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	Result       *AnalysisResult `json:"result,omitempty"`
	ErrorMessage *string         `json:"error_message,omitempty"`
}

// SimilarJob is one entry of the similar-jobs vector search.
type SimilarJob struct {
	AnalysisID string  `json:"analysis_id"`
	Score      float32 `json:"score"`
	Snippet    string  `json:"snippet"`
}

type SimilarJobsResponse struct {
	Jobs []SimilarJob `json:"jobs"`
}

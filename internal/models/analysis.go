package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

const (
	StatusQueued     AnalysisStatus = "queued"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

// Analysis is one resume-vs-job scoring request and its outcome. The full
// AnalysisResult is stored as a JSON column once the pipeline completes.
type Analysis struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResumeDocumentID uuid.UUID      `gorm:"type:uuid;not null" json:"resume_document_id"`
	JobText          string         `gorm:"type:text;not null" json:"job_text"`
	Status           AnalysisStatus `gorm:"not null;default:'queued'" json:"status"`
	ResultJSON       *string        `gorm:"type:jsonb" json:"-"`
	ErrorMessage     *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	ResumeDocument Document `gorm:"foreignKey:ResumeDocumentID" json:"-"`
}

func (Analysis) TableName() string {
	return "analyses"
}

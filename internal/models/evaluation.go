package models

import (
	"time"

	"github.com/google/uuid"
)

type EvaluationStatus string

const (
	StatusQueued     EvaluationStatus = "queued"
	StatusProcessing EvaluationStatus = "processing"
	StatusCompleted  EvaluationStatus = "completed"
	StatusFailed     EvaluationStatus = "failed"
)

// Progress checkpoints shown while an evaluation runs. These are fixed
// stages, not a measure of elapsed work.
const (
	StagePreparing  = "Preparing evaluation"
	StageSending    = "Sending proposal to the model"
	StageProcessing = "Processing results"
	StageComplete   = "Evaluation complete"

	ProgressPreparing  = 0
	ProgressSending    = 25
	ProgressProcessing = 75
	ProgressComplete   = 100
)

type Evaluation struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DocumentID   uuid.UUID        `gorm:"type:uuid;not null" json:"document_id"`
	Language     string           `gorm:"type:text;not null;default:'Thai'" json:"language"`
	Status       EvaluationStatus `gorm:"not null;default:'queued'" json:"status"`
	Stage        string           `gorm:"type:text" json:"stage"`
	Progress     int              `gorm:"not null;default:0" json:"progress"`
	ErrorMessage string           `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Document Document   `gorm:"foreignKey:DocumentID" json:"-"`
	Scores   []SdgScore `gorm:"foreignKey:EvaluationID" json:"-"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}

// SdgScore is one parsed line of the model's reply. The score stays a string
// as parsed; chart rows coerce it to an integer at read time.
type SdgScore struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EvaluationID uuid.UUID `gorm:"type:uuid;not null;index" json:"evaluation_id"`
	SdgNumber    int       `gorm:"not null" json:"sdg_number"`
	Score        string    `gorm:"type:text" json:"score"`
	Explanation  string    `gorm:"type:text" json:"explanation"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (SdgScore) TableName() string {
	return "sdg_scores"
}

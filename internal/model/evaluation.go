package model

import (
	"encoding/json"
	"time"
)

// swagger:model Evaluation
type Evaluation struct {
	BaseModel
	ActivityID      uint            `gorm:"index;type:bigint unsigned;not null" json:"activityId"`
	TeacherID       uint            `gorm:"index;type:bigint unsigned;not null" json:"teacherId"`
	Title           string          `gorm:"size:255;not null" json:"title"`
	Type            string          `gorm:"size:50;not null" json:"type"`
	Questions       json.RawMessage `gorm:"type:json" json:"questions"` // shape depends on Type
	StartAt         *time.Time      `json:"startAt,omitempty"`
	DueAt           *time.Time      `json:"dueAt,omitempty"`
	AttemptsAllowed int             `gorm:"default:1" json:"attemptsAllowed"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}

// EvaluationResponse is one attempt. Score is set server-side at submission
// time for auto-scorable types and stays nil otherwise; legacy rows with a
// nil score are mined by the extraction heuristic on the read path.
type EvaluationResponse struct {
	UUIDBase
	EvaluationID uint            `gorm:"uniqueIndex:idx_eval_student_attempt;type:bigint unsigned" json:"evaluationId"`
	StudentID    uint            `gorm:"uniqueIndex:idx_eval_student_attempt;type:bigint unsigned" json:"studentId"`
	AttemptNo    int             `gorm:"uniqueIndex:idx_eval_student_attempt;default:1" json:"attemptNo"`
	Answers      json.RawMessage `gorm:"type:json" json:"answers"`
	Score        *float64        `json:"score"` // 0..100 when present
	CompletedAt  time.Time       `json:"completedAt"`

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (EvaluationResponse) TableName() string {
	return "student_responses"
}

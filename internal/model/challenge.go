package model

import (
	"encoding/json"
	"time"
)

type ReviewStatus string

const (
	ReviewPending       ReviewStatus = "pending"
	ReviewApproved      ReviewStatus = "approved"
	ReviewNeedsRevision ReviewStatus = "needs_revision"
)

// Challenge is a class-scoped assessment, optionally rubric-graded.
// swagger:model Challenge
type Challenge struct {
	BaseModel
	ClassID         uint            `gorm:"index;type:bigint unsigned;not null" json:"classId"`
	TeacherID       uint            `gorm:"index;type:bigint unsigned;not null" json:"teacherId"`
	Title           string          `gorm:"size:255;not null" json:"title"`
	Type            string          `gorm:"size:50;not null" json:"type"`
	Payload         json.RawMessage `gorm:"type:json" json:"payload"`
	Rubric          json.RawMessage `gorm:"type:json" json:"rubric,omitempty"` // [{id,label,weight}]
	MaxScore        float64         `gorm:"default:100" json:"maxScore"`
	StartAt         *time.Time      `json:"startAt,omitempty"`
	DueAt           *time.Time      `json:"dueAt,omitempty"`
	AttemptsAllowed int             `gorm:"default:1" json:"attemptsAllowed"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// ChallengeResponse is created by a student submission and later mutated by
// at most one teacher review; review fields are teacher-owned after that.
type ChallengeResponse struct {
	UUIDBase
	ChallengeID     uint            `gorm:"uniqueIndex:idx_chal_student_attempt;type:bigint unsigned" json:"challengeId"`
	StudentID       uint            `gorm:"uniqueIndex:idx_chal_student_attempt;type:bigint unsigned" json:"studentId"`
	AttemptNo       int             `gorm:"uniqueIndex:idx_chal_student_attempt;default:1" json:"attemptNo"`
	Answers         json.RawMessage `gorm:"type:json" json:"answers"`
	Score           *float64        `json:"score"`
	ReviewStatus    ReviewStatus    `gorm:"size:20;default:'pending'" json:"reviewStatus"`
	RubricScores    json.RawMessage `gorm:"type:json" json:"rubricScores,omitempty"` // criterion id -> points
	TeacherFeedback string          `gorm:"type:text" json:"teacherFeedback"`
	ReviewerID      *uint           `gorm:"type:bigint unsigned" json:"reviewerId,omitempty"`
	ReviewedAt      *time.Time      `json:"reviewedAt,omitempty"`
	CompletedAt     time.Time       `json:"completedAt"`

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (ChallengeResponse) TableName() string {
	return "challenge_responses"
}

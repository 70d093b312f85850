package model

import "time"

// swagger:model Lesson
type Lesson struct {
	BaseModel
	ClassID     uint   `gorm:"index;type:bigint unsigned;not null" json:"classId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	VideoURL    string `gorm:"size:255" json:"videoUrl"` // signed lesson video object key
	Order       int    `gorm:"default:0" json:"order"`
	IsPublished bool   `gorm:"default:false" json:"isPublished"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// Activity is the unit a lesson is broken into; evaluations hang off
// activities, never off lessons directly.
type Activity struct {
	BaseModel
	LessonID    uint   `gorm:"index;type:bigint unsigned;not null" json:"lessonId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Order       int    `gorm:"default:0" json:"order"`
}

func (Activity) TableName() string {
	return "activities"
}

// StudentProgress records per-lesson completion, consumed read-only by the
// metrics rollups.
type StudentProgress struct {
	BaseModel
	StudentID   uint       `gorm:"uniqueIndex:idx_student_lesson;type:bigint unsigned" json:"studentId"`
	LessonID    uint       `gorm:"uniqueIndex:idx_student_lesson;type:bigint unsigned" json:"lessonId"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (StudentProgress) TableName() string {
	return "student_progress"
}

package model

import "time"

// swagger:model Class
type Class struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	TeacherID   uint   `gorm:"index;type:bigint unsigned;not null" json:"teacherId"`
	CoverURL    string `gorm:"size:255" json:"coverUrl"`
	InviteCode  string `gorm:"size:16;uniqueIndex" json:"inviteCode"`

	Teacher *User `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

func (Class) TableName() string {
	return "classes"
}

type ClassEnrollment struct {
	BaseModel
	ClassID    uint      `gorm:"uniqueIndex:idx_class_student;type:bigint unsigned" json:"classId"`
	StudentID  uint      `gorm:"uniqueIndex:idx_class_student;type:bigint unsigned" json:"studentId"`
	EnrolledAt time.Time `json:"enrolledAt"`

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (ClassEnrollment) TableName() string {
	return "class_enrollments"
}

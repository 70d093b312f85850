package repository

import (
	"signclass_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var l model.Lesson
	err := r.DB.First(&l, id).Error
	return &l, err
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Lesson{}, id).Error
}

func (r *LessonRepository) ListByClass(classID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("class_id = ?", classID).Order("`order` asc, created_at asc").Find(&lessons).Error
	return lessons, err
}

// Activity methods

func (r *LessonRepository) CreateActivity(activity *model.Activity) error {
	return r.DB.Create(activity).Error
}

func (r *LessonRepository) FindActivityByID(id uint) (*model.Activity, error) {
	var a model.Activity
	err := r.DB.First(&a, id).Error
	return &a, err
}

func (r *LessonRepository) UpdateActivity(activity *model.Activity) error {
	return r.DB.Save(activity).Error
}

func (r *LessonRepository) DeleteActivity(id uint) error {
	return r.DB.Delete(&model.Activity{}, id).Error
}

func (r *LessonRepository) ListActivities(lessonID uint) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.DB.Where("lesson_id = ?", lessonID).Order("`order` asc, created_at asc").Find(&activities).Error
	return activities, err
}

// Progress methods

// UpsertProgress marks a lesson complete (or not) for a student, one row per
// (student, lesson) pair.
func (r *LessonRepository) UpsertProgress(studentID, lessonID uint, completed bool) error {
	var p model.StudentProgress
	err := r.DB.Where("student_id = ? AND lesson_id = ?", studentID, lessonID).First(&p).Error
	if err == gorm.ErrRecordNotFound {
		p = model.StudentProgress{StudentID: studentID, LessonID: lessonID}
	} else if err != nil {
		return err
	}

	p.Completed = completed
	if completed {
		now := time.Now()
		p.CompletedAt = &now
	} else {
		p.CompletedAt = nil
	}
	return r.DB.Save(&p).Error
}

func (r *LessonRepository) ProgressByStudent(studentID uint, lessonIDs []uint) ([]model.StudentProgress, error) {
	if len(lessonIDs) == 0 {
		return nil, nil
	}
	var rows []model.StudentProgress
	err := r.DB.Where("student_id = ? AND lesson_id IN ?", studentID, lessonIDs).Find(&rows).Error
	return rows, err
}

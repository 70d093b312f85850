package repository

import (
	"signclass_backend/internal/model"

	"gorm.io/gorm"
)

type ClassRepository struct {
	DB *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{DB: db}
}

func (r *ClassRepository) Create(class *model.Class) error {
	return r.DB.Create(class).Error
}

func (r *ClassRepository) FindByID(id uint) (*model.Class, error) {
	var c model.Class
	err := r.DB.Preload("Teacher").First(&c, id).Error
	return &c, err
}

func (r *ClassRepository) FindByInviteCode(code string) (*model.Class, error) {
	var c model.Class
	err := r.DB.Where("invite_code = ?", code).First(&c).Error
	return &c, err
}

func (r *ClassRepository) Update(class *model.Class) error {
	return r.DB.Save(class).Error
}

func (r *ClassRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Class{}, id).Error
}

func (r *ClassRepository) ListByTeacher(teacherID uint) ([]model.Class, error) {
	var classes []model.Class
	err := r.DB.Where("teacher_id = ?", teacherID).Order("created_at desc").Find(&classes).Error
	return classes, err
}

func (r *ClassRepository) ListByStudent(studentID uint) ([]model.Class, error) {
	var classes []model.Class
	err := r.DB.
		Joins("JOIN class_enrollments ON class_enrollments.class_id = classes.id").
		Where("class_enrollments.student_id = ? AND class_enrollments.deleted_at IS NULL", studentID).
		Order("classes.created_at desc").
		Find(&classes).Error
	return classes, err
}

func (r *ClassRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Class{}).Count(&count).Error
	return count, err
}

// Enrollment methods

func (r *ClassRepository) Enroll(enrollment *model.ClassEnrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *ClassRepository) Unenroll(classID, studentID uint) error {
	return r.DB.Where("class_id = ? AND student_id = ?", classID, studentID).
		Delete(&model.ClassEnrollment{}).Error
}

func (r *ClassRepository) IsEnrolled(classID, studentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ClassEnrollment{}).
		Where("class_id = ? AND student_id = ?", classID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (r *ClassRepository) Roster(classID uint) ([]model.ClassEnrollment, error) {
	var enrollments []model.ClassEnrollment
	err := r.DB.Preload("Student").
		Where("class_id = ?", classID).
		Order("enrolled_at asc").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *ClassRepository) EnrollmentCount(classID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ClassEnrollment{}).Where("class_id = ?", classID).Count(&count).Error
	return count, err
}

func (r *ClassRepository) StudentIDs(classID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.ClassEnrollment{}).
		Where("class_id = ?", classID).
		Pluck("student_id", &ids).Error
	return ids, err
}

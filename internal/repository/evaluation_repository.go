package repository

import (
	"signclass_backend/internal/model"

	"gorm.io/gorm"
)

type EvaluationRepository struct {
	DB *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{DB: db}
}

func (r *EvaluationRepository) Create(eval *model.Evaluation) error {
	return r.DB.Create(eval).Error
}

func (r *EvaluationRepository) FindByID(id uint) (*model.Evaluation, error) {
	var e model.Evaluation
	err := r.DB.First(&e, id).Error
	return &e, err
}

func (r *EvaluationRepository) Update(eval *model.Evaluation) error {
	return r.DB.Save(eval).Error
}

func (r *EvaluationRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Evaluation{}, id).Error
}

func (r *EvaluationRepository) ListByActivity(activityID uint) ([]model.Evaluation, error) {
	var evals []model.Evaluation
	err := r.DB.Where("activity_id = ?", activityID).Order("created_at asc").Find(&evals).Error
	return evals, err
}

func (r *EvaluationRepository) ListByTeacher(teacherID uint, page, limit int) ([]model.Evaluation, int64, error) {
	var evals []model.Evaluation
	var total int64
	query := r.DB.Model(&model.Evaluation{}).Where("teacher_id = ?", teacherID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&evals).Error
	return evals, total, err
}

func (r *EvaluationRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Evaluation{}).Count(&count).Error
	return count, err
}

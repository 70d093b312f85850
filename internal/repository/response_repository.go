package repository

import (
	"signclass_backend/internal/model"
	"signclass_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EvaluationResponseRepository struct {
	DB *gorm.DB
}

func NewEvaluationResponseRepository(db *gorm.DB) *EvaluationResponseRepository {
	return &EvaluationResponseRepository{DB: db}
}

// CreateWithAttemptGuard admits and inserts an attempt atomically: the
// evaluation row is locked, prior attempts are recounted inside the same
// transaction, and the insert carries a unique (evaluation, student,
// attempt_no) index. Two racing submissions cannot both pass the count; the
// pre-flight policy check in the service is advisory only.
func (r *EvaluationResponseRepository) CreateWithAttemptGuard(resp *model.EvaluationResponse) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var eval model.Evaluation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&eval, resp.EvaluationID).Error; err != nil {
			return err
		}

		var used int64
		if err := tx.Model(&model.EvaluationResponse{}).
			Where("evaluation_id = ? AND student_id = ?", resp.EvaluationID, resp.StudentID).
			Count(&used).Error; err != nil {
			return err
		}

		allowed := eval.AttemptsAllowed
		if allowed < 1 {
			allowed = 1
		}
		if int(used) >= allowed {
			return util.ErrAttemptsExhausted
		}

		resp.AttemptNo = int(used) + 1
		return tx.Create(resp).Error
	})
}

func (r *EvaluationResponseRepository) CountAttempts(evaluationID, studentID uint) (int, error) {
	var count int64
	err := r.DB.Model(&model.EvaluationResponse{}).
		Where("evaluation_id = ? AND student_id = ?", evaluationID, studentID).
		Count(&count).Error
	return int(count), err
}

func (r *EvaluationResponseRepository) FindByID(id string) (*model.EvaluationResponse, error) {
	var resp model.EvaluationResponse
	err := r.DB.Preload("Student").Where("id = ?", id).First(&resp).Error
	return &resp, err
}

func (r *EvaluationResponseRepository) ListByStudentAndEvaluation(studentID, evaluationID uint) ([]model.EvaluationResponse, error) {
	var resps []model.EvaluationResponse
	err := r.DB.Where("student_id = ? AND evaluation_id = ?", studentID, evaluationID).
		Order("attempt_no asc").
		Find(&resps).Error
	return resps, err
}

func (r *EvaluationResponseRepository) ListByEvaluation(evaluationID uint) ([]model.EvaluationResponse, error) {
	var resps []model.EvaluationResponse
	err := r.DB.Preload("Student").
		Where("evaluation_id = ?", evaluationID).
		Order("completed_at desc").
		Find(&resps).Error
	return resps, err
}

func (r *EvaluationResponseRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.EvaluationResponse{}).Count(&count).Error
	return count, err
}

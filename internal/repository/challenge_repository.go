package repository

import (
	"signclass_backend/internal/model"
	"signclass_backend/internal/util"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

func (r *ChallengeRepository) Create(challenge *model.Challenge) error {
	return r.DB.Create(challenge).Error
}

func (r *ChallengeRepository) FindByID(id uint) (*model.Challenge, error) {
	var c model.Challenge
	err := r.DB.First(&c, id).Error
	return &c, err
}

func (r *ChallengeRepository) Update(challenge *model.Challenge) error {
	return r.DB.Save(challenge).Error
}

func (r *ChallengeRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Challenge{}, id).Error
}

func (r *ChallengeRepository) ListByClass(classID uint) ([]model.Challenge, error) {
	var challenges []model.Challenge
	err := r.DB.Where("class_id = ?", classID).Order("created_at desc").Find(&challenges).Error
	return challenges, err
}

func (r *ChallengeRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Challenge{}).Count(&count).Error
	return count, err
}

// Response methods

// CreateResponseWithAttemptGuard mirrors the evaluation-side guard: lock,
// recount, insert, all in one transaction.
func (r *ChallengeRepository) CreateResponseWithAttemptGuard(resp *model.ChallengeResponse) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var challenge model.Challenge
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&challenge, resp.ChallengeID).Error; err != nil {
			return err
		}

		var used int64
		if err := tx.Model(&model.ChallengeResponse{}).
			Where("challenge_id = ? AND student_id = ?", resp.ChallengeID, resp.StudentID).
			Count(&used).Error; err != nil {
			return err
		}

		allowed := challenge.AttemptsAllowed
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

func (r *ChallengeRepository) CountAttempts(challengeID, studentID uint) (int, error) {
	var count int64
	err := r.DB.Model(&model.ChallengeResponse{}).
		Where("challenge_id = ? AND student_id = ?", challengeID, studentID).
		Count(&count).Error
	return int(count), err
}

func (r *ChallengeRepository) FindResponseByID(id string) (*model.ChallengeResponse, error) {
	var resp model.ChallengeResponse
	err := r.DB.Preload("Student").Where("id = ?", id).First(&resp).Error
	return &resp, err
}

// ApplyReview persists a teacher review with optimistic concurrency: the
// update only lands if reviewed_at still holds the value the reviewer read.
// A lost race reports ErrReviewConflict instead of silently overwriting.
func (r *ChallengeRepository) ApplyReview(resp *model.ChallengeResponse, priorReviewedAt *time.Time) error {
	query := r.DB.Model(&model.ChallengeResponse{}).Where("id = ?", resp.ID)
	if priorReviewedAt == nil {
		query = query.Where("reviewed_at IS NULL")
	} else {
		query = query.Where("reviewed_at = ?", *priorReviewedAt)
	}

	result := query.Updates(map[string]interface{}{
		"score":            resp.Score,
		"rubric_scores":    resp.RubricScores,
		"review_status":    resp.ReviewStatus,
		"teacher_feedback": resp.TeacherFeedback,
		"reviewer_id":      resp.ReviewerID,
		"reviewed_at":      resp.ReviewedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrReviewConflict
	}
	return nil
}

func (r *ChallengeRepository) ListResponses(challengeID uint) ([]model.ChallengeResponse, error) {
	var resps []model.ChallengeResponse
	err := r.DB.Preload("Student").
		Where("challenge_id = ?", challengeID).
		Order("completed_at desc").
		Find(&resps).Error
	return resps, err
}

func (r *ChallengeRepository) ListResponsesByStudent(studentID, challengeID uint) ([]model.ChallengeResponse, error) {
	var resps []model.ChallengeResponse
	err := r.DB.Where("student_id = ? AND challenge_id = ?", studentID, challengeID).
		Order("attempt_no asc").
		Find(&resps).Error
	return resps, err
}

// ListPendingReviews returns unreviewed responses across all challenges
// authored by the teacher, oldest first.
func (r *ChallengeRepository) ListPendingReviews(teacherID uint, page, limit int) ([]model.ChallengeResponse, int64, error) {
	var resps []model.ChallengeResponse
	var total int64

	query := r.DB.Model(&model.ChallengeResponse{}).
		Joins("JOIN challenges ON challenges.id = challenge_responses.challenge_id").
		Where("challenges.teacher_id = ? AND challenges.deleted_at IS NULL", teacherID).
		Where("challenge_responses.review_status = ?", model.ReviewPending)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("Student").
		Order("challenge_responses.completed_at asc").
		Offset(offset).Limit(limit).
		Find(&resps).Error
	return resps, total, err
}

func (r *ChallengeRepository) CountResponses() (int64, error) {
	var count int64
	err := r.DB.Model(&model.ChallengeResponse{}).Count(&count).Error
	return count, err
}

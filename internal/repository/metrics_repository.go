package repository

import (
	"signclass_backend/internal/model"

	"gorm.io/gorm"
)

// MetricsRepository is the one place the class → lesson → activity →
// evaluation → response traversal lives. Every stage short-circuits on an
// empty id list from the stage before: an empty IN filter is never sent to
// the database, and an empty prior stage always yields an empty result.
type MetricsRepository struct {
	DB *gorm.DB
}

func NewMetricsRepository(db *gorm.DB) *MetricsRepository {
	return &MetricsRepository{DB: db}
}

func (r *MetricsRepository) LessonIDs(classID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Lesson{}).Where("class_id = ?", classID).Pluck("id", &ids).Error
	return ids, err
}

func (r *MetricsRepository) ActivityIDs(lessonIDs []uint) ([]uint, error) {
	if len(lessonIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.DB.Model(&model.Activity{}).Where("lesson_id IN ?", lessonIDs).Pluck("id", &ids).Error
	return ids, err
}

func (r *MetricsRepository) EvaluationIDs(activityIDs []uint) ([]uint, error) {
	if len(activityIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.DB.Model(&model.Evaluation{}).Where("activity_id IN ?", activityIDs).Pluck("id", &ids).Error
	return ids, err
}

func (r *MetricsRepository) ResponsesForEvaluations(evaluationIDs []uint) ([]model.EvaluationResponse, error) {
	if len(evaluationIDs) == 0 {
		return nil, nil
	}
	var resps []model.EvaluationResponse
	err := r.DB.Where("evaluation_id IN ?", evaluationIDs).Find(&resps).Error
	return resps, err
}

// ClassEvaluationResponses walks the whole hierarchy for one class.
func (r *MetricsRepository) ClassEvaluationResponses(classID uint) ([]model.EvaluationResponse, int64, error) {
	lessonIDs, err := r.LessonIDs(classID)
	if err != nil {
		return nil, 0, err
	}
	activityIDs, err := r.ActivityIDs(lessonIDs)
	if err != nil {
		return nil, 0, err
	}
	evaluationIDs, err := r.EvaluationIDs(activityIDs)
	if err != nil {
		return nil, 0, err
	}
	resps, err := r.ResponsesForEvaluations(evaluationIDs)
	return resps, int64(len(evaluationIDs)), err
}

func (r *MetricsRepository) ChallengeIDs(classID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Challenge{}).Where("class_id = ?", classID).Pluck("id", &ids).Error
	return ids, err
}

func (r *MetricsRepository) ChallengesByIDs(ids []uint) ([]model.Challenge, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var challenges []model.Challenge
	err := r.DB.Where("id IN ?", ids).Find(&challenges).Error
	return challenges, err
}

func (r *MetricsRepository) ResponsesForChallenges(challengeIDs []uint) ([]model.ChallengeResponse, error) {
	if len(challengeIDs) == 0 {
		return nil, nil
	}
	var resps []model.ChallengeResponse
	err := r.DB.Where("challenge_id IN ?", challengeIDs).Find(&resps).Error
	return resps, err
}

// CompletedLessonCount counts completed (student, lesson) pairs within the
// given sets, for the class progress rollup.
func (r *MetricsRepository) CompletedLessonCount(studentIDs, lessonIDs []uint) (int64, error) {
	if len(studentIDs) == 0 || len(lessonIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.StudentProgress{}).
		Where("student_id IN ? AND lesson_id IN ? AND completed = ?", studentIDs, lessonIDs, true).
		Count(&count).Error
	return count, err
}

// AllClassIDsByTeacher supports the per-teacher rollup in platform metrics.
func (r *MetricsRepository) AllClassIDsByTeacher() (map[uint][]uint, error) {
	var classes []model.Class
	if err := r.DB.Select("id", "teacher_id").Find(&classes).Error; err != nil {
		return nil, err
	}
	byTeacher := make(map[uint][]uint, len(classes))
	for _, c := range classes {
		byTeacher[c.TeacherID] = append(byTeacher[c.TeacherID], c.ID)
	}
	return byTeacher, nil
}

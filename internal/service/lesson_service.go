package service

import (
	"signclass_backend/internal/model"
	"signclass_backend/internal/repository"
	"signclass_backend/internal/util"
)

type LessonService struct {
	LessonRepo *repository.LessonRepository
	ClassRepo  *repository.ClassRepository
}

func NewLessonService(lessonRepo *repository.LessonRepository, classRepo *repository.ClassRepository) *LessonService {
	return &LessonService{
		LessonRepo: lessonRepo,
		ClassRepo:  classRepo,
	}
}

type LessonRequest struct {
	ClassID     uint   `json:"classId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
	Order       int    `json:"order"`
	IsPublished bool   `json:"isPublished"`
}

func (s *LessonService) ownsClass(teacherID, classID uint) error {
	class, err := s.ClassRepo.FindByID(classID)
	if err != nil {
		return err
	}
	if class.TeacherID != teacherID {
		return util.ErrPermissionDenied
	}
	return nil
}

func (s *LessonService) Create(teacherID uint, req LessonRequest) (*model.Lesson, error) {
	if err := s.ownsClass(teacherID, req.ClassID); err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		ClassID:     req.ClassID,
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		Order:       req.Order,
		IsPublished: req.IsPublished,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) Update(teacherID, id uint, req LessonRequest) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.ownsClass(teacherID, lesson.ClassID); err != nil {
		return nil, err
	}

	lesson.Title = req.Title
	lesson.Description = req.Description
	lesson.VideoURL = req.VideoURL
	lesson.Order = req.Order
	lesson.IsPublished = req.IsPublished
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) Delete(teacherID, id uint) error {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.ownsClass(teacherID, lesson.ClassID); err != nil {
		return err
	}
	return s.LessonRepo.Delete(id)
}

func (s *LessonService) Get(id uint) (*model.Lesson, error) {
	return s.LessonRepo.FindByID(id)
}

func (s *LessonService) ListByClass(classID uint) ([]model.Lesson, error) {
	return s.LessonRepo.ListByClass(classID)
}

type ActivityRequest struct {
	LessonID    uint   `json:"lessonId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

func (s *LessonService) CreateActivity(teacherID uint, req ActivityRequest) (*model.Activity, error) {
	lesson, err := s.LessonRepo.FindByID(req.LessonID)
	if err != nil {
		return nil, err
	}
	if err := s.ownsClass(teacherID, lesson.ClassID); err != nil {
		return nil, err
	}

	activity := &model.Activity{
		LessonID:    req.LessonID,
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := s.LessonRepo.CreateActivity(activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *LessonService) UpdateActivity(teacherID, id uint, req ActivityRequest) (*model.Activity, error) {
	activity, err := s.LessonRepo.FindActivityByID(id)
	if err != nil {
		return nil, err
	}
	lesson, err := s.LessonRepo.FindByID(activity.LessonID)
	if err != nil {
		return nil, err
	}
	if err := s.ownsClass(teacherID, lesson.ClassID); err != nil {
		return nil, err
	}

	activity.Title = req.Title
	activity.Description = req.Description
	activity.Order = req.Order
	if err := s.LessonRepo.UpdateActivity(activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *LessonService) DeleteActivity(teacherID, id uint) error {
	activity, err := s.LessonRepo.FindActivityByID(id)
	if err != nil {
		return err
	}
	lesson, err := s.LessonRepo.FindByID(activity.LessonID)
	if err != nil {
		return err
	}
	if err := s.ownsClass(teacherID, lesson.ClassID); err != nil {
		return err
	}
	return s.LessonRepo.DeleteActivity(id)
}

func (s *LessonService) ListActivities(lessonID uint) ([]model.Activity, error) {
	return s.LessonRepo.ListActivities(lessonID)
}

// MarkProgress records a lesson as completed (or not) for a student.
func (s *LessonService) MarkProgress(studentID, lessonID uint, completed bool) error {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return err
	}

	enrolled, err := s.ClassRepo.IsEnrolled(lesson.ClassID, studentID)
	if err != nil {
		return err
	}
	if !enrolled {
		return util.ErrNotEnrolled
	}
	return s.LessonRepo.UpsertProgress(studentID, lessonID, completed)
}

// ClassProgress reports a student's completion across a class's lessons.
type ClassProgress struct {
	TotalLessons     int     `json:"totalLessons"`
	CompletedLessons int     `json:"completedLessons"`
	Percentage       float64 `json:"percentage"`
}

func (s *LessonService) ClassProgress(studentID, classID uint) (*ClassProgress, error) {
	lessons, err := s.LessonRepo.ListByClass(classID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(lessons))
	for _, l := range lessons {
		ids = append(ids, l.ID)
	}

	progress, err := s.LessonRepo.ProgressByStudent(studentID, ids)
	if err != nil {
		return nil, err
	}

	completed := 0
	for _, p := range progress {
		if p.Completed {
			completed++
		}
	}

	result := &ClassProgress{
		TotalLessons:     len(lessons),
		CompletedLessons: completed,
	}
	if len(lessons) > 0 {
		result.Percentage = float64(completed) / float64(len(lessons)) * 100
	}
	return result, nil
}

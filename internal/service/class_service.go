package service

import (
	"crypto/rand"
	"errors"
	"math/big"
	"signclass_backend/internal/model"
	"signclass_backend/internal/repository"
	"signclass_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type ClassService struct {
	ClassRepo *repository.ClassRepository
	UserRepo  *repository.UserRepository
}

func NewClassService(classRepo *repository.ClassRepository, userRepo *repository.UserRepository) *ClassService {
	return &ClassService{
		ClassRepo: classRepo,
		UserRepo:  userRepo,
	}
}

const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateInviteCode returns an 8-char code without ambiguous characters.
func generateInviteCode() (string, error) {
	code := make([]byte, 8)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(inviteCodeAlphabet))))
		if err != nil {
			return "", err
		}
		code[i] = inviteCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

type ClassRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CoverURL    string `json:"coverUrl"`
}

func (s *ClassService) Create(teacherID uint, req ClassRequest) (*model.Class, error) {
	code, err := generateInviteCode()
	if err != nil {
		return nil, err
	}

	class := &model.Class{
		Name:        req.Name,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		TeacherID:   teacherID,
		InviteCode:  code,
	}
	if err := s.ClassRepo.Create(class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *ClassService) Update(teacherID, id uint, req ClassRequest) (*model.Class, error) {
	class, err := s.ClassRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if class.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}

	class.Name = req.Name
	class.Description = req.Description
	if req.CoverURL != "" {
		class.CoverURL = req.CoverURL
	}
	if err := s.ClassRepo.Update(class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *ClassService) Delete(teacherID, id uint) error {
	class, err := s.ClassRepo.FindByID(id)
	if err != nil {
		return err
	}
	if class.TeacherID != teacherID {
		return util.ErrPermissionDenied
	}
	return s.ClassRepo.Delete(id)
}

func (s *ClassService) Get(id uint) (*model.Class, error) {
	return s.ClassRepo.FindByID(id)
}

func (s *ClassService) ListForTeacher(teacherID uint) ([]model.Class, error) {
	return s.ClassRepo.ListByTeacher(teacherID)
}

func (s *ClassService) ListForStudent(studentID uint) ([]model.Class, error) {
	return s.ClassRepo.ListByStudent(studentID)
}

// Join enrolls a student through an invite code.
func (s *ClassService) Join(studentID uint, inviteCode string) (*model.Class, error) {
	class, err := s.ClassRepo.FindByInviteCode(inviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid invite code")
		}
		return nil, err
	}

	enrolled, err := s.ClassRepo.IsEnrolled(class.ID, studentID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, util.ErrAlreadyEnrolled
	}

	err = s.ClassRepo.Enroll(&model.ClassEnrollment{
		ClassID:    class.ID,
		StudentID:  studentID,
		EnrolledAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	return class, nil
}

func (s *ClassService) Leave(studentID, classID uint) error {
	enrolled, err := s.ClassRepo.IsEnrolled(classID, studentID)
	if err != nil {
		return err
	}
	if !enrolled {
		return util.ErrNotEnrolled
	}
	return s.ClassRepo.Unenroll(classID, studentID)
}

// RemoveStudent lets the owning teacher drop a student from the roster.
func (s *ClassService) RemoveStudent(teacherID, classID, studentID uint) error {
	class, err := s.ClassRepo.FindByID(classID)
	if err != nil {
		return err
	}
	if class.TeacherID != teacherID {
		return util.ErrPermissionDenied
	}
	return s.ClassRepo.Unenroll(classID, studentID)
}

func (s *ClassService) Roster(teacherID, classID uint) ([]model.ClassEnrollment, error) {
	class, err := s.ClassRepo.FindByID(classID)
	if err != nil {
		return nil, err
	}
	if class.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}
	return s.ClassRepo.Roster(classID)
}

// CanAccess reports whether a user may read class content: the owning
// teacher, an enrolled student, or an admin.
func (s *ClassService) CanAccess(claims *util.Claims, classID uint) (bool, error) {
	if claims.Role == model.Admin {
		return true, nil
	}

	class, err := s.ClassRepo.FindByID(classID)
	if err != nil {
		return false, err
	}
	if class.TeacherID == claims.UserID {
		return true, nil
	}
	return s.ClassRepo.IsEnrolled(classID, claims.UserID)
}

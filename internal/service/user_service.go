package service

import (
	"signclass_backend/internal/model"
	"signclass_backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	return s.UserRepo.FindByID(userID)
}

type ProfileUpdate struct {
	Name         string `json:"name"`
	Avatar       string `json:"avatar"`
	SignLanguage string `json:"signLanguage"`
	Language     string `json:"language"`
	IsDeaf       *bool  `json:"isDeaf"`
}

func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Avatar != "" {
		user.Avatar = update.Avatar
	}
	if update.SignLanguage != "" {
		user.SignLanguage = update.SignLanguage
	}
	if update.Language != "" {
		user.Language = update.Language
	}
	if update.IsDeaf != nil {
		user.IsDeaf = *update.IsDeaf
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.UserRepo.Update(user)
}

func (s *UserService) ListByRole(role model.UserRole, page, pageSize int) ([]model.User, int64, error) {
	return s.UserRepo.ListByRole(role, page, pageSize)
}

func (s *UserService) SetDisabled(userID uint, disabled bool) error {
	return s.UserRepo.SetDisabled(userID, disabled)
}

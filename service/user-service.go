package service

import (
	"carwash/app_error"
	"carwash/auth"
	"carwash/repository"
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrInvalidCredentials = app_error.New(401, "invalid email or password")

type UserService struct {
	userRepository *repository.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		userRepository: repository.NewUserRepository(db),
	}
}

func (s *UserService) GetUserById(userId int) (*repository.User, error) {
	return s.userRepository.GetUserById(userId)
}

// Authenticate returns the user and a freshly signed token.
func (s *UserService) Authenticate(email string, password string) (*repository.User, string, error) {
	user, err := s.userRepository.GetUserByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}
	token, err := auth.CreateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) CreateUser(email string, displayName string, password string, permissions []repository.Permission) (*repository.User, error) {
	if len(password) < 8 {
		return nil, app_error.New(400, "password must have at least 8 characters")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &repository.User{
		Email:        normalizeEmail(email),
		DisplayName:  displayName,
		PasswordHash: hash,
		Permissions:  make([]string, 0, len(permissions)),
	}
	for _, permission := range permissions {
		user.Permissions = append(user.Permissions, string(permission))
	}
	return s.userRepository.SaveUser(user)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

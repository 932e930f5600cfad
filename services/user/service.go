package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	userRepo "barberly/database/repository/user"
	"barberly/models"
	"barberly/utils"
)

const tokenTTL = 24 * time.Hour

// AuthResult is a freshly issued session.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UserService covers client registration and login.
type UserService interface {
	Register(ctx context.Context, name, email, password, phone string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Get(ctx context.Context, id string) (*models.User, error)
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

func (s *DefaultUserService) Register(ctx context.Context, name, email, password, phone string) (*AuthResult, error) {
	if name == "" || email == "" || len(password) < 8 {
		return nil, &utils.ServiceError{
			Kind: utils.KindInvalidInput, Code: "invalidRegistration",
			Message: "name, email and a password of at least 8 characters are required",
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	u := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		PhoneNumber:  phone,
		Role:         "client",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if err == userRepo.ErrDuplicateEmail {
			return nil, &utils.ServiceError{
				Kind: utils.KindConflict, Code: "duplicateEmail",
				Message: "email is already registered",
			}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := utils.GenerateToken(u.ID, u.Role, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{Token: token, User: u}, nil
}

func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	invalid := &utils.ServiceError{
		Kind: utils.KindForbidden, Code: "invalidCredentials",
		Message: "email or password is incorrect",
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err == userRepo.ErrNotFound {
		return nil, invalid
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, invalid
	}

	token, err := utils.GenerateToken(u.ID, u.Role, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{Token: token, User: u}, nil
}

func (s *DefaultUserService) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err == userRepo.ErrNotFound {
		return nil, &utils.ServiceError{
			Kind: utils.KindNotFound, Code: "userNotFound",
			Message: fmt.Sprintf("user %s not found", id),
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return u, nil
}

package services

import (
	"context"

	"github.com/google/uuid"

	"rental-backend/internal/auth"
	"rental-backend/internal/models"
	"rental-backend/internal/timeutil"
)

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type UserService struct {
	Repo UserStore
	JWT  *auth.JWTManager
}

func NewUserService(repo UserStore, jwt *auth.JWTManager) *UserService {
	return &UserService{Repo: repo, JWT: jwt}
}

// Login verifies credentials and issues a signed token. A wrong password and
// an unknown email return the same error so the endpoint does not leak which
// accounts exist.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, &models.ValidationError{Field: "email", Message: "invalid credentials"}
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, &models.ValidationError{Field: "email", Message: "invalid credentials"}
	}
	if !user.IsActive {
		return nil, &models.ValidationError{Field: "email", Message: "account is disabled"}
	}
	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

func (s *UserService) Register(ctx context.Context, email, name, password, role string) (*models.User, error) {
	if len(password) < 8 {
		return nil, &models.ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		UserID:       uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    timeutil.Now(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

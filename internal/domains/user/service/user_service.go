package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"blog-backend/internal/domains/user/model"
	"blog-backend/internal/domains/user/repository"
	"blog-backend/internal/shared/validator"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	GenerateAccessToken(id jwt.Identity) (string, error)
}

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// Upsert creates or refreshes a user keyed by email.
	Upsert(ctx context.Context, req model.UpsertUserRequest) (*model.User, error)
	// IssueToken signs a session for the admin with the given email.
	IssueToken(ctx context.Context, email string) (string, *model.User, error)
}

type userService struct {
	repo   repository.Repository
	tokens TokenIssuer
}

func NewUserService(repo repository.Repository, tokens TokenIssuer) Service {
	return &userService{repo: repo, tokens: tokens}
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) Upsert(ctx context.Context, req model.UpsertUserRequest) (*model.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, validator.NewError("Validation failed", validator.FromOzzo("payload", err, req.Values()))
	}

	u, err := s.repo.UpsertByEmail(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.Info("user upserted", map[string]interface{}{"user_id": u.ID.String(), "role": u.Role})
	return u, nil
}

func (s *userService) IssueToken(ctx context.Context, email string) (string, *model.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if !u.IsAdmin() {
		return "", nil, model.ErrNotAdmin
	}

	token, err := s.tokens.GenerateAccessToken(u.Identity())
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, u, nil
}

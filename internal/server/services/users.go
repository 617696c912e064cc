// Package services holds the business rules of the blog server. Services
// validate input, translate repository outcomes into the sentinel errors of
// package common and never see HTTP types.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/cryptox"
	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/server/auth"
	"github.com/dmitrijs2005/gophblog/internal/server/config"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     models.Role
}

type UserService struct {
	repomanager   repomanager.RepositoryManager
	log           logging.Logger
	jwtSecret     []byte
	tokenValidity time.Duration
	bcryptCost    int
}

func NewUserService(m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *UserService {
	return &UserService{
		repomanager:   m,
		log:           log,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		bcryptCost:    cfg.BcryptCost,
	}
}

// Register stores a new account. An empty role means models.RoleUser.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", common.ErrValidation)
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role must be one of %s, %s, %s",
			common.ErrValidation, models.RoleAdmin, models.RoleEditor, models.RoleUser)
	}

	hash, err := cryptox.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := s.repomanager.Users().Create(ctx, &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateCredential) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login verifies the credentials and returns a signed token for the user.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	user, err := s.repomanager.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", fmt.Errorf("user %w", common.ErrorNotFound)
		}
		return "", fmt.Errorf("error searching user: %w", err)
	}

	ok, err := cryptox.CheckPassword(user.PasswordHash, password)
	if err != nil {
		return "", fmt.Errorf("error checking password: %w", err)
	}
	if !ok {
		return "", common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(auth.Identity{UserID: user.ID, Role: user.Role}, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}

	return token, nil
}

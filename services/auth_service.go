package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"retail-hub/models"
	"retail-hub/utils"
)

// AdminAllowList reports whether an email is configured as an administrator.
type AdminAllowList interface {
	IsAdminEmail(email string) bool
}

type AuthService struct {
	users  UserStore
	tokens *utils.TokenManager
	admins AdminAllowList
	log    *zap.Logger
}

func NewAuthService(users UserStore, tokens *utils.TokenManager, admins AdminAllowList, log *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		admins: admins,
		log:    log,
	}
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	valid, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !valid {
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	s.log.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return &models.LoginResponse{
		Token: token,
		User:  *user,
	}, nil
}

// Authenticate turns a bearer token into the request's Principal. A user is
// an admin when their role says so or their email is on the allow-list.
func (s *AuthService) Authenticate(token string) (models.Principal, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return models.Principal{}, err
	}

	return models.Principal{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Role:    claims.Role,
		IsAdmin: claims.Role == models.RoleAdmin || (s.admins != nil && s.admins.IsAdminEmail(claims.Email)),
	}, nil
}

// EnsureAdmin creates an admin account for email unless one already exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.NewValidationError("email", "admin email and password are required")
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil
		}
		return err
	}

	s.log.Info("admin account created", zap.String("email", email))
	return nil
}

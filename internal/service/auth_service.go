package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/config"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/identity"
	"github.com/spec-kit/user-service/internal/repository"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

// AuthService exchanges verified identity tokens for session tokens.
type AuthService struct {
	users       repository.UserRepository
	admins      repository.AdminRepository
	suspensions repository.SuspensionRepository
	verifier    identity.Verifier
	tokenMgr    *auth.TokenManager
	logger      *zap.Logger
}

// AuthDependencies encapsulates collaborator requirements for AuthService.
type AuthDependencies struct {
	UserRepo       repository.UserRepository
	AdminRepo      repository.AdminRepository
	SuspensionRepo repository.SuspensionRepository
	Verifier       identity.Verifier
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:       deps.UserRepo,
		admins:      deps.AdminRepo,
		suspensions: deps.SuspensionRepo,
		verifier:    deps.Verifier,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		logger:      logger,
	}
}

// LoginResult carries the issued session token.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
}

// LoginUser verifies the identity token, checks account state and issues a
// user-role session token. A suspended account is rejected before any token
// is issued.
func (s *AuthService) LoginUser(ctx context.Context, identityToken string) (*LoginResult, error) {
	claims, err := s.verifier.Verify(ctx, identityToken)
	if err != nil {
		return nil, apperrors.NewUnauthorized("Invalid access token")
	}
	if claims.Email == "" {
		return nil, apperrors.NewUnauthorized("Not registered user")
	}

	user, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("Not registered user")
		}
		return nil, apperrors.NewInternalError(err)
	}

	if !user.IsActive {
		return nil, apperrors.NewUnauthorized("User is inactive")
	}

	suspended, err := s.suspensions.IsSuspended(ctx, user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if suspended {
		return nil, apperrors.NewForbidden("User account is suspended")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user.Email, domain.RoleUser, user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to update last_login", zap.Error(err), zap.String("user_id", user.ID))
	}

	return &LoginResult{AccessToken: token, ExpiresAt: expiresAt}, nil
}

// LoginAdmin verifies the identity token against the admin table and issues
// an admin-role session token. Admins are not subject to suspension.
func (s *AuthService) LoginAdmin(ctx context.Context, identityToken string) (*LoginResult, error) {
	claims, err := s.verifier.Verify(ctx, identityToken)
	if err != nil {
		return nil, apperrors.NewUnauthorized("Invalid access token")
	}
	if claims.Email == "" {
		return nil, apperrors.NewUnauthorized("Not registered user")
	}

	admin, err := s.admins.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("Not registered admin")
		}
		return nil, apperrors.NewInternalError(err)
	}

	if !admin.IsActive {
		return nil, apperrors.NewUnauthorized("User is inactive")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(admin.Email, domain.RoleAdmin, admin.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if err := s.admins.TouchLastLogin(ctx, admin.ID); err != nil {
		s.logger.Warn("failed to update last_login", zap.Error(err), zap.String("admin_id", admin.ID))
	}

	return &LoginResult{AccessToken: token, ExpiresAt: expiresAt}, nil
}

// TokenManager exposes the underlying token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

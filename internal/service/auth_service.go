package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"nationwide/internal/dto"
	"nationwide/pkg/auth"
	"nationwide/pkg/config"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotConfigured = errors.New("admin account not configured")
)

// AuthService authenticates the single admin account configured through the environment.
type AuthService struct {
	username     string
	passwordHash string
	jwtManager   *auth.JWTManager
	logger       *zap.Logger
}

func NewAuthService(cfg *config.AdminConfig, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		username:     cfg.Username,
		passwordHash: cfg.PasswordHash,
		jwtManager:   jwtManager,
		logger:       logger,
	}
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if s.passwordHash == "" {
		return nil, ErrAdminNotConfigured
	}
	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) != 1 {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPasswordHash(req.Password, s.passwordHash) {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("Admin logged in", zap.String("username", s.username))
	return s.issue(s.username)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateToken(refreshToken)
	if err != nil || claims.TokenType != auth.TokenTypeRefresh {
		return nil, ErrInvalidCredentials
	}
	if claims.Username != s.username {
		return nil, ErrInvalidCredentials
	}
	return s.issue(claims.Username)
}

func (s *AuthService) issue(username string) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(username)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(username)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
	}, nil
}

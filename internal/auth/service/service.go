// Package service implements admin authentication.
package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"modtok/internal/auth/repository"
	"modtok/internal/auth/transport"
	"modtok/platform/apperr"
	"modtok/platform/config"
	"modtok/platform/logger"
)

// Service provides login and account management for admins.
type Service struct {
	repo repository.Repository
	cfg  config.AuthServiceConfig
	log  *logger.Logger
}

// New creates a new auth service.
func New(repo repository.Repository, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Login verifies credentials and issues an access token. Invalid email
// and invalid password produce the same error so callers cannot probe
// for accounts.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (*transport.LoginResponse, error) {
	admin, err := s.repo.GetAdminByEmail(ctx, req.Email)
	if err != nil {
		s.log.AuthEvent("login", req.Email, false, "unknown email")
		return nil, apperr.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		s.log.AuthEvent("login", req.Email, false, "wrong password")
		return nil, apperr.Unauthorized("invalid credentials")
	}

	token, expiresAt, err := s.issueAccessToken(admin)
	if err != nil {
		return nil, err
	}

	s.log.AuthEvent("login", req.Email, true, "")
	return &transport.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
		Admin:       toAdminResponse(admin),
	}, nil
}

// Me returns the calling admin's profile.
func (s *Service) Me(ctx context.Context, adminID uuid.UUID) (*transport.AdminResponse, error) {
	admin, err := s.repo.GetAdminByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	resp := toAdminResponse(admin)
	return &resp, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, adminID uuid.UUID, req transport.ChangePasswordRequest) error {
	admin, err := s.repo.GetAdminByID(ctx, adminID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		s.log.AuthEvent("change_password", admin.Email, false, "wrong current password")
		return apperr.Unauthorized("invalid credentials")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal("failed to hash password")
	}

	if err := s.repo.UpdatePassword(ctx, adminID, string(hash)); err != nil {
		return err
	}

	s.log.AuthEvent("change_password", admin.Email, true, "")
	return nil
}

func (s *Service) issueAccessToken(admin repository.Admin) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.GetAccessTokenTTL())

	claims := jwt.MapClaims{
		"sub":   admin.ID.String(),
		"roles": admin.Roles,
		"type":  "access",
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.GetJWTAccessSecret()))
	if err != nil {
		return "", time.Time{}, apperr.Internal("failed to sign token")
	}
	return token, expiresAt, nil
}

func toAdminResponse(admin repository.Admin) transport.AdminResponse {
	return transport.AdminResponse{
		ID:    admin.ID,
		Email: admin.Email,
		Name:  admin.Name,
		Roles: admin.Roles,
	}
}

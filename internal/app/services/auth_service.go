package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/hostelcare/internal/app/models"
	"github.com/yigit/hostelcare/internal/app/models/dto"
	"github.com/yigit/hostelcare/internal/app/repositories"
	"github.com/yigit/hostelcare/internal/pkg/apperrors"
	"github.com/yigit/hostelcare/internal/pkg/auth"
	"github.com/yigit/hostelcare/internal/pkg/validation"
)

// ErrInvalidCredentials is returned for every failed login, whatever the cause
var ErrInvalidCredentials = apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid credentials")

// AuthService handles authentication operations
type AuthService struct {
	store      repositories.Store
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(store repositories.Store, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		store:      store,
		jwtService: jwtService,
		logger:     logger,
	}
}

// StudentLogin authenticates a student by email and password
func (s *AuthService) StudentLogin(ctx context.Context, email, password string) (*dto.StudentLoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	student, err := s.store.Repos().Students.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Debug().Str("email", email).Msg("Login attempt for unknown student")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(student.PasswordHash, password) {
		s.logger.Debug().Str("studentId", student.StudentID).Msg("Student login with wrong password")
		return nil, ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(auth.Principal{
		Subject:  student.StudentID,
		Username: student.Email,
		Role:     auth.RoleStudent,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("studentId", student.StudentID).Msg("Student logged in")
	return &dto.StudentLoginResponse{
		Success: true,
		Student: dto.StudentSummary{
			StudentID:  student.StudentID,
			Name:       student.Name,
			Email:      student.Email,
			Department: student.Department,
			Year:       student.Year,
		},
		Token:     token,
		ExpiresIn: expiresIn,
	}, nil
}

// AdminLogin authenticates an administrator by username and password
func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (*dto.AdminLoginResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.store.Repos().Admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(admin.PasswordHash, password) {
		s.logger.Debug().Str("username", username).Msg("Admin login with wrong password")
		return nil, ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(auth.Principal{
		Subject:  admin.Username,
		Username: admin.Username,
		Role:     auth.RoleAdmin,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", admin.Username).Msg("Admin logged in")
	return &dto.AdminLoginResponse{
		Success: true,
		Admin: dto.AdminSummary{
			AdminID:  admin.AdminID,
			Username: admin.Username,
			FullName: admin.FullName,
			Role:     admin.Role,
		},
		Token:     token,
		ExpiresIn: expiresIn,
	}, nil
}

// CreateAdmin adds an administrator account
func (s *AuthService) CreateAdmin(ctx context.Context, username, password, fullName string) (*models.AdminUser, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.NewValidationError("username is required")
	}
	if len(password) < validation.PasswordMinLength {
		return nil, apperrors.NewValidationError("password is too short")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &models.AdminUser{
		Username:     username,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(fullName),
		Role:         "Admin",
	}
	if err := s.store.Repos().Admins.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Msg("Admin account created")
	return admin, nil
}

// EnsureAdmin creates the given admin only when no admin account exists yet.
// It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password, fullName string) (bool, error) {
	count, err := s.store.Repos().Admins.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if password == "" {
		return false, apperrors.NewValidationError("no admin account exists and no admin password is configured")
	}
	if _, err := s.CreateAdmin(ctx, username, password, fullName); err != nil {
		return false, err
	}
	return true, nil
}

// SetStudentPassword replaces a student's password
func (s *AuthService) SetStudentPassword(ctx context.Context, studentID, password string) error {
	if len(password) < validation.PasswordMinLength {
		return apperrors.NewValidationError("password is too short")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.store.Repos().Students.UpdatePassword(ctx, strings.TrimSpace(studentID), hash)
}

// SetAdminPassword replaces an administrator's password
func (s *AuthService) SetAdminPassword(ctx context.Context, username, password string) error {
	if len(password) < validation.PasswordMinLength {
		return apperrors.NewValidationError("password is too short")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.store.Repos().Admins.UpdatePassword(ctx, strings.TrimSpace(username), hash)
}

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

// StudentService handles student records and the student-facing room views
type StudentService struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(store repositories.Store, logger zerolog.Logger) *StudentService {
	return &StudentService{
		store:  store,
		logger: logger,
	}
}

// AddStudent registers a student with a hashed password
func (s *StudentService) AddStudent(ctx context.Context, req dto.AddStudentRequest) (*models.Student, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var check validation.Checker
	check.Check(validation.StudentID(req.StudentID), "student_id", "must be 3-20 letters, digits or dashes").
		Check(validation.Name(req.Name), "name", "must be between 2 and 100 characters").
		Check(validation.Email(email), "email", "must be a valid email address").
		Check(len(req.Password) >= validation.PasswordMinLength, "password", "is too short").
		Check(validation.Phone(req.Phone), "phone", "must be 7-15 digits").
		Check(validation.Phone(req.ParentPhone), "parent_phone", "must be 7-15 digits")

	dob, err := validation.ParseDate(req.DateOfBirth)
	check.Check(err == nil, "date_of_birth", "must be a date in YYYY-MM-DD format")

	if err := check.Err(); err != nil {
		var fieldErrs validation.Errors
		errors.As(err, &fieldErrs)
		details := make(map[string]interface{}, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[fe.Field] = fe.Message
		}
		return nil, apperrors.NewValidationError("invalid student data: " + err.Error()).WithDetails(details)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		StudentID:    strings.TrimSpace(req.StudentID),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(req.Phone),
		Department:   strings.TrimSpace(req.Department),
		Year:         req.Year,
		Gender:       strings.TrimSpace(req.Gender),
		ParentName:   strings.TrimSpace(req.ParentName),
		ParentPhone:  strings.TrimSpace(req.ParentPhone),
		DateOfBirth:  dob,
		Address:      strings.TrimSpace(req.Address),
	}

	if err := s.store.Repos().Students.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Str("studentId", student.StudentID).Msg("Student added")
	return student, nil
}

// GetRoomDetails returns the student's room and roommates, or allocated=false
func (s *StudentService) GetRoomDetails(ctx context.Context, studentID string) (*dto.RoomLookupResponse, error) {
	repos := s.store.Repos()

	details, err := repos.Allocations.GetRoomDetails(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrActiveAllocationMissing) {
			return &dto.RoomLookupResponse{Allocated: false, Message: "No room allocated yet"}, nil
		}
		return nil, err
	}

	roommates, err := repos.Allocations.ListRoommates(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &dto.RoomLookupResponse{
		Allocated:   true,
		RoomDetails: details,
		Roommates:   roommates,
	}, nil
}

// ListSwapTargets lists peers of the same gender the student could swap with
func (s *StudentService) ListSwapTargets(ctx context.Context, studentID string) ([]models.SwapTarget, error) {
	return s.store.Repos().Allocations.ListSwapTargets(ctx, studentID)
}

// ListStudents lists all students with their current allocation
func (s *StudentService) ListStudents(ctx context.Context) ([]models.StudentOverview, error) {
	return s.store.Repos().Students.ListOverview(ctx)
}

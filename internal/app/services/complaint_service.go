package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/hostelcare/internal/app/models"
	"github.com/yigit/hostelcare/internal/app/repositories"
	"github.com/yigit/hostelcare/internal/pkg/apperrors"
)

// ComplaintService files and resolves complaints
type ComplaintService struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewComplaintService creates a new ComplaintService
func NewComplaintService(store repositories.Store, logger zerolog.Logger) *ComplaintService {
	return &ComplaintService{
		store:  store,
		logger: logger,
	}
}

// ComplaintInput holds the fields of a new complaint
type ComplaintInput struct {
	StudentID   string
	Category    string
	Subject     string
	Description string
	Priority    string
}

// SubmitComplaint files a Pending complaint. An empty priority means Medium.
func (s *ComplaintService) SubmitComplaint(ctx context.Context, in ComplaintInput) (int64, error) {
	complaint := &models.Complaint{
		StudentID:   strings.TrimSpace(in.StudentID),
		Category:    strings.TrimSpace(in.Category),
		Subject:     strings.TrimSpace(in.Subject),
		Description: strings.TrimSpace(in.Description),
		Priority:    models.Priority(strings.TrimSpace(in.Priority)),
	}

	switch {
	case complaint.StudentID == "":
		return 0, apperrors.NewValidationError("student_id is required")
	case complaint.Category == "":
		return 0, apperrors.NewValidationError("category is required")
	case complaint.Subject == "":
		return 0, apperrors.NewValidationError("subject is required")
	case complaint.Description == "":
		return 0, apperrors.NewValidationError("description is required")
	}

	if complaint.Priority == "" {
		complaint.Priority = models.DefaultPriority
	}
	if !complaint.Priority.IsValid() {
		return 0, apperrors.NewValidationError("priority must be one of Low, Medium, High, Urgent")
	}

	if err := s.store.Repos().Complaints.Create(ctx, complaint); err != nil {
		return 0, err
	}

	s.logger.Info().
		Int64("complaintId", complaint.ComplaintID).
		Str("studentId", complaint.StudentID).
		Str("priority", string(complaint.Priority)).
		Msg("Complaint submitted")
	return complaint.ComplaintID, nil
}

// UpdateComplaintStatus sets a complaint's status and admin response
func (s *ComplaintService) UpdateComplaintStatus(ctx context.Context, complaintID int64, status, adminResponse string) error {
	if complaintID <= 0 {
		return apperrors.NewValidationError("complaint_id must be a positive integer")
	}
	st := models.ComplaintStatus(strings.TrimSpace(status))
	if !st.IsValid() {
		return apperrors.NewValidationError("status must be one of Pending, In Progress, Resolved, Closed")
	}

	var response *string
	if r := strings.TrimSpace(adminResponse); r != "" {
		response = &r
	}

	if err := s.store.Repos().Complaints.UpdateStatus(ctx, complaintID, st, response); err != nil {
		return err
	}

	s.logger.Info().Int64("complaintId", complaintID).Str("status", string(st)).Msg("Complaint status updated")
	return nil
}

// ListForStudent lists a student's complaints
func (s *ComplaintService) ListForStudent(ctx context.Context, studentID string) ([]models.Complaint, error) {
	return s.store.Repos().Complaints.ListForStudent(ctx, studentID)
}

// List lists all complaints matching the filter
func (s *ComplaintService) List(ctx context.Context, status, priority, category string) ([]models.ComplaintView, error) {
	filter := models.ComplaintFilter{
		Status:   models.ComplaintStatus(strings.TrimSpace(status)),
		Priority: models.Priority(strings.TrimSpace(priority)),
		Category: strings.TrimSpace(category),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, apperrors.NewValidationError("invalid status filter")
	}
	if filter.Priority != "" && !filter.Priority.IsValid() {
		return nil, apperrors.NewValidationError("invalid priority filter")
	}
	return s.store.Repos().Complaints.List(ctx, filter)
}

package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/hostelcare/internal/app/models"
	"github.com/yigit/hostelcare/internal/pkg/apperrors"
	"github.com/yigit/hostelcare/internal/pkg/dberrors"
)

const complaintStatusOrder = "CASE c.status WHEN 'Pending' THEN 1 WHEN 'In Progress' THEN 2 WHEN 'Resolved' THEN 3 WHEN 'Closed' THEN 4 ELSE 5 END"

var complaintColumns = []string{
	"c.complaint_id", "c.student_id", "c.category", "c.subject", "c.description", "c.priority",
	"c.status", "c.admin_response", "c.complaint_date", "c.resolved_date",
}

// ComplaintRepository handles database operations for complaints
type ComplaintRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(db DBTX, sb squirrel.StatementBuilderType) *ComplaintRepository {
	return &ComplaintRepository{db: db, sb: sb}
}

// Create inserts a complaint
func (r *ComplaintRepository) Create(ctx context.Context, c *models.Complaint) error {
	query := `
		INSERT INTO complaints (student_id, category, subject, description, priority)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING complaint_id, status, complaint_date
	`

	var status string
	err := r.db.QueryRow(ctx, query, c.StudentID, c.Category, c.Subject, c.Description, string(c.Priority)).
		Scan(&c.ComplaintID, &status, &c.ComplaintDate)
	if err != nil {
		switch {
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.ErrStudentNotFound
		case dberrors.IsCheckViolation(err):
			return apperrors.NewValidationError("invalid complaint priority")
		}
		return fmt.Errorf("error creating complaint: %w", err)
	}
	c.Status = models.ComplaintStatus(status)
	return nil
}

// UpdateStatus sets the status and admin response of a complaint
func (r *ComplaintRepository) UpdateStatus(ctx context.Context, complaintID int64, status models.ComplaintStatus, response *string) error {
	query := `
		UPDATE complaints
		SET status = $2,
		    admin_response = $3,
		    resolved_date = CASE WHEN $2 IN ('Resolved', 'Closed') THEN NOW() ELSE resolved_date END
		WHERE complaint_id = $1
	`

	tag, err := r.db.Exec(ctx, query, complaintID, string(status), response)
	if err != nil {
		if dberrors.IsCheckViolation(err) {
			return apperrors.NewValidationError("invalid complaint status")
		}
		return fmt.Errorf("error updating complaint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrComplaintNotFound
	}
	return nil
}

// ListForStudent lists a student's complaints
func (r *ComplaintRepository) ListForStudent(ctx context.Context, studentID string) ([]models.Complaint, error) {
	sql, args, err := r.sb.Select(complaintColumns...).
		From("complaints c").
		Where(squirrel.Eq{"c.student_id": studentID}).
		OrderBy(complaintStatusOrder, "c.complaint_date DESC", "c.complaint_id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build complaint query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying complaints: %w", err)
	}
	defer rows.Close()

	complaints := []models.Complaint{}
	for rows.Next() {
		var c models.Complaint
		var priority, status string
		if err := rows.Scan(&c.ComplaintID, &c.StudentID, &c.Category, &c.Subject, &c.Description, &priority,
			&status, &c.AdminResponse, &c.ComplaintDate, &c.ResolvedDate); err != nil {
			return nil, fmt.Errorf("error scanning complaint row: %w", err)
		}
		c.Priority = models.Priority(priority)
		c.Status = models.ComplaintStatus(status)
		complaints = append(complaints, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating complaint rows: %w", err)
	}
	return complaints, nil
}

// List lists complaints with their students, filtered by status, priority and category
func (r *ComplaintRepository) List(ctx context.Context, filter models.ComplaintFilter) ([]models.ComplaintView, error) {
	where := squirrel.And{}
	if filter.Status != "" {
		where = append(where, squirrel.Eq{"c.status": string(filter.Status)})
	}
	if filter.Priority != "" {
		where = append(where, squirrel.Eq{"c.priority": string(filter.Priority)})
	}
	if filter.Category != "" {
		where = append(where, squirrel.Eq{"c.category": filter.Category})
	}

	sql, args, err := r.sb.Select(append(complaintColumns, "s.name", "s.department", "s.year", "s.phone")...).
		From("complaints c").
		Join("students s ON s.student_id = c.student_id").
		Where(where).
		OrderBy(complaintStatusOrder, "c.complaint_date DESC", "c.complaint_id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build complaint query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying complaints: %w", err)
	}
	defer rows.Close()

	complaints := []models.ComplaintView{}
	for rows.Next() {
		var v models.ComplaintView
		var priority, status string
		if err := rows.Scan(&v.ComplaintID, &v.StudentID, &v.Category, &v.Subject, &v.Description, &priority,
			&status, &v.AdminResponse, &v.ComplaintDate, &v.ResolvedDate,
			&v.StudentName, &v.Department, &v.Year, &v.StudentPhone); err != nil {
			return nil, fmt.Errorf("error scanning complaint row: %w", err)
		}
		v.Priority = models.Priority(priority)
		v.Status = models.ComplaintStatus(status)
		complaints = append(complaints, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating complaint rows: %w", err)
	}
	return complaints, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/hostelcare/internal/app/models"
	"github.com/yigit/hostelcare/internal/pkg/apperrors"
	"github.com/yigit/hostelcare/internal/pkg/dberrors"
)

const swapStatusOrder = "CASE sr.status WHEN 'Pending' THEN 1 WHEN 'Approved' THEN 2 WHEN 'Rejected' THEN 3 ELSE 4 END"

// SwapRequestRepository handles database operations for swap requests
type SwapRequestRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewSwapRequestRepository creates a new swap request repository
func NewSwapRequestRepository(db DBTX, sb squirrel.StatementBuilderType) *SwapRequestRepository {
	return &SwapRequestRepository{db: db, sb: sb}
}

// Create inserts a Pending swap request
func (r *SwapRequestRepository) Create(ctx context.Context, s *models.SwapRequest) error {
	query := `
		INSERT INTO swap_requests (requester_id, target_id, requester_room_id, target_room_id, reason, status)
		VALUES ($1, $2, $3, $4, $5, 'Pending')
		RETURNING swap_id, request_date
	`

	err := r.db.QueryRow(ctx, query, s.RequesterID, s.TargetID, s.RequesterRoomID, s.TargetRoomID, s.Reason).
		Scan(&s.SwapID, &s.RequestDate)
	if err != nil {
		switch {
		case dberrors.IsCheckViolation(err):
			return apperrors.NewValidationError("a student cannot swap with themselves")
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error creating swap request: %w", err)
	}
	s.Status = models.SwapPending
	return nil
}

// GetByID retrieves a swap request, optionally locking it
func (r *SwapRequestRepository) GetByID(ctx context.Context, swapID int64, forUpdate bool) (*models.SwapRequest, error) {
	query := `
		SELECT swap_id, requester_id, target_id, requester_room_id, target_room_id, reason, status,
		       request_date, resolved_date, resolved_by, admin_remarks
		FROM swap_requests
		WHERE swap_id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var s models.SwapRequest
	var status string
	err := r.db.QueryRow(ctx, query, swapID).Scan(&s.SwapID, &s.RequesterID, &s.TargetID, &s.RequesterRoomID,
		&s.TargetRoomID, &s.Reason, &status, &s.RequestDate, &s.ResolvedDate, &s.ResolvedBy, &s.AdminRemarks)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSwapNotFound
		}
		return nil, fmt.Errorf("error retrieving swap request: %w", err)
	}
	s.Status = models.SwapStatus(status)
	return &s, nil
}

// Resolve moves a Pending swap request to a terminal status
func (r *SwapRequestRepository) Resolve(ctx context.Context, swapID int64, status models.SwapStatus, resolvedBy string, remarks *string, at time.Time) error {
	query := `
		UPDATE swap_requests
		SET status = $2, resolved_by = $3, admin_remarks = $4, resolved_date = $5
		WHERE swap_id = $1 AND status = 'Pending'
	`

	tag, err := r.db.Exec(ctx, query, swapID, string(status), resolvedBy, remarks, at)
	if err != nil {
		return fmt.Errorf("error resolving swap request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSwapAlreadyResolved
	}
	return nil
}

func (r *SwapRequestRepository) viewQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"sr.swap_id", "sr.requester_id", "sr.target_id", "sr.requester_room_id", "sr.target_room_id", "sr.reason",
		"sr.status", "sr.request_date", "sr.resolved_date", "sr.resolved_by", "sr.admin_remarks",
		"s1.name", "s1.department", "s1.year", "s2.name", "s2.department", "s2.year",
		"r1.room_number", "h1.hostel_name", "r2.room_number", "h2.hostel_name",
	).
		From("swap_requests sr").
		Join("students s1 ON s1.student_id = sr.requester_id").
		Join("students s2 ON s2.student_id = sr.target_id").
		Join("rooms r1 ON r1.room_id = sr.requester_room_id").
		Join("rooms r2 ON r2.room_id = sr.target_room_id").
		Join("hostels h1 ON h1.hostel_id = r1.hostel_id").
		Join("hostels h2 ON h2.hostel_id = r2.hostel_id").
		OrderBy(swapStatusOrder, "sr.request_date DESC", "sr.swap_id DESC")
}

func (r *SwapRequestRepository) listViews(ctx context.Context, q squirrel.SelectBuilder) ([]models.SwapRequestView, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build swap request query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying swap requests: %w", err)
	}
	defer rows.Close()

	swaps := []models.SwapRequestView{}
	for rows.Next() {
		var v models.SwapRequestView
		var status string
		if err := rows.Scan(
			&v.SwapID, &v.RequesterID, &v.TargetID, &v.RequesterRoomID, &v.TargetRoomID, &v.Reason,
			&status, &v.RequestDate, &v.ResolvedDate, &v.ResolvedBy, &v.AdminRemarks,
			&v.RequesterName, &v.RequesterDept, &v.RequesterYear, &v.TargetName, &v.TargetDept, &v.TargetYear,
			&v.RequesterRoom, &v.RequesterHostel, &v.TargetRoom, &v.TargetHostel,
		); err != nil {
			return nil, fmt.Errorf("error scanning swap request row: %w", err)
		}
		v.Status = models.SwapStatus(status)
		swaps = append(swaps, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating swap request rows: %w", err)
	}
	return swaps, nil
}

// ListForStudent lists swap requests where the student is requester or target
func (r *SwapRequestRepository) ListForStudent(ctx context.Context, studentID string) ([]models.SwapRequestView, error) {
	q := r.viewQuery().Where(squirrel.Or{
		squirrel.Eq{"sr.requester_id": studentID},
		squirrel.Eq{"sr.target_id": studentID},
	})
	return r.listViews(ctx, q)
}

// List lists all swap requests matching the filter
func (r *SwapRequestRepository) List(ctx context.Context, filter models.SwapFilter) ([]models.SwapRequestView, error) {
	q := r.viewQuery()
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"sr.status": string(filter.Status)})
	}
	return r.listViews(ctx, q)
}

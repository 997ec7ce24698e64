package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yigit/hostelcare/internal/app/models"
	"github.com/yigit/hostelcare/internal/pkg/apperrors"
	"github.com/yigit/hostelcare/internal/pkg/dberrors"
)

// activeAllocationIndex is the partial unique index on allocations(student_id) WHERE status = 'Active'
const activeAllocationIndex = "uniq_active_allocation_per_student"

// AllocationRepository handles database operations for allocations
type AllocationRepository struct {
	db DBTX
}

// NewAllocationRepository creates a new allocation repository
func NewAllocationRepository(db DBTX) *AllocationRepository {
	return &AllocationRepository{db: db}
}

func scanAllocation(row pgx.Row, a *models.Allocation) error {
	var status string
	if err := row.Scan(&a.AllocationID, &a.StudentID, &a.RoomID, &a.AcademicYear, &a.AllocationDate, &a.EndDate, &status); err != nil {
		return err
	}
	a.Status = models.AllocationStatus(status)
	return nil
}

// Create inserts an Active allocation
func (r *AllocationRepository) Create(ctx context.Context, a *models.Allocation) error {
	query := `
		INSERT INTO allocations (student_id, room_id, academic_year, status)
		VALUES ($1, $2, $3, 'Active')
		RETURNING allocation_id, allocation_date
	`

	err := r.db.QueryRow(ctx, query, a.StudentID, a.RoomID, a.AcademicYear).Scan(&a.AllocationID, &a.AllocationDate)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, activeAllocationIndex):
			return apperrors.ErrActiveAllocationExists
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.NewResourceNotFoundError("student or room not found")
		}
		return fmt.Errorf("error creating allocation: %w", err)
	}
	a.Status = models.AllocationActive
	return nil
}

// GetActiveByStudent returns the student's active allocation
func (r *AllocationRepository) GetActiveByStudent(ctx context.Context, studentID string, forUpdate bool) (*models.Allocation, error) {
	query := `
		SELECT allocation_id, student_id, room_id, academic_year, allocation_date, end_date, status
		FROM allocations
		WHERE student_id = $1 AND status = 'Active'
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var a models.Allocation
	if err := scanAllocation(r.db.QueryRow(ctx, query, studentID), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrActiveAllocationMissing
		}
		return nil, fmt.Errorf("error retrieving allocation: %w", err)
	}
	return &a, nil
}

// LockActiveForStudents locks the active allocations of the given students in student ID order
func (r *AllocationRepository) LockActiveForStudents(ctx context.Context, studentIDs ...string) ([]models.Allocation, error) {
	query := `
		SELECT allocation_id, student_id, room_id, academic_year, allocation_date, end_date, status
		FROM allocations
		WHERE student_id = ANY($1) AND status = 'Active'
		ORDER BY student_id
		FOR UPDATE
	`

	rows, err := r.db.Query(ctx, query, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("error locking allocations: %w", err)
	}
	defer rows.Close()

	allocations := []models.Allocation{}
	for rows.Next() {
		var a models.Allocation
		if err := scanAllocation(rows, &a); err != nil {
			return nil, fmt.Errorf("error scanning allocation row: %w", err)
		}
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation rows: %w", err)
	}
	return allocations, nil
}

// UpdateRoom moves an allocation to another room
func (r *AllocationRepository) UpdateRoom(ctx context.Context, allocationID, roomID int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE allocations SET room_id = $2 WHERE allocation_id = $1`, allocationID, roomID)
	if err != nil {
		return fmt.Errorf("error updating allocation room: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrActiveAllocationMissing
	}
	return nil
}

// End marks an allocation as Ended
func (r *AllocationRepository) End(ctx context.Context, allocationID int64, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE allocations SET status = 'Ended', end_date = $2 WHERE allocation_id = $1 AND status = 'Active'`,
		allocationID, at)
	if err != nil {
		return fmt.Errorf("error ending allocation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrActiveAllocationMissing
	}
	return nil
}

// GetRoomDetails returns the student's current room with hostel and allocation details
func (r *AllocationRepository) GetRoomDetails(ctx context.Context, studentID string) (*models.RoomDetails, error) {
	query := `
		SELECT s.student_id, s.name, s.email, s.phone, s.department, s.year,
		       r.room_id, h.hostel_name, h.warden_name, h.warden_phone,
		       r.room_number, r.floor, r.capacity, r.current_occupancy, r.room_type, r.has_attached_bathroom,
		       a.allocation_date, a.academic_year
		FROM allocations a
		JOIN students s ON s.student_id = a.student_id
		JOIN rooms r ON r.room_id = a.room_id
		JOIN hostels h ON h.hostel_id = r.hostel_id
		WHERE a.student_id = $1 AND a.status = 'Active'
	`

	var d models.RoomDetails
	err := r.db.QueryRow(ctx, query, studentID).Scan(
		&d.StudentID, &d.Name, &d.Email, &d.Phone, &d.Department, &d.Year,
		&d.RoomID, &d.HostelName, &d.WardenName, &d.WardenPhone,
		&d.RoomNumber, &d.Floor, &d.Capacity, &d.CurrentOccupancy, &d.RoomType, &d.HasAttachedBathroom,
		&d.AllocationDate, &d.AcademicYear,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrActiveAllocationMissing
		}
		return nil, fmt.Errorf("error retrieving room details: %w", err)
	}
	return &d, nil
}

// ListRoommates lists the other students actively allocated to the student's room
func (r *AllocationRepository) ListRoommates(ctx context.Context, studentID string) ([]models.Roommate, error) {
	query := `
		SELECT s.student_id, s.name, s.department, s.year, s.phone, s.email
		FROM allocations a
		JOIN students s ON s.student_id = a.student_id
		WHERE a.room_id = (SELECT room_id FROM allocations WHERE student_id = $1 AND status = 'Active')
		  AND a.student_id <> $1
		  AND a.status = 'Active'
		ORDER BY s.name
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error querying roommates: %w", err)
	}
	defer rows.Close()

	roommates := []models.Roommate{}
	for rows.Next() {
		var m models.Roommate
		if err := rows.Scan(&m.StudentID, &m.Name, &m.Department, &m.Year, &m.Phone, &m.Email); err != nil {
			return nil, fmt.Errorf("error scanning roommate row: %w", err)
		}
		roommates = append(roommates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roommate rows: %w", err)
	}
	return roommates, nil
}

// ListSwapTargets lists actively allocated students of the same gender
func (r *AllocationRepository) ListSwapTargets(ctx context.Context, studentID string) ([]models.SwapTarget, error) {
	query := `
		SELECT s.student_id, s.name, s.department, s.year, h.hostel_name, r.room_number, r.room_type
		FROM allocations a
		JOIN students s ON s.student_id = a.student_id
		JOIN rooms r ON r.room_id = a.room_id
		JOIN hostels h ON h.hostel_id = r.hostel_id
		WHERE a.student_id <> $1
		  AND a.status = 'Active'
		  AND s.gender = (SELECT gender FROM students WHERE student_id = $1)
		ORDER BY h.hostel_name, r.room_number, s.student_id
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error querying swap targets: %w", err)
	}
	defer rows.Close()

	targets := []models.SwapTarget{}
	for rows.Next() {
		var t models.SwapTarget
		if err := rows.Scan(&t.StudentID, &t.Name, &t.Department, &t.Year, &t.HostelName, &t.RoomNumber, &t.RoomType); err != nil {
			return nil, fmt.Errorf("error scanning swap target row: %w", err)
		}
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating swap target rows: %w", err)
	}
	return targets, nil
}

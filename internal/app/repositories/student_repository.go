package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/hostelcare/internal/app/models"
	"github.com/yigit/hostelcare/internal/pkg/apperrors"
	"github.com/yigit/hostelcare/internal/pkg/dberrors"
)

var studentColumns = []string{
	"student_id", "name", "email", "password", "phone", "department", "year", "gender",
	"parent_name", "parent_phone", "date_of_birth", "address", "created_at",
}

// StudentRepository handles database operations for students
type StudentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db DBTX, sb squirrel.StatementBuilderType) *StudentRepository {
	return &StudentRepository{db: db, sb: sb}
}

func scanStudent(row pgx.Row, s *models.Student) error {
	return row.Scan(
		&s.StudentID, &s.Name, &s.Email, &s.PasswordHash, &s.Phone, &s.Department, &s.Year, &s.Gender,
		&s.ParentName, &s.ParentPhone, &s.DateOfBirth, &s.Address, &s.CreatedAt,
	)
}

// Create inserts a student
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns(studentColumns[:12]...).
		Values(s.StudentID, s.Name, s.Email, s.PasswordHash, s.Phone, s.Department, s.Year, s.Gender,
			s.ParentName, s.ParentPhone, s.DateOfBirth, s.Address).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.CreatedAt); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrStudentAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

func (r *StudentRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	var s models.Student
	if err := scanStudent(r.db.QueryRow(ctx, sql, args...), &s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return &s, nil
}

// GetByID retrieves a student by student ID
func (r *StudentRepository) GetByID(ctx context.Context, studentID string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"student_id": studentID})
}

// GetByEmail retrieves a student by email
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Expr("LOWER(email) = LOWER(?)", email))
}

// ListOverview lists every student with their current allocation, newest first
func (r *StudentRepository) ListOverview(ctx context.Context) ([]models.StudentOverview, error) {
	query := `
		SELECT s.student_id, s.name, s.email, s.password, s.phone, s.department, s.year, s.gender,
		       s.parent_name, s.parent_phone, s.date_of_birth, s.address, s.created_at,
		       a.allocation_id, h.hostel_name, r.room_number, a.allocation_date, a.status
		FROM students s
		LEFT JOIN allocations a ON a.student_id = s.student_id AND a.status = 'Active'
		LEFT JOIN rooms r ON r.room_id = a.room_id
		LEFT JOIN hostels h ON h.hostel_id = r.hostel_id
		ORDER BY s.created_at DESC, s.student_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []models.StudentOverview{}
	for rows.Next() {
		var o models.StudentOverview
		var status *string
		if err := rows.Scan(
			&o.StudentID, &o.Name, &o.Email, &o.PasswordHash, &o.Phone, &o.Department, &o.Year, &o.Gender,
			&o.ParentName, &o.ParentPhone, &o.DateOfBirth, &o.Address, &o.CreatedAt,
			&o.AllocationID, &o.HostelName, &o.RoomNumber, &o.AllocationDate, &status,
		); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		if status != nil {
			st := models.AllocationStatus(*status)
			o.AllocationStatus = &st
		}
		students = append(students, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

// UpdatePassword replaces a student's password hash
func (r *StudentRepository) UpdatePassword(ctx context.Context, studentID, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE students SET password = $2 WHERE student_id = $1`, studentID, passwordHash)
	if err != nil {
		return fmt.Errorf("error updating student password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

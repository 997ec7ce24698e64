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

// HostelRepository handles database operations for hostels and rooms
type HostelRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewHostelRepository creates a new hostel repository
func NewHostelRepository(db DBTX, sb squirrel.StatementBuilderType) *HostelRepository {
	return &HostelRepository{db: db, sb: sb}
}

// CreateHostel inserts a hostel
func (r *HostelRepository) CreateHostel(ctx context.Context, h *models.Hostel) error {
	query := `
		INSERT INTO hostels (hostel_name, gender_type, warden_name, warden_phone, total_rooms)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING hostel_id
	`
	err := r.db.QueryRow(ctx, query, h.HostelName, h.GenderType, h.WardenName, h.WardenPhone, h.TotalRooms).Scan(&h.HostelID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewAlreadyExistsError("hostel name already exists")
		}
		return fmt.Errorf("error creating hostel: %w", err)
	}
	return nil
}

// CreateRoom inserts a room
func (r *HostelRepository) CreateRoom(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (hostel_id, room_number, floor, capacity, current_occupancy, room_type, has_attached_bathroom)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING room_id
	`
	err := r.db.QueryRow(ctx, query, room.HostelID, room.RoomNumber, room.Floor, room.Capacity,
		room.CurrentOccupancy, room.RoomType, room.HasAttachedBathroom).Scan(&room.RoomID)
	if err != nil {
		switch {
		case dberrors.IsUniqueViolation(err):
			return apperrors.NewAlreadyExistsError("room number already exists in this hostel")
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.NewResourceNotFoundError("hostel not found")
		case dberrors.IsCheckViolation(err):
			return apperrors.NewValidationError("room occupancy must be between 0 and capacity")
		}
		return fmt.Errorf("error creating room: %w", err)
	}
	return nil
}

// ListSummaries lists hostels with room count, capacity and occupancy sums
func (r *HostelRepository) ListSummaries(ctx context.Context) ([]models.HostelSummary, error) {
	query := `
		SELECT h.hostel_id, h.hostel_name, h.gender_type, h.warden_name, h.warden_phone, h.total_rooms,
		       COUNT(r.room_id), COALESCE(SUM(r.capacity), 0), COALESCE(SUM(r.current_occupancy), 0)
		FROM hostels h
		LEFT JOIN rooms r ON r.hostel_id = h.hostel_id
		GROUP BY h.hostel_id
		ORDER BY h.hostel_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying hostels: %w", err)
	}
	defer rows.Close()

	hostels := []models.HostelSummary{}
	for rows.Next() {
		var h models.HostelSummary
		if err := rows.Scan(&h.HostelID, &h.HostelName, &h.GenderType, &h.WardenName, &h.WardenPhone, &h.TotalRooms,
			&h.TotalRoomsCount, &h.TotalCapacity, &h.TotalOccupied); err != nil {
			return nil, fmt.Errorf("error scanning hostel row: %w", err)
		}
		hostels = append(hostels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hostel rows: %w", err)
	}
	return hostels, nil
}

func (r *HostelRepository) listRoomViews(ctx context.Context, q squirrel.SelectBuilder) ([]models.RoomView, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build room query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying rooms: %w", err)
	}
	defer rows.Close()

	rooms := []models.RoomView{}
	for rows.Next() {
		var v models.RoomView
		if err := rows.Scan(&v.RoomID, &v.HostelID, &v.RoomNumber, &v.Floor, &v.Capacity, &v.CurrentOccupancy,
			&v.RoomType, &v.HasAttachedBathroom, &v.HostelName, &v.GenderType, &v.AvailableBeds); err != nil {
			return nil, fmt.Errorf("error scanning room row: %w", err)
		}
		rooms = append(rooms, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating room rows: %w", err)
	}
	return rooms, nil
}

// ListRooms lists the rooms of one hostel ordered by floor and number
func (r *HostelRepository) ListRooms(ctx context.Context, hostelID int64) ([]models.RoomView, error) {
	q := r.sb.Select("r.room_id", "r.hostel_id", "r.room_number", "r.floor", "r.capacity", "r.current_occupancy",
		"r.room_type", "r.has_attached_bathroom", "h.hostel_name", "h.gender_type",
		"(r.capacity - r.current_occupancy) AS available_beds").
		From("rooms r").
		Join("hostels h ON h.hostel_id = r.hostel_id").
		Where(squirrel.Eq{"r.hostel_id": hostelID}).
		OrderBy("r.floor", "r.room_number")
	return r.listRoomViews(ctx, q)
}

// ListAvailableRooms lists rooms with at least one free bed
func (r *HostelRepository) ListAvailableRooms(ctx context.Context) ([]models.RoomView, error) {
	q := r.sb.Select("room_id", "hostel_id", "room_number", "floor", "capacity", "current_occupancy",
		"room_type", "has_attached_bathroom", "hostel_name", "gender_type", "available_beds").
		From("vw_available_rooms").
		OrderBy("hostel_name", "room_number")
	return r.listRoomViews(ctx, q)
}

// GetRoomForUpdate reads a room with a row lock
func (r *HostelRepository) GetRoomForUpdate(ctx context.Context, roomID int64) (*models.Room, error) {
	query := `
		SELECT room_id, hostel_id, room_number, floor, capacity, current_occupancy, room_type, has_attached_bathroom
		FROM rooms
		WHERE room_id = $1
		FOR UPDATE
	`

	var room models.Room
	err := r.db.QueryRow(ctx, query, roomID).Scan(&room.RoomID, &room.HostelID, &room.RoomNumber, &room.Floor,
		&room.Capacity, &room.CurrentOccupancy, &room.RoomType, &room.HasAttachedBathroom)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("error retrieving room: %w", err)
	}
	return &room, nil
}

// AdjustOccupancy changes occupancy by delta within [0, capacity]
func (r *HostelRepository) AdjustOccupancy(ctx context.Context, roomID int64, delta int) error {
	query := `
		UPDATE rooms
		SET current_occupancy = current_occupancy + $2
		WHERE room_id = $1 AND current_occupancy + $2 BETWEEN 0 AND capacity
	`

	tag, err := r.db.Exec(ctx, query, roomID, delta)
	if err != nil {
		if dberrors.IsCheckViolation(err) {
			return apperrors.ErrRoomFull
		}
		return fmt.Errorf("error updating room occupancy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if delta > 0 {
			return apperrors.ErrRoomFull
		}
		return fmt.Errorf("occupancy of room %d cannot drop below zero", roomID)
	}
	return nil
}

package repositories

import (
	"context"
	"time"

	"github.com/yigit/hostelcare/internal/app/models"
)

// IStudentRepository handles student persistence
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, studentID string) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	ListOverview(ctx context.Context) ([]models.StudentOverview, error)
	UpdatePassword(ctx context.Context, studentID, passwordHash string) error
}

// IAdminRepository handles admin account persistence
type IAdminRepository interface {
	Create(ctx context.Context, admin *models.AdminUser) error
	GetByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	Count(ctx context.Context) (int64, error)
}

// IHostelRepository handles hostels and rooms
type IHostelRepository interface {
	CreateHostel(ctx context.Context, hostel *models.Hostel) error
	CreateRoom(ctx context.Context, room *models.Room) error
	ListSummaries(ctx context.Context) ([]models.HostelSummary, error)
	ListRooms(ctx context.Context, hostelID int64) ([]models.RoomView, error)
	ListAvailableRooms(ctx context.Context) ([]models.RoomView, error)
	// GetRoomForUpdate reads a room and locks it until the surrounding transaction ends
	GetRoomForUpdate(ctx context.Context, roomID int64) (*models.Room, error)
	// AdjustOccupancy adds delta to the room's occupancy, refusing to leave [0, capacity]
	AdjustOccupancy(ctx context.Context, roomID int64, delta int) error
}

// IAllocationRepository handles allocations and the joined views built on them
type IAllocationRepository interface {
	Create(ctx context.Context, allocation *models.Allocation) error
	GetActiveByStudent(ctx context.Context, studentID string, forUpdate bool) (*models.Allocation, error)
	// LockActiveForStudents returns and locks the active allocations of the given students,
	// ordered by student ID
	LockActiveForStudents(ctx context.Context, studentIDs ...string) ([]models.Allocation, error)
	UpdateRoom(ctx context.Context, allocationID, roomID int64) error
	End(ctx context.Context, allocationID int64, at time.Time) error
	GetRoomDetails(ctx context.Context, studentID string) (*models.RoomDetails, error)
	ListRoommates(ctx context.Context, studentID string) ([]models.Roommate, error)
	ListSwapTargets(ctx context.Context, studentID string) ([]models.SwapTarget, error)
}

// ISwapRequestRepository handles swap requests
type ISwapRequestRepository interface {
	Create(ctx context.Context, swap *models.SwapRequest) error
	GetByID(ctx context.Context, swapID int64, forUpdate bool) (*models.SwapRequest, error)
	Resolve(ctx context.Context, swapID int64, status models.SwapStatus, resolvedBy string, remarks *string, at time.Time) error
	ListForStudent(ctx context.Context, studentID string) ([]models.SwapRequestView, error)
	List(ctx context.Context, filter models.SwapFilter) ([]models.SwapRequestView, error)
}

// IComplaintRepository handles complaints
type IComplaintRepository interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	// UpdateStatus sets status and response. resolved_date is stamped only when the
	// new status is terminal and is never cleared.
	UpdateStatus(ctx context.Context, complaintID int64, status models.ComplaintStatus, response *string) error
	ListForStudent(ctx context.Context, studentID string) ([]models.Complaint, error)
	List(ctx context.Context, filter models.ComplaintFilter) ([]models.ComplaintView, error)
}

// IStatsRepository provides the dashboard counters
type IStatsRepository interface {
	CountStudents(ctx context.Context) (int64, error)
	CountAllocatedStudents(ctx context.Context) (int64, error)
	CountRooms(ctx context.Context) (int64, error)
	CountOccupiedRooms(ctx context.Context) (int64, error)
	CountPendingSwaps(ctx context.Context) (int64, error)
	CountOpenComplaints(ctx context.Context) (int64, error)
}

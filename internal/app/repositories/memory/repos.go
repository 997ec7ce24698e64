package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/yigit/hostelcare/internal/app/models"
	"github.com/yigit/hostelcare/internal/pkg/apperrors"
)

type studentRepo struct{ *view }

func (r *studentRepo) Create(ctx context.Context, s *models.Student) error {
	return r.do(func(st *state, now time.Time) error {
		if _, ok := st.students[s.StudentID]; ok {
			return apperrors.ErrStudentAlreadyExists
		}
		for _, other := range st.students {
			if strings.EqualFold(other.Email, s.Email) {
				return apperrors.ErrStudentAlreadyExists
			}
		}
		s.CreatedAt = now
		st.students[s.StudentID] = *s
		return nil
	})
}

func (r *studentRepo) GetByID(ctx context.Context, studentID string) (*models.Student, error) {
	var out *models.Student
	err := r.do(func(st *state, _ time.Time) error {
		s, ok := st.students[studentID]
		if !ok {
			return apperrors.ErrStudentNotFound
		}
		out = &s
		return nil
	})
	return out, err
}

func (r *studentRepo) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	var out *models.Student
	err := r.do(func(st *state, _ time.Time) error {
		for _, s := range st.students {
			if strings.EqualFold(s.Email, email) {
				s := s
				out = &s
				return nil
			}
		}
		return apperrors.ErrStudentNotFound
	})
	return out, err
}

func (r *studentRepo) ListOverview(ctx context.Context) ([]models.StudentOverview, error) {
	out := []models.StudentOverview{}
	err := r.do(func(st *state, _ time.Time) error {
		for _, s := range st.students {
			o := models.StudentOverview{Student: s}
			if a, ok := st.activeFor(s.StudentID); ok {
				room := st.rooms[a.RoomID]
				hostel := st.hostels[room.HostelID]
				id, date, status := a.AllocationID, a.AllocationDate, a.Status
				o.AllocationID = &id
				o.HostelName = &hostel.HostelName
				o.RoomNumber = &room.RoomNumber
				o.AllocationDate = &date
				o.AllocationStatus = &status
			}
			out = append(out, o)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].StudentID < out[j].StudentID
	})
	return out, err
}

func (r *studentRepo) UpdatePassword(ctx context.Context, studentID, passwordHash string) error {
	return r.do(func(st *state, _ time.Time) error {
		s, ok := st.students[studentID]
		if !ok {
			return apperrors.ErrStudentNotFound
		}
		s.PasswordHash = passwordHash
		st.students[studentID] = s
		return nil
	})
}

type adminRepo struct{ *view }

func (r *adminRepo) Create(ctx context.Context, a *models.AdminUser) error {
	return r.do(func(st *state, now time.Time) error {
		if _, ok := st.admins[a.Username]; ok {
			return apperrors.ErrAdminAlreadyExists
		}
		st.seq.admin++
		a.AdminID = st.seq.admin
		a.CreatedAt = now
		st.admins[a.Username] = *a
		return nil
	})
}

func (r *adminRepo) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var out *models.AdminUser
	err := r.do(func(st *state, _ time.Time) error {
		a, ok := st.admins[username]
		if !ok {
			return apperrors.ErrAdminNotFound
		}
		out = &a
		return nil
	})
	return out, err
}

func (r *adminRepo) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	return r.do(func(st *state, _ time.Time) error {
		a, ok := st.admins[username]
		if !ok {
			return apperrors.ErrAdminNotFound
		}
		a.PasswordHash = passwordHash
		st.admins[username] = a
		return nil
	})
}

func (r *adminRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.do(func(st *state, _ time.Time) error {
		n = int64(len(st.admins))
		return nil
	})
	return n, err
}

type hostelRepo struct{ *view }

func (r *hostelRepo) CreateHostel(ctx context.Context, h *models.Hostel) error {
	return r.do(func(st *state, _ time.Time) error {
		for _, other := range st.hostels {
			if other.HostelName == h.HostelName {
				return apperrors.NewAlreadyExistsError("hostel name already exists")
			}
		}
		st.seq.hostel++
		h.HostelID = st.seq.hostel
		st.hostels[h.HostelID] = *h
		return nil
	})
}

func (r *hostelRepo) CreateRoom(ctx context.Context, room *models.Room) error {
	return r.do(func(st *state, _ time.Time) error {
		if _, ok := st.hostels[room.HostelID]; !ok {
			return apperrors.NewResourceNotFoundError("hostel not found")
		}
		if room.CurrentOccupancy < 0 || room.CurrentOccupancy > room.Capacity {
			return apperrors.NewValidationError("room occupancy must be between 0 and capacity")
		}
		for _, other := range st.rooms {
			if other.HostelID == room.HostelID && other.RoomNumber == room.RoomNumber {
				return apperrors.NewAlreadyExistsError("room number already exists in this hostel")
			}
		}
		st.seq.room++
		room.RoomID = st.seq.room
		st.rooms[room.RoomID] = *room
		return nil
	})
}

func (r *hostelRepo) ListSummaries(ctx context.Context) ([]models.HostelSummary, error) {
	out := []models.HostelSummary{}
	err := r.do(func(st *state, _ time.Time) error {
		for _, h := range st.hostels {
			sum := models.HostelSummary{Hostel: h}
			for _, room := range st.rooms {
				if room.HostelID == h.HostelID {
					sum.TotalRoomsCount++
					sum.TotalCapacity += int64(room.Capacity)
					sum.TotalOccupied += int64(room.CurrentOccupancy)
				}
			}
			out = append(out, sum)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].HostelName < out[j].HostelName })
	return out, err
}

func roomView(st *state, room models.Room) models.RoomView {
	h := st.hostels[room.HostelID]
	return models.RoomView{
		Room:          room,
		HostelName:    h.HostelName,
		GenderType:    h.GenderType,
		AvailableBeds: room.Capacity - room.CurrentOccupancy,
	}
}

func (r *hostelRepo) ListRooms(ctx context.Context, hostelID int64) ([]models.RoomView, error) {
	out := []models.RoomView{}
	err := r.do(func(st *state, _ time.Time) error {
		for _, room := range st.rooms {
			if room.HostelID == hostelID {
				out = append(out, roomView(st, room))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Floor != out[j].Floor {
			return out[i].Floor < out[j].Floor
		}
		return out[i].RoomNumber < out[j].RoomNumber
	})
	return out, err
}

func (r *hostelRepo) ListAvailableRooms(ctx context.Context) ([]models.RoomView, error) {
	out := []models.RoomView{}
	err := r.do(func(st *state, _ time.Time) error {
		for _, room := range st.rooms {
			if room.CurrentOccupancy < room.Capacity {
				out = append(out, roomView(st, room))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].HostelName != out[j].HostelName {
			return out[i].HostelName < out[j].HostelName
		}
		return out[i].RoomNumber < out[j].RoomNumber
	})
	return out, err
}

func (r *hostelRepo) GetRoomForUpdate(ctx context.Context, roomID int64) (*models.Room, error) {
	var out *models.Room
	err := r.do(func(st *state, _ time.Time) error {
		room, ok := st.rooms[roomID]
		if !ok {
			return apperrors.ErrRoomNotFound
		}
		out = &room
		return nil
	})
	return out, err
}

func (r *hostelRepo) AdjustOccupancy(ctx context.Context, roomID int64, delta int) error {
	return r.do(func(st *state, _ time.Time) error {
		room, ok := st.rooms[roomID]
		if !ok {
			return apperrors.ErrRoomNotFound
		}
		next := room.CurrentOccupancy + delta
		if next > room.Capacity {
			return apperrors.ErrRoomFull
		}
		if next < 0 {
			return errOccupancyUnderflow
		}
		room.CurrentOccupancy = next
		st.rooms[roomID] = room
		return nil
	})
}

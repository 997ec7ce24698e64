package memory

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/yigit/hostelcare/internal/app/models"
	"github.com/yigit/hostelcare/internal/pkg/apperrors"
)

var errOccupancyUnderflow = errors.New("room occupancy cannot drop below zero")

func (s *state) activeFor(studentID string) (models.Allocation, bool) {
	for _, a := range s.allocations {
		if a.StudentID == studentID && a.Status == models.AllocationActive {
			return a, true
		}
	}
	return models.Allocation{}, false
}

type allocationRepo struct{ *view }

func (r *allocationRepo) Create(ctx context.Context, a *models.Allocation) error {
	return r.do(func(st *state, now time.Time) error {
		if _, ok := st.students[a.StudentID]; !ok {
			return apperrors.NewResourceNotFoundError("student or room not found")
		}
		if _, ok := st.rooms[a.RoomID]; !ok {
			return apperrors.NewResourceNotFoundError("student or room not found")
		}
		if _, ok := st.activeFor(a.StudentID); ok {
			return apperrors.ErrActiveAllocationExists
		}
		st.seq.allocation++
		a.AllocationID = st.seq.allocation
		a.AllocationDate = now
		a.Status = models.AllocationActive
		st.allocations[a.AllocationID] = *a
		return nil
	})
}

func (r *allocationRepo) GetActiveByStudent(ctx context.Context, studentID string, forUpdate bool) (*models.Allocation, error) {
	var out *models.Allocation
	err := r.do(func(st *state, _ time.Time) error {
		a, ok := st.activeFor(studentID)
		if !ok {
			return apperrors.ErrActiveAllocationMissing
		}
		out = &a
		return nil
	})
	return out, err
}

func (r *allocationRepo) LockActiveForStudents(ctx context.Context, studentIDs ...string) ([]models.Allocation, error) {
	out := []models.Allocation{}
	err := r.do(func(st *state, _ time.Time) error {
		seen := map[string]bool{}
		for _, id := range studentIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			if a, ok := st.activeFor(id); ok {
				out = append(out, a)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, err
}

func (r *allocationRepo) UpdateRoom(ctx context.Context, allocationID, roomID int64) error {
	return r.do(func(st *state, _ time.Time) error {
		a, ok := st.allocations[allocationID]
		if !ok {
			return apperrors.ErrActiveAllocationMissing
		}
		if _, ok := st.rooms[roomID]; !ok {
			return apperrors.ErrRoomNotFound
		}
		a.RoomID = roomID
		st.allocations[allocationID] = a
		return nil
	})
}

func (r *allocationRepo) End(ctx context.Context, allocationID int64, at time.Time) error {
	return r.do(func(st *state, _ time.Time) error {
		a, ok := st.allocations[allocationID]
		if !ok || a.Status != models.AllocationActive {
			return apperrors.ErrActiveAllocationMissing
		}
		a.Status = models.AllocationEnded
		a.EndDate = &at
		st.allocations[allocationID] = a
		return nil
	})
}

func (r *allocationRepo) GetRoomDetails(ctx context.Context, studentID string) (*models.RoomDetails, error) {
	var out *models.RoomDetails
	err := r.do(func(st *state, _ time.Time) error {
		a, ok := st.activeFor(studentID)
		if !ok {
			return apperrors.ErrActiveAllocationMissing
		}
		s := st.students[studentID]
		room := st.rooms[a.RoomID]
		h := st.hostels[room.HostelID]
		out = &models.RoomDetails{
			StudentID:           s.StudentID,
			Name:                s.Name,
			Email:               s.Email,
			Phone:               s.Phone,
			Department:          s.Department,
			Year:                s.Year,
			RoomID:              room.RoomID,
			HostelName:          h.HostelName,
			WardenName:          h.WardenName,
			WardenPhone:         h.WardenPhone,
			RoomNumber:          room.RoomNumber,
			Floor:               room.Floor,
			Capacity:            room.Capacity,
			CurrentOccupancy:    room.CurrentOccupancy,
			RoomType:            room.RoomType,
			HasAttachedBathroom: room.HasAttachedBathroom,
			AllocationDate:      a.AllocationDate,
			AcademicYear:        a.AcademicYear,
		}
		return nil
	})
	return out, err
}

func (r *allocationRepo) ListRoommates(ctx context.Context, studentID string) ([]models.Roommate, error) {
	out := []models.Roommate{}
	err := r.do(func(st *state, _ time.Time) error {
		mine, ok := st.activeFor(studentID)
		if !ok {
			return nil
		}
		for _, a := range st.allocations {
			if a.Status != models.AllocationActive || a.RoomID != mine.RoomID || a.StudentID == studentID {
				continue
			}
			s := st.students[a.StudentID]
			out = append(out, models.Roommate{
				StudentID:  s.StudentID,
				Name:       s.Name,
				Department: s.Department,
				Year:       s.Year,
				Phone:      s.Phone,
				Email:      s.Email,
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *allocationRepo) ListSwapTargets(ctx context.Context, studentID string) ([]models.SwapTarget, error) {
	out := []models.SwapTarget{}
	err := r.do(func(st *state, _ time.Time) error {
		me, ok := st.students[studentID]
		if !ok {
			return nil
		}
		for _, a := range st.allocations {
			if a.Status != models.AllocationActive || a.StudentID == studentID {
				continue
			}
			s := st.students[a.StudentID]
			if s.Gender != me.Gender {
				continue
			}
			room := st.rooms[a.RoomID]
			out = append(out, models.SwapTarget{
				StudentID:  s.StudentID,
				Name:       s.Name,
				Department: s.Department,
				Year:       s.Year,
				HostelName: st.hostels[room.HostelID].HostelName,
				RoomNumber: room.RoomNumber,
				RoomType:   room.RoomType,
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].HostelName != out[j].HostelName {
			return out[i].HostelName < out[j].HostelName
		}
		if out[i].RoomNumber != out[j].RoomNumber {
			return out[i].RoomNumber < out[j].RoomNumber
		}
		return out[i].StudentID < out[j].StudentID
	})
	return out, err
}

type swapRepo struct{ *view }

func (r *swapRepo) Create(ctx context.Context, s *models.SwapRequest) error {
	return r.do(func(st *state, now time.Time) error {
		if s.RequesterID == s.TargetID {
			return apperrors.NewValidationError("a student cannot swap with themselves")
		}
		if _, ok := st.students[s.RequesterID]; !ok {
			return apperrors.ErrStudentNotFound
		}
		if _, ok := st.students[s.TargetID]; !ok {
			return apperrors.ErrStudentNotFound
		}
		st.seq.swap++
		s.SwapID = st.seq.swap
		s.Status = models.SwapPending
		s.RequestDate = now
		st.swaps[s.SwapID] = *s
		return nil
	})
}

func (r *swapRepo) GetByID(ctx context.Context, swapID int64, forUpdate bool) (*models.SwapRequest, error) {
	var out *models.SwapRequest
	err := r.do(func(st *state, _ time.Time) error {
		s, ok := st.swaps[swapID]
		if !ok {
			return apperrors.ErrSwapNotFound
		}
		out = &s
		return nil
	})
	return out, err
}

func (r *swapRepo) Resolve(ctx context.Context, swapID int64, status models.SwapStatus, resolvedBy string, remarks *string, at time.Time) error {
	return r.do(func(st *state, _ time.Time) error {
		s, ok := st.swaps[swapID]
		if !ok || s.Status != models.SwapPending {
			return apperrors.ErrSwapAlreadyResolved
		}
		s.Status = status
		s.ResolvedBy = &resolvedBy
		s.AdminRemarks = remarks
		s.ResolvedDate = &at
		st.swaps[swapID] = s
		return nil
	})
}

func swapView(st *state, s models.SwapRequest) models.SwapRequestView {
	req, tgt := st.students[s.RequesterID], st.students[s.TargetID]
	r1, r2 := st.rooms[s.RequesterRoomID], st.rooms[s.TargetRoomID]
	return models.SwapRequestView{
		SwapRequest:     s,
		RequesterName:   req.Name,
		RequesterDept:   req.Department,
		RequesterYear:   req.Year,
		TargetName:      tgt.Name,
		TargetDept:      tgt.Department,
		TargetYear:      tgt.Year,
		RequesterRoom:   r1.RoomNumber,
		RequesterHostel: st.hostels[r1.HostelID].HostelName,
		TargetRoom:      r2.RoomNumber,
		TargetHostel:    st.hostels[r2.HostelID].HostelName,
	}
}

func sortSwaps(out []models.SwapRequestView) {
	sort.Slice(out, func(i, j int) bool {
		if ri, rj := out[i].Status.Rank(), out[j].Status.Rank(); ri != rj {
			return ri < rj
		}
		if !out[i].RequestDate.Equal(out[j].RequestDate) {
			return out[i].RequestDate.After(out[j].RequestDate)
		}
		return out[i].SwapID > out[j].SwapID
	})
}

func (r *swapRepo) ListForStudent(ctx context.Context, studentID string) ([]models.SwapRequestView, error) {
	out := []models.SwapRequestView{}
	err := r.do(func(st *state, _ time.Time) error {
		for _, s := range st.swaps {
			if s.RequesterID == studentID || s.TargetID == studentID {
				out = append(out, swapView(st, s))
			}
		}
		return nil
	})
	sortSwaps(out)
	return out, err
}

func (r *swapRepo) List(ctx context.Context, filter models.SwapFilter) ([]models.SwapRequestView, error) {
	out := []models.SwapRequestView{}
	err := r.do(func(st *state, _ time.Time) error {
		for _, s := range st.swaps {
			if filter.Status == "" || s.Status == filter.Status {
				out = append(out, swapView(st, s))
			}
		}
		return nil
	})
	sortSwaps(out)
	return out, err
}

type complaintRepo struct{ *view }

func (r *complaintRepo) Create(ctx context.Context, c *models.Complaint) error {
	return r.do(func(st *state, now time.Time) error {
		if _, ok := st.students[c.StudentID]; !ok {
			return apperrors.ErrStudentNotFound
		}
		if !c.Priority.IsValid() {
			return apperrors.NewValidationError("invalid complaint priority")
		}
		st.seq.complaint++
		c.ComplaintID = st.seq.complaint
		c.Status = models.ComplaintPending
		c.ComplaintDate = now
		st.complaints[c.ComplaintID] = *c
		return nil
	})
}

func (r *complaintRepo) UpdateStatus(ctx context.Context, complaintID int64, status models.ComplaintStatus, response *string) error {
	return r.do(func(st *state, now time.Time) error {
		c, ok := st.complaints[complaintID]
		if !ok {
			return apperrors.ErrComplaintNotFound
		}
		if !status.IsValid() {
			return apperrors.NewValidationError("invalid complaint status")
		}
		c.Status = status
		c.AdminResponse = response
		if status.IsTerminal() {
			c.ResolvedDate = &now
		}
		st.complaints[complaintID] = c
		return nil
	})
}

func lessComplaint(a, b models.Complaint) bool {
	if ra, rb := a.Status.Rank(), b.Status.Rank(); ra != rb {
		return ra < rb
	}
	if !a.ComplaintDate.Equal(b.ComplaintDate) {
		return a.ComplaintDate.After(b.ComplaintDate)
	}
	return a.ComplaintID > b.ComplaintID
}

func (r *complaintRepo) ListForStudent(ctx context.Context, studentID string) ([]models.Complaint, error) {
	out := []models.Complaint{}
	err := r.do(func(st *state, _ time.Time) error {
		for _, c := range st.complaints {
			if c.StudentID == studentID {
				out = append(out, c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return lessComplaint(out[i], out[j]) })
	return out, err
}

func (r *complaintRepo) List(ctx context.Context, filter models.ComplaintFilter) ([]models.ComplaintView, error) {
	out := []models.ComplaintView{}
	err := r.do(func(st *state, _ time.Time) error {
		for _, c := range st.complaints {
			if filter.Status != "" && c.Status != filter.Status {
				continue
			}
			if filter.Priority != "" && c.Priority != filter.Priority {
				continue
			}
			if filter.Category != "" && c.Category != filter.Category {
				continue
			}
			s := st.students[c.StudentID]
			out = append(out, models.ComplaintView{
				Complaint:    c,
				StudentName:  s.Name,
				Department:   s.Department,
				Year:         s.Year,
				StudentPhone: s.Phone,
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return lessComplaint(out[i].Complaint, out[j].Complaint) })
	return out, err
}

type statsRepo struct{ *view }

func (r *statsRepo) count(pred func(st *state) int64) (int64, error) {
	var n int64
	err := r.do(func(st *state, _ time.Time) error {
		n = pred(st)
		return nil
	})
	return n, err
}

func (r *statsRepo) CountStudents(ctx context.Context) (int64, error) {
	return r.count(func(st *state) int64 { return int64(len(st.students)) })
}

func (r *statsRepo) CountAllocatedStudents(ctx context.Context) (int64, error) {
	return r.count(func(st *state) int64 {
		ids := map[string]bool{}
		for _, a := range st.allocations {
			if a.Status == models.AllocationActive {
				ids[a.StudentID] = true
			}
		}
		return int64(len(ids))
	})
}

func (r *statsRepo) CountRooms(ctx context.Context) (int64, error) {
	return r.count(func(st *state) int64 { return int64(len(st.rooms)) })
}

func (r *statsRepo) CountOccupiedRooms(ctx context.Context) (int64, error) {
	return r.count(func(st *state) int64 {
		ids := map[int64]bool{}
		for _, a := range st.allocations {
			if a.Status == models.AllocationActive {
				ids[a.RoomID] = true
			}
		}
		return int64(len(ids))
	})
}

func (r *statsRepo) CountPendingSwaps(ctx context.Context) (int64, error) {
	return r.count(func(st *state) int64 {
		var n int64
		for _, s := range st.swaps {
			if s.Status == models.SwapPending {
				n++
			}
		}
		return n
	})
}

func (r *statsRepo) CountOpenComplaints(ctx context.Context) (int64, error) {
	return r.count(func(st *state) int64 {
		var n int64
		for _, c := range st.complaints {
			if c.Status == models.ComplaintPending || c.Status == models.ComplaintInProgress {
				n++
			}
		}
		return n
	})
}

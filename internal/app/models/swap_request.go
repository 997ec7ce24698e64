package models

import "time"

// SwapRequest records a proposal to exchange two students' rooms.
// RequesterRoomID and TargetRoomID are the rooms held when the request was filed.
type SwapRequest struct {
	SwapID          int64      `json:"swap_id" db:"swap_id"`
	RequesterID     string     `json:"requester_id" db:"requester_id"`
	TargetID        string     `json:"target_id" db:"target_id"`
	RequesterRoomID int64      `json:"requester_room_id" db:"requester_room_id"`
	TargetRoomID    int64      `json:"target_room_id" db:"target_room_id"`
	Reason          string     `json:"reason" db:"reason"`
	Status          SwapStatus `json:"status" db:"status"`
	RequestDate     time.Time  `json:"request_date" db:"request_date"`
	ResolvedDate    *time.Time `json:"resolved_date" db:"resolved_date"`
	ResolvedBy      *string    `json:"resolved_by" db:"resolved_by"`
	AdminRemarks    *string    `json:"admin_remarks" db:"admin_remarks"`
}

// SwapRequestView is a swap request joined with both students and rooms
type SwapRequestView struct {
	SwapRequest
	RequesterName   string `json:"requester_name"`
	RequesterDept   string `json:"requester_dept"`
	RequesterYear   int    `json:"requester_year"`
	TargetName      string `json:"target_name"`
	TargetDept      string `json:"target_dept"`
	TargetYear      int    `json:"target_year"`
	RequesterRoom   string `json:"requester_room"`
	RequesterHostel string `json:"requester_hostel"`
	TargetRoom      string `json:"target_room"`
	TargetHostel    string `json:"target_hostel"`
}

// SwapFilter narrows admin swap listings
type SwapFilter struct {
	Status SwapStatus
}

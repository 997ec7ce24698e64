package models

import "time"

// Allocation links a student to a room for an academic year
type Allocation struct {
	AllocationID   int64            `json:"allocation_id" db:"allocation_id"`
	StudentID      string           `json:"student_id" db:"student_id"`
	RoomID         int64            `json:"room_id" db:"room_id"`
	AcademicYear   string           `json:"academic_year" db:"academic_year"`
	AllocationDate time.Time        `json:"allocation_date" db:"allocation_date"`
	EndDate        *time.Time       `json:"end_date,omitempty" db:"end_date"`
	Status         AllocationStatus `json:"status" db:"status"`
}

// RoomDetails is what a student sees about their current room
type RoomDetails struct {
	StudentID           string    `json:"student_id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	Department          string    `json:"department"`
	Year                int       `json:"year"`
	RoomID              int64     `json:"room_id"`
	HostelName          string    `json:"hostel_name"`
	WardenName          string    `json:"warden_name"`
	WardenPhone         string    `json:"warden_phone"`
	RoomNumber          string    `json:"room_number"`
	Floor               int       `json:"floor"`
	Capacity            int       `json:"capacity"`
	CurrentOccupancy    int       `json:"current_occupancy"`
	RoomType            string    `json:"room_type"`
	HasAttachedBathroom bool      `json:"has_attached_bathroom"`
	AllocationDate      time.Time `json:"allocation_date"`
	AcademicYear        string    `json:"academic_year"`
}

// Roommate is another student actively allocated to the same room
type Roommate struct {
	StudentID  string `json:"student_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Year       int    `json:"year"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// SwapTarget is a peer a student may propose a swap with
type SwapTarget struct {
	StudentID  string `json:"student_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Year       int    `json:"year"`
	HostelName string `json:"hostel_name"`
	RoomNumber string `json:"room_number"`
	RoomType   string `json:"room_type"`
}

package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	StudentID    string     `json:"student_id" db:"student_id" example:"S2024001"`
	Name         string     `json:"name" db:"name" example:"Asha Kumar"`
	Email        string     `json:"email" db:"email" example:"asha@college.edu"`
	PasswordHash string     `json:"-" db:"password"`
	Phone        string     `json:"phone" db:"phone" example:"9876543210"`
	Department   string     `json:"department" db:"department" example:"CSE"`
	Year         int        `json:"year" db:"year" example:"2"`
	Gender       string     `json:"gender" db:"gender" example:"Female"`
	ParentName   string     `json:"parent_name" db:"parent_name"`
	ParentPhone  string     `json:"parent_phone" db:"parent_phone"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Address      string     `json:"address" db:"address"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// StudentOverview is a student joined with their current active allocation, if any
type StudentOverview struct {
	Student
	AllocationID     *int64            `json:"allocation_id"`
	HostelName       *string           `json:"hostel_name"`
	RoomNumber       *string           `json:"room_number"`
	AllocationDate   *time.Time        `json:"allocation_date"`
	AllocationStatus *AllocationStatus `json:"allocation_status"`
}

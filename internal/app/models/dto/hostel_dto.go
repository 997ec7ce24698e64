package dto

import "github.com/yigit/hostelcare/internal/app/models"

// AllocateRoomRequest represents an admin allocating a room to a student
type AllocateRoomRequest struct {
	StudentID    string `json:"student_id" binding:"required,max=20"`
	RoomID       int64  `json:"room_id" binding:"required,min=1"`
	AcademicYear string `json:"academic_year" binding:"omitempty,max=20"`
}

// DeallocateRequest represents an admin ending a student's active allocation
type DeallocateRequest struct {
	StudentID string `json:"student_id" binding:"required,max=20"`
}

// RoomLookupResponse is the answer to "where do I live"
type RoomLookupResponse struct {
	Allocated   bool                `json:"allocated"`
	RoomDetails *models.RoomDetails `json:"roomDetails,omitempty"`
	Roommates   []models.Roommate   `json:"roommates,omitempty"`
	Message     string              `json:"message,omitempty"`
}

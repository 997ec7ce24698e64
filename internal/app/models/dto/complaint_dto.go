package dto

// ComplaintCreate represents a student filing a complaint
type ComplaintCreate struct {
	StudentID   string `json:"student_id" binding:"required,max=20"`
	Category    string `json:"category" binding:"required,max=50"`
	Subject     string `json:"subject" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority"`
}

// ComplaintCreatedResponse is returned after a complaint is filed
type ComplaintCreatedResponse struct {
	Success     bool  `json:"success" example:"true"`
	ComplaintID int64 `json:"complaint_id" example:"7"`
}

// ComplaintStatusUpdate represents an admin changing a complaint's status
type ComplaintStatusUpdate struct {
	ComplaintID   int64  `json:"complaint_id" binding:"required,min=1"`
	Status        string `json:"status" binding:"required"`
	AdminResponse string `json:"admin_response"`
}

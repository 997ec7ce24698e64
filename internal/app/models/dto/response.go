package dto

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Room allocated successfully"`
}

// NewSuccessResponse builds a SuccessResponse
func NewSuccessResponse(message string) SuccessResponse {
	return SuccessResponse{Success: true, Message: message}
}

// DashboardStats holds the six dashboard counters. A counter whose query failed is
// left out and its name listed in Unavailable.
type DashboardStats struct {
	TotalStudents     *int64   `json:"totalStudents,omitempty"`
	AllocatedStudents *int64   `json:"allocatedStudents,omitempty"`
	TotalRooms        *int64   `json:"totalRooms,omitempty"`
	OccupiedRooms     *int64   `json:"occupiedRooms,omitempty"`
	PendingSwaps      *int64   `json:"pendingSwaps,omitempty"`
	PendingComplaints *int64   `json:"pendingComplaints,omitempty"`
	Unavailable       []string `json:"unavailable,omitempty"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"up"`
}

package dto

// SwapRequestCreate represents a student proposing a room swap
type SwapRequestCreate struct {
	RequesterID string `json:"requester_id" binding:"required,max=20"`
	TargetID    string `json:"target_id" binding:"required,max=20,nefield=RequesterID"`
	Reason      string `json:"reason" binding:"max=1000"`
}

// SwapCreatedResponse is returned after a swap request is filed
type SwapCreatedResponse struct {
	Success bool  `json:"success" example:"true"`
	SwapID  int64 `json:"swap_id" example:"12"`
}

// ApproveSwapRequest represents an admin approving a swap.
// The resolving admin is taken from the access token.
type ApproveSwapRequest struct {
	SwapID int64 `json:"swap_id" binding:"required,min=1"`
}

// RejectSwapRequest represents an admin rejecting a swap
type RejectSwapRequest struct {
	SwapID  int64  `json:"swap_id" binding:"required,min=1"`
	Remarks string `json:"remarks" binding:"max=1000"`
}

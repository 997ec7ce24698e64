package models

// AllocationStatus is the lifecycle status of an allocation
type AllocationStatus string

const (
	AllocationActive AllocationStatus = "Active"
	AllocationEnded  AllocationStatus = "Ended"
)

// SwapStatus is the lifecycle status of a swap request
type SwapStatus string

const (
	SwapPending  SwapStatus = "Pending"
	SwapApproved SwapStatus = "Approved"
	SwapRejected SwapStatus = "Rejected"
)

// Rank orders swap requests in listings, Pending first
func (s SwapStatus) Rank() int {
	switch s {
	case SwapPending:
		return 1
	case SwapApproved:
		return 2
	case SwapRejected:
		return 3
	default:
		return 4
	}
}

// IsValid reports whether s is a known swap status
func (s SwapStatus) IsValid() bool {
	return s == SwapPending || s == SwapApproved || s == SwapRejected
}

// ComplaintStatus is the lifecycle status of a complaint
type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "Pending"
	ComplaintInProgress ComplaintStatus = "In Progress"
	ComplaintResolved   ComplaintStatus = "Resolved"
	ComplaintClosed     ComplaintStatus = "Closed"
)

// Rank orders complaints in listings, Pending first
func (s ComplaintStatus) Rank() int {
	switch s {
	case ComplaintPending:
		return 1
	case ComplaintInProgress:
		return 2
	case ComplaintResolved:
		return 3
	case ComplaintClosed:
		return 4
	default:
		return 5
	}
}

// IsValid reports whether s is a known complaint status
func (s ComplaintStatus) IsValid() bool {
	return s.Rank() <= 4
}

// IsTerminal reports whether entering s stamps the resolved date
func (s ComplaintStatus) IsTerminal() bool {
	return s == ComplaintResolved || s == ComplaintClosed
}

// Priority of a complaint
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// DefaultPriority is applied when a complaint is filed without one
const DefaultPriority = PriorityMedium

// IsValid reports whether p is a known priority
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

package models

import "time"

// Complaint is an issue filed by a student
type Complaint struct {
	ComplaintID   int64           `json:"complaint_id" db:"complaint_id"`
	StudentID     string          `json:"student_id" db:"student_id"`
	Category      string          `json:"category" db:"category"`
	Subject       string          `json:"subject" db:"subject"`
	Description   string          `json:"description" db:"description"`
	Priority      Priority        `json:"priority" db:"priority"`
	Status        ComplaintStatus `json:"status" db:"status"`
	AdminResponse *string         `json:"admin_response" db:"admin_response"`
	ComplaintDate time.Time       `json:"complaint_date" db:"complaint_date"`
	ResolvedDate  *time.Time      `json:"resolved_date" db:"resolved_date"`
}

// ComplaintView is a complaint joined with the filing student
type ComplaintView struct {
	Complaint
	StudentName  string `json:"student_name"`
	Department   string `json:"department"`
	Year         int    `json:"year"`
	StudentPhone string `json:"student_phone"`
}

// ComplaintFilter narrows admin complaint listings. Empty fields match everything.
type ComplaintFilter struct {
	Status   ComplaintStatus
	Priority Priority
	Category string
}

package dto

// StudentLoginRequest represents student login credentials
type StudentLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginRequest represents admin login credentials
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StudentSummary is the student profile returned on login
type StudentSummary struct {
	StudentID  string `json:"student_id" example:"S2024001"`
	Name       string `json:"name" example:"Asha Kumar"`
	Email      string `json:"email" example:"asha@college.edu"`
	Department string `json:"department" example:"CSE"`
	Year       int    `json:"year" example:"2"`
}

// AdminSummary is the admin profile returned on login
type AdminSummary struct {
	AdminID  int64  `json:"admin_id" example:"1"`
	Username string `json:"username" example:"warden"`
	FullName string `json:"full_name" example:"Hostel Warden"`
	Role     string `json:"role" example:"Admin"`
}

// StudentLoginResponse represents a successful student login
type StudentLoginResponse struct {
	Success   bool           `json:"success" example:"true"`
	Student   StudentSummary `json:"student"`
	Token     string         `json:"token"`
	ExpiresIn int            `json:"expiresIn" example:"43200"`
}

// AdminLoginResponse represents a successful admin login
type AdminLoginResponse struct {
	Success   bool         `json:"success" example:"true"`
	Admin     AdminSummary `json:"admin"`
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn" example:"43200"`
}

package dto

// AddStudentRequest represents an admin registering a student
type AddStudentRequest struct {
	StudentID   string `json:"student_id" binding:"required,max=20"`
	Name        string `json:"name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Phone       string `json:"phone"`
	Department  string `json:"department" binding:"required,max=50"`
	Year        int    `json:"year" binding:"required,min=1,max=6"`
	Gender      string `json:"gender" binding:"required,oneof=Male Female Other"`
	ParentName  string `json:"parent_name"`
	ParentPhone string `json:"parent_phone"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
}

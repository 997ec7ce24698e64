package models

import "time"

// AdminUser defines the admin account model based on the 'admin_users' table
type AdminUser struct {
	AdminID      int64     `json:"admin_id" db:"admin_id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password"`
	FullName     string    `json:"full_name" db:"full_name"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserRole is the staff account role
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"
)

// User is a staff/admin account for the management surface. Patients and
// doctors are plain records, they do not log in.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Role      UserRole  `gorm:"type:varchar(20);not null;default:'staff'" json:"role"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin checks if the user may manage other users
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type Doctor struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FirstName      string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName       string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Phone          string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Specialization string    `gorm:"type:varchar(100)" json:"specialization,omitempty"`
	LicenseNumber  string    `gorm:"type:varchar(50)" json:"license_number,omitempty"`
	IsActive       bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Schedules    []DoctorSchedule `gorm:"foreignKey:DoctorID" json:"schedules,omitempty"`
	Appointments []Appointment    `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// DisplayName returns the "Dr. First Last" form used in joined projections.
func (d *Doctor) DisplayName() string {
	return "Dr. " + d.FirstName + " " + d.LastName
}

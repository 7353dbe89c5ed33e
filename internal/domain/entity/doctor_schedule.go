package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorSchedule is a weekly recurring availability template, not a calendar
// instance: DayOfWeek 0 is Sunday, 6 is Saturday, and Start/End are "HH:MM"
// times of day applied to every matching date.
type DoctorSchedule struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DayOfWeek   int       `gorm:"not null" json:"day_of_week"`
	StartTime   string    `gorm:"type:time;not null" json:"start_time"`
	EndTime     string    `gorm:"type:time;not null" json:"end_time"`
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (DoctorSchedule) TableName() string {
	return "doctor_schedules"
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a person receiving care. Patients are never hard-deleted,
// they are deactivated instead.
type Patient struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FirstName             string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName              string     `gorm:"type:varchar(100);not null" json:"last_name"`
	Email                 string     `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone                 string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	DateOfBirth           *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Address               string     `gorm:"type:text" json:"address,omitempty"`
	EmergencyContactName  string     `gorm:"type:varchar(200)" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string     `gorm:"type:varchar(20)" json:"emergency_contact_phone,omitempty"`
	InsuranceProvider     string     `gorm:"type:varchar(100)" json:"insurance_provider,omitempty"`
	InsurancePolicyNumber string     `gorm:"type:varchar(50)" json:"insurance_policy_number,omitempty"`
	IsActive              bool       `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt             time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
	Invoices     []Invoice     `gorm:"foreignKey:PatientID" json:"invoices,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// FullName returns the display name used in joined projections.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

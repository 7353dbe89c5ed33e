package repository

import (
	"context"

	"medical-appointment-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	// Create writes the entry inside the caller's transaction so the audit
	// trail commits or rolls back with the change it records.
	Create(tx *gorm.DB, log *entity.AuditLog) error

	FindAll(ctx context.Context, limit, offset int) ([]entity.AuditLog, int64, error)
}

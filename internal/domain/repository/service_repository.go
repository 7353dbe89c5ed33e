package repository

import (
	"context"

	"medical-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	FindAllActive(ctx context.Context) ([]entity.Service, error)
	FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
}

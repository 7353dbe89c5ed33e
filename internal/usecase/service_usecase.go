package usecase

import (
	"context"
	"errors"

	"medical-appointment-api/internal/converter"
	"medical-appointment-api/internal/delivery/dto"
	"medical-appointment-api/internal/domain/entity"
	"medical-appointment-api/internal/domain/repository"
	"medical-appointment-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrInvalidPrice    = errors.New("price must be greater than zero")
)

type ServiceUsecase interface {
	Create(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	GetAll(ctx context.Context) (*dto.ServiceListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type serviceUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	serviceRepo  repository.ServiceRepository
	auditService service.AuditService
}

func NewServiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	serviceRepo repository.ServiceRepository,
	auditService service.AuditService,
) ServiceUsecase {
	return &serviceUsecase{
		db:           db,
		log:          log,
		serviceRepo:  serviceRepo,
		auditService: auditService,
	}
}

func (u *serviceUsecase) Create(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	if req.Price.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPrice
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = service.SlotGranularityMinutes
	}

	svc := &entity.Service{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: duration,
		IsActive:        true,
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(svc).Error; err != nil {
			return err
		}
		return u.auditService.LogCreate(tx, actorID(ctx), entity.AuditActionServiceCreate, "service", svc.ID.String(), svc)
	})
	if err != nil {
		u.log.Warnf("Failed to create service: %+v", err)
		return nil, err
	}

	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) GetAll(ctx context.Context) (*dto.ServiceListResponse, error) {
	services, err := u.serviceRepo.FindAllActive(ctx)
	if err != nil {
		u.log.Warnf("Failed to find services: %+v", err)
		return nil, err
	}

	return &dto.ServiceListResponse{
		Services: converter.ServicesToResponses(services),
		Total:    len(services),
	}, nil
}

func (u *serviceUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error) {
	svc, err := u.serviceRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", id, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := u.serviceRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", id, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	if req.Price.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPrice
	}

	old := *svc

	svc.Name = req.Name
	svc.Description = req.Description
	svc.Price = req.Price
	if req.DurationMinutes != 0 {
		svc.DurationMinutes = req.DurationMinutes
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(svc).Error; err != nil {
			return err
		}
		return u.auditService.LogUpdate(tx, actorID(ctx), entity.AuditActionServiceUpdate, "service", svc.ID.String(), old, svc)
	})
	if err != nil {
		u.log.Warnf("Failed to update service %s: %+v", id, err)
		return nil, err
	}

	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) Deactivate(ctx context.Context, id uuid.UUID) error {
	svc, err := u.serviceRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", id, err)
		return err
	}
	if svc == nil {
		return ErrServiceNotFound
	}

	svc.IsActive = false

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(svc).Error; err != nil {
			return err
		}
		return u.auditService.LogDelete(tx, actorID(ctx), entity.AuditActionServiceDeactivate, "service", svc.ID.String(), svc)
	})
	if err != nil {
		u.log.Warnf("Failed to deactivate service %s: %+v", id, err)
		return err
	}

	return nil
}

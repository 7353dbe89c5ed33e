package usecase

import (
	"context"
	"errors"
	"time"

	"medical-appointment-api/internal/authctx"
	"medical-appointment-api/internal/converter"
	"medical-appointment-api/internal/delivery/dto"
	"medical-appointment-api/internal/domain/entity"
	"medical-appointment-api/internal/domain/repository"
	"medical-appointment-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound   = errors.New("patient not found")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
)

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetAll(ctx context.Context) (*dto.PatientListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	patient := &entity.Patient{
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		Address:               req.Address,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		InsuranceProvider:     req.InsuranceProvider,
		InsurancePolicyNumber: req.InsurancePolicyNumber,
		IsActive:              true,
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		patient.DateOfBirth = &dob
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(patient).Error; err != nil {
			return err
		}
		return u.auditService.LogCreate(tx, actorID(ctx), entity.AuditActionPatientCreate, "patient", patient.ID.String(), patient)
	})
	if err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetAll(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAllActive(ctx)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	old := *patient

	patient.FirstName = req.FirstName
	patient.LastName = req.LastName
	patient.Email = req.Email
	patient.Phone = req.Phone
	patient.Address = req.Address
	patient.EmergencyContactName = req.EmergencyContactName
	patient.EmergencyContactPhone = req.EmergencyContactPhone
	patient.InsuranceProvider = req.InsuranceProvider
	patient.InsurancePolicyNumber = req.InsurancePolicyNumber

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		patient.DateOfBirth = &dob
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(patient).Error; err != nil {
			return err
		}
		return u.auditService.LogUpdate(tx, actorID(ctx), entity.AuditActionPatientUpdate, "patient", patient.ID.String(), old, patient)
	})
	if err != nil {
		u.log.Warnf("Failed to update patient %s: %+v", id, err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

// Deactivate soft-deletes the patient. Rows are never removed so past
// appointments and invoices keep their references.
func (u *patientUsecase) Deactivate(ctx context.Context, id uuid.UUID) error {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	patient.IsActive = false

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(patient).Error; err != nil {
			return err
		}
		return u.auditService.LogDelete(tx, actorID(ctx), entity.AuditActionPatientDeactivate, "patient", patient.ID.String(), patient)
	})
	if err != nil {
		u.log.Warnf("Failed to deactivate patient %s: %+v", id, err)
		return err
	}

	return nil
}

// actorID returns the authenticated user id when the request came through
// the auth middleware, nil on public routes.
func actorID(ctx context.Context) *uuid.UUID {
	if id, ok := authctx.UserID(ctx); ok {
		return &id
	}
	return nil
}

package usecase

import (
	"context"

	"medical-appointment-api/internal/converter"
	"medical-appointment-api/internal/delivery/dto"
	"medical-appointment-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

type AuditLogUsecase interface {
	GetAll(ctx context.Context, limit, offset int) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(log *logrus.Logger, auditLogRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetAll(ctx context.Context, limit, offset int) (*dto.AuditLogListResponse, error) {
	if limit <= 0 {
		limit = auditDefaultLimit
	}
	if limit > auditMaxLimit {
		limit = auditMaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	logs, total, err := u.auditLogRepo.FindAll(ctx, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:   converter.AuditLogsToResponses(logs),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

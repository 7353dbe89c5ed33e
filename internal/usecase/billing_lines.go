package usecase

import (
	"context"

	"medical-appointment-api/internal/delivery/dto"
	"medical-appointment-api/internal/domain/entity"
	"medical-appointment-api/internal/domain/repository"
	"medical-appointment-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// loadBillingLines resolves requested service lines against the active
// catalog and produces both the billing lines for the totals computation
// and the invoice item rows to persist. Any unknown or inactive service
// fails the whole request.
func loadBillingLines(ctx context.Context, log *logrus.Logger, serviceRepo repository.ServiceRepository, requested []dto.InvoiceServiceLine) ([]service.BillingLine, []entity.InvoiceItem, error) {
	ids := make([]uuid.UUID, 0, len(requested))
	for _, line := range requested {
		ids = append(ids, line.ServiceID)
	}

	services, err := serviceRepo.FindActiveByIDs(ctx, ids)
	if err != nil {
		log.Warnf("Failed to load services: %+v", err)
		return nil, nil, err
	}

	byID := make(map[uuid.UUID]entity.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	lines := make([]service.BillingLine, 0, len(requested))
	items := make([]entity.InvoiceItem, 0, len(requested))
	for _, line := range requested {
		svc, ok := byID[line.ServiceID]
		if !ok {
			return nil, nil, ErrServiceNotFound
		}

		quantity := line.Quantity
		if quantity == 0 {
			quantity = 1
		}

		billing := service.BillingLine{Quantity: quantity, UnitPrice: svc.Price}
		lines = append(lines, billing)
		items = append(items, entity.InvoiceItem{
			ServiceID:   svc.ID,
			Quantity:    quantity,
			UnitPrice:   svc.Price,
			TotalPrice:  billing.LineTotal(),
			Description: svc.Name,
		})
	}
	return lines, items, nil
}

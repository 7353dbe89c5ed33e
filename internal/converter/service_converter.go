package converter

import (
	"medical-appointment-api/internal/delivery/dto"
	"medical-appointment-api/internal/domain/entity"
)

// ServiceToResponse converts a Service entity to its response DTO
func ServiceToResponse(service *entity.Service) *dto.ServiceResponse {
	if service == nil {
		return nil
	}

	return &dto.ServiceResponse{
		ID:              service.ID,
		Name:            service.Name,
		Description:     service.Description,
		Price:           service.Price,
		DurationMinutes: service.DurationMinutes,
		IsActive:        service.IsActive,
		CreatedAt:       service.CreatedAt,
		UpdatedAt:       service.UpdatedAt,
	}
}

// ServicesToResponses converts a slice of Service entities
func ServicesToResponses(services []entity.Service) []dto.ServiceResponse {
	responses := make([]dto.ServiceResponse, len(services))
	for i := range services {
		responses[i] = *ServiceToResponse(&services[i])
	}
	return responses
}

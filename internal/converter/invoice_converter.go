package converter

import (
	"medical-appointment-api/internal/delivery/dto"
	"medical-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

// InvoiceToResponse converts an Invoice entity with its items to the
// response DTO. The patient name is filled when the relation was preloaded.
func InvoiceToResponse(invoice *entity.Invoice) *dto.InvoiceResponse {
	if invoice == nil {
		return nil
	}

	resp := &dto.InvoiceResponse{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		PatientID:     invoice.PatientID,
		AppointmentID: invoice.AppointmentID,
		InvoiceDate:   invoice.InvoiceDate.Format("2006-01-02"),
		Subtotal:      invoice.Subtotal,
		TaxAmount:     invoice.TaxAmount,
		TotalAmount:   invoice.TotalAmount,
		Status:        string(invoice.Status),
		PaymentMethod: invoice.PaymentMethod,
		PaymentDate:   invoice.PaymentDate,
		Notes:         invoice.Notes,
	}

	if invoice.DueDate != nil {
		resp.DueDate = invoice.DueDate.Format("2006-01-02")
	}
	if invoice.Patient.ID != uuid.Nil {
		resp.PatientName = invoice.Patient.FullName()
	}

	resp.Items = make([]dto.InvoiceItemResponse, len(invoice.Items))
	for i, item := range invoice.Items {
		resp.Items[i] = dto.InvoiceItemResponse{
			ID:          item.ID,
			ServiceID:   item.ServiceID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			Description: item.Description,
		}
	}

	return resp
}

// InvoicesToResponses converts a slice of Invoice entities
func InvoicesToResponses(invoices []entity.Invoice) []dto.InvoiceResponse {
	responses := make([]dto.InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = *InvoiceToResponse(&invoices[i])
	}
	return responses
}

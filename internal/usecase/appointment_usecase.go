package usecase

import (
	"context"
	"errors"
	"time"

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
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrAppointmentNotScheduled = errors.New("appointment is not in scheduled status")
	ErrDateInPast              = errors.New("appointment date cannot be in the past")
	ErrInvalidTimeFormat       = errors.New("invalid time format, use HH:MM")
	ErrOutsideSchedule         = errors.New("requested time is outside the doctor's working hours")
	ErrSlotUnavailable         = errors.New("time slot is no longer available")
)

type AppointmentUsecase interface {
	Schedule(ctx context.Context, req *dto.ScheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAll(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	GetAvailableTimeSlots(ctx context.Context, doctorID uuid.UUID, date string, durationMinutes int) (*dto.TimeSlotListResponse, error)
	CompleteWithBilling(ctx context.Context, id uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.CompleteAppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	scheduleRepo    repository.DoctorScheduleRepository
	serviceRepo     repository.ServiceRepository
	invoiceRepo     repository.InvoiceRepository
	slotCache       *service.SlotCacheService
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	scheduleRepo repository.DoctorScheduleRepository,
	serviceRepo repository.ServiceRepository,
	invoiceRepo repository.InvoiceRepository,
	slotCache *service.SlotCacheService,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		scheduleRepo:    scheduleRepo,
		serviceRepo:     serviceRepo,
		invoiceRepo:     invoiceRepo,
		slotCache:       slotCache,
		auditService:    auditService,
	}
}

// Schedule books an appointment. The availability check and the insert run
// in one transaction that holds a row lock on the doctor, so two concurrent
// requests for the same doctor serialize and the loser sees the winner's
// booking. A partial unique index on (doctor, date, time) backstops the
// check for exact-slot collisions.
func (u *appointmentUsecase) Schedule(ctx context.Context, req *dto.ScheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	start, err := service.ParseClock(req.AppointmentTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = service.SlotGranularityMinutes
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, ErrDateInPast
	}

	patient, err := u.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil || !patient.IsActive {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorRepo.FindByID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsActive {
		return nil, ErrDoctorNotFound
	}

	windows, err := u.workingWindows(ctx, req.DoctorID, date)
	if err != nil {
		return nil, err
	}
	if !service.FitsWindows(windows, start, duration) {
		return nil, ErrOutsideSchedule
	}

	appointment := &entity.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: date,
		AppointmentTime: service.FormatClock(start),
		DurationMinutes: duration,
		Status:          entity.AppointmentStatusScheduled,
		Notes:           req.Notes,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serializes all bookings for this doctor.
		locked, err := u.doctorRepo.LockByID(tx, req.DoctorID)
		if err != nil {
			return err
		}
		if locked == nil || !locked.IsActive {
			return ErrDoctorNotFound
		}

		busy, err := u.appointmentRepo.FindActiveForDoctorDate(tx, req.DoctorID, date)
		if err != nil {
			return err
		}
		if service.ConflictsWith(busyIntervals(busy), start, duration) {
			return ErrSlotUnavailable
		}

		if err := u.appointmentRepo.Create(tx, appointment); err != nil {
			if isDuplicateKeyError(err) {
				return ErrSlotUnavailable
			}
			return err
		}

		return u.auditService.LogCreate(tx, actorID(ctx), entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), appointment)
	})
	if err != nil {
		if errors.Is(err, ErrSlotUnavailable) || errors.Is(err, ErrDoctorNotFound) {
			return nil, err
		}
		u.log.Warnf("Failed to schedule appointment: %+v", err)
		return nil, err
	}

	u.slotCache.Invalidate(ctx, req.DoctorID, date)

	resp := converter.AppointmentToResponse(appointment)
	resp.PatientName = patient.FullName()
	resp.DoctorName = doctor.DisplayName()
	return resp, nil
}

func (u *appointmentUsecase) GetAll(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

// Cancel frees the appointment's slot. Only scheduled appointments can be
// cancelled; completed ones are part of the billing record.
func (u *appointmentUsecase) Cancel(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	var appointment *entity.Appointment

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		appointment, err = u.appointmentRepo.LockByID(tx, id)
		if err != nil {
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}
		if !appointment.IsScheduled() {
			return ErrAppointmentNotScheduled
		}

		appointment.Cancel()
		if err := u.appointmentRepo.Update(tx, appointment); err != nil {
			return err
		}

		return u.auditService.LogUpdate(tx, actorID(ctx), entity.AuditActionAppointmentCancel, "appointment", appointment.ID.String(), nil, appointment)
	})
	if err != nil {
		if !errors.Is(err, ErrAppointmentNotFound) && !errors.Is(err, ErrAppointmentNotScheduled) {
			u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		}
		return nil, err
	}

	u.slotCache.Invalidate(ctx, appointment.DoctorID, appointment.AppointmentDate)

	return converter.AppointmentToResponse(appointment), nil
}

// GetAvailableTimeSlots computes the bookable start times for a doctor and
// date. Results are cached; the cache is advisory only and booking always
// re-checks inside the transaction.
func (u *appointmentUsecase) GetAvailableTimeSlots(ctx context.Context, doctorID uuid.UUID, dateStr string, durationMinutes int) (*dto.TimeSlotListResponse, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if date.Before(time.Now().UTC().Truncate(24 * time.Hour)) {
		return nil, ErrDateInPast
	}

	duration := durationMinutes
	if duration == 0 {
		duration = service.SlotGranularityMinutes
	}

	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if slots, ok := u.slotCache.Get(ctx, doctorID, date, duration); ok {
		return slotListResponse(slots), nil
	}

	windows, err := u.workingWindows(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	active, err := u.appointmentRepo.FindActiveForDoctorDate(u.db.WithContext(ctx), doctorID, date)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s on %s: %+v", doctorID, dateStr, err)
		return nil, err
	}

	slots := service.BuildTimeSlots(windows, busyIntervals(active), duration)
	u.slotCache.Set(ctx, doctorID, date, duration, slots)

	return slotListResponse(slots), nil
}

// CompleteWithBilling marks the appointment completed and issues the
// invoice for the performed services in a single transaction. Either both
// records commit or neither does.
func (u *appointmentUsecase) CompleteWithBilling(ctx context.Context, id uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.CompleteAppointmentResponse, error) {
	lines, items, err := loadBillingLines(ctx, u.log, u.serviceRepo, req.Services)
	if err != nil {
		return nil, err
	}

	totals := service.CalculateTotals(lines, decimal.NewFromFloat(req.TaxRate))
	now := time.Now().UTC()

	invoice := &entity.Invoice{
		InvoiceNumber: service.GenerateInvoiceNumber(now),
		InvoiceDate:   now.Truncate(24 * time.Hour),
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.TaxAmount,
		TotalAmount:   totals.TotalAmount,
		Status:        entity.InvoiceStatusPending,
		Items:         items,
	}
	if req.PaymentMethod != "" {
		invoice.MarkPaid(req.PaymentMethod, now)
	}

	var appointment *entity.Appointment

	// One retry with a fresh number absorbs the rare suffix collision
	// against the unique invoice_number column.
	for attempt := 0; ; attempt++ {
		err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			appointment, err = u.appointmentRepo.LockByID(tx, id)
			if err != nil {
				return err
			}
			if appointment == nil {
				return ErrAppointmentNotFound
			}
			if !appointment.IsScheduled() {
				return ErrAppointmentNotScheduled
			}

			appointment.Complete()
			if err := u.appointmentRepo.Update(tx, appointment); err != nil {
				return err
			}

			invoice.PatientID = appointment.PatientID
			invoice.AppointmentID = &appointment.ID
			if err := u.invoiceRepo.Create(tx, invoice); err != nil {
				return err
			}

			if err := u.auditService.LogUpdate(tx, actorID(ctx), entity.AuditActionAppointmentComplete, "appointment", appointment.ID.String(), nil, appointment); err != nil {
				return err
			}
			return u.auditService.LogCreate(tx, actorID(ctx), entity.AuditActionInvoiceCreate, "invoice", invoice.ID.String(), invoice)
		})
		if err != nil && attempt == 0 && isDuplicateKeyError(err) {
			invoice.InvoiceNumber = service.GenerateInvoiceNumber(now)
			continue
		}
		break
	}
	if err != nil {
		if !errors.Is(err, ErrAppointmentNotFound) && !errors.Is(err, ErrAppointmentNotScheduled) {
			u.log.Warnf("Failed to complete appointment %s: %+v", id, err)
		}
		return nil, err
	}

	u.slotCache.Invalidate(ctx, appointment.DoctorID, appointment.AppointmentDate)

	return &dto.CompleteAppointmentResponse{
		AppointmentID: appointment.ID,
		InvoiceID:     invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		TotalAmount:   invoice.TotalAmount,
	}, nil
}

// workingWindows resolves the doctor's available windows for a concrete
// date from the weekly template. No schedule rows means no windows.
func (u *appointmentUsecase) workingWindows(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]service.Window, error) {
	schedules, err := u.scheduleRepo.FindWindows(ctx, doctorID, int(date.Weekday()))
	if err != nil {
		u.log.Warnf("Failed to find schedule windows for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	windows := make([]service.Window, 0, len(schedules))
	for _, s := range schedules {
		start, err := service.ParseClock(s.StartTime)
		if err != nil {
			u.log.Warnf("Skipping malformed schedule %s start %q: %+v", s.ID, s.StartTime, err)
			continue
		}
		end, err := service.ParseClock(s.EndTime)
		if err != nil {
			u.log.Warnf("Skipping malformed schedule %s end %q: %+v", s.ID, s.EndTime, err)
			continue
		}
		windows = append(windows, service.Window{Start: start, End: end})
	}
	return windows, nil
}

func busyIntervals(appointments []entity.Appointment) []service.Interval {
	intervals := make([]service.Interval, 0, len(appointments))
	for _, a := range appointments {
		start, err := service.ParseClock(a.AppointmentTime)
		if err != nil {
			continue
		}
		intervals = append(intervals, service.Interval{Start: start, End: start + a.DurationMinutes})
	}
	return intervals
}

func slotListResponse(slots []service.TimeSlot) *dto.TimeSlotListResponse {
	responses := make([]dto.TimeSlotResponse, 0, len(slots))
	for _, s := range slots {
		responses = append(responses, dto.TimeSlotResponse{
			Time:        s.Time,
			IsAvailable: s.IsAvailable,
		})
	}
	return &dto.TimeSlotListResponse{
		Slots: responses,
		Total: len(responses),
	}
}

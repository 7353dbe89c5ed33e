package http

import (
	"net/http"

	"medical-appointment-api/internal/delivery/http/handler"
	"medical-appointment-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                *mux.Router
	authHandler           *handler.AuthHandler
	patientHandler        *handler.PatientHandler
	doctorHandler         *handler.DoctorHandler
	doctorScheduleHandler *handler.DoctorScheduleHandler
	serviceHandler        *handler.ServiceHandler
	appointmentHandler    *handler.AppointmentHandler
	invoiceHandler        *handler.InvoiceHandler
	auditLogHandler       *handler.AuditLogHandler
	authMiddleware        *middleware.AuthMiddleware
	corsMiddleware        *middleware.CORSMiddleware
	recoveryMiddleware    *middleware.RecoveryMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	doctorScheduleHandler *handler.DoctorScheduleHandler,
	serviceHandler *handler.ServiceHandler,
	appointmentHandler *handler.AppointmentHandler,
	invoiceHandler *handler.InvoiceHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	recoveryMiddleware *middleware.RecoveryMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		authHandler:           authHandler,
		patientHandler:        patientHandler,
		doctorHandler:         doctorHandler,
		doctorScheduleHandler: doctorScheduleHandler,
		serviceHandler:        serviceHandler,
		appointmentHandler:    appointmentHandler,
		invoiceHandler:        invoiceHandler,
		auditLogHandler:       auditLogHandler,
		authMiddleware:        authMiddleware,
		corsMiddleware:        corsMiddleware,
		recoveryMiddleware:    recoveryMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Health check
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	api := r.router.PathPrefix("/api").Subrouter()

	// Front-desk routes (public)
	api.HandleFunc("/patients", r.patientHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/patients", r.patientHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/patients/{id}", r.patientHandler.GetByID).Methods(http.MethodGet)

	api.HandleFunc("/doctors", r.doctorHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/schedule", r.doctorHandler.GetSchedule).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/available-slots", r.doctorHandler.GetAvailableSlots).Methods(http.MethodGet)

	api.HandleFunc("/services", r.serviceHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/services/{id}", r.serviceHandler.GetByID).Methods(http.MethodGet)

	api.HandleFunc("/appointments", r.appointmentHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/appointments", r.appointmentHandler.Schedule).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}", r.appointmentHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}/complete", r.appointmentHandler.Complete).Methods(http.MethodPost)

	api.HandleFunc("/invoices", r.invoiceHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/invoices", r.invoiceHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/invoices/{id}", r.invoiceHandler.GetByID).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Management routes (protected). Staff may run the front-desk write
	// operations; destructive and account operations stay admin only.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireStaff)

	admin.HandleFunc("/patients/{id}", r.patientHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)
	admin.HandleFunc("/invoices/{id}/pay", r.invoiceHandler.MarkPaid).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}/schedules", r.doctorScheduleHandler.GetByDoctorID).Methods(http.MethodGet)

	adminOnly := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAdmin(h)
	}

	admin.Handle("/users", adminOnly(r.authHandler.Register)).Methods(http.MethodPost)

	admin.Handle("/patients/{id}", adminOnly(r.patientHandler.Deactivate)).Methods(http.MethodDelete)

	admin.Handle("/doctors", adminOnly(r.doctorHandler.Create)).Methods(http.MethodPost)
	admin.Handle("/doctors/{id}", adminOnly(r.doctorHandler.Update)).Methods(http.MethodPut)
	admin.Handle("/doctors/{id}", adminOnly(r.doctorHandler.Deactivate)).Methods(http.MethodDelete)

	admin.Handle("/schedules", adminOnly(r.doctorScheduleHandler.Create)).Methods(http.MethodPost)
	admin.Handle("/schedules/{id}", adminOnly(r.doctorScheduleHandler.Update)).Methods(http.MethodPut)
	admin.Handle("/schedules/{id}", adminOnly(r.doctorScheduleHandler.Delete)).Methods(http.MethodDelete)

	admin.Handle("/services", adminOnly(r.serviceHandler.Create)).Methods(http.MethodPost)
	admin.Handle("/services/{id}", adminOnly(r.serviceHandler.Update)).Methods(http.MethodPut)
	admin.Handle("/services/{id}", adminOnly(r.serviceHandler.Deactivate)).Methods(http.MethodDelete)

	admin.Handle("/audit-logs", adminOnly(r.auditLogHandler.GetAll)).Methods(http.MethodGet)

	r.router.Use(r.recoveryMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

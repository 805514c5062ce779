package http

import (
	"net/http"

	"smart-bed-allocation/internal/delivery/http/handler"
	"smart-bed-allocation/internal/delivery/http/middleware"
	"smart-bed-allocation/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	allocationHandler *handler.AllocationHandler
	hospitalHandler   *handler.HospitalHandler
	bookingHandler    *handler.BookingHandler
	adminHandler      *handler.AdminHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	allocationHandler *handler.AllocationHandler,
	hospitalHandler *handler.HospitalHandler,
	bookingHandler *handler.BookingHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		allocationHandler: allocationHandler,
		hospitalHandler:   hospitalHandler,
		bookingHandler:    bookingHandler,
		adminHandler:      adminHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Hospital search and registry reads (any authenticated user)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/hospitals/search", r.allocationHandler.SearchNearestHospital).Methods(http.MethodPost)
	protected.HandleFunc("/hospitals", r.hospitalHandler.GetAllHospitals).Methods(http.MethodGet)
	protected.HandleFunc("/hospitals/{name}", r.hospitalHandler.GetHospital).Methods(http.MethodGet)
	protected.HandleFunc("/hospitals/{name}/availability", r.hospitalHandler.GetBedAvailability).Methods(http.MethodGet)

	// Bed allocation and booking history (patients and admins)
	booking := api.PathPrefix("").Subrouter()
	booking.Use(r.authMiddleware.Authenticate)
	booking.Use(middleware.RequireRole(entity.RoleIDPatient, entity.RoleIDAdmin))
	booking.HandleFunc("/beds/allocate", r.allocationHandler.AllocateBed).Methods(http.MethodPost)
	booking.HandleFunc("/bookings", r.bookingHandler.GetPatientBookings).Methods(http.MethodGet)
	booking.HandleFunc("/bookings/{id}", r.bookingHandler.GetBooking).Methods(http.MethodGet)

	// Bed management (hospital operators and admins)
	management := api.PathPrefix("").Subrouter()
	management.Use(r.authMiddleware.Authenticate)
	management.Use(middleware.RequireAdminOrOperator)
	management.HandleFunc("/hospitals/{name}/beds", r.hospitalHandler.UpdateBedCount).Methods(http.MethodPut)
	management.HandleFunc("/hospitals/{name}/discharge", r.hospitalHandler.DischargePatient).Methods(http.MethodPost)
	management.HandleFunc("/hospitals/{name}/bookings", r.hospitalHandler.GetHospitalBookings).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/reconcile", r.adminHandler.ReconcileRegistry).Methods(http.MethodPost)
	admin.HandleFunc("/audit-logs", r.adminHandler.GetAuditLogs).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

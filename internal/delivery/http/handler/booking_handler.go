package handler

import (
	"errors"
	"net/http"

	"smart-bed-allocation/internal/usecase"
	"smart-bed-allocation/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
	}
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	booking, err := h.bookingUsecase.GetBooking(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, usecase.ErrStorageUnavailable):
			response.ServiceUnavailable(w, "Booking ledger is temporarily unavailable")
		default:
			response.InternalServerError(w, "Failed to get booking")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

// GetPatientBookings returns the booking history for a patient identified by
// name and phone query parameters.
func (h *BookingHandler) GetPatientBookings(w http.ResponseWriter, r *http.Request) {
	patientName := r.URL.Query().Get("patient_name")
	phone := r.URL.Query().Get("phone")
	if patientName == "" || phone == "" {
		response.Error(w, http.StatusBadRequest, "patient_name and phone query parameters are required", nil)
		return
	}

	bookings, err := h.bookingUsecase.GetPatientBookings(r.Context(), patientName, phone)
	if err != nil {
		if errors.Is(err, usecase.ErrStorageUnavailable) {
			response.ServiceUnavailable(w, "Booking ledger is temporarily unavailable")
			return
		}
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

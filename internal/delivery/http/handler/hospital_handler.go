package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"smart-bed-allocation/internal/delivery/dto"
	"smart-bed-allocation/internal/usecase"
	"smart-bed-allocation/pkg/response"
	"smart-bed-allocation/pkg/validator"

	"github.com/gorilla/mux"
)

type HospitalHandler struct {
	hospitalUsecase  usecase.HospitalUsecase
	dischargeUsecase usecase.DischargeUsecase
	bookingUsecase   usecase.BookingUsecase
	validator        *validator.CustomValidator
}

func NewHospitalHandler(
	hospitalUsecase usecase.HospitalUsecase,
	dischargeUsecase usecase.DischargeUsecase,
	bookingUsecase usecase.BookingUsecase,
	validator *validator.CustomValidator,
) *HospitalHandler {
	return &HospitalHandler{
		hospitalUsecase:  hospitalUsecase,
		dischargeUsecase: dischargeUsecase,
		bookingUsecase:   bookingUsecase,
		validator:        validator,
	}
}

func (h *HospitalHandler) GetAllHospitals(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.hospitalUsecase.GetAllHospitals(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrStorageUnavailable) {
			response.ServiceUnavailable(w, "Hospital registry is temporarily unavailable")
			return
		}
		response.InternalServerError(w, "Failed to get hospitals")
		return
	}

	response.Success(w, http.StatusOK, "Hospitals retrieved successfully", hospitals)
}

func (h *HospitalHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	hospital, err := h.hospitalUsecase.GetHospital(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrHospitalNotFound):
			response.NotFound(w, "Hospital not found")
		case errors.Is(err, usecase.ErrStorageUnavailable):
			response.ServiceUnavailable(w, "Hospital registry is temporarily unavailable")
		default:
			response.InternalServerError(w, "Failed to get hospital")
		}
		return
	}

	response.Success(w, http.StatusOK, "Hospital retrieved successfully", hospital)
}

func (h *HospitalHandler) GetBedAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	availability, err := h.hospitalUsecase.GetBedAvailability(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrHospitalNotFound):
			response.NotFound(w, "Hospital not found")
		case errors.Is(err, usecase.ErrStorageUnavailable):
			response.ServiceUnavailable(w, "Hospital registry is temporarily unavailable")
		default:
			response.InternalServerError(w, "Failed to get bed availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Bed availability retrieved successfully", availability)
}

func (h *HospitalHandler) UpdateBedCount(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	var req dto.UpdateBedCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hospital, err := h.hospitalUsecase.UpdateAvailableBeds(r.Context(), name, *req.AvailableBeds)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrHospitalNotFound):
			response.NotFound(w, "Hospital not found")
		case errors.Is(err, usecase.ErrHospitalAccessDenied):
			response.Forbidden(w, "You can only manage your own hospital")
		case errors.Is(err, usecase.ErrBedCountExceedsTotal):
			response.Error(w, http.StatusBadRequest, "Available beds cannot exceed total beds", nil)
		case errors.Is(err, usecase.ErrBedCountBelowAdmitted):
			response.Conflict(w, "Bed count would drop below the number of admitted patients")
		case errors.Is(err, usecase.ErrBedCountConflict):
			response.Conflict(w, "Bed counts changed concurrently, please retry")
		case errors.Is(err, usecase.ErrStorageUnavailable):
			response.ServiceUnavailable(w, "Hospital registry is temporarily unavailable")
		default:
			response.InternalServerError(w, "Failed to update bed count")
		}
		return
	}

	response.Success(w, http.StatusOK, "Bed count updated successfully", hospital)
}

func (h *HospitalHandler) DischargePatient(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	var req dto.DischargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	err := h.dischargeUsecase.DischargePatient(r.Context(), name, req.PatientName, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrHospitalNotFound):
			response.NotFound(w, "Hospital not found")
		case errors.Is(err, usecase.ErrHospitalAccessDenied):
			response.Forbidden(w, "You can only manage your own hospital")
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found in hospital roster")
		case errors.Is(err, usecase.ErrDischargeConflict):
			response.Conflict(w, "Patient was discharged concurrently")
		case errors.Is(err, usecase.ErrStorageUnavailable):
			response.ServiceUnavailable(w, "Hospital registry is temporarily unavailable")
		default:
			response.InternalServerError(w, "Failed to discharge patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient discharged successfully", nil)
}

func (h *HospitalHandler) GetHospitalBookings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	bookings, err := h.bookingUsecase.GetHospitalBookings(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrHospitalNotFound):
			response.NotFound(w, "Hospital not found")
		case errors.Is(err, usecase.ErrHospitalAccessDenied):
			response.Forbidden(w, "You can only manage your own hospital")
		case errors.Is(err, usecase.ErrStorageUnavailable):
			response.ServiceUnavailable(w, "Hospital registry is temporarily unavailable")
		default:
			response.InternalServerError(w, "Failed to get bookings")
		}
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

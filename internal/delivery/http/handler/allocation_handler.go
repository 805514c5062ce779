package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"smart-bed-allocation/internal/delivery/dto"
	"smart-bed-allocation/internal/usecase"
	"smart-bed-allocation/pkg/response"
	"smart-bed-allocation/pkg/validator"
)

type AllocationHandler struct {
	allocationUsecase usecase.AllocationUsecase
	validator         *validator.CustomValidator
}

func NewAllocationHandler(allocationUsecase usecase.AllocationUsecase, validator *validator.CustomValidator) *AllocationHandler {
	return &AllocationHandler{
		allocationUsecase: allocationUsecase,
		validator:         validator,
	}
}

func (h *AllocationHandler) SearchNearestHospital(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchHospitalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	nearest, err := h.allocationUsecase.FindNearestHospital(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidSearchRadius):
			response.Error(w, http.StatusBadRequest, "Search radius must be between 5 and 50 km", nil)
		case errors.Is(err, usecase.ErrNoHospitalInRange):
			response.NotFound(w, "No hospital with available beds within the search radius")
		case errors.Is(err, usecase.ErrStorageUnavailable):
			response.ServiceUnavailable(w, "Hospital registry is temporarily unavailable")
		default:
			response.InternalServerError(w, "Failed to search hospitals")
		}
		return
	}

	response.Success(w, http.StatusOK, "Nearest hospital found", nearest)
}

func (h *AllocationHandler) AllocateBed(w http.ResponseWriter, r *http.Request) {
	var req dto.AllocateBedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	confirmation, err := h.allocationUsecase.AllocateBed(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrHospitalNotFound):
			response.NotFound(w, "Hospital not found")
		case errors.Is(err, usecase.ErrNoBedsAvailable):
			response.Conflict(w, "No beds available at this hospital")
		case errors.Is(err, usecase.ErrAlreadyAdmitted):
			response.Conflict(w, "Patient is already admitted to this hospital")
		case errors.Is(err, usecase.ErrAllocationConflict):
			response.Conflict(w, "Bed was taken by a concurrent booking, please retry")
		case errors.Is(err, usecase.ErrStorageUnavailable):
			response.ServiceUnavailable(w, "Hospital registry is temporarily unavailable")
		default:
			response.InternalServerError(w, "Failed to allocate bed")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Bed allocated successfully", confirmation)
}

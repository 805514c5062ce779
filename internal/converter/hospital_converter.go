package converter

import (
	"smart-bed-allocation/internal/delivery/dto"
	"smart-bed-allocation/internal/domain/entity"
)

// HospitalToResponse converts a Hospital entity to HospitalResponse DTO
func HospitalToResponse(hospital *entity.Hospital) *dto.HospitalResponse {
	if hospital == nil {
		return nil
	}

	response := &dto.HospitalResponse{
		Name:          hospital.Name,
		Latitude:      hospital.Latitude,
		Longitude:     hospital.Longitude,
		TotalBeds:     hospital.TotalBeds,
		AvailableBeds: hospital.AvailableBeds,
		OccupiedBeds:  hospital.OccupiedBeds,
		Patients:      AdmissionsToResponses(hospital.Patients),
	}

	if hospital.TotalBeds > 0 {
		response.OccupancyRate = float64(hospital.OccupiedBeds) / float64(hospital.TotalBeds) * 100
	}

	return response
}

// HospitalsToResponses converts a slice of Hospital entities to response DTOs
func HospitalsToResponses(hospitals []entity.Hospital) []dto.HospitalResponse {
	responses := make([]dto.HospitalResponse, len(hospitals))
	for i, hospital := range hospitals {
		resp := HospitalToResponse(&hospital)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// AdmissionsToResponses converts roster rows to response DTOs
func AdmissionsToResponses(admissions []entity.Admission) []dto.AdmissionResponse {
	if len(admissions) == 0 {
		return nil
	}
	responses := make([]dto.AdmissionResponse, len(admissions))
	for i, admission := range admissions {
		responses[i] = dto.AdmissionResponse{
			PatientName:   admission.PatientName,
			Phone:         admission.Phone,
			Symptoms:      admission.Symptoms,
			AdmissionDate: admission.AdmissionDate,
		}
	}
	return responses
}

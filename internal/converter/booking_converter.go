package converter

import (
	"smart-bed-allocation/internal/delivery/dto"
	"smart-bed-allocation/internal/domain/entity"
)

// BookingToResponse converts a Booking ledger entry to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	return &dto.BookingResponse{
		ID:            booking.ID,
		PatientName:   booking.PatientName,
		Phone:         booking.Phone,
		Symptoms:      booking.Symptoms,
		HospitalName:  booking.HospitalName,
		Status:        string(booking.Status),
		BookingDate:   booking.BookingDate,
		DischargeDate: booking.DischargeDate,
	}
}

// BookingsToResponses converts a slice of ledger entries to response DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := BookingToResponse(&booking)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

package converter

import (
	"go-doctor-api/internal/delivery/dto"
	"go-doctor-api/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := doctorResponse(doctor)
	return &response
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = doctorResponse(&doctors[i])
	}
	return responses
}

// The availability slice is copied so cached views never alias entity state.
func doctorResponse(doctor *entity.Doctor) dto.DoctorResponse {
	availability := make([]string, len(doctor.Availability))
	copy(availability, doctor.Availability)

	return dto.DoctorResponse{
		ID:             doctor.ID,
		Name:           doctor.Name,
		Specialization: doctor.Specialization,
		Experience:     doctor.Experience,
		Availability:   availability,
		CreatedAt:      doctor.CreatedAt,
	}
}

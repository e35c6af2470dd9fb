package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	Name           string   `json:"name" validate:"required,notblank,max=100"`
	Specialization string   `json:"specialization" validate:"required,notblank,max=100"`
	Experience     int      `json:"experience" validate:"gte=0,lte=50"`
	Availability   []string `json:"availability" validate:"omitempty,dive,weekday"`
}

// UpdateDoctorRequest is a partial update. A nil field (absent from the body
// or sent as null) leaves the stored value unchanged; a non-nil field
// replaces it.
type UpdateDoctorRequest struct {
	// Name, when set, must be non-blank and at most 100 characters.
	Name *string `json:"name" validate:"omitempty,notblank,max=100"`
	// Specialization, when set, must be non-blank and at most 100 characters.
	Specialization *string `json:"specialization" validate:"omitempty,notblank,max=100"`
	// Experience, when set, must be within 0..50.
	Experience *int `json:"experience" validate:"omitempty,gte=0,lte=50"`
	// Availability, when set, replaces the whole list. An empty list clears it.
	Availability *[]string `json:"availability" validate:"omitempty,dive,weekday"`
}

// Response DTOs

type DoctorResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	Experience     int       `json:"experience"`
	Availability   []string  `json:"availability"`
	CreatedAt      time.Time `json:"created_at"`
}

type DoctorPageResponse struct {
	PageNumber int              `json:"page_number"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
	TotalCount int64            `json:"total_count"`
	Items      []DoctorResponse `json:"items"`
}

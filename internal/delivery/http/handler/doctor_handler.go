package handler

import (
	"errors"
	"net/http"
	"strconv"

	"go-doctor-api/internal/delivery/dto"
	"go-doctor-api/internal/usecase"
	"go-doctor-api/pkg/response"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
	}
}

// GetAllDoctors handles listing doctors
// @Summary List doctors
// @Description Get doctors ordered by name with pagination
// @Tags Doctors
// @Produce json
// @Param pageNumber query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 50)" default(10)
// @Success 200 {object} response.Response{data=dto.DoctorPageResponse}
// @Failure 500 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	pageNumber := queryInt(r, "pageNumber", 1)
	pageSize := queryInt(r, "pageSize", usecase.DefaultPageSize)

	page, err := h.doctorUsecase.ListDoctors(r.Context(), pageNumber, pageSize)
	if err != nil {
		h.handleError(w, err, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", page)
}

// GetDoctor handles getting a doctor by ID
// @Summary Get doctor by ID
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response{data=dto.DoctorResponse}
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [get]
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseDoctorID(w, r)
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// CreateDoctor handles doctor creation
// @Summary Create a new doctor
// @Tags Doctors
// @Accept json
// @Produce json
// @Param request body dto.CreateDoctorRequest true "Create Doctor Request"
// @Success 201 {object} response.Response{data=dto.DoctorResponse}
// @Header 201 {string} Location "/doctors/{id}"
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /doctors [post]
func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if !decodeBody(w, r, &req) {
		return
	}

	doctor, err := h.doctorUsecase.CreateDoctor(r.Context(), &req)
	if err != nil {
		h.handleError(w, err, "Failed to create doctor")
		return
	}

	response.Created(w, "/doctors/"+doctor.ID.String(), "Doctor created successfully", doctor)
}

// UpdateDoctor handles partial doctor update
// @Summary Update a doctor
// @Description Fields left out of the body keep their stored value
// @Tags Doctors
// @Accept json
// @Param id path string true "Doctor ID"
// @Param request body dto.UpdateDoctorRequest true "Update Doctor Request"
// @Success 204
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /doctors/{id} [put]
func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseDoctorID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateDoctorRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.doctorUsecase.UpdateDoctor(r.Context(), id, &req); err != nil {
		h.handleError(w, err, "Failed to update doctor")
		return
	}

	response.NoContent(w)
}

// DeleteDoctor handles doctor deletion
// @Summary Delete a doctor
// @Tags Doctors
// @Param id path string true "Doctor ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /doctors/{id} [delete]
func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseDoctorID(w, r)
	if !ok {
		return
	}

	if err := h.doctorUsecase.DeleteDoctor(r.Context(), id); err != nil {
		h.handleError(w, err, "Failed to delete doctor")
		return
	}

	response.NoContent(w)
}

// SetAvailability replaces the doctor's available days
// @Summary Set doctor availability
// @Tags Doctors
// @Accept json
// @Param id path string true "Doctor ID"
// @Param request body []string true "Days of the week"
// @Success 204
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /doctors/{id}/availability [put]
func (h *DoctorHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := parseDoctorID(w, r)
	if !ok {
		return
	}

	var days []string
	if !decodeBody(w, r, &days) {
		return
	}

	if err := h.doctorUsecase.SetAvailability(r.Context(), id, days); err != nil {
		h.handleError(w, err, "Failed to update availability")
		return
	}

	response.NoContent(w)
}

// GetAvailability handles getting the doctor's available days
// @Summary Get doctor availability
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response{data=[]string}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id}/availability [get]
func (h *DoctorHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := parseDoctorID(w, r)
	if !ok {
		return
	}

	days, err := h.doctorUsecase.GetAvailability(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", days)
}

func (h *DoctorHandler) handleError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *usecase.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.ValidationError(w, validationErr.Fields)
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrInvalidAvailabilityData):
		response.DataError(w, "Stored availability data is invalid")
	case errors.Is(err, usecase.ErrDoctorWriteFailed):
		response.WriteFailed(w, fallback)
	default:
		response.InternalServerError(w, fallback)
	}
}

// A malformed id can never name a doctor, so it is answered as not found.
func parseDoctorID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.NotFound(w, "Doctor not found")
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", response.ErrorBody{
			Kind:   response.KindValidation,
			Fields: map[string]string{"body": "request body must be valid JSON"},
		})
		return false
	}
	return true
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go-doctor-api/internal/converter"
	"go-doctor-api/internal/delivery/dto"
	"go-doctor-api/internal/domain/entity"
	"go-doctor-api/internal/domain/repository"
	"go-doctor-api/internal/service"
	"go-doctor-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPageSize = service.DefaultPageSize
	MaxPageSize     = 50
	// MaxPageNumber keeps the row offset within int32 for every page size.
	MaxPageNumber = math.MaxInt32 / MaxPageSize
)

type DoctorUsecase interface {
	ListDoctors(ctx context.Context, pageNumber, pageSize int) (*dto.DoctorPageResponse, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) error
	DeleteDoctor(ctx context.Context, id uuid.UUID) error
	SetAvailability(ctx context.Context, id uuid.UUID, days []string) error
	GetAvailability(ctx context.Context, id uuid.UUID) ([]string, error)
}

type doctorUsecase struct {
	log         *logrus.Logger
	doctorRepo  repository.DoctorRepository
	doctorCache service.DoctorCacheService
	validator   *validator.CustomValidator
}

func NewDoctorUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	doctorCache service.DoctorCacheService,
	validator *validator.CustomValidator,
) (DoctorUsecase, error) {
	if err := validator.RegisterValidation("weekday", entity.IsWeekday); err != nil {
		return nil, fmt.Errorf("register weekday validation: %w", err)
	}

	return &doctorUsecase{
		log:         log,
		doctorRepo:  doctorRepo,
		doctorCache: doctorCache,
		validator:   validator,
	}, nil
}

func (u *doctorUsecase) ListDoctors(ctx context.Context, pageNumber, pageSize int) (*dto.DoctorPageResponse, error) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageNumber > MaxPageNumber {
		pageNumber = MaxPageNumber
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	items, ok := u.doctorCache.GetPage(ctx, pageNumber, pageSize)
	if !ok {
		doctors, err := u.doctorRepo.FindPage(ctx, pageSize, (pageNumber-1)*pageSize)
		if err != nil {
			u.log.Warnf("Failed to find doctor page: %+v", err)
			return nil, err
		}
		items = converter.DoctorsToResponses(doctors)
		u.doctorCache.SetPage(ctx, pageNumber, pageSize, items)
	}

	// The total is never cached, so it can run ahead of a stale cached page.
	total, err := u.doctorRepo.Count(ctx)
	if err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, err
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &dto.DoctorPageResponse{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalCount: total,
		Items:      items,
	}, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	if cached, ok := u.doctorCache.GetDoctor(ctx, id); ok {
		return cached, nil
	}

	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		u.log.Warnf("Doctor with ID %s not found", id)
		return nil, ErrDoctorNotFound
	}

	response := converter.DoctorToResponse(doctor)
	u.doctorCache.SetDoctor(ctx, response)

	return response, nil
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	if err := u.validate(req); err != nil {
		return nil, err
	}

	availability := entity.Availability{}
	if req.Availability != nil {
		availability = append(availability, req.Availability...)
	}

	doctor := &entity.Doctor{
		Name:           req.Name,
		Specialization: req.Specialization,
		Experience:     req.Experience,
		Availability:   availability,
	}

	if err := u.doctorRepo.Create(ctx, doctor); err != nil {
		u.log.Errorf("Failed to create doctor: %+v", err)
		return nil, fmt.Errorf("%w: %w", ErrDoctorWriteFailed, err)
	}

	u.doctorCache.InvalidateList(ctx)

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) error {
	if err := u.validate(req); err != nil {
		return err
	}

	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.Experience != nil {
		doctor.Experience = *req.Experience
	}
	if req.Availability != nil {
		doctor.Availability = append(entity.Availability{}, *req.Availability...)
	}

	if err := u.save(ctx, doctor); err != nil {
		return err
	}

	u.doctorCache.InvalidateDoctor(ctx, id)
	return nil
}

func (u *doctorUsecase) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	affectedRows, err := u.doctorRepo.Delete(ctx, id)
	if err != nil {
		u.log.Errorf("Failed to delete doctor: %+v", err)
		return fmt.Errorf("%w: %w", ErrDoctorWriteFailed, err)
	}

	if affectedRows == 0 {
		u.log.Warnf("Doctor with ID %s not found", id)
		return ErrDoctorNotFound
	}

	u.doctorCache.InvalidateDoctor(ctx, id)
	return nil
}

func (u *doctorUsecase) SetAvailability(ctx context.Context, id uuid.UUID, days []string) error {
	if days == nil {
		return newValidationError("availability", "availability is required")
	}
	if ok, invalid := entity.ValidateAvailability(days); !ok {
		return newValidationError("availability", fmt.Sprintf(
			"invalid day(s) in availability: %s. Valid days are: %s",
			strings.Join(invalid, ", "), strings.Join(entity.Weekdays, ", "),
		))
	}

	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	doctor.Availability = append(entity.Availability{}, days...)

	if err := u.save(ctx, doctor); err != nil {
		return err
	}

	u.doctorCache.InvalidateDoctor(ctx, id)
	return nil
}

// GetAvailability always reads the store. Stored data that fails the
// weekday policy is reported as ErrInvalidAvailabilityData.
func (u *doctorUsecase) GetAvailability(ctx context.Context, id uuid.UUID) ([]string, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if doctor.Availability == nil {
		u.log.Errorf("Doctor %s has null availability", id)
		return nil, ErrInvalidAvailabilityData
	}
	if ok, invalid := entity.ValidateAvailability(doctor.Availability); !ok {
		u.log.Errorf("Doctor %s has invalid stored availability: %v", id, invalid)
		return nil, ErrInvalidAvailabilityData
	}

	return []string(doctor.Availability), nil
}

// save persists doctor. A lost update is reported as not found when the
// row is gone, otherwise as a write failure; it is never retried.
func (u *doctorUsecase) save(ctx context.Context, doctor *entity.Doctor) error {
	err := u.doctorRepo.Update(ctx, doctor)
	if err == nil {
		return nil
	}

	if errors.Is(err, repository.ErrConcurrentUpdate) {
		exists, existsErr := u.doctorRepo.Exists(ctx, doctor.ID)
		if existsErr != nil {
			u.log.Errorf("Failed to check doctor existence: %+v", existsErr)
			return fmt.Errorf("%w: %w", ErrDoctorWriteFailed, existsErr)
		}
		if !exists {
			u.log.Warnf("Doctor %s vanished during update", doctor.ID)
			return ErrDoctorNotFound
		}
	}

	u.log.Errorf("Failed to update doctor: %+v", err)
	return fmt.Errorf("%w: %w", ErrDoctorWriteFailed, err)
}

func (u *doctorUsecase) validate(req interface{}) error {
	if err := u.validator.Validate(req); err != nil {
		fields := u.validator.FormatValidationErrors(err)
		if len(fields) == 0 {
			return &ValidationError{Fields: map[string]string{"request": err.Error()}}
		}
		return &ValidationError{Fields: fields}
	}
	return nil
}

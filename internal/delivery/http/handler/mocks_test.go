package handler

import (
	"context"

	"go-doctor-api/internal/delivery/dto"
	"go-doctor-api/internal/usecase"

	"github.com/google/uuid"
)

type mockDoctorUsecase struct {
	ListDoctorsFn     func(ctx context.Context, pageNumber, pageSize int) (*dto.DoctorPageResponse, error)
	GetDoctorFn       func(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	CreateDoctorFn    func(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	UpdateDoctorFn    func(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) error
	DeleteDoctorFn    func(ctx context.Context, id uuid.UUID) error
	SetAvailabilityFn func(ctx context.Context, id uuid.UUID, days []string) error
	GetAvailabilityFn func(ctx context.Context, id uuid.UUID) ([]string, error)
}

var _ usecase.DoctorUsecase = (*mockDoctorUsecase)(nil)

func (m *mockDoctorUsecase) ListDoctors(ctx context.Context, pageNumber, pageSize int) (*dto.DoctorPageResponse, error) {
	return m.ListDoctorsFn(ctx, pageNumber, pageSize)
}

func (m *mockDoctorUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	return m.GetDoctorFn(ctx, id)
}

func (m *mockDoctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	return m.CreateDoctorFn(ctx, req)
}

func (m *mockDoctorUsecase) UpdateDoctor(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) error {
	return m.UpdateDoctorFn(ctx, id, req)
}

func (m *mockDoctorUsecase) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return m.DeleteDoctorFn(ctx, id)
}

func (m *mockDoctorUsecase) SetAvailability(ctx context.Context, id uuid.UUID, days []string) error {
	return m.SetAvailabilityFn(ctx, id, days)
}

func (m *mockDoctorUsecase) GetAvailability(ctx context.Context, id uuid.UUID) ([]string, error) {
	return m.GetAvailabilityFn(ctx, id)
}

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(context.Context) error {
	return m.err
}

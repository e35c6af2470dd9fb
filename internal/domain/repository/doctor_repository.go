package repository

import (
	"context"
	"errors"

	"go-doctor-api/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrConcurrentUpdate is returned by Update when no row was written,
	// typically because the doctor was deleted in the meantime.
	ErrConcurrentUpdate = errors.New("doctor was modified or removed concurrently")
	// ErrConstraintViolation wraps integrity violations reported by the database.
	ErrConstraintViolation = errors.New("constraint violation")
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error)
	FindPage(ctx context.Context, limit, offset int) ([]entity.Doctor, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, doctor *entity.Doctor) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

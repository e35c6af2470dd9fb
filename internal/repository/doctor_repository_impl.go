package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-doctor-api/internal/domain/entity"
	domainRepo "go-doctor-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) domainRepo.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	if doctor.CreatedAt.IsZero() {
		// Postgres keeps microseconds; match it so the returned row equals a re-read.
		doctor.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	return translateError(r.db.WithContext(ctx).Create(doctor).Error)
}

func (r *doctorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindPage(ctx context.Context, limit, offset int) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := r.db.WithContext(ctx).
		Order("name ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Doctor{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Update writes every mutable column. created_at is never part of the write.
func (r *doctorRepository) Update(ctx context.Context, doctor *entity.Doctor) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Doctor{}).
		Where("id = ?", doctor.ID).
		Updates(map[string]interface{}{
			"name":           doctor.Name,
			"specialization": doctor.Specialization,
			"experience":     doctor.Experience,
			"availability":   doctor.Availability,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrConcurrentUpdate
	}
	return nil
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Doctor{})
	return result.RowsAffected, translateError(result.Error)
}

func (r *doctorRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Doctor{}).Where("id = ?", id).Limit(1).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// translateError maps PostgreSQL integrity violations (SQLSTATE class 23)
// onto ErrConstraintViolation. Anything else is returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return fmt.Errorf("%w: %s (%s)", domainRepo.ErrConstraintViolation, pgErr.ConstraintName, pgErr.Code)
	}
	return err
}

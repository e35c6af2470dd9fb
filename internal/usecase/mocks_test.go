package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-doctor-api/internal/domain/entity"
	"go-doctor-api/internal/domain/repository"

	"github.com/google/uuid"
)

// fakeDoctorRepository is an in-memory repository.DoctorRepository.
// The *Err fields force the matching method to fail.
type fakeDoctorRepository struct {
	mu      sync.Mutex
	doctors map[uuid.UUID]entity.Doctor

	createErr error
	findErr   error
	updateErr error
	deleteErr error
	existsErr error

	// beforeUpdate runs inside Update before the row is looked up.
	beforeUpdate func()

	createCalls   int
	findPageCalls int
	lastOffset    int
}

var _ repository.DoctorRepository = (*fakeDoctorRepository)(nil)

func newFakeDoctorRepository() *fakeDoctorRepository {
	return &fakeDoctorRepository{doctors: make(map[uuid.UUID]entity.Doctor)}
}

func (r *fakeDoctorRepository) Create(_ context.Context, doctor *entity.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	if doctor.CreatedAt.IsZero() {
		doctor.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	r.doctors[doctor.ID] = cloneDoctor(*doctor)
	return nil
}

func (r *fakeDoctorRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	doctor, ok := r.doctors[id]
	if !ok {
		return nil, nil
	}
	clone := cloneDoctor(doctor)
	return &clone, nil
}

func (r *fakeDoctorRepository) FindPage(_ context.Context, limit, offset int) ([]entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.findPageCalls++
	r.lastOffset = offset
	if r.findErr != nil {
		return nil, r.findErr
	}

	all := make([]entity.Doctor, 0, len(r.doctors))
	for _, d := range r.doctors {
		all = append(all, cloneDoctor(d))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID.String() < all[j].ID.String()
	})

	if offset >= len(all) {
		return []entity.Doctor{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeDoctorRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return 0, r.findErr
	}
	return int64(len(r.doctors)), nil
}

func (r *fakeDoctorRepository) Update(_ context.Context, doctor *entity.Doctor) error {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.doctors[doctor.ID]
	if !ok {
		return repository.ErrConcurrentUpdate
	}
	updated := cloneDoctor(*doctor)
	updated.CreatedAt = stored.CreatedAt
	r.doctors[doctor.ID] = updated
	return nil
}

func (r *fakeDoctorRepository) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	if _, ok := r.doctors[id]; !ok {
		return 0, nil
	}
	delete(r.doctors, id)
	return 1, nil
}

func (r *fakeDoctorRepository) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.doctors[id]
	return ok, nil
}

// put stores doctor as-is, bypassing every check.
func (r *fakeDoctorRepository) put(doctor entity.Doctor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doctors[doctor.ID] = cloneDoctor(doctor)
}

func (r *fakeDoctorRepository) remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.doctors, id)
}

func cloneDoctor(d entity.Doctor) entity.Doctor {
	if d.Availability != nil {
		d.Availability = append(entity.Availability{}, d.Availability...)
	}
	return d
}

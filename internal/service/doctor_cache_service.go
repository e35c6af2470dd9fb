package service

import (
	"context"
	"fmt"

	"go-doctor-api/internal/delivery/dto"
	"go-doctor-api/internal/infrastructure/cache"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// Cache key prefixes for doctor reads
	DoctorListKeyPrefix = "doctors:list:"
	DoctorItemKeyPrefix = "doctors:item:"

	// DefaultPageSize is the list page size whose first page is invalidated
	// on every mutation.
	DefaultPageSize = 10
)

func DoctorListKey(page, size int) string {
	return fmt.Sprintf("%s%d:%d", DoctorListKeyPrefix, page, size)
}

func DoctorItemKey(id uuid.UUID) string {
	return DoctorItemKeyPrefix + id.String()
}

// DoctorCacheService caches doctor views on top of a cache.Store.
//
// Cache failures are logged and swallowed: a failed read is a miss and a
// failed write or removal only means a stale or cold entry until its TTL.
type DoctorCacheService interface {
	GetPage(ctx context.Context, page, size int) ([]dto.DoctorResponse, bool)
	SetPage(ctx context.Context, page, size int, items []dto.DoctorResponse)
	GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, bool)
	SetDoctor(ctx context.Context, doctor *dto.DoctorResponse)
	// InvalidateDoctor drops the item entry for id and the first list page
	// at DefaultPageSize.
	InvalidateDoctor(ctx context.Context, id uuid.UUID)
	// InvalidateList drops only the first list page at DefaultPageSize.
	// Other pages and sizes stay until they expire.
	InvalidateList(ctx context.Context)
}

type doctorCacheService struct {
	store   cache.Store
	log     *logrus.Logger
	options cache.EntryOptions
}

func NewDoctorCacheService(store cache.Store, log *logrus.Logger, options cache.EntryOptions) DoctorCacheService {
	return &doctorCacheService{
		store:   store,
		log:     log,
		options: options,
	}
}

func (s *doctorCacheService) GetPage(ctx context.Context, page, size int) ([]dto.DoctorResponse, bool) {
	var items []dto.DoctorResponse
	if !s.get(ctx, DoctorListKey(page, size), &items) {
		return nil, false
	}
	return items, true
}

func (s *doctorCacheService) SetPage(ctx context.Context, page, size int, items []dto.DoctorResponse) {
	s.set(ctx, DoctorListKey(page, size), items)
}

func (s *doctorCacheService) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, bool) {
	var doctor dto.DoctorResponse
	if !s.get(ctx, DoctorItemKey(id), &doctor) {
		return nil, false
	}
	return &doctor, true
}

func (s *doctorCacheService) SetDoctor(ctx context.Context, doctor *dto.DoctorResponse) {
	s.set(ctx, DoctorItemKey(doctor.ID), doctor)
}

func (s *doctorCacheService) InvalidateDoctor(ctx context.Context, id uuid.UUID) {
	s.remove(ctx, DoctorItemKey(id))
	s.InvalidateList(ctx)
}

func (s *doctorCacheService) InvalidateList(ctx context.Context) {
	s.remove(ctx, DoctorListKey(1, DefaultPageSize))
}

func (s *doctorCacheService) get(ctx context.Context, key string, dst interface{}) bool {
	raw, ok := s.store.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warnf("Failed to decode cache entry %s: %+v", key, err)
		s.remove(ctx, key)
		return false
	}
	return true
}

func (s *doctorCacheService) set(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Warnf("Failed to encode cache entry %s: %+v", key, err)
		return
	}
	if err := s.store.Set(ctx, key, raw, s.options); err != nil {
		s.log.Warnf("Failed to write cache entry %s: %+v", key, err)
	}
}

func (s *doctorCacheService) remove(ctx context.Context, key string) {
	if err := s.store.Remove(ctx, key); err != nil {
		s.log.Warnf("Failed to remove cache entry %s: %+v", key, err)
	}
}

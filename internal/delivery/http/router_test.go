package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-doctor-api/config"
	"go-doctor-api/internal/delivery/dto"
	"go-doctor-api/internal/delivery/http/handler"
	"go-doctor-api/internal/delivery/http/middleware"
	"go-doctor-api/internal/usecase"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// stubDoctorUsecase answers every call with an empty success.
type stubDoctorUsecase struct{}

func (stubDoctorUsecase) ListDoctors(_ context.Context, pageNumber, pageSize int) (*dto.DoctorPageResponse, error) {
	return &dto.DoctorPageResponse{PageNumber: pageNumber, PageSize: pageSize, Items: []dto.DoctorResponse{}}, nil
}

func (stubDoctorUsecase) GetDoctor(_ context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	return &dto.DoctorResponse{ID: id, Availability: []string{}}, nil
}

func (stubDoctorUsecase) CreateDoctor(_ context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	return &dto.DoctorResponse{ID: uuid.New(), Name: req.Name}, nil
}

func (stubDoctorUsecase) UpdateDoctor(context.Context, uuid.UUID, *dto.UpdateDoctorRequest) error {
	return nil
}

func (stubDoctorUsecase) DeleteDoctor(context.Context, uuid.UUID) error {
	return nil
}

func (stubDoctorUsecase) SetAvailability(context.Context, uuid.UUID, []string) error {
	return nil
}

func (stubDoctorUsecase) GetAvailability(context.Context, uuid.UUID) ([]string, error) {
	return []string{}, nil
}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

var _ usecase.DoctorUsecase = stubDoctorUsecase{}

func newTestHandler() http.Handler {
	return newTestHandlerWithLimit(config.RateLimitConfig{})
}

func newTestHandlerWithLimit(limit config.RateLimitConfig) http.Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewRouter(
		handler.NewDoctorHandler(stubDoctorUsecase{}),
		handler.NewHealthHandler(okPinger{}, log),
		middleware.NewCORSMiddleware(),
		middleware.NewLoggerMiddleware(log),
		middleware.NewRateLimitMiddleware(limit),
	).Setup()
}

func TestRouter_Routes(t *testing.T) {
	id := uuid.NewString()
	tests := []struct {
		method     string
		target     string
		body       string
		statusCode int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/doctors", "", http.StatusOK},
		{http.MethodGet, "/doctors?pageNumber=2&pageSize=5", "", http.StatusOK},
		{http.MethodPost, "/doctors", `{"name":"Ada"}`, http.StatusCreated},
		{http.MethodGet, "/doctors/" + id, "", http.StatusOK},
		{http.MethodPut, "/doctors/" + id, `{}`, http.StatusNoContent},
		{http.MethodDelete, "/doctors/" + id, "", http.StatusNoContent},
		{http.MethodGet, "/doctors/" + id + "/availability", "", http.StatusOK},
		{http.MethodPut, "/doctors/" + id + "/availability", `["Monday"]`, http.StatusNoContent},
		{http.MethodGet, "/unknown", "", http.StatusNotFound},
		{http.MethodPatch, "/doctors/" + id, `{}`, http.StatusMethodNotAllowed},
	}

	h := newTestHandler()
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, body))
			assert.Equal(t, tt.statusCode, rec.Code)
		})
	}
}

func TestRouter_CORSHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/doctors", nil)
	req.Header.Set("Origin", "https://example.org")
	rec := httptest.NewRecorder()

	newTestHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	h := newTestHandler()

	for _, target := range []string{"/doctors", "/doctors/" + uuid.NewString(), "/doctors/" + uuid.NewString() + "/availability"} {
		t.Run(target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, target, strings.NewReader(`{}`)))

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.JSONEq(t, `{"success":false,"message":"Method not allowed"}`, rec.Body.String())
		})
	}
}

func TestRouter_RateLimitSharedAcrossRoutes(t *testing.T) {
	h := newTestHandlerWithLimit(config.RateLimitConfig{Requests: 2, Window: time.Minute})
	id := uuid.NewString()

	codes := make([]int, 0, 4)
	for _, target := range []string{"/doctors", "/doctors/" + id, "/doctors/" + id + "/availability", "/health"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.RemoteAddr = "10.0.0.9:4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	// The health check is never limited.
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests, http.StatusOK}, codes)
}

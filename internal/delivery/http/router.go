package http

import (
	"net/http"

	"go-doctor-api/internal/delivery/http/handler"
	"go-doctor-api/internal/delivery/http/middleware"
	"go-doctor-api/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	doctorHandler       *handler.DoctorHandler
	healthHandler       *handler.HealthHandler
	corsMiddleware      *middleware.CORSMiddleware
	loggerMiddleware    *middleware.LoggerMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
}

func NewRouter(
	doctorHandler *handler.DoctorHandler,
	healthHandler *handler.HealthHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggerMiddleware *middleware.LoggerMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		doctorHandler:       doctorHandler,
		healthHandler:       healthHandler,
		corsMiddleware:      corsMiddleware,
		loggerMiddleware:    loggerMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

// Setup registers every route and returns the handler to serve.
// CORS wraps the mux so preflight requests are answered before route matching.
func (r *Router) Setup() http.Handler {
	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.NotFound(w, "")
	})
	r.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	// Health check
	r.router.HandleFunc("/health", r.healthHandler.Check).Methods(http.MethodGet)

	// Doctor routes live on the root router so method mismatches reach
	// MethodNotAllowedHandler.
	r.router.Handle("/doctors", r.limit(r.doctorHandler.GetAllDoctors)).Methods(http.MethodGet)
	r.router.Handle("/doctors", r.limit(r.doctorHandler.CreateDoctor)).Methods(http.MethodPost)
	r.router.Handle("/doctors/{id}", r.limit(r.doctorHandler.GetDoctor)).Methods(http.MethodGet)
	r.router.Handle("/doctors/{id}", r.limit(r.doctorHandler.UpdateDoctor)).Methods(http.MethodPut)
	r.router.Handle("/doctors/{id}", r.limit(r.doctorHandler.DeleteDoctor)).Methods(http.MethodDelete)
	r.router.Handle("/doctors/{id}/availability", r.limit(r.doctorHandler.GetAvailability)).Methods(http.MethodGet)
	r.router.Handle("/doctors/{id}/availability", r.limit(r.doctorHandler.SetAvailability)).Methods(http.MethodPut)

	return r.corsMiddleware.Handle(r.loggerMiddleware.Handle(r.router))
}

// limit puts a route behind the shared per-IP rate limiter.
func (r *Router) limit(h http.HandlerFunc) http.Handler {
	return r.rateLimitMiddleware.Handle(h)
}

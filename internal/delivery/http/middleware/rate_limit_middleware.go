package middleware

import (
	"net/http"

	"go-doctor-api/config"
	"go-doctor-api/pkg/response"

	"github.com/go-chi/httprate"
)

type RateLimitMiddleware struct {
	limiter func(next http.Handler) http.Handler
}

// NewRateLimitMiddleware limits requests per client IP. A non-positive
// request count turns the limiter into a pass-through.
func NewRateLimitMiddleware(cfg config.RateLimitConfig) *RateLimitMiddleware {
	if cfg.Requests <= 0 || cfg.Window <= 0 {
		return &RateLimitMiddleware{}
	}

	return &RateLimitMiddleware{
		limiter: httprate.Limit(
			cfg.Requests,
			cfg.Window,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				response.TooManyRequests(w)
			}),
		),
	}
}

func (m *RateLimitMiddleware) Handle(next http.Handler) http.Handler {
	if m.limiter == nil {
		return next
	}
	return m.limiter(next)
}

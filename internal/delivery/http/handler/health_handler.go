package handler

import (
	"context"
	"net/http"
	"time"

	"go-doctor-api/pkg/response"

	"github.com/sirupsen/logrus"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	log     *logrus.Logger
	timeout time.Duration
}

func NewHealthHandler(db Pinger, log *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		log:     log,
		timeout: 2 * time.Second,
	}
}

// Check reports whether the database is reachable
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.log.Warnf("Health check failed: %+v", err)
		response.ServiceUnavailable(w, "Database unavailable")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

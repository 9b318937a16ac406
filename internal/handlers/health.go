package handlers

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/bookcase-labs/library-catalog/internal/response"
)

// NewHealthHandler returns an HTTP handler reporting service liveness.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} response.Envelope "Service is healthy"
// @Failure 503 {object} response.Envelope "Database unreachable"
// @Router /health [get]
func NewHealthHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			response.JSON(w, http.StatusServiceUnavailable, nil, "Database unreachable")
			return
		}
		response.JSON(w, http.StatusOK, nil, "OK")
	}
}

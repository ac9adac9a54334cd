package handler

import (
	"net/http"

	"github.com/nzambu/coachsim/internal/api/response"
	"github.com/nzambu/coachsim/internal/repository/sqlite"
)

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}

// ReadyCheck returns readiness status including the archive mirror
func ReadyCheck(mirror *sqlite.Archive) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mirror != nil {
			if err := mirror.Ping(r.Context()); err != nil {
				response.Error(w, http.StatusServiceUnavailable, "archive mirror not ready")
				return
			}
		}

		response.OK(w, map[string]string{
			"status": "ready",
		})
	}
}

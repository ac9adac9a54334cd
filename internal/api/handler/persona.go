package handler

import (
	"net/http"

	"github.com/nzambu/coachsim/internal/api/response"
	"github.com/nzambu/coachsim/internal/domain"
)

// ListPersonas returns the fixed persona catalog
func ListPersonas(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]any{
		"personas": domain.Catalog(),
	})
}

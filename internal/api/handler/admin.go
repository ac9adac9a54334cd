package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/nzambu/coachsim/internal/api/response"
	"github.com/nzambu/coachsim/internal/service"
)

// uploads are small instructor documents; 20MB is generous
const maxUploadBytes = 20 << 20

// AdminHandler handles the instructor's upload endpoints
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ReplaceAllowList swaps the student allow-list for an uploaded CSV
func (h *AdminHandler) ReplaceAllowList(w http.ResponseWriter, r *http.Request) {
	r.ParseMultipartForm(maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "no file uploaded")
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".csv" {
		response.BadRequest(w, "invalid file type. Allowed: .csv")
		return
	}

	count, err := h.adminService.ReplaceAllowList(r.Context(), file)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	response.OK(w, map[string]any{
		"message":     "allow-list replaced",
		"identifiers": count,
	})
}

// ReplaceReference swaps the reference document for an uploaded PDF/DOCX
func (h *AdminHandler) ReplaceReference(w http.ResponseWriter, r *http.Request) {
	r.ParseMultipartForm(maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "no file uploaded")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" && ext != ".docx" {
		response.BadRequest(w, "invalid file type. Allowed: .pdf, .docx")
		return
	}

	chars, err := h.adminService.ReplaceReferenceDocument(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		// previous document stays in effect
		response.BadRequest(w, err.Error())
		return
	}

	response.OK(w, map[string]any{
		"message":         "reference document replaced",
		"extracted_chars": chars,
	})
}

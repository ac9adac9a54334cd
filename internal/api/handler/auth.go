package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/nzambu/coachsim/internal/api/middleware"
	"github.com/nzambu/coachsim/internal/api/response"
	"github.com/nzambu/coachsim/internal/domain"
	"github.com/nzambu/coachsim/internal/security"
	"github.com/nzambu/coachsim/internal/service"
)

var validate = validator.New()

// AuthHandler handles login/logout endpoints
type AuthHandler struct {
	accessService *service.AccessService
	conversations *service.ConversationService
	jwtManager    *security.JWTManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accessService *service.AccessService, conversations *service.ConversationService, jwtManager *security.JWTManager) *AuthHandler {
	return &AuthHandler{
		accessService: accessService,
		conversations: conversations,
		jwtManager:    jwtManager,
	}
}

// Login checks the identifier against the allow-list and issues a
// session token. Denials never say whether the identifier was absent or
// the list unreadable.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email" validate:"required,max=255"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, "email is required")
		return
	}

	if !h.accessService.Authenticate(r.Context(), input.Email) {
		response.Unauthorized(w, "email not authorized, contact your instructor")
		return
	}

	identity := domain.NormalizeIdentifier(input.Email)
	session := h.conversations.StartSession(identity)

	token, err := h.jwtManager.GenerateSessionToken(session.ID, identity)
	if err != nil {
		h.conversations.Destroy(session.ID)
		response.InternalError(w, "failed to issue session token")
		return
	}

	response.OK(w, map[string]any{
		"token":      token,
		"session_id": session.ID,
		"identity":   identity,
		"expires_in": int64(h.jwtManager.SessionTTL().Seconds()),
	})
}

// Logout destroys the session and its transcript
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	h.conversations.Destroy(sessionID)
	response.OK(w, map[string]string{"message": "logged out"})
}

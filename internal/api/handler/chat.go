package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/nzambu/coachsim/internal/api/middleware"
	"github.com/nzambu/coachsim/internal/api/response"
	"github.com/nzambu/coachsim/internal/service"
)

// ChatHandler drives the conversation state machine over HTTP
type ChatHandler struct {
	conversations *service.ConversationService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(conversations *service.ConversationService) *ChatHandler {
	return &ChatHandler{conversations: conversations}
}

// SelectPersona picks the client profile and synthesizes the opening turn
func (h *ChatHandler) SelectPersona(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionID(w, r)
	if !ok {
		return
	}

	var input struct {
		Persona string `json:"persona" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, "persona is required")
		return
	}

	session, err := h.conversations.SelectPersona(r.Context(), sessionID, input.Persona)
	if err != nil {
		writeConversationError(w, err)
		return
	}

	response.OK(w, session)
}

// SendMessage appends one coach turn and returns the client reply
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionID(w, r)
	if !ok {
		return
	}

	var input struct {
		Text string `json:"text" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, "text is required")
		return
	}

	session, err := h.conversations.SendMessage(r.Context(), sessionID, input.Text)
	if err != nil {
		writeConversationError(w, err)
		return
	}

	response.OK(w, session)
}

// Transcript returns the current session state
func (h *ChatHandler) Transcript(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.conversations.Get(sessionID)
	if err != nil {
		writeConversationError(w, err)
		return
	}

	response.OK(w, session)
}

// End freezes the session, returning feedback and any archive failure
func (h *ChatHandler) End(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionID(w, r)
	if !ok {
		return
	}

	result, err := h.conversations.EndSession(r.Context(), sessionID)
	if err != nil {
		writeConversationError(w, err)
		return
	}

	payload := map[string]any{
		"session":  result.Session,
		"feedback": result.Session.Feedback,
	}
	if result.ArchiveErr != nil {
		payload["archive_error"] = "the session could not be archived, notify your instructor"
	}

	response.OK(w, payload)
}

// New returns an ended session to persona selection
func (h *ChatHandler) New(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.conversations.NewSession(sessionID)
	if err != nil {
		writeConversationError(w, err)
		return
	}

	response.OK(w, session)
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.GetSessionID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return uuid.Nil, false
	}
	return id, true
}

func writeConversationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.Unauthorized(w, "session expired, log in again")
	case errors.Is(err, service.ErrBackendUnavailable):
		response.BadGateway(w, "the simulated client is unreachable, try again")
	case errors.Is(err, service.ErrPersonaUnknown),
		errors.Is(err, service.ErrEmptyMessage):
		response.BadRequest(w, err.Error())
	case errors.Is(err, service.ErrAlreadyChatting),
		errors.Is(err, service.ErrNotChatting),
		errors.Is(err, service.ErrNotEnded),
		errors.Is(err, service.ErrOpeningPending):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w, "unexpected error")
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nzambu/coachsim/internal/domain"
	"github.com/nzambu/coachsim/internal/llm"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrPersonaUnknown  = errors.New("persona not in catalog")
	ErrAlreadyChatting = errors.New("persona already selected for this session")
	ErrNotChatting     = errors.New("session is not in a conversation")
	ErrNotEnded        = errors.New("session has not ended")
	ErrOpeningPending  = errors.New("client opening turn is missing, reselect the persona")
	ErrEmptyMessage    = errors.New("message text is required")

	// ErrBackendUnavailable wraps any generative-backend failure. The
	// session stays usable; the transcript is never touched.
	ErrBackendUnavailable = errors.New("generative backend unavailable")
)

// Generator runs one free-form instruction through the generative
// backend. Satisfied by *llm.Router.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Evaluator produces feedback for a frozen transcript. Never fails
// outward.
type Evaluator interface {
	Evaluate(ctx context.Context, transcript []domain.Turn) string
}

// Exporter archives a completed session.
type Exporter interface {
	Export(ctx context.Context, record domain.ExportRecord) error
}

// ConversationService owns the per-session state machine:
// SELECTING -> CHATTING -> ENDED -> SELECTING. Sessions are in-process
// state keyed by the session ID issued at login.
type ConversationService struct {
	gen       Generator
	evaluator Evaluator
	exporter  Exporter

	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.Session
}

// NewConversationService creates a new conversation service
func NewConversationService(gen Generator, evaluator Evaluator, exporter Exporter) *ConversationService {
	return &ConversationService{
		gen:       gen,
		evaluator: evaluator,
		exporter:  exporter,
		sessions:  make(map[uuid.UUID]*domain.Session),
	}
}

// StartSession provisions a fresh SELECTING session for an authenticated
// identity.
func (s *ConversationService) StartSession(identity string) *domain.Session {
	now := time.Now().UTC()
	session := &domain.Session{
		ID:        uuid.New(),
		Identity:  identity,
		Phase:     domain.PhaseSelecting,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return snapshot(session)
}

// Get returns a copy of the session state
func (s *ConversationService) Get(sessionID uuid.UUID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return snapshot(session), nil
}

// SelectPersona moves the session into CHATTING and synthesizes the
// opening client turn. The transition happens exactly once; the opening
// call is gated by "transcript is empty", so calling again after an
// opening failure retries the same branch without re-transitioning.
func (s *ConversationService) SelectPersona(ctx context.Context, sessionID uuid.UUID, personaLabel string) (*domain.Session, error) {
	persona, ok := domain.Lookup(personaLabel)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPersonaUnknown, personaLabel)
	}

	s.mu.Lock()
	session, found := s.sessions[sessionID]
	if !found {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	switch session.Phase {
	case domain.PhaseSelecting:
		session.Persona = string(persona)
		session.Transcript = []domain.Turn{}
		session.Phase = domain.PhaseChatting
		session.UpdatedAt = time.Now().UTC()
	case domain.PhaseChatting:
		if len(session.Transcript) > 0 {
			s.mu.Unlock()
			return nil, ErrAlreadyChatting
		}
		// Opening retry path: keep the persona chosen the first time.
	default:
		s.mu.Unlock()
		return nil, ErrNotChatting
	}
	prompt := llm.BuildOpeningPrompt(session.Persona)
	s.mu.Unlock()

	opening, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Str("session", sessionID.String()).Msg("Opening turn generation failed")
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if session.Phase == domain.PhaseChatting && len(session.Transcript) == 0 {
		session.Transcript = append(session.Transcript, domain.Turn{Speaker: domain.SpeakerClient, Text: opening})
		session.UpdatedAt = time.Now().UTC()
	}
	return snapshot(session), nil
}

// SendMessage appends one coach turn and the generated client reply.
// On backend failure the transcript is unchanged: no partial coach turn
// is ever recorded.
func (s *ConversationService) SendMessage(ctx context.Context, sessionID uuid.UUID, text string) (*domain.Session, error) {
	if text == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.RLock()
	session, found := s.sessions[sessionID]
	if !found {
		s.mu.RUnlock()
		return nil, ErrSessionNotFound
	}
	if session.Phase != domain.PhaseChatting {
		s.mu.RUnlock()
		return nil, ErrNotChatting
	}
	if len(session.Transcript) == 0 {
		s.mu.RUnlock()
		return nil, ErrOpeningPending
	}
	persona := session.Persona
	transcript := append([]domain.Turn(nil), session.Transcript...)
	s.mu.RUnlock()

	prompt := llm.BuildReplyPrompt(persona, transcript, text)
	reply, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Str("session", sessionID.String()).Msg("Reply generation failed")
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if session.Phase != domain.PhaseChatting {
		return nil, ErrNotChatting
	}
	session.Transcript = append(session.Transcript,
		domain.Turn{Speaker: domain.SpeakerCoach, Text: text},
		domain.Turn{Speaker: domain.SpeakerClient, Text: reply},
	)
	session.UpdatedAt = time.Now().UTC()
	return snapshot(session), nil
}

// EndResult is what ending a session hands back: the frozen session with
// its feedback, plus any archive failure. Archive failures are surfaced
// here but never block the return to persona selection.
type EndResult struct {
	Session    *domain.Session
	ArchiveErr error
}

// EndSession freezes the transcript, generates feedback and exports the
// session. The CHATTING -> ENDED transition happens exactly once: a
// second call while ENDED returns the stored feedback and changes
// nothing.
func (s *ConversationService) EndSession(ctx context.Context, sessionID uuid.UUID) (*EndResult, error) {
	s.mu.Lock()
	session, found := s.sessions[sessionID]
	if !found {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if session.Phase == domain.PhaseEnded {
		snap := snapshot(session)
		s.mu.Unlock()
		return &EndResult{Session: snap}, nil
	}
	if session.Phase != domain.PhaseChatting {
		s.mu.Unlock()
		return nil, ErrNotChatting
	}
	session.Phase = domain.PhaseEnded
	session.UpdatedAt = time.Now().UTC()
	identity := session.Identity
	persona := session.Persona
	transcript := append([]domain.Turn(nil), session.Transcript...)
	s.mu.Unlock()

	feedback := s.evaluator.Evaluate(ctx, transcript)

	s.mu.Lock()
	session.Feedback = feedback
	snap := snapshot(session)
	s.mu.Unlock()

	archiveErr := s.exporter.Export(ctx, domain.ExportRecord{
		Timestamp:  time.Now().UTC(),
		Identity:   identity,
		Persona:    persona,
		Transcript: llm.FlattenTranscript(transcript),
		Feedback:   feedback,
	})
	if archiveErr != nil {
		log.Error().Err(archiveErr).Str("session", sessionID.String()).Msg("Session export failed")
	}

	return &EndResult{Session: snap, ArchiveErr: archiveErr}, nil
}

// NewSession returns an ENDED session to SELECTING, clearing transcript
// and feedback. This is the single path back after a session ends.
func (s *ConversationService) NewSession(sessionID uuid.UUID) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, found := s.sessions[sessionID]
	if !found {
		return nil, ErrSessionNotFound
	}
	if session.Phase != domain.PhaseEnded {
		return nil, ErrNotEnded
	}

	session.Persona = ""
	session.Transcript = nil
	session.Feedback = ""
	session.Phase = domain.PhaseSelecting
	session.UpdatedAt = time.Now().UTC()
	return snapshot(session), nil
}

// Destroy removes the session entirely (logout)
func (s *ConversationService) Destroy(sessionID uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

func snapshot(session *domain.Session) *domain.Session {
	copied := *session
	copied.Transcript = append([]domain.Turn(nil), session.Transcript...)
	return &copied
}

package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Speaker identifies who produced a turn
type Speaker string

const (
	SpeakerCoach  Speaker = "coach"
	SpeakerClient Speaker = "client"
)

// Phase represents the lifecycle stage of a session
type Phase string

const (
	PhaseSelecting Phase = "selecting"
	PhaseChatting  Phase = "chatting"
	PhaseEnded     Phase = "ended"
)

// Turn is one utterance in the conversation. Immutable once appended.
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Session holds the per-student conversation state. It lives only in
// process memory for the duration of one login; the archive row written
// at session end is the only durable trace.
type Session struct {
	ID         uuid.UUID `json:"id"`
	Identity   string    `json:"identity"`
	Persona    string    `json:"persona,omitempty"`
	Transcript []Turn    `json:"transcript"`
	Phase      Phase     `json:"phase"`
	Feedback   string    `json:"feedback,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NormalizeIdentifier canonicalizes a submitted identifier the same way
// allow-list entries are loaded: trimmed and lower-cased.
func NormalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

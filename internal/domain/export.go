package domain

import (
	"context"
	"time"
)

// ExportRecord is one append-only row in the session archive. There is no
// update or delete path.
type ExportRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	Identity   string    `json:"identity"`
	Persona    string    `json:"persona"`
	Transcript string    `json:"transcript"`
	Feedback   string    `json:"feedback"`
}

// Archive defines the interface for append-only session stores.
type Archive interface {
	Append(ctx context.Context, record ExportRecord) error
}

// AllowlistSource loads the current allow-list snapshot. Implementations
// re-read the backing source on every call so instructor updates take
// effect immediately.
type AllowlistSource interface {
	Load(ctx context.Context) (map[string]struct{}, error)
}

// ReferenceStore holds the instructor-supplied reference document used to
// ground feedback. Current never blocks on I/O; Replace swaps the text
// wholesale.
type ReferenceStore interface {
	Current() string
	Replace(text string) error
}

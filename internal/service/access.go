package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/nzambu/coachsim/internal/domain"
)

// AccessService gates login against the instructor-managed allow-list.
type AccessService struct {
	allowlist domain.AllowlistSource
}

// NewAccessService creates a new access service
func NewAccessService(allowlist domain.AllowlistSource) *AccessService {
	return &AccessService{allowlist: allowlist}
}

// Authenticate reports whether the identifier is on the current
// allow-list snapshot. The source is re-read on every call. Any failure
// to load the list resolves to deny; the caller is never told whether
// the identifier was absent or the list unreadable.
func (s *AccessService) Authenticate(ctx context.Context, identifier string) bool {
	id := domain.NormalizeIdentifier(identifier)
	if id == "" {
		return false
	}

	entries, err := s.allowlist.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Allow-list unreadable, denying access")
		return false
	}

	_, ok := entries[id]
	return ok
}

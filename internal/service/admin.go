package service

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/nzambu/coachsim/internal/domain"
	"github.com/nzambu/coachsim/internal/extract"
	"github.com/nzambu/coachsim/internal/repository/allowlist"
)

// AdminService handles the instructor's out-of-band operations: replacing
// the allow-list and the reference document. Both fail closed, leaving
// the previous value in effect.
type AdminService struct {
	allowlist *allowlist.Source
	refs      domain.ReferenceStore
}

// NewAdminService creates a new admin service
func NewAdminService(source *allowlist.Source, refs domain.ReferenceStore) *AdminService {
	return &AdminService{allowlist: source, refs: refs}
}

// ReplaceAllowList swaps the allow-list for the uploaded CSV. Returns
// the number of identifiers accepted.
func (s *AdminService) ReplaceAllowList(ctx context.Context, upload io.Reader) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count, err := s.allowlist.Replace(upload)
	if err != nil {
		return 0, fmt.Errorf("allow-list rejected: %w", err)
	}

	log.Info().Int("identifiers", count).Msg("Allow-list replaced")
	return count, nil
}

// ReplaceReferenceDocument extracts text from the uploaded PDF or DOCX
// and swaps it in as the new reference document. On extraction failure
// the previous document stays in effect.
func (s *AdminService) ReplaceReferenceDocument(ctx context.Context, filename string, upload io.ReaderAt, size int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	text, err := extract.Text(filename, upload, size)
	if err != nil {
		return 0, fmt.Errorf("reference document rejected: %w", err)
	}

	if err := s.refs.Replace(text); err != nil {
		return 0, fmt.Errorf("reference document not persisted: %w", err)
	}

	log.Info().Str("filename", filename).Int("chars", len(text)).Msg("Reference document replaced")
	return len(text), nil
}

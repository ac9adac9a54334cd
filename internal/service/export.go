package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nzambu/coachsim/internal/domain"
)

// ExportService fans one record out to the configured archives: the
// durable local mirror first, then the shared spreadsheet. Either write
// may fail independently; all failures are reported together.
type ExportService struct {
	mirror domain.Archive
	sheet  domain.Archive
}

// NewExportService creates a new export service. Either archive may be
// nil when not configured.
func NewExportService(mirror, sheet domain.Archive) *ExportService {
	return &ExportService{mirror: mirror, sheet: sheet}
}

// Export appends the record to every configured archive
func (s *ExportService) Export(ctx context.Context, record domain.ExportRecord) error {
	var errs []error

	if s.mirror != nil {
		if err := s.mirror.Append(ctx, record); err != nil {
			errs = append(errs, fmt.Errorf("local mirror: %w", err))
		}
	}

	if s.sheet != nil {
		if err := s.sheet.Append(ctx, record); err != nil {
			errs = append(errs, fmt.Errorf("spreadsheet: %w", err))
		}
	}

	if s.mirror == nil && s.sheet == nil {
		log.Warn().Str("identity", record.Identity).Msg("No archive configured, session dropped")
	}

	return errors.Join(errs...)
}

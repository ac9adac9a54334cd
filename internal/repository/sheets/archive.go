// Package sheets appends completed sessions to the shared spreadsheet
// archive. Rows are append-only; no update or delete path exists.
package sheets

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/nzambu/coachsim/internal/config"
	"github.com/nzambu/coachsim/internal/domain"
)

// Archive writes export records to one worksheet of a fixed spreadsheet.
type Archive struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
}

// NewArchive creates a Sheets-backed archive using service-account
// credentials.
func NewArchive(ctx context.Context, cfg config.ArchiveConfig) (*Archive, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("archive spreadsheet ID is not configured")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return &Archive{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		worksheet:     cfg.Worksheet,
	}, nil
}

// Append adds one row {timestamp, identity, persona, transcript, feedback}
func (a *Archive) Append(ctx context.Context, record domain.ExportRecord) error {
	values := &sheets.ValueRange{
		Values: [][]interface{}{{
			record.Timestamp.UTC().Format(time.RFC3339),
			record.Identity,
			record.Persona,
			record.Transcript,
			record.Feedback,
		}},
	}

	_, err := a.svc.Spreadsheets.Values.
		Append(a.spreadsheetID, a.worksheet, values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append archive row: %w", err)
	}

	return nil
}

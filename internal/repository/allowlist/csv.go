// Package allowlist loads the instructor-managed identifier list. The
// backing CSV is re-read on every check so instructor updates take effect
// immediately; freshness wins over efficiency at this request rate.
package allowlist

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nzambu/coachsim/internal/domain"
)

// Source reads allow-list snapshots from a CSV file. Identifiers sit in
// the first column; no header row is assumed.
type Source struct {
	path string
}

// NewSource creates a CSV-backed allow-list source
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Load returns a fresh normalized snapshot of the allow-list
func (s *Source) Load(ctx context.Context) (map[string]struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open allow-list: %w", err)
	}
	defer f.Close()

	return parse(f)
}

// Replace validates an uploaded CSV and atomically swaps the backing
// file. The previous list stays in effect if anything fails.
func (s *Source) Replace(r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read upload: %w", err)
	}

	entries, err := parse(bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, fmt.Errorf("uploaded allow-list contains no identifiers")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create allow-list directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return 0, fmt.Errorf("failed to stage allow-list: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("failed to replace allow-list: %w", err)
	}

	return len(entries), nil
}

func parse(r io.Reader) (map[string]struct{}, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	entries := make(map[string]struct{})
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed allow-list row: %w", err)
		}
		if len(record) == 0 {
			continue
		}

		id := domain.NormalizeIdentifier(record[0])
		if id == "" {
			continue
		}
		entries[id] = struct{}{}
	}

	return entries, nil
}

package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nzambu/coachsim/internal/domain"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()

	archive, err := NewArchive(context.Background(), filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { archive.Close() })
	return archive
}

func TestArchive_AppendAndLatest(t *testing.T) {
	ctx := context.Background()
	archive := newTestArchive(t)

	latest, err := archive.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	record := domain.ExportRecord{
		Timestamp:  time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		Identity:   "etudiant1@ubm.cd",
		Persona:    "Entrepreneur local (Lubumbashi)",
		Transcript: "Client: Je suis débordé.\nCoach: Parlez-moi de votre situation.",
		Feedback:   "Deux points forts...",
	}
	require.NoError(t, archive.Append(ctx, record))

	latest, err = archive.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, record, *latest)
}

func TestArchive_LatestReturnsNewestRow(t *testing.T) {
	ctx := context.Background()
	archive := newTestArchive(t)

	for _, identity := range []string{"first@ubm.cd", "second@ubm.cd"} {
		require.NoError(t, archive.Append(ctx, domain.ExportRecord{
			Timestamp:  time.Now().UTC().Truncate(time.Second),
			Identity:   identity,
			Persona:    "p",
			Transcript: "t",
			Feedback:   "f",
		}))
	}

	latest, err := archive.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "second@ubm.cd", latest.Identity)
}

package allowlist

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSource_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes first-column identifiers", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "allowlist.csv")
		writeFile(t, path, " Etudiant1@UBM.cd \nNZAMBU.HONORE@example.com,Honoré\n\n")

		entries, err := NewSource(path).Load(ctx)

		require.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Contains(t, entries, "etudiant1@ubm.cd")
		assert.Contains(t, entries, "nzambu.honore@example.com")
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := NewSource(filepath.Join(t.TempDir(), "absent.csv")).Load(ctx)
		assert.Error(t, err)
	})

	t.Run("updates take effect on the next load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "allowlist.csv")
		writeFile(t, path, "a@ubm.cd\n")
		source := NewSource(path)

		entries, err := source.Load(ctx)
		require.NoError(t, err)
		assert.NotContains(t, entries, "b@ubm.cd")

		writeFile(t, path, "a@ubm.cd\nb@ubm.cd\n")

		entries, err = source.Load(ctx)
		require.NoError(t, err)
		assert.Contains(t, entries, "b@ubm.cd")
	})
}

func TestSource_Replace(t *testing.T) {
	ctx := context.Background()

	t.Run("swaps the backing file atomically", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "allowlist.csv")
		source := NewSource(path)

		count, err := source.Replace(strings.NewReader("x@ubm.cd\ny@ubm.cd\n"))

		require.NoError(t, err)
		assert.Equal(t, 2, count)

		entries, err := source.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("rejects uploads with no identifiers", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "allowlist.csv")
		writeFile(t, path, "keep@ubm.cd\n")
		source := NewSource(path)

		_, err := source.Replace(strings.NewReader("  \n"))
		assert.Error(t, err)

		entries, err := source.Load(ctx)
		require.NoError(t, err)
		assert.Contains(t, entries, "keep@ubm.cd")
	})
}

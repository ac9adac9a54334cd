package service

import (
	"archive/zip"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nzambu/coachsim/internal/repository/allowlist"
)

func buildDocx(t *testing.T, paragraphs []string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)

	var body strings.Builder
	body.WriteString(`<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	_, err = w.Write([]byte(body.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func TestAdminService_ReplaceAllowList(t *testing.T) {
	ctx := context.Background()
	source := allowlist.NewSource(filepath.Join(t.TempDir(), "allowlist.csv"))
	refs := new(MockReferenceStore)
	svc := NewAdminService(source, refs)

	t.Run("accepts a csv and makes it effective immediately", func(t *testing.T) {
		count, err := svc.ReplaceAllowList(ctx, strings.NewReader("Etudiant1@UBM.cd\nnzambu.honore@example.com\n"))

		require.NoError(t, err)
		assert.Equal(t, 2, count)

		entries, err := source.Load(ctx)
		require.NoError(t, err)
		assert.Contains(t, entries, "etudiant1@ubm.cd")
	})

	t.Run("rejects an empty upload, previous list stays", func(t *testing.T) {
		_, err := svc.ReplaceAllowList(ctx, strings.NewReader("\n\n"))
		assert.Error(t, err)

		entries, err := source.Load(ctx)
		require.NoError(t, err)
		assert.Contains(t, entries, "etudiant1@ubm.cd")
	})
}

func TestAdminService_ReplaceReferenceDocument(t *testing.T) {
	ctx := context.Background()
	source := allowlist.NewSource(filepath.Join(t.TempDir(), "allowlist.csv"))

	t.Run("extracts docx text and swaps the document", func(t *testing.T) {
		refs := new(MockReferenceStore)
		refs.On("Replace", "Chapitre 1\nChapitre 2").Return(nil).Once()

		svc := NewAdminService(source, refs)
		doc := buildDocx(t, []string{"Chapitre 1", "Chapitre 2"})

		chars, err := svc.ReplaceReferenceDocument(ctx, "support.docx", bytes.NewReader(doc), int64(len(doc)))

		require.NoError(t, err)
		assert.Equal(t, len("Chapitre 1\nChapitre 2"), chars)
		refs.AssertExpectations(t)
	})

	t.Run("unparsable upload keeps the previous document", func(t *testing.T) {
		refs := new(MockReferenceStore)

		svc := NewAdminService(source, refs)
		garbage := []byte("not a zip container")

		_, err := svc.ReplaceReferenceDocument(ctx, "support.docx", bytes.NewReader(garbage), int64(len(garbage)))

		assert.Error(t, err)
		refs.AssertNotCalled(t, "Replace")
	})

	t.Run("unsupported format is rejected", func(t *testing.T) {
		refs := new(MockReferenceStore)

		svc := NewAdminService(source, refs)
		data := []byte("plain text")

		_, err := svc.ReplaceReferenceDocument(ctx, "support.txt", bytes.NewReader(data), int64(len(data)))

		assert.Error(t, err)
		refs.AssertNotCalled(t, "Replace")
	})
}

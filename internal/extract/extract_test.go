package extract_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/soilscope/soilscope/internal/cache"
	"github.com/soilscope/soilscope/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *extract.Service {
	t.Helper()
	return extract.NewService(cache.NewMemoryCache(), 24*time.Hour)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtract_PlainText(t *testing.T) {
	svc := newService(t)
	path := writeFile(t, "report.txt", "  soil nitrogen levels are low  \n")

	text, err := svc.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "soil nitrogen levels are low", text)
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	svc := newService(t)
	path := writeFile(t, "report.csv", "a,b,c")

	_, err := svc.Extract(context.Background(), path)
	assert.ErrorIs(t, err, extract.ErrUnsupportedFileType)
}

func TestExtract_OfficeDocumentPlaceholder(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	for _, name := range []string{"report.doc", "report.docx"} {
		path := writeFile(t, name, "binary junk")
		text, err := svc.Extract(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, extract.PlaceholderDocument, text)
	}
}

func TestExtract_ImagePlaceholder(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	for _, name := range []string{"scan.jpg", "scan.jpeg", "scan.png"} {
		path := writeFile(t, name, "not really an image")
		text, err := svc.Extract(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, extract.PlaceholderImage, text)
	}
}

func TestExtract_MissingFilePlaceholder(t *testing.T) {
	svc := newService(t)

	text, err := svc.Extract(context.Background(), filepath.Join(t.TempDir(), "gone.txt"))
	require.NoError(t, err)
	assert.Equal(t, extract.PlaceholderError, text)
}

func TestExtract_CorruptPDFPlaceholder(t *testing.T) {
	svc := newService(t)
	path := writeFile(t, "broken.pdf", "this is not a pdf")

	text, err := svc.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, extract.PlaceholderError, text)
}

func TestExtract_CacheHitSkipsReparse(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	path := writeFile(t, "report.txt", "original soil text")

	info, err := os.Stat(path)
	require.NoError(t, err)

	first, err := svc.Extract(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "original soil text", first)

	// Rewrite the file with same-length content and restore the mtime so
	// the fingerprint is unchanged. A cache hit returns the old text
	// without touching the file.
	require.NoError(t, os.WriteFile(path, []byte("replaced soil text"), 0o644))
	require.NoError(t, os.Chtimes(path, info.ModTime(), info.ModTime()))

	second, err := svc.Extract(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "original soil text", second)
}

func TestExtract_ModifiedFileReparsed(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	path := writeFile(t, "report.txt", "first version")

	_, err := svc.Extract(ctx, path)
	require.NoError(t, err)

	// A size change produces a new fingerprint and a fresh parse.
	require.NoError(t, os.WriteFile(path, []byte("second version, longer"), 0o644))

	text, err := svc.Extract(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "second version, longer", text)
}

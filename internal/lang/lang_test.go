package lang

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/assetpack/internal/jsonfile"
	"github.com/udisondev/assetpack/internal/testutil"
)

func TestCopy(t *testing.T) {
	src := testutil.SetupTree(t, map[string]string{
		"english.json":      "\xEF\xBB\xBF{\n  \"TITLE\": \"Rocket <Science>\",\n  \"N\": 1.0\n}",
		"dutch.json":        `{ "TITLE" : "Raketwetenschap" }`,
		"extra/notes.txt":   "skip me",
		"extra/german.json": `{"TITLE": "Raketenwissenschaft"}`,
	})
	out := filepath.Join(t.TempDir(), "dist")

	written, err := Copy(Options{SourceDir: src, OutputDir: out})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(out, "dutch.json"),
		filepath.Join(out, "english.json"),
		filepath.Join(out, "extra", "german.json"),
	}, written)

	assert.Equal(t, map[string]string{
		"dutch.json":        `{"TITLE":"Raketwetenschap"}`,
		"english.json":      `{"TITLE":"Rocket <Science>","N":1.0}`,
		"extra/german.json": `{"TITLE":"Raketenwissenschaft"}`,
	}, testutil.ReadTree(t, out))
}

func TestCopy_MalformedAborts(t *testing.T) {
	src := testutil.SetupTree(t, map[string]string{
		"a.json": `{"ok":true}`,
		"b.json": `{"broken":`,
	})

	_, err := Copy(Options{SourceDir: src, OutputDir: t.TempDir()})
	require.ErrorIs(t, err, jsonfile.ErrInvalid)
	assert.Contains(t, err.Error(), "b.json")
}

func TestCopy_MissingSource(t *testing.T) {
	_, err := Copy(Options{SourceDir: filepath.Join(t.TempDir(), "absent"), OutputDir: t.TempDir()})
	require.Error(t, err)
}

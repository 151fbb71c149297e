package missions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/assetpack/internal/testutil"
)

func missionTree(t *testing.T) string {
	return testutil.SetupTree(t, map[string]string{
		"tutorial/01-wires.bin": "\x01\x02",
		"tutorial/02-leds.bin":  "\x03",
		"tutorial/draft.txt":    "ignored",
		"campaign/launch.bin":   "\x04",
		"campaign/extra/x.bin":  "nested, ignored",
		"readme.md":             "not a story",
		"empty/":                "",
	})
}

func TestScan(t *testing.T) {
	dir := missionTree(t)

	m, err := Scan(dir, "missions", ".bin")
	require.NoError(t, err)

	assert.Equal(t, Manifest{Stories: []Story{
		{Label: "campaign", Missions: []Mission{
			{Title: "launch", File: "missions/campaign/launch.bin"},
		}},
		{Label: "empty", Missions: []Mission{}},
		{Label: "tutorial", Missions: []Mission{
			{Title: "01-wires", File: "missions/tutorial/01-wires.bin"},
			{Title: "02-leds", File: "missions/tutorial/02-leds.bin"},
		}},
	}}, m)
}

func TestEncode(t *testing.T) {
	doc, err := Encode(Manifest{Stories: []Story{
		{Label: "a&b", Missions: []Mission{{Title: "<one>", File: "missions/a&b/<one>.bin"}}},
		{Label: "none", Missions: []Mission{}},
	}})
	require.NoError(t, err)

	assert.Equal(t,
		`{"stories":[{"label":"a&b","missions":[{"title":"<one>","file":"missions/a&b/<one>.bin"}]},{"label":"none","missions":[]}]}`,
		string(doc))
}

func TestPack(t *testing.T) {
	src := missionTree(t)
	work := t.TempDir()
	dist := filepath.Join(work, "dist")
	opts := Options{
		SourceDir:    src,
		DistDir:      dist,
		OutputDir:    filepath.Join(dist, "missions"),
		ManifestPath: filepath.Join(work, "src", "missions.json"),
		Extension:    ".bin",
	}

	// stale output from an earlier run must disappear
	testutil.WriteTree(t, opts.OutputDir, map[string]string{"removed/old.bin": "x"})

	artifacts, err := Pack(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{opts.OutputDir, opts.ManifestPath}, artifacts)

	assert.Equal(t, testutil.ReadTree(t, src), testutil.ReadTree(t, opts.OutputDir))

	doc, err := os.ReadFile(opts.ManifestPath)
	require.NoError(t, err)
	assert.Equal(t, `{"stories":[`+
		`{"label":"campaign","missions":[{"title":"launch","file":"missions/campaign/launch.bin"}]},`+
		`{"label":"empty","missions":[]},`+
		`{"label":"tutorial","missions":[{"title":"01-wires","file":"missions/tutorial/01-wires.bin"},{"title":"02-leds","file":"missions/tutorial/02-leds.bin"}]}`+
		`]}`, string(doc))

	// second run, same bytes
	_, err = Pack(opts)
	require.NoError(t, err)
	again, err := os.ReadFile(opts.ManifestPath)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func TestPack_MissingSource(t *testing.T) {
	work := t.TempDir()
	_, err := Pack(Options{
		SourceDir:    filepath.Join(work, "absent"),
		DistDir:      work,
		OutputDir:    filepath.Join(work, "missions"),
		ManifestPath: filepath.Join(work, "missions.json"),
		Extension:    ".bin",
	})
	require.Error(t, err)
}

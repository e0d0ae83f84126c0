package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseManifest(t *testing.T) {
	content := "þBEGBATESþþENDBATESþ\n" +
		"þEFTA00000001þþEFTA00000009þ\n" +
		"þEFTA00000010þþEFTA00000015þ\n"
	path := writeManifest(t, t.TempDir(), "VOL001.DAT", content)

	bates, err := ParseManifest(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"EFTA00000001": "EFTA00000009",
		"EFTA00000010": "EFTA00000015",
	}, bates)
}

func TestParseManifestSkipsHeaderAndShortLines(t *testing.T) {
	content := "þBEGBATESþþENDBATESþ\n" +
		"þEFTA00000001þ\n" +
		"\n" +
		"þEFTA00000020þþEFTA00000021þ\n"
	path := writeManifest(t, t.TempDir(), "VOL002.dat", content)

	bates, err := ParseManifest(path)
	require.NoError(t, err)
	// header and the one-field line contribute nothing
	assert.Equal(t, map[string]string{"EFTA00000020": "EFTA00000021"}, bates)
}

func TestParseManifestMissingFile(t *testing.T) {
	bates, err := ParseManifest(filepath.Join(t.TempDir(), "absent.DAT"))
	require.NoError(t, err)
	assert.Empty(t, bates)
}

func TestLoadManifestsMergesVolumes(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "VOL001.DAT", "headerþrow\nþEFTA00000001þþEFTA00000005þ\n")
	writeManifest(t, dir, "vol002.dat", "headerþrow\nþEFTA00000006þþEFTA00000012þ\n")
	writeManifest(t, dir, "notes.txt", "þEFTA00000099þþEFTA00000100þ\n")

	merged, err := LoadManifests(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"EFTA00000001": "EFTA00000005",
		"EFTA00000006": "EFTA00000012",
	}, merged)
}

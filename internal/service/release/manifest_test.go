package release

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFileChecksum verifies checksums are stable and content-sensitive.
func TestFileChecksum(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "artifact")
	require.NoError(t, os.WriteFile(path, []byte("binary contents"), 0o755))

	first, err := FileChecksum(path)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := FileChecksum(path)
	require.NoError(t, err)
	require.Equal(t, first, second)

	require.NoError(t, os.WriteFile(path, []byte("different contents"), 0o755))

	changed, err := FileChecksum(path)
	require.NoError(t, err)
	require.NotEqual(t, first, changed)
}

// TestTreeChecksum verifies tree digests react to content and path changes.
func TestTreeChecksum(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "Contents", "MacOS")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "DataProcessor"), []byte("binary"), 0o755))

	first, err := TreeChecksum(dir)
	require.NoError(t, err)

	second, err := TreeChecksum(dir)
	require.NoError(t, err)
	require.Equal(t, first, second)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Contents", "Info.plist"), []byte("<plist/>"), 0o644))

	changed, err := TreeChecksum(dir)
	require.NoError(t, err)
	require.NotEqual(t, first, changed)
}

// TestDescriptionRoundtrip ensures the manifest survives save and load.
func TestDescriptionRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	desc := NewDescription("v1.2.3")
	desc.Artifacts = append(desc.Artifacts, ArtifactEntry{
		Platform: "windows",
		File:     "DataProcessor.exe",
		Kind:     "binary",
		Size:     42,
		Checksum: "abc=",
	})
	desc.Failures = append(desc.Failures, FailureEntry{
		Platform: "darwin",
		Error:    "tool exited with status 1",
	})

	require.NoError(t, desc.Save(dir))

	loaded, err := LoadDescription(dir)
	require.NoError(t, err)
	require.Equal(t, desc.VersionNumber, loaded.VersionNumber)
	require.Equal(t, desc.Tag, loaded.Tag)
	require.Equal(t, desc.Artifacts, loaded.Artifacts)
	require.Equal(t, desc.Failures, loaded.Failures)
}

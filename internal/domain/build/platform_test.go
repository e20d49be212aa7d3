package build

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParsePlatform checks accepted identifiers, normalization and rejection of unknowns.
func TestParsePlatform(t *testing.T) {
	t.Parallel()

	for _, p := range Supported() {
		got, err := ParsePlatform(string(p))
		require.NoError(t, err)
		require.Equal(t, p, got)
	}

	// Case and whitespace are normalized.
	got, err := ParsePlatform("  Windows ")
	require.NoError(t, err)
	require.Equal(t, Windows, got)

	_, err = ParsePlatform("beos")
	require.ErrorIs(t, err, ErrUnknownPlatform)
}

// TestArtifactName verifies platform naming conventions.
func TestArtifactName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "DataProcessor.exe", Windows.ArtifactName("DataProcessor"))
	require.Equal(t, "DataProcessor.app", Darwin.ArtifactName("DataProcessor"))
	require.Equal(t, "DataProcessor", Linux.ArtifactName("DataProcessor"))
}

// TestIconExtension verifies the icon extension convention per platform.
func TestIconExtension(t *testing.T) {
	t.Parallel()

	require.Equal(t, ".ico", Windows.IconExtension())
	require.Equal(t, ".icns", Darwin.IconExtension())
	require.Empty(t, Linux.IconExtension())
}

// TestBundled ensures only darwin produces a bundle directory.
func TestBundled(t *testing.T) {
	t.Parallel()

	require.True(t, Darwin.Bundled())
	require.False(t, Windows.Bundled())
	require.False(t, Linux.Bundled())
}

package builder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/manimj777-glitch/dataprocessor-builds/internal/config"
	"github.com/manimj777-glitch/dataprocessor-builds/internal/domain/build"
)

// countPrefix counts arguments carrying the given flag prefix.
func countPrefix(args []string, prefix string) int {
	n := 0

	for _, a := range args {
		if strings.HasPrefix(a, prefix) {
			n++
		}
	}

	return n
}

// TestArgs_Shape asserts the invariants of the derived argument list:
// exactly one name flag, an icon flag only when configured, one
// hidden-import flag per listed module, and the entry path last.
func TestArgs_Shape(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Entry:         "ArtWork.py",
		Name:          "DataProcessor",
		Icons:         map[string]string{"windows": "assets/app.ico"},
		HiddenImports: []string{"pandas._libs.tslibs.offsets", "openpyxl.cell._writer", "xlsxwriter"},
		OutputDir:     "dist",
	}

	args := Args(cfg, build.Windows)

	require.Equal(t, 1, countPrefix(args, "--name="))
	require.Equal(t, 1, countPrefix(args, "--icon="))
	require.Equal(t, len(cfg.HiddenImports), countPrefix(args, "--hidden-import="))
	require.Equal(t, "ArtWork.py", args[len(args)-1])
	require.Contains(t, args, "--onefile")
	require.Contains(t, args, "--windowed")
	require.Contains(t, args, "--clean")
	require.Contains(t, args, "--distpath=dist")

	// Hidden imports keep declaration order.
	var seen []string

	for _, a := range args {
		if v, ok := strings.CutPrefix(a, "--hidden-import="); ok {
			seen = append(seen, v)
		}
	}

	require.Equal(t, cfg.HiddenImports, seen)

	// Derivation is deterministic.
	require.Equal(t, args, Args(cfg, build.Windows))
}

// TestArgs_NoIconConfigured verifies that no icon flag sneaks in when the
// platform has no icon configured.
func TestArgs_NoIconConfigured(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Entry:     "app.py",
		Name:      "DataProcessor",
		OutputDir: "dist",
	}

	args := Args(cfg, build.Linux)

	require.Zero(t, countPrefix(args, "--icon="))
	require.Equal(t, "app.py", args[len(args)-1])
}

// TestArgs_DarwinBundle checks bundle-platform specifics: onedir mode and
// the bundle identifier flag.
func TestArgs_DarwinBundle(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Entry:     "ArtWork.py",
		Name:      "DataProcessor",
		BundleID:  "com.dataprocessor.app",
		OutputDir: "dist",
	}

	args := Args(cfg, build.Darwin)

	require.Contains(t, args, "--onedir")
	require.NotContains(t, args, "--onefile")
	require.Contains(t, args, "--osx-bundle-identifier=com.dataprocessor.app")
}

// TestArgs_ConsoleAndCache verifies the inverted knobs drop their flags.
func TestArgs_ConsoleAndCache(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Entry:          "app.py",
		Name:           "DataProcessor",
		Console:        true,
		KeepBuildCache: true,
		OutputDir:      "dist",
	}

	args := Args(cfg, build.Linux)

	require.NotContains(t, args, "--windowed")
	require.NotContains(t, args, "--clean")
}

package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParse covers comments, blank lines, constraints and name normalization.
func TestParse(t *testing.T) {
	t.Parallel()

	contents := []byte(`# runtime dependencies
pandas==2.1.4
numpy>=1.26
openpyxl
XlsxWriter  # Excel output
kivy~=2.3

xlrd
`)

	m, err := parse(contents)
	require.NoError(t, err)
	require.Equal(t,
		[]string{"pandas", "numpy", "openpyxl", "xlsxwriter", "kivy", "xlrd"},
		m.Names())

	require.Equal(t, "==2.1.4", m.Entries[0].Constraint)
	require.Empty(t, m.Entries[2].Constraint)
}

// TestContains checks dotted module paths against declared package roots.
func TestContains(t *testing.T) {
	t.Parallel()

	m := &Manifest{Entries: []Entry{{Name: "pandas"}, {Name: "openpyxl"}}}

	require.True(t, m.Contains("pandas"))
	require.True(t, m.Contains("pandas._libs.tslibs.offsets"))
	require.True(t, m.Contains("openpyxl.cell._writer"))
	require.False(t, m.Contains("tkinter.filedialog"))
}

// TestLoadSaveRoundtrip ensures the manifest survives a save/load cycle.
func TestLoadSaveRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "requirements.txt")
	repo := NewFileRepository(path)
	ctx := context.Background()

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	m := &Manifest{Entries: []Entry{
		{Name: "pandas", Constraint: "==2.1.4"},
		{Name: "openpyxl"},
	}}
	require.NoError(t, repo.Save(ctx, m))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, m.Names(), loaded.Names())

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

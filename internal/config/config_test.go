package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields, platform conventions and defaulting.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Missing entry.
	cfg := new(Config)

	err := Validate(cfg)
	require.Error(t, err)

	// Missing name.
	cfg = &Config{Entry: "app.py"}

	err = Validate(cfg)
	require.Error(t, err)

	// Unknown platform key in icons.
	cfg = &Config{
		Entry: "app.py",
		Name:  "DataProcessor",
		Icons: map[string]string{"amiga": "app.ico"},
	}

	err = Validate(cfg)
	require.Error(t, err)

	// Icon extension breaking platform convention.
	cfg = &Config{
		Entry: "app.py",
		Name:  "DataProcessor",
		Icons: map[string]string{"darwin": "app.ico"},
	}

	err = Validate(cfg)
	require.Error(t, err)

	// Icon declared for a platform without icon support.
	cfg = &Config{
		Entry: "app.py",
		Name:  "DataProcessor",
		Icons: map[string]string{"linux": "app.png"},
	}

	err = Validate(cfg)
	require.Error(t, err)

	// Okay; defaults are filled in.
	cfg = &Config{
		Entry: "app.py",
		Name:  "DataProcessor",
		Icons: map[string]string{
			"windows": "assets/app.ico",
			"darwin":  "assets/app.icns",
		},
	}

	err = Validate(cfg)
	require.NoError(t, err)
	require.Equal(t, DefaultOutputDir, cfg.OutputDir)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
}

// TestValidate_ConfigurationErrorShape ensures validation failures expose
// field and cause through the error type.
func TestValidate_ConfigurationErrorShape(t *testing.T) {
	t.Parallel()

	err := Validate(&Config{Name: "DataProcessor"})

	var confErr *ConfigurationError

	require.ErrorAs(t, err, &confErr)
	require.Equal(t, "entry", confErr.Field)
	require.ErrorIs(t, err, errEntryRequired)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	cfg := &Config{
		Entry:           "ArtWork.py",
		Name:            "DataProcessor",
		HiddenImports:   []string{"pandas._libs.lib", "xlsxwriter"},
		CollectPackages: []string{"kivy", "pandas"},
		BundleID:        "com.dataprocessor.app",
		InstallerImage:  true,
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.Entry, loaded.Entry)
	require.Equal(t, cfg.Name, loaded.Name)
	require.Equal(t, cfg.HiddenImports, loaded.HiddenImports)
	require.Equal(t, cfg.CollectPackages, loaded.CollectPackages)
	require.Equal(t, cfg.BundleID, loaded.BundleID)
	require.True(t, loaded.InstallerImage)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoad_MissingFile surfaces the read error.
func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/manimj777-glitch/dataprocessor-builds/internal/domain/build"
)

// Config describes one packaged application. It is read once per build and
// never mutated afterwards.
type Config struct {
	// Entry is the path to the entry-point script handed to the packaging tool.
	Entry string `yaml:"entry"`
	// Name is the application name used for the produced artifact.
	Name string `yaml:"name"`
	// Icons maps platform identifiers to icon resource paths.
	// Extensions follow platform convention (.ico on windows, .icns on darwin).
	Icons map[string]string `yaml:"icons,omitempty"`
	// HiddenImports lists modules the tool's static analysis misses.
	// Order is preserved; each entry becomes exactly one tool flag.
	HiddenImports []string `yaml:"hidden_imports,omitempty"`
	// CollectPackages lists packages whose data files are bundled wholesale.
	CollectPackages []string `yaml:"collect_packages,omitempty"`
	// CollectBinaries lists packages whose native binaries are bundled.
	CollectBinaries []string `yaml:"collect_binaries,omitempty"`
	// Requirements is the path to the declared dependency manifest.
	Requirements string `yaml:"requirements,omitempty"`
	// OutputDir is where the tool places produced artifacts.
	OutputDir string `yaml:"output_dir,omitempty"`
	// BundleID is the bundle identifier embedded on bundle platforms.
	BundleID string `yaml:"bundle_id,omitempty"`
	// Console keeps the console window; by default the build is windowed.
	Console bool `yaml:"console,omitempty"`
	// KeepBuildCache skips cleaning the tool's cache before building.
	KeepBuildCache bool `yaml:"keep_build_cache,omitempty"`
	// InstallerImage enables the compressed installer image step
	// for bundle platforms.
	InstallerImage bool `yaml:"installer_image,omitempty"`
	// Timeout bounds a single tool invocation.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for build settings.
	DefaultConfigFilename = "dataprocessor-build.yaml"

	// DefaultOutputDir is where artifacts land unless configured otherwise.
	DefaultOutputDir = "dist"

	// DefaultTimeout bounds a single packaging tool invocation.
	DefaultTimeout = 15 * time.Minute

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read build settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal build settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal build settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write build settings: %w", err)
	}

	return nil
}

// Validate checks the provided configuration for required fields and
// platform conventions, and fills in defaults.
func Validate(cfg *Config) error {
	if cfg.Entry == "" {
		return &ConfigurationError{Field: "entry", Err: errEntryRequired}
	}

	if cfg.Name == "" {
		return &ConfigurationError{Field: "name", Err: errNameRequired}
	}

	for key, iconPath := range cfg.Icons {
		platform, err := build.ParsePlatform(key)
		if err != nil {
			return &ConfigurationError{Field: "icons", Path: iconPath, Err: err}
		}

		ext := platform.IconExtension()
		if ext == "" {
			return &ConfigurationError{
				Field: "icons",
				Path:  iconPath,
				Err:   fmt.Errorf("%w: %s", errIconsUnsupported, platform),
			}
		}

		if filepath.Ext(iconPath) != ext {
			return &ConfigurationError{
				Field: "icons",
				Path:  iconPath,
				Err:   fmt.Errorf("%w: %s wants %s", errIconExtension, platform, ext),
			}
		}
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return nil
}

// Icon returns the icon path configured for the platform, or "" when absent.
func (c *Config) Icon(platform build.Platform) string {
	return c.Icons[string(platform)]
}

package builder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/manimj777-glitch/dataprocessor-builds/internal/config"
	"github.com/manimj777-glitch/dataprocessor-builds/internal/domain/build"
	"github.com/manimj777-glitch/dataprocessor-builds/internal/logger"
	"github.com/manimj777-glitch/dataprocessor-builds/internal/repository/manifest"
)

// Options contains inputs for the build driver entry point.
type Options struct {
	// ConfigPath is an optional path to the build settings YAML
	// (defaults to dataprocessor-build.yaml).
	ConfigPath string
	// Platform is the target platform identifier.
	Platform string
	// OutputDir overrides the configured artifact output directory.
	OutputDir string
	// Tool overrides the packaging tool executable.
	Tool string
	// Runner overrides tool invocation; nil means run the real tool.
	Runner Runner
}

// driver packages the configured entry script for a single platform.
// It is unexported—callers should use Run, which encapsulates setup and validation.
type driver struct {
	// cfg is the immutable build configuration.
	cfg *config.Config
	// platform is the packaging target.
	platform build.Platform
	// tool is the packaging tool executable.
	tool string
	// runner invokes the tool.
	runner Runner
	// manifests loads the declared dependency manifest, when one is configured.
	manifests manifest.Repository
}

// Run executes the build workflow and returns the produced artifact.
func Run(ctx context.Context, opts *Options) (*build.Artifact, error) {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "run-build")

	platform, err := build.ParsePlatform(opts.Platform)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load build settings: %w", err)
	}

	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}

	d := newDriver(cfg, platform, opts.Tool, opts.Runner)

	if err = d.preflight(ctx); err != nil {
		return nil, err
	}

	if err = os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	if IsBuildRunningNow(ctx, cfg.OutputDir, d.tool) {
		return nil, errBuildRunning
	}

	if err = createMarker(cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("claim workspace: %w", err)
	}
	defer removeMarker(cfg.OutputDir)

	artifact, err := d.invoke(ctx)
	if err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Build completed successfully",
		"platform", artifact.Platform.String(),
		"artifact", artifact.Path,
		"size", artifact.Size)

	return artifact, nil
}

// newDriver assembles a driver with defaults applied.
func newDriver(cfg *config.Config, platform build.Platform, tool string, runner Runner) *driver {
	if tool == "" {
		tool = DefaultTool
	}

	if runner == nil {
		runner = execRunner{}
	}

	d := &driver{
		cfg:      cfg,
		platform: platform,
		tool:     tool,
		runner:   runner,
	}

	if cfg.Requirements != "" {
		d.manifests = manifest.NewFileRepository(cfg.Requirements)
	}

	return d
}

// preflight verifies every declared input exists before the tool runs.
// All failures here are ConfigurationError: the tool is never invoked.
func (d *driver) preflight(ctx context.Context) error {
	if _, err := os.Stat(d.cfg.Entry); err != nil {
		return &config.ConfigurationError{Field: "entry", Path: d.cfg.Entry, Err: err}
	}

	if icon := d.cfg.Icon(d.platform); icon != "" {
		if _, err := os.Stat(icon); err != nil {
			return &config.ConfigurationError{Field: "icons", Path: icon, Err: err}
		}
	}

	if d.manifests == nil {
		return nil
	}

	declared, err := d.manifests.Load(ctx)
	if err != nil {
		return &config.ConfigurationError{Field: "requirements", Path: d.cfg.Requirements, Err: err}
	}

	logger.InfoKV(ctx, "Loaded dependency manifest",
		"path", d.cfg.Requirements,
		"packages", len(declared.Entries))

	// Hidden imports outside the declared set usually mean a stale manifest.
	for _, module := range d.cfg.HiddenImports {
		if !declared.Contains(module) {
			logger.WarnKV(ctx, "Hidden import is not covered by the dependency manifest", "module", module)
		}
	}

	return nil
}

// invoke runs the packaging tool and verifies the expected artifact.
func (d *driver) invoke(ctx context.Context) (*build.Artifact, error) {
	args := Args(d.cfg, d.platform)

	logger.InfoKV(ctx, "Invoking packaging tool",
		"tool", d.tool,
		"platform", d.platform.String(),
		"entry", d.cfg.Entry)

	toolCtx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	started := time.Now()

	output, err := d.runner.Run(toolCtx, d.tool, args)
	if err != nil {
		return nil, &BuildFailure{
			Platform:    d.platform,
			Diagnostics: string(output),
			Err:         err,
		}
	}

	logger.InfoKV(ctx, "Packaging tool finished", "duration", time.Since(started).String())

	return d.verifyArtifact(string(output))
}

// verifyArtifact checks that the artifact the tool was asked for actually exists.
func (d *driver) verifyArtifact(diagnostics string) (*build.Artifact, error) {
	var (
		name = d.platform.ArtifactName(d.cfg.Name)
		path = filepath.Join(d.cfg.OutputDir, name)
	)

	info, err := os.Stat(path)
	if err != nil {
		return nil, &BuildFailure{
			Platform:    d.platform,
			Diagnostics: diagnostics,
			Err:         fmt.Errorf("%w: %s", ErrArtifactMissing, path),
		}
	}

	artifact := &build.Artifact{
		Platform: d.platform,
		Name:     name,
		Path:     path,
		Kind:     build.KindBinary,
		Size:     info.Size(),
	}

	if info.IsDir() {
		artifact.Kind = build.KindBundle
		artifact.Size = treeSize(path)
	}

	return artifact, nil
}

// treeSize sums regular file sizes under root. Best effort: unreadable
// entries count as zero.
func treeSize(root string) int64 {
	var total int64

	_ = filepath.WalkDir(root, func(_ string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return nil //nolint:nilerr // Size is informational only.
		}

		if info, infoErr := entry.Info(); infoErr == nil {
			total += info.Size()
		}

		return nil
	})

	return total
}

// IsConfigurationError reports whether the error chain contains a
// configuration problem, so callers can tell misuse from tool failure.
func IsConfigurationError(err error) bool {
	var confErr *config.ConfigurationError

	return errors.As(err, &confErr)
}

package release

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/manimj777-glitch/dataprocessor-builds/internal/config"
	"github.com/manimj777-glitch/dataprocessor-builds/internal/domain/build"
	"github.com/manimj777-glitch/dataprocessor-builds/internal/logger"
	"github.com/manimj777-glitch/dataprocessor-builds/internal/service/builder"
)

// Options contains inputs for the orchestrator entry point.
type Options struct {
	// ConfigPath is an optional path to the build settings YAML.
	ConfigPath string
	// Platforms lists target platform identifiers; empty means all supported.
	Platforms []string
	// Tag marks this run as a tagged release; artifacts are additionally
	// mirrored under releases/<tag>.
	Tag string
	// PublishDir is where artifacts and the manifest land (defaults to artifacts).
	PublishDir string
	// WorkDir is the root under which each platform gets its own workspace
	// (defaults to build).
	WorkDir string
	// Tool overrides the packaging tool executable.
	Tool string
	// Runner overrides tool invocation; nil means run the real tool.
	Runner builder.Runner
}

const (
	// DefaultPublishDir is where published outputs land unless overridden.
	DefaultPublishDir = "artifacts"

	// DefaultWorkDir is the root of per-platform build workspaces.
	DefaultWorkDir = "build"

	// releasesDir holds tagged release mirrors.
	releasesDir = "releases"
)

// errAllBuildsFailed indicates that no platform produced an artifact.
var errAllBuildsFailed = errors.New("all platform builds failed")

// Run executes the release workflow: one isolated build per platform,
// then collection, publication and the release manifest.
//
// Platform failures do not abort the run; they are recorded in the manifest
// and reported through the returned error after successful artifacts have
// been published.
func Run(ctx context.Context, opts *Options) (*Description, error) {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "run-release")

	platforms, err := resolvePlatforms(opts.Platforms)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load build settings: %w", err)
	}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir = DefaultWorkDir
	}

	publishDir := opts.PublishDir
	if publishDir == "" {
		publishDir = DefaultPublishDir
	}

	results := runBuilds(ctx, opts, platforms, workDir)

	desc, buildErrs := collect(ctx, cfg, results, publishDir, opts.Tag)
	if len(buildErrs) == len(platforms) {
		return desc, fmt.Errorf("%w: %w", errAllBuildsFailed, errors.Join(buildErrs...))
	}

	if err = publishManifest(ctx, desc, publishDir, opts.Tag); err != nil {
		return desc, err
	}

	logger.InfoKV(ctx, "Release completed",
		"artifacts", len(desc.Artifacts),
		"failures", len(desc.Failures))

	if len(buildErrs) > 0 {
		return desc, errors.Join(buildErrs...)
	}

	return desc, nil
}

// resolvePlatforms parses the requested platform identifiers,
// defaulting to all supported platforms.
func resolvePlatforms(requested []string) ([]build.Platform, error) {
	if len(requested) == 0 {
		return build.Supported(), nil
	}

	platforms := make([]build.Platform, 0, len(requested))

	for _, s := range requested {
		platform, err := build.ParsePlatform(s)
		if err != nil {
			return nil, err
		}

		platforms = append(platforms, platform)
	}

	return platforms, nil
}

// runBuilds runs the driver once per platform, in parallel, each against
// its own workspace. Results land in per-platform slots, so no locking is
// needed beyond the WaitGroup.
func runBuilds(ctx context.Context, opts *Options, platforms []build.Platform, workDir string) []build.Result {
	var (
		results = make([]build.Result, len(platforms))
		wg      sync.WaitGroup
	)

	for i, platform := range platforms {
		wg.Add(1)

		go func(slot int, platform build.Platform) {
			defer wg.Done()

			buildCtx := logger.WithKV(ctx, "platform", platform.String())
			started := time.Now()

			artifact, err := builder.Run(buildCtx, &builder.Options{
				ConfigPath: opts.ConfigPath,
				Platform:   string(platform),
				OutputDir:  filepath.Join(workDir, string(platform)),
				Tool:       opts.Tool,
				Runner:     opts.Runner,
			})

			results[slot] = build.Result{
				Platform: platform,
				Artifact: artifact,
				Err:      err,
				Duration: time.Since(started),
			}
		}(i, platform)
	}

	wg.Wait()

	return results
}

// collect publishes successful artifacts and records failures.
func collect(
	ctx context.Context,
	cfg *config.Config,
	results []build.Result,
	publishDir string,
	tag string,
) (*Description, []error) {
	var (
		desc      = NewDescription(tag)
		buildErrs []error
	)

	if err := os.MkdirAll(publishDir, 0o755); err != nil {
		return desc, []error{fmt.Errorf("create publish directory: %w", err)}
	}

	for i := range results {
		result := &results[i]

		if !result.Succeeded() {
			message := "Platform build failed"
			if builder.IsConfigurationError(result.Err) {
				message = "Platform build rejected by configuration checks"
			}

			logger.ErrorKV(ctx, message,
				"platform", result.Platform.String(),
				"error", result.Err)

			desc.Failures = append(desc.Failures, FailureEntry{
				Platform: result.Platform.String(),
				Error:    result.Err.Error(),
			})
			buildErrs = append(buildErrs, result.Err)

			continue
		}

		entry, err := publishArtifact(cfg, result.Artifact, publishDir)
		if err != nil {
			logger.ErrorKV(ctx, "Publishing artifact failed",
				"platform", result.Platform.String(),
				"error", err)

			desc.Failures = append(desc.Failures, FailureEntry{
				Platform: result.Platform.String(),
				Error:    err.Error(),
			})
			buildErrs = append(buildErrs, err)

			continue
		}

		logger.InfoKV(ctx, "Published artifact",
			"platform", entry.Platform,
			"file", entry.File,
			"duration", result.Duration.String())

		desc.Artifacts = append(desc.Artifacts, entry)
	}

	sort.Slice(desc.Artifacts, func(i, j int) bool {
		return desc.Artifacts[i].Platform < desc.Artifacts[j].Platform
	})

	return desc, buildErrs
}

// publishManifest writes the manifest and mirrors tagged releases.
func publishManifest(ctx context.Context, desc *Description, publishDir, tag string) error {
	logger.InfoKV(ctx, "Saving release manifest", "path", filepath.Join(publishDir, ManifestFilename))

	if err := desc.Save(publishDir); err != nil {
		return err
	}

	if tag == "" {
		return nil
	}

	tagDir := filepath.Join(releasesDir, tag)

	logger.InfoKV(ctx, "Mirroring tagged release", "tag", tag, "path", tagDir)

	if err := copyTree(publishDir, tagDir); err != nil {
		return fmt.Errorf("mirror release %s: %w", tag, err)
	}

	return nil
}

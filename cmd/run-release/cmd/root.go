package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/manimj777-glitch/dataprocessor-builds/internal/config"
	"github.com/manimj777-glitch/dataprocessor-builds/internal/logger"
	"github.com/manimj777-glitch/dataprocessor-builds/internal/service/builder"
	"github.com/manimj777-glitch/dataprocessor-builds/internal/service/release"
	"github.com/manimj777-glitch/dataprocessor-builds/internal/version"
)

var (
	// configPath to the build settings YAML file.
	configPath string

	// tag marks a tagged release; artifacts are mirrored under releases/<tag>.
	tag string

	// publishDir is where artifacts and the release manifest land.
	publishDir string

	// tool overrides the packaging tool executable.
	tool string

	// logLevel sets the minimum log level.
	logLevel string

	// rootCmd represents the base command for building and publishing all platforms.
	rootCmd = &cobra.Command{
		Use:   "run-release [platform ...]",
		Short: "Build every target platform and publish the artifacts",
		Args:  cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			options := &release.Options{
				ConfigPath: configPath,
				Platforms:  args,
				Tag:        tag,
				PublishDir: publishDir,
				Tool:       tool,
			}

			_, err := release.Run(ctx, options)

			return err
		},
	}
)

// Execute runs the run-release CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to build settings file")
	rootCmd.Flags().StringVar(&tag, "tag", "", "version tag to publish a release for")
	rootCmd.Flags().StringVarP(&publishDir, "publish", "p", release.DefaultPublishDir, "publish directory for artifacts")
	rootCmd.Flags().StringVarP(&tool, "tool", "t", builder.DefaultTool, "packaging tool executable")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "minimum log level")
}

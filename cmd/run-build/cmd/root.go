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
	"github.com/manimj777-glitch/dataprocessor-builds/internal/version"
)

var (
	// configPath to the build settings YAML file.
	configPath string

	// outputDir overrides the configured artifact output directory.
	outputDir string

	// tool overrides the packaging tool executable.
	tool string

	// logLevel sets the minimum log level.
	logLevel string

	// rootCmd represents the base command for packaging one platform.
	rootCmd = &cobra.Command{
		Use:   "run-build <platform>",
		Short: "Package the application for one target platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			options := &builder.Options{
				ConfigPath: configPath,
				Platform:   args[0],
				OutputDir:  outputDir,
				Tool:       tool,
			}

			_, err := builder.Run(ctx, options)

			return err
		},
	}
)

// Execute runs the run-build CLI and exits with non-zero status on error.
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
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "artifact output directory override")
	rootCmd.Flags().StringVarP(&tool, "tool", "t", builder.DefaultTool, "packaging tool executable")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "minimum log level")
}

package builder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/manimj777-glitch/dataprocessor-builds/internal/logger"
)

const (
	// MarkerFilename marks that a build is running right now to avoid
	// two tool invocations fighting over the same output directory.
	MarkerFilename = "dataprocessor-build-marker.bin"

	// markerMode keeps the marker readable for inspection.
	markerMode os.FileMode = 0o644

	// markerLifetime is the period after which a stale build marker is ignored.
	// Packaging large dependency sets is slow, so it is generous.
	markerLifetime = 30 * time.Minute
)

// markerPath locates the marker inside the build workspace so concurrent
// builds with separate output directories never block one another.
func markerPath(workspace string) string {
	return filepath.Join(workspace, MarkerFilename)
}

// IsBuildRunningNow checks presence of a marker file in the workspace and
// attempts recovery if it looks stale.
func IsBuildRunningNow(ctx context.Context, workspace, tool string) bool {
	logger.Info(ctx, "Checking for the presence of a build marker")

	fileInfo, err := os.Stat(markerPath(workspace))
	if err == nil {
		if time.Since(fileInfo.ModTime()) <= markerLifetime {
			return true
		}

		logger.Info(ctx, "The build marker is too old, attempting cleanup")

		if err = terminateProcessByName(filepath.Base(tool)); err != nil {
			return true
		}

		if err = os.Remove(markerPath(workspace)); err != nil {
			return true
		}

		return false
	}

	if errors.Is(err, os.ErrNotExist) {
		logger.Info(ctx, "Build marker not found, continuing")
		return false
	}

	logger.Infof(ctx, "Unable to read build marker: %v", err)

	return false
}

// createMarker claims the workspace for this build.
func createMarker(workspace string) error {
	return os.WriteFile(markerPath(workspace), []byte(time.Now().Format(time.RFC3339)), markerMode)
}

// removeMarker releases the workspace.
func removeMarker(workspace string) {
	_ = os.Remove(markerPath(workspace))
}

// terminateProcessByName tries to kill processes with the provided executable name.
func terminateProcessByName(processName string) error {
	processList, err := ps.Processes()
	if err != nil {
		return err
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() != processName {
			continue
		}

		var runningProcess *os.Process

		runningProcess, err = os.FindProcess(process.Pid())
		if err != nil {
			return err
		}

		if err = runningProcess.Kill(); err != nil {
			return err
		}
	}

	return nil
}

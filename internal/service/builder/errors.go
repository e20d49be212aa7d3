package builder

import (
	"errors"

	"github.com/manimj777-glitch/dataprocessor-builds/internal/domain/build"
)

var (
	// ErrArtifactMissing indicates the tool exited cleanly but left no artifact.
	ErrArtifactMissing = errors.New("expected artifact is absent after packaging")
	// errBuildRunning indicates another build holds the workspace marker.
	errBuildRunning = errors.New("another build is running now")
)

// BuildFailure reports that the packaging tool exited non-zero or produced
// no artifact. Diagnostics carries the tool's captured output verbatim.
type BuildFailure struct {
	// Platform is the target whose build failed.
	Platform build.Platform
	// Diagnostics is the tool's combined stdout/stderr.
	Diagnostics string
	// Err is the underlying cause.
	Err error
}

// Error names the platform and the cause; diagnostics are kept separate
// because tool output runs to many lines.
func (e *BuildFailure) Error() string {
	return "build " + string(e.Platform) + ": " + e.Err.Error()
}

// Unwrap exposes the underlying cause for errors.Is checks.
func (e *BuildFailure) Unwrap() error {
	return e.Err
}

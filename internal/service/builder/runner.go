package builder

import (
	"context"
	"os/exec"
)

// DefaultTool is the packaging tool invoked unless overridden.
const DefaultTool = "pyinstaller"

// Runner invokes the external packaging tool and returns its combined output.
// The driver depends on this interface so tests can substitute the tool.
type Runner interface {
	Run(ctx context.Context, tool string, args []string) ([]byte, error)
}

// execRunner runs the tool as a subprocess.
type execRunner struct{}

// Run executes the tool and captures stdout and stderr together, the way
// operators see it in a terminal.
func (execRunner) Run(ctx context.Context, tool string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, tool, args...)

	return cmd.CombinedOutput()
}

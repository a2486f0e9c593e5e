package media

import (
	"context"
	"os/exec"
)

// Runner executes external commands. The pipeline only ever talks to ffmpeg
// and ffprobe through this, so tests can substitute a stub.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	LookPath(name string) (string, error)
}

// DefaultRunner returns the os/exec backed runner.
func DefaultRunner() Runner { return execRunner{} }

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

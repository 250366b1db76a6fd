package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"go.uber.org/zap"
)

// ExecRunner runs commands through os/exec. Non-zero exits are wrapped in
// CommandError so callers can branch on the exit code without poking at
// *exec.ExitError.
type ExecRunner struct {
	logger *zap.Logger
}

func NewExecRunner(logger *zap.Logger) *ExecRunner {
	return &ExecRunner{logger: logger}
}

func (r *ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if r.logger != nil {
		r.logger.Debug("running command",
			zap.String("dir", dir),
			zap.String("command", name),
			zap.Strings("args", args))
	}
	output, err := cmd.CombinedOutput()
	if r.logger != nil {
		r.logger.Debug("command finished",
			zap.String("command", name),
			zap.Int("output_length", len(output)),
			zap.Error(err),
			zap.String("output", func() string {
				if len(output) > 0 && len(output) < 1000 {
					return string(output)
				}
				return fmt.Sprintf("<%d bytes>", len(output))
			}()))
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output, &CommandError{
				Name:   name,
				Args:   args,
				Code:   exitErr.ExitCode(),
				Output: output,
			}
		}
		return output, err
	}
	return output, nil
}

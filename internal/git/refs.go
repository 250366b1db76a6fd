package git

import (
	"context"
	"fmt"
	"strings"
)

// LocalOnlyFiles are files maintained downstream that must not count as
// divergence from upstream when validating a working tree.
var LocalOnlyFiles = []string{
	"LICENSE", "NOTICE", "METADATA", "OWNERS",
	"patches", "post_update.sh", ".git", ".gitignore",
	"vendsync.yaml",
}

// RefResolver answers read-only ref queries.
type RefResolver struct {
	runner Runner
}

func NewRefResolver(runner Runner) *RefResolver {
	return &RefResolver{runner: runner}
}

// RevParse resolves a ref to its commit hash.
func (r *RefResolver) RevParse(ctx context.Context, projPath, ref string) (string, error) {
	out, err := r.runner.Run(ctx, projPath, "git", "rev-parse", ref)
	if err != nil {
		return "", fmt.Errorf("git rev-parse %s failed: %w", ref, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// DiffStat returns the diff stat between the working tree and ref, ignoring
// files that only exist downstream.
func (r *RefResolver) DiffStat(ctx context.Context, projPath, ref string) (string, error) {
	args := []string{"diff", ref, "--stat", "--"}
	for _, file := range LocalOnlyFiles {
		args = append(args, ":!"+file)
	}
	out, err := r.runner.Run(ctx, projPath, "git", args...)
	if err != nil {
		return "", fmt.Errorf("git diff %s failed: %w", ref, err)
	}
	return string(out), nil
}

package git

import (
	"context"
	"fmt"
	"strings"
)

// Merger performs the merge toward the chosen target. It never commits.
type Merger struct {
	runner Runner
}

func NewMerger(runner Runner) *Merger {
	return &Merger{runner: runner}
}

// Merge merges targetRef into the current branch without committing. A
// non-zero exit with unmerged files is OutcomeConflicted, not an error;
// a non-zero exit with a clean index is a real failure and propagates.
func (m *Merger) Merge(ctx context.Context, projPath, targetRef string) (MergeOutcome, error) {
	_, mergeErr := m.runner.Run(ctx, projPath, "git", "merge", targetRef, "--no-commit")
	if mergeErr == nil {
		return OutcomeClean, nil
	}

	unmerged, err := m.UnmergedFiles(ctx, projPath)
	if err != nil {
		return OutcomeClean, fmt.Errorf("git merge %s failed: %w", targetRef, mergeErr)
	}
	if len(unmerged) > 0 {
		return OutcomeConflicted, nil
	}
	return OutcomeClean, fmt.Errorf("git merge %s failed: %w", targetRef, mergeErr)
}

// UnmergedFiles lists paths with unresolved merge entries. Empty means no
// conflict.
func (m *Merger) UnmergedFiles(ctx context.Context, projPath string) ([]string, error) {
	out, err := m.runner.Run(ctx, projPath, "git", "ls-files", "--unmerged")
	if err != nil {
		return nil, fmt.Errorf("git ls-files --unmerged failed: %w", err)
	}

	seen := make(map[string]struct{})
	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		// Format: <mode> <sha> <stage>\t<path>
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			continue
		}
		if _, ok := seen[parts[1]]; ok {
			continue
		}
		seen[parts[1]] = struct{}{}
		files = append(files, parts[1])
	}
	return files, nil
}

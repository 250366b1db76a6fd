package git

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/penwyp/vendsync/internal/errors"
)

// DefaultUpstreamRemote is the conventional name for the synthetic remote
// pointing at the third-party origin.
const DefaultUpstreamRemote = "update_origin"

// RemoteManager owns the lifecycle of the upstream remote: idempotent
// add/replace, default-branch discovery and fetch.
type RemoteManager struct {
	runner       Runner
	upstreamName string
}

// NewRemoteManager creates a RemoteManager using upstreamName for the
// synthetic remote; empty means DefaultUpstreamRemote.
func NewRemoteManager(runner Runner, upstreamName string) *RemoteManager {
	if upstreamName == "" {
		upstreamName = DefaultUpstreamRemote
	}
	return &RemoteManager{runner: runner, upstreamName: upstreamName}
}

// Remotes lists the configured remotes as a name to fetch-URL mapping.
func (m *RemoteManager) Remotes(ctx context.Context, projPath string) (map[string]string, error) {
	out, err := m.runner.Run(ctx, projPath, "git", "remote", "-v")
	if err != nil {
		return nil, fmt.Errorf("git remote -v failed: %w", err)
	}

	remotes := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		// Format: origin\thttps://example.com/repo.git (fetch)
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if len(fields) >= 3 && strings.Trim(fields[2], "()") == "push" {
			continue
		}
		remotes[fields[0]] = fields[1]
	}
	return remotes, nil
}

// EnsureRemote makes the upstream remote exist and point at url, and returns
// its name. A remote with the right name but a different URL is removed and
// re-added rather than repointed, so stale configuration from an earlier run
// is never trusted. Idempotent across repeated calls with the same URL.
func (m *RemoteManager) EnsureRemote(ctx context.Context, projPath, url string) (string, error) {
	remotes, err := m.Remotes(ctx, projPath)
	if err != nil {
		return "", err
	}

	if existing, ok := remotes[m.upstreamName]; ok {
		if existing == url {
			return m.upstreamName, nil
		}
		if _, err := m.runner.Run(ctx, projPath, "git", "remote", "remove", m.upstreamName); err != nil {
			return "", fmt.Errorf("git remote remove %s failed: %w", m.upstreamName, err)
		}
	}

	if _, err := m.runner.Run(ctx, projPath, "git", "remote", "add", m.upstreamName, url); err != nil {
		return "", fmt.Errorf("git remote add %s failed: %w", m.upstreamName, err)
	}
	return m.upstreamName, nil
}

// DetectDefaultBranch extracts the upstream's default branch from the
// "HEAD branch" line of git remote show.
func (m *RemoteManager) DetectDefaultBranch(ctx context.Context, projPath, remoteName string) (string, error) {
	out, err := m.runner.Run(ctx, projPath, "git", "remote", "show", remoteName)
	if err != nil {
		return "", &apperrors.RemoteDiscoveryError{
			Remote: remoteName,
			Reason: fmt.Sprintf("git remote show failed: %v", err),
		}
	}

	for _, line := range strings.Split(string(out), "\n") {
		if strings.Contains(line, "HEAD branch") {
			fields := strings.Fields(line)
			return fields[len(fields)-1], nil
		}
	}
	return "", &apperrors.RemoteDiscoveryError{
		Remote: remoteName,
		Reason: "no HEAD branch line in git remote show output",
	}
}

// Fetch fetches the named refs from a remote. Tags are always requested:
// tag visibility is needed by the tag catalog regardless of whether the
// project tracks a commit or a tag.
func (m *RemoteManager) Fetch(ctx context.Context, projPath, remoteName string, refs ...string) error {
	args := append([]string{"fetch", "--tags", remoteName}, refs...)
	if _, err := m.runner.Run(ctx, projPath, "git", args...); err != nil {
		return &apperrors.TransportError{Op: "git fetch " + remoteName, Err: err}
	}
	return nil
}

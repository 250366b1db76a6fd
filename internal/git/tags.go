package git

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"
)

// DefaultUnstablePatterns are the describe-exclude globs for pre-release
// tags. Case variants are listed explicitly because git's glob matching is
// case-sensitive.
var DefaultUnstablePatterns = []string{
	"*alpha*", "*Alpha*", "*ALPHA*",
	"*beta*", "*Beta*", "*BETA*",
	"*rc*", "*RC*",
	"*test*", "*Test*",
}

var remoteTagRE = regexp.MustCompile(`refs/tags/([^\^\s]+)`)

// TagCatalog enumerates upstream tags.
type TagCatalog struct {
	runner           Runner
	unstablePatterns []string
}

// NewTagCatalog creates a catalog excluding the given unstable tag globs
// from MostRecentTag; nil means DefaultUnstablePatterns.
func NewTagCatalog(runner Runner, unstablePatterns []string) *TagCatalog {
	if unstablePatterns == nil {
		unstablePatterns = DefaultUnstablePatterns
	}
	return &TagCatalog{runner: runner, unstablePatterns: unstablePatterns}
}

// ListRemoteTags returns the deduplicated stable tag names of a remote.
// Peeled refs ("tag^{}") collapse onto their tag name and unstable tags are
// dropped before the list reaches version comparison. Ancestry checks are
// unaffected: they resolve a given tag by name and never consult this list.
// The result is sorted only for determinism; callers order candidates
// through the version comparator.
func (c *TagCatalog) ListRemoteTags(ctx context.Context, projPath, remoteName string) ([]string, error) {
	out, err := c.runner.Run(ctx, projPath, "git", "ls-remote", "--tags", remoteName)
	if err != nil {
		return nil, fmt.Errorf("git ls-remote --tags %s failed: %w", remoteName, err)
	}

	seen := make(map[string]struct{})
	for _, line := range strings.Split(string(out), "\n") {
		m := remoteTagRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if c.isUnstable(m[1]) {
			continue
		}
		seen[m[1]] = struct{}{}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

// isUnstable matches a tag against the exclusion globs. Matching is
// case-insensitive, unlike git's own glob handling, so the lowercase
// patterns cover the rc/RC style variants too.
func (c *TagCatalog) isUnstable(tag string) bool {
	lower := strings.ToLower(tag)
	for _, pattern := range c.unstablePatterns {
		if ok, err := path.Match(strings.ToLower(pattern), lower); err == nil && ok {
			return true
		}
	}
	return false
}

// MostRecentTag returns the most recent stable tag reachable from ref,
// excluding the configured unstable patterns. Restricting to ref keeps the
// answer branch-scoped: a tag that exists only on a sibling branch is never
// returned. "No tags at all" is a legitimate terminal state and yields
// ("", nil), not an error.
func (c *TagCatalog) MostRecentTag(ctx context.Context, projPath, ref string) (string, error) {
	args := []string{"describe", "--tags", ref, "--abbrev=0"}
	for _, pattern := range c.unstablePatterns {
		args = append(args, "--exclude="+pattern)
	}

	out, err := c.runner.Run(ctx, projPath, "git", args...)
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) && isNoTagsOutput(string(cmdErr.Output)) {
			return "", nil
		}
		return "", fmt.Errorf("git describe %s failed: %w", ref, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// isNoTagsOutput matches git's "there are no describable tags" diagnostics.
func isNoTagsOutput(output string) bool {
	return strings.Contains(output, "No names found") ||
		strings.Contains(output, "No tags can describe") ||
		strings.Contains(output, "cannot describe")
}

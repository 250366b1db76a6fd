package updater

import (
	"context"
	"fmt"
	"regexp"

	"github.com/penwyp/vendsync/internal/metadata"
	"github.com/penwyp/vendsync/internal/planner"
	"github.com/penwyp/vendsync/internal/version"
)

var githubArchiveURLRE = regexp.MustCompile(
	`^https://github\.com/([-\w]+)/([-.\w]+)/(releases/download/|archive/)`)

// GitHubArchiveUpdater handles projects vendored from GitHub release
// archives. The release tag is the version.
type GitHubArchiveUpdater struct {
	proj *metadata.Project
	deps Deps

	result *CheckResult
}

func NewGitHubArchiveUpdater(proj *metadata.Project, deps Deps) *GitHubArchiveUpdater {
	return &GitHubArchiveUpdater{proj: proj, deps: deps}
}

func (u *GitHubArchiveUpdater) Name() string { return "github-archive" }

func (u *GitHubArchiveUpdater) IsSupported() bool {
	if u.proj.Identifier.Kind != metadata.KindArchive {
		return false
	}
	return githubArchiveURLRE.MatchString(u.proj.Identifier.Locator)
}

func (u *GitHubArchiveUpdater) ownerRepo() (string, string) {
	m := githubArchiveURLRE.FindStringSubmatch(u.proj.Identifier.Locator)
	if m == nil {
		return "", ""
	}
	return m[1], m[2]
}

func (u *GitHubArchiveUpdater) Check(ctx context.Context) (*CheckResult, error) {
	owner, repo := u.ownerRepo()
	release, err := u.deps.Releases.LatestRelease(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	current := u.proj.Identifier.Version
	next := release.Version
	// Guard against the release tag scheme drifting away from the recorded
	// version's shape; fall back to plain equality only when the current
	// version has no numeric component at all.
	if _, parseErr := version.Parse(current); parseErr == nil {
		latest, err := version.PickLatest(current, []string{release.Version})
		if err != nil {
			return nil, err
		}
		next = latest
	}

	outcome := planner.OutcomeFound
	if next == current {
		outcome = planner.OutcomeUpToDate
	}
	u.result = &CheckResult{
		Current: current,
		Decision: planner.Decision{
			Outcome:     outcome,
			NextVersion: next,
		},
		DownloadURLs: sortByAffinity(release.DownloadURLs, u.proj.Identifier.Locator),
	}
	return u.result, nil
}

// Refresh re-targets the pending result at the current version. The latest
// release listing does not cover older releases, so the previously recorded
// archive URL is the download source.
func (u *GitHubArchiveUpdater) Refresh(_ context.Context) (*CheckResult, error) {
	if u.result == nil {
		return nil, fmt.Errorf("github-archive updater: Refresh called before Check")
	}
	u.result.Decision.Outcome = planner.OutcomeFound
	u.result.Decision.NextVersion = u.proj.Identifier.Version
	u.result.DownloadURLs = []string{u.proj.Identifier.Locator}
	return u.result, nil
}

func (u *GitHubArchiveUpdater) Apply(ctx context.Context) (*ApplyResult, error) {
	return applyArchive(ctx, u.Name(), u.proj, u.deps, u.result)
}

// sortByAffinity orders candidate URLs by edit distance to the previously
// used URL, so the asset naming convention the project already relies on is
// preferred over siblings (source tarballs, other platforms).
func sortByAffinity(urls []string, previous string) []string {
	if len(urls) < 2 {
		return urls
	}
	ordered := make([]string, len(urls))
	copy(ordered, urls)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && editDistance(ordered[j], previous) < editDistance(ordered[j-1], previous); j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	return ordered
}

// editDistance is the Levenshtein distance between two strings, small
// enough here (URLs) that the quadratic row-by-row form is fine.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 0; i < len(a); i++ {
		cur := make([]int, 0, len(b)+1)
		cur = append(cur, i+1)
		for j := 0; j < len(b); j++ {
			if a[i] == b[j] {
				cur = append(cur, prev[j])
			} else {
				cur = append(cur, min(prev[j+1], min(prev[j], cur[j]))+1)
			}
		}
		prev = cur
	}
	return prev[len(b)]
}

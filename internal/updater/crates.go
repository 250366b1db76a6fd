package updater

import (
	"context"
	"fmt"
	"regexp"

	"github.com/penwyp/vendsync/internal/metadata"
	"github.com/penwyp/vendsync/internal/planner"
)

var cratesURLRE = regexp.MustCompile(`^https://crates\.io/crates/([-\w]+)`)

// CratesUpdater handles projects whose upstream is a crates.io package.
type CratesUpdater struct {
	proj *metadata.Project
	deps Deps

	result *CheckResult
}

func NewCratesUpdater(proj *metadata.Project, deps Deps) *CratesUpdater {
	return &CratesUpdater{proj: proj, deps: deps}
}

func (u *CratesUpdater) Name() string { return "crates" }

func (u *CratesUpdater) IsSupported() bool {
	if u.proj.Identifier.Kind == metadata.KindGit {
		return false
	}
	return cratesURLRE.MatchString(u.proj.Identifier.Locator)
}

func (u *CratesUpdater) crateName() string {
	m := cratesURLRE.FindStringSubmatch(u.proj.Identifier.Locator)
	if m == nil {
		return ""
	}
	return m[1]
}

func (u *CratesUpdater) Check(ctx context.Context) (*CheckResult, error) {
	release, err := u.deps.Crates.LatestVersion(ctx, u.crateName())
	if err != nil {
		return nil, err
	}

	outcome := planner.OutcomeFound
	if release.Version == u.proj.Identifier.Version {
		outcome = planner.OutcomeUpToDate
	}
	u.result = &CheckResult{
		Current: u.proj.Identifier.Version,
		Decision: planner.Decision{
			Outcome:     outcome,
			NextVersion: release.Version,
		},
		DownloadURLs: release.DownloadURLs,
	}
	return u.result, nil
}

// Refresh re-targets the pending result at the current version. The listing
// endpoint only carries download paths for the versions it returns, so the
// exact-version download endpoint is used instead.
func (u *CratesUpdater) Refresh(_ context.Context) (*CheckResult, error) {
	if u.result == nil {
		return nil, fmt.Errorf("crates updater: Refresh called before Check")
	}
	current := u.proj.Identifier.Version
	u.result.Decision.Outcome = planner.OutcomeFound
	u.result.Decision.NextVersion = current
	u.result.DownloadURLs = []string{u.deps.Crates.DownloadURL(u.crateName(), current)}
	return u.result, nil
}

func (u *CratesUpdater) Apply(ctx context.Context) (*ApplyResult, error) {
	return applyArchive(ctx, u.Name(), u.proj, u.deps, u.result)
}

// applyArchive is the shared apply path for registry-backed projects:
// install the release through the external installer, then advance the
// recorded version.
func applyArchive(ctx context.Context, name string, proj *metadata.Project, deps Deps, result *CheckResult) (*ApplyResult, error) {
	if result == nil {
		return nil, fmt.Errorf("%s updater: Apply called before Check", name)
	}
	if result.Decision.Outcome != planner.OutcomeFound {
		return &ApplyResult{NewVersion: proj.Identifier.Version}, nil
	}
	if deps.Installer == nil {
		return nil, fmt.Errorf("%s updater: no installer configured for archive replacement", name)
	}
	if err := deps.Installer.Install(ctx, proj, result.Decision.NextVersion, result.DownloadURLs); err != nil {
		return nil, err
	}
	if err := deps.Store.UpdateVersion(proj.Path, result.Decision.NextVersion); err != nil {
		return nil, err
	}
	return &ApplyResult{NewVersion: result.Decision.NextVersion}, nil
}

// Package updater maps each vendored project to the one updater that
// understands its upstream, dispatching over a closed set of source kinds:
// a git remote, a crates.io package, or a GitHub release archive.
package updater

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	apperrors "github.com/penwyp/vendsync/internal/errors"
	"github.com/penwyp/vendsync/internal/git"
	"github.com/penwyp/vendsync/internal/metadata"
	"github.com/penwyp/vendsync/internal/planner"
	"github.com/penwyp/vendsync/internal/registry"
)

// CheckResult is an updater's verdict for one project.
type CheckResult struct {
	Current  string
	Decision planner.Decision
	// DownloadURLs are the candidate archive URLs for registry-backed
	// projects; empty for git-tracked ones.
	DownloadURLs []string
}

// ApplyResult reports what applying an update did.
type ApplyResult struct {
	NewVersion string
	// Conflicted means the merge stopped on conflicts, left in the working
	// tree for a human. The recorded version is not advanced.
	Conflicted bool
}

// Updater checks a project's upstream for a new version and applies it.
// Check must be called before Refresh or Apply.
type Updater interface {
	Name() string
	IsSupported() bool
	Check(ctx context.Context) (*CheckResult, error)
	// Refresh re-targets the pending decision at the current version so
	// Apply runs the full update with it: git projects merge it again,
	// registry projects download and install it again.
	Refresh(ctx context.Context) (*CheckResult, error)
	Apply(ctx context.Context) (*ApplyResult, error)
}

// UpdatePlanner is the planning engine consumed by the git updater.
type UpdatePlanner interface {
	Plan(ctx context.Context, projPath string, id metadata.Identifier) (*planner.Decision, error)
}

// Merger performs the merge toward a chosen ref.
type Merger interface {
	Merge(ctx context.Context, projPath, targetRef string) (git.MergeOutcome, error)
}

// AncestryChecker validates explicit version overrides.
type AncestryChecker interface {
	IsStrictAncestor(ctx context.Context, projPath, ancestor, descendant string) (bool, error)
}

// VersionStore writes the adopted version back to the project record.
type VersionStore interface {
	UpdateVersion(projPath, newVersion string) error
}

// CratesRegistry answers version queries for crates.io packages.
type CratesRegistry interface {
	LatestVersion(ctx context.Context, crate string) (registry.Release, error)
	DownloadURL(crate, version string) string
}

// ReleaseRegistry answers latest-release queries for GitHub repositories.
type ReleaseRegistry interface {
	LatestRelease(ctx context.Context, owner, repo string) (registry.Release, error)
}

// Installer replaces a project tree with a downloaded release. Archive
// download and extraction live outside the engine; registry updaters refuse
// to apply without one.
type Installer interface {
	Install(ctx context.Context, proj *metadata.Project, version string, urls []string) error
}

// Deps bundles the collaborators shared by all updaters.
type Deps struct {
	Planner   UpdatePlanner
	Merger    Merger
	Ancestry  AncestryChecker
	Store     VersionStore
	Crates    CratesRegistry
	Releases  ReleaseRegistry
	Installer Installer
	Logger    *zap.Logger
}

// New selects the updater for a project by trying each member of the closed
// set in order. No match is an UnsupportedSource error.
func New(proj *metadata.Project, deps Deps) (Updater, error) {
	candidates := []Updater{
		NewGitUpdater(proj, deps),
		NewCratesUpdater(proj, deps),
		NewGitHubArchiveUpdater(proj, deps),
	}
	for _, u := range candidates {
		if u.IsSupported() {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedSource, proj.Identifier.Locator)
}

package updater

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	apperrors "github.com/penwyp/vendsync/internal/errors"
	"github.com/penwyp/vendsync/internal/git"
	"github.com/penwyp/vendsync/internal/metadata"
	"github.com/penwyp/vendsync/internal/planner"
)

// GitUpdater handles projects mirrored directly from a git upstream. It is
// the only updater with merge semantics: adopting a new version means
// merging upstream history into the local mirror.
type GitUpdater struct {
	proj *metadata.Project
	deps Deps

	decision *planner.Decision
}

func NewGitUpdater(proj *metadata.Project, deps Deps) *GitUpdater {
	return &GitUpdater{proj: proj, deps: deps}
}

func (u *GitUpdater) Name() string { return "git" }

func (u *GitUpdater) IsSupported() bool {
	return u.proj.Identifier.Kind == metadata.KindGit && u.proj.Identifier.Locator != ""
}

// Check refreshes remote state and plans the update. A plan with no
// compatible candidate becomes a NoMatchingVersionError here: by the time
// the decision leaves the engine, "nothing to do" and "nothing found" must
// be impossible to confuse.
func (u *GitUpdater) Check(ctx context.Context) (*CheckResult, error) {
	decision, err := u.deps.Planner.Plan(ctx, u.proj.Path, u.proj.Identifier)
	if err != nil {
		return nil, err
	}
	u.decision = decision

	if decision.Outcome == planner.OutcomeNotFound {
		if decision.AlternativeVersion != "" {
			u.deps.Logger.Info("no compatible tag upstream; branch HEAD is ahead",
				zap.String("project", u.proj.Name),
				zap.String("alternative", decision.AlternativeVersion))
		}
		return nil, &apperrors.NoMatchingVersionError{
			Project: u.proj.Name,
			Current: u.proj.Identifier.Version,
		}
	}

	return &CheckResult{
		Current:  u.proj.Identifier.Version,
		Decision: *decision,
	}, nil
}

// Apply merges the planned target. A clean merge advances the recorded
// version; a conflicted one is reported and leaves both the working tree
// and the record for a human.
func (u *GitUpdater) Apply(ctx context.Context) (*ApplyResult, error) {
	if u.decision == nil {
		return nil, fmt.Errorf("git updater: Apply called before Check")
	}
	if u.decision.Outcome != planner.OutcomeFound {
		return &ApplyResult{NewVersion: u.proj.Identifier.Version}, nil
	}

	outcome, err := u.deps.Merger.Merge(ctx, u.proj.Path, u.decision.MergeTarget)
	if err != nil {
		return nil, err
	}
	if outcome == git.OutcomeConflicted {
		u.deps.Logger.Warn("merge stopped on conflicts",
			zap.String("project", u.proj.Name),
			zap.String("target", u.decision.MergeTarget))
		return &ApplyResult{NewVersion: u.proj.Identifier.Version, Conflicted: true}, nil
	}

	if err := u.deps.Store.UpdateVersion(u.proj.Path, u.decision.NextVersion); err != nil {
		return nil, err
	}
	return &ApplyResult{NewVersion: u.decision.NextVersion}, nil
}

// SetCustomVersion overrides the planned next version with an explicit
// target. The target must be a strict descendant of the current version;
// anything else would silently regress the mirror or proves the recorded
// version wrong, and both are refused.
func (u *GitUpdater) SetCustomVersion(ctx context.Context, target string) error {
	if u.decision == nil {
		return fmt.Errorf("git updater: SetCustomVersion called before Check")
	}
	ahead, err := u.deps.Ancestry.IsStrictAncestor(ctx, u.proj.Path, u.proj.Identifier.Version, target)
	if err != nil {
		return err
	}
	if !ahead {
		return fmt.Errorf(
			"cannot upgrade to %s: it is not newer than the recorded version %s (or the record is wrong)",
			target, u.proj.Identifier.Version)
	}
	u.decision.Outcome = planner.OutcomeFound
	u.decision.NextVersion = target
	u.decision.MergeTarget = target
	return nil
}

// Refresh re-targets the plan at the current version so Apply merges it
// again, regenerating project state without moving the mirror forward.
func (u *GitUpdater) Refresh(_ context.Context) (*CheckResult, error) {
	if u.decision == nil {
		return nil, fmt.Errorf("git updater: Refresh called before Check")
	}
	u.decision.Outcome = planner.OutcomeFound
	u.decision.NextVersion = u.proj.Identifier.Version
	u.decision.MergeTarget = u.proj.Identifier.Version
	return &CheckResult{
		Current:  u.proj.Identifier.Version,
		Decision: *u.decision,
	}, nil
}

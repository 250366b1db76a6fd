// Package planner decides, per project, what the next version is and how to
// move toward it. A project either tracks a commit (its recorded version is
// a SHA1 hash; the target is the upstream default branch HEAD) or tracks a
// tag (the target is the latest shape-compatible tag). Each check also
// cross-checks the other discipline and may suggest switching to it.
package planner

import (
	"context"

	"go.uber.org/zap"

	"github.com/penwyp/vendsync/internal/metadata"
	"github.com/penwyp/vendsync/internal/version"
)

// Outcome states what the check concluded. An explicit enum rather than
// error identity: "nothing newer" and "nothing compatible at all" are
// different answers, and neither is a transport failure.
type Outcome int

const (
	// OutcomeFound means a newer version was identified.
	OutcomeFound Outcome = iota
	// OutcomeUpToDate means the current version is already the latest.
	OutcomeUpToDate
	// OutcomeNotFound means no candidate compatible with the current
	// version exists upstream. Callers surface this as fatal for the
	// project; it must never read as "up to date".
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeUpToDate:
		return "up-to-date"
	case OutcomeNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Decision is the planner's verdict for one project check.
type Decision struct {
	Outcome Outcome
	// NextVersion is the primary candidate within the project's current
	// tracking discipline. Empty when Outcome is OutcomeNotFound.
	NextVersion string
	// AlternativeVersion, when set, is a suggestion from the other
	// discipline: a stable tag for commit-tracking projects, the branch
	// HEAD for tag-tracking ones. Always ancestry-verified newer than the
	// current version and distinct from NextVersion.
	AlternativeVersion string
	// MergeTarget is the ref to merge when adopting NextVersion.
	MergeTarget string
}

// RemoteSyncer refreshes the upstream remote state.
type RemoteSyncer interface {
	EnsureRemote(ctx context.Context, projPath, url string) (string, error)
	DetectDefaultBranch(ctx context.Context, projPath, remoteName string) (string, error)
	Fetch(ctx context.Context, projPath, remoteName string, refs ...string) error
}

// TagSource enumerates upstream tags.
type TagSource interface {
	ListRemoteTags(ctx context.Context, projPath, remoteName string) ([]string, error)
	MostRecentTag(ctx context.Context, projPath, ref string) (string, error)
}

// AncestryChecker answers strict ancestry queries.
type AncestryChecker interface {
	IsStrictAncestor(ctx context.Context, projPath, ancestor, descendant string) (bool, error)
}

// RefReader resolves refs to commit hashes.
type RefReader interface {
	RevParse(ctx context.Context, projPath, ref string) (string, error)
}

// Planner combines remote state, tag enumeration, version comparison and
// ancestry checks into an UpdateDecision.
type Planner struct {
	remotes  RemoteSyncer
	tags     TagSource
	ancestry AncestryChecker
	refs     RefReader
	logger   *zap.Logger
}

func New(remotes RemoteSyncer, tags TagSource, ancestry AncestryChecker, refs RefReader, logger *zap.Logger) *Planner {
	return &Planner{
		remotes:  remotes,
		tags:     tags,
		ancestry: ancestry,
		refs:     refs,
		logger:   logger,
	}
}

// Plan refreshes the upstream remote and produces the decision for one
// project. The identifier is read, never mutated.
func (p *Planner) Plan(ctx context.Context, projPath string, id metadata.Identifier) (*Decision, error) {
	remoteName, err := p.remotes.EnsureRemote(ctx, projPath, id.Locator)
	if err != nil {
		return nil, err
	}
	branch, err := p.remotes.DetectDefaultBranch(ctx, projPath, remoteName)
	if err != nil {
		return nil, err
	}
	if err := p.remotes.Fetch(ctx, projPath, remoteName, branch); err != nil {
		return nil, err
	}
	trackingRef := remoteName + "/" + branch

	if version.IsCommitHash(id.Version) {
		return p.planCommitTracking(ctx, projPath, trackingRef, id.Version)
	}
	return p.planTagTracking(ctx, projPath, remoteName, trackingRef, id.Version)
}

// planCommitTracking targets the upstream default branch HEAD. A stable tag
// strictly ahead of the current commit is offered as an alternative: a
// suggestion to switch to tag tracking.
func (p *Planner) planCommitTracking(ctx context.Context, projPath, trackingRef, current string) (*Decision, error) {
	head, err := p.refs.RevParse(ctx, projPath, trackingRef)
	if err != nil {
		return nil, err
	}

	decision := &Decision{
		Outcome:     OutcomeFound,
		NextVersion: head,
		MergeTarget: head,
	}
	if head == current {
		decision.Outcome = OutcomeUpToDate
	}

	tag, err := p.tags.MostRecentTag(ctx, projPath, trackingRef)
	if err != nil {
		return nil, err
	}
	if tag != "" {
		// The alternative must name a different commit than NextVersion,
		// and a tag name never equals a SHA; compare resolved commits.
		tagSHA, err := p.refs.RevParse(ctx, projPath, tag+"^{commit}")
		if err != nil {
			return nil, err
		}
		if tagSHA != head {
			ahead, err := p.ancestry.IsStrictAncestor(ctx, projPath, current, tag)
			if err != nil {
				return nil, err
			}
			if ahead {
				decision.AlternativeVersion = tag
			}
		}
	}

	p.logger.Debug("planned commit-tracking update",
		zap.String("project", projPath),
		zap.String("outcome", decision.Outcome.String()),
		zap.String("next", decision.NextVersion),
		zap.String("alternative", decision.AlternativeVersion))
	return decision, nil
}

// planTagTracking targets the latest shape-compatible tag. The branch HEAD,
// when strictly ahead of the current tag, is offered as an alternative: a
// suggestion to switch to commit tracking.
func (p *Planner) planTagTracking(ctx context.Context, projPath, remoteName, trackingRef, current string) (*Decision, error) {
	tags, err := p.tags.ListRemoteTags(ctx, projPath, remoteName)
	if err != nil {
		return nil, err
	}

	decision := &Decision{Outcome: OutcomeNotFound}
	if compatible := p.shapeCompatibleCount(current, tags); compatible > 0 {
		latest, err := version.PickLatest(current, tags)
		if err != nil {
			return nil, err
		}
		decision.NextVersion = latest
		decision.MergeTarget = latest
		if latest == current {
			decision.Outcome = OutcomeUpToDate
		} else {
			decision.Outcome = OutcomeFound
		}
	}

	head, err := p.refs.RevParse(ctx, projPath, trackingRef)
	if err != nil {
		return nil, err
	}
	ahead, err := p.ancestry.IsStrictAncestor(ctx, projPath, current, head)
	if err != nil {
		return nil, err
	}
	if ahead {
		// Same commit-identity rule as the other discipline: a HEAD that
		// the chosen tag already points at is not an alternative.
		sameAsNext := false
		if decision.NextVersion != "" {
			nextSHA, err := p.refs.RevParse(ctx, projPath, decision.NextVersion+"^{commit}")
			if err != nil {
				return nil, err
			}
			sameAsNext = nextSHA == head
		}
		if !sameAsNext {
			decision.AlternativeVersion = head
		}
	}

	p.logger.Debug("planned tag-tracking update",
		zap.String("project", projPath),
		zap.String("outcome", decision.Outcome.String()),
		zap.String("next", decision.NextVersion),
		zap.String("alternative", decision.AlternativeVersion))
	return decision, nil
}

// shapeCompatibleCount counts candidates sharing the current version's
// shape. Zero means the catalog has nothing for this release line, which is
// a different answer than "the latest compatible tag is the current one".
func (p *Planner) shapeCompatibleCount(current string, tags []string) int {
	parsed, err := version.Parse(current)
	if err != nil {
		return 0
	}
	n := 0
	for _, tag := range tags {
		candidate, err := version.Parse(tag)
		if err != nil {
			continue
		}
		if parsed.ShapeCompatible(candidate) {
			n++
		}
	}
	return n
}

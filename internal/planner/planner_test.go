package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/penwyp/vendsync/internal/metadata"
)

const (
	oldSHA  = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	headSHA = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	tagSHA  = "cccccccccccccccccccccccccccccccccccccccc"
)

// fakeUpstream implements the planner's collaborator interfaces with a
// canned view of a remote.
type fakeUpstream struct {
	defaultBranch string
	headSHA       string
	tags          []string
	recentTag     string
	// ancestors maps "a..b" to the strict-ancestor answer.
	ancestors map[string]bool
	// refSHAs resolves specific refs; anything else resolves to headSHA.
	refSHAs map[string]string

	fetched []string
}

func (f *fakeUpstream) EnsureRemote(_ context.Context, _, _ string) (string, error) {
	return "update_origin", nil
}

func (f *fakeUpstream) DetectDefaultBranch(_ context.Context, _, _ string) (string, error) {
	return f.defaultBranch, nil
}

func (f *fakeUpstream) Fetch(_ context.Context, _, remoteName string, refs ...string) error {
	f.fetched = append(f.fetched, remoteName)
	return nil
}

func (f *fakeUpstream) ListRemoteTags(_ context.Context, _, _ string) ([]string, error) {
	return f.tags, nil
}

func (f *fakeUpstream) MostRecentTag(_ context.Context, _, _ string) (string, error) {
	return f.recentTag, nil
}

func (f *fakeUpstream) IsStrictAncestor(_ context.Context, _, ancestor, descendant string) (bool, error) {
	return f.ancestors[ancestor+".."+descendant], nil
}

func (f *fakeUpstream) RevParse(_ context.Context, _, ref string) (string, error) {
	if sha, ok := f.refSHAs[ref]; ok {
		return sha, nil
	}
	return f.headSHA, nil
}

func newPlanner(f *fakeUpstream) *Planner {
	return New(f, f, f, f, zap.NewNop())
}

func gitIdentifier(version string) metadata.Identifier {
	return metadata.Identifier{
		Kind:    metadata.KindGit,
		Locator: "https://upstream.example.com/lib.git",
		Version: version,
	}
}

func TestPlan_CommitTracking(t *testing.T) {
	t.Parallel()

	t.Run("new_head_available", func(t *testing.T) {
		f := &fakeUpstream{defaultBranch: "main", headSHA: headSHA}
		d, err := newPlanner(f).Plan(context.Background(), "/proj", gitIdentifier(oldSHA))
		require.NoError(t, err)
		require.Equal(t, OutcomeFound, d.Outcome)
		require.Equal(t, headSHA, d.NextVersion)
		require.Equal(t, headSHA, d.MergeTarget)
		require.Empty(t, d.AlternativeVersion)
	})

	t.Run("head_unchanged_but_new_stable_tag", func(t *testing.T) {
		f := &fakeUpstream{
			defaultBranch: "main",
			headSHA:       oldSHA,
			recentTag:     "v2.1.0",
			ancestors:     map[string]bool{oldSHA + "..v2.1.0": true},
			refSHAs:       map[string]string{"v2.1.0^{commit}": tagSHA},
		}
		d, err := newPlanner(f).Plan(context.Background(), "/proj", gitIdentifier(oldSHA))
		require.NoError(t, err)
		require.Equal(t, OutcomeUpToDate, d.Outcome)
		require.Equal(t, oldSHA, d.NextVersion)
		require.Equal(t, "v2.1.0", d.AlternativeVersion)
	})

	t.Run("tag_not_ahead_is_no_alternative", func(t *testing.T) {
		f := &fakeUpstream{
			defaultBranch: "main",
			headSHA:       headSHA,
			recentTag:     "v2.0.0",
			ancestors:     map[string]bool{},
			refSHAs:       map[string]string{"v2.0.0^{commit}": tagSHA},
		}
		d, err := newPlanner(f).Plan(context.Background(), "/proj", gitIdentifier(oldSHA))
		require.NoError(t, err)
		require.Equal(t, OutcomeFound, d.Outcome)
		require.Empty(t, d.AlternativeVersion)
	})

	t.Run("tag_at_head_is_no_alternative", func(t *testing.T) {
		// The tag points at the branch HEAD: it names the same commit as
		// NextVersion and must not be offered as an alternative.
		f := &fakeUpstream{
			defaultBranch: "main",
			headSHA:       headSHA,
			recentTag:     "v2.1.0",
			ancestors:     map[string]bool{oldSHA + "..v2.1.0": true},
			refSHAs:       map[string]string{"v2.1.0^{commit}": headSHA},
		}
		d, err := newPlanner(f).Plan(context.Background(), "/proj", gitIdentifier(oldSHA))
		require.NoError(t, err)
		require.Equal(t, OutcomeFound, d.Outcome)
		require.Equal(t, headSHA, d.NextVersion)
		require.Empty(t, d.AlternativeVersion)
	})

	t.Run("no_tags_is_fine_for_commit_tracking", func(t *testing.T) {
		f := &fakeUpstream{defaultBranch: "main", headSHA: headSHA}
		d, err := newPlanner(f).Plan(context.Background(), "/proj", gitIdentifier(oldSHA))
		require.NoError(t, err)
		require.Equal(t, OutcomeFound, d.Outcome)
		require.Empty(t, d.AlternativeVersion)
	})
}

func TestPlan_TagTracking(t *testing.T) {
	t.Parallel()

	t.Run("newer_tag_available", func(t *testing.T) {
		f := &fakeUpstream{
			defaultBranch: "main",
			headSHA:       headSHA,
			tags:          []string{"v1.0.0", "v1.1.0", "v2.0.0-rc1"},
		}
		d, err := newPlanner(f).Plan(context.Background(), "/proj", gitIdentifier("v1.0.0"))
		require.NoError(t, err)
		require.Equal(t, OutcomeFound, d.Outcome)
		require.Equal(t, "v1.1.0", d.NextVersion)
		require.Equal(t, "v1.1.0", d.MergeTarget)
	})

	t.Run("up_to_date", func(t *testing.T) {
		f := &fakeUpstream{
			defaultBranch: "main",
			headSHA:       headSHA,
			tags:          []string{"v1.0.0", "v0.9.0"},
		}
		d, err := newPlanner(f).Plan(context.Background(), "/proj", gitIdentifier("v1.0.0"))
		require.NoError(t, err)
		require.Equal(t, OutcomeUpToDate, d.Outcome)
		require.Equal(t, "v1.0.0", d.NextVersion)
	})

	t.Run("branch_head_ahead_becomes_alternative", func(t *testing.T) {
		f := &fakeUpstream{
			defaultBranch: "main",
			headSHA:       headSHA,
			tags:          []string{"v1.0.0"},
			ancestors:     map[string]bool{"v1.0.0.." + headSHA: true},
			refSHAs:       map[string]string{"v1.0.0^{commit}": tagSHA},
		}
		d, err := newPlanner(f).Plan(context.Background(), "/proj", gitIdentifier("v1.0.0"))
		require.NoError(t, err)
		require.Equal(t, OutcomeUpToDate, d.Outcome)
		require.Equal(t, headSHA, d.AlternativeVersion)
	})

	t.Run("head_at_latest_tag_is_no_alternative", func(t *testing.T) {
		// HEAD is the commit the chosen tag points at: adopting it would be
		// the same update as NextVersion.
		f := &fakeUpstream{
			defaultBranch: "main",
			headSHA:       headSHA,
			tags:          []string{"v1.0.0", "v1.1.0"},
			ancestors:     map[string]bool{"v1.0.0.." + headSHA: true},
			refSHAs:       map[string]string{"v1.1.0^{commit}": headSHA},
		}
		d, err := newPlanner(f).Plan(context.Background(), "/proj", gitIdentifier("v1.0.0"))
		require.NoError(t, err)
		require.Equal(t, OutcomeFound, d.Outcome)
		require.Equal(t, "v1.1.0", d.NextVersion)
		require.Empty(t, d.AlternativeVersion)
	})

	t.Run("no_tags_at_all_is_not_found", func(t *testing.T) {
		f := &fakeUpstream{defaultBranch: "main", headSHA: headSHA}
		d, err := newPlanner(f).Plan(context.Background(), "/proj", gitIdentifier("v1.0.0"))
		require.NoError(t, err)
		require.Equal(t, OutcomeNotFound, d.Outcome)
		require.Empty(t, d.NextVersion)
	})

	t.Run("no_shape_compatible_tags_is_not_found", func(t *testing.T) {
		f := &fakeUpstream{
			defaultBranch: "main",
			headSHA:       headSHA,
			tags:          []string{"release-2024.01", "snapshot"},
		}
		d, err := newPlanner(f).Plan(context.Background(), "/proj", gitIdentifier("v1.0.0"))
		require.NoError(t, err)
		require.Equal(t, OutcomeNotFound, d.Outcome)
		require.Empty(t, d.NextVersion)
	})
}

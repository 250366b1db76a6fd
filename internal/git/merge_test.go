package git

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMerger_Merge(t *testing.T) {
	t.Parallel()

	t.Run("clean", func(t *testing.T) {
		fr := newFakeRunner()
		fr.on("git merge v2.0.0 --no-commit", "Automatic merge went well\n", nil)

		m := NewMerger(fr)
		outcome, err := m.Merge(context.Background(), "/proj", "v2.0.0")
		require.NoError(t, err)
		require.Equal(t, OutcomeClean, outcome)
	})

	t.Run("conflicted", func(t *testing.T) {
		fr := newFakeRunner()
		fr.on("git merge v2.0.0 --no-commit", "", exitError(1, "CONFLICT (content): Merge conflict in lib.c\n"))
		fr.on("git ls-files --unmerged",
			"100644 aaaa 1\tlib.c\n"+
				"100644 bbbb 2\tlib.c\n"+
				"100644 cccc 3\tlib.c\n", nil)

		m := NewMerger(fr)
		outcome, err := m.Merge(context.Background(), "/proj", "v2.0.0")
		require.NoError(t, err)
		require.Equal(t, OutcomeConflicted, outcome)
	})

	t.Run("failure_without_conflicts_propagates", func(t *testing.T) {
		fr := newFakeRunner()
		fr.on("git merge v2.0.0 --no-commit", "", exitError(128, "fatal: refusing to merge unrelated histories\n"))
		fr.on("git ls-files --unmerged", "", nil)

		m := NewMerger(fr)
		_, err := m.Merge(context.Background(), "/proj", "v2.0.0")
		require.Error(t, err)
	})
}

func TestMerger_UnmergedFiles(t *testing.T) {
	t.Parallel()

	fr := newFakeRunner()
	fr.on("git ls-files --unmerged",
		"100644 aaaa 1\ta.c\n"+
			"100644 bbbb 2\ta.c\n"+
			"100644 cccc 1\tb.c\n", nil)

	m := NewMerger(fr)
	files, err := m.UnmergedFiles(context.Background(), "/proj")
	require.NoError(t, err)
	require.Equal(t, []string{"a.c", "b.c"}, files)
}

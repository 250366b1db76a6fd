package git

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupBranchedRepo builds a real repository with a tag on the main branch
// and a newer tag reachable only from a sibling branch.
func setupBranchedRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runner := NewExecRunner(zap.NewNop())
	ctx := context.Background()

	run := func(args ...string) {
		t.Helper()
		_, err := runner.Run(ctx, dir, "git", args...)
		require.NoError(t, err)
	}
	commit := func(msg string) {
		run("-c", "user.name=vendsync", "-c", "user.email=vendsync@example.com",
			"-c", "commit.gpgsign=false",
			"commit", "--allow-empty", "-m", msg)
	}

	run("init", "--initial-branch=main")
	commit("base")
	run("tag", "v1.0.0")
	run("checkout", "-b", "side")
	commit("side work")
	run("tag", "v9.9.9")
	run("checkout", "main")
	commit("main work")
	return dir
}

func TestTagCatalog_MostRecentTag_IsBranchScoped(t *testing.T) {
	if testing.Short() {
		t.Skip("needs a real git binary")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := setupBranchedRepo(t)
	c := NewTagCatalog(NewExecRunner(zap.NewNop()), nil)

	// v9.9.9 is only reachable from the sibling branch and must not leak
	// into the answer for main.
	tag, err := c.MostRecentTag(context.Background(), dir, "main")
	require.NoError(t, err)
	require.Equal(t, "v1.0.0", tag)

	tag, err = c.MostRecentTag(context.Background(), dir, "side")
	require.NoError(t, err)
	require.Equal(t, "v9.9.9", tag)
}

package git

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/penwyp/vendsync/internal/errors"
)

const (
	shaA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	shaB = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func TestAncestryOracle_IsStrictAncestor(t *testing.T) {
	t.Parallel()

	t.Run("self_is_never_an_ancestor", func(t *testing.T) {
		fr := newFakeRunner()
		fr.on("git rev-parse v1.0.0", shaA+"\n", nil)

		o := NewAncestryOracle(fr)
		ok, err := o.IsStrictAncestor(context.Background(), "/proj", "v1.0.0", "v1.0.0")
		require.NoError(t, err)
		require.False(t, ok)
		// The ternary merge-base query is skipped entirely for identical
		// commits.
		for _, call := range fr.calls {
			require.False(t, strings.Contains(call, "merge-base"), call)
		}
	})

	t.Run("strict_ancestor", func(t *testing.T) {
		fr := newFakeRunner()
		fr.on("git rev-parse "+shaA, shaA+"\n", nil)
		fr.on("git rev-parse "+shaB, shaB+"\n", nil)
		fr.on("git merge-base --is-ancestor "+shaA+" "+shaB, "", nil)

		o := NewAncestryOracle(fr)
		ok, err := o.IsStrictAncestor(context.Background(), "/proj", shaA, shaB)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("not_an_ancestor", func(t *testing.T) {
		fr := newFakeRunner()
		fr.on("git rev-parse "+shaB, shaB+"\n", nil)
		fr.on("git rev-parse "+shaA, shaA+"\n", nil)
		fr.on("git merge-base --is-ancestor "+shaB+" "+shaA, "", exitError(1, ""))

		o := NewAncestryOracle(fr)
		ok, err := o.IsStrictAncestor(context.Background(), "/proj", shaB, shaA)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("other_exit_codes_are_fatal", func(t *testing.T) {
		fr := newFakeRunner()
		fr.on("git rev-parse "+shaA, shaA+"\n", nil)
		fr.on("git rev-parse "+shaB, shaB+"\n", nil)
		fr.on("git merge-base --is-ancestor "+shaA+" "+shaB, "",
			exitError(128, "fatal: not a valid object name\n"))

		o := NewAncestryOracle(fr)
		_, err := o.IsStrictAncestor(context.Background(), "/proj", shaA, shaB)
		var ancestryErr *apperrors.AncestryCheckError
		require.ErrorAs(t, err, &ancestryErr)
	})

	t.Run("unresolvable_ref_is_fatal", func(t *testing.T) {
		fr := newFakeRunner()
		fr.on("git rev-parse nope", "", exitError(128, "fatal: unknown revision\n"))

		o := NewAncestryOracle(fr)
		_, err := o.IsStrictAncestor(context.Background(), "/proj", "nope", shaB)
		var ancestryErr *apperrors.AncestryCheckError
		require.ErrorAs(t, err, &ancestryErr)
	})
}
